package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	Service       ServiceConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Earnings      EarningsConfig
	GCP           GCPConfig
	PubSub        PubSubConfig
	Outbox        OutboxConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"LINKQUARRY_APP_ENV" required:"true"`
	Port         string `envconfig:"LINKQUARRY_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"LINKQUARRY_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LINKQUARRY_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"LINKQUARRY_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"LINKQUARRY_DB_DSN"`
	Driver string `envconfig:"LINKQUARRY_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"LINKQUARRY_DB_HOST"`
	LegacyPort     int    `envconfig:"LINKQUARRY_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"LINKQUARRY_DB_USER"`
	LegacyPassword string `envconfig:"LINKQUARRY_DB_PASSWORD"`
	LegacyName     string `envconfig:"LINKQUARRY_DB_NAME"`
	LegacySSLMode  string `envconfig:"LINKQUARRY_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"LINKQUARRY_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"LINKQUARRY_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"LINKQUARRY_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"LINKQUARRY_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"LINKQUARRY_REDIS_URL" required:"true"`
	Address      string        `envconfig:"LINKQUARRY_REDIS_ADDR"`
	Password     string        `envconfig:"LINKQUARRY_REDIS_PASSWORD"`
	DB           int           `envconfig:"LINKQUARRY_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"LINKQUARRY_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"LINKQUARRY_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"LINKQUARRY_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"LINKQUARRY_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"LINKQUARRY_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"LINKQUARRY_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"LINKQUARRY_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"LINKQUARRY_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"LINKQUARRY_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"LINKQUARRY_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"LINKQUARRY_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"LINKQUARRY_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"LINKQUARRY_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"LINKQUARRY_ARGON_KEY_LEN" default:"32"`
}

// AuthRateLimitConfig throttles credential endpoints per IP and per email.
type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"LINKQUARRY_AUTH_LOGIN_WINDOW" default:"1m"`
	LoginIPLimit    int           `envconfig:"LINKQUARRY_AUTH_LOGIN_IP_LIMIT" default:"10"`
	LoginEmailLimit int           `envconfig:"LINKQUARRY_AUTH_LOGIN_EMAIL_LIMIT" default:"5"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"LINKQUARRY_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"LINKQUARRY_AUTO_MIGRATE" default:"false"`
}

// EarningsConfig drives the publisher earnings ledger math.
type EarningsConfig struct {
	PlatformFeePercent string `envconfig:"LINKQUARRY_PLATFORM_FEE_PERCENT" default:"30"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"LINKQUARRY_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"LINKQUARRY_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"LINKQUARRY_GOOGLE_APPLICATION_CREDENTIALS"`
}

type PubSubConfig struct {
	OrdersTopic      string `envconfig:"LINKQUARRY_PUBSUB_ORDERS_TOPIC" default:"lq-order-events"`
	SubmissionsTopic string `envconfig:"LINKQUARRY_PUBSUB_SUBMISSIONS_TOPIC" default:"lq-submission-events"`
	EarningsTopic    string `envconfig:"LINKQUARRY_PUBSUB_EARNINGS_TOPIC" default:"lq-earnings-events"`
}

type OutboxConfig struct {
	BatchSize      int `envconfig:"LINKQUARRY_OUTBOX_PUBLISH_BATCH_SIZE" default:"50"`
	PollIntervalMS int `envconfig:"LINKQUARRY_OUTBOX_PUBLISH_POLL_MS" default:"500"`
	MaxAttempts    int `envconfig:"LINKQUARRY_OUTBOX_MAX_ATTEMPTS" default:"10"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
