package config

// EnvPrefix is the shared prefix for all LinkQuarry environment variables.
// envconfig receives an empty prefix because every field names its variable
// explicitly.
const EnvPrefix = ""

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvDBDSN  = "LINKQUARRY_DB_DSN"
	EnvDBHost = "LINKQUARRY_DB_HOST"
	EnvDBUser = "LINKQUARRY_DB_USER"
	EnvDBName = "LINKQUARRY_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
