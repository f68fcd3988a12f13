package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/linkquarry/linkquarry-backend/api/controllers"
	ordercontrollers "github.com/linkquarry/linkquarry-backend/api/controllers/orders"
	publishercontrollers "github.com/linkquarry/linkquarry-backend/api/controllers/publisher"
	"github.com/linkquarry/linkquarry-backend/api/middleware"
	"github.com/linkquarry/linkquarry-backend/internal/auth"
	"github.com/linkquarry/linkquarry-backend/internal/earnings"
	"github.com/linkquarry/linkquarry-backend/internal/orders"
	"github.com/linkquarry/linkquarry-backend/internal/publisherorders"
	"github.com/linkquarry/linkquarry-backend/internal/submissions"
	"github.com/linkquarry/linkquarry-backend/pkg/auth/session"
	"github.com/linkquarry/linkquarry-backend/pkg/config"
	"github.com/linkquarry/linkquarry-backend/pkg/enums"
	"github.com/linkquarry/linkquarry-backend/pkg/logger"
	"github.com/linkquarry/linkquarry-backend/pkg/metrics"
	redisclient "github.com/linkquarry/linkquarry-backend/pkg/redis"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config          *config.Config
	Logger          *logger.Logger
	Redis           *redisclient.Client
	SessionChecker  session.AccessSessionChecker
	HTTPMetrics     *metrics.HTTPMetrics
	MetricsRegistry *prometheus.Registry

	AuthService        auth.Service
	OrdersService      orders.Service
	SubmissionsService submissions.Service
	PublisherService   publisherorders.Service
	EarningsService    earnings.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg))
	})

	if deps.MetricsRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.MetricsRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.AuthService, logg))
		r.Post("/logout", controllers.AuthLogout(deps.AuthService, logg))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionChecker, logg))
		r.Use(middleware.Idempotency(deps.Redis, logg))

		r.Get("/ping", controllers.PrivatePing())

		r.Route("/v1/orders", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireUserType(logg, enums.UserTypeAccount, enums.UserTypeInternal))
				r.Get("/", ordercontrollers.List(deps.OrdersService, logg))
				r.Get("/{orderId}", ordercontrollers.Detail(deps.OrdersService, logg))
				r.Post("/{orderId}/status", ordercontrollers.UpdateStatus(deps.OrdersService, logg))
				r.Patch("/{orderId}/groups/{groupId}/submissions/{submissionId}/inclusion", ordercontrollers.UpdateInclusion(deps.SubmissionsService, logg))
				r.Post("/{orderId}/groups/{groupId}/submissions/{submissionId}/review", ordercontrollers.Review(deps.SubmissionsService, logg))
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireUserType(logg, enums.UserTypeInternal))
				r.Post("/{orderId}/state", ordercontrollers.SetState(deps.OrdersService, logg))
				r.Post("/line-items/{lineItemId}/resolution", publishercontrollers.Resolve(deps.PublisherService, logg))
			})
		})

		r.Route("/v1/publisher", func(r chi.Router) {
			r.Use(middleware.RequireUserType(logg, enums.UserTypePublisher))
			r.Get("/orders", publishercontrollers.ListOrders(deps.PublisherService, logg))
			r.Patch("/orders/{lineItemId}/status", publishercontrollers.UpdateStatus(deps.PublisherService, logg))
			r.Get("/earnings", publishercontrollers.Earnings(deps.EarningsService, logg))
		})
	})

	return r
}
