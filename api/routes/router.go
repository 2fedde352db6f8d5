package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/anodeen/HeadShot/api/controllers"
	"github.com/anodeen/HeadShot/api/middleware"
	"github.com/anodeen/HeadShot/api/responses"
	"github.com/anodeen/HeadShot/internal/assets"
	"github.com/anodeen/HeadShot/internal/entitlements"
	"github.com/anodeen/HeadShot/internal/jobs"
	metricsvc "github.com/anodeen/HeadShot/internal/metrics"
	"github.com/anodeen/HeadShot/internal/notifications"
	"github.com/anodeen/HeadShot/internal/sessions"
	"github.com/anodeen/HeadShot/internal/support"
	"github.com/anodeen/HeadShot/pkg/config"
	pkgerrors "github.com/anodeen/HeadShot/pkg/errors"
	"github.com/anodeen/HeadShot/pkg/logger"
	"github.com/anodeen/HeadShot/pkg/metrics"
	"github.com/anodeen/HeadShot/pkg/redis"
)

// Services bundles the per-resource services the router dispatches to.
type Services struct {
	Sessions      sessions.Service
	Orders        entitlements.Service
	Jobs          jobs.Service
	Assets        assets.Service
	Support       support.Service
	Notifications notifications.Service
	Metrics       metricsvc.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	redisClient *redis.Client,
	httpMetrics *metrics.HTTPMetrics,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	notFound := func(w http.ResponseWriter, req *http.Request) {
		responses.WriteError(req.Context(), nil, w, pkgerrors.New(pkgerrors.CodeNotFound, "Route not found."))
	}
	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	loginLimit := passthrough
	registerLimit := passthrough
	if redisClient != nil {
		loginPolicy := middleware.NewAuthRateLimitPolicy(
			"login",
			cfg.AuthRateLimit.LoginWindow,
			cfg.AuthRateLimit.LoginIPLimit,
			cfg.AuthRateLimit.LoginEmailLimit,
		)
		registerPolicy := middleware.NewAuthRateLimitPolicy(
			"register",
			cfg.AuthRateLimit.RegisterWindow,
			cfg.AuthRateLimit.RegisterIPLimit,
			cfg.AuthRateLimit.RegisterEmailLimit,
		)
		loginLimit = middleware.AuthRateLimit(loginPolicy, redisClient, logg)
		registerLimit = middleware.AuthRateLimit(registerPolicy, redisClient, logg)
	}

	r.Get("/api/health", controllers.Health(cfg))
	r.Get("/api/packages", controllers.ListPackages())
	r.Get("/api/branding-previews", controllers.ListBrandingPreviews())
	r.Get("/api/privacy", controllers.PrivacyPolicy(cfg))

	r.Route("/api/auth", func(r chi.Router) {
		r.With(registerLimit).Post("/register", controllers.Register(svcs.Sessions, logg))
		r.With(loginLimit).Post("/login", controllers.Login(svcs.Sessions, logg))
		r.Post("/logout", controllers.Logout(svcs.Sessions, logg))
		r.With(middleware.Auth(svcs.Sessions, logg)).Get("/me", controllers.Me(logg))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(svcs.Sessions, logg))

		r.Route("/api/orders", func(r chi.Router) {
			r.Post("/", controllers.CreateOrder(svcs.Orders, logg))
			r.Get("/", controllers.ListOrders(svcs.Orders, logg))
			r.Delete("/{orderID}", controllers.DeleteOrder(svcs.Orders, logg))
		})

		r.Route("/api/jobs", func(r chi.Router) {
			r.Post("/", controllers.CreateJob(svcs.Jobs, logg))
			r.Get("/", controllers.ListJobs(svcs.Jobs, logg))
			r.Get("/{jobID}", controllers.GetJob(svcs.Jobs, logg))
			r.Delete("/{jobID}", controllers.DeleteJob(svcs.Jobs, logg))
			r.Get("/{jobID}/assets", controllers.ListJobAssets(svcs.Assets, logg))
		})

		r.Post("/api/rerun", controllers.RerunJob(svcs.Jobs, logg))
		r.Get("/api/download/{token}", controllers.ResolveDownload(svcs.Assets, logg))
		r.Post("/api/support", controllers.CreateSupportTicket(svcs.Support, logg))
		r.Get("/api/notifications", controllers.ListNotifications(svcs.Notifications, logg))
		r.Get("/api/metrics", controllers.DashboardMetrics(svcs.Metrics, logg))
	})

	// Prometheus scrape endpoint, separate from the tenant dashboard metrics.
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	return r
}

func passthrough(next http.Handler) http.Handler { return next }
