package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/anodeen/HeadShot/api/routes"
	"github.com/anodeen/HeadShot/internal/assets"
	"github.com/anodeen/HeadShot/internal/entitlements"
	"github.com/anodeen/HeadShot/internal/jobs"
	metricsvc "github.com/anodeen/HeadShot/internal/metrics"
	"github.com/anodeen/HeadShot/internal/notifications"
	"github.com/anodeen/HeadShot/internal/sessions"
	"github.com/anodeen/HeadShot/internal/support"
	"github.com/anodeen/HeadShot/internal/tenants"
	"github.com/anodeen/HeadShot/pkg/config"
	"github.com/anodeen/HeadShot/pkg/db"
	"github.com/anodeen/HeadShot/pkg/logger"
	"github.com/anodeen/HeadShot/pkg/metrics"
	"github.com/anodeen/HeadShot/pkg/migrate"
	"github.com/anodeen/HeadShot/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	// Redis only backs auth rate limiting; the API serves without it.
	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Warn(context.Background(), "redis not configured, auth rate limiting disabled")
	}

	gormDB := dbClient.DB()

	notificationSvc, err := notifications.NewService(notifications.NewRepository(gormDB))
	if err != nil {
		logg.Error(context.Background(), "failed to create notification service", err)
		os.Exit(1)
	}

	sessionSvc, err := sessions.NewService(sessions.ServiceParams{
		TenantRepo:     tenants.NewRepository(gormDB),
		SessionRepo:    sessions.NewRepository(gormDB),
		TxRunner:       dbClient,
		PasswordConfig: cfg.Password,
		SessionConfig:  cfg.Session,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create session service", err)
		os.Exit(1)
	}

	orderRepo := entitlements.NewRepository(gormDB)
	orderSvc, err := entitlements.NewService(entitlements.ServiceParams{
		Repo:          orderRepo,
		TxRunner:      dbClient,
		Notifications: notificationSvc,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	jobRepo := jobs.NewRepository(gormDB)
	assetSvc, err := assets.NewService(assets.ServiceParams{
		Repo: assets.NewRepository(gormDB),
		Jobs: jobRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create asset service", err)
		os.Exit(1)
	}

	jobSvc, err := jobs.NewService(jobs.ServiceParams{
		Repo:          jobRepo,
		Orders:        orderRepo,
		Assets:        assetSvc,
		Notifications: notificationSvc,
		TxRunner:      dbClient,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create job service", err)
		os.Exit(1)
	}

	supportRepo := support.NewRepository(gormDB)
	supportSvc, err := support.NewService(supportRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create support service", err)
		os.Exit(1)
	}

	metricsSvc, err := metricsvc.NewService(metricsvc.ServiceParams{
		Orders:  orderRepo,
		Jobs:    jobRepo,
		Support: supportRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create metrics service", err)
		os.Exit(1)
	}

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, redisClient, httpMetrics, routes.Services{
			Sessions:      sessionSvc,
			Orders:        orderSvc,
			Jobs:          jobSvc,
			Assets:        assetSvc,
			Support:       supportSvc,
			Notifications: notificationSvc,
			Metrics:       metricsSvc,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
