package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/ImAlagar/zohra-admin-core/api/routes"
	"github.com/ImAlagar/zohra-admin-core/internal/backend"
	"github.com/ImAlagar/zohra-admin-core/internal/catalog"
	"github.com/ImAlagar/zohra-admin-core/internal/moderation"
	"github.com/ImAlagar/zohra-admin-core/internal/pricing"
	"github.com/ImAlagar/zohra-admin-core/pkg/config"
	"github.com/ImAlagar/zohra-admin-core/pkg/logger"
	"github.com/ImAlagar/zohra-admin-core/pkg/metrics"
	"github.com/ImAlagar/zohra-admin-core/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "admin-api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "admin-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	backendMetrics := metrics.NewBackendMetrics(registry)

	backendClient, err := backend.New(cfg.Backend, logg, backendMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap backend client", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	}

	storeOpts := pricing.StoreOptions{
		SnapshotTTL: cfg.Redis.SnapshotTTL,
		Logger:      logg,
	}
	if redisClient != nil {
		storeOpts.Cache = redisClient
	}
	store := pricing.NewStore(backendClient, storeOpts)
	editor := pricing.NewEditor(store, logNotifier{logg}, logg)
	catalogService := catalog.NewService(backendClient, 0)
	moderationService := moderation.NewService(backendClient)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting admin api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, redisClient, store, editor, catalogService, moderationService, registry),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "admin api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

// logNotifier surfaces editor outcomes in the request log; the dashboard
// shows its own toasts client-side.
type logNotifier struct {
	logg *logger.Logger
}

func (n logNotifier) Success(ctx context.Context, message string) {
	n.logg.Info(n.logg.WithField(ctx, "notice", message), "editor.success")
}

func (n logNotifier) Failure(ctx context.Context, message string) {
	n.logg.Warn(n.logg.WithField(ctx, "notice", message), "editor.failure")
}
