package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/ImAlagar/zohra-admin-core/api/responses"
	"github.com/ImAlagar/zohra-admin-core/pkg/config"
	"github.com/ImAlagar/zohra-admin-core/pkg/logger"
)

// Pinger is a dependency the readiness probe can check.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Zohra-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady checks the optional redis dependency. The backend is not
// pinged here; its failures are surfaced and retried per request.
func HealthReady(cfg *config.Config, logg *logger.Logger, redisClient Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Zohra-Env", cfg.App.Env)

		status := map[string]string{"status": "ready"}
		code := http.StatusOK

		if redisClient != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := redisClient.Ping(ctx); err != nil {
				status["status"] = "degraded"
				status["redis"] = "unreachable"
				code = http.StatusServiceUnavailable
				if logg != nil {
					logg.Warn(logg.WithField(r.Context(), "error", err.Error()), "health.redis_unreachable")
				}
			}
		}

		responses.WriteSuccessStatus(w, code, status)
	}
}
