package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/campusbooks/campusbooks-backend/api/responses"
	"github.com/campusbooks/campusbooks-backend/pkg/logger"
)

// Pinger is the health-check surface of a dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health reports service liveness plus the state of its dependencies.
func Health(database, cache Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := map[string]string{"service": "ok"}
		healthy := true

		if database != nil {
			if err := database.Ping(ctx); err != nil {
				logg.Error(ctx, "database health check failed", err)
				status["database"] = "unavailable"
				healthy = false
			} else {
				status["database"] = "ok"
			}
		}
		if cache != nil {
			if err := cache.Ping(ctx); err != nil {
				logg.Error(ctx, "redis health check failed", err)
				status["redis"] = "unavailable"
				healthy = false
			} else {
				status["redis"] = "ok"
			}
		}

		code := http.StatusOK
		if !healthy {
			code = http.StatusServiceUnavailable
		}
		responses.WriteSuccessStatus(w, code, status)
	}
}
