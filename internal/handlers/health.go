package handlers

//go:generate mockgen -source=health.go -destination=health_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sbilibin2017/gw-user-accounts/internal/logger"
)

// Pinger checks that a backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// NewHealthHandler reports whether the service and its database are up.
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} models.Response "OK"
// @Failure 503 {object} models.Response "Service Unavailable"
// @Router /health [get]
func NewHealthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			if err := db.PingContext(r.Context()); err != nil {
				logger.FromContext(r.Context()).Errorw("health check failed", "err", err)
				writeMessage(w, http.StatusServiceUnavailable, "Service Unavailable")
				return
			}
		}
		writeMessage(w, http.StatusOK, "OK")
	}
}

// RegisterHealthHandler registers the health route.
func RegisterHealthHandler(r chi.Router, h http.HandlerFunc) {
	r.Get("/health", h)
}
