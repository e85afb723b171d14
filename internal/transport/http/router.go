// Package httptransport is the thin HTTP layer. Handlers delegate to domain
// services without embedding business logic so transport concerns remain
// isolated.
package httptransport

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthChecker reports readiness of a backing dependency. A nil checker is
// treated as healthy, which is how the in-memory configuration runs.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// NewRouter wires all public endpoints plus the operational ones.
func NewRouter(auth *AuthHandler, admin *AdminHandler, health HealthChecker) *chi.Mux {
	r := chi.NewRouter()

	auth.Register(r)
	admin.Register(r)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", handleHealthz(health))

	return r
}

func handleHealthz(health HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if health != nil {
			if err := health.Health(r.Context()); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{
					"status": "unhealthy",
					"error":  err.Error(),
				})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
