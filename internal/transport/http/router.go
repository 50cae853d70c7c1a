package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"creditref/internal/platform/metrics"
	"creditref/internal/platform/middleware"
	"creditref/pkg/platform/httputil"
)

const requestTimeout = 30 * time.Second

// HealthCheck reports whether a backing service is reachable.
type HealthCheck func(ctx context.Context) error

// Module registers its routes on the authenticated /v1 router.
type Module interface {
	Register(r chi.Router)
}

// RouterDeps holds everything NewRouter wires together.
type RouterDeps struct {
	Logger        *slog.Logger
	Metrics       *metrics.Metrics
	Authenticator middleware.Authenticator
	Modules       []Module
	HealthChecks  map[string]HealthCheck
	// RateLimit runs on /v1 after authentication when set.
	RateLimit func(http.Handler) http.Handler
}

// NewRouter builds the public HTTP handler. Every /v1 route requires a bearer
// token; /health does not.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.ClientMetadata)
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.AccessLog(deps.Logger, deps.Metrics))
	r.Use(chimw.Timeout(requestTimeout))

	r.Get("/health", handleHealth(deps.Logger, deps.HealthChecks))

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.RequireAuth(deps.Authenticator, deps.Logger))
		if deps.RateLimit != nil {
			r.Use(deps.RateLimit)
		}
		for _, m := range deps.Modules {
			m.Register(r)
		}
	})
	return r
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func handleHealth(logger *slog.Logger, checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{Status: "ok"}
		status := http.StatusOK
		if len(checks) > 0 {
			resp.Checks = make(map[string]string, len(checks))
		}
		for name, check := range checks {
			if err := check(r.Context()); err != nil {
				logger.WarnContext(r.Context(), "health check failed", "check", name, "error", err)
				resp.Checks[name] = "down"
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "up"
		}
		httputil.WriteJSON(w, status, resp)
	}
}
