package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"registrar/pkg/platform/httputil"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
	statusDegraded  = "degraded"

	healthTimeout = 2 * time.Second
)

// Check pings one dependency.
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

// HealthView is the data of the /health envelope.
type HealthView struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Health reports the state of the configured dependencies. Any failing
// check turns the response into a 503 with status "degraded".
type Health struct {
	checks []Check
	logger *slog.Logger
}

func NewHealth(logger *slog.Logger, checks ...Check) *Health {
	return &Health{checks: checks, logger: logger}
}

func (h *Health) Report(ctx context.Context) HealthView {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	view := HealthView{Status: statusHealthy, Checks: make(map[string]string, len(h.checks))}
	for _, c := range h.checks {
		if err := c.Ping(ctx); err != nil {
			h.logger.WarnContext(ctx, "health check failed", "dependency", c.Name, "error", err)
			view.Checks[c.Name] = statusUnhealthy
			view.Status = statusDegraded
			continue
		}
		view.Checks[c.Name] = statusHealthy
	}
	return view
}

func (h *Health) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	view := h.Report(r.Context())
	if view.Status != statusHealthy {
		httputil.WriteJSON(w, http.StatusServiceUnavailable, httputil.Envelope{
			Success: false,
			Data:    view,
			Error:   "Service unavailable",
			Message: "Service is degraded",
		})
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, view, "Service is healthy")
}
