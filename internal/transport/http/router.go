// Package httptransport assembles the registry API: the shared middleware
// chain, the public auth routes, the guarded resource modules, health and
// metrics.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	platformmw "registrar/internal/platform/middleware"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/platform/httputil"
	"registrar/pkg/platform/middleware/metadata"
	request "registrar/pkg/platform/middleware/request"
	"registrar/pkg/platform/middleware/requesttime"
)

// DefaultRequestTimeout bounds every request context.
const DefaultRequestTimeout = 30 * time.Second

// Module is a resource family mounted under /api.
type Module struct {
	Path     string
	Register func(chi.Router)
}

// AuthRoutes mounts /api/auth. It chooses itself which routes are guarded
// and which are rate limited.
type AuthRoutes interface {
	Register(r chi.Router, guard, limit func(http.Handler) http.Handler)
}

// Config carries everything NewRouter mounts. Latency, MetricsHandler,
// AuthLimit and Health are optional.
type Config struct {
	Logger         *slog.Logger
	Latency        platformmw.LatencyObserver
	MetricsHandler http.Handler
	Guard          func(http.Handler) http.Handler
	AuthLimit      func(http.Handler) http.Handler
	Auth           AuthRoutes
	Modules        []Module
	Health         *Health
	RequestTimeout time.Duration
}

func NewRouter(cfg Config) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(request.Recovery(logger))
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	r.Use(request.Logger(logger))
	r.Use(request.Timeout(timeout))
	if cfg.Latency != nil {
		r.Use(platformmw.LatencyMiddleware(cfg.Latency))
	}

	health := cfg.Health
	if health == nil {
		health = NewHealth(logger)
	}
	r.Get("/health", health.ServeHTTP)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(request.ContentTypeJSON)
		r.Get("/health", health.ServeHTTP)
		if cfg.Auth != nil {
			r.Route("/auth", func(r chi.Router) {
				cfg.Auth.Register(r, cfg.Guard, cfg.AuthLimit)
			})
		}
		r.Group(func(r chi.Router) {
			r.Use(cfg.Guard)
			for _, m := range cfg.Modules {
				r.Route(m.Path, m.Register)
			}
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "Resource not found"))
	})
	return r
}
