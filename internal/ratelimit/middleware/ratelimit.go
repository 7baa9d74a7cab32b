// Package middleware throttles authentication routes per client IP.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/netip"
	"strconv"
	"time"

	"registrar/internal/platform/config"
	"registrar/internal/ratelimit/models"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/platform/httputil"
	"registrar/pkg/requestcontext"
)

// Store is a sliding-window counter.
type Store interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.Result, error)
}

// Recorder counts rejected requests.
type Recorder interface {
	IncrementRateLimited(route string)
}

type Middleware struct {
	store    Store
	limit    int
	window   time.Duration
	disabled bool
	logger   *slog.Logger
	metrics  Recorder
}

type Option func(*Middleware)

func WithMetrics(r Recorder) Option {
	return func(m *Middleware) { m.metrics = r }
}

func New(store Store, cfg config.RateLimitConfig, logger *slog.Logger, opts ...Option) *Middleware {
	m := &Middleware{
		store:    store,
		limit:    cfg.Limit,
		window:   cfg.Window,
		disabled: cfg.Disabled,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.disabled {
		logger.Info("auth rate limiting disabled")
	}
	return m
}

// RateLimitAuth admits at most limit requests per window from each client
// IP, whatever account the request names. One bucket covers every route the
// middleware wraps. Store failures let the request through.
func (m *Middleware) RateLimitAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if m.disabled {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			ip := requestcontext.ClientIP(ctx)
			result, err := m.store.Allow(ctx, models.AuthKey(ip), m.limit, m.window)
			if err != nil {
				m.logger.ErrorContext(ctx, "rate limit check failed", "error", err, "ip_prefix", ipPrefix(ip))
				next.ServeHTTP(w, r)
				return
			}

			addRateLimitHeaders(w, result)
			if !result.Allowed {
				if m.metrics != nil {
					m.metrics.IncrementRateLimited(r.URL.Path)
				}
				m.logger.WarnContext(ctx, "auth request rate limited", "path", r.URL.Path, "ip_prefix", ipPrefix(ip))
				w.Header().Set("Retry-After", strconv.Itoa(result.RetryAfter))
				httputil.WriteFailure(w, http.StatusTooManyRequests, dErrors.CodeRateLimited, "Too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func addRateLimitHeaders(w http.ResponseWriter, result *models.Result) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
}

// ipPrefix keeps the network part of an address for logs: /24 for IPv4,
// /48 for IPv6.
func ipPrefix(ip string) string {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return "invalid"
	}
	bits := 48
	if addr.Is4() {
		bits = 24
	}
	p, err := addr.Prefix(bits)
	if err != nil {
		return "invalid"
	}
	return p.String()
}
