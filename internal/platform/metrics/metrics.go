package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus collectors for the application.
type Metrics struct {
	RequestDuration *prometheus.HistogramVec
	EntitiesCreated *prometheus.CounterVec
	KeyConflicts    *prometheus.CounterVec
	AuthFailures    *prometheus.CounterVec
	RateLimited     *prometheus.CounterVec
	AuditDropped    prometheus.Counter
	RevocationCheck prometheus.Histogram
}

// New creates the collectors and registers them with reg. Pass
// prometheus.DefaultRegisterer in main and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "registrar_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		EntitiesCreated: f.NewCounterVec(prometheus.CounterOpts{
			Name: "registrar_entities_created_total",
			Help: "Entities created, by resource",
		}, []string{"resource"}),
		KeyConflicts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "registrar_natural_key_conflicts_total",
			Help: "Creates or updates rejected because a natural key was taken",
		}, []string{"resource"}),
		AuthFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "registrar_auth_failures_total",
			Help: "Rejected authentications by reason",
		}, []string{"reason"}),
		RateLimited: f.NewCounterVec(prometheus.CounterOpts{
			Name: "registrar_rate_limit_rejections_total",
			Help: "Requests rejected by the auth rate limiter",
		}, []string{"route"}),
		AuditDropped: f.NewCounter(prometheus.CounterOpts{
			Name: "registrar_audit_events_dropped_total",
			Help: "Audit events dropped because the publish buffer was full",
		}),
		RevocationCheck: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "registrar_token_revocation_check_duration_seconds",
			Help:    "Latency of token revocation lookups",
			Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025},
		}),
	}
}

func (m *Metrics) ObserveRequest(method, route, status string, seconds float64) {
	m.RequestDuration.WithLabelValues(method, route, status).Observe(seconds)
}

func (m *Metrics) IncrementCreated(resource string) {
	m.EntitiesCreated.WithLabelValues(resource).Inc()
}

func (m *Metrics) IncrementConflict(resource string) {
	m.KeyConflicts.WithLabelValues(resource).Inc()
}

func (m *Metrics) IncrementAuthFailure(reason string) {
	m.AuthFailures.WithLabelValues(reason).Inc()
}

func (m *Metrics) IncrementRateLimited(route string) {
	m.RateLimited.WithLabelValues(route).Inc()
}

func (m *Metrics) IncrementAuditDropped() {
	m.AuditDropped.Inc()
}

func (m *Metrics) ObserveRevocationCheck(seconds float64) {
	m.RevocationCheck.Observe(seconds)
}
