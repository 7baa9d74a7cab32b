package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCountersAreLabelled(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncrementCreated("organization")
	m.IncrementCreated("organization")
	m.IncrementConflict("organization")
	m.IncrementAuthFailure("expired")
	m.IncrementAuditDropped()

	assert.InDelta(t, 2, testutil.ToFloat64(m.EntitiesCreated.WithLabelValues("organization")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.KeyConflicts.WithLabelValues("organization")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.AuthFailures.WithLabelValues("expired")), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(m.AuthFailures.WithLabelValues("revoked")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.AuditDropped), 0)
}

func TestNewOnSeparateRegistriesDoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}
