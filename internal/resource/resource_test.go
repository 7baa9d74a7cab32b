package resource

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"registrar/internal/platform/metrics"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/platform/audit"
	"registrar/pkg/platform/patch"
	"registrar/pkg/platform/sentinel"
)

type captured struct {
	events []audit.Event
}

func (c *captured) Emit(_ context.Context, ev audit.Event) error {
	c.events = append(c.events, ev)
	return nil
}

func TestCreatedCountsAndAudits(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	pub := &captured{}
	d := NewDeps(WithMetrics(m), WithAuditPublisher(pub))

	id := uuid.New()
	d.Created(context.Background(), "organization", id)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.EntitiesCreated.WithLabelValues("organization")))
	require.Len(t, pub.events, 1)
	assert.Equal(t, audit.Action("organization_created"), pub.events[0].Action)
	assert.Equal(t, id.String(), pub.events[0].EntityID)
}

func TestNotFoundTranslation(t *testing.T) {
	err := NotFound(fmt.Errorf("find: %w", sentinel.ErrNotFound), "Organization not found")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))

	err = NotFound(errors.New("connection refused"), "Organization not found")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
}

func TestEnum(t *testing.T) {
	allowed := []string{"active", "suspended"}
	v, err := Enum("status", " Suspended ", allowed)
	require.NoError(t, err)
	assert.Equal(t, "suspended", v)

	_, err = Enum("status", "closed", allowed)
	de, ok := dErrors.As(err)
	require.True(t, ok)
	assert.Equal(t, "Invalid status", de.Message)

	status := "active"
	require.Error(t, AssignEnum(&status, patch.NullField[string](), "status", allowed))
	require.NoError(t, AssignEnum(&status, patch.Field[string]{}, "status", allowed))
	assert.Equal(t, "active", status)
}

func TestBodyIDs(t *testing.T) {
	_, err := ParseID("organizationId", "not-a-uuid")
	de, ok := dErrors.As(err)
	require.True(t, ok)
	assert.Equal(t, "Invalid organizationId", de.Message)

	id, err := OptionalID("agreementId", patch.Val(""))
	require.NoError(t, err)
	assert.Nil(t, id)

	want := uuid.New()
	var ref *uuid.UUID
	require.NoError(t, AssignOptionalID(&ref, patch.Val(want.String()), "agreementId"))
	require.NotNil(t, ref)
	assert.Equal(t, want, *ref)
	require.NoError(t, AssignOptionalID(&ref, patch.NullField[string](), "agreementId"))
	assert.Nil(t, ref)
}
