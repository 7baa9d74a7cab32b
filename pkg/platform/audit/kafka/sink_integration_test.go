//go:build integration

package kafka

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	audit "registrar/pkg/platform/audit"
	"registrar/pkg/testutil/containers"
)

func TestSinkProducesJSONRecords(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	kc := containers.GetManager().GetKafka(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	topic := "audit-" + uuid.NewString()[:8]
	sink, err := New(kc.Brokers, topic)
	require.NoError(t, err)
	defer sink.Close()
	require.NoError(t, sink.EnsureTopic(ctx, 1))
	require.NoError(t, sink.EnsureTopic(ctx, 1), "second call tolerates an existing topic")

	orgID := uuid.NewString()
	require.NoError(t, sink.Append(ctx, audit.Event{
		ID:         uuid.New(),
		Action:     audit.EntityAction("organization", audit.VerbCreated),
		Category:   audit.CategoryCompliance,
		EntityType: "organization",
		EntityID:   orgID,
		Timestamp:  time.Now().UTC(),
	}))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(kc.Brokers...),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer consumer.Close()

	fetches := consumer.PollFetches(ctx)
	require.NoError(t, fetches.Err())
	records := fetches.Records()
	require.Len(t, records, 1)
	assert.Equal(t, orgID, string(records[0].Key))

	var got audit.Event
	require.NoError(t, json.Unmarshal(records[0].Value, &got))
	assert.Equal(t, audit.Action("organization_created"), got.Action)
}
