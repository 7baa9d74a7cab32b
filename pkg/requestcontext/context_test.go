package requestcontext

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCallerRoundTrip(t *testing.T) {
	ctx := context.Background()
	_, ok := CallerFrom(ctx)
	assert.False(t, ok)
	assert.Equal(t, uuid.Nil, UserID(ctx))

	id := uuid.New()
	ctx = WithCaller(ctx, Caller{UserID: id, Username: "alice", Role: "REGISTRAR"})
	c, ok := CallerFrom(ctx)
	assert.True(t, ok)
	assert.Equal(t, "alice", c.Username)
	assert.Equal(t, id, UserID(ctx))
}

func TestNowPrefersInjectedTime(t *testing.T) {
	fixed := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, fixed, Now(WithTime(context.Background(), fixed)))
	assert.WithinDuration(t, time.Now(), Now(context.Background()), time.Second)
}
