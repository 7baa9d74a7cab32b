//go:build integration

package store

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"registrar/internal/ratelimit/models"
	"registrar/pkg/testutil/containers"
)

func redisStore(t *testing.T) (*Redis, *containers.RedisContainer) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	rc := containers.GetManager().GetRedis(t)
	require.NoError(t, rc.Reset(context.Background()))
	return NewRedis(rc.Client), rc
}

func TestRedisWindowSlides(t *testing.T) {
	s, rc := redisStore(t)
	ctx := context.Background()
	now := time.Now().Truncate(time.Millisecond)
	s.now = func() time.Time { return now }
	key := models.AuthKey("10.0.0.1")

	for i := range 5 {
		r, err := s.Allow(ctx, key, 5, time.Minute)
		require.NoError(t, err)
		assert.True(t, r.Allowed)
		assert.Equal(t, 4-i, r.Remaining)
	}
	r, err := s.Allow(ctx, key, 5, time.Minute)
	require.NoError(t, err)
	assert.False(t, r.Allowed)
	assert.Equal(t, 60, r.RetryAfter)

	card, err := rc.Client.ZCard(ctx, key).Result()
	require.NoError(t, err)
	assert.EqualValues(t, 5, card, "denied requests are not recorded")

	ttl, err := rc.Client.PTTL(ctx, key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	now = now.Add(time.Minute + time.Millisecond)
	r, err = s.Allow(ctx, key, 5, time.Minute)
	require.NoError(t, err)
	assert.True(t, r.Allowed)
	assert.Equal(t, 4, r.Remaining)
}

func TestRedisConcurrentCallers(t *testing.T) {
	s, _ := redisStore(t)
	ctx := context.Background()

	var admitted atomic.Int32
	var wg sync.WaitGroup
	for range 40 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, err := s.Allow(ctx, "rl:auth:shared", 5, time.Minute)
			if err == nil && r.Allowed {
				admitted.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.EqualValues(t, 5, admitted.Load())
}
