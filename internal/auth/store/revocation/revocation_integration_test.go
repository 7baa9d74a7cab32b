//go:build integration

package revocation_test

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"registrar/internal/auth/store/revocation"
	"registrar/internal/platform/metrics"
	"registrar/internal/platform/postgres"
	"registrar/pkg/testutil/containers"
)

func TestRedisTRL(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	rc := containers.GetManager().GetRedis(t)
	ctx := context.Background()
	require.NoError(t, rc.Reset(ctx))

	trl := revocation.NewRedisTRL(rc.Client, revocation.WithLatencyObserver(metrics.New(prometheus.NewRegistry())))
	require.NoError(t, trl.RevokeToken(ctx, "jti-redis", time.Minute))

	revoked, err := trl.IsRevoked(ctx, "jti-redis")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = trl.IsRevoked(ctx, "jti-other")
	require.NoError(t, err)
	assert.False(t, revoked)

	ttl, err := rc.Client.TTL(ctx, "trl:jti:jti-redis").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}

func TestPostgresTRL(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	pg := containers.GetManager().GetPostgres(t)
	ctx := context.Background()
	_, err := postgres.Migrate(ctx, pg.DB)
	require.NoError(t, err)
	require.NoError(t, pg.TruncateTables(ctx, "token_revocations"))

	now := time.Now().UTC()
	trl := revocation.NewPostgresTRL(pg.DB, revocation.WithPostgresClock(func() time.Time { return now }))

	require.NoError(t, trl.RevokeToken(ctx, "jti-pg", time.Minute))
	revoked, err := trl.IsRevoked(ctx, "jti-pg")
	require.NoError(t, err)
	assert.True(t, revoked)

	now = now.Add(2 * time.Minute)
	revoked, err = trl.IsRevoked(ctx, "jti-pg")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, trl.RevokeToken(ctx, "jti-next", time.Minute))
	var n int
	require.NoError(t, pg.DB.QueryRowContext(ctx, `SELECT count(*) FROM token_revocations`).Scan(&n))
	assert.Equal(t, 1, n, "lapsed rows are purged on write")
}
