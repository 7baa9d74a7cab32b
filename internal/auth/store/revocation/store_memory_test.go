package revocation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"registrar/pkg/platform/sentinel"
)

func TestInMemoryTRL(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	trl := NewInMemoryTRL(clock)
	ctx := context.Background()

	revoked, err := trl.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, trl.RevokeToken(ctx, "jti-1", time.Hour))
	revoked, _ = trl.IsRevoked(ctx, "jti-1")
	assert.True(t, revoked)

	now = now.Add(time.Hour)
	revoked, _ = trl.IsRevoked(ctx, "jti-1")
	assert.False(t, revoked, "revocation lapses with the token")

	t.Run("empty jti is ignored", func(t *testing.T) {
		require.NoError(t, trl.RevokeToken(ctx, "", time.Hour))
		revoked, _ := trl.IsRevoked(ctx, "")
		assert.False(t, revoked)
	})

	t.Run("non-positive ttl rejected", func(t *testing.T) {
		err := trl.RevokeToken(ctx, "jti-2", 0)
		assert.ErrorIs(t, err, sentinel.ErrInvalidState)
	})
}
