//go:build integration

package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"registrar/internal/platform/postgres"
	"registrar/pkg/testutil/containers"
)

func TestMigrateIsIdempotent(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	pg := containers.GetManager().GetPostgres(t)
	ctx := context.Background()

	_, err := postgres.Migrate(ctx, pg.DB)
	require.NoError(t, err)

	again, err := postgres.Migrate(ctx, pg.DB)
	require.NoError(t, err)
	assert.Empty(t, again)

	var n int
	require.NoError(t, pg.DB.QueryRowContext(ctx, `SELECT count(*) FROM schema_migrations`).Scan(&n))
	names, err := postgres.MigrationNames()
	require.NoError(t, err)
	assert.Equal(t, len(names), n)
}
