//go:build integration

package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"registrar/internal/platform/postgres"
	"registrar/internal/reference"
	"registrar/internal/reference/store"
	"registrar/pkg/platform/sentinel"
	"registrar/pkg/testutil/containers"
)

func TestPostgresStoreSeedAndTypes(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	pg := containers.GetManager().GetPostgres(t)
	ctx := context.Background()
	_, err := postgres.Migrate(ctx, pg.DB)
	require.NoError(t, err)
	require.NoError(t, pg.TruncateTables(ctx, "roles", "positions", "regions", "document_types"))

	s := store.NewPostgres(pg.DB)
	seed, err := reference.DefaultSeed()
	require.NoError(t, err)
	require.NoError(t, reference.Apply(ctx, s, seed))
	require.NoError(t, reference.Apply(ctx, s, seed))

	roles, err := s.ListRoles(ctx)
	require.NoError(t, err)
	assert.Len(t, roles, len(seed.Roles))

	admin, err := s.RoleByCode(ctx, "ADMIN")
	require.NoError(t, err)
	byID, err := s.RoleByID(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, admin.RoleName, byID.RoleName)

	districts, err := s.ListDistricts(ctx, nil)
	require.NoError(t, err)
	require.NotEmpty(t, districts)
	assert.NotNil(t, districts[0].Region)

	dup := &reference.LookupType{TypeName: "Constitution"}
	assert.ErrorIs(t, s.CreateType(ctx, reference.KindDocument, dup), sentinel.ErrConflict)

	assert.ErrorIs(t, s.DeleteType(ctx, reference.KindDocument, 999999), sentinel.ErrNotFound)
}
