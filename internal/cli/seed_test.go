package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"registrar/internal/auth/secrets"
	userstore "registrar/internal/auth/store/user"
	"registrar/internal/reference"
	refstore "registrar/internal/reference/store"
)

const seedWithAdmin = `
roles:
  - code: SUPER_ADMIN
    name: Super Administrator
types:
  organization:
    - name: Trade Union
regions:
  - name: Central
    districts: [Lilongwe, Dedza]
admin:
  username: root
  email: Root@Example.org
  password: change-me-now
  firstName: Registry
  lastName: Admin
`

func TestParseSeedFile(t *testing.T) {
	t.Run("default reference data", func(t *testing.T) {
		seed, err := ParseSeedFile(nil)
		require.NoError(t, err)
		assert.Nil(t, seed.Admin)
		assert.NotEmpty(t, seed.Reference.Roles)
		assert.NotEmpty(t, seed.Reference.Types[reference.KindOrganization])
	})

	t.Run("file with admin", func(t *testing.T) {
		seed, err := ParseSeedFile([]byte(seedWithAdmin))
		require.NoError(t, err)
		require.NotNil(t, seed.Admin)
		assert.Equal(t, "root", seed.Admin.Username)
		require.Len(t, seed.Reference.Regions, 1)
		assert.Equal(t, []string{"Lilongwe", "Dedza"}, seed.Reference.Regions[0].Districts)
	})

	t.Run("admin without password", func(t *testing.T) {
		_, err := ParseSeedFile([]byte("admin:\n  username: root\n  email: root@example.org\n"))
		assert.ErrorContains(t, err, "password is required")
	})

	t.Run("unknown lookup kind", func(t *testing.T) {
		_, err := ParseSeedFile([]byte("types:\n  vehicle:\n    - name: Truck\n"))
		assert.Error(t, err)
	})
}

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()
	seed, err := ParseSeedFile([]byte(seedWithAdmin))
	require.NoError(t, err)

	refs := refstore.NewInMemory()
	require.NoError(t, reference.Apply(ctx, refs, seed.Reference))
	users := userstore.New()
	now := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)

	created, err := EnsureAdmin(ctx, users, refs, *seed.Admin, now)
	require.NoError(t, err)
	assert.True(t, created)

	u, err := users.FindByEmail(ctx, "root@example.org")
	require.NoError(t, err)
	assert.True(t, u.IsActive())
	require.NotNil(t, u.RoleID)
	role, err := refs.RoleByID(ctx, *u.RoleID)
	require.NoError(t, err)
	assert.Equal(t, "SUPER_ADMIN", role.RoleCode)
	assert.NoError(t, secrets.Verify("change-me-now", u.PasswordHash))

	created, err = EnsureAdmin(ctx, users, refs, *seed.Admin, now)
	require.NoError(t, err)
	assert.False(t, created, "second run leaves the account alone")
}

func TestEnsureAdminNeedsRole(t *testing.T) {
	_, err := EnsureAdmin(context.Background(), userstore.New(), refstore.NewInMemory(), AdminSeed{
		Username: "root", Email: "root@example.org", Password: "pw",
	}, time.Now())
	assert.ErrorContains(t, err, "SUPER_ADMIN")
}

func TestEnsureAdminDerivesNames(t *testing.T) {
	ctx := context.Background()
	refs := refstore.NewInMemory()
	_, err := refs.UpsertRole(ctx, reference.Role{RoleCode: "SUPER_ADMIN", RoleName: "Super Administrator"})
	require.NoError(t, err)
	users := userstore.New()

	created, err := EnsureAdmin(ctx, users, refs, AdminSeed{
		Username: "gbanda", Email: "grace.banda@labour.gov.mw", Password: "pw",
	}, time.Now())
	require.NoError(t, err)
	require.True(t, created)

	u, err := users.FindByEmail(ctx, "grace.banda@labour.gov.mw")
	require.NoError(t, err)
	assert.Equal(t, "Grace", u.FirstName)
	assert.Equal(t, "Banda", u.LastName)
}
