package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"registrar/pkg/platform/sentinel"
)

func TestClassify(t *testing.T) {
	t.Run("unique violation is a conflict", func(t *testing.T) {
		raw := &pq.Error{Code: "23505", Constraint: "organizations_registration_number_key"}
		err := Classify(fmt.Errorf("insert: %w", raw))

		assert.ErrorIs(t, err, sentinel.ErrConflict)
		assert.Equal(t, "organizations_registration_number_key", Constraint(err))
		var pqErr *pq.Error
		assert.True(t, errors.As(err, &pqErr))
	})

	t.Run("foreign key violation is a reference", func(t *testing.T) {
		err := Classify(&pq.Error{Code: "23503", Constraint: "agreements_primary_organization_id_fkey"})
		assert.ErrorIs(t, err, sentinel.ErrReferenced)
		assert.NotErrorIs(t, err, sentinel.ErrConflict)
	})

	t.Run("no rows is not found", func(t *testing.T) {
		assert.ErrorIs(t, Classify(sql.ErrNoRows), sentinel.ErrNotFound)
	})

	t.Run("other errors pass through", func(t *testing.T) {
		raw := &pq.Error{Code: "42P01"}
		assert.Same(t, raw, Classify(raw))
		assert.NoError(t, Classify(nil))
		assert.Empty(t, Constraint(errors.New("x")))
	})
}

func TestMigrationNamesAreOrdered(t *testing.T) {
	names, err := MigrationNames()
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "0001_reference.sql", names[0])
	for i := 1; i < len(names); i++ {
		assert.Less(t, names[i-1], names[i])
	}
}

func TestLikeEscapesWildcards(t *testing.T) {
	assert.Equal(t, "%dock%", Like("dock"))
	assert.Equal(t, `%50\%\_off%`, Like("50%_off"))
}

func TestBuilderUsesDollarPlaceholders(t *testing.T) {
	query, args, err := Builder.Select("id").From("organizations").
		Where("status = ?", "active").Where("district_id = ?", 3).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM organizations WHERE status = $1 AND district_id = $2", query)
	assert.Equal(t, []any{"active", 3}, args)
}
