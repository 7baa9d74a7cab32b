//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"registrar/internal/agreement/models"
	"registrar/internal/agreement/store"
	orgmodels "registrar/internal/organization/models"
	orgStore "registrar/internal/organization/store"
	"registrar/internal/platform/postgres"
	"registrar/pkg/platform/dates"
	"registrar/pkg/platform/listing"
	"registrar/pkg/platform/sentinel"
	"registrar/pkg/testutil/containers"
)

func TestPostgresAgreementLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	pg := containers.GetManager().GetPostgres(t)
	ctx := context.Background()
	_, err := postgres.Migrate(ctx, pg.DB)
	require.NoError(t, err)
	require.NoError(t, pg.TruncateTables(ctx, "organizations", "agreements", "disputes"))

	now := time.Now().UTC()
	orgs := orgStore.NewPostgres(pg.DB)
	org := &orgmodels.Organization{
		ID: uuid.New(), RegistrationNumber: "IO-07", OrganizationName: "Dock Workers Union",
		RegistrationDate: dates.New(2020, time.January, 1), Status: orgmodels.StatusActive, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, orgs.Create(ctx, org))

	s := store.NewPostgres(pg.DB)
	expiry := dates.New(2024, time.April, 15)
	a := &models.Agreement{
		ID: uuid.New(), AgreementNumber: "CBA-001", AgreementName: "Port CBA", PrimaryOrganizationID: org.ID,
		EffectiveDate: dates.New(2024, time.January, 1), ExpiryDate: &expiry, Status: "active", CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, s.Create(ctx, a))
	dup := *a
	dup.ID = uuid.New()
	assert.ErrorIs(t, s.Create(ctx, &dup), store.ErrNumberTaken)

	am := &models.Amendment{ID: uuid.New(), AgreementID: a.ID, AmendmentNumber: "A1",
		AmendmentDate: dates.New(2024, time.February, 1), CreatedAt: now, UpdatedAt: now}
	require.NoError(t, s.CreateAmendment(ctx, am))
	d := &models.Dispute{ID: uuid.New(), DisputeNumber: "D-1", AgreementID: &a.ID, OrganizationID: org.ID,
		FilingDate: dates.New(2024, time.February, 10), Status: "pending", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, s.CreateDispute(ctx, d))

	before := dates.New(2024, time.May, 1)
	items, total, err := s.List(ctx, models.Filter{OrganizationID: &org.ID, ExpiringBefore: &before}, listing.Page{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, a.ID, items[0].ID)

	assert.ErrorIs(t, orgs.Delete(ctx, org.ID), sentinel.ErrReferenced)

	require.NoError(t, s.Delete(ctx, a.ID))
	_, err = s.FindAmendment(ctx, am.ID)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
	got, err := s.FindDispute(ctx, d.ID)
	require.NoError(t, err)
	assert.Nil(t, got.AgreementID)
}
