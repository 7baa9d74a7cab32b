//go:build integration

package store_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"registrar/internal/ballot/models"
	"registrar/internal/ballot/store"
	orgmodels "registrar/internal/organization/models"
	orgStore "registrar/internal/organization/store"
	"registrar/internal/platform/postgres"
	"registrar/pkg/platform/dates"
	"registrar/pkg/platform/listing"
	"registrar/pkg/testutil/containers"
)

func TestPostgresConcurrentResultUpsert(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	pg := containers.GetManager().GetPostgres(t)
	ctx := context.Background()
	_, err := postgres.Migrate(ctx, pg.DB)
	require.NoError(t, err)
	require.NoError(t, pg.TruncateTables(ctx, "organizations", "ballot_elections"))

	now := time.Now().UTC()
	orgs := orgStore.NewPostgres(pg.DB)
	org := &orgmodels.Organization{
		ID: uuid.New(), RegistrationNumber: "IO-07", OrganizationName: "Dock Workers Union",
		RegistrationDate: dates.New(2020, time.January, 1), Status: orgmodels.StatusActive, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, orgs.Create(ctx, org))

	s := store.NewPostgres(pg.DB)
	e := &models.Election{
		ID: uuid.New(), ElectionNumber: "EL-001", OrganizationID: org.ID, ElectionDate: dates.New(2024, time.June, 15),
		Purpose: "Executive committee", Status: "scheduled", CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, s.Create(ctx, e))
	dup := *e
	dup.ID = uuid.New()
	assert.ErrorIs(t, s.Create(ctx, &dup), store.ErrNumberTaken)

	ghost := uuid.New()
	bad := *e
	bad.ID, bad.ElectionNumber, bad.SupervisorID = uuid.New(), "EL-002", &ghost
	assert.ErrorIs(t, s.Create(ctx, &bad), store.ErrUnknownSupervisor)

	p := &models.Position{ID: uuid.New(), ElectionID: e.ID, PositionName: "Chair", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, s.CreatePosition(ctx, p))
	c := &models.Candidate{ID: uuid.New(), PositionID: p.ID, FirstName: "Ada", LastName: "Mensah", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, s.CreateCandidate(ctx, c))

	const workers = 20
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inserts int
	)
	for i := range workers {
		wg.Add(1)
		go func(votes int) {
			defer wg.Done()
			r := &models.Result{
				ID: uuid.New(), ElectionID: e.ID, PositionID: p.ID, CandidateID: c.ID,
				VotesReceived: votes, CreatedAt: now, UpdatedAt: now,
			}
			created, err := s.UpsertResult(ctx, r)
			assert.NoError(t, err)
			if created {
				mu.Lock()
				inserts++
				mu.Unlock()
			}
		}(i + 1)
	}
	wg.Wait()
	assert.Equal(t, 1, inserts)

	results, err := s.ListResults(ctx, e.ID)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Ada Mensah", results[0].CandidateName)

	items, total, err := s.List(ctx, models.Filter{OrganizationID: &org.ID}, listing.Page{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, items, 1)

	require.NoError(t, s.Delete(ctx, e.ID))
	_, err = s.FindCandidate(ctx, c.ID)
	assert.Error(t, err)
}
