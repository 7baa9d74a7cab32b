//go:build integration

package store_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"registrar/internal/platform/postgres"
	"registrar/internal/training/models"
	"registrar/internal/training/store"
	"registrar/pkg/platform/dates"
	"registrar/pkg/platform/listing"
	"registrar/pkg/testutil/containers"
)

func TestPostgresCapacityUnderConcurrency(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	pg := containers.GetManager().GetPostgres(t)
	ctx := context.Background()
	_, err := postgres.Migrate(ctx, pg.DB)
	require.NoError(t, err)
	require.NoError(t, pg.TruncateTables(ctx, "training_workshops"))

	now := time.Now().UTC()
	limit := 3
	s := store.NewPostgres(pg.DB)
	w := &models.Workshop{
		ID: uuid.New(), WorkshopName: "Negotiation", StartDate: dates.New(2024, time.April, 8),
		EndDate: dates.New(2024, time.April, 9), MaxParticipants: &limit, Status: "scheduled", CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, s.Create(ctx, w))

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		ok   int
		full int
	)
	for range 12 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.AddParticipant(ctx, &models.Participant{
				ID: uuid.New(), WorkshopID: w.ID, FirstName: "Ama", LastName: "Owusu",
				AttendanceStatus: models.AttendanceRegistered, CreatedAt: now, UpdatedAt: now,
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, store.ErrWorkshopFull):
				full++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, limit, ok)
	assert.Equal(t, 12-limit, full)

	participants, err := s.ListParticipants(ctx, w.ID)
	require.NoError(t, err)
	assert.Len(t, participants, limit)

	items, total, err := s.List(ctx, models.Filter{Search: ptr("negot")}, listing.Page{Page: 1, PageSize: 5})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, items, 1)

	require.NoError(t, s.Delete(ctx, w.ID))
	_, err = s.FindParticipant(ctx, participants[0].ID)
	assert.Error(t, err)
}

func ptr[T any](v T) *T { return &v }
