//go:build integration

package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authmodels "registrar/internal/auth/models"
	userStore "registrar/internal/auth/store/user"
	"registrar/internal/notification/models"
	"registrar/internal/notification/store"
	"registrar/internal/platform/postgres"
	"registrar/pkg/platform/listing"
	"registrar/pkg/platform/sentinel"
	"registrar/pkg/testutil/containers"
)

func setup(t *testing.T) (*store.PostgresStore, []uuid.UUID) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	pg := containers.GetManager().GetPostgres(t)
	ctx := context.Background()
	_, err := postgres.Migrate(ctx, pg.DB)
	require.NoError(t, err)
	require.NoError(t, pg.TruncateTables(ctx, "user_notifications", "notifications"))

	users := userStore.NewPostgres(pg.DB)
	now := time.Now().UTC()
	ids := make([]uuid.UUID, 3)
	for i := range ids {
		u := &authmodels.User{
			ID: uuid.New(), Username: "n-" + uuid.NewString()[:12], Email: uuid.NewString() + "@example.org",
			PasswordHash: "x", FirstName: "N", LastName: "User", Status: authmodels.StatusActive,
			CreatedAt: now, UpdatedAt: now,
		}
		require.NoError(t, users.Create(ctx, u))
		ids[i] = u.ID
	}
	return store.NewPostgres(pg.DB), ids
}

func notification(at time.Time, urgent bool) *models.Notification {
	expiry := at.Add(models.DefaultExpiry)
	return &models.Notification{
		ID: uuid.New(), NotificationType: "reminder", Title: "Renewal", Message: "Renew",
		IsUrgent: urgent, CreatedAt: at, ExpiryDate: &expiry,
	}
}

func TestFanOutAndReadTracking(t *testing.T) {
	s, users := setup(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	first := notification(now.Add(-time.Hour), false)
	second := notification(now, true)
	require.NoError(t, s.Create(ctx, first, users))
	require.NoError(t, s.Create(ctx, second, users[:1]))

	items, total, err := s.Inbox(ctx, users[0], models.Filter{}, listing.Page{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, second.ID, items[0].ID)

	_, err = s.Delivery(ctx, second.ID, users[1])
	assert.ErrorIs(t, err, store.ErrNotAddressed)
	_, err = s.Delivery(ctx, uuid.New(), users[1])
	assert.ErrorIs(t, err, sentinel.ErrNotFound)

	d, err := s.MarkRead(ctx, first.ID, users[0], now)
	require.NoError(t, err)
	assert.True(t, d.IsRead)

	n, err := s.MarkAllRead(ctx, users[0], now)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	unread, err := s.UnreadCount(ctx, users[1])
	require.NoError(t, err)
	assert.Equal(t, 1, unread)

	require.NoError(t, s.Delete(ctx, first.ID))
	unread, err = s.UnreadCount(ctx, users[1])
	require.NoError(t, err)
	assert.Equal(t, 0, unread)
}

func TestUnknownRecipientRollsBack(t *testing.T) {
	s, users := setup(t)
	ctx := context.Background()
	n := notification(time.Now().UTC(), false)
	err := s.Create(ctx, n, []uuid.UUID{users[0], uuid.New()})
	require.Error(t, err)
	assert.True(t, errors.Is(err, sentinel.ErrReferenced))

	_, err = s.Delivery(ctx, n.ID, users[0])
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}
