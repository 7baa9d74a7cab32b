package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	authmodels "registrar/internal/auth/models"
	"registrar/internal/notification/models"
	"registrar/internal/notification/service/mocks"
	"registrar/internal/notification/store"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/platform/listing"
	"registrar/pkg/platform/patch"
	"registrar/pkg/requestcontext"
)

var now = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func request(ids ...string) models.NotificationRequest {
	return models.NotificationRequest{
		NotificationType: patch.Val("deadline"),
		Title:            patch.Val("Annual return due"),
		Message:          patch.Val("Submit the annual return by 31 March"),
		UserIDs:          patch.Val(ids),
	}
}

func TestCreateDefaultsExpiryAndDeduplicates(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUsers(ctrl)
	svc, err := New(store.NewInMemory(), users)
	require.NoError(t, err)

	a, b := uuid.New(), uuid.New()
	users.EXPECT().FindByID(gomock.Any(), a).Return(&authmodels.User{ID: a}, nil)
	users.EXPECT().FindByID(gomock.Any(), b).Return(&authmodels.User{ID: b}, nil)

	ctx := requestcontext.WithTime(context.Background(), now)
	out, err := svc.Create(ctx, request(a.String(), b.String(), a.String()))
	require.NoError(t, err)
	assert.Equal(t, 2, out.UserCount)
	require.NotNil(t, out.Notification.ExpiryDate)
	assert.Equal(t, now.Add(30*24*time.Hour), *out.Notification.ExpiryDate)
	assert.False(t, out.Notification.IsUrgent)

	inbox, err := svc.Inbox(requestcontext.WithCaller(ctx, requestcontext.Caller{UserID: b}), models.Filter{}, pageOne)
	require.NoError(t, err)
	assert.Equal(t, 1, inbox.UnreadCount)
}

func TestCreateParsesExplicitExpiry(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUsers(ctrl)
	svc, err := New(store.NewInMemory(), users)
	require.NoError(t, err)

	id := uuid.New()
	users.EXPECT().FindByID(gomock.Any(), id).Return(&authmodels.User{ID: id}, nil)
	req := request(id.String())
	req.ExpiryDate = patch.Val("2024-04-01T00:00:00+00:00")
	out, err := svc.Create(requestcontext.WithTime(context.Background(), now), req)
	require.NoError(t, err)
	assert.True(t, out.Notification.ExpiryDate.Equal(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)))
}

func TestInboxNeedsCaller(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, err := New(mocks.NewMockStore(ctrl), mocks.NewMockUsers(ctrl))
	require.NoError(t, err)
	_, err = svc.Inbox(context.Background(), models.Filter{}, pageOne)
	de, ok := dErrors.As(err)
	require.True(t, ok)
	assert.Equal(t, dErrors.CodeUnauthorized, de.Code)
}

func TestStoreFailureIsInternal(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStore(ctrl)
	svc, err := New(st, mocks.NewMockUsers(ctrl))
	require.NoError(t, err)

	userID := uuid.New()
	ctx := requestcontext.WithCaller(context.Background(), requestcontext.Caller{UserID: userID})
	st.EXPECT().Inbox(gomock.Any(), userID, models.Filter{}, pageOne).Return([]models.Delivery{}, 0, nil)
	st.EXPECT().UnreadCount(gomock.Any(), userID).Return(0, errors.New("connection reset"))
	_, err = svc.Inbox(ctx, models.Filter{}, pageOne)
	de, ok := dErrors.As(err)
	require.True(t, ok)
	assert.Equal(t, dErrors.CodeInternal, de.Code)
	assert.Equal(t, "count unread", de.Message)
}

var pageOne = listing.Page{Page: 1, PageSize: 10}
