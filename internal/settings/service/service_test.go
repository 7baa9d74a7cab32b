package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"registrar/internal/settings/models"
	"registrar/internal/settings/service/mocks"
	"registrar/internal/settings/store"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/platform/patch"
)

func code(t *testing.T, err error) (dErrors.Code, string) {
	t.Helper()
	de, ok := dErrors.As(err)
	require.True(t, ok, "expected a domain error, got %v", err)
	return de.Code, de.Message
}

func TestCreateRequiresKeyAndValue(t *testing.T) {
	svc, err := New(store.NewInMemory())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), models.SettingRequest{SettingValue: patch.Val("1")})
	c, msg := code(t, err)
	assert.Equal(t, dErrors.CodeBadRequest, c)
	assert.Equal(t, "settingKey is required", msg)
}

func TestDescriptionCanBeCleared(t *testing.T) {
	ctx := context.Background()
	svc, err := New(store.NewInMemory())
	require.NoError(t, err)
	_, err = svc.Create(ctx, models.SettingRequest{
		SettingKey: patch.Val("site_name"), SettingValue: patch.Val("Registry"), Description: patch.Val("Title"),
	})
	require.NoError(t, err)

	st, err := svc.Update(ctx, "site_name", models.SettingRequest{
		SettingValue: patch.Val("Registry of Unions"), Description: patch.NullField[string](),
	})
	require.NoError(t, err)
	assert.Nil(t, st.Description)
	assert.Equal(t, "Registry of Unions", st.SettingValue)
}

func TestStoreFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStore(ctrl)
	svc, err := New(st)
	require.NoError(t, err)

	st.EXPECT().List(gomock.Any()).Return(nil, errors.New("connection reset"))
	_, err = svc.List(context.Background())
	c, msg := code(t, err)
	assert.Equal(t, dErrors.CodeInternal, c)
	assert.Equal(t, "list settings", msg)

	st.EXPECT().Delete(gomock.Any(), "missing").Return(store.ErrKeyTaken)
	err = svc.Delete(context.Background(), "missing")
	c, _ = code(t, err)
	assert.Equal(t, dErrors.CodeInternal, c)
}
