package handler

import (
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"registrar/internal/settings/models"
	"registrar/internal/settings/service"
	"registrar/internal/settings/store"
	"registrar/pkg/testutil"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	svc, err := service.New(store.NewInMemory())
	require.NoError(t, err)
	r := chi.NewRouter()
	r.Route("/api/settings", New(svc, slog.New(slog.NewTextHandler(io.Discard, nil))).Register)
	return r
}

func admin(req *http.Request) *http.Request {
	req, _ = testutil.AsRole(req, "ADMIN")
	return req
}

func TestSettingsNeedCapability(t *testing.T) {
	r := newRouter(t)
	req, _ := testutil.AsRole(testutil.NewRequest(t, http.MethodGet, "/api/settings"), "REGISTRAR")
	rr := testutil.DoRequest(r, req)
	testutil.AssertFailure(t, rr, http.StatusForbidden, "You do not have permission to manage system settings")

	rr = testutil.DoRequest(r, testutil.NewRequest(t, http.MethodGet, "/api/settings"))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestSettingLifecycle(t *testing.T) {
	r := newRouter(t)
	rr := testutil.DoRequest(r, admin(testutil.NewJSONRequest(t, http.MethodPost, "/api/settings", map[string]any{
		"settingKey": "renewal_reminder_days", "settingValue": "30", "description": "Days before expiry",
	})))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = testutil.DoRequest(r, admin(testutil.NewJSONRequest(t, http.MethodPost, "/api/settings", map[string]any{
		"settingKey": "renewal_reminder_days", "settingValue": "45",
	})))
	testutil.AssertFailure(t, rr, http.StatusConflict, "Setting with this key already exists")

	rr = testutil.DoRequest(r, admin(testutil.NewJSONRequest(t, http.MethodPut, "/api/settings/renewal_reminder_days",
		map[string]any{"description": "only"})))
	testutil.AssertFailure(t, rr, http.StatusBadRequest, "settingValue is required")

	// Partial update keeps the description; repeating it is idempotent.
	for range 2 {
		rr = testutil.DoRequest(r, admin(testutil.NewJSONRequest(t, http.MethodPut, "/api/settings/renewal_reminder_days",
			map[string]any{"settingValue": "60"})))
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		st := testutil.DecodeEnvelope[models.Setting](t, rr).Data
		assert.Equal(t, "60", st.SettingValue)
		require.NotNil(t, st.Description)
		assert.Equal(t, "Days before expiry", *st.Description)
	}

	rr = testutil.DoRequest(r, admin(testutil.NewRequest(t, http.MethodGet, "/api/settings")))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, testutil.DecodeEnvelope[[]models.Setting](t, rr).Data, 1)

	rr = testutil.DoRequest(r, admin(testutil.NewRequest(t, http.MethodDelete, "/api/settings/renewal_reminder_days")))
	require.Equal(t, http.StatusOK, rr.Code)
	rr = testutil.DoRequest(r, admin(testutil.NewRequest(t, http.MethodGet, "/api/settings/renewal_reminder_days")))
	testutil.AssertFailure(t, rr, http.StatusNotFound, "Setting not found")
}
