package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authmodels "registrar/internal/auth/models"
	userStore "registrar/internal/auth/store/user"
	"registrar/internal/authz"
	refstore "registrar/internal/reference/store"
	"registrar/internal/users/service"
	"registrar/pkg/platform/listing"
	"registrar/pkg/requestcontext"
	"registrar/pkg/testutil"
)

type fixture struct {
	router http.Handler
	store  *userStore.InMemoryUserStore
	viewer int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	dir, err := refstore.NewSeededInMemory(ctx)
	require.NoError(t, err)
	viewer, err := dir.RoleByCode(ctx, "VIEWER")
	require.NoError(t, err)

	store := userStore.New()
	svc, err := service.New(store, dir)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := chi.NewRouter()
	r.Route("/api/users", New(svc, logger).Register)
	return &fixture{router: r, store: store, viewer: viewer.ID}
}

func (f *fixture) seed(t *testing.T, username string) *authmodels.User {
	t.Helper()
	u := &authmodels.User{
		ID: uuid.New(), Username: username, Email: username + "@example.org",
		FirstName: "F", LastName: "L", RoleID: &f.viewer, Status: authmodels.StatusActive,
	}
	require.NoError(t, f.store.Create(context.Background(), u))
	return u
}

func as(req *http.Request, id uuid.UUID, role string) *http.Request {
	return testutil.WithCaller(req, requestcontext.Caller{UserID: id, Role: role})
}

func TestListRequiresUsersManage(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "amos")

	rr := testutil.DoRequest(f.router, as(testutil.NewRequest(t, http.MethodGet, "/api/users/"), uuid.New(), "REGISTRAR"))
	testutil.AssertFailure(t, rr, http.StatusForbidden, "You do not have permission to manage users")

	rr = testutil.DoRequest(f.router, as(testutil.NewRequest(t, http.MethodGet, "/api/users/?search=AMO"), uuid.New(), "ADMIN"))
	require.Equal(t, http.StatusOK, rr.Code)
	env := testutil.DecodeEnvelope[listing.Result[authmodels.UserView]](t, rr)
	assert.Equal(t, "Users retrieved successfully", env.Message)
	require.Len(t, env.Data.Items, 1)
	assert.Equal(t, "amos", env.Data.Items[0].Username)
}

func TestGetUser(t *testing.T) {
	f := newFixture(t)
	u := f.seed(t, "beatrice")

	cases := []struct {
		name   string
		path   string
		caller uuid.UUID
		role   string
		status int
		msg    string
	}{
		{"self", "/api/users/" + u.ID.String(), u.ID, "VIEWER", http.StatusOK, "User retrieved successfully"},
		{"other viewer", "/api/users/" + u.ID.String(), uuid.New(), "VIEWER", http.StatusForbidden, "You do not have permission to view this user"},
		{"malformed id", "/api/users/not-a-uuid", uuid.New(), "ADMIN", http.StatusNotFound, "User not found"},
		{"unknown id", "/api/users/" + uuid.NewString(), uuid.New(), "ADMIN", http.StatusNotFound, "User not found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := testutil.DoRequest(f.router, as(testutil.NewRequest(t, http.MethodGet, tc.path), tc.caller, tc.role))
			testutil.AssertStatus(t, rr, tc.status)
			assert.Equal(t, tc.msg, testutil.UnmarshalErrorResponse(t, rr).Message)
		})
	}
}

func TestCreateAndDelete(t *testing.T) {
	f := newFixture(t)
	adminID := uuid.New()

	rr := testutil.DoRequest(f.router, as(testutil.NewJSONRequest(t, http.MethodPost, "/api/users/", map[string]any{
		"username": "chipo", "email": "chipo@example.org", "password": "pw-123456",
		"firstName": "Chipo", "lastName": "Dube", "roleId": f.viewer,
	}), adminID, "ADMIN"))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	created := testutil.DecodeEnvelope[authmodels.UserView](t, rr)
	assert.Equal(t, "User created successfully", created.Message)
	assert.Equal(t, "ACTIVE", created.Data.Status)

	path := "/api/users/" + created.Data.ID.String()
	rr = testutil.DoRequest(f.router, as(testutil.NewRequest(t, http.MethodDelete, path), created.Data.ID, "ADMIN"))
	testutil.AssertFailure(t, rr, http.StatusBadRequest, "You cannot delete your own account")

	rr = testutil.DoRequest(f.router, as(testutil.NewRequest(t, http.MethodDelete, path), adminID, "ADMIN"))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "User deleted successfully", testutil.UnmarshalErrorResponse(t, rr).Message)

	rr = testutil.DoRequest(f.router, as(testutil.NewRequest(t, http.MethodDelete, path), adminID, "ADMIN"))
	testutil.AssertFailure(t, rr, http.StatusNotFound, "User not found")
}

func TestUpdateEmptyBody(t *testing.T) {
	f := newFixture(t)
	u := f.seed(t, "dalitso")

	rr := testutil.DoRequest(f.router, as(testutil.NewRequestWithBody(t, http.MethodPut, "/api/users/"+u.ID.String(), "{}"), u.ID, "VIEWER"))
	testutil.AssertFailure(t, rr, http.StatusBadRequest, "No data provided")

	rr = testutil.DoRequest(f.router, as(testutil.NewJSONRequest(t, http.MethodPut, "/api/users/"+u.ID.String(), map[string]any{
		"phone": "+265 999 000 111",
	}), u.ID, "VIEWER"))
	require.Equal(t, http.StatusOK, rr.Code)
	env := testutil.DecodeEnvelope[authmodels.UserView](t, rr)
	assert.Equal(t, "User updated successfully", env.Message)
	require.NotNil(t, env.Data.Phone)
}

func TestPermissionsAndRoles(t *testing.T) {
	f := newFixture(t)

	rr := testutil.DoRequest(f.router, as(testutil.NewRequest(t, http.MethodGet, "/api/users/permissions"), uuid.New(), "SUPER_ADMIN"))
	require.Equal(t, http.StatusOK, rr.Code)
	env := testutil.DecodeEnvelope[[]authz.Grant](t, rr)
	assert.Equal(t, "Permissions retrieved successfully", env.Message)
	assert.Len(t, env.Data, len(authz.Table()))

	rr = testutil.DoRequest(f.router, as(testutil.NewRequest(t, http.MethodGet, "/api/users/roles"), uuid.New(), "VIEWER"))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Roles retrieved successfully", testutil.UnmarshalErrorResponse(t, rr).Message)
}
