package authz

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/requestcontext"
)

func TestParseRoleIsExact(t *testing.T) {
	assert.Equal(t, RoleSuperAdmin, ParseRole("SUPER_ADMIN"))
	assert.Equal(t, RoleAdmin, ParseRole("ADMIN"))
	assert.Equal(t, RoleUnknown, ParseRole("admin"))
	assert.Equal(t, RoleUnknown, ParseRole("NOT_AN_ADMIN"))
	assert.Equal(t, RoleUnknown, ParseRole(""))
}

func TestCapabilityMembership(t *testing.T) {
	assert.True(t, Allows("SUPER_ADMIN", OrganizationsDelete))
	assert.True(t, Allows("ADMIN", UsersManage))
	assert.False(t, Allows("REGISTRAR", OrganizationsDelete))
	assert.False(t, Allows("DATA_ENTRY", SettingsManage))
	// substring matches grant nothing
	assert.False(t, Allows("ADMIN_ASSISTANT", OrganizationsDelete))
	assert.False(t, RoleUnknown.Can(RolesRead))
}

func TestTableGolden(t *testing.T) {
	raw, err := json.MarshalIndent(Table(), "", "  ")
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "capability_table", raw)
}

func TestRequireCapability(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	h := RequireCapability(OrganizationsDelete)(ok)

	cases := []struct {
		name   string
		role   *string
		status int
	}{
		{"no caller", nil, http.StatusUnauthorized},
		{"registrar", ptr("REGISTRAR"), http.StatusForbidden},
		{"admin", ptr("ADMIN"), http.StatusNoContent},
		{"super admin", ptr("SUPER_ADMIN"), http.StatusNoContent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodDelete, "/api/organizations/x", nil)
			if tc.role != nil {
				r = r.WithContext(requestcontext.WithCaller(r.Context(), requestcontext.Caller{UserID: uuid.New(), Role: *tc.role}))
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)
			assert.Equal(t, tc.status, w.Code)
			if tc.status == http.StatusForbidden {
				assert.Contains(t, w.Body.String(), "You do not have permission to delete organizations")
			}
		})
	}
}

func TestCheck(t *testing.T) {
	ctx := context.Background()
	err := Check(ctx, WorkshopsManage)
	de, ok := dErrors.As(err)
	require.True(t, ok)
	assert.Equal(t, dErrors.CodeUnauthorized, de.Code)

	clerk := requestcontext.WithCaller(ctx, requestcontext.Caller{UserID: uuid.New(), Role: "DATA_ENTRY"})
	de, ok = dErrors.As(Check(clerk, WorkshopsManage))
	require.True(t, ok)
	assert.Equal(t, dErrors.CodeForbidden, de.Code)
	assert.Equal(t, "You do not have permission to manage workshops", de.Message)

	admin := requestcontext.WithCaller(ctx, requestcontext.Caller{UserID: uuid.New(), Role: "ADMIN"})
	assert.NoError(t, Check(admin, WorkshopsManage))
}

func ptr(s string) *string { return &s }
