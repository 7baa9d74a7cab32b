package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userStore "registrar/internal/auth/store/user"
	"registrar/internal/compliance/models"
	"registrar/internal/compliance/service"
	complianceStore "registrar/internal/compliance/store"
	orgmodels "registrar/internal/organization/models"
	orgStore "registrar/internal/organization/store"
	"registrar/internal/reference"
	refstore "registrar/internal/reference/store"
	"registrar/pkg/platform/dates"
	"registrar/pkg/platform/listing"
	"registrar/pkg/testutil"
)

type fixture struct {
	router      http.Handler
	orgs        *orgStore.InMemoryStore
	org         uuid.UUID
	requirement int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	dir, err := refstore.NewSeededInMemory(ctx)
	require.NoError(t, err)
	reqs, err := dir.ListRequirements(ctx)
	require.NoError(t, err)

	orgs := orgStore.NewInMemory()
	org := &orgmodels.Organization{
		ID: uuid.New(), RegistrationNumber: "IO-07", OrganizationName: "Dock Workers Union",
		RegistrationDate: dates.New(2020, time.January, 1), Status: orgmodels.StatusActive, IsCompliant: true,
	}
	require.NoError(t, orgs.Create(ctx, org))

	svc, err := service.New(complianceStore.NewInMemory(), orgs, userStore.New(), dir)
	require.NoError(t, err)
	r := chi.NewRouter()
	r.Route("/api/compliance", New(svc, slog.New(slog.NewTextHandler(io.Discard, nil))).Register)
	return &fixture{router: r, orgs: orgs, org: org.ID, requirement: reqs[0].ID}
}

func (f *fixture) send(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	var req *http.Request
	if body == nil {
		req = testutil.NewRequest(t, method, path)
	} else {
		req = testutil.NewJSONRequest(t, method, path, body)
	}
	req, _ = testutil.AsRole(req, "REGISTRAR")
	return req
}

func TestRecordWritesMaintainFlag(t *testing.T) {
	f := newFixture(t)
	rr := testutil.DoRequest(f.router, f.send(t, http.MethodPost, "/api/compliance/records", map[string]any{
		"organizationId": f.org, "requirementId": f.requirement, "dueDate": "2024-01-31", "status": "overdue",
	}))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	rec := testutil.DecodeEnvelope[models.Record](t, rr).Data

	o, err := f.orgs.FindByID(context.Background(), f.org)
	require.NoError(t, err)
	assert.False(t, o.IsCompliant)

	rr = testutil.DoRequest(f.router, f.send(t, http.MethodGet, "/api/compliance/records/"+rec.ID.String(), nil))
	require.Equal(t, http.StatusOK, rr.Code)
	detail := testutil.DecodeEnvelope[map[string]any](t, rr).Data
	assert.Equal(t, "Annual Return", detail["requirement"].(map[string]any)["requirementName"])
	assert.Equal(t, "IO-07", detail["organization"].(map[string]any)["registrationNumber"])

	rr = testutil.DoRequest(f.router, f.send(t, http.MethodDelete, "/api/compliance/records/"+rec.ID.String(), nil))
	require.Equal(t, http.StatusOK, rr.Code)
	o, err = f.orgs.FindByID(context.Background(), f.org)
	require.NoError(t, err)
	assert.True(t, o.IsCompliant)
}

func TestRequirementsAndFilters(t *testing.T) {
	f := newFixture(t)
	rr := testutil.DoRequest(f.router, f.send(t, http.MethodGet, "/api/compliance/requirements", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, testutil.DecodeEnvelope[[]reference.Requirement](t, rr).Data)

	cases := map[string]string{
		"/api/compliance/records?dueBefore=soon":   "Invalid dueBefore parameter",
		"/api/compliance/inspections?inspector=me": "Invalid inspector parameter",
		"/api/compliance/issues?inspection=1":      "Invalid inspection parameter",
	}
	for path, msg := range cases {
		rr := testutil.DoRequest(f.router, f.send(t, http.MethodGet, path, nil))
		testutil.AssertFailure(t, rr, http.StatusBadRequest, msg)
	}
}

func TestIssueLifecycle(t *testing.T) {
	f := newFixture(t)
	rr := testutil.DoRequest(f.router, f.send(t, http.MethodPost, "/api/compliance/issues", map[string]any{
		"organizationId": f.org, "issueDate": "2024-02-20", "description": "Register missing",
		"severity": "critical", "status": "open",
	}))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	is := testutil.DecodeEnvelope[models.Issue](t, rr).Data

	rr = testutil.DoRequest(f.router, f.send(t, http.MethodGet, "/api/compliance/issues?severity=CRITICAL", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, testutil.DecodeEnvelope[listing.Result[models.Issue]](t, rr).Data.Total)

	rr = testutil.DoRequest(f.router, f.send(t, http.MethodPut, "/api/compliance/issues/"+is.ID.String(),
		map[string]any{"status": "resolved"}))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	o, err := f.orgs.FindByID(context.Background(), f.org)
	require.NoError(t, err)
	assert.True(t, o.IsCompliant)

	rr = testutil.DoRequest(f.router, f.send(t, http.MethodGet, "/api/compliance/issues/x", nil))
	testutil.AssertFailure(t, rr, http.StatusNotFound, "Non-compliance issue not found")
}
