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

	"registrar/internal/ballot/models"
	"registrar/internal/ballot/service"
	ballotStore "registrar/internal/ballot/store"
	orgmodels "registrar/internal/organization/models"
	orgStore "registrar/internal/organization/store"
	"registrar/pkg/platform/dates"
	"registrar/pkg/testutil"
)

type fixture struct {
	router http.Handler
	org    uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	orgs := orgStore.NewInMemory()
	org := &orgmodels.Organization{
		ID: uuid.New(), RegistrationNumber: "IO-07", OrganizationName: "Dock Workers Union",
		RegistrationDate: dates.New(2020, time.January, 1), Status: orgmodels.StatusActive,
	}
	require.NoError(t, orgs.Create(ctx, org))

	svc, err := service.New(ballotStore.NewInMemory(), orgs)
	require.NoError(t, err)
	r := chi.NewRouter()
	r.Route("/api/ballots", New(svc, slog.New(slog.NewTextHandler(io.Discard, nil))).Register)
	return &fixture{router: r, org: org.ID}
}

func (f *fixture) do(t *testing.T, method, path, role string, body any) *http.Request {
	t.Helper()
	var req *http.Request
	if body == nil {
		req = testutil.NewRequest(t, method, path)
	} else {
		req = testutil.NewJSONRequest(t, method, path, body)
	}
	req, _ = testutil.AsRole(req, role)
	return req
}

func created[T any](t *testing.T, f *fixture, path string, body any, msg string) T {
	t.Helper()
	rr := testutil.DoRequest(f.router, f.do(t, http.MethodPost, path, "REGISTRAR", body))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	env := testutil.DecodeEnvelope[T](t, rr)
	assert.Equal(t, msg, env.Message)
	return env.Data
}

func TestElectionLifecycle(t *testing.T) {
	f := newFixture(t)
	e := created[models.Election](t, f, "/api/ballots/elections", map[string]any{
		"electionNumber": "EL-001", "organizationId": f.org, "electionDate": "2024-06-15",
		"purpose": "Executive committee", "status": "scheduled",
	}, "Ballot election created successfully")
	path := "/api/ballots/elections/" + e.ID.String()

	p := created[models.Position](t, f, path+"/positions", map[string]any{"positionName": "Chair"},
		"Ballot position created successfully")
	c := created[models.Candidate](t, f, "/api/ballots/positions/"+p.ID.String()+"/candidates",
		map[string]any{"firstName": "Ada", "lastName": "Mensah"}, "Ballot candidate created successfully")

	body := map[string]any{"positionId": p.ID, "candidateId": c.ID, "votesReceived": 42}
	rr := testutil.DoRequest(f.router, f.do(t, http.MethodPost, path+"/results", "REGISTRAR", body))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Equal(t, "Ballot result created successfully", testutil.DecodeEnvelope[models.Result](t, rr).Message)

	body["votesReceived"] = 43
	rr = testutil.DoRequest(f.router, f.do(t, http.MethodPost, path+"/results", "REGISTRAR", body))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "Ballot result updated successfully", testutil.DecodeEnvelope[models.Result](t, rr).Message)

	rr = testutil.DoRequest(f.router, f.do(t, http.MethodGet, path+"/results", "VIEWER", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	results := testutil.DecodeEnvelope[[]models.ResultView](t, rr).Data
	require.Len(t, results, 1)
	assert.Equal(t, 43, results[0].VotesReceived)

	rr = testutil.DoRequest(f.router, f.do(t, http.MethodGet, path, "VIEWER", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	detail := testutil.DecodeEnvelope[models.Detail](t, rr).Data
	require.Len(t, detail.Positions, 1)
	assert.Equal(t, "Ada", detail.Positions[0].Candidates[0].FirstName)

	rr = testutil.DoRequest(f.router, f.do(t, http.MethodDelete, path, "DATA_ENTRY", nil))
	testutil.AssertFailure(t, rr, http.StatusForbidden, "You do not have permission to delete elections")
	rr = testutil.DoRequest(f.router, f.do(t, http.MethodGet, path, "VIEWER", nil))
	require.Equal(t, http.StatusOK, rr.Code, "refused delete leaves the election")

	rr = testutil.DoRequest(f.router, f.do(t, http.MethodDelete, path, "SUPER_ADMIN", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = testutil.DoRequest(f.router, f.do(t, http.MethodPut, "/api/ballots/candidates/"+c.ID.String(), "REGISTRAR",
		map[string]any{"bio": "x"}))
	testutil.AssertFailure(t, rr, http.StatusNotFound, "Ballot candidate not found")
}

func TestMalformedIDsAreNotFound(t *testing.T) {
	f := newFixture(t)
	cases := map[string]string{
		"/api/ballots/elections/abc":  "Ballot election not found",
		"/api/ballots/positions/abc":  "Ballot position not found",
		"/api/ballots/candidates/abc": "Ballot candidate not found",
		"/api/ballots/results/abc":    "Ballot result not found",
	}
	for path, msg := range cases {
		t.Run(path, func(t *testing.T) {
			rr := testutil.DoRequest(f.router, f.do(t, http.MethodDelete, path, "SUPER_ADMIN", nil))
			testutil.AssertFailure(t, rr, http.StatusNotFound, msg)
		})
	}
}

func TestDeleteMissingElectionIsNotFoundForAnyRole(t *testing.T) {
	f := newFixture(t)
	path := "/api/ballots/elections/" + uuid.NewString()
	for _, role := range []string{"DATA_ENTRY", "VIEWER", "SUPER_ADMIN"} {
		rr := testutil.DoRequest(f.router, f.do(t, http.MethodDelete, path, role, nil))
		testutil.AssertFailure(t, rr, http.StatusNotFound, "Ballot election not found")
	}
}

func TestListFilterErrors(t *testing.T) {
	f := newFixture(t)
	for _, q := range []string{"organization=nope", "dateFrom=2024-13-01"} {
		rr := testutil.DoRequest(f.router, f.do(t, http.MethodGet, "/api/ballots/elections?"+q, "VIEWER", nil))
		assert.Equal(t, http.StatusBadRequest, rr.Code, q)
	}
}
