package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"registrar/internal/dashboard/models"
	"registrar/internal/dashboard/service"
	"registrar/internal/dashboard/service/mocks"
	"registrar/pkg/platform/dates"
	"registrar/pkg/testutil"
)

func newRouter(t *testing.T) (http.Handler, *mocks.MockStore) {
	t.Helper()
	st := mocks.NewMockStore(gomock.NewController(t))
	svc, err := service.New(st)
	require.NoError(t, err)
	r := chi.NewRouter()
	r.Route("/api/dashboard", New(svc, slog.New(slog.NewTextHandler(io.Discard, nil))).Register)
	return r, st
}

func get(t *testing.T, path string) *http.Request {
	req, _ := testutil.AsRole(testutil.NewRequest(t, http.MethodGet, path), "VIEWER")
	return req
}

func TestSummaryEnvelope(t *testing.T) {
	r, st := newRouter(t)
	st.EXPECT().Count(gomock.Any(), gomock.Any(), gomock.Any()).Return(2, nil).Times(11)

	rr := testutil.DoRequest(r, get(t, "/api/dashboard/summary"))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	env := testutil.DecodeEnvelope[models.Summary](t, rr)
	assert.True(t, env.Success)
	assert.Equal(t, "Dashboard summary retrieved successfully", env.Message)
	assert.Equal(t, 2, env.Data.Organizations.Total)
	assert.Equal(t, 0, env.Data.Organizations.NonCompliant)
	assert.Equal(t, 2, env.Data.Compliance.PendingSubmissions)
}

func TestQueryParameterValidation(t *testing.T) {
	r, _ := newRouter(t)
	for path, msg := range map[string]string{
		"/api/dashboard/deadlines?days=soon":   "Invalid days parameter",
		"/api/dashboard/deadlines?days=-1":     "Invalid days parameter",
		"/api/dashboard/activities?days=x":     "Invalid days parameter",
		"/api/dashboard/activities?limit=1000": "Invalid limit parameter",
		"/api/dashboard/activities?limit=ten":  "Invalid limit parameter",
	} {
		t.Run(path, func(t *testing.T) {
			testutil.AssertFailure(t, testutil.DoRequest(r, get(t, path)), http.StatusBadRequest, msg)
		})
	}
}

func TestDeadlinesWindowFromQuery(t *testing.T) {
	r, st := newRouter(t)
	org := uuid.New()
	st.EXPECT().Deadlines(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, src models.Source, from, to dates.Date) ([]models.Deadline, error) {
			assert.Equal(t, 7, from.DaysUntil(to))
			if src != models.SourceAgreement {
				return nil, nil
			}
			return []models.Deadline{{
				Type: src, ID: uuid.New(), Date: from.AddDays(3), Title: "Agreement CBA-9 expires",
				Status: "active", EntityID: &org, EntityName: "Dock Workers Union",
			}}, nil
		},
	).Times(len(models.DeadlineSources))

	rr := testutil.DoRequest(r, get(t, "/api/dashboard/deadlines?days=7"))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	env := testutil.DecodeEnvelope[[]map[string]any](t, rr)
	require.Len(t, env.Data, 1)
	assert.Equal(t, "agreement", env.Data[0]["type"])
	assert.Equal(t, org.String(), env.Data[0]["entityId"])
	assert.Equal(t, "Upcoming deadlines retrieved successfully", env.Message)
}

func TestActivitiesDefaults(t *testing.T) {
	r, st := newRouter(t)
	st.EXPECT().Activities(gomock.Any(), gomock.Any(), gomock.Any(), 10).Return([]models.Activity{}, nil).
		Times(len(models.ActivitySources))

	rr := testutil.DoRequest(r, get(t, "/api/dashboard/activities"))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	env := testutil.DecodeEnvelope[[]models.Activity](t, rr)
	assert.NotNil(t, env.Data)
	assert.Empty(t, env.Data)
}

func TestSupplementaryRoutes(t *testing.T) {
	r, st := newRouter(t)
	st.EXPECT().Growth(gomock.Any()).Return([]models.YearCount{{Year: 2019, Count: 3}, {Year: 2021, Count: 1}}, nil)
	st.EXPECT().Geo(gomock.Any()).Return([]models.GeoCount{{Region: "Central", District: "Kampala", Count: 4}}, nil)

	rr := testutil.DoRequest(r, get(t, "/api/dashboard/organization-growth"))
	require.Equal(t, http.StatusOK, rr.Code)
	growth := testutil.DecodeEnvelope[[]models.YearCount](t, rr)
	assert.Equal(t, []models.YearCount{{Year: 2019, Count: 3}, {Year: 2021, Count: 1}}, growth.Data)

	rr = testutil.DoRequest(r, get(t, "/api/dashboard/geo-distribution"))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Geographic distribution data retrieved successfully", testutil.DecodeEnvelope[any](t, rr).Message)
}

func TestStoreFailureIsHidden(t *testing.T) {
	r, st := newRouter(t)
	st.EXPECT().OrganizationCompliance(gomock.Any()).Return(nil, errors.New("pq: relation does not exist"))

	rr := testutil.DoRequest(r, get(t, "/api/dashboard/organization-compliance"))
	testutil.AssertFailure(t, rr, http.StatusInternalServerError, "An unexpected error occurred")
}

func TestElectionStatsMonths(t *testing.T) {
	r, st := newRouter(t)
	year := time.Now().UTC().Year()
	st.EXPECT().Breakdown(gomock.Any(), models.ElectionsByStatus).Return(map[string]int{"scheduled": 1}, nil)
	st.EXPECT().Monthly(gomock.Any(), models.ElectionsHeld, year).Return(map[time.Month]int{time.June: 1}, nil)

	rr := testutil.DoRequest(r, get(t, "/api/dashboard/elections/stats"))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	env := testutil.DecodeEnvelope[models.ElectionStats](t, rr)
	require.Len(t, env.Data.ByMonth, 12)
	assert.Equal(t, models.MonthCount{Month: "June", Count: 1}, env.Data.ByMonth[5])
}
