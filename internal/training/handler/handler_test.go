package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orgStore "registrar/internal/organization/store"
	"registrar/internal/reference"
	refstore "registrar/internal/reference/store"
	"registrar/internal/training/models"
	"registrar/internal/training/service"
	trainingStore "registrar/internal/training/store"
	"registrar/pkg/platform/listing"
	"registrar/pkg/testutil"
)

func newRouter(t *testing.T) (http.Handler, int) {
	t.Helper()
	ctx := context.Background()
	dir, err := refstore.NewSeededInMemory(ctx)
	require.NoError(t, err)
	types, err := dir.ListTypes(ctx, reference.KindTraining)
	require.NoError(t, err)

	svc, err := service.New(trainingStore.NewInMemory(), orgStore.NewInMemory(), dir)
	require.NoError(t, err)
	r := chi.NewRouter()
	r.Route("/api/trainings", New(svc, slog.New(slog.NewTextHandler(io.Discard, nil))).Register)
	return r, types[0].ID
}

func request(t *testing.T, method, path, role string, body any) *http.Request {
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

func TestWorkshopFlow(t *testing.T) {
	router, typeID := newRouter(t)

	rr := testutil.DoRequest(router, request(t, http.MethodPost, "/api/trainings/workshops", "ADMIN", map[string]any{
		"workshopName": "Collective bargaining", "trainingTypeId": typeID, "startDate": "2024-04-08",
		"endDate": "2024-04-09", "status": "scheduled", "maxParticipants": 1,
	}))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	w := testutil.DecodeEnvelope[models.Workshop](t, rr).Data
	path := "/api/trainings/workshops/" + w.ID.String()

	rr = testutil.DoRequest(router, request(t, http.MethodPost, path+"/participants", "ADMIN",
		map[string]any{"firstName": "Ama", "lastName": "Owusu"}))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Equal(t, "Workshop participant created successfully", testutil.DecodeEnvelope[models.Participant](t, rr).Message)

	rr = testutil.DoRequest(router, request(t, http.MethodPost, path+"/participants", "ADMIN",
		map[string]any{"firstName": "Yaw", "lastName": "Owusu"}))
	testutil.AssertFailure(t, rr, http.StatusConflict, "Workshop is full")

	rr = testutil.DoRequest(router, request(t, http.MethodGet, path, "VIEWER", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	detail := testutil.DecodeEnvelope[map[string]any](t, rr).Data
	assert.Len(t, detail["participants"], 1)
	assert.NotNil(t, detail["trainingType"])

	rr = testutil.DoRequest(router, request(t, http.MethodDelete, path, "REGISTRAR", nil))
	testutil.AssertFailure(t, rr, http.StatusForbidden, "You do not have permission to delete workshops")

	rr = testutil.DoRequest(router, request(t, http.MethodDelete, path, "SUPER_ADMIN", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	rr = testutil.DoRequest(router, request(t, http.MethodGet, path+"/participants", "VIEWER", nil))
	testutil.AssertFailure(t, rr, http.StatusNotFound, "Training workshop not found")
}

func TestCreateRejectsReversedDates(t *testing.T) {
	router, _ := newRouter(t)
	rr := testutil.DoRequest(router, request(t, http.MethodPost, "/api/trainings/workshops", "ADMIN", map[string]any{
		"workshopName": "Backwards", "startDate": "2024-04-08", "endDate": "2024-04-07", "status": "scheduled",
	}))
	testutil.AssertFailure(t, rr, http.StatusBadRequest, "endDate cannot be before startDate")
}

func TestTypesAndFilters(t *testing.T) {
	router, _ := newRouter(t)
	rr := testutil.DoRequest(router, request(t, http.MethodGet, "/api/trainings/types", "VIEWER", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, testutil.DecodeEnvelope[[]reference.LookupType](t, rr).Data)

	rr = testutil.DoRequest(router, request(t, http.MethodGet, "/api/trainings/workshops?type=x", "VIEWER", nil))
	testutil.AssertFailure(t, rr, http.StatusBadRequest, "Invalid type parameter")

	rr = testutil.DoRequest(router, request(t, http.MethodPut, "/api/trainings/participants/nope", "ADMIN",
		map[string]any{"notes": "x"}))
	testutil.AssertFailure(t, rr, http.StatusNotFound, "Workshop participant not found")
}

func TestWorkshopWritesNeedManageCapability(t *testing.T) {
	router, typeID := newRouter(t)

	rr := testutil.DoRequest(router, request(t, http.MethodPost, "/api/trainings/workshops", "SUPER_ADMIN", map[string]any{
		"workshopName": "Grievance handling", "trainingTypeId": typeID, "startDate": "2024-05-06",
		"endDate": "2024-05-07", "status": "scheduled",
	}))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	path := "/api/trainings/workshops/" + testutil.DecodeEnvelope[models.Workshop](t, rr).Data.ID.String()

	rr = testutil.DoRequest(router, request(t, http.MethodPost, path+"/participants", "ADMIN",
		map[string]any{"firstName": "Kofi", "lastName": "Mensah"}))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	participant := "/api/trainings/participants/" + testutil.DecodeEnvelope[models.Participant](t, rr).Data.ID.String()

	writes := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{"create workshop", http.MethodPost, "/api/trainings/workshops", map[string]any{
			"workshopName": "Unsanctioned", "startDate": "2024-05-06", "endDate": "2024-05-07", "status": "scheduled",
		}},
		{"update workshop", http.MethodPut, path, map[string]any{"workshopName": "Renamed"}},
		{"add participant", http.MethodPost, path + "/participants", map[string]any{"firstName": "Esi", "lastName": "Boateng"}},
		{"update participant", http.MethodPut, participant, map[string]any{"lastName": "Changed"}},
		{"delete participant", http.MethodDelete, participant, nil},
	}
	for _, role := range []string{"DATA_ENTRY", "VIEWER", "REGISTRAR"} {
		for _, w := range writes {
			t.Run(role+" "+w.name, func(t *testing.T) {
				rr := testutil.DoRequest(router, request(t, w.method, w.path, role, w.body))
				testutil.AssertFailure(t, rr, http.StatusForbidden, "You do not have permission to manage workshops")
			})
		}
	}

	rr = testutil.DoRequest(router, request(t, http.MethodGet, path, "VIEWER", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	detail := testutil.DecodeEnvelope[models.Detail](t, rr).Data
	require.NotNil(t, detail.Workshop)
	assert.Equal(t, "Grievance handling", detail.WorkshopName)
	require.Len(t, detail.Participants, 1)
	assert.Equal(t, "Mensah", detail.Participants[0].LastName)

	rr = testutil.DoRequest(router, request(t, http.MethodGet, "/api/trainings/workshops", "VIEWER", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, testutil.DecodeEnvelope[listing.Result[models.Workshop]](t, rr).Data.Total)
}
