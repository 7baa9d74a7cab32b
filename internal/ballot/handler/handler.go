// Package handler exposes ballot elections under /api/ballots.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"registrar/internal/authz"
	"registrar/internal/ballot/models"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/platform/httputil"
	"registrar/pkg/platform/listing"
)

type Service interface {
	List(ctx context.Context, f models.Filter, p listing.Page) (listing.Result[*models.Election], error)
	Get(ctx context.Context, id uuid.UUID) (*models.Detail, error)
	Create(ctx context.Context, req models.ElectionRequest) (*models.Election, error)
	Update(ctx context.Context, id uuid.UUID, req models.ElectionRequest) (*models.Election, error)
	Delete(ctx context.Context, id uuid.UUID) error

	Positions(ctx context.Context, electionID uuid.UUID) ([]models.Position, error)
	CreatePosition(ctx context.Context, electionID uuid.UUID, req models.PositionRequest) (*models.Position, error)
	UpdatePosition(ctx context.Context, id uuid.UUID, req models.PositionRequest) (*models.Position, error)
	DeletePosition(ctx context.Context, id uuid.UUID) error

	Candidates(ctx context.Context, positionID uuid.UUID) ([]models.Candidate, error)
	CreateCandidate(ctx context.Context, positionID uuid.UUID, req models.CandidateRequest) (*models.Candidate, error)
	UpdateCandidate(ctx context.Context, id uuid.UUID, req models.CandidateRequest) (*models.Candidate, error)
	DeleteCandidate(ctx context.Context, id uuid.UUID) error

	Results(ctx context.Context, electionID uuid.UUID) ([]models.ResultView, error)
	RecordResult(ctx context.Context, electionID uuid.UUID, req models.ResultRequest) (*models.Result, bool, error)
	DeleteResult(ctx context.Context, id uuid.UUID) error
}

type Handler struct {
	ballots Service
	logger  *slog.Logger
}

func New(ballots Service, logger *slog.Logger) *Handler {
	return &Handler{ballots: ballots, logger: logger}
}

var (
	errNotFound          = dErrors.New(dErrors.CodeNotFound, "Ballot election not found")
	errPositionNotFound  = dErrors.New(dErrors.CodeNotFound, "Ballot position not found")
	errCandidateNotFound = dErrors.New(dErrors.CodeNotFound, "Ballot candidate not found")
	errResultNotFound    = dErrors.New(dErrors.CodeNotFound, "Ballot result not found")
)

func (h *Handler) Register(r chi.Router) {
	r.Get("/elections", h.handleList)
	r.Post("/elections", h.handleCreate)
	r.Get("/elections/{id}", h.handleGet)
	r.Put("/elections/{id}", h.handleUpdate)
	r.Delete("/elections/{id}", h.handleDelete)

	r.Get("/elections/{id}/positions", h.handlePositions)
	r.Post("/elections/{id}/positions", h.handleCreatePosition)
	r.Put("/positions/{pid}", h.handleUpdatePosition)
	r.Delete("/positions/{pid}", h.handleDeletePosition)

	r.Get("/positions/{pid}/candidates", h.handleCandidates)
	r.Post("/positions/{pid}/candidates", h.handleCreateCandidate)
	r.Put("/candidates/{cid}", h.handleUpdateCandidate)
	r.Delete("/candidates/{cid}", h.handleDeleteCandidate)

	r.Get("/elections/{id}/results", h.handleResults)
	r.Post("/elections/{id}/results", h.handleRecordResult)
	r.Delete("/results/{rid}", h.handleDeleteResult)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, name string, notFound error) (uuid.UUID, bool) {
	id, ok := httputil.PathUUID(r, name)
	if !ok {
		httputil.Fail(w, r, h.logger, notFound)
	}
	return id, ok
}

func parseFilter(r *http.Request) (models.Filter, error) {
	q := r.URL.Query()
	f := models.Filter{Search: listing.String(q, "search"), Status: listing.String(q, "status")}
	var err error
	if f.OrganizationID, err = listing.UUID(q, "organization"); err != nil {
		return f, err
	}
	if f.DateFrom, err = listing.Date(q, "dateFrom"); err != nil {
		return f, err
	}
	if f.DateTo, err = listing.Date(q, "dateTo"); err != nil {
		return f, err
	}
	return f, nil
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	res, err := h.ballots.List(r.Context(), f, listing.ParsePage(r.URL.Query()))
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, res, "Ballot elections retrieved successfully")
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id", errNotFound)
	if !ok {
		return
	}
	d, err := h.ballots.Get(r.Context(), id)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, d, "Ballot election retrieved successfully")
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.ElectionRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	e, err := h.ballots.Create(r.Context(), req)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusCreated, e, "Ballot election created successfully")
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id", errNotFound)
	if !ok {
		return
	}
	var req models.ElectionRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	e, err := h.ballots.Update(r.Context(), id, req)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, e, "Ballot election updated successfully")
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id", errNotFound)
	if !ok {
		return
	}
	ctx := r.Context()
	if _, err := h.ballots.Get(ctx, id); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	if err := authz.Check(ctx, authz.ElectionsDelete); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	if err := h.ballots.Delete(ctx, id); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "Ballot election deleted successfully")
}

func (h *Handler) handlePositions(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id", errNotFound)
	if !ok {
		return
	}
	out, err := h.ballots.Positions(r.Context(), id)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, out, "Ballot positions retrieved successfully")
}

func (h *Handler) handleCreatePosition(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id", errNotFound)
	if !ok {
		return
	}
	var req models.PositionRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	p, err := h.ballots.CreatePosition(r.Context(), id, req)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusCreated, p, "Ballot position created successfully")
}

func (h *Handler) handleUpdatePosition(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "pid", errPositionNotFound)
	if !ok {
		return
	}
	var req models.PositionRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	p, err := h.ballots.UpdatePosition(r.Context(), id, req)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, p, "Ballot position updated successfully")
}

func (h *Handler) handleDeletePosition(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "pid", errPositionNotFound)
	if !ok {
		return
	}
	if err := h.ballots.DeletePosition(r.Context(), id); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "Ballot position deleted successfully")
}

func (h *Handler) handleCandidates(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "pid", errPositionNotFound)
	if !ok {
		return
	}
	out, err := h.ballots.Candidates(r.Context(), id)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, out, "Ballot candidates retrieved successfully")
}

func (h *Handler) handleCreateCandidate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "pid", errPositionNotFound)
	if !ok {
		return
	}
	var req models.CandidateRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	c, err := h.ballots.CreateCandidate(r.Context(), id, req)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusCreated, c, "Ballot candidate created successfully")
}

func (h *Handler) handleUpdateCandidate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "cid", errCandidateNotFound)
	if !ok {
		return
	}
	var req models.CandidateRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	c, err := h.ballots.UpdateCandidate(r.Context(), id, req)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, c, "Ballot candidate updated successfully")
}

func (h *Handler) handleDeleteCandidate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "cid", errCandidateNotFound)
	if !ok {
		return
	}
	if err := h.ballots.DeleteCandidate(r.Context(), id); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "Ballot candidate deleted successfully")
}

func (h *Handler) handleResults(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id", errNotFound)
	if !ok {
		return
	}
	out, err := h.ballots.Results(r.Context(), id)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, out, "Ballot results retrieved successfully")
}

func (h *Handler) handleRecordResult(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id", errNotFound)
	if !ok {
		return
	}
	var req models.ResultRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	res, created, err := h.ballots.RecordResult(r.Context(), id, req)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	if created {
		httputil.WriteSuccess(w, http.StatusCreated, res, "Ballot result created successfully")
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, res, "Ballot result updated successfully")
}

func (h *Handler) handleDeleteResult(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "rid", errResultNotFound)
	if !ok {
		return
	}
	if err := h.ballots.DeleteResult(r.Context(), id); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "Ballot result deleted successfully")
}
