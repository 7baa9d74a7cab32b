// Package handler exposes training workshops under /api/trainings.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"registrar/internal/authz"
	"registrar/internal/reference"
	"registrar/internal/training/models"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/platform/httputil"
	"registrar/pkg/platform/listing"
)

type Service interface {
	List(ctx context.Context, f models.Filter, p listing.Page) (listing.Result[*models.Workshop], error)
	Get(ctx context.Context, id uuid.UUID) (*models.Detail, error)
	Create(ctx context.Context, req models.WorkshopRequest) (*models.Workshop, error)
	Update(ctx context.Context, id uuid.UUID, req models.WorkshopRequest) (*models.Workshop, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Types(ctx context.Context) ([]reference.LookupType, error)

	Participants(ctx context.Context, workshopID uuid.UUID) ([]models.Participant, error)
	AddParticipant(ctx context.Context, workshopID uuid.UUID, req models.ParticipantRequest) (*models.Participant, error)
	UpdateParticipant(ctx context.Context, id uuid.UUID, req models.ParticipantRequest) (*models.Participant, error)
	DeleteParticipant(ctx context.Context, id uuid.UUID) error
}

type Handler struct {
	trainings Service
	logger    *slog.Logger
}

func New(trainings Service, logger *slog.Logger) *Handler {
	return &Handler{trainings: trainings, logger: logger}
}

var (
	errNotFound            = dErrors.New(dErrors.CodeNotFound, "Training workshop not found")
	errParticipantNotFound = dErrors.New(dErrors.CodeNotFound, "Workshop participant not found")
)

func (h *Handler) Register(r chi.Router) {
	r.Get("/types", h.handleTypes)
	r.Get("/workshops", h.handleList)
	r.Get("/workshops/{id}", h.handleGet)
	r.Get("/workshops/{id}/participants", h.handleParticipants)
	r.With(authz.RequireCapability(authz.WorkshopsDelete)).Delete("/workshops/{id}", h.handleDelete)

	r.Group(func(r chi.Router) {
		r.Use(authz.RequireCapability(authz.WorkshopsManage))
		r.Post("/workshops", h.handleCreate)
		r.Put("/workshops/{id}", h.handleUpdate)
		r.Post("/workshops/{id}/participants", h.handleAddParticipant)
		r.Put("/participants/{pid}", h.handleUpdateParticipant)
		r.Delete("/participants/{pid}", h.handleDeleteParticipant)
	})
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
	if f.TypeID, err = listing.Int(q, "type"); err != nil {
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

func (h *Handler) handleTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.trainings.Types(r.Context())
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, types, "Training types retrieved successfully")
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	res, err := h.trainings.List(r.Context(), f, listing.ParsePage(r.URL.Query()))
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, res, "Training workshops retrieved successfully")
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id", errNotFound)
	if !ok {
		return
	}
	d, err := h.trainings.Get(r.Context(), id)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, d, "Training workshop retrieved successfully")
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.WorkshopRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	ws, err := h.trainings.Create(r.Context(), req)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusCreated, ws, "Training workshop created successfully")
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id", errNotFound)
	if !ok {
		return
	}
	var req models.WorkshopRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	ws, err := h.trainings.Update(r.Context(), id, req)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, ws, "Training workshop updated successfully")
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id", errNotFound)
	if !ok {
		return
	}
	if err := h.trainings.Delete(r.Context(), id); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "Training workshop deleted successfully")
}

func (h *Handler) handleParticipants(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id", errNotFound)
	if !ok {
		return
	}
	out, err := h.trainings.Participants(r.Context(), id)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, out, "Workshop participants retrieved successfully")
}

func (h *Handler) handleAddParticipant(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id", errNotFound)
	if !ok {
		return
	}
	var req models.ParticipantRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	p, err := h.trainings.AddParticipant(r.Context(), id, req)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusCreated, p, "Workshop participant created successfully")
}

func (h *Handler) handleUpdateParticipant(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "pid", errParticipantNotFound)
	if !ok {
		return
	}
	var req models.ParticipantRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	p, err := h.trainings.UpdateParticipant(r.Context(), id, req)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, p, "Workshop participant updated successfully")
}

func (h *Handler) handleDeleteParticipant(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "pid", errParticipantNotFound)
	if !ok {
		return
	}
	if err := h.trainings.DeleteParticipant(r.Context(), id); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "Workshop participant deleted successfully")
}
