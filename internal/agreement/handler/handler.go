// Package handler exposes agreements, amendments and disputes under
// /api/agreements.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"registrar/internal/agreement/models"
	"registrar/internal/authz"
	"registrar/internal/reference"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/platform/httputil"
	"registrar/pkg/platform/listing"
)

type Service interface {
	List(ctx context.Context, f models.Filter, p listing.Page) (listing.Result[*models.Agreement], error)
	Get(ctx context.Context, id uuid.UUID) (*models.Detail, error)
	Create(ctx context.Context, req models.AgreementRequest) (*models.Agreement, error)
	Update(ctx context.Context, id uuid.UUID, req models.AgreementRequest) (*models.Agreement, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Types(ctx context.Context) ([]reference.LookupType, error)
	DisputeTypes(ctx context.Context) ([]reference.LookupType, error)

	Amendments(ctx context.Context, agreementID uuid.UUID) ([]models.Amendment, error)
	CreateAmendment(ctx context.Context, agreementID uuid.UUID, req models.AmendmentRequest) (*models.Amendment, error)
	UpdateAmendment(ctx context.Context, id uuid.UUID, req models.AmendmentRequest) (*models.Amendment, error)
	DeleteAmendment(ctx context.Context, id uuid.UUID) error

	Disputes(ctx context.Context, f models.DisputeFilter, p listing.Page) (listing.Result[*models.Dispute], error)
	Dispute(ctx context.Context, id uuid.UUID) (*models.DisputeDetail, error)
	CreateDispute(ctx context.Context, req models.DisputeRequest) (*models.Dispute, error)
	UpdateDispute(ctx context.Context, id uuid.UUID, req models.DisputeRequest) (*models.Dispute, error)
	DeleteDispute(ctx context.Context, id uuid.UUID) error
}

type Handler struct {
	agreements Service
	logger     *slog.Logger
}

func New(agreements Service, logger *slog.Logger) *Handler {
	return &Handler{agreements: agreements, logger: logger}
}

var (
	errNotFound          = dErrors.New(dErrors.CodeNotFound, "Agreement not found")
	errAmendmentNotFound = dErrors.New(dErrors.CodeNotFound, "Amendment not found")
	errDisputeNotFound   = dErrors.New(dErrors.CodeNotFound, "Dispute not found")
)

func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.handleList)
	r.Post("/", h.handleCreate)
	r.Get("/types", h.handleTypes)
	r.Get("/dispute-types", h.handleDisputeTypes)

	r.Get("/disputes", h.handleDisputes)
	r.Post("/disputes", h.handleCreateDispute)
	r.Get("/disputes/{did}", h.handleDispute)
	r.Put("/disputes/{did}", h.handleUpdateDispute)
	r.Delete("/disputes/{did}", h.handleDeleteDispute)

	r.Put("/amendments/{aid}", h.handleUpdateAmendment)
	r.Delete("/amendments/{aid}", h.handleDeleteAmendment)

	r.Get("/{id}", h.handleGet)
	r.Put("/{id}", h.handleUpdate)
	r.Delete("/{id}", h.handleDelete)
	r.Get("/{id}/amendments", h.handleAmendments)
	r.Post("/{id}/amendments", h.handleCreateAmendment)
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
	if f.OrganizationID, err = listing.UUID(q, "organization"); err != nil {
		return f, err
	}
	if f.ExpiringBefore, err = listing.Date(q, "expiringBefore"); err != nil {
		return f, err
	}
	if f.ExpiringAfter, err = listing.Date(q, "expiringAfter"); err != nil {
		return f, err
	}
	return f, nil
}

func parseDisputeFilter(r *http.Request) (models.DisputeFilter, error) {
	q := r.URL.Query()
	f := models.DisputeFilter{Search: listing.String(q, "search"), Status: listing.String(q, "status")}
	var err error
	if f.TypeID, err = listing.Int(q, "type"); err != nil {
		return f, err
	}
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
	res, err := h.agreements.List(r.Context(), f, listing.ParsePage(r.URL.Query()))
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, res, "Agreements retrieved successfully")
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id", errNotFound)
	if !ok {
		return
	}
	d, err := h.agreements.Get(r.Context(), id)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, d, "Agreement retrieved successfully")
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.AgreementRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	a, err := h.agreements.Create(r.Context(), req)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusCreated, a, "Agreement created successfully")
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id", errNotFound)
	if !ok {
		return
	}
	var req models.AgreementRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	a, err := h.agreements.Update(r.Context(), id, req)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, a, "Agreement updated successfully")
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id", errNotFound)
	if !ok {
		return
	}
	ctx := r.Context()
	if _, err := h.agreements.Get(ctx, id); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	if err := authz.Check(ctx, authz.AgreementsDelete); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	if err := h.agreements.Delete(ctx, id); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "Agreement deleted successfully")
}

func (h *Handler) handleTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.agreements.Types(r.Context())
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, types, "Agreement types retrieved successfully")
}

func (h *Handler) handleDisputeTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.agreements.DisputeTypes(r.Context())
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, types, "Dispute types retrieved successfully")
}

func (h *Handler) handleAmendments(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id", errNotFound)
	if !ok {
		return
	}
	out, err := h.agreements.Amendments(r.Context(), id)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, out, "Agreement amendments retrieved successfully")
}

func (h *Handler) handleCreateAmendment(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id", errNotFound)
	if !ok {
		return
	}
	var req models.AmendmentRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	am, err := h.agreements.CreateAmendment(r.Context(), id, req)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusCreated, am, "Agreement amendment created successfully")
}

func (h *Handler) handleUpdateAmendment(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "aid", errAmendmentNotFound)
	if !ok {
		return
	}
	var req models.AmendmentRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	am, err := h.agreements.UpdateAmendment(r.Context(), id, req)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, am, "Agreement amendment updated successfully")
}

func (h *Handler) handleDeleteAmendment(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "aid", errAmendmentNotFound)
	if !ok {
		return
	}
	if err := h.agreements.DeleteAmendment(r.Context(), id); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "Agreement amendment deleted successfully")
}

func (h *Handler) handleDisputes(w http.ResponseWriter, r *http.Request) {
	f, err := parseDisputeFilter(r)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	res, err := h.agreements.Disputes(r.Context(), f, listing.ParsePage(r.URL.Query()))
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, res, "Disputes retrieved successfully")
}

func (h *Handler) handleDispute(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "did", errDisputeNotFound)
	if !ok {
		return
	}
	d, err := h.agreements.Dispute(r.Context(), id)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, d, "Dispute retrieved successfully")
}

func (h *Handler) handleCreateDispute(w http.ResponseWriter, r *http.Request) {
	var req models.DisputeRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	d, err := h.agreements.CreateDispute(r.Context(), req)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusCreated, d, "Dispute created successfully")
}

func (h *Handler) handleUpdateDispute(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "did", errDisputeNotFound)
	if !ok {
		return
	}
	var req models.DisputeRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	d, err := h.agreements.UpdateDispute(r.Context(), id, req)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, d, "Dispute updated successfully")
}

func (h *Handler) handleDeleteDispute(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "did", errDisputeNotFound)
	if !ok {
		return
	}
	if err := h.agreements.DeleteDispute(r.Context(), id); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "Dispute deleted successfully")
}
