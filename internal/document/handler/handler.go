// Package handler exposes document metadata under /api/documents.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"registrar/internal/authz"
	"registrar/internal/document/models"
	"registrar/internal/reference"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/platform/httputil"
	"registrar/pkg/platform/listing"
)

type Service interface {
	List(ctx context.Context, f models.Filter, p listing.Page) (listing.Result[*models.Document], error)
	Get(ctx context.Context, id uuid.UUID) (*models.Detail, error)
	Create(ctx context.Context, req models.DocumentRequest) (*models.Document, error)
	Update(ctx context.Context, id uuid.UUID, req models.DocumentRequest) (*models.Document, error)
	Delete(ctx context.Context, id uuid.UUID) error

	Types(ctx context.Context) ([]reference.LookupType, error)
	CreateType(ctx context.Context, req models.TypeRequest) (*reference.LookupType, error)
	UpdateType(ctx context.Context, id int, req models.TypeRequest) (*reference.LookupType, error)
	DeleteType(ctx context.Context, id int) error
}

type Handler struct {
	documents Service
	logger    *slog.Logger
}

func New(documents Service, logger *slog.Logger) *Handler {
	return &Handler{documents: documents, logger: logger}
}

var (
	errNotFound     = dErrors.New(dErrors.CodeNotFound, "Document not found")
	errTypeNotFound = dErrors.New(dErrors.CodeNotFound, "Document type not found")
)

// Register mounts the routes. /types is registered before /{id} so the
// literal segment wins.
func (h *Handler) Register(r chi.Router) {
	r.Get("/types", h.handleTypes)
	r.Group(func(r chi.Router) {
		r.Use(authz.RequireCapability(authz.DocumentTypesManage))
		r.Post("/types", h.handleCreateType)
		r.Put("/types/{tid}", h.handleUpdateType)
		r.Delete("/types/{tid}", h.handleDeleteType)
	})

	r.Get("/", h.handleList)
	r.Post("/", h.handleCreate)
	r.Get("/{id}", h.handleGet)
	r.Put("/{id}", h.handleUpdate)
	r.Delete("/{id}", h.handleDelete)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := httputil.PathUUID(r, "id")
	if !ok {
		httputil.Fail(w, r, h.logger, errNotFound)
	}
	return id, ok
}

func (h *Handler) typeID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, ok := httputil.PathInt(r, "tid")
	if !ok {
		httputil.Fail(w, r, h.logger, errTypeNotFound)
	}
	return id, ok
}

func parseFilter(r *http.Request) (models.Filter, error) {
	q := r.URL.Query()
	f := models.Filter{Search: listing.String(q, "search")}
	var err error
	if f.TypeID, err = listing.Int(q, "type"); err != nil {
		return f, err
	}
	if f.OrganizationID, err = listing.UUID(q, "organization"); err != nil {
		return f, err
	}
	if f.AgreementID, err = listing.UUID(q, "agreement"); err != nil {
		return f, err
	}
	if f.ElectionID, err = listing.UUID(q, "election"); err != nil {
		return f, err
	}
	if f.WorkshopID, err = listing.UUID(q, "workshop"); err != nil {
		return f, err
	}
	if f.IsPublic, err = listing.Bool(q, "isPublic"); err != nil {
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
	res, err := h.documents.List(r.Context(), f, listing.ParsePage(r.URL.Query()))
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, res, "Documents retrieved successfully")
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	d, err := h.documents.Get(r.Context(), id)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, d, "Document retrieved successfully")
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.DocumentRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	d, err := h.documents.Create(r.Context(), req)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusCreated, d, "Document created successfully")
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var req models.DocumentRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	d, err := h.documents.Update(r.Context(), id, req)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, d, "Document updated successfully")
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.documents.Delete(r.Context(), id); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "Document deleted successfully")
}

func (h *Handler) handleTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.documents.Types(r.Context())
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, types, "Document types retrieved successfully")
}

func (h *Handler) handleCreateType(w http.ResponseWriter, r *http.Request) {
	var req models.TypeRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	t, err := h.documents.CreateType(r.Context(), req)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusCreated, t, "Document type created successfully")
}

func (h *Handler) handleUpdateType(w http.ResponseWriter, r *http.Request) {
	id, ok := h.typeID(w, r)
	if !ok {
		return
	}
	var req models.TypeRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	t, err := h.documents.UpdateType(r.Context(), id, req)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, t, "Document type updated successfully")
}

func (h *Handler) handleDeleteType(w http.ResponseWriter, r *http.Request) {
	id, ok := h.typeID(w, r)
	if !ok {
		return
	}
	if err := h.documents.DeleteType(r.Context(), id); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "Document type deleted successfully")
}
