// Package handler exposes the organization registry under /api/organizations.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"registrar/internal/authz"
	"registrar/internal/organization/models"
	"registrar/internal/reference"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/platform/httputil"
	"registrar/pkg/platform/listing"
)

type Service interface {
	List(ctx context.Context, f models.Filter, regionID *int, p listing.Page) (listing.Result[*models.Organization], error)
	Get(ctx context.Context, id uuid.UUID) (*models.Detail, error)
	Create(ctx context.Context, req models.OrganizationRequest) (*models.Organization, error)
	Update(ctx context.Context, id uuid.UUID, req models.OrganizationRequest) (*models.Organization, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Types(ctx context.Context) ([]reference.LookupType, error)
	Regions(ctx context.Context) ([]reference.Region, error)
	Districts(ctx context.Context, regionID *int) ([]reference.District, error)

	Officials(ctx context.Context, orgID uuid.UUID) ([]models.Official, error)
	CreateOfficial(ctx context.Context, orgID uuid.UUID, req models.OfficialRequest) (*models.Official, error)
	UpdateOfficial(ctx context.Context, id uuid.UUID, req models.OfficialRequest) (*models.Official, error)
	DeleteOfficial(ctx context.Context, id uuid.UUID) error

	Constitutions(ctx context.Context, orgID uuid.UUID) ([]models.Constitution, error)
	CreateConstitution(ctx context.Context, orgID uuid.UUID, req models.ConstitutionRequest) (*models.Constitution, error)
	UpdateConstitution(ctx context.Context, id uuid.UUID, req models.ConstitutionRequest) (*models.Constitution, error)
	DeleteConstitution(ctx context.Context, id uuid.UUID) error
}

type Handler struct {
	orgs   Service
	logger *slog.Logger
}

func New(orgs Service, logger *slog.Logger) *Handler {
	return &Handler{orgs: orgs, logger: logger}
}

var (
	errNotFound             = dErrors.New(dErrors.CodeNotFound, "Organization not found")
	errOfficialNotFound     = dErrors.New(dErrors.CodeNotFound, "Organization official not found")
	errConstitutionNotFound = dErrors.New(dErrors.CodeNotFound, "Constitution not found")
)

// Register mounts the routes on an already guarded router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.handleList)
	r.Post("/", h.handleCreate)
	r.Get("/types", h.handleTypes)
	r.Get("/regions", h.handleRegions)
	r.Get("/districts", h.handleDistricts)

	r.Put("/officials/{oid}", h.handleUpdateOfficial)
	r.Delete("/officials/{oid}", h.handleDeleteOfficial)
	r.Put("/constitutions/{cid}", h.handleUpdateConstitution)
	r.Delete("/constitutions/{cid}", h.handleDeleteConstitution)

	r.Get("/{id}", h.handleGet)
	r.Put("/{id}", h.handleUpdate)
	r.Delete("/{id}", h.handleDelete)
	r.Get("/{id}/officials", h.handleOfficials)
	r.Post("/{id}/officials", h.handleCreateOfficial)
	r.Get("/{id}/constitutions", h.handleConstitutions)
	r.Post("/{id}/constitutions", h.handleCreateConstitution)
}

// pathID parses a path id or writes notFound and reports false.
func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, name string, notFound error) (uuid.UUID, bool) {
	id, ok := httputil.PathUUID(r, name)
	if !ok {
		httputil.Fail(w, r, h.logger, notFound)
	}
	return id, ok
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := models.Filter{Search: listing.String(q, "search"), Status: listing.String(q, "status")}
	var err error
	if f.TypeID, err = listing.Int(q, "type"); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	if f.DistrictID, err = listing.Int(q, "district"); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	if f.IsCompliant, err = listing.Bool(q, "isCompliant"); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	region, err := listing.Int(q, "region")
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	res, err := h.orgs.List(r.Context(), f, region, listing.ParsePage(q))
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, res, "Organizations retrieved successfully")
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id", errNotFound)
	if !ok {
		return
	}
	d, err := h.orgs.Get(r.Context(), id)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, d, "Organization retrieved successfully")
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.OrganizationRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	o, err := h.orgs.Create(r.Context(), req)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusCreated, o, "Organization created successfully")
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id", errNotFound)
	if !ok {
		return
	}
	var req models.OrganizationRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	o, err := h.orgs.Update(r.Context(), id, req)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, o, "Organization updated successfully")
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id", errNotFound)
	if !ok {
		return
	}
	// a missing row is reported before a missing grant
	ctx := r.Context()
	if _, err := h.orgs.Get(ctx, id); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	if err := authz.Check(ctx, authz.OrganizationsDelete); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	if err := h.orgs.Delete(ctx, id); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "Organization deleted successfully")
}

func (h *Handler) handleTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.orgs.Types(r.Context())
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, types, "Organization types retrieved successfully")
}

func (h *Handler) handleRegions(w http.ResponseWriter, r *http.Request) {
	regions, err := h.orgs.Regions(r.Context())
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, regions, "Regions retrieved successfully")
}

func (h *Handler) handleDistricts(w http.ResponseWriter, r *http.Request) {
	region, err := listing.Int(r.URL.Query(), "region")
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	districts, err := h.orgs.Districts(r.Context(), region)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, districts, "Districts retrieved successfully")
}

func (h *Handler) handleOfficials(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id", errNotFound)
	if !ok {
		return
	}
	out, err := h.orgs.Officials(r.Context(), id)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, out, "Organization officials retrieved successfully")
}

func (h *Handler) handleCreateOfficial(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id", errNotFound)
	if !ok {
		return
	}
	var req models.OfficialRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	off, err := h.orgs.CreateOfficial(r.Context(), id, req)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusCreated, off, "Organization official created successfully")
}

func (h *Handler) handleUpdateOfficial(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "oid", errOfficialNotFound)
	if !ok {
		return
	}
	var req models.OfficialRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	off, err := h.orgs.UpdateOfficial(r.Context(), id, req)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, off, "Organization official updated successfully")
}

func (h *Handler) handleDeleteOfficial(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "oid", errOfficialNotFound)
	if !ok {
		return
	}
	if err := h.orgs.DeleteOfficial(r.Context(), id); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "Organization official deleted successfully")
}

func (h *Handler) handleConstitutions(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id", errNotFound)
	if !ok {
		return
	}
	out, err := h.orgs.Constitutions(r.Context(), id)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, out, "Organization constitutions retrieved successfully")
}

func (h *Handler) handleCreateConstitution(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id", errNotFound)
	if !ok {
		return
	}
	var req models.ConstitutionRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	c, err := h.orgs.CreateConstitution(r.Context(), id, req)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusCreated, c, "Constitution created successfully")
}

func (h *Handler) handleUpdateConstitution(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "cid", errConstitutionNotFound)
	if !ok {
		return
	}
	var req models.ConstitutionRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	c, err := h.orgs.UpdateConstitution(r.Context(), id, req)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, c, "Constitution updated successfully")
}

func (h *Handler) handleDeleteConstitution(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "cid", errConstitutionNotFound)
	if !ok {
		return
	}
	if err := h.orgs.DeleteConstitution(r.Context(), id); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "Constitution deleted successfully")
}
