// Package handler exposes user administration under /api/users.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	authmodels "registrar/internal/auth/models"
	"registrar/internal/authz"
	"registrar/internal/reference"
	"registrar/internal/users/models"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/platform/httputil"
	"registrar/pkg/platform/listing"
)

type Service interface {
	List(ctx context.Context, f authmodels.UserFilter, p listing.Page) (listing.Result[*authmodels.UserView], error)
	Get(ctx context.Context, id uuid.UUID) (*authmodels.UserView, error)
	Create(ctx context.Context, req models.CreateUserRequest) (*authmodels.UserView, error)
	Update(ctx context.Context, id uuid.UUID, req models.UpdateUserRequest) (*authmodels.UserView, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Roles(ctx context.Context) ([]reference.Role, error)
	Permissions() []authz.Grant
}

type Handler struct {
	users  Service
	logger *slog.Logger
}

func New(users Service, logger *slog.Logger) *Handler {
	return &Handler{users: users, logger: logger}
}

// Register mounts the routes on an already guarded router.
func (h *Handler) Register(r chi.Router) {
	manage := authz.RequireCapability(authz.UsersManage)

	r.With(manage).Get("/", h.handleList)
	r.With(manage).Post("/", h.handleCreate)
	r.Get("/roles", h.handleRoles)
	r.With(manage).Get("/permissions", h.handlePermissions)
	r.Get("/{id}", h.handleGet)
	r.Put("/{id}", h.handleUpdate)
	r.With(manage).Delete("/{id}", h.handleDelete)
}

var errNotFound = dErrors.New(dErrors.CodeNotFound, "User not found")

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	roleID, err := listing.Int(q, "roleId")
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	filter := authmodels.UserFilter{
		Search: listing.String(q, "search"),
		Status: listing.String(q, "status"),
		RoleID: roleID,
	}
	res, err := h.users.List(r.Context(), filter, listing.ParsePage(q))
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, res, "Users retrieved successfully")
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.PathUUID(r, "id")
	if !ok {
		httputil.Fail(w, r, h.logger, errNotFound)
		return
	}
	view, err := h.users.Get(r.Context(), id)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, view, "User retrieved successfully")
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	view, err := h.users.Create(r.Context(), req)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusCreated, view, "User created successfully")
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.PathUUID(r, "id")
	if !ok {
		httputil.Fail(w, r, h.logger, errNotFound)
		return
	}
	var req models.UpdateUserRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	view, err := h.users.Update(r.Context(), id, req)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, view, "User updated successfully")
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.PathUUID(r, "id")
	if !ok {
		httputil.Fail(w, r, h.logger, errNotFound)
		return
	}
	if err := h.users.Delete(r.Context(), id); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "User deleted successfully")
}

func (h *Handler) handleRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.users.Roles(r.Context())
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, roles, "Roles retrieved successfully")
}

func (h *Handler) handlePermissions(w http.ResponseWriter, r *http.Request) {
	httputil.WriteSuccess(w, http.StatusOK, h.users.Permissions(), "Permissions retrieved successfully")
}
