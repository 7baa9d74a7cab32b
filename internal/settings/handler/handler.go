// Package handler exposes system settings under /api/settings.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"registrar/internal/authz"
	"registrar/internal/settings/models"
	"registrar/pkg/platform/httputil"
)

type Service interface {
	List(ctx context.Context) ([]models.Setting, error)
	Get(ctx context.Context, key string) (*models.Setting, error)
	Create(ctx context.Context, req models.SettingRequest) (*models.Setting, error)
	Update(ctx context.Context, key string, req models.SettingRequest) (*models.Setting, error)
	Delete(ctx context.Context, key string) error
}

type Handler struct {
	settings Service
	logger   *slog.Logger
}

func New(settings Service, logger *slog.Logger) *Handler {
	return &Handler{settings: settings, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Use(authz.RequireCapability(authz.SettingsManage))
	r.Get("/", h.handleList)
	r.Post("/", h.handleCreate)
	r.Get("/{key}", h.handleGet)
	r.Put("/{key}", h.handleUpdate)
	r.Delete("/{key}", h.handleDelete)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	out, err := h.settings.List(r.Context())
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, out, "System settings retrieved successfully")
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	st, err := h.settings.Get(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, st, "Setting retrieved successfully")
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.SettingRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	st, err := h.settings.Create(r.Context(), req)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusCreated, st, "Setting created successfully")
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req models.SettingRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	st, err := h.settings.Update(r.Context(), chi.URLParam(r, "key"), req)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, st, "Setting updated successfully")
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.settings.Delete(r.Context(), chi.URLParam(r, "key")); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "Setting deleted successfully")
}
