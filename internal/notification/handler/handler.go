// Package handler exposes the caller's inbox and notification broadcast
// under /api/notifications.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"registrar/internal/authz"
	"registrar/internal/notification/models"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/platform/httputil"
	"registrar/pkg/platform/listing"
)

type Service interface {
	Inbox(ctx context.Context, f models.Filter, p listing.Page) (*models.Inbox, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Delivery, error)
	MarkRead(ctx context.Context, id uuid.UUID) (*models.Delivery, error)
	MarkAllRead(ctx context.Context) (int, error)
	Create(ctx context.Context, req models.NotificationRequest) (*models.Broadcast, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Handler struct {
	notifications Service
	logger        *slog.Logger
}

func New(notifications Service, logger *slog.Logger) *Handler {
	return &Handler{notifications: notifications, logger: logger}
}

var errNotFound = dErrors.New(dErrors.CodeNotFound, "Notification not found")

func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.handleInbox)
	r.Put("/read-all", h.handleReadAll)
	r.Get("/{id}", h.handleGet)
	r.Put("/{id}/read", h.handleRead)

	manage := authz.RequireCapability(authz.NotificationsManage)
	r.With(manage).Post("/", h.handleCreate)
	r.With(manage).Delete("/{id}", h.handleDelete)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := httputil.PathUUID(r, "id")
	if !ok {
		httputil.Fail(w, r, h.logger, errNotFound)
	}
	return id, ok
}

func (h *Handler) handleInbox(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var f models.Filter
	var err error
	if f.IsRead, err = listing.Bool(q, "isRead"); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	if f.IsUrgent, err = listing.Bool(q, "isUrgent"); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	inbox, err := h.notifications.Inbox(r.Context(), f, listing.ParsePage(q))
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, inbox, "Notifications retrieved successfully")
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	d, err := h.notifications.Get(r.Context(), id)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, d, "Notification retrieved successfully")
}

func (h *Handler) handleRead(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	d, err := h.notifications.MarkRead(r.Context(), id)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, d, "Notification marked as read")
}

func (h *Handler) handleReadAll(w http.ResponseWriter, r *http.Request) {
	n, err := h.notifications.MarkAllRead(r.Context())
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, map[string]int{"count": n}, "All notifications marked as read")
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.NotificationRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	b, err := h.notifications.Create(r.Context(), req)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusCreated, b, "Notification created successfully")
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.notifications.Delete(r.Context(), id); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "Notification deleted successfully")
}
