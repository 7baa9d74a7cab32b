// Package handler exposes the credential operations under /api/auth.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"registrar/internal/auth/models"
	"registrar/internal/authz"
	"registrar/internal/reference"
	"registrar/pkg/platform/httputil"
)

// Service is the subset of the auth service the routes use.
type Service interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.TokenResult, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.TokenResult, error)
	Profile(ctx context.Context) (*models.UserView, error)
	UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (*models.UserView, error)
	ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error
	RequestReset(ctx context.Context, req models.RequestResetRequest) error
	ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error
	Logout(ctx context.Context) error
	Roles(ctx context.Context) ([]reference.Role, error)
	Positions(ctx context.Context) ([]reference.Position, error)
	CSRFToken() (*models.CSRFToken, error)
}

const resetRequestedMessage = "If your email is registered, you will receive a password reset link"

type Handler struct {
	auth   Service
	logger *slog.Logger
}

func New(auth Service, logger *slog.Logger) *Handler {
	return &Handler{auth: auth, logger: logger}
}

// Register mounts the auth routes. Every route passes through limit, which
// may be nil, before anything else runs; profile and session endpoints then
// pass through guard.
func (h *Handler) Register(r chi.Router, guard, limit func(http.Handler) http.Handler) {
	if limit != nil {
		r.Use(limit)
	}
	r.Post("/login", h.handleLogin)
	r.Post("/register", h.handleRegister)
	r.Post("/request-reset", h.handleRequestReset)
	r.Post("/reset-password", h.handleResetPassword)
	r.Get("/csrf-token", h.handleCSRFToken)

	r.Group(func(r chi.Router) {
		r.Use(guard)
		r.Get("/verify", h.handleVerify)
		r.Get("/profile", h.handleProfile)
		r.Put("/profile", h.handleUpdateProfile)
		r.Post("/change-password", h.handleChangePassword)
		r.Post("/logout", h.handleLogout)
		r.With(authz.RequireCapability(authz.RolesRead)).Get("/roles", h.handleRoles)
		r.Get("/positions", h.handlePositions)
	})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	res, err := h.auth.Login(r.Context(), req)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, res, "Login successful")
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	res, err := h.auth.Register(r.Context(), req)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusCreated, res, "User registered successfully")
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	h.writeProfile(w, r, "Token is valid")
}

func (h *Handler) handleProfile(w http.ResponseWriter, r *http.Request) {
	h.writeProfile(w, r, "Profile retrieved successfully")
}

func (h *Handler) writeProfile(w http.ResponseWriter, r *http.Request, message string) {
	view, err := h.auth.Profile(r.Context())
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, view, message)
}

func (h *Handler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateProfileRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	view, err := h.auth.UpdateProfile(r.Context(), req)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, view, "Profile updated successfully")
}

func (h *Handler) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req models.ChangePasswordRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	if err := h.auth.ChangePassword(r.Context(), req); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "Password changed successfully")
}

func (h *Handler) handleRequestReset(w http.ResponseWriter, r *http.Request) {
	var req models.RequestResetRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	if err := h.auth.RequestReset(r.Context(), req); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, resetRequestedMessage)
}

func (h *Handler) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	if err := h.auth.ResetPassword(r.Context(), req); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "Password reset successfully")
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Logout(r.Context()); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "Logged out successfully")
}

func (h *Handler) handleRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.auth.Roles(r.Context())
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, nonNil(roles), "Roles retrieved successfully")
}

func (h *Handler) handlePositions(w http.ResponseWriter, r *http.Request) {
	positions, err := h.auth.Positions(r.Context())
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, nonNil(positions), "Positions retrieved successfully")
}

func (h *Handler) handleCSRFToken(w http.ResponseWriter, r *http.Request) {
	tok, err := h.auth.CSRFToken()
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, tok, "CSRF token generated")
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
