package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"registrar/internal/auth/models"
	jwttoken "registrar/internal/jwt_token"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/platform/audit"
	"registrar/pkg/platform/sentinel"
)

// LogNotifier records that a reset token was issued. The token itself is
// never logged.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) NotifyReset(ctx context.Context, user *models.User, token *jwttoken.IssuedToken) error {
	n.Logger.InfoContext(ctx, "password reset issued",
		"user_id", user.ID.String(),
		"expires_at", token.ExpiresAt,
	)
	return nil
}

// RequestReset issues a reset token for a live account. Unknown and inactive
// accounts get the same silent success so the endpoint cannot be used to
// probe for registered emails.
func (s *Service) RequestReset(ctx context.Context, req models.RequestResetRequest) error {
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return dErrors.New(dErrors.CodeBadRequest, "Email is required")
	}
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return internal(err, "failed to load user")
	}
	if !u.IsActive() {
		return nil
	}

	tok, err := s.tokens.GenerateResetToken(u.ID, s.cfg.ResetTokenTTL)
	if err != nil {
		return internal(err, "failed to issue reset token")
	}
	if err := s.notifier.NotifyReset(ctx, u, tok); err != nil {
		s.logger.WarnContext(ctx, "reset notification failed", "user_id", u.ID.String(), "error", err)
	}
	s.logAudit(ctx, audit.ActionPasswordResetSent, u.ID)
	return nil
}

// ResetPassword sets a new password for the subject of a valid reset token.
func (s *Service) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error {
	if req.Token == "" || req.NewPassword == "" {
		return dErrors.New(dErrors.CodeBadRequest, "Token and new password are required")
	}
	invalid := dErrors.New(dErrors.CodeBadRequest, "Invalid token")

	userID, err := s.tokens.ValidateResetToken(req.Token)
	if err != nil {
		if errors.Is(err, sentinel.ErrExpired) {
			return dErrors.New(dErrors.CodeBadRequest, "Token has expired")
		}
		return invalid
	}
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return invalid
		}
		return internal(err, "failed to load user")
	}
	if u.IsDeleted {
		return invalid
	}
	if err := s.setPassword(ctx, u, req.NewPassword); err != nil {
		return err
	}
	s.logAudit(ctx, audit.ActionPasswordReset, u.ID)
	return nil
}
