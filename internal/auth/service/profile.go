package service

import (
	"context"
	"errors"
	"strings"

	"registrar/internal/auth/models"
	"registrar/internal/auth/secrets"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/platform/audit"
	"registrar/pkg/platform/patch"
	"registrar/pkg/requestcontext"
)

// caller loads the account behind the authenticated request.
func (s *Service) caller(ctx context.Context) (*models.User, error) {
	c, ok := requestcontext.CallerFrom(ctx)
	if !ok {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "Token is missing")
	}
	u, err := s.users.FindByID(ctx, c.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, dErrors.New(dErrors.CodeNotFound, "User not found")
		}
		return nil, internal(err, "failed to load user")
	}
	return u, nil
}

// Profile returns the caller's account.
func (s *Service) Profile(ctx context.Context) (*models.UserView, error) {
	u, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	return models.NewView(ctx, s.directory, u), nil
}

// UpdateProfile applies the name and email fields present in req.
func (s *Service) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (*models.UserView, error) {
	u, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	if err := patch.Assign(&u.FirstName, req.FirstName, "firstName"); err != nil {
		return nil, err
	}
	if err := patch.Assign(&u.LastName, req.LastName, "lastName"); err != nil {
		return nil, err
	}
	if req.Email.Set {
		email := strings.TrimSpace(req.Email.Value)
		if req.Email.Null || email == "" {
			return nil, dErrors.New(dErrors.CodeBadRequest, "email cannot be null")
		}
		if !strings.EqualFold(email, u.Email) {
			if err := s.checkEmailFree(ctx, email, u.ID); err != nil {
				return nil, err
			}
		}
		u.Email = email
	}
	u.UpdatedAt = requestcontext.Now(ctx)
	if err := s.users.Update(ctx, u); err != nil {
		return nil, conflictOrInternal(err, "failed to update profile")
	}
	return models.NewView(ctx, s.directory, u), nil
}

// ChangePassword replaces the caller's password after checking the current one.
func (s *Service) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error {
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return dErrors.New(dErrors.CodeBadRequest, "Current password and new password are required")
	}
	u, err := s.caller(ctx)
	if err != nil {
		return err
	}
	if err := secrets.Verify(req.CurrentPassword, u.PasswordHash); err != nil {
		if errors.Is(err, secrets.ErrMismatch) {
			return dErrors.New(dErrors.CodeUnauthorized, "Current password is incorrect")
		}
		return internal(err, "failed to verify password")
	}
	if err := s.setPassword(ctx, u, req.NewPassword); err != nil {
		return err
	}
	s.logAudit(ctx, audit.ActionPasswordChanged, u.ID)
	return nil
}

func (s *Service) setPassword(ctx context.Context, u *models.User, password string) error {
	hash, err := secrets.Hash(password)
	if err != nil {
		return hashError(err)
	}
	u.PasswordHash = hash
	u.UpdatedAt = requestcontext.Now(ctx)
	if err := s.users.Update(ctx, u); err != nil {
		return internal(err, "failed to update password")
	}
	return nil
}
