package service

import (
	"context"

	"github.com/google/uuid"

	"registrar/internal/auth/models"
	"registrar/internal/auth/secrets"
	"registrar/internal/reference"
	"registrar/pkg/platform/audit"
	authmw "registrar/pkg/platform/middleware/auth"
	"registrar/pkg/requestcontext"
)

// Logout revokes the caller's token until it would have expired anyway.
func (s *Service) Logout(ctx context.Context) error {
	c, ok := requestcontext.CallerFrom(ctx)
	if !ok || c.TokenID == "" {
		return nil
	}
	ttl := c.ExpiresAt.Sub(requestcontext.Now(ctx))
	if ttl <= 0 {
		return nil
	}
	if err := s.revoker.RevokeToken(ctx, c.TokenID, ttl); err != nil {
		return internal(err, "failed to revoke token")
	}
	s.logAudit(ctx, audit.ActionLogout, c.UserID)
	return nil
}

// IsTokenRevoked satisfies the auth middleware's revocation check.
func (s *Service) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	return s.revoker.IsRevoked(ctx, jti)
}

// LookupPrincipal satisfies the auth middleware's subject lookup. Deleted
// accounts are returned as inactive so the guard can say so.
func (s *Service) LookupPrincipal(ctx context.Context, userID uuid.UUID) (*authmw.Principal, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	role, err := models.RoleCode(ctx, s.directory, u)
	if err != nil && !isNotFound(err) {
		return nil, err
	}
	return &authmw.Principal{
		Username: u.Username,
		Email:    u.Email,
		RoleCode: role,
		Active:   u.IsActive(),
	}, nil
}

func (s *Service) Roles(ctx context.Context) ([]reference.Role, error) {
	roles, err := s.directory.ListRoles(ctx)
	if err != nil {
		return nil, internal(err, "failed to list roles")
	}
	return roles, nil
}

func (s *Service) Positions(ctx context.Context) ([]reference.Position, error) {
	positions, err := s.directory.ListPositions(ctx)
	if err != nil {
		return nil, internal(err, "failed to list positions")
	}
	return positions, nil
}

// CSRFToken returns a fresh random token for the frontend to echo back.
func (s *Service) CSRFToken() (*models.CSRFToken, error) {
	tok, err := secrets.Generate()
	if err != nil {
		return nil, internal(err, "failed to generate token")
	}
	return &models.CSRFToken{CSRFToken: tok}, nil
}
