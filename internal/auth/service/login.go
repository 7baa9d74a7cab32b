package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"registrar/internal/auth/device"
	"registrar/internal/auth/models"
	"registrar/internal/auth/secrets"
	userStore "registrar/internal/auth/store/user"
	"registrar/internal/authz"
	"registrar/internal/reference"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/platform/audit"
	"registrar/pkg/platform/patch"
	"registrar/pkg/requestcontext"
)

var errInvalidCredentials = dErrors.New(dErrors.CodeUnauthorized, "Invalid email or password")

// Login checks the credentials of an active account and issues an access
// token. Unknown email and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req models.LoginRequest) (*models.TokenResult, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "Email and password are required")
	}

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			s.authFailure("unknown_email")
			s.logAudit(ctx, audit.ActionLoginFailed, uuid.Nil, "reason", "unknown_email")
			return nil, errInvalidCredentials
		}
		return nil, internal(err, "failed to load user")
	}
	if err := secrets.Verify(req.Password, u.PasswordHash); err != nil {
		if !errors.Is(err, secrets.ErrMismatch) {
			return nil, internal(err, "failed to verify password")
		}
		s.authFailure("bad_password")
		s.logAudit(ctx, audit.ActionLoginFailed, u.ID, "reason", "bad_password")
		return nil, errInvalidCredentials
	}
	if !u.IsActive() {
		s.authFailure("inactive")
		return nil, dErrors.New(dErrors.CodeUnauthorized, "User account is inactive")
	}

	result, err := s.issue(ctx, u)
	if err != nil {
		return nil, err
	}
	now := requestcontext.Now(ctx)
	if err := s.users.TouchLastLogin(ctx, u.ID, now); err != nil {
		return nil, internal(err, "failed to record login")
	}
	u.LastLogin = &now
	result.User = models.NewView(ctx, s.directory, u)

	s.logAudit(ctx, audit.ActionLoginSucceeded, u.ID,
		"device", device.ParseUserAgent(requestcontext.UserAgent(ctx)),
	)
	return result, nil
}

// Register creates an active account and signs it in. Self-registration may
// not pick a role that administers users.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (*models.TokenResult, error) {
	if err := patch.CheckRequired(
		patch.Req("username", req.Username),
		patch.Req("email", req.Email),
		patch.Req("password", req.Password),
		patch.Req("firstName", req.FirstName),
		patch.Req("lastName", req.LastName),
	); err != nil {
		return nil, err
	}
	username := strings.TrimSpace(req.Username.Value)
	email := strings.TrimSpace(req.Email.Value)

	if err := s.checkUsernameFree(ctx, username, uuid.Nil); err != nil {
		return nil, err
	}
	if err := s.checkEmailFree(ctx, email, uuid.Nil); err != nil {
		return nil, err
	}

	positionID, err := s.resolvePosition(ctx, req.PositionID)
	if err != nil {
		return nil, err
	}
	roleID, err := s.resolveRole(ctx, req.RoleID)
	if err != nil {
		return nil, err
	}

	hash, err := secrets.Hash(req.Password.Value)
	if err != nil {
		return nil, hashError(err)
	}

	now := requestcontext.Now(ctx)
	u := &models.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		FirstName:    req.FirstName.Value,
		LastName:     req.LastName.Value,
		Phone:        req.Phone.Ptr(),
		PositionID:   positionID,
		RoleID:       roleID,
		Status:       models.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, conflictOrInternal(err, "failed to create user")
	}
	if s.metrics != nil {
		s.metrics.IncrementCreated("user")
	}

	result, err := s.issue(ctx, u)
	if err != nil {
		return nil, err
	}
	result.User = models.NewView(ctx, s.directory, u)
	s.logAudit(ctx, audit.ActionUserRegistered, u.ID, "username", u.Username)
	return result, nil
}

func (s *Service) issue(ctx context.Context, u *models.User) (*models.TokenResult, error) {
	role, err := models.RoleCode(ctx, s.directory, u)
	if err != nil && !isNotFound(err) {
		return nil, internal(err, "failed to resolve role")
	}
	tok, err := s.tokens.GenerateAccessToken(u.ID, role, s.cfg.TokenTTL)
	if err != nil {
		return nil, internal(err, "failed to issue token")
	}
	return &models.TokenResult{Token: tok.Token, ExpiresAt: tok.ExpiresAt}, nil
}

func (s *Service) checkUsernameFree(ctx context.Context, username string, self uuid.UUID) error {
	existing, err := s.users.FindByUsername(ctx, username)
	switch {
	case err == nil && existing.ID != self:
		return dErrors.New(dErrors.CodeConflict, "Username already exists")
	case err != nil && !isNotFound(err):
		return internal(err, "failed to check username")
	}
	return nil
}

func (s *Service) checkEmailFree(ctx context.Context, email string, self uuid.UUID) error {
	existing, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil && existing.ID != self:
		return dErrors.New(dErrors.CodeConflict, "Email already exists")
	case err != nil && !isNotFound(err):
		return internal(err, "failed to check email")
	}
	return nil
}

// conflictOrInternal maps the storage uniqueness errors that slipped past the
// pre-checks onto the same 409 messages.
func conflictOrInternal(err error, msg string) error {
	switch {
	case errors.Is(err, userStore.ErrUsernameTaken):
		return dErrors.Wrap(err, dErrors.CodeConflict, "Username already exists")
	case errors.Is(err, userStore.ErrEmailTaken):
		return dErrors.Wrap(err, dErrors.CodeConflict, "Email already exists")
	}
	return internal(err, msg)
}

func (s *Service) resolvePosition(ctx context.Context, f patch.Field[int]) (*int, error) {
	if f.Present() {
		p, err := s.directory.PositionByID(ctx, f.Value)
		if err != nil {
			if isNotFound(err) {
				return nil, dErrors.New(dErrors.CodeBadRequest, "Invalid positionId")
			}
			return nil, internal(err, "failed to load position")
		}
		return &p.ID, nil
	}
	return lookupDefault(ctx, s.cfg.DefaultPositionCode, s.directory.PositionByCode, func(p *reference.Position) int { return p.ID })
}

func (s *Service) resolveRole(ctx context.Context, f patch.Field[int]) (*int, error) {
	if f.Present() {
		r, err := s.directory.RoleByID(ctx, f.Value)
		if err != nil {
			if isNotFound(err) {
				return nil, dErrors.New(dErrors.CodeBadRequest, "Invalid roleId")
			}
			return nil, internal(err, "failed to load role")
		}
		if authz.Allows(r.RoleCode, authz.UsersManage) {
			return nil, authz.Forbidden(authz.UsersManage)
		}
		return &r.ID, nil
	}
	return lookupDefault(ctx, s.cfg.DefaultRoleCode, s.directory.RoleByCode, func(r *reference.Role) int { return r.ID })
}

// lookupDefault resolves a configured default code. A code missing from the
// reference tables leaves the column empty.
func lookupDefault[T any](ctx context.Context, code string, find func(context.Context, string) (*T, error), id func(*T) int) (*int, error) {
	if code == "" {
		return nil, nil
	}
	v, err := find(ctx, code)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, internal(err, "failed to load default "+code)
	}
	n := id(v)
	return &n, nil
}
