// Package service administers staff accounts: listing, creation, updates by
// the account holder or an administrator, and soft deletion.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	authmodels "registrar/internal/auth/models"
	"registrar/internal/auth/secrets"
	userStore "registrar/internal/auth/store/user"
	"registrar/internal/authz"
	"registrar/internal/platform/metrics"
	"registrar/internal/reference"
	"registrar/internal/users/models"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/platform/audit"
	"registrar/pkg/platform/listing"
	"registrar/pkg/platform/patch"
	"registrar/pkg/platform/sentinel"
	"registrar/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks UserStore

type UserStore interface {
	Create(ctx context.Context, user *authmodels.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*authmodels.User, error)
	FindByEmail(ctx context.Context, email string) (*authmodels.User, error)
	FindByUsername(ctx context.Context, username string) (*authmodels.User, error)
	Update(ctx context.Context, user *authmodels.User) error
	SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) error
	List(ctx context.Context, filter authmodels.UserFilter, page listing.Page) ([]*authmodels.User, int, error)
}

type Service struct {
	users          UserStore
	directory      authmodels.Directory
	logger         *slog.Logger
	auditPublisher audit.Emitter
	metrics        *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithAuditPublisher(p audit.Emitter) Option {
	return func(s *Service) { s.auditPublisher = p }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func New(users UserStore, directory authmodels.Directory, opts ...Option) (*Service, error) {
	if users == nil {
		return nil, errors.New("users store is required")
	}
	if directory == nil {
		return nil, errors.New("reference directory is required")
	}
	s := &Service{users: users, directory: directory, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

var errUserNotFound = dErrors.New(dErrors.CodeNotFound, "User not found")

func canManage(ctx context.Context) bool {
	c, ok := requestcontext.CallerFrom(ctx)
	return ok && authz.Allows(c.Role, authz.UsersManage)
}

func isSelf(ctx context.Context, id uuid.UUID) bool {
	c, ok := requestcontext.CallerFrom(ctx)
	return ok && c.UserID == id
}

// load returns a live account; deleted accounts are reported as missing.
func (s *Service) load(ctx context.Context, id uuid.UUID) (*authmodels.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, errUserNotFound
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}
	if u.IsDeleted {
		return nil, errUserNotFound
	}
	return u, nil
}

func (s *Service) view(ctx context.Context, u *authmodels.User) *authmodels.UserView {
	return authmodels.NewView(ctx, s.directory, u)
}

// List pages through live accounts ordered by username.
func (s *Service) List(ctx context.Context, f authmodels.UserFilter, p listing.Page) (listing.Result[*authmodels.UserView], error) {
	if f.Status != nil {
		st := strings.ToUpper(*f.Status)
		f.Status = &st
	}
	users, total, err := s.users.List(ctx, f, p)
	if err != nil {
		return listing.Result[*authmodels.UserView]{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list users")
	}
	views := make([]*authmodels.UserView, 0, len(users))
	for _, u := range users {
		views = append(views, s.view(ctx, u))
	}
	return listing.NewResult(views, total, p), nil
}

// Get returns an account to its holder or to an administrator.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*authmodels.UserView, error) {
	if !isSelf(ctx, id) && !canManage(ctx) {
		return nil, dErrors.New(dErrors.CodeForbidden, "You do not have permission to view this user")
	}
	u, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, u), nil
}

func (s *Service) Create(ctx context.Context, req models.CreateUserRequest) (*authmodels.UserView, error) {
	if err := patch.CheckRequired(
		patch.Req("username", req.Username),
		patch.Req("email", req.Email),
		patch.Req("password", req.Password),
		patch.Req("firstName", req.FirstName),
		patch.Req("lastName", req.LastName),
		patch.Req("roleId", req.RoleID),
	); err != nil {
		return nil, err
	}
	username := strings.TrimSpace(req.Username.Value)
	email := strings.TrimSpace(req.Email.Value)
	if err := s.checkUnique(ctx, username, email, uuid.Nil); err != nil {
		return nil, err
	}
	status, err := parseStatus(req.Status.Or(authmodels.StatusActive))
	if err != nil {
		return nil, err
	}
	if err := s.checkRole(ctx, req.RoleID.Value); err != nil {
		return nil, err
	}
	if req.PositionID.Present() {
		if err := s.checkPosition(ctx, req.PositionID.Value); err != nil {
			return nil, err
		}
	}
	hash, err := secrets.Hash(req.Password.Value)
	if err != nil {
		return nil, hashError(err)
	}

	now := requestcontext.Now(ctx)
	u := &authmodels.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		FirstName:    req.FirstName.Value,
		LastName:     req.LastName.Value,
		Phone:        req.Phone.Ptr(),
		PositionID:   req.PositionID.Ptr(),
		RoleID:       req.RoleID.Ptr(),
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, s.storeError(err, "failed to create user")
	}
	if s.metrics != nil {
		s.metrics.IncrementCreated("user")
	}
	s.logAudit(ctx, audit.EntityAction("user", audit.VerbCreated), u.ID)
	return s.view(ctx, u), nil
}

// Update applies req to an account. Holders may edit their own details;
// role and status only change when an administrator sends them.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req models.UpdateUserRequest) (*authmodels.UserView, error) {
	admin := canManage(ctx)
	if !isSelf(ctx, id) && !admin {
		return nil, dErrors.New(dErrors.CodeForbidden, "You do not have permission to update this user")
	}
	u, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	username, email := u.Username, u.Email
	if err := patch.Assign(&username, req.Username, "username"); err != nil {
		return nil, err
	}
	if err := patch.Assign(&email, req.Email, "email"); err != nil {
		return nil, err
	}
	username, email = strings.TrimSpace(username), strings.TrimSpace(email)
	if username == "" {
		return nil, dErrors.Required("username")
	}
	if email == "" {
		return nil, dErrors.Required("email")
	}
	checkUser, checkEmail := "", ""
	if !strings.EqualFold(username, u.Username) {
		checkUser = username
	}
	if !strings.EqualFold(email, u.Email) {
		checkEmail = email
	}
	if err := s.checkUnique(ctx, checkUser, checkEmail, u.ID); err != nil {
		return nil, err
	}
	u.Username, u.Email = username, email

	if err := patch.Assign(&u.FirstName, req.FirstName, "firstName"); err != nil {
		return nil, err
	}
	if err := patch.Assign(&u.LastName, req.LastName, "lastName"); err != nil {
		return nil, err
	}
	patch.AssignNullable(&u.Phone, req.Phone)
	if req.PositionID.Present() {
		if err := s.checkPosition(ctx, req.PositionID.Value); err != nil {
			return nil, err
		}
	}
	patch.AssignNullable(&u.PositionID, req.PositionID)

	if admin {
		if req.RoleID.Present() {
			if err := s.checkRole(ctx, req.RoleID.Value); err != nil {
				return nil, err
			}
		}
		patch.AssignNullable(&u.RoleID, req.RoleID)
		if req.Status.Present() {
			st, err := parseStatus(req.Status.Value)
			if err != nil {
				return nil, err
			}
			u.Status = st
		}
	}
	if req.Password.Present() && req.Password.Value != "" {
		hash, err := secrets.Hash(req.Password.Value)
		if err != nil {
			return nil, hashError(err)
		}
		u.PasswordHash = hash
	}

	u.UpdatedAt = requestcontext.Now(ctx)
	if err := s.users.Update(ctx, u); err != nil {
		return nil, s.storeError(err, "failed to update user")
	}
	s.logAudit(ctx, audit.EntityAction("user", audit.VerbUpdated), u.ID)
	return s.view(ctx, u), nil
}

// Delete soft-deletes an account. Administrators cannot delete themselves.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if isSelf(ctx, id) {
		return dErrors.New(dErrors.CodeBadRequest, "You cannot delete your own account")
	}
	if err := s.users.SoftDelete(ctx, id, requestcontext.Now(ctx)); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return errUserNotFound
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete user")
	}
	s.logAudit(ctx, audit.ActionUserDeactivated, id)
	return nil
}

func (s *Service) Roles(ctx context.Context) ([]reference.Role, error) {
	roles, err := s.directory.ListRoles(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list roles")
	}
	return roles, nil
}

// Permissions renders the capability table.
func (s *Service) Permissions() []authz.Grant {
	return authz.Table()
}

func (s *Service) checkUnique(ctx context.Context, username, email string, self uuid.UUID) error {
	if username != "" {
		existing, err := s.users.FindByUsername(ctx, username)
		if err == nil && existing.ID != self {
			return dErrors.New(dErrors.CodeConflict, "Username already exists")
		}
		if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check username")
		}
	}
	if email != "" {
		existing, err := s.users.FindByEmail(ctx, email)
		if err == nil && existing.ID != self {
			return dErrors.New(dErrors.CodeConflict, "Email already exists")
		}
		if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check email")
		}
	}
	return nil
}

func (s *Service) checkRole(ctx context.Context, id int) error {
	if _, err := s.directory.RoleByID(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeBadRequest, "Invalid roleId")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load role")
	}
	return nil
}

func (s *Service) checkPosition(ctx context.Context, id int) error {
	if _, err := s.directory.PositionByID(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeBadRequest, "Invalid positionId")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load position")
	}
	return nil
}

func (s *Service) storeError(err error, msg string) error {
	switch {
	case errors.Is(err, userStore.ErrUsernameTaken):
		s.conflict()
		return dErrors.Wrap(err, dErrors.CodeConflict, "Username already exists")
	case errors.Is(err, userStore.ErrEmailTaken):
		s.conflict()
		return dErrors.Wrap(err, dErrors.CodeConflict, "Email already exists")
	case errors.Is(err, sentinel.ErrNotFound):
		return errUserNotFound
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}

func (s *Service) conflict() {
	if s.metrics != nil {
		s.metrics.IncrementConflict("user")
	}
}

func (s *Service) logAudit(ctx context.Context, action audit.Action, id uuid.UUID) {
	audit.Record(ctx, s.logger, s.auditPublisher, audit.Event{
		Action:     action,
		EntityType: "user",
		EntityID:   id.String(),
	})
}

func parseStatus(v string) (string, error) {
	switch st := strings.ToUpper(strings.TrimSpace(v)); st {
	case authmodels.StatusActive, authmodels.StatusInactive:
		return st, nil
	}
	return "", dErrors.New(dErrors.CodeBadRequest, "Invalid status")
}

func hashError(err error) error {
	if _, ok := dErrors.As(err); ok {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash password")
}
