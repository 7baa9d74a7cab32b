// Package service implements the credential operations behind /api/auth:
// login, self-registration, profile maintenance, password change and reset,
// and logout by token revocation.
package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks UserStore,TokenIssuer,TokenRevoker,ResetNotifier,AuditPublisher

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"registrar/internal/auth/models"
	jwttoken "registrar/internal/jwt_token"
	"registrar/internal/platform/metrics"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/platform/audit"
	"registrar/pkg/platform/sentinel"
)

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type TokenIssuer interface {
	GenerateAccessToken(userID uuid.UUID, roleCode string, expiresIn time.Duration) (*jwttoken.IssuedToken, error)
	GenerateResetToken(userID uuid.UUID, expiresIn time.Duration) (*jwttoken.IssuedToken, error)
	ValidateResetToken(token string) (uuid.UUID, error)
}

type TokenRevoker interface {
	RevokeToken(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// ResetNotifier delivers a password-reset token to the account holder.
type ResetNotifier interface {
	NotifyReset(ctx context.Context, user *models.User, token *jwttoken.IssuedToken) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Config carries token lifetimes and registration defaults.
type Config struct {
	TokenTTL            time.Duration
	ResetTokenTTL       time.Duration
	DefaultRoleCode     string
	DefaultPositionCode string
}

type Service struct {
	users          UserStore
	directory      models.Directory
	tokens         TokenIssuer
	revoker        TokenRevoker
	notifier       ResetNotifier
	cfg            Config
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithResetNotifier replaces the default notifier, which only logs.
func WithResetNotifier(n ResetNotifier) Option {
	return func(s *Service) {
		s.notifier = n
	}
}

func New(users UserStore, directory models.Directory, tokens TokenIssuer, revoker TokenRevoker, cfg Config, opts ...Option) (*Service, error) {
	if users == nil || directory == nil || tokens == nil || revoker == nil {
		return nil, errors.New("auth service: users, directory, tokens and revoker are required")
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = time.Hour
	}
	if cfg.ResetTokenTTL <= 0 {
		cfg.ResetTokenTTL = time.Hour
	}
	s := &Service{
		users:     users,
		directory: directory,
		tokens:    tokens,
		revoker:   revoker,
		cfg:       cfg,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.notifier == nil {
		s.notifier = LogNotifier{Logger: s.logger}
	}
	return s, nil
}

func (s *Service) logAudit(ctx context.Context, action audit.Action, userID uuid.UUID, attrs ...any) {
	audit.Record(ctx, s.logger, s.auditPublisher, audit.Event{
		Action:     action,
		EntityType: "user",
		EntityID:   userID.String(),
	}, attrs...)
}

func (s *Service) authFailure(reason string) {
	if s.metrics != nil {
		s.metrics.IncrementAuthFailure(reason)
	}
}

// internal wraps an unexpected store or signer failure.
func internal(err error, msg string) error {
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}

func isNotFound(err error) bool {
	return errors.Is(err, sentinel.ErrNotFound)
}

// hashError keeps the client-safe validation errors of the hasher and hides
// anything else.
func hashError(err error) error {
	if _, ok := dErrors.As(err); ok {
		return err
	}
	return internal(err, "failed to hash password")
}
