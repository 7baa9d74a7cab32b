package httptransport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	agreementhandler "registrar/internal/agreement/handler"
	agreementservice "registrar/internal/agreement/service"
	authhandler "registrar/internal/auth/handler"
	authservice "registrar/internal/auth/service"
	ballothandler "registrar/internal/ballot/handler"
	ballotservice "registrar/internal/ballot/service"
	compliancehandler "registrar/internal/compliance/handler"
	complianceservice "registrar/internal/compliance/service"
	dashboardhandler "registrar/internal/dashboard/handler"
	dashboardservice "registrar/internal/dashboard/service"
	documenthandler "registrar/internal/document/handler"
	documentservice "registrar/internal/document/service"
	jwttoken "registrar/internal/jwt_token"
	notificationhandler "registrar/internal/notification/handler"
	notificationservice "registrar/internal/notification/service"
	orghandler "registrar/internal/organization/handler"
	orgservice "registrar/internal/organization/service"
	"registrar/internal/platform/config"
	"registrar/internal/platform/metrics"
	ratelimit "registrar/internal/ratelimit/middleware"
	"registrar/internal/reference"
	"registrar/internal/resource"
	settingshandler "registrar/internal/settings/handler"
	settingsservice "registrar/internal/settings/service"
	traininghandler "registrar/internal/training/handler"
	trainingservice "registrar/internal/training/service"
	usershandler "registrar/internal/users/handler"
	usersservice "registrar/internal/users/service"
	"registrar/pkg/platform/audit"
	"registrar/pkg/platform/dates"
	authmw "registrar/pkg/platform/middleware/auth"
	"registrar/pkg/platform/tx"
)

// UserStore backs both /api/auth and /api/users.
type UserStore interface {
	usersservice.UserStore
	TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

// OrganizationStore is the organization store plus the compliance flag
// written by compliance records.
type OrganizationStore interface {
	orgservice.Store
	SetCompliance(ctx context.Context, id uuid.UUID, compliant bool, checked dates.Date) error
}

// Stores are the persistence backends of every module. Dashboard is
// optional; its aggregations only exist in Postgres.
type Stores struct {
	Users         UserStore
	Revocations   authservice.TokenRevoker
	Reference     reference.Store
	Organizations OrganizationStore
	Agreements    agreementservice.Store
	Ballots       ballotservice.Store
	Trainings     trainingservice.Store
	Compliance    complianceservice.Store
	Documents     documentservice.Store
	Settings      settingsservice.Store
	Notifications notificationservice.Store
	Dashboard     dashboardservice.Store
}

// Platform carries the cross-cutting collaborators handed to services.
// Metrics, Audit, Tx and RateLimit are optional.
type Platform struct {
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
	Audit     audit.Emitter
	Tx        tx.Runner
	Tokens    *jwttoken.JWTService
	Auth      config.AuthConfig
	RateLimit *ratelimit.Middleware
}

// Build constructs every service and handler over s and returns the router
// configuration for them. Health, MetricsHandler and RequestTimeout are left
// for the caller.
func Build(s Stores, p Platform) (Config, error) {
	if p.Tokens == nil {
		return Config{}, errors.New("token service is required")
	}
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	opts := []resource.Option{resource.WithLogger(logger), resource.WithTxRunner(p.Tx)}
	authOpts := []authservice.Option{authservice.WithLogger(logger)}
	userOpts := []usersservice.Option{usersservice.WithLogger(logger)}
	if p.Audit != nil {
		opts = append(opts, resource.WithAuditPublisher(p.Audit))
		authOpts = append(authOpts, authservice.WithAuditPublisher(p.Audit))
		userOpts = append(userOpts, usersservice.WithAuditPublisher(p.Audit))
	}
	if p.Metrics != nil {
		opts = append(opts, resource.WithMetrics(p.Metrics))
		authOpts = append(authOpts, authservice.WithMetrics(p.Metrics))
		userOpts = append(userOpts, usersservice.WithMetrics(p.Metrics))
	}

	authSvc, err := authservice.New(s.Users, s.Reference, p.Tokens, s.Revocations, authservice.Config{
		TokenTTL:            p.Auth.TokenTTL,
		ResetTokenTTL:       p.Auth.ResetTokenTTL,
		DefaultRoleCode:     p.Auth.DefaultRoleCode,
		DefaultPositionCode: p.Auth.DefaultPositionCode,
	}, authOpts...)
	if err != nil {
		return Config{}, fmt.Errorf("auth service: %w", err)
	}
	guard := authmw.Guard{
		Validator:  p.Tokens,
		Revocation: authSvc,
		Principals: authSvc,
		Logger:     logger,
	}
	if p.Metrics != nil {
		guard.Failures = p.Metrics
	}

	users, err := usersservice.New(s.Users, s.Reference, userOpts...)
	if err != nil {
		return Config{}, fmt.Errorf("users service: %w", err)
	}
	orgs, err := orgservice.New(s.Organizations, s.Reference, opts...)
	if err != nil {
		return Config{}, fmt.Errorf("organization service: %w", err)
	}
	agreements, err := agreementservice.New(s.Agreements, s.Organizations, s.Reference, opts...)
	if err != nil {
		return Config{}, fmt.Errorf("agreement service: %w", err)
	}
	ballots, err := ballotservice.New(s.Ballots, s.Organizations, opts...)
	if err != nil {
		return Config{}, fmt.Errorf("ballot service: %w", err)
	}
	trainings, err := trainingservice.New(s.Trainings, s.Organizations, s.Reference, opts...)
	if err != nil {
		return Config{}, fmt.Errorf("training service: %w", err)
	}
	compliance, err := complianceservice.New(s.Compliance, s.Organizations, s.Users, s.Reference, opts...)
	if err != nil {
		return Config{}, fmt.Errorf("compliance service: %w", err)
	}
	documents, err := documentservice.New(s.Documents, documentservice.Targets{
		Organizations: s.Organizations,
		Agreements:    s.Agreements,
		Elections:     s.Ballots,
		Workshops:     s.Trainings,
	}, s.Users, s.Reference, opts...)
	if err != nil {
		return Config{}, fmt.Errorf("document service: %w", err)
	}
	settings, err := settingsservice.New(s.Settings, opts...)
	if err != nil {
		return Config{}, fmt.Errorf("settings service: %w", err)
	}
	notifications, err := notificationservice.New(s.Notifications, s.Users, opts...)
	if err != nil {
		return Config{}, fmt.Errorf("notification service: %w", err)
	}

	modules := []Module{
		{Path: "/organizations", Register: orghandler.New(orgs, logger).Register},
		{Path: "/agreements", Register: agreementhandler.New(agreements, logger).Register},
		{Path: "/ballots", Register: ballothandler.New(ballots, logger).Register},
		{Path: "/trainings", Register: traininghandler.New(trainings, logger).Register},
		{Path: "/compliance", Register: compliancehandler.New(compliance, logger).Register},
		{Path: "/documents", Register: documenthandler.New(documents, logger).Register},
		{Path: "/users", Register: usershandler.New(users, logger).Register},
		{Path: "/settings", Register: settingshandler.New(settings, logger).Register},
		{Path: "/notifications", Register: notificationhandler.New(notifications, logger).Register},
	}
	if s.Dashboard != nil {
		dashboard, err := dashboardservice.New(s.Dashboard)
		if err != nil {
			return Config{}, fmt.Errorf("dashboard service: %w", err)
		}
		modules = append(modules, Module{Path: "/dashboard", Register: dashboardhandler.New(dashboard, logger).Register})
	}

	cfg := Config{
		Logger:  logger,
		Guard:   authmw.RequireAuth(guard),
		Auth:    authhandler.New(authSvc, logger),
		Modules: modules,
	}
	if p.Metrics != nil {
		cfg.Latency = p.Metrics
	}
	if p.RateLimit != nil {
		cfg.AuthLimit = p.RateLimit.RateLimitAuth()
	}
	return cfg, nil
}
