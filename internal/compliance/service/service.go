// Package service implements compliance tracking. Record and issue writes
// recompute the organization's isCompliant flag in the same transaction;
// the stored flag is a cache maintained only by these write paths.
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	authmodels "registrar/internal/auth/models"
	"registrar/internal/compliance/models"
	orgmodels "registrar/internal/organization/models"
	"registrar/internal/reference"
	"registrar/internal/resource"
	"registrar/pkg/platform/dates"
	"registrar/pkg/platform/listing"
	"registrar/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store Organizations Users Requirements

type Store interface {
	CreateRecord(ctx context.Context, r *models.Record) error
	FindRecord(ctx context.Context, id uuid.UUID) (*models.Record, error)
	UpdateRecord(ctx context.Context, r *models.Record) error
	DeleteRecord(ctx context.Context, id uuid.UUID) error
	ListRecords(ctx context.Context, f models.RecordFilter, p listing.Page) ([]*models.Record, int, error)

	CreateInspection(ctx context.Context, in *models.Inspection) error
	FindInspection(ctx context.Context, id uuid.UUID) (*models.Inspection, error)
	UpdateInspection(ctx context.Context, in *models.Inspection) error
	DeleteInspection(ctx context.Context, id uuid.UUID) error
	ListInspections(ctx context.Context, f models.InspectionFilter, p listing.Page) ([]*models.Inspection, int, error)

	CreateIssue(ctx context.Context, is *models.Issue) error
	FindIssue(ctx context.Context, id uuid.UUID) (*models.Issue, error)
	UpdateIssue(ctx context.Context, is *models.Issue) error
	DeleteIssue(ctx context.Context, id uuid.UUID) error
	ListIssues(ctx context.Context, f models.IssueFilter, p listing.Page) ([]*models.Issue, int, error)

	Standing(ctx context.Context, orgID uuid.UUID) (models.Standing, error)
}

type Organizations interface {
	FindByID(ctx context.Context, id uuid.UUID) (*orgmodels.Organization, error)
	SetCompliance(ctx context.Context, id uuid.UUID, compliant bool, checked dates.Date) error
}

// Users resolves approvers and inspectors.
type Users interface {
	FindByID(ctx context.Context, id uuid.UUID) (*authmodels.User, error)
}

type Requirements interface {
	ListRequirements(ctx context.Context) ([]reference.Requirement, error)
	RequirementByID(ctx context.Context, id int) (*reference.Requirement, error)
}

type Service struct {
	store        Store
	orgs         Organizations
	users        Users
	requirements Requirements
	deps         resource.Deps
}

func New(store Store, orgs Organizations, users Users, requirements Requirements, opts ...resource.Option) (*Service, error) {
	switch {
	case store == nil:
		return nil, errors.New("compliance store is required")
	case orgs == nil:
		return nil, errors.New("organization store is required")
	case users == nil:
		return nil, errors.New("user store is required")
	case requirements == nil:
		return nil, errors.New("requirement directory is required")
	}
	return &Service{store: store, orgs: orgs, users: users, requirements: requirements, deps: resource.NewDeps(opts...)}, nil
}

const msgOrgNotFound = "Organization not found"

func (s *Service) Requirements(ctx context.Context) ([]reference.Requirement, error) {
	out, err := s.requirements.ListRequirements(ctx)
	if err != nil {
		return nil, resource.Internal(err, "list requirements")
	}
	return out, nil
}

// write runs fn and recomputes compliance for every organization it
// touched, all in one transaction.
func (s *Service) write(ctx context.Context, fn func(ctx context.Context) error, orgIDs ...uuid.UUID) error {
	return s.deps.Tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := fn(ctx); err != nil {
			return err
		}
		return s.recompute(ctx, orgIDs...)
	})
}

func (s *Service) recompute(ctx context.Context, orgIDs ...uuid.UUID) error {
	today := dates.Today(requestcontext.Now(ctx))
	seen := make(map[uuid.UUID]bool, len(orgIDs))
	for _, id := range orgIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		st, err := s.store.Standing(ctx, id)
		if err != nil {
			return resource.Internal(err, "evaluate compliance")
		}
		if err := s.orgs.SetCompliance(ctx, id, st.Compliant(), today); err != nil {
			return resource.Internal(err, "update compliance flag")
		}
	}
	return nil
}

func (s *Service) organization(ctx context.Context, id uuid.UUID) (*orgmodels.Organization, error) {
	o, err := s.orgs.FindByID(ctx, id)
	if err != nil {
		return nil, resource.NotFound(err, msgOrgNotFound)
	}
	return o, nil
}

func (s *Service) summary(ctx context.Context, id uuid.UUID) *orgmodels.Summary {
	o, err := s.orgs.FindByID(ctx, id)
	if err != nil {
		return nil
	}
	return o.Summary()
}

func (s *Service) user(ctx context.Context, id *uuid.UUID, field string) error {
	if id == nil {
		return nil
	}
	if _, err := s.users.FindByID(ctx, *id); err != nil {
		return resource.InvalidReference(err, field)
	}
	return nil
}

func lower(v *string) *string {
	if v == nil {
		return nil
	}
	l := strings.ToLower(*v)
	return &l
}
