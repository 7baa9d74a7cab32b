// Package service implements ballot elections: elections, contested
// positions, candidates and tallied results.
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"registrar/internal/ballot/models"
	ballotStore "registrar/internal/ballot/store"
	orgmodels "registrar/internal/organization/models"
	"registrar/internal/platform/tracing"
	"registrar/internal/resource"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/platform/dates"
	"registrar/pkg/platform/listing"
	"registrar/pkg/platform/patch"
	"registrar/pkg/platform/sentinel"
	"registrar/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store Organizations

type Store interface {
	Create(ctx context.Context, e *models.Election) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Election, error)
	FindByNumber(ctx context.Context, number string) (*models.Election, error)
	Update(ctx context.Context, e *models.Election) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, f models.Filter, p listing.Page) ([]*models.Election, int, error)

	ListPositions(ctx context.Context, electionID uuid.UUID) ([]models.Position, error)
	FindPosition(ctx context.Context, id uuid.UUID) (*models.Position, error)
	CreatePosition(ctx context.Context, p *models.Position) error
	UpdatePosition(ctx context.Context, p *models.Position) error
	DeletePosition(ctx context.Context, id uuid.UUID) error

	ListCandidates(ctx context.Context, positionID uuid.UUID) ([]models.Candidate, error)
	FindCandidate(ctx context.Context, id uuid.UUID) (*models.Candidate, error)
	CreateCandidate(ctx context.Context, c *models.Candidate) error
	UpdateCandidate(ctx context.Context, c *models.Candidate) error
	DeleteCandidate(ctx context.Context, id uuid.UUID) error

	ListResults(ctx context.Context, electionID uuid.UUID) ([]models.ResultView, error)
	UpsertResult(ctx context.Context, r *models.Result) (bool, error)
	DeleteResult(ctx context.Context, id uuid.UUID) error
}

type Organizations interface {
	FindByID(ctx context.Context, id uuid.UUID) (*orgmodels.Organization, error)
}

type Service struct {
	store Store
	orgs  Organizations
	deps  resource.Deps
}

func New(store Store, orgs Organizations, opts ...resource.Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("ballot store is required")
	}
	if orgs == nil {
		return nil, errors.New("organization store is required")
	}
	return &Service{store: store, orgs: orgs, deps: resource.NewDeps(opts...)}, nil
}

const (
	entity         = "election"
	msgNotFound    = "Ballot election not found"
	msgNumberTaken = "Election number already exists"
	msgOrgNotFound = "Organization not found"
)

func (s *Service) List(ctx context.Context, f models.Filter, p listing.Page) (listing.Result[*models.Election], error) {
	if f.Status != nil {
		st := strings.ToLower(*f.Status)
		f.Status = &st
	}
	items, total, err := s.store.List(ctx, f, p)
	if err != nil {
		return listing.Result[*models.Election]{}, resource.Internal(err, "list elections")
	}
	return listing.NewResult(items, total, p), nil
}

func (s *Service) find(ctx context.Context, id uuid.UUID) (*models.Election, error) {
	e, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, resource.NotFound(err, msgNotFound)
	}
	return e, nil
}

// Get returns the election with its organization and every position with
// its candidates.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Detail, error) {
	e, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	d := &models.Detail{Election: e, Positions: []models.PositionDetail{}}
	if o, err := s.orgs.FindByID(ctx, e.OrganizationID); err == nil {
		d.Organization = o.Summary()
	}
	positions, err := s.store.ListPositions(ctx, id)
	if err != nil {
		return nil, resource.Internal(err, "list positions")
	}
	for _, p := range positions {
		candidates, err := s.store.ListCandidates(ctx, p.ID)
		if err != nil {
			return nil, resource.Internal(err, "list candidates")
		}
		d.Positions = append(d.Positions, models.PositionDetail{Position: p, Candidates: candidates})
	}
	return d, nil
}

func (s *Service) Create(ctx context.Context, req models.ElectionRequest) (_ *models.Election, err error) {
	ctx, span := tracing.Start(ctx, entity, "create")
	defer func() { tracing.End(span, err) }()

	if err := patch.CheckRequired(
		patch.Req("electionNumber", req.ElectionNumber),
		patch.Req("organizationId", req.OrganizationID),
		patch.Req("electionDate", req.ElectionDate),
		patch.Req("purpose", req.Purpose),
		patch.Req("status", req.Status),
	); err != nil {
		return nil, err
	}
	number := strings.TrimSpace(req.ElectionNumber.Value)
	if err := s.checkNumberFree(ctx, number, uuid.Nil); err != nil {
		return nil, err
	}
	date, err := dates.FromField("electionDate", req.ElectionDate)
	if err != nil {
		return nil, err
	}
	status, err := resource.Enum("status", req.Status.Value, models.Statuses)
	if err != nil {
		return nil, err
	}
	orgID, err := resource.ParseID("organizationId", req.OrganizationID.Value)
	if err != nil {
		return nil, err
	}
	supervisor, err := resource.OptionalID("supervisorId", req.SupervisorID)
	if err != nil {
		return nil, err
	}
	if err := s.organization(ctx, orgID); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	e := &models.Election{
		ID:             uuid.New(),
		ElectionNumber: number,
		OrganizationID: orgID,
		ElectionDate:   date,
		Purpose:        req.Purpose.Value,
		Status:         status,
		SupervisorID:   supervisor,
		Location:       req.Location.Ptr(),
		Notes:          req.Notes.Ptr(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	span.SetAttributes(attribute.String("election.id", e.ID.String()))
	if err := s.store.Create(ctx, e); err != nil {
		return nil, s.writeError(err, "create election")
	}
	s.deps.Created(ctx, entity, e.ID)
	return e, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req models.ElectionRequest) (_ *models.Election, err error) {
	ctx, span := tracing.Start(ctx, entity, "update", attribute.String("election.id", id.String()))
	defer func() { tracing.End(span, err) }()

	e, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.ElectionNumber.Set {
		if req.ElectionNumber.Blank() {
			return nil, dErrors.New(dErrors.CodeBadRequest, "electionNumber cannot be null")
		}
		number := strings.TrimSpace(req.ElectionNumber.Value)
		if number != e.ElectionNumber {
			if err := s.checkNumberFree(ctx, number, e.ID); err != nil {
				return nil, err
			}
		}
		e.ElectionNumber = number
	}
	if err := dates.Assign(&e.ElectionDate, req.ElectionDate, "electionDate"); err != nil {
		return nil, err
	}
	if err := patch.Assign(&e.Purpose, req.Purpose, "purpose"); err != nil {
		return nil, err
	}
	if err := resource.AssignEnum(&e.Status, req.Status, "status", models.Statuses); err != nil {
		return nil, err
	}
	if err := resource.AssignID(&e.OrganizationID, req.OrganizationID, "organizationId"); err != nil {
		return nil, err
	}
	if err := resource.AssignOptionalID(&e.SupervisorID, req.SupervisorID, "supervisorId"); err != nil {
		return nil, err
	}
	if req.OrganizationID.Set {
		if err := s.organization(ctx, e.OrganizationID); err != nil {
			return nil, err
		}
	}
	patch.AssignNullable(&e.Location, req.Location)
	patch.AssignNullable(&e.Notes, req.Notes)
	e.UpdatedAt = requestcontext.Now(ctx)

	if err := s.store.Update(ctx, e); err != nil {
		return nil, s.writeError(err, "update election")
	}
	s.deps.Updated(ctx, entity, e.ID)
	return e, nil
}

// Delete removes the election with its positions, candidates and results.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return resource.NotFound(err, msgNotFound)
	}
	s.deps.Deleted(ctx, entity, id)
	return nil
}

func (s *Service) organization(ctx context.Context, id uuid.UUID) error {
	if _, err := s.orgs.FindByID(ctx, id); err != nil {
		return resource.NotFound(err, msgOrgNotFound)
	}
	return nil
}

func (s *Service) checkNumberFree(ctx context.Context, number string, self uuid.UUID) error {
	existing, err := s.store.FindByNumber(ctx, number)
	switch {
	case err == nil && existing.ID != self:
		return s.deps.Conflict(entity, nil, msgNumberTaken)
	case err != nil && !errors.Is(err, sentinel.ErrNotFound):
		return resource.Internal(err, "check election number")
	}
	return nil
}

func (s *Service) writeError(err error, context string) error {
	switch {
	case errors.Is(err, ballotStore.ErrNumberTaken):
		return s.deps.Conflict(entity, err, msgNumberTaken)
	case errors.Is(err, ballotStore.ErrUnknownSupervisor):
		return dErrors.Wrap(err, dErrors.CodeBadRequest, "Invalid supervisorId")
	}
	return resource.Internal(err, context)
}
