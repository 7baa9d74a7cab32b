// Package service implements training workshops and participant
// enrolment.
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	orgmodels "registrar/internal/organization/models"
	"registrar/internal/platform/tracing"
	"registrar/internal/reference"
	"registrar/internal/resource"
	"registrar/internal/training/models"
	trainingStore "registrar/internal/training/store"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/platform/dates"
	"registrar/pkg/platform/listing"
	"registrar/pkg/platform/patch"
	"registrar/pkg/platform/sentinel"
	"registrar/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store Organizations Directory

type Store interface {
	Create(ctx context.Context, w *models.Workshop) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Workshop, error)
	Update(ctx context.Context, w *models.Workshop) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, f models.Filter, p listing.Page) ([]*models.Workshop, int, error)

	ListParticipants(ctx context.Context, workshopID uuid.UUID) ([]models.Participant, error)
	FindParticipant(ctx context.Context, id uuid.UUID) (*models.Participant, error)
	AddParticipant(ctx context.Context, p *models.Participant) error
	UpdateParticipant(ctx context.Context, p *models.Participant) error
	DeleteParticipant(ctx context.Context, id uuid.UUID) error
}

// Organizations resolves the organization and official a participant
// may be linked to.
type Organizations interface {
	FindByID(ctx context.Context, id uuid.UUID) (*orgmodels.Organization, error)
	FindOfficial(ctx context.Context, id uuid.UUID) (*orgmodels.Official, error)
}

type Directory interface {
	TypeByID(ctx context.Context, kind reference.Kind, id int) (*reference.LookupType, error)
	ListTypes(ctx context.Context, kind reference.Kind) ([]reference.LookupType, error)
}

type Service struct {
	store     Store
	orgs      Organizations
	directory Directory
	deps      resource.Deps
}

func New(store Store, orgs Organizations, directory Directory, opts ...resource.Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("training store is required")
	}
	if orgs == nil {
		return nil, errors.New("organization store is required")
	}
	if directory == nil {
		return nil, errors.New("reference directory is required")
	}
	return &Service{store: store, orgs: orgs, directory: directory, deps: resource.NewDeps(opts...)}, nil
}

const (
	entity          = "workshop"
	msgNotFound     = "Training workshop not found"
	msgWorkshopFull = "Workshop is full"
	msgDateOrder    = "endDate cannot be before startDate"
)

func (s *Service) List(ctx context.Context, f models.Filter, p listing.Page) (listing.Result[*models.Workshop], error) {
	if f.Status != nil {
		st := strings.ToLower(*f.Status)
		f.Status = &st
	}
	items, total, err := s.store.List(ctx, f, p)
	if err != nil {
		return listing.Result[*models.Workshop]{}, resource.Internal(err, "list workshops")
	}
	return listing.NewResult(items, total, p), nil
}

func (s *Service) find(ctx context.Context, id uuid.UUID) (*models.Workshop, error) {
	w, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, resource.NotFound(err, msgNotFound)
	}
	return w, nil
}

// Get returns the workshop with its training type and participants.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Detail, error) {
	w, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	d := &models.Detail{Workshop: w}
	if w.TrainingTypeID != nil {
		if t, err := s.directory.TypeByID(ctx, reference.KindTraining, *w.TrainingTypeID); err == nil {
			d.TrainingType = t
		}
	}
	if d.Participants, err = s.store.ListParticipants(ctx, id); err != nil {
		return nil, resource.Internal(err, "list participants")
	}
	return d, nil
}

func (s *Service) Create(ctx context.Context, req models.WorkshopRequest) (_ *models.Workshop, err error) {
	ctx, span := tracing.Start(ctx, entity, "create")
	defer func() { tracing.End(span, err) }()

	if err := patch.CheckRequired(
		patch.Req("workshopName", req.WorkshopName),
		patch.Req("startDate", req.StartDate),
		patch.Req("endDate", req.EndDate),
		patch.Req("status", req.Status),
	); err != nil {
		return nil, err
	}
	start, err := dates.FromField("startDate", req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := dates.FromField("endDate", req.EndDate)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, dErrors.New(dErrors.CodeBadRequest, msgDateOrder)
	}
	status, err := resource.Enum("status", req.Status.Value, models.Statuses)
	if err != nil {
		return nil, err
	}
	if err := checkCapacity(req.MaxParticipants); err != nil {
		return nil, err
	}
	if err := s.checkType(ctx, req.TrainingTypeID); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	w := &models.Workshop{
		ID:              uuid.New(),
		WorkshopName:    req.WorkshopName.Value,
		TrainingTypeID:  req.TrainingTypeID.Ptr(),
		StartDate:       start,
		EndDate:         end,
		Location:        req.Location.Ptr(),
		Facilitator:     req.Facilitator.Ptr(),
		MaxParticipants: req.MaxParticipants.Ptr(),
		Status:          status,
		Description:     req.Description.Ptr(),
		MaterialsPath:   req.MaterialsPath.Ptr(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	span.SetAttributes(attribute.String("workshop.id", w.ID.String()))
	if err := s.store.Create(ctx, w); err != nil {
		return nil, s.writeError(err, "create workshop")
	}
	s.deps.Created(ctx, entity, w.ID)
	return w, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req models.WorkshopRequest) (_ *models.Workshop, err error) {
	ctx, span := tracing.Start(ctx, entity, "update", attribute.String("workshop.id", id.String()))
	defer func() { tracing.End(span, err) }()

	w, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := patch.Assign(&w.WorkshopName, req.WorkshopName, "workshopName"); err != nil {
		return nil, err
	}
	if err := dates.Assign(&w.StartDate, req.StartDate, "startDate"); err != nil {
		return nil, err
	}
	if err := dates.Assign(&w.EndDate, req.EndDate, "endDate"); err != nil {
		return nil, err
	}
	if w.EndDate.Before(w.StartDate) {
		return nil, dErrors.New(dErrors.CodeBadRequest, msgDateOrder)
	}
	if err := resource.AssignEnum(&w.Status, req.Status, "status", models.Statuses); err != nil {
		return nil, err
	}
	if err := checkCapacity(req.MaxParticipants); err != nil {
		return nil, err
	}
	if err := s.checkType(ctx, req.TrainingTypeID); err != nil {
		return nil, err
	}
	patch.AssignNullable(&w.TrainingTypeID, req.TrainingTypeID)
	patch.AssignNullable(&w.MaxParticipants, req.MaxParticipants)
	patch.AssignNullable(&w.Location, req.Location)
	patch.AssignNullable(&w.Facilitator, req.Facilitator)
	patch.AssignNullable(&w.Description, req.Description)
	patch.AssignNullable(&w.MaterialsPath, req.MaterialsPath)
	w.UpdatedAt = requestcontext.Now(ctx)

	if err := s.store.Update(ctx, w); err != nil {
		return nil, s.writeError(err, "update workshop")
	}
	s.deps.Updated(ctx, entity, w.ID)
	return w, nil
}

// Delete removes the workshop and its participants.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return resource.NotFound(err, msgNotFound)
	}
	s.deps.Deleted(ctx, entity, id)
	return nil
}

func (s *Service) Types(ctx context.Context) ([]reference.LookupType, error) {
	types, err := s.directory.ListTypes(ctx, reference.KindTraining)
	if err != nil {
		return nil, resource.Internal(err, "list training types")
	}
	return types, nil
}

func checkCapacity(f patch.Field[int]) error {
	if f.Present() && f.Value < 1 {
		return dErrors.New(dErrors.CodeBadRequest, "Invalid maxParticipants")
	}
	return nil
}

func (s *Service) checkType(ctx context.Context, f patch.Field[int]) error {
	if !f.Present() {
		return nil
	}
	if _, err := s.directory.TypeByID(ctx, reference.KindTraining, f.Value); err != nil {
		return resource.InvalidReference(err, "trainingTypeId")
	}
	return nil
}

func (s *Service) writeError(err error, context string) error {
	switch {
	case errors.Is(err, trainingStore.ErrWorkshopFull):
		return s.deps.Conflict(entity, err, msgWorkshopFull)
	case errors.Is(err, sentinel.ErrReferenced):
		return dErrors.Wrap(err, dErrors.CodeNotFound, msgNotFound)
	}
	return resource.Internal(err, context)
}
