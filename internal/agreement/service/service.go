// Package service implements collective agreements with their amendments,
// and labour disputes.
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"registrar/internal/agreement/models"
	agrStore "registrar/internal/agreement/store"
	orgmodels "registrar/internal/organization/models"
	"registrar/internal/platform/tracing"
	"registrar/internal/reference"
	"registrar/internal/resource"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/platform/dates"
	"registrar/pkg/platform/listing"
	"registrar/pkg/platform/patch"
	"registrar/pkg/platform/sentinel"
	"registrar/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store Organizations Directory

type Store interface {
	Create(ctx context.Context, a *models.Agreement) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Agreement, error)
	FindByNumber(ctx context.Context, number string) (*models.Agreement, error)
	Update(ctx context.Context, a *models.Agreement) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, f models.Filter, p listing.Page) ([]*models.Agreement, int, error)

	ListAmendments(ctx context.Context, agreementID uuid.UUID) ([]models.Amendment, error)
	FindAmendment(ctx context.Context, id uuid.UUID) (*models.Amendment, error)
	CreateAmendment(ctx context.Context, a *models.Amendment) error
	UpdateAmendment(ctx context.Context, a *models.Amendment) error
	DeleteAmendment(ctx context.Context, id uuid.UUID) error

	CreateDispute(ctx context.Context, d *models.Dispute) error
	FindDispute(ctx context.Context, id uuid.UUID) (*models.Dispute, error)
	FindDisputeByNumber(ctx context.Context, number string) (*models.Dispute, error)
	UpdateDispute(ctx context.Context, d *models.Dispute) error
	DeleteDispute(ctx context.Context, id uuid.UUID) error
	ListDisputes(ctx context.Context, f models.DisputeFilter, p listing.Page) ([]*models.Dispute, int, error)
}

// Organizations resolves the parties an agreement or dispute names.
type Organizations interface {
	FindByID(ctx context.Context, id uuid.UUID) (*orgmodels.Organization, error)
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
		return nil, errors.New("agreement store is required")
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
	entity         = "agreement"
	msgNotFound    = "Agreement not found"
	msgNumberTaken = "Agreement number already exists"
	msgOrgNotFound = "Organization not found"
)

func (s *Service) List(ctx context.Context, f models.Filter, p listing.Page) (listing.Result[*models.Agreement], error) {
	if f.Status != nil {
		st := strings.ToLower(*f.Status)
		f.Status = &st
	}
	items, total, err := s.store.List(ctx, f, p)
	if err != nil {
		return listing.Result[*models.Agreement]{}, resource.Internal(err, "list agreements")
	}
	return listing.NewResult(items, total, p), nil
}

func (s *Service) find(ctx context.Context, id uuid.UUID) (*models.Agreement, error) {
	a, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, resource.NotFound(err, msgNotFound)
	}
	return a, nil
}

// Get returns the agreement with its type, both parties and amendments.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Detail, error) {
	a, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	d := &models.Detail{Agreement: a}
	if a.AgreementTypeID != nil {
		if t, err := s.directory.TypeByID(ctx, reference.KindAgreement, *a.AgreementTypeID); err == nil {
			d.AgreementType = t
		}
	}
	d.PrimaryOrganization = s.summary(ctx, &a.PrimaryOrganizationID)
	d.CounterpartyOrganization = s.summary(ctx, a.CounterpartyOrganizationID)
	if d.Amendments, err = s.store.ListAmendments(ctx, id); err != nil {
		return nil, resource.Internal(err, "list amendments")
	}
	return d, nil
}

func (s *Service) summary(ctx context.Context, id *uuid.UUID) *orgmodels.Summary {
	if id == nil {
		return nil
	}
	o, err := s.orgs.FindByID(ctx, *id)
	if err != nil {
		return nil
	}
	return o.Summary()
}

// organization checks that a referenced organization exists.
func (s *Service) organization(ctx context.Context, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	if _, err := s.orgs.FindByID(ctx, *id); err != nil {
		return resource.NotFound(err, msgOrgNotFound)
	}
	return nil
}

func (s *Service) Create(ctx context.Context, req models.AgreementRequest) (_ *models.Agreement, err error) {
	ctx, span := tracing.Start(ctx, entity, "create")
	defer func() { tracing.End(span, err) }()

	if err := patch.CheckRequired(
		patch.Req("agreementNumber", req.AgreementNumber),
		patch.Req("agreementName", req.AgreementName),
		patch.Req("agreementTypeId", req.AgreementTypeID),
		patch.Req("primaryOrganizationId", req.PrimaryOrganizationID),
		patch.Req("effectiveDate", req.EffectiveDate),
		patch.Req("status", req.Status),
	); err != nil {
		return nil, err
	}
	number := strings.TrimSpace(req.AgreementNumber.Value)
	if err := s.checkNumberFree(ctx, number, uuid.Nil); err != nil {
		return nil, err
	}
	effective, err := dates.FromField("effectiveDate", req.EffectiveDate)
	if err != nil {
		return nil, err
	}
	expiry, err := dates.FromOptionalField("expiryDate", req.ExpiryDate)
	if err != nil {
		return nil, err
	}
	status, err := resource.Enum("status", req.Status.Value, models.Statuses)
	if err != nil {
		return nil, err
	}
	primary, err := resource.ParseID("primaryOrganizationId", req.PrimaryOrganizationID.Value)
	if err != nil {
		return nil, err
	}
	counterparty, err := resource.OptionalID("counterpartyOrganizationId", req.CounterpartyOrganizationID)
	if err != nil {
		return nil, err
	}
	if err := s.organization(ctx, &primary); err != nil {
		return nil, err
	}
	if err := s.organization(ctx, counterparty); err != nil {
		return nil, err
	}
	if err := s.checkType(ctx, reference.KindAgreement, req.AgreementTypeID, "agreementTypeId"); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	a := &models.Agreement{
		ID:                         uuid.New(),
		AgreementNumber:            number,
		AgreementName:              req.AgreementName.Value,
		AgreementTypeID:            req.AgreementTypeID.Ptr(),
		PrimaryOrganizationID:      primary,
		CounterpartyName:           req.CounterpartyName.Ptr(),
		CounterpartyOrganizationID: counterparty,
		EffectiveDate:              effective,
		ExpiryDate:                 expiry,
		Status:                     status,
		DocumentPath:               req.DocumentPath.Ptr(),
		Notes:                      req.Notes.Ptr(),
		CreatedAt:                  now,
		UpdatedAt:                  now,
	}
	span.SetAttributes(attribute.String("agreement.id", a.ID.String()))
	if err := s.store.Create(ctx, a); err != nil {
		return nil, s.writeError(err, "create agreement")
	}
	s.deps.Created(ctx, entity, a.ID)
	return a, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req models.AgreementRequest) (_ *models.Agreement, err error) {
	ctx, span := tracing.Start(ctx, entity, "update", attribute.String("agreement.id", id.String()))
	defer func() { tracing.End(span, err) }()

	a, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.AgreementNumber.Set {
		if req.AgreementNumber.Blank() {
			return nil, dErrors.New(dErrors.CodeBadRequest, "agreementNumber cannot be null")
		}
		number := strings.TrimSpace(req.AgreementNumber.Value)
		if number != a.AgreementNumber {
			if err := s.checkNumberFree(ctx, number, a.ID); err != nil {
				return nil, err
			}
		}
		a.AgreementNumber = number
	}
	if err := dates.Assign(&a.EffectiveDate, req.EffectiveDate, "effectiveDate"); err != nil {
		return nil, err
	}
	if err := dates.AssignNullable(&a.ExpiryDate, req.ExpiryDate, "expiryDate"); err != nil {
		return nil, err
	}
	if err := patch.Assign(&a.AgreementName, req.AgreementName, "agreementName"); err != nil {
		return nil, err
	}
	if err := resource.AssignEnum(&a.Status, req.Status, "status", models.Statuses); err != nil {
		return nil, err
	}
	if err := resource.AssignID(&a.PrimaryOrganizationID, req.PrimaryOrganizationID, "primaryOrganizationId"); err != nil {
		return nil, err
	}
	if err := resource.AssignOptionalID(&a.CounterpartyOrganizationID, req.CounterpartyOrganizationID, "counterpartyOrganizationId"); err != nil {
		return nil, err
	}
	if req.PrimaryOrganizationID.Set {
		if err := s.organization(ctx, &a.PrimaryOrganizationID); err != nil {
			return nil, err
		}
	}
	if req.CounterpartyOrganizationID.Set {
		if err := s.organization(ctx, a.CounterpartyOrganizationID); err != nil {
			return nil, err
		}
	}
	if err := s.checkType(ctx, reference.KindAgreement, req.AgreementTypeID, "agreementTypeId"); err != nil {
		return nil, err
	}
	patch.AssignNullable(&a.AgreementTypeID, req.AgreementTypeID)
	patch.AssignNullable(&a.CounterpartyName, req.CounterpartyName)
	patch.AssignNullable(&a.DocumentPath, req.DocumentPath)
	patch.AssignNullable(&a.Notes, req.Notes)
	a.UpdatedAt = requestcontext.Now(ctx)

	if err := s.store.Update(ctx, a); err != nil {
		return nil, s.writeError(err, "update agreement")
	}
	s.deps.Updated(ctx, entity, a.ID)
	return a, nil
}

// Delete hard-deletes the agreement with its amendments. Disputes that
// named it are kept.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return resource.NotFound(err, msgNotFound)
	}
	s.deps.Deleted(ctx, entity, id)
	return nil
}

func (s *Service) Types(ctx context.Context) ([]reference.LookupType, error) {
	return s.types(ctx, reference.KindAgreement)
}

func (s *Service) DisputeTypes(ctx context.Context) ([]reference.LookupType, error) {
	return s.types(ctx, reference.KindDispute)
}

func (s *Service) types(ctx context.Context, kind reference.Kind) ([]reference.LookupType, error) {
	types, err := s.directory.ListTypes(ctx, kind)
	if err != nil {
		return nil, resource.Internal(err, "list "+string(kind)+" types")
	}
	return types, nil
}

func (s *Service) checkNumberFree(ctx context.Context, number string, self uuid.UUID) error {
	existing, err := s.store.FindByNumber(ctx, number)
	switch {
	case err == nil && existing.ID != self:
		return s.deps.Conflict(entity, nil, msgNumberTaken)
	case err != nil && !errors.Is(err, sentinel.ErrNotFound):
		return resource.Internal(err, "check agreement number")
	}
	return nil
}

func (s *Service) checkType(ctx context.Context, kind reference.Kind, f patch.Field[int], field string) error {
	if !f.Present() {
		return nil
	}
	if _, err := s.directory.TypeByID(ctx, kind, f.Value); err != nil {
		return resource.InvalidReference(err, field)
	}
	return nil
}

func (s *Service) writeError(err error, context string) error {
	switch {
	case errors.Is(err, agrStore.ErrNumberTaken):
		return s.deps.Conflict(entity, err, msgNumberTaken)
	case errors.Is(err, agrStore.ErrAmendmentTaken):
		return s.deps.Conflict("amendment", err, msgAmendmentTaken)
	case errors.Is(err, agrStore.ErrDisputeNumberTaken):
		return s.deps.Conflict("dispute", err, msgDisputeTaken)
	case errors.Is(err, sentinel.ErrReferenced):
		return dErrors.Wrap(err, dErrors.CodeNotFound, msgNotFound)
	}
	return resource.Internal(err, context)
}
