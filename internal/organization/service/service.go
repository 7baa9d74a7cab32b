// Package service implements the organization registry: organizations,
// their officials and their constitution versions.
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"registrar/internal/organization/models"
	orgStore "registrar/internal/organization/store"
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

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store Directory

type Store interface {
	Create(ctx context.Context, o *models.Organization) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Organization, error)
	FindByRegistrationNumber(ctx context.Context, number string) (*models.Organization, error)
	Update(ctx context.Context, o *models.Organization) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, f models.Filter, p listing.Page) ([]*models.Organization, int, error)

	ListOfficials(ctx context.Context, orgID uuid.UUID) ([]models.Official, error)
	FindOfficial(ctx context.Context, id uuid.UUID) (*models.Official, error)
	CreateOfficial(ctx context.Context, o *models.Official) error
	UpdateOfficial(ctx context.Context, o *models.Official) error
	DeleteOfficial(ctx context.Context, id uuid.UUID) error

	ListConstitutions(ctx context.Context, orgID uuid.UUID) ([]models.Constitution, error)
	FindConstitution(ctx context.Context, id uuid.UUID) (*models.Constitution, error)
	CreateConstitution(ctx context.Context, c *models.Constitution) error
	UpdateConstitution(ctx context.Context, c *models.Constitution) error
	DeleteConstitution(ctx context.Context, id uuid.UUID) error
}

// Directory resolves the lookups an organization points at.
type Directory interface {
	TypeByID(ctx context.Context, kind reference.Kind, id int) (*reference.LookupType, error)
	ListTypes(ctx context.Context, kind reference.Kind) ([]reference.LookupType, error)
	ListRegions(ctx context.Context) ([]reference.Region, error)
	ListDistricts(ctx context.Context, regionID *int) ([]reference.District, error)
	DistrictByID(ctx context.Context, id int) (*reference.District, error)
}

type Service struct {
	store     Store
	directory Directory
	deps      resource.Deps
}

func New(store Store, directory Directory, opts ...resource.Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("organization store is required")
	}
	if directory == nil {
		return nil, errors.New("reference directory is required")
	}
	return &Service{store: store, directory: directory, deps: resource.NewDeps(opts...)}, nil
}

const (
	entity           = "organization"
	msgNotFound      = "Organization not found"
	msgRegistration  = "Registration number already exists"
	msgStillReferred = "Organization is still referenced"
)

// List pages organizations ordered by name. A region filter is resolved to
// its districts.
func (s *Service) List(ctx context.Context, f models.Filter, regionID *int, p listing.Page) (listing.Result[*models.Organization], error) {
	if f.Status != nil {
		st := strings.ToLower(*f.Status)
		f.Status = &st
	}
	if regionID != nil {
		districts, err := s.directory.ListDistricts(ctx, regionID)
		if err != nil {
			return listing.Result[*models.Organization]{}, resource.Internal(err, "list districts")
		}
		f.DistrictIn = make([]int, 0, len(districts))
		for _, d := range districts {
			f.DistrictIn = append(f.DistrictIn, d.ID)
		}
	}
	items, total, err := s.store.List(ctx, f, p)
	if err != nil {
		return listing.Result[*models.Organization]{}, resource.Internal(err, "list organizations")
	}
	return listing.NewResult(items, total, p), nil
}

// Get returns the organization with its type, district, officials and
// constitutions.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Detail, error) {
	o, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	d := &models.Detail{Organization: o}
	if o.OrganizationTypeID != nil {
		if t, err := s.directory.TypeByID(ctx, reference.KindOrganization, *o.OrganizationTypeID); err == nil {
			d.OrganizationType = t
		}
	}
	if o.DistrictID != nil {
		if dist, err := s.directory.DistrictByID(ctx, *o.DistrictID); err == nil {
			d.District = dist
		}
	}
	if d.Officials, err = s.store.ListOfficials(ctx, id); err != nil {
		return nil, resource.Internal(err, "list officials")
	}
	if d.Constitutions, err = s.store.ListConstitutions(ctx, id); err != nil {
		return nil, resource.Internal(err, "list constitutions")
	}
	return d, nil
}

func (s *Service) find(ctx context.Context, id uuid.UUID) (*models.Organization, error) {
	o, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, resource.NotFound(err, msgNotFound)
	}
	return o, nil
}

func (s *Service) Create(ctx context.Context, req models.OrganizationRequest) (_ *models.Organization, err error) {
	ctx, span := tracing.Start(ctx, entity, "create")
	defer func() { tracing.End(span, err) }()

	if err := patch.CheckRequired(
		patch.Req("registrationNumber", req.RegistrationNumber),
		patch.Req("organizationName", req.OrganizationName),
		patch.Req("organizationTypeId", req.OrganizationTypeID),
		patch.Req("registrationDate", req.RegistrationDate),
		patch.Req("status", req.Status),
	); err != nil {
		return nil, err
	}
	number := strings.TrimSpace(req.RegistrationNumber.Value)
	if err := s.checkRegistrationFree(ctx, number, uuid.Nil); err != nil {
		return nil, err
	}
	registered, err := dates.FromField("registrationDate", req.RegistrationDate)
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
	if err := s.checkLookups(ctx, req); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	o := &models.Organization{
		ID:                 uuid.New(),
		RegistrationNumber: number,
		OrganizationName:   req.OrganizationName.Value,
		OrganizationTypeID: req.OrganizationTypeID.Ptr(),
		RegistrationDate:   registered,
		ExpiryDate:         expiry,
		Status:             status,
		Address:            req.Address.Ptr(),
		DistrictID:         req.DistrictID.Ptr(),
		ContactPerson:      req.ContactPerson.Ptr(),
		ContactEmail:       req.ContactEmail.Ptr(),
		ContactPhone:       req.ContactPhone.Ptr(),
		Website:            req.Website.Ptr(),
		MembershipCount:    req.MembershipCount.Ptr(),
		IsCompliant:        true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	span.SetAttributes(attribute.String("organization.id", o.ID.String()))
	if err := s.store.Create(ctx, o); err != nil {
		return nil, s.writeError(err, "create organization")
	}
	s.deps.Created(ctx, entity, o.ID)
	return o, nil
}

// Update applies the fields present in req. Compliance fields are not
// client-writable.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req models.OrganizationRequest) (_ *models.Organization, err error) {
	ctx, span := tracing.Start(ctx, entity, "update", attribute.String("organization.id", id.String()))
	defer func() { tracing.End(span, err) }()

	o, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.RegistrationNumber.Set {
		if req.RegistrationNumber.Blank() {
			return nil, dErrors.New(dErrors.CodeBadRequest, "registrationNumber cannot be null")
		}
		number := strings.TrimSpace(req.RegistrationNumber.Value)
		if number != o.RegistrationNumber {
			if err := s.checkRegistrationFree(ctx, number, o.ID); err != nil {
				return nil, err
			}
		}
		o.RegistrationNumber = number
	}
	if err := dates.Assign(&o.RegistrationDate, req.RegistrationDate, "registrationDate"); err != nil {
		return nil, err
	}
	if err := dates.AssignNullable(&o.ExpiryDate, req.ExpiryDate, "expiryDate"); err != nil {
		return nil, err
	}
	if err := patch.Assign(&o.OrganizationName, req.OrganizationName, "organizationName"); err != nil {
		return nil, err
	}
	if err := resource.AssignEnum(&o.Status, req.Status, "status", models.Statuses); err != nil {
		return nil, err
	}
	if err := s.checkLookups(ctx, req); err != nil {
		return nil, err
	}
	patch.AssignNullable(&o.OrganizationTypeID, req.OrganizationTypeID)
	patch.AssignNullable(&o.DistrictID, req.DistrictID)
	patch.AssignNullable(&o.Address, req.Address)
	patch.AssignNullable(&o.ContactPerson, req.ContactPerson)
	patch.AssignNullable(&o.ContactEmail, req.ContactEmail)
	patch.AssignNullable(&o.ContactPhone, req.ContactPhone)
	patch.AssignNullable(&o.Website, req.Website)
	patch.AssignNullable(&o.MembershipCount, req.MembershipCount)
	o.UpdatedAt = requestcontext.Now(ctx)

	if err := s.store.Update(ctx, o); err != nil {
		return nil, s.writeError(err, "update organization")
	}
	s.deps.Updated(ctx, entity, o.ID)
	return o, nil
}

// Delete hard-deletes the organization and its officials and constitutions.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrReferenced) {
			return dErrors.Wrap(err, dErrors.CodeConflict, msgStillReferred)
		}
		return resource.NotFound(err, msgNotFound)
	}
	s.deps.Deleted(ctx, entity, id)
	return nil
}

func (s *Service) Types(ctx context.Context) ([]reference.LookupType, error) {
	types, err := s.directory.ListTypes(ctx, reference.KindOrganization)
	if err != nil {
		return nil, resource.Internal(err, "list organization types")
	}
	return types, nil
}

func (s *Service) Regions(ctx context.Context) ([]reference.Region, error) {
	regions, err := s.directory.ListRegions(ctx)
	if err != nil {
		return nil, resource.Internal(err, "list regions")
	}
	return regions, nil
}

func (s *Service) Districts(ctx context.Context, regionID *int) ([]reference.District, error) {
	districts, err := s.directory.ListDistricts(ctx, regionID)
	if err != nil {
		return nil, resource.Internal(err, "list districts")
	}
	return districts, nil
}

func (s *Service) checkRegistrationFree(ctx context.Context, number string, self uuid.UUID) error {
	existing, err := s.store.FindByRegistrationNumber(ctx, number)
	switch {
	case err == nil && existing.ID != self:
		return s.deps.Conflict(entity, nil, msgRegistration)
	case err != nil && !errors.Is(err, sentinel.ErrNotFound):
		return resource.Internal(err, "check registration number")
	}
	return nil
}

func (s *Service) checkLookups(ctx context.Context, req models.OrganizationRequest) error {
	if req.OrganizationTypeID.Present() {
		if _, err := s.directory.TypeByID(ctx, reference.KindOrganization, req.OrganizationTypeID.Value); err != nil {
			return resource.InvalidReference(err, "organizationTypeId")
		}
	}
	if req.DistrictID.Present() {
		if _, err := s.directory.DistrictByID(ctx, req.DistrictID.Value); err != nil {
			return resource.InvalidReference(err, "districtId")
		}
	}
	return nil
}

func (s *Service) writeError(err error, context string) error {
	switch {
	case errors.Is(err, orgStore.ErrRegistrationTaken):
		return s.deps.Conflict(entity, err, msgRegistration)
	case errors.Is(err, orgStore.ErrVersionTaken):
		return s.deps.Conflict("constitution", err, msgVersionTaken)
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.Wrap(err, dErrors.CodeNotFound, msgNotFound)
	case errors.Is(err, sentinel.ErrReferenced):
		return dErrors.Wrap(err, dErrors.CodeNotFound, msgNotFound)
	}
	return resource.Internal(err, context)
}
