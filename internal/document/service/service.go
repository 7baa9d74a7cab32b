// Package service implements document metadata and the document type
// lookup.
package service

import (
	"context"
	"errors"
	"path"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	agreementmodels "registrar/internal/agreement/models"
	authmodels "registrar/internal/auth/models"
	"registrar/internal/authz"
	ballotmodels "registrar/internal/ballot/models"
	"registrar/internal/document/models"
	documentStore "registrar/internal/document/store"
	orgmodels "registrar/internal/organization/models"
	"registrar/internal/platform/tracing"
	"registrar/internal/reference"
	"registrar/internal/resource"
	trainingmodels "registrar/internal/training/models"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/platform/dates"
	"registrar/pkg/platform/listing"
	"registrar/pkg/platform/patch"
	"registrar/pkg/platform/sentinel"
	"registrar/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store Organizations Agreements Elections Workshops Users Types

type Store interface {
	Create(ctx context.Context, d *models.Document) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Document, error)
	FindByNumber(ctx context.Context, number string) (*models.Document, error)
	Update(ctx context.Context, d *models.Document) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, f models.Filter, p listing.Page) ([]*models.Document, int, error)
	CountByType(ctx context.Context, typeID int) (int, error)
}

type Organizations interface {
	FindByID(ctx context.Context, id uuid.UUID) (*orgmodels.Organization, error)
}

type Agreements interface {
	FindByID(ctx context.Context, id uuid.UUID) (*agreementmodels.Agreement, error)
}

type Elections interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ballotmodels.Election, error)
}

type Workshops interface {
	FindByID(ctx context.Context, id uuid.UUID) (*trainingmodels.Workshop, error)
}

type Users interface {
	FindByID(ctx context.Context, id uuid.UUID) (*authmodels.User, error)
}

// Types reads and maintains the document type lookup.
type Types interface {
	ListTypes(ctx context.Context, kind reference.Kind) ([]reference.LookupType, error)
	TypeByID(ctx context.Context, kind reference.Kind, id int) (*reference.LookupType, error)
	CreateType(ctx context.Context, kind reference.Kind, t *reference.LookupType) error
	UpdateType(ctx context.Context, kind reference.Kind, t *reference.LookupType) error
	DeleteType(ctx context.Context, kind reference.Kind, id int) error
}

// Targets are the aggregates a document may be attached to.
type Targets struct {
	Organizations Organizations
	Agreements    Agreements
	Elections     Elections
	Workshops     Workshops
}

type Service struct {
	store   Store
	targets Targets
	users   Users
	types   Types
	deps    resource.Deps
}

func New(store Store, targets Targets, users Users, types Types, opts ...resource.Option) (*Service, error) {
	switch {
	case store == nil:
		return nil, errors.New("document store is required")
	case targets.Organizations == nil, targets.Agreements == nil, targets.Elections == nil, targets.Workshops == nil:
		return nil, errors.New("document targets are required")
	case users == nil:
		return nil, errors.New("user store is required")
	case types == nil:
		return nil, errors.New("document type store is required")
	}
	return &Service{store: store, targets: targets, users: users, types: types, deps: resource.NewDeps(opts...)}, nil
}

const (
	entity         = "document"
	msgNotFound    = "Document not found"
	msgNumberTaken = "Document number already exists"
	msgDeleteOwn   = "You do not have permission to delete this document"
)

func (s *Service) List(ctx context.Context, f models.Filter, p listing.Page) (listing.Result[*models.Document], error) {
	items, total, err := s.store.List(ctx, f, p)
	if err != nil {
		return listing.Result[*models.Document]{}, resource.Internal(err, "list documents")
	}
	return listing.NewResult(items, total, p), nil
}

func (s *Service) find(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	d, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, resource.NotFound(err, msgNotFound)
	}
	return d, nil
}

// Get returns the document with its type, organization and uploader.
// Dangling references render as null.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Detail, error) {
	d, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	out := &models.Detail{Document: d}
	if d.DocumentTypeID != nil {
		if t, err := s.types.TypeByID(ctx, reference.KindDocument, *d.DocumentTypeID); err == nil {
			out.DocumentType = t
		}
	}
	if d.OrganizationID != nil {
		if o, err := s.targets.Organizations.FindByID(ctx, *d.OrganizationID); err == nil {
			out.Organization = o.Summary()
		}
	}
	if d.UploadedBy != nil {
		if u, err := s.users.FindByID(ctx, *d.UploadedBy); err == nil {
			out.Uploader = models.NewUploader(u)
		}
	}
	return out, nil
}

// Create registers a document on behalf of the caller. fileType falls back
// to the extension of filePath.
func (s *Service) Create(ctx context.Context, req models.DocumentRequest) (_ *models.Document, err error) {
	ctx, span := tracing.Start(ctx, entity, "create")
	defer func() { tracing.End(span, err) }()

	if err := patch.CheckRequired(
		patch.Req("documentNumber", req.DocumentNumber),
		patch.Req("documentName", req.DocumentName),
		patch.Req("filePath", req.FilePath),
		patch.Req("uploadDate", req.UploadDate),
	); err != nil {
		return nil, err
	}
	uploaded, err := dates.FromField("uploadDate", req.UploadDate)
	if err != nil {
		return nil, err
	}
	if err := s.checkNumberFree(ctx, req.DocumentNumber.Value, uuid.Nil); err != nil {
		return nil, err
	}
	if err := s.checkType(ctx, req.DocumentTypeID); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	d := &models.Document{
		ID:             uuid.New(),
		DocumentNumber: req.DocumentNumber.Value,
		DocumentName:   req.DocumentName.Value,
		DocumentTypeID: req.DocumentTypeID.Ptr(),
		FilePath:       req.FilePath.Value,
		FileSize:       req.FileSize.Ptr(),
		FileType:       req.FileType.Ptr(),
		UploadDate:     uploaded,
		IsPublic:       req.IsPublic.Or(false),
		Description:    req.Description.Ptr(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if d.FileType == nil {
		d.FileType = extension(d.FilePath)
	}
	if err := s.assignTargets(ctx, d, req); err != nil {
		return nil, err
	}
	if caller, ok := requestcontext.CallerFrom(ctx); ok {
		d.UploadedBy = &caller.UserID
	}
	span.SetAttributes(attribute.String("document.id", d.ID.String()))
	if err := s.store.Create(ctx, d); err != nil {
		return nil, s.writeError(err, "create document")
	}
	s.deps.Created(ctx, entity, d.ID)
	return d, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req models.DocumentRequest) (_ *models.Document, err error) {
	ctx, span := tracing.Start(ctx, entity, "update", attribute.String("document.id", id.String()))
	defer func() { tracing.End(span, err) }()

	d, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.DocumentNumber.Present() && req.DocumentNumber.Value != d.DocumentNumber {
		if err := s.checkNumberFree(ctx, req.DocumentNumber.Value, d.ID); err != nil {
			return nil, err
		}
	}
	if err := patch.Assign(&d.DocumentNumber, req.DocumentNumber, "documentNumber"); err != nil {
		return nil, err
	}
	if err := patch.Assign(&d.DocumentName, req.DocumentName, "documentName"); err != nil {
		return nil, err
	}
	if err := patch.Assign(&d.FilePath, req.FilePath, "filePath"); err != nil {
		return nil, err
	}
	if err := dates.Assign(&d.UploadDate, req.UploadDate, "uploadDate"); err != nil {
		return nil, err
	}
	if err := patch.Assign(&d.IsPublic, req.IsPublic, "isPublic"); err != nil {
		return nil, err
	}
	if err := s.checkType(ctx, req.DocumentTypeID); err != nil {
		return nil, err
	}
	if err := s.assignTargets(ctx, d, req); err != nil {
		return nil, err
	}
	patch.AssignNullable(&d.DocumentTypeID, req.DocumentTypeID)
	patch.AssignNullable(&d.FileSize, req.FileSize)
	patch.AssignNullable(&d.Description, req.Description)
	switch {
	case req.FileType.Set:
		patch.AssignNullable(&d.FileType, req.FileType)
	case req.FilePath.Present():
		d.FileType = extension(d.FilePath)
	}
	d.UpdatedAt = requestcontext.Now(ctx)

	if err := s.store.Update(ctx, d); err != nil {
		return nil, s.writeError(err, "update document")
	}
	s.deps.Updated(ctx, entity, d.ID)
	return d, nil
}

// Delete removes the document. Only its uploader or a holder of
// documents:delete-any may delete it.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	d, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	caller, _ := requestcontext.CallerFrom(ctx)
	owner := d.UploadedBy != nil && *d.UploadedBy == caller.UserID
	if !owner && !authz.Allows(caller.Role, authz.DocumentsDeleteAny) {
		return dErrors.New(dErrors.CodeForbidden, msgDeleteOwn)
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return resource.NotFound(err, msgNotFound)
	}
	s.deps.Deleted(ctx, entity, id)
	return nil
}

func extension(filePath string) *string {
	ext := strings.TrimPrefix(path.Ext(filePath), ".")
	if ext == "" {
		return nil
	}
	return &ext
}

func (s *Service) checkNumberFree(ctx context.Context, number string, self uuid.UUID) error {
	existing, err := s.store.FindByNumber(ctx, number)
	switch {
	case err == nil && existing.ID != self:
		return s.deps.Conflict(entity, nil, msgNumberTaken)
	case err != nil && !errors.Is(err, sentinel.ErrNotFound):
		return resource.Internal(err, "check document number")
	}
	return nil
}

func (s *Service) checkType(ctx context.Context, f patch.Field[int]) error {
	if !f.Present() {
		return nil
	}
	if _, err := s.types.TypeByID(ctx, reference.KindDocument, f.Value); err != nil {
		return resource.InvalidReference(err, "documentTypeId")
	}
	return nil
}

// assignTargets resolves and writes every link present in req. An unknown
// target is a 400 naming the field.
func (s *Service) assignTargets(ctx context.Context, d *models.Document, req models.DocumentRequest) error {
	links := []struct {
		field string
		value patch.Field[string]
		dst   **uuid.UUID
		exist func(context.Context, uuid.UUID) error
	}{
		{"organizationId", req.OrganizationID, &d.OrganizationID, func(ctx context.Context, id uuid.UUID) error {
			_, err := s.targets.Organizations.FindByID(ctx, id)
			return err
		}},
		{"agreementId", req.AgreementID, &d.AgreementID, func(ctx context.Context, id uuid.UUID) error {
			_, err := s.targets.Agreements.FindByID(ctx, id)
			return err
		}},
		{"electionId", req.ElectionID, &d.ElectionID, func(ctx context.Context, id uuid.UUID) error {
			_, err := s.targets.Elections.FindByID(ctx, id)
			return err
		}},
		{"workshopId", req.WorkshopID, &d.WorkshopID, func(ctx context.Context, id uuid.UUID) error {
			_, err := s.targets.Workshops.FindByID(ctx, id)
			return err
		}},
	}
	for _, l := range links {
		if !l.value.Set {
			continue
		}
		id, err := resource.OptionalID(l.field, l.value)
		if err != nil {
			return err
		}
		if id != nil {
			if err := l.exist(ctx, *id); err != nil {
				return resource.InvalidReference(err, l.field)
			}
		}
		*l.dst = id
	}
	return nil
}

func (s *Service) writeError(err error, context string) error {
	switch {
	case errors.Is(err, documentStore.ErrNumberTaken):
		return s.deps.Conflict(entity, err, msgNumberTaken)
	case errors.Is(err, sentinel.ErrReferenced):
		return dErrors.Wrap(err, dErrors.CodeBadRequest, "Invalid document reference")
	}
	return resource.Internal(err, context)
}
