package service

import (
	"context"

	"github.com/google/uuid"

	"registrar/internal/organization/models"
	"registrar/internal/resource"
	"registrar/pkg/platform/dates"
	"registrar/pkg/platform/patch"
	"registrar/pkg/requestcontext"
)

const (
	msgConstitutionNotFound = "Constitution not found"
	msgVersionTaken         = "Constitution version already exists for this organization"
)

func (s *Service) Constitutions(ctx context.Context, orgID uuid.UUID) ([]models.Constitution, error) {
	if _, err := s.find(ctx, orgID); err != nil {
		return nil, err
	}
	out, err := s.store.ListConstitutions(ctx, orgID)
	if err != nil {
		return nil, resource.Internal(err, "list constitutions")
	}
	return out, nil
}

func (s *Service) CreateConstitution(ctx context.Context, orgID uuid.UUID, req models.ConstitutionRequest) (*models.Constitution, error) {
	if err := patch.CheckRequired(
		patch.Req("versionNumber", req.VersionNumber),
		patch.Req("effectiveDate", req.EffectiveDate),
		patch.Req("status", req.Status),
	); err != nil {
		return nil, err
	}
	if _, err := s.find(ctx, orgID); err != nil {
		return nil, err
	}
	if err := s.checkVersionFree(ctx, orgID, req.VersionNumber.Value, uuid.Nil); err != nil {
		return nil, err
	}
	effective, err := dates.FromField("effectiveDate", req.EffectiveDate)
	if err != nil {
		return nil, err
	}
	approved, err := dates.FromOptionalField("approvalDate", req.ApprovalDate)
	if err != nil {
		return nil, err
	}
	status, err := resource.Enum("status", req.Status.Value, models.ConstitutionStatuses)
	if err != nil {
		return nil, err
	}
	approvedBy, err := resource.OptionalID("approvedBy", req.ApprovedBy)
	if err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	c := &models.Constitution{
		ID:             uuid.New(),
		OrganizationID: orgID,
		VersionNumber:  req.VersionNumber.Value,
		EffectiveDate:  effective,
		ApprovalDate:   approved,
		ApprovedBy:     approvedBy,
		DocumentPath:   req.DocumentPath.Ptr(),
		Status:         status,
		Notes:          req.Notes.Ptr(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.store.CreateConstitution(ctx, c); err != nil {
		return nil, s.writeError(err, "create constitution")
	}
	s.deps.Created(ctx, "constitution", c.ID)
	return c, nil
}

func (s *Service) UpdateConstitution(ctx context.Context, id uuid.UUID, req models.ConstitutionRequest) (*models.Constitution, error) {
	c, err := s.store.FindConstitution(ctx, id)
	if err != nil {
		return nil, resource.NotFound(err, msgConstitutionNotFound)
	}
	if req.VersionNumber.Present() && req.VersionNumber.Value != c.VersionNumber {
		if err := s.checkVersionFree(ctx, c.OrganizationID, req.VersionNumber.Value, c.ID); err != nil {
			return nil, err
		}
	}
	if err := patch.Assign(&c.VersionNumber, req.VersionNumber, "versionNumber"); err != nil {
		return nil, err
	}
	if err := dates.Assign(&c.EffectiveDate, req.EffectiveDate, "effectiveDate"); err != nil {
		return nil, err
	}
	if err := dates.AssignNullable(&c.ApprovalDate, req.ApprovalDate, "approvalDate"); err != nil {
		return nil, err
	}
	if err := resource.AssignEnum(&c.Status, req.Status, "status", models.ConstitutionStatuses); err != nil {
		return nil, err
	}
	if err := resource.AssignOptionalID(&c.ApprovedBy, req.ApprovedBy, "approvedBy"); err != nil {
		return nil, err
	}
	patch.AssignNullable(&c.DocumentPath, req.DocumentPath)
	patch.AssignNullable(&c.Notes, req.Notes)
	c.UpdatedAt = requestcontext.Now(ctx)

	if err := s.store.UpdateConstitution(ctx, c); err != nil {
		return nil, s.writeError(err, "update constitution")
	}
	s.deps.Updated(ctx, "constitution", c.ID)
	return c, nil
}

func (s *Service) DeleteConstitution(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteConstitution(ctx, id); err != nil {
		return resource.NotFound(err, msgConstitutionNotFound)
	}
	s.deps.Deleted(ctx, "constitution", id)
	return nil
}

func (s *Service) checkVersionFree(ctx context.Context, orgID uuid.UUID, version int, self uuid.UUID) error {
	existing, err := s.store.ListConstitutions(ctx, orgID)
	if err != nil {
		return resource.Internal(err, "list constitutions")
	}
	for _, c := range existing {
		if c.VersionNumber == version && c.ID != self {
			return s.deps.Conflict("constitution", nil, msgVersionTaken)
		}
	}
	return nil
}
