package service

import (
	"context"

	"github.com/google/uuid"

	"registrar/internal/compliance/models"
	"registrar/internal/resource"
	"registrar/pkg/platform/dates"
	"registrar/pkg/platform/listing"
	"registrar/pkg/platform/patch"
	"registrar/pkg/requestcontext"
)

const (
	inspectionEntity      = "inspection"
	msgInspectionNotFound = "Inspection not found"
)

func (s *Service) Inspections(ctx context.Context, f models.InspectionFilter, p listing.Page) (listing.Result[*models.Inspection], error) {
	f.Status = lower(f.Status)
	items, total, err := s.store.ListInspections(ctx, f, p)
	if err != nil {
		return listing.Result[*models.Inspection]{}, resource.Internal(err, "list inspections")
	}
	return listing.NewResult(items, total, p), nil
}

// Inspection returns the inspection with its organization and the issues
// raised from it.
func (s *Service) Inspection(ctx context.Context, id uuid.UUID) (*models.InspectionDetail, error) {
	in, err := s.store.FindInspection(ctx, id)
	if err != nil {
		return nil, resource.NotFound(err, msgInspectionNotFound)
	}
	issues, _, err := s.store.ListIssues(ctx, models.IssueFilter{InspectionID: &id}, listing.Page{Page: 1, PageSize: listing.MaxPageSize})
	if err != nil {
		return nil, resource.Internal(err, "list inspection issues")
	}
	return &models.InspectionDetail{Inspection: in, Organization: s.summary(ctx, in.OrganizationID), Issues: issues}, nil
}

func (s *Service) CreateInspection(ctx context.Context, req models.InspectionRequest) (*models.Inspection, error) {
	if err := patch.CheckRequired(
		patch.Req("organizationId", req.OrganizationID),
		patch.Req("inspectionDate", req.InspectionDate),
		patch.Req("inspectorId", req.InspectorID),
		patch.Req("inspectionType", req.InspectionType),
		patch.Req("status", req.Status),
	); err != nil {
		return nil, err
	}
	date, err := dates.FromField("inspectionDate", req.InspectionDate)
	if err != nil {
		return nil, err
	}
	status, err := resource.Enum("status", req.Status.Value, models.InspectionStatuses)
	if err != nil {
		return nil, err
	}
	orgID, err := resource.ParseID("organizationId", req.OrganizationID.Value)
	if err != nil {
		return nil, err
	}
	inspector, err := resource.ParseID("inspectorId", req.InspectorID.Value)
	if err != nil {
		return nil, err
	}
	if _, err := s.organization(ctx, orgID); err != nil {
		return nil, err
	}
	if err := s.user(ctx, &inspector, "inspectorId"); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	in := &models.Inspection{
		ID:              uuid.New(),
		OrganizationID:  orgID,
		InspectionDate:  date,
		InspectorID:     inspector,
		InspectionType:  req.InspectionType.Value,
		Findings:        req.Findings.Ptr(),
		Recommendations: req.Recommendations.Ptr(),
		Status:          status,
		DocumentPath:    req.DocumentPath.Ptr(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.store.CreateInspection(ctx, in); err != nil {
		return nil, resource.Internal(err, "create inspection")
	}
	s.deps.Created(ctx, inspectionEntity, in.ID)
	return in, nil
}

func (s *Service) UpdateInspection(ctx context.Context, id uuid.UUID, req models.InspectionRequest) (*models.Inspection, error) {
	in, err := s.store.FindInspection(ctx, id)
	if err != nil {
		return nil, resource.NotFound(err, msgInspectionNotFound)
	}
	if err := dates.Assign(&in.InspectionDate, req.InspectionDate, "inspectionDate"); err != nil {
		return nil, err
	}
	if err := resource.AssignEnum(&in.Status, req.Status, "status", models.InspectionStatuses); err != nil {
		return nil, err
	}
	if err := patch.Assign(&in.InspectionType, req.InspectionType, "inspectionType"); err != nil {
		return nil, err
	}
	if err := resource.AssignID(&in.OrganizationID, req.OrganizationID, "organizationId"); err != nil {
		return nil, err
	}
	if err := resource.AssignID(&in.InspectorID, req.InspectorID, "inspectorId"); err != nil {
		return nil, err
	}
	if req.OrganizationID.Set {
		if _, err := s.organization(ctx, in.OrganizationID); err != nil {
			return nil, err
		}
	}
	if req.InspectorID.Set {
		if err := s.user(ctx, &in.InspectorID, "inspectorId"); err != nil {
			return nil, err
		}
	}
	patch.AssignNullable(&in.Findings, req.Findings)
	patch.AssignNullable(&in.Recommendations, req.Recommendations)
	patch.AssignNullable(&in.DocumentPath, req.DocumentPath)
	in.UpdatedAt = requestcontext.Now(ctx)

	if err := s.store.UpdateInspection(ctx, in); err != nil {
		return nil, resource.NotFound(err, msgInspectionNotFound)
	}
	s.deps.Updated(ctx, inspectionEntity, in.ID)
	return in, nil
}

// DeleteInspection removes the inspection. Issues raised from it remain
// and lose the link.
func (s *Service) DeleteInspection(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteInspection(ctx, id); err != nil {
		return resource.NotFound(err, msgInspectionNotFound)
	}
	s.deps.Deleted(ctx, inspectionEntity, id)
	return nil
}
