package service

import (
	"context"

	"github.com/google/uuid"

	"registrar/internal/compliance/models"
	"registrar/internal/resource"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/platform/dates"
	"registrar/pkg/platform/listing"
	"registrar/pkg/platform/patch"
	"registrar/pkg/requestcontext"
)

const (
	issueEntity      = "non_compliance_issue"
	msgIssueNotFound = "Non-compliance issue not found"
)

func (s *Service) Issues(ctx context.Context, f models.IssueFilter, p listing.Page) (listing.Result[*models.Issue], error) {
	f.Status = lower(f.Status)
	f.Severity = lower(f.Severity)
	items, total, err := s.store.ListIssues(ctx, f, p)
	if err != nil {
		return listing.Result[*models.Issue]{}, resource.Internal(err, "list issues")
	}
	return listing.NewResult(items, total, p), nil
}

func (s *Service) Issue(ctx context.Context, id uuid.UUID) (*models.IssueDetail, error) {
	is, err := s.store.FindIssue(ctx, id)
	if err != nil {
		return nil, resource.NotFound(err, msgIssueNotFound)
	}
	return &models.IssueDetail{Issue: is, Organization: s.summary(ctx, is.OrganizationID)}, nil
}

func (s *Service) CreateIssue(ctx context.Context, req models.IssueRequest) (*models.Issue, error) {
	if err := patch.CheckRequired(
		patch.Req("organizationId", req.OrganizationID),
		patch.Req("issueDate", req.IssueDate),
		patch.Req("description", req.Description),
		patch.Req("severity", req.Severity),
		patch.Req("status", req.Status),
	); err != nil {
		return nil, err
	}
	issued, err := dates.FromField("issueDate", req.IssueDate)
	if err != nil {
		return nil, err
	}
	deadline, err := dates.FromOptionalField("resolutionDeadline", req.ResolutionDeadline)
	if err != nil {
		return nil, err
	}
	resolved, err := dates.FromOptionalField("resolutionDate", req.ResolutionDate)
	if err != nil {
		return nil, err
	}
	severity, err := resource.Enum("severity", req.Severity.Value, models.IssueSeverities)
	if err != nil {
		return nil, err
	}
	status, err := resource.Enum("status", req.Status.Value, models.IssueStatuses)
	if err != nil {
		return nil, err
	}
	orgID, err := resource.ParseID("organizationId", req.OrganizationID.Value)
	if err != nil {
		return nil, err
	}
	inspectionID, err := resource.OptionalID("inspectionId", req.InspectionID)
	if err != nil {
		return nil, err
	}
	if _, err := s.organization(ctx, orgID); err != nil {
		return nil, err
	}
	if err := s.checkInspection(ctx, inspectionID, orgID); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	is := &models.Issue{
		ID:                 uuid.New(),
		OrganizationID:     orgID,
		InspectionID:       inspectionID,
		IssueDate:          issued,
		Description:        req.Description.Value,
		Severity:           severity,
		ResolutionDeadline: deadline,
		ResolutionDate:     resolved,
		Status:             status,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	err = s.write(ctx, func(ctx context.Context) error {
		if err := s.store.CreateIssue(ctx, is); err != nil {
			return resource.Internal(err, "create issue")
		}
		return nil
	}, orgID)
	if err != nil {
		return nil, err
	}
	s.deps.Created(ctx, issueEntity, is.ID)
	return is, nil
}

func (s *Service) UpdateIssue(ctx context.Context, id uuid.UUID, req models.IssueRequest) (*models.Issue, error) {
	is, err := s.store.FindIssue(ctx, id)
	if err != nil {
		return nil, resource.NotFound(err, msgIssueNotFound)
	}
	previousOrg := is.OrganizationID
	if err := dates.Assign(&is.IssueDate, req.IssueDate, "issueDate"); err != nil {
		return nil, err
	}
	if err := dates.AssignNullable(&is.ResolutionDeadline, req.ResolutionDeadline, "resolutionDeadline"); err != nil {
		return nil, err
	}
	if err := dates.AssignNullable(&is.ResolutionDate, req.ResolutionDate, "resolutionDate"); err != nil {
		return nil, err
	}
	if err := patch.Assign(&is.Description, req.Description, "description"); err != nil {
		return nil, err
	}
	if err := resource.AssignEnum(&is.Severity, req.Severity, "severity", models.IssueSeverities); err != nil {
		return nil, err
	}
	if err := resource.AssignEnum(&is.Status, req.Status, "status", models.IssueStatuses); err != nil {
		return nil, err
	}
	if err := resource.AssignID(&is.OrganizationID, req.OrganizationID, "organizationId"); err != nil {
		return nil, err
	}
	if err := resource.AssignOptionalID(&is.InspectionID, req.InspectionID, "inspectionId"); err != nil {
		return nil, err
	}
	if req.OrganizationID.Set {
		if _, err := s.organization(ctx, is.OrganizationID); err != nil {
			return nil, err
		}
	}
	if req.OrganizationID.Set || req.InspectionID.Set {
		if err := s.checkInspection(ctx, is.InspectionID, is.OrganizationID); err != nil {
			return nil, err
		}
	}
	is.UpdatedAt = requestcontext.Now(ctx)

	err = s.write(ctx, func(ctx context.Context) error {
		if err := s.store.UpdateIssue(ctx, is); err != nil {
			return resource.NotFound(err, msgIssueNotFound)
		}
		return nil
	}, previousOrg, is.OrganizationID)
	if err != nil {
		return nil, err
	}
	s.deps.Updated(ctx, issueEntity, is.ID)
	return is, nil
}

func (s *Service) DeleteIssue(ctx context.Context, id uuid.UUID) error {
	is, err := s.store.FindIssue(ctx, id)
	if err != nil {
		return resource.NotFound(err, msgIssueNotFound)
	}
	err = s.write(ctx, func(ctx context.Context) error {
		if err := s.store.DeleteIssue(ctx, id); err != nil {
			return resource.NotFound(err, msgIssueNotFound)
		}
		return nil
	}, is.OrganizationID)
	if err != nil {
		return err
	}
	s.deps.Deleted(ctx, issueEntity, id)
	return nil
}

// checkInspection requires a linked inspection to exist and to belong to
// the issue's organization.
func (s *Service) checkInspection(ctx context.Context, inspectionID *uuid.UUID, orgID uuid.UUID) error {
	if inspectionID == nil {
		return nil
	}
	in, err := s.store.FindInspection(ctx, *inspectionID)
	if err != nil {
		return resource.InvalidReference(err, "inspectionId")
	}
	if in.OrganizationID != orgID {
		return dErrors.New(dErrors.CodeBadRequest, "Invalid inspectionId")
	}
	return nil
}
