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
	recordEntity      = "compliance_record"
	msgRecordNotFound = "Compliance record not found"
)

func (s *Service) Records(ctx context.Context, f models.RecordFilter, p listing.Page) (listing.Result[*models.Record], error) {
	f.Status = lower(f.Status)
	items, total, err := s.store.ListRecords(ctx, f, p)
	if err != nil {
		return listing.Result[*models.Record]{}, resource.Internal(err, "list compliance records")
	}
	return listing.NewResult(items, total, p), nil
}

func (s *Service) Record(ctx context.Context, id uuid.UUID) (*models.RecordDetail, error) {
	r, err := s.store.FindRecord(ctx, id)
	if err != nil {
		return nil, resource.NotFound(err, msgRecordNotFound)
	}
	d := &models.RecordDetail{Record: r, Organization: s.summary(ctx, r.OrganizationID)}
	if req, err := s.requirements.RequirementByID(ctx, r.RequirementID); err == nil {
		d.Requirement = req
	}
	return d, nil
}

func (s *Service) CreateRecord(ctx context.Context, req models.RecordRequest) (*models.Record, error) {
	if err := patch.CheckRequired(
		patch.Req("organizationId", req.OrganizationID),
		patch.Req("requirementId", req.RequirementID),
		patch.Req("dueDate", req.DueDate),
		patch.Req("status", req.Status),
	); err != nil {
		return nil, err
	}
	due, err := dates.FromField("dueDate", req.DueDate)
	if err != nil {
		return nil, err
	}
	submitted, err := dates.FromOptionalField("submissionDate", req.SubmissionDate)
	if err != nil {
		return nil, err
	}
	status, err := resource.Enum("status", req.Status.Value, models.RecordStatuses)
	if err != nil {
		return nil, err
	}
	orgID, err := resource.ParseID("organizationId", req.OrganizationID.Value)
	if err != nil {
		return nil, err
	}
	approver, err := resource.OptionalID("approvedBy", req.ApprovedBy)
	if err != nil {
		return nil, err
	}
	if _, err := s.organization(ctx, orgID); err != nil {
		return nil, err
	}
	if err := s.requirement(ctx, req.RequirementID.Value); err != nil {
		return nil, err
	}
	if err := s.user(ctx, approver, "approvedBy"); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	r := &models.Record{
		ID:             uuid.New(),
		OrganizationID: orgID,
		RequirementID:  req.RequirementID.Value,
		DueDate:        due,
		SubmissionDate: submitted,
		Status:         status,
		ApprovedBy:     approver,
		DocumentPath:   req.DocumentPath.Ptr(),
		Notes:          req.Notes.Ptr(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	err = s.write(ctx, func(ctx context.Context) error {
		if err := s.store.CreateRecord(ctx, r); err != nil {
			return resource.Internal(err, "create compliance record")
		}
		return nil
	}, orgID)
	if err != nil {
		return nil, err
	}
	s.deps.Created(ctx, recordEntity, r.ID)
	return r, nil
}

func (s *Service) UpdateRecord(ctx context.Context, id uuid.UUID, req models.RecordRequest) (*models.Record, error) {
	r, err := s.store.FindRecord(ctx, id)
	if err != nil {
		return nil, resource.NotFound(err, msgRecordNotFound)
	}
	previousOrg := r.OrganizationID
	if err := dates.Assign(&r.DueDate, req.DueDate, "dueDate"); err != nil {
		return nil, err
	}
	if err := dates.AssignNullable(&r.SubmissionDate, req.SubmissionDate, "submissionDate"); err != nil {
		return nil, err
	}
	if err := resource.AssignEnum(&r.Status, req.Status, "status", models.RecordStatuses); err != nil {
		return nil, err
	}
	if err := resource.AssignID(&r.OrganizationID, req.OrganizationID, "organizationId"); err != nil {
		return nil, err
	}
	if err := resource.AssignOptionalID(&r.ApprovedBy, req.ApprovedBy, "approvedBy"); err != nil {
		return nil, err
	}
	if err := patch.Assign(&r.RequirementID, req.RequirementID, "requirementId"); err != nil {
		return nil, err
	}
	if req.OrganizationID.Set {
		if _, err := s.organization(ctx, r.OrganizationID); err != nil {
			return nil, err
		}
	}
	if req.RequirementID.Set {
		if err := s.requirement(ctx, r.RequirementID); err != nil {
			return nil, err
		}
	}
	if req.ApprovedBy.Present() {
		if err := s.user(ctx, r.ApprovedBy, "approvedBy"); err != nil {
			return nil, err
		}
	}
	patch.AssignNullable(&r.DocumentPath, req.DocumentPath)
	patch.AssignNullable(&r.Notes, req.Notes)
	r.UpdatedAt = requestcontext.Now(ctx)

	err = s.write(ctx, func(ctx context.Context) error {
		if err := s.store.UpdateRecord(ctx, r); err != nil {
			return resource.NotFound(err, msgRecordNotFound)
		}
		return nil
	}, previousOrg, r.OrganizationID)
	if err != nil {
		return nil, err
	}
	s.deps.Updated(ctx, recordEntity, r.ID)
	return r, nil
}

func (s *Service) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	r, err := s.store.FindRecord(ctx, id)
	if err != nil {
		return resource.NotFound(err, msgRecordNotFound)
	}
	err = s.write(ctx, func(ctx context.Context) error {
		if err := s.store.DeleteRecord(ctx, id); err != nil {
			return resource.NotFound(err, msgRecordNotFound)
		}
		return nil
	}, r.OrganizationID)
	if err != nil {
		return err
	}
	s.deps.Deleted(ctx, recordEntity, id)
	return nil
}

func (s *Service) requirement(ctx context.Context, id int) error {
	if _, err := s.requirements.RequirementByID(ctx, id); err != nil {
		return resource.InvalidReference(err, "requirementId")
	}
	return nil
}
