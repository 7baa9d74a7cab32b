package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"registrar/internal/agreement/models"
	"registrar/internal/reference"
	"registrar/internal/resource"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/platform/dates"
	"registrar/pkg/platform/listing"
	"registrar/pkg/platform/patch"
	"registrar/pkg/platform/sentinel"
	"registrar/pkg/requestcontext"
)

const (
	msgDisputeNotFound = "Dispute not found"
	msgDisputeTaken    = "Dispute number already exists"
)

// Disputes pages disputes, most recently filed first.
func (s *Service) Disputes(ctx context.Context, f models.DisputeFilter, p listing.Page) (listing.Result[*models.Dispute], error) {
	if f.Status != nil {
		st := strings.ToLower(*f.Status)
		f.Status = &st
	}
	items, total, err := s.store.ListDisputes(ctx, f, p)
	if err != nil {
		return listing.Result[*models.Dispute]{}, resource.Internal(err, "list disputes")
	}
	return listing.NewResult(items, total, p), nil
}

func (s *Service) Dispute(ctx context.Context, id uuid.UUID) (*models.DisputeDetail, error) {
	d, err := s.store.FindDispute(ctx, id)
	if err != nil {
		return nil, resource.NotFound(err, msgDisputeNotFound)
	}
	out := &models.DisputeDetail{
		Dispute:      d,
		Organization: s.summary(ctx, &d.OrganizationID),
		Counterparty: s.summary(ctx, d.CounterpartyID),
	}
	if d.DisputeTypeID != nil {
		if t, err := s.directory.TypeByID(ctx, reference.KindDispute, *d.DisputeTypeID); err == nil {
			out.DisputeType = t
		}
	}
	if d.AgreementID != nil {
		if a, err := s.store.FindByID(ctx, *d.AgreementID); err == nil {
			out.Agreement = a.Summary()
		}
	}
	return out, nil
}

func (s *Service) CreateDispute(ctx context.Context, req models.DisputeRequest) (*models.Dispute, error) {
	if err := patch.CheckRequired(
		patch.Req("disputeNumber", req.DisputeNumber),
		patch.Req("organizationId", req.OrganizationID),
		patch.Req("filingDate", req.FilingDate),
		patch.Req("status", req.Status),
	); err != nil {
		return nil, err
	}
	number := strings.TrimSpace(req.DisputeNumber.Value)
	if err := s.checkDisputeFree(ctx, number, uuid.Nil); err != nil {
		return nil, err
	}
	filed, err := dates.FromField("filingDate", req.FilingDate)
	if err != nil {
		return nil, err
	}
	resolved, err := dates.FromOptionalField("resolutionDate", req.ResolutionDate)
	if err != nil {
		return nil, err
	}
	status, err := resource.Enum("status", req.Status.Value, models.DisputeStatuses)
	if err != nil {
		return nil, err
	}
	orgID, err := resource.ParseID("organizationId", req.OrganizationID.Value)
	if err != nil {
		return nil, err
	}
	counterparty, err := resource.OptionalID("counterpartyId", req.CounterpartyID)
	if err != nil {
		return nil, err
	}
	agreementID, err := resource.OptionalID("agreementId", req.AgreementID)
	if err != nil {
		return nil, err
	}
	if err := s.disputeReferences(ctx, &orgID, counterparty, agreementID); err != nil {
		return nil, err
	}
	if err := s.checkType(ctx, reference.KindDispute, req.DisputeTypeID, "disputeTypeId"); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	d := &models.Dispute{
		ID:                uuid.New(),
		DisputeNumber:     number,
		DisputeTypeID:     req.DisputeTypeID.Ptr(),
		AgreementID:       agreementID,
		OrganizationID:    orgID,
		CounterpartyID:    counterparty,
		FilingDate:        filed,
		ResolutionDate:    resolved,
		Status:            status,
		ResolutionSummary: req.ResolutionSummary.Ptr(),
		DocumentPath:      req.DocumentPath.Ptr(),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.store.CreateDispute(ctx, d); err != nil {
		return nil, s.writeError(err, "create dispute")
	}
	s.deps.Created(ctx, "dispute", d.ID)
	return d, nil
}

func (s *Service) UpdateDispute(ctx context.Context, id uuid.UUID, req models.DisputeRequest) (*models.Dispute, error) {
	d, err := s.store.FindDispute(ctx, id)
	if err != nil {
		return nil, resource.NotFound(err, msgDisputeNotFound)
	}
	if req.DisputeNumber.Set {
		if req.DisputeNumber.Blank() {
			return nil, dErrors.New(dErrors.CodeBadRequest, "disputeNumber cannot be null")
		}
		number := strings.TrimSpace(req.DisputeNumber.Value)
		if number != d.DisputeNumber {
			if err := s.checkDisputeFree(ctx, number, d.ID); err != nil {
				return nil, err
			}
		}
		d.DisputeNumber = number
	}
	if err := dates.Assign(&d.FilingDate, req.FilingDate, "filingDate"); err != nil {
		return nil, err
	}
	if err := dates.AssignNullable(&d.ResolutionDate, req.ResolutionDate, "resolutionDate"); err != nil {
		return nil, err
	}
	if err := resource.AssignEnum(&d.Status, req.Status, "status", models.DisputeStatuses); err != nil {
		return nil, err
	}
	if err := resource.AssignID(&d.OrganizationID, req.OrganizationID, "organizationId"); err != nil {
		return nil, err
	}
	if err := resource.AssignOptionalID(&d.CounterpartyID, req.CounterpartyID, "counterpartyId"); err != nil {
		return nil, err
	}
	if err := resource.AssignOptionalID(&d.AgreementID, req.AgreementID, "agreementId"); err != nil {
		return nil, err
	}
	if req.OrganizationID.Set || req.CounterpartyID.Set || req.AgreementID.Set {
		if err := s.disputeReferences(ctx, &d.OrganizationID, d.CounterpartyID, d.AgreementID); err != nil {
			return nil, err
		}
	}
	if err := s.checkType(ctx, reference.KindDispute, req.DisputeTypeID, "disputeTypeId"); err != nil {
		return nil, err
	}
	patch.AssignNullable(&d.DisputeTypeID, req.DisputeTypeID)
	patch.AssignNullable(&d.ResolutionSummary, req.ResolutionSummary)
	patch.AssignNullable(&d.DocumentPath, req.DocumentPath)
	d.UpdatedAt = requestcontext.Now(ctx)

	if err := s.store.UpdateDispute(ctx, d); err != nil {
		return nil, s.writeError(err, "update dispute")
	}
	s.deps.Updated(ctx, "dispute", d.ID)
	return d, nil
}

func (s *Service) DeleteDispute(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteDispute(ctx, id); err != nil {
		return resource.NotFound(err, msgDisputeNotFound)
	}
	s.deps.Deleted(ctx, "dispute", id)
	return nil
}

func (s *Service) disputeReferences(ctx context.Context, orgID, counterparty, agreementID *uuid.UUID) error {
	if err := s.organization(ctx, orgID); err != nil {
		return err
	}
	if err := s.organization(ctx, counterparty); err != nil {
		return err
	}
	if agreementID != nil {
		if _, err := s.find(ctx, *agreementID); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) checkDisputeFree(ctx context.Context, number string, self uuid.UUID) error {
	existing, err := s.store.FindDisputeByNumber(ctx, number)
	switch {
	case err == nil && existing.ID != self:
		return s.deps.Conflict("dispute", nil, msgDisputeTaken)
	case err != nil && !errors.Is(err, sentinel.ErrNotFound):
		return resource.Internal(err, "check dispute number")
	}
	return nil
}
