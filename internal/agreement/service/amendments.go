package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"registrar/internal/agreement/models"
	"registrar/internal/resource"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/platform/dates"
	"registrar/pkg/platform/patch"
	"registrar/pkg/requestcontext"
)

const (
	msgAmendmentNotFound = "Amendment not found"
	msgAmendmentTaken    = "Amendment number already exists for this agreement"
)

// Amendments lists an agreement's amendments, newest first.
func (s *Service) Amendments(ctx context.Context, agreementID uuid.UUID) ([]models.Amendment, error) {
	if _, err := s.find(ctx, agreementID); err != nil {
		return nil, err
	}
	out, err := s.store.ListAmendments(ctx, agreementID)
	if err != nil {
		return nil, resource.Internal(err, "list amendments")
	}
	return out, nil
}

func (s *Service) CreateAmendment(ctx context.Context, agreementID uuid.UUID, req models.AmendmentRequest) (*models.Amendment, error) {
	if err := patch.CheckRequired(
		patch.Req("amendmentNumber", req.AmendmentNumber),
		patch.Req("amendmentDate", req.AmendmentDate),
	); err != nil {
		return nil, err
	}
	if _, err := s.find(ctx, agreementID); err != nil {
		return nil, err
	}
	number := strings.TrimSpace(req.AmendmentNumber.Value)
	if err := s.checkAmendmentFree(ctx, agreementID, number, uuid.Nil); err != nil {
		return nil, err
	}
	date, err := dates.FromField("amendmentDate", req.AmendmentDate)
	if err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	am := &models.Amendment{
		ID:              uuid.New(),
		AgreementID:     agreementID,
		AmendmentNumber: number,
		AmendmentDate:   date,
		Description:     req.Description.Ptr(),
		DocumentPath:    req.DocumentPath.Ptr(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.store.CreateAmendment(ctx, am); err != nil {
		return nil, s.writeError(err, "create amendment")
	}
	s.deps.Created(ctx, "amendment", am.ID)
	return am, nil
}

func (s *Service) UpdateAmendment(ctx context.Context, id uuid.UUID, req models.AmendmentRequest) (*models.Amendment, error) {
	am, err := s.store.FindAmendment(ctx, id)
	if err != nil {
		return nil, resource.NotFound(err, msgAmendmentNotFound)
	}
	if req.AmendmentNumber.Set {
		if req.AmendmentNumber.Blank() {
			return nil, dErrors.New(dErrors.CodeBadRequest, "amendmentNumber cannot be null")
		}
		number := strings.TrimSpace(req.AmendmentNumber.Value)
		if number != am.AmendmentNumber {
			if err := s.checkAmendmentFree(ctx, am.AgreementID, number, am.ID); err != nil {
				return nil, err
			}
		}
		am.AmendmentNumber = number
	}
	if err := dates.Assign(&am.AmendmentDate, req.AmendmentDate, "amendmentDate"); err != nil {
		return nil, err
	}
	patch.AssignNullable(&am.Description, req.Description)
	patch.AssignNullable(&am.DocumentPath, req.DocumentPath)
	am.UpdatedAt = requestcontext.Now(ctx)

	if err := s.store.UpdateAmendment(ctx, am); err != nil {
		return nil, s.writeError(err, "update amendment")
	}
	s.deps.Updated(ctx, "amendment", am.ID)
	return am, nil
}

func (s *Service) DeleteAmendment(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteAmendment(ctx, id); err != nil {
		return resource.NotFound(err, msgAmendmentNotFound)
	}
	s.deps.Deleted(ctx, "amendment", id)
	return nil
}

func (s *Service) checkAmendmentFree(ctx context.Context, agreementID uuid.UUID, number string, self uuid.UUID) error {
	existing, err := s.store.ListAmendments(ctx, agreementID)
	if err != nil {
		return resource.Internal(err, "list amendments")
	}
	for _, am := range existing {
		if am.AmendmentNumber == number && am.ID != self {
			return s.deps.Conflict("amendment", nil, msgAmendmentTaken)
		}
	}
	return nil
}
