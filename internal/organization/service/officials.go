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

const msgOfficialNotFound = "Organization official not found"

func (s *Service) Officials(ctx context.Context, orgID uuid.UUID) ([]models.Official, error) {
	if _, err := s.find(ctx, orgID); err != nil {
		return nil, err
	}
	out, err := s.store.ListOfficials(ctx, orgID)
	if err != nil {
		return nil, resource.Internal(err, "list officials")
	}
	return out, nil
}

func (s *Service) CreateOfficial(ctx context.Context, orgID uuid.UUID, req models.OfficialRequest) (*models.Official, error) {
	if err := patch.CheckRequired(
		patch.Req("position", req.Position),
		patch.Req("firstName", req.FirstName),
		patch.Req("lastName", req.LastName),
		patch.Req("startDate", req.StartDate),
	); err != nil {
		return nil, err
	}
	start, err := dates.FromField("startDate", req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := dates.FromOptionalField("endDate", req.EndDate)
	if err != nil {
		return nil, err
	}
	if _, err := s.find(ctx, orgID); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	off := &models.Official{
		ID:             uuid.New(),
		OrganizationID: orgID,
		Position:       req.Position.Value,
		FirstName:      req.FirstName.Value,
		LastName:       req.LastName.Value,
		Email:          req.Email.Ptr(),
		Phone:          req.Phone.Ptr(),
		StartDate:      start,
		EndDate:        end,
		IsCurrent:      req.IsCurrent.Or(true),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.store.CreateOfficial(ctx, off); err != nil {
		return nil, s.writeError(err, "create official")
	}
	s.deps.Created(ctx, "official", off.ID)
	return off, nil
}

func (s *Service) UpdateOfficial(ctx context.Context, id uuid.UUID, req models.OfficialRequest) (*models.Official, error) {
	off, err := s.store.FindOfficial(ctx, id)
	if err != nil {
		return nil, resource.NotFound(err, msgOfficialNotFound)
	}
	if err := dates.Assign(&off.StartDate, req.StartDate, "startDate"); err != nil {
		return nil, err
	}
	if err := dates.AssignNullable(&off.EndDate, req.EndDate, "endDate"); err != nil {
		return nil, err
	}
	for _, f := range []struct {
		dst  *string
		src  patch.Field[string]
		name string
	}{
		{&off.Position, req.Position, "position"},
		{&off.FirstName, req.FirstName, "firstName"},
		{&off.LastName, req.LastName, "lastName"},
	} {
		if err := patch.Assign(f.dst, f.src, f.name); err != nil {
			return nil, err
		}
	}
	if err := patch.Assign(&off.IsCurrent, req.IsCurrent, "isCurrent"); err != nil {
		return nil, err
	}
	patch.AssignNullable(&off.Email, req.Email)
	patch.AssignNullable(&off.Phone, req.Phone)
	off.UpdatedAt = requestcontext.Now(ctx)

	if err := s.store.UpdateOfficial(ctx, off); err != nil {
		return nil, resource.NotFound(err, msgOfficialNotFound)
	}
	s.deps.Updated(ctx, "official", off.ID)
	return off, nil
}

func (s *Service) DeleteOfficial(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteOfficial(ctx, id); err != nil {
		return resource.NotFound(err, msgOfficialNotFound)
	}
	s.deps.Deleted(ctx, "official", id)
	return nil
}
