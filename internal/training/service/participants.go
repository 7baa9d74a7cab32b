package service

import (
	"context"

	"github.com/google/uuid"

	"registrar/internal/resource"
	"registrar/internal/training/models"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/platform/patch"
	"registrar/pkg/requestcontext"
)

const (
	participantEntity      = "workshop_participant"
	msgParticipantNotFound = "Workshop participant not found"
	msgOrgNotFound         = "Organization not found"
)

func (s *Service) Participants(ctx context.Context, workshopID uuid.UUID) ([]models.Participant, error) {
	if _, err := s.find(ctx, workshopID); err != nil {
		return nil, err
	}
	out, err := s.store.ListParticipants(ctx, workshopID)
	if err != nil {
		return nil, resource.Internal(err, "list participants")
	}
	return out, nil
}

// AddParticipant enrols a participant. A workshop at maxParticipants
// rejects the enrolment with 409.
func (s *Service) AddParticipant(ctx context.Context, workshopID uuid.UUID, req models.ParticipantRequest) (*models.Participant, error) {
	if err := patch.CheckRequired(
		patch.Req("firstName", req.FirstName),
		patch.Req("lastName", req.LastName),
	); err != nil {
		return nil, err
	}
	if _, err := s.find(ctx, workshopID); err != nil {
		return nil, err
	}
	attendance := models.AttendanceRegistered
	if req.AttendanceStatus.Present() {
		v, err := resource.Enum("attendanceStatus", req.AttendanceStatus.Value, models.AttendanceStatuses)
		if err != nil {
			return nil, err
		}
		attendance = v
	}
	orgID, err := resource.OptionalID("organizationId", req.OrganizationID)
	if err != nil {
		return nil, err
	}
	officialID, err := resource.OptionalID("officialId", req.OfficialID)
	if err != nil {
		return nil, err
	}
	if err := s.checkLinks(ctx, orgID, officialID); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	p := &models.Participant{
		ID:                uuid.New(),
		WorkshopID:        workshopID,
		OrganizationID:    orgID,
		OfficialID:        officialID,
		FirstName:         req.FirstName.Value,
		LastName:          req.LastName.Value,
		Email:             req.Email.Ptr(),
		Phone:             req.Phone.Ptr(),
		AttendanceStatus:  attendance,
		CertificateIssued: req.CertificateIssued.Or(false),
		Notes:             req.Notes.Ptr(),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.store.AddParticipant(ctx, p); err != nil {
		return nil, s.writeError(err, "add participant")
	}
	s.deps.Created(ctx, participantEntity, p.ID)
	return p, nil
}

func (s *Service) UpdateParticipant(ctx context.Context, id uuid.UUID, req models.ParticipantRequest) (*models.Participant, error) {
	p, err := s.store.FindParticipant(ctx, id)
	if err != nil {
		return nil, resource.NotFound(err, msgParticipantNotFound)
	}
	if err := patch.Assign(&p.FirstName, req.FirstName, "firstName"); err != nil {
		return nil, err
	}
	if err := patch.Assign(&p.LastName, req.LastName, "lastName"); err != nil {
		return nil, err
	}
	if err := resource.AssignEnum(&p.AttendanceStatus, req.AttendanceStatus, "attendanceStatus", models.AttendanceStatuses); err != nil {
		return nil, err
	}
	if err := patch.Assign(&p.CertificateIssued, req.CertificateIssued, "certificateIssued"); err != nil {
		return nil, err
	}
	if err := resource.AssignOptionalID(&p.OrganizationID, req.OrganizationID, "organizationId"); err != nil {
		return nil, err
	}
	if err := resource.AssignOptionalID(&p.OfficialID, req.OfficialID, "officialId"); err != nil {
		return nil, err
	}
	if req.OrganizationID.Present() || req.OfficialID.Present() {
		if err := s.checkLinks(ctx, p.OrganizationID, p.OfficialID); err != nil {
			return nil, err
		}
	}
	patch.AssignNullable(&p.Email, req.Email)
	patch.AssignNullable(&p.Phone, req.Phone)
	patch.AssignNullable(&p.Notes, req.Notes)
	p.UpdatedAt = requestcontext.Now(ctx)

	if err := s.store.UpdateParticipant(ctx, p); err != nil {
		return nil, resource.NotFound(err, msgParticipantNotFound)
	}
	s.deps.Updated(ctx, participantEntity, p.ID)
	return p, nil
}

func (s *Service) DeleteParticipant(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteParticipant(ctx, id); err != nil {
		return resource.NotFound(err, msgParticipantNotFound)
	}
	s.deps.Deleted(ctx, participantEntity, id)
	return nil
}

// checkLinks resolves the optional organization and official. An official
// named together with an organization must belong to it.
func (s *Service) checkLinks(ctx context.Context, orgID, officialID *uuid.UUID) error {
	if orgID != nil {
		if _, err := s.orgs.FindByID(ctx, *orgID); err != nil {
			return resource.NotFound(err, msgOrgNotFound)
		}
	}
	if officialID == nil {
		return nil
	}
	off, err := s.orgs.FindOfficial(ctx, *officialID)
	if err != nil {
		return resource.InvalidReference(err, "officialId")
	}
	if orgID != nil && off.OrganizationID != *orgID {
		return dErrors.New(dErrors.CodeBadRequest, "Invalid officialId")
	}
	return nil
}
