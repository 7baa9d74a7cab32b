package service

import (
	"context"

	"github.com/google/uuid"

	"registrar/internal/ballot/models"
	"registrar/internal/resource"
	"registrar/pkg/platform/patch"
	"registrar/pkg/requestcontext"
)

const (
	msgPositionNotFound  = "Ballot position not found"
	msgCandidateNotFound = "Ballot candidate not found"
)

func (s *Service) Positions(ctx context.Context, electionID uuid.UUID) ([]models.Position, error) {
	if _, err := s.find(ctx, electionID); err != nil {
		return nil, err
	}
	out, err := s.store.ListPositions(ctx, electionID)
	if err != nil {
		return nil, resource.Internal(err, "list positions")
	}
	return out, nil
}

func (s *Service) CreatePosition(ctx context.Context, electionID uuid.UUID, req models.PositionRequest) (*models.Position, error) {
	if err := patch.CheckRequired(patch.Req("positionName", req.PositionName)); err != nil {
		return nil, err
	}
	if _, err := s.find(ctx, electionID); err != nil {
		return nil, err
	}
	now := requestcontext.Now(ctx)
	p := &models.Position{
		ID:           uuid.New(),
		ElectionID:   electionID,
		PositionName: req.PositionName.Value,
		Description:  req.Description.Ptr(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.CreatePosition(ctx, p); err != nil {
		return nil, resource.NotFound(err, msgNotFound)
	}
	s.deps.Created(ctx, "ballot_position", p.ID)
	return p, nil
}

func (s *Service) UpdatePosition(ctx context.Context, id uuid.UUID, req models.PositionRequest) (*models.Position, error) {
	p, err := s.store.FindPosition(ctx, id)
	if err != nil {
		return nil, resource.NotFound(err, msgPositionNotFound)
	}
	if err := patch.Assign(&p.PositionName, req.PositionName, "positionName"); err != nil {
		return nil, err
	}
	patch.AssignNullable(&p.Description, req.Description)
	p.UpdatedAt = requestcontext.Now(ctx)
	if err := s.store.UpdatePosition(ctx, p); err != nil {
		return nil, resource.NotFound(err, msgPositionNotFound)
	}
	s.deps.Updated(ctx, "ballot_position", p.ID)
	return p, nil
}

func (s *Service) DeletePosition(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeletePosition(ctx, id); err != nil {
		return resource.NotFound(err, msgPositionNotFound)
	}
	s.deps.Deleted(ctx, "ballot_position", id)
	return nil
}

func (s *Service) Candidates(ctx context.Context, positionID uuid.UUID) ([]models.Candidate, error) {
	if _, err := s.store.FindPosition(ctx, positionID); err != nil {
		return nil, resource.NotFound(err, msgPositionNotFound)
	}
	out, err := s.store.ListCandidates(ctx, positionID)
	if err != nil {
		return nil, resource.Internal(err, "list candidates")
	}
	return out, nil
}

func (s *Service) CreateCandidate(ctx context.Context, positionID uuid.UUID, req models.CandidateRequest) (*models.Candidate, error) {
	if err := patch.CheckRequired(
		patch.Req("firstName", req.FirstName),
		patch.Req("lastName", req.LastName),
	); err != nil {
		return nil, err
	}
	if _, err := s.store.FindPosition(ctx, positionID); err != nil {
		return nil, resource.NotFound(err, msgPositionNotFound)
	}
	now := requestcontext.Now(ctx)
	c := &models.Candidate{
		ID:         uuid.New(),
		PositionID: positionID,
		FirstName:  req.FirstName.Value,
		LastName:   req.LastName.Value,
		Bio:        req.Bio.Ptr(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.CreateCandidate(ctx, c); err != nil {
		return nil, resource.NotFound(err, msgPositionNotFound)
	}
	s.deps.Created(ctx, "ballot_candidate", c.ID)
	return c, nil
}

func (s *Service) UpdateCandidate(ctx context.Context, id uuid.UUID, req models.CandidateRequest) (*models.Candidate, error) {
	c, err := s.store.FindCandidate(ctx, id)
	if err != nil {
		return nil, resource.NotFound(err, msgCandidateNotFound)
	}
	if err := patch.Assign(&c.FirstName, req.FirstName, "firstName"); err != nil {
		return nil, err
	}
	if err := patch.Assign(&c.LastName, req.LastName, "lastName"); err != nil {
		return nil, err
	}
	patch.AssignNullable(&c.Bio, req.Bio)
	c.UpdatedAt = requestcontext.Now(ctx)
	if err := s.store.UpdateCandidate(ctx, c); err != nil {
		return nil, resource.NotFound(err, msgCandidateNotFound)
	}
	s.deps.Updated(ctx, "ballot_candidate", c.ID)
	return c, nil
}

func (s *Service) DeleteCandidate(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteCandidate(ctx, id); err != nil {
		return resource.NotFound(err, msgCandidateNotFound)
	}
	s.deps.Deleted(ctx, "ballot_candidate", id)
	return nil
}
