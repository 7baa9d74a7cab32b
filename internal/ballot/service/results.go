package service

import (
	"context"

	"github.com/google/uuid"

	"registrar/internal/ballot/models"
	"registrar/internal/resource"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/platform/patch"
	"registrar/pkg/requestcontext"
)

const msgResultNotFound = "Ballot result not found"

// Result references are reported as "Invalid position ID" and
// "Invalid candidate ID" whether malformed, unknown or misplaced.
const (
	positionLabel  = "position ID"
	candidateLabel = "candidate ID"
)

func (s *Service) Results(ctx context.Context, electionID uuid.UUID) ([]models.ResultView, error) {
	if _, err := s.find(ctx, electionID); err != nil {
		return nil, err
	}
	out, err := s.store.ListResults(ctx, electionID)
	if err != nil {
		return nil, resource.Internal(err, "list results")
	}
	return out, nil
}

// RecordResult writes the tally for a candidate. The position must belong
// to the election and the candidate to the position. It reports whether a
// new result was created rather than an existing one overwritten.
func (s *Service) RecordResult(ctx context.Context, electionID uuid.UUID, req models.ResultRequest) (*models.Result, bool, error) {
	if _, err := s.find(ctx, electionID); err != nil {
		return nil, false, err
	}
	if err := patch.CheckRequired(
		patch.Req("positionId", req.PositionID),
		patch.Req("candidateId", req.CandidateID),
		patch.Req("votesReceived", req.VotesReceived),
	); err != nil {
		return nil, false, err
	}
	positionID, err := resource.ParseID(positionLabel, req.PositionID.Value)
	if err != nil {
		return nil, false, err
	}
	candidateID, err := resource.ParseID(candidateLabel, req.CandidateID.Value)
	if err != nil {
		return nil, false, err
	}
	if req.VotesReceived.Value < 0 {
		return nil, false, dErrors.New(dErrors.CodeBadRequest, "Invalid votesReceived")
	}
	p, err := s.store.FindPosition(ctx, positionID)
	if err != nil {
		return nil, false, resource.InvalidReference(err, positionLabel)
	}
	if p.ElectionID != electionID {
		return nil, false, dErrors.New(dErrors.CodeBadRequest, "Invalid "+positionLabel)
	}
	c, err := s.store.FindCandidate(ctx, candidateID)
	if err != nil {
		return nil, false, resource.InvalidReference(err, candidateLabel)
	}
	if c.PositionID != positionID {
		return nil, false, dErrors.New(dErrors.CodeBadRequest, "Invalid "+candidateLabel)
	}

	now := requestcontext.Now(ctx)
	r := &models.Result{
		ID:            uuid.New(),
		ElectionID:    electionID,
		PositionID:    positionID,
		CandidateID:   candidateID,
		VotesReceived: req.VotesReceived.Value,
		IsElected:     req.IsElected.Or(false),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	created, err := s.store.UpsertResult(ctx, r)
	if err != nil {
		return nil, false, resource.Internal(err, "record result")
	}
	if created {
		s.deps.Created(ctx, "ballot_result", r.ID)
	} else {
		s.deps.Updated(ctx, "ballot_result", r.ID)
	}
	return r, created, nil
}

func (s *Service) DeleteResult(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteResult(ctx, id); err != nil {
		return resource.NotFound(err, msgResultNotFound)
	}
	s.deps.Deleted(ctx, "ballot_result", id)
	return nil
}
