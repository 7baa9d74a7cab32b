package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"registrar/internal/ballot/models"
	"registrar/internal/ballot/service/mocks"
	ballotStore "registrar/internal/ballot/store"
	orgmodels "registrar/internal/organization/models"
	orgStore "registrar/internal/organization/store"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/platform/dates"
	"registrar/pkg/platform/listing"
	"registrar/pkg/platform/patch"
	"registrar/pkg/platform/sentinel"
	"registrar/pkg/requestcontext"
)

type ServiceSuite struct {
	suite.Suite
	ctx   context.Context
	store *ballotStore.InMemoryStore
	orgs  *orgStore.InMemoryStore
	svc   *Service
	org   *orgmodels.Organization
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = requestcontext.WithTime(context.Background(), time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	s.orgs = orgStore.NewInMemory()
	s.org = &orgmodels.Organization{
		ID: uuid.New(), RegistrationNumber: "IO-07", OrganizationName: "Dock Workers Union",
		RegistrationDate: dates.New(2020, time.January, 1), Status: orgmodels.StatusActive,
	}
	s.Require().NoError(s.orgs.Create(s.ctx, s.org))
	s.store = ballotStore.NewInMemory()
	var err error
	s.svc, err = New(s.store, s.orgs)
	s.Require().NoError(err)
}

func (s *ServiceSuite) request(number string) models.ElectionRequest {
	return models.ElectionRequest{
		ElectionNumber: patch.Val(number),
		OrganizationID: patch.Val(s.org.ID.String()),
		ElectionDate:   patch.Val("2024-06-15"),
		Purpose:        patch.Val("Executive committee"),
		Status:         patch.Val("scheduled"),
	}
}

func (s *ServiceSuite) assertCode(err error, code dErrors.Code, msg string) {
	s.T().Helper()
	s.Require().Error(err)
	de, ok := dErrors.As(err)
	s.Require().True(ok, err.Error())
	s.Equal(code, de.Code)
	s.Equal(msg, de.Message)
}

// ballot creates an election with one position and two candidates.
func (s *ServiceSuite) ballot(number string) (*models.Election, *models.Position, []*models.Candidate) {
	e, err := s.svc.Create(s.ctx, s.request(number))
	s.Require().NoError(err)
	p, err := s.svc.CreatePosition(s.ctx, e.ID, models.PositionRequest{PositionName: patch.Val("Chair")})
	s.Require().NoError(err)
	var cs []*models.Candidate
	for _, name := range []string{"Ada", "Grace"} {
		c, err := s.svc.CreateCandidate(s.ctx, p.ID, models.CandidateRequest{
			FirstName: patch.Val(name), LastName: patch.Val("Mensah"),
		})
		s.Require().NoError(err)
		cs = append(cs, c)
	}
	return e, p, cs
}

func (s *ServiceSuite) TestCreateAndDuplicate() {
	e, err := s.svc.Create(s.ctx, s.request("EL-001"))
	s.Require().NoError(err)
	s.Equal("scheduled", e.Status)
	s.Equal(dates.New(2024, time.June, 15), e.ElectionDate)

	_, err = s.svc.Create(s.ctx, s.request("EL-001"))
	s.assertCode(err, dErrors.CodeConflict, "Election number already exists")
}

func (s *ServiceSuite) TestCreateChecks() {
	req := s.request("EL-002")
	req.Purpose = patch.Field[string]{}
	_, err := s.svc.Create(s.ctx, req)
	s.assertCode(err, dErrors.CodeBadRequest, "purpose is required")

	req = s.request("EL-002")
	req.Status = patch.Val("postponed")
	_, err = s.svc.Create(s.ctx, req)
	s.assertCode(err, dErrors.CodeBadRequest, "Invalid status")

	req = s.request("EL-002")
	req.ElectionDate = patch.Val("15/06/2024")
	_, err = s.svc.Create(s.ctx, req)
	s.assertCode(err, dErrors.CodeBadRequest, "Invalid electionDate format")

	req = s.request("EL-002")
	req.OrganizationID = patch.Val(uuid.NewString())
	_, err = s.svc.Create(s.ctx, req)
	s.assertCode(err, dErrors.CodeNotFound, "Organization not found")
}

func (s *ServiceSuite) TestUpdateRenumber() {
	a, err := s.svc.Create(s.ctx, s.request("EL-010"))
	s.Require().NoError(err)
	_, err = s.svc.Create(s.ctx, s.request("EL-011"))
	s.Require().NoError(err)

	_, err = s.svc.Update(s.ctx, a.ID, models.ElectionRequest{ElectionNumber: patch.Val("EL-011")})
	s.assertCode(err, dErrors.CodeConflict, "Election number already exists")

	got, err := s.svc.Update(s.ctx, a.ID, models.ElectionRequest{
		ElectionNumber: patch.Val("EL-010"), Status: patch.Val("COMPLETED"), Location: patch.Val("Hall B"),
	})
	s.Require().NoError(err)
	s.Equal("completed", got.Status)
	s.Require().NotNil(got.Location)
	s.Equal("Hall B", *got.Location)
	s.Equal("Executive committee", got.Purpose)
}

func (s *ServiceSuite) TestGetEmbedsPositionsAndCandidates() {
	e, _, _ := s.ballot("EL-020")
	d, err := s.svc.Get(s.ctx, e.ID)
	s.Require().NoError(err)
	s.Require().NotNil(d.Organization)
	s.Equal("IO-07", d.Organization.RegistrationNumber)
	s.Require().Len(d.Positions, 1)
	s.Len(d.Positions[0].Candidates, 2)

	_, err = s.svc.Get(s.ctx, uuid.New())
	s.assertCode(err, dErrors.CodeNotFound, "Ballot election not found")
}

func (s *ServiceSuite) TestRecordResultUpserts() {
	e, p, cs := s.ballot("EL-030")
	req := models.ResultRequest{
		PositionID: patch.Val(p.ID.String()), CandidateID: patch.Val(cs[0].ID.String()), VotesReceived: patch.Val(120),
	}
	first, created, err := s.svc.RecordResult(s.ctx, e.ID, req)
	s.Require().NoError(err)
	s.True(created)
	s.False(first.IsElected)

	req.VotesReceived = patch.Val(140)
	req.IsElected = patch.Val(true)
	second, created, err := s.svc.RecordResult(s.ctx, e.ID, req)
	s.Require().NoError(err)
	s.False(created)
	s.Equal(first.ID, second.ID)

	_, _, err = s.svc.RecordResult(s.ctx, e.ID, models.ResultRequest{
		PositionID: patch.Val(p.ID.String()), CandidateID: patch.Val(cs[1].ID.String()), VotesReceived: patch.Val(90),
	})
	s.Require().NoError(err)

	results, err := s.svc.Results(s.ctx, e.ID)
	s.Require().NoError(err)
	s.Require().Len(results, 2)
	s.Equal(140, results[0].VotesReceived)
	s.Equal("Ada Mensah", results[0].CandidateName)
	s.Equal("Chair", results[0].PositionName)
	s.True(results[0].IsElected)
}

func (s *ServiceSuite) TestRecordResultChecksMembership() {
	e, p, cs := s.ballot("EL-040")
	_, otherPos, otherCands := s.ballot("EL-041")

	_, _, err := s.svc.RecordResult(s.ctx, e.ID, models.ResultRequest{
		PositionID: patch.Val(otherPos.ID.String()), CandidateID: patch.Val(cs[0].ID.String()), VotesReceived: patch.Val(1),
	})
	s.assertCode(err, dErrors.CodeBadRequest, "Invalid position ID")

	_, _, err = s.svc.RecordResult(s.ctx, e.ID, models.ResultRequest{
		PositionID: patch.Val(p.ID.String()), CandidateID: patch.Val(otherCands[0].ID.String()), VotesReceived: patch.Val(1),
	})
	s.assertCode(err, dErrors.CodeBadRequest, "Invalid candidate ID")

	_, _, err = s.svc.RecordResult(s.ctx, e.ID, models.ResultRequest{
		PositionID: patch.Val(uuid.NewString()), CandidateID: patch.Val(cs[0].ID.String()), VotesReceived: patch.Val(1),
	})
	s.assertCode(err, dErrors.CodeBadRequest, "Invalid position ID")

	_, _, err = s.svc.RecordResult(s.ctx, e.ID, models.ResultRequest{
		PositionID: patch.Val(p.ID.String()), CandidateID: patch.Val("not-a-uuid"), VotesReceived: patch.Val(1),
	})
	s.assertCode(err, dErrors.CodeBadRequest, "Invalid candidate ID")

	_, _, err = s.svc.RecordResult(s.ctx, e.ID, models.ResultRequest{
		PositionID: patch.Val(p.ID.String()), CandidateID: patch.Val(cs[0].ID.String()),
	})
	s.assertCode(err, dErrors.CodeBadRequest, "votesReceived is required")

	_, _, err = s.svc.RecordResult(s.ctx, uuid.New(), models.ResultRequest{
		PositionID: patch.Val(p.ID.String()), CandidateID: patch.Val(cs[0].ID.String()), VotesReceived: patch.Val(1),
	})
	s.assertCode(err, dErrors.CodeNotFound, "Ballot election not found")
}

func (s *ServiceSuite) TestRecordResultForMissingElectionIsNotFoundBeforeValidation() {
	_, _, err := s.svc.RecordResult(s.ctx, uuid.New(), models.ResultRequest{})
	s.assertCode(err, dErrors.CodeNotFound, "Ballot election not found")
}

func (s *ServiceSuite) TestDeleteCascades() {
	e, p, cs := s.ballot("EL-050")
	_, _, err := s.svc.RecordResult(s.ctx, e.ID, models.ResultRequest{
		PositionID: patch.Val(p.ID.String()), CandidateID: patch.Val(cs[0].ID.String()), VotesReceived: patch.Val(3),
	})
	s.Require().NoError(err)

	s.Require().NoError(s.svc.Delete(s.ctx, e.ID))
	_, err = s.store.FindPosition(s.ctx, p.ID)
	s.Error(err)
	_, err = s.store.FindCandidate(s.ctx, cs[1].ID)
	s.Error(err)

	s.assertCode(s.svc.Delete(s.ctx, e.ID), dErrors.CodeNotFound, "Ballot election not found")
}

func (s *ServiceSuite) TestUnknownSupervisorIsBadRequest() {
	ctrl := gomock.NewController(s.T())
	store := mocks.NewMockStore(ctrl)
	orgs := mocks.NewMockOrganizations(ctrl)
	svc, err := New(store, orgs)
	s.Require().NoError(err)

	req := s.request("EL-060")
	req.SupervisorID = patch.Val(uuid.NewString())
	store.EXPECT().FindByNumber(gomock.Any(), "EL-060").Return(nil, sentinel.ErrNotFound)
	orgs.EXPECT().FindByID(gomock.Any(), s.org.ID).Return(s.org, nil)
	store.EXPECT().Create(gomock.Any(), gomock.Any()).Return(ballotStore.ErrUnknownSupervisor)

	_, err = svc.Create(s.ctx, req)
	s.assertCode(err, dErrors.CodeBadRequest, "Invalid supervisorId")
}

func (s *ServiceSuite) TestStoreFailureIsInternal() {
	ctrl := gomock.NewController(s.T())
	store := mocks.NewMockStore(ctrl)
	svc, err := New(store, s.orgs)
	s.Require().NoError(err)

	store.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, 0, errors.New("connection reset"))
	_, err = svc.List(s.ctx, models.Filter{}, listing.Page{Page: 1, PageSize: 10})
	s.assertCode(err, dErrors.CodeInternal, "list elections")
}
