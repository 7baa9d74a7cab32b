package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	authmodels "registrar/internal/auth/models"
	userStore "registrar/internal/auth/store/user"
	"registrar/internal/compliance/models"
	"registrar/internal/compliance/service/mocks"
	complianceStore "registrar/internal/compliance/store"
	orgmodels "registrar/internal/organization/models"
	orgStore "registrar/internal/organization/store"
	refstore "registrar/internal/reference/store"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/platform/dates"
	"registrar/pkg/platform/patch"
	"registrar/pkg/requestcontext"
)

type ServiceSuite struct {
	suite.Suite
	ctx         context.Context
	store       *complianceStore.InMemoryStore
	orgs        *orgStore.InMemoryStore
	svc         *Service
	org         *orgmodels.Organization
	other       *orgmodels.Organization
	inspector   *authmodels.User
	requirement int
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = requestcontext.WithTime(context.Background(), time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	dir, err := refstore.NewSeededInMemory(s.ctx)
	s.Require().NoError(err)
	reqs, err := dir.ListRequirements(s.ctx)
	s.Require().NoError(err)
	s.requirement = reqs[0].ID

	s.orgs = orgStore.NewInMemory()
	s.org = s.seedOrg("IO-07")
	s.other = s.seedOrg("IO-08")

	users := userStore.New()
	s.inspector = &authmodels.User{
		ID: uuid.New(), Username: "inspector", Email: "inspector@example.org", FirstName: "Efua", LastName: "Asante",
		Status: authmodels.StatusActive,
	}
	s.Require().NoError(users.Create(s.ctx, s.inspector))

	s.store = complianceStore.NewInMemory()
	s.svc, err = New(s.store, s.orgs, users, dir)
	s.Require().NoError(err)
}

func (s *ServiceSuite) seedOrg(number string) *orgmodels.Organization {
	o := &orgmodels.Organization{
		ID: uuid.New(), RegistrationNumber: number, OrganizationName: "Union " + number,
		RegistrationDate: dates.New(2020, time.January, 1), Status: orgmodels.StatusActive, IsCompliant: true,
	}
	s.Require().NoError(s.orgs.Create(s.ctx, o))
	return o
}

func (s *ServiceSuite) assertCode(err error, code dErrors.Code, msg string) {
	s.T().Helper()
	s.Require().Error(err)
	de, ok := dErrors.As(err)
	s.Require().True(ok, err.Error())
	s.Equal(code, de.Code)
	s.Equal(msg, de.Message)
}

func (s *ServiceSuite) compliant(id uuid.UUID) bool {
	o, err := s.orgs.FindByID(s.ctx, id)
	s.Require().NoError(err)
	s.Require().NotNil(o.LastComplianceCheck)
	s.Equal(dates.New(2024, time.March, 1), *o.LastComplianceCheck)
	return o.IsCompliant
}

func (s *ServiceSuite) record(status string) *models.Record {
	r, err := s.svc.CreateRecord(s.ctx, models.RecordRequest{
		OrganizationID: patch.Val(s.org.ID.String()),
		RequirementID:  patch.Val(s.requirement),
		DueDate:        patch.Val("2024-03-31"),
		Status:         patch.Val(status),
	})
	s.Require().NoError(err)
	return r
}

func (s *ServiceSuite) issue(severity, status string) *models.Issue {
	is, err := s.svc.CreateIssue(s.ctx, models.IssueRequest{
		OrganizationID: patch.Val(s.org.ID.String()),
		IssueDate:      patch.Val("2024-02-20"),
		Description:    patch.Val("Accounts not filed"),
		Severity:       patch.Val(severity),
		Status:         patch.Val(status),
	})
	s.Require().NoError(err)
	return is
}

func (s *ServiceSuite) TestOverdueRecordFlipsFlag() {
	r := s.record("pending")
	s.True(s.compliant(s.org.ID))

	_, err := s.svc.UpdateRecord(s.ctx, r.ID, models.RecordRequest{Status: patch.Val("OVERDUE")})
	s.Require().NoError(err)
	s.False(s.compliant(s.org.ID))

	_, err = s.svc.UpdateRecord(s.ctx, r.ID, models.RecordRequest{Status: patch.Val("approved")})
	s.Require().NoError(err)
	s.True(s.compliant(s.org.ID))

	rejected := s.record("rejected")
	s.False(s.compliant(s.org.ID))
	s.Require().NoError(s.svc.DeleteRecord(s.ctx, rejected.ID))
	s.True(s.compliant(s.org.ID))
}

func (s *ServiceSuite) TestMovingRecordRecomputesBothOrganizations() {
	r := s.record("overdue")
	s.False(s.compliant(s.org.ID))

	_, err := s.svc.UpdateRecord(s.ctx, r.ID, models.RecordRequest{OrganizationID: patch.Val(s.other.ID.String())})
	s.Require().NoError(err)
	s.True(s.compliant(s.org.ID))
	s.False(s.compliant(s.other.ID))
}

func (s *ServiceSuite) TestCriticalIssueUntilResolved() {
	s.issue("major", "open")
	s.True(s.compliant(s.org.ID))

	critical := s.issue("critical", "open")
	s.False(s.compliant(s.org.ID))

	_, err := s.svc.UpdateIssue(s.ctx, critical.ID, models.IssueRequest{
		Status: patch.Val("resolved"), ResolutionDate: patch.Val("2024-03-01"),
	})
	s.Require().NoError(err)
	s.True(s.compliant(s.org.ID))
}

func (s *ServiceSuite) TestRecordValidation() {
	_, err := s.svc.CreateRecord(s.ctx, models.RecordRequest{
		OrganizationID: patch.Val(s.org.ID.String()), RequirementID: patch.Val(s.requirement),
		DueDate: patch.Val("2024-03-31"), Status: patch.Val("lost"),
	})
	s.assertCode(err, dErrors.CodeBadRequest, "Invalid status")

	_, err = s.svc.CreateRecord(s.ctx, models.RecordRequest{
		OrganizationID: patch.Val(s.org.ID.String()), RequirementID: patch.Val(4242),
		DueDate: patch.Val("2024-03-31"), Status: patch.Val("pending"),
	})
	s.assertCode(err, dErrors.CodeBadRequest, "Invalid requirementId")

	_, err = s.svc.CreateRecord(s.ctx, models.RecordRequest{
		OrganizationID: patch.Val(s.org.ID.String()), RequirementID: patch.Val(s.requirement),
		DueDate: patch.Val("2024-03-31"), Status: patch.Val("approved"), ApprovedBy: patch.Val(uuid.NewString()),
	})
	s.assertCode(err, dErrors.CodeBadRequest, "Invalid approvedBy")

	_, err = s.svc.CreateRecord(s.ctx, models.RecordRequest{
		OrganizationID: patch.Val(uuid.NewString()), RequirementID: patch.Val(s.requirement),
		DueDate: patch.Val("2024-03-31"), Status: patch.Val("pending"),
	})
	s.assertCode(err, dErrors.CodeNotFound, "Organization not found")
}

func (s *ServiceSuite) TestIssueInspectionMustMatchOrganization() {
	in, err := s.svc.CreateInspection(s.ctx, models.InspectionRequest{
		OrganizationID: patch.Val(s.other.ID.String()),
		InspectionDate: patch.Val("2024-02-15"),
		InspectorID:    patch.Val(s.inspector.ID.String()),
		InspectionType: patch.Val("routine"),
		Status:         patch.Val("follow-up-required"),
	})
	s.Require().NoError(err)

	_, err = s.svc.CreateIssue(s.ctx, models.IssueRequest{
		OrganizationID: patch.Val(s.org.ID.String()), InspectionID: patch.Val(in.ID.String()),
		IssueDate: patch.Val("2024-02-20"), Description: patch.Val("x"),
		Severity: patch.Val("minor"), Status: patch.Val("open"),
	})
	s.assertCode(err, dErrors.CodeBadRequest, "Invalid inspectionId")

	is, err := s.svc.CreateIssue(s.ctx, models.IssueRequest{
		OrganizationID: patch.Val(s.other.ID.String()), InspectionID: patch.Val(in.ID.String()),
		IssueDate: patch.Val("2024-02-20"), Description: patch.Val("Register missing"),
		Severity: patch.Val("minor"), Status: patch.Val("open"),
	})
	s.Require().NoError(err)

	d, err := s.svc.Inspection(s.ctx, in.ID)
	s.Require().NoError(err)
	s.Require().Len(d.Issues, 1)
	s.Equal(is.ID, d.Issues[0].ID)

	s.Require().NoError(s.svc.DeleteInspection(s.ctx, in.ID))
	kept, err := s.svc.Issue(s.ctx, is.ID)
	s.Require().NoError(err)
	s.Nil(kept.InspectionID)
}

func (s *ServiceSuite) TestInspectorMustExist() {
	_, err := s.svc.CreateInspection(s.ctx, models.InspectionRequest{
		OrganizationID: patch.Val(s.org.ID.String()),
		InspectionDate: patch.Val("2024-02-15"),
		InspectorID:    patch.Val(uuid.NewString()),
		InspectionType: patch.Val("routine"),
		Status:         patch.Val("scheduled"),
	})
	s.assertCode(err, dErrors.CodeBadRequest, "Invalid inspectorId")
}

func (s *ServiceSuite) TestFlagFailureAbortsWrite() {
	ctrl := gomock.NewController(s.T())
	store := mocks.NewMockStore(ctrl)
	orgs := mocks.NewMockOrganizations(ctrl)
	reqs := mocks.NewMockRequirements(ctrl)
	svc, err := New(store, orgs, mocks.NewMockUsers(ctrl), reqs)
	s.Require().NoError(err)

	orgs.EXPECT().FindByID(gomock.Any(), s.org.ID).Return(s.org, nil)
	reqs.EXPECT().RequirementByID(gomock.Any(), s.requirement).Return(nil, nil)
	store.EXPECT().CreateRecord(gomock.Any(), gomock.Any()).Return(nil)
	store.EXPECT().Standing(gomock.Any(), s.org.ID).Return(models.Standing{BlockingRecords: 1}, nil)
	orgs.EXPECT().SetCompliance(gomock.Any(), s.org.ID, false, dates.New(2024, time.March, 1)).
		Return(errors.New("connection reset"))

	_, err = svc.CreateRecord(s.ctx, models.RecordRequest{
		OrganizationID: patch.Val(s.org.ID.String()), RequirementID: patch.Val(s.requirement),
		DueDate: patch.Val("2024-03-31"), Status: patch.Val("overdue"),
	})
	s.assertCode(err, dErrors.CodeInternal, "update compliance flag")
}
