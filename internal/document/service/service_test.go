package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	agreementStore "registrar/internal/agreement/store"
	authmodels "registrar/internal/auth/models"
	userStore "registrar/internal/auth/store/user"
	"registrar/internal/authz"
	ballotmodels "registrar/internal/ballot/models"
	ballotStore "registrar/internal/ballot/store"
	"registrar/internal/document/models"
	"registrar/internal/document/service/mocks"
	documentStore "registrar/internal/document/store"
	orgmodels "registrar/internal/organization/models"
	orgStore "registrar/internal/organization/store"
	"registrar/internal/reference"
	refstore "registrar/internal/reference/store"
	trainingStore "registrar/internal/training/store"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/platform/dates"
	"registrar/pkg/platform/listing"
	"registrar/pkg/platform/patch"
	"registrar/pkg/requestcontext"
)

type ServiceSuite struct {
	suite.Suite
	ctx       context.Context
	store     *documentStore.InMemoryStore
	elections *ballotStore.InMemoryStore
	dir       *refstore.InMemoryStore
	svc       *Service
	org       *orgmodels.Organization
	owner     *authmodels.User
	typeID    int
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	base := requestcontext.WithTime(context.Background(), time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	var err error
	s.dir, err = refstore.NewSeededInMemory(base)
	s.Require().NoError(err)
	types, err := s.dir.ListTypes(base, reference.KindDocument)
	s.Require().NoError(err)
	s.typeID = types[0].ID

	orgs := orgStore.NewInMemory()
	s.org = &orgmodels.Organization{
		ID: uuid.New(), RegistrationNumber: "IO-07", OrganizationName: "Dock Workers Union",
		RegistrationDate: dates.New(2020, time.January, 1), Status: orgmodels.StatusActive,
	}
	s.Require().NoError(orgs.Create(base, s.org))

	users := userStore.New()
	s.owner = &authmodels.User{
		ID: uuid.New(), Username: "clerk", Email: "clerk@example.org", FirstName: "Ama", LastName: "Mensah",
		Status: authmodels.StatusActive,
	}
	s.Require().NoError(users.Create(base, s.owner))
	s.ctx = requestcontext.WithCaller(base, requestcontext.Caller{UserID: s.owner.ID, Role: string(authz.RoleDataEntry)})

	s.store = documentStore.NewInMemory()
	s.elections = ballotStore.NewInMemory()
	s.svc, err = New(s.store, Targets{
		Organizations: orgs,
		Agreements:    agreementStore.NewInMemory(),
		Elections:     s.elections,
		Workshops:     trainingStore.NewInMemory(),
	}, users, s.dir)
	s.Require().NoError(err)
}

func (s *ServiceSuite) request(number string) models.DocumentRequest {
	return models.DocumentRequest{
		DocumentNumber: patch.Val(number),
		DocumentName:   patch.Val("Constitution 2024"),
		DocumentTypeID: patch.Val(s.typeID),
		OrganizationID: patch.Val(s.org.ID.String()),
		FilePath:       patch.Val("uploads/io-07/constitution.PDF"),
		UploadDate:     patch.Val("2024-02-14"),
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

func (s *ServiceSuite) TestCreateRecordsCallerAndDerivesFileType() {
	d, err := s.svc.Create(s.ctx, s.request("DOC-001"))
	s.Require().NoError(err)
	s.Require().NotNil(d.UploadedBy)
	s.Equal(s.owner.ID, *d.UploadedBy)
	s.Require().NotNil(d.FileType)
	s.Equal("PDF", *d.FileType)
	s.False(d.IsPublic)

	req := s.request("DOC-002")
	req.FileType = patch.Val("application/pdf")
	d, err = s.svc.Create(s.ctx, req)
	s.Require().NoError(err)
	s.Equal("application/pdf", *d.FileType)
}

func (s *ServiceSuite) TestCreateValidation() {
	_, err := s.svc.Create(s.ctx, models.DocumentRequest{DocumentNumber: patch.Val("DOC-001")})
	s.assertCode(err, dErrors.CodeBadRequest, "documentName is required")

	req := s.request("DOC-001")
	req.UploadDate = patch.Val("14/02/2024")
	_, err = s.svc.Create(s.ctx, req)
	s.assertCode(err, dErrors.CodeBadRequest, "Invalid uploadDate format")

	req = s.request("DOC-001")
	req.ElectionID = patch.Val(uuid.NewString())
	_, err = s.svc.Create(s.ctx, req)
	s.assertCode(err, dErrors.CodeBadRequest, "Invalid electionId")

	req = s.request("DOC-001")
	req.DocumentTypeID = patch.Val(9999)
	_, err = s.svc.Create(s.ctx, req)
	s.assertCode(err, dErrors.CodeBadRequest, "Invalid documentTypeId")
}

func (s *ServiceSuite) TestDocumentNumberIsUnique() {
	_, err := s.svc.Create(s.ctx, s.request("DOC-001"))
	s.Require().NoError(err)
	_, err = s.svc.Create(s.ctx, s.request("DOC-001"))
	s.assertCode(err, dErrors.CodeConflict, "Document number already exists")

	other, err := s.svc.Create(s.ctx, s.request("DOC-002"))
	s.Require().NoError(err)
	_, err = s.svc.Update(s.ctx, other.ID, models.DocumentRequest{DocumentNumber: patch.Val("DOC-001")})
	s.assertCode(err, dErrors.CodeConflict, "Document number already exists")
}

func (s *ServiceSuite) TestUpdateIsPartialAndRederivesFileType() {
	d, err := s.svc.Create(s.ctx, s.request("DOC-001"))
	s.Require().NoError(err)

	election := &ballotmodels.Election{
		ID: uuid.New(), ElectionNumber: "EL-1", OrganizationID: s.org.ID,
		ElectionDate: dates.New(2024, time.June, 1), Purpose: "Executive", Status: "scheduled",
	}
	s.Require().NoError(s.elections.Create(s.ctx, election))

	updated, err := s.svc.Update(s.ctx, d.ID, models.DocumentRequest{
		FilePath:       patch.Val("uploads/io-07/constitution.docx"),
		ElectionID:     patch.Val(election.ID.String()),
		OrganizationID: patch.NullField[string](),
	})
	s.Require().NoError(err)
	s.Equal("docx", *updated.FileType)
	s.Equal("Constitution 2024", updated.DocumentName)
	s.Nil(updated.OrganizationID)
	s.Equal(election.ID, *updated.ElectionID)
	s.Equal(s.typeID, *updated.DocumentTypeID)
}

func (s *ServiceSuite) TestGetEmbedsTypeOrganizationAndUploader() {
	d, err := s.svc.Create(s.ctx, s.request("DOC-001"))
	s.Require().NoError(err)

	detail, err := s.svc.Get(s.ctx, d.ID)
	s.Require().NoError(err)
	s.Require().NotNil(detail.DocumentType)
	s.Equal(s.typeID, detail.DocumentType.ID)
	s.Equal("IO-07", detail.Organization.RegistrationNumber)
	s.Equal("clerk", detail.Uploader.Username)

	_, err = s.svc.Get(s.ctx, uuid.New())
	s.assertCode(err, dErrors.CodeNotFound, "Document not found")
}

func (s *ServiceSuite) TestDeleteRequiresOwnershipOrCapability() {
	d, err := s.svc.Create(s.ctx, s.request("DOC-001"))
	s.Require().NoError(err)

	stranger := requestcontext.WithCaller(s.ctx, requestcontext.Caller{UserID: uuid.New(), Role: string(authz.RoleRegistrar)})
	s.assertCode(s.svc.Delete(stranger, d.ID), dErrors.CodeForbidden, "You do not have permission to delete this document")

	admin := requestcontext.WithCaller(s.ctx, requestcontext.Caller{UserID: uuid.New(), Role: string(authz.RoleAdmin)})
	s.Require().NoError(s.svc.Delete(admin, d.ID))

	own, err := s.svc.Create(s.ctx, s.request("DOC-002"))
	s.Require().NoError(err)
	s.Require().NoError(s.svc.Delete(s.ctx, own.ID))
	s.assertCode(s.svc.Delete(s.ctx, own.ID), dErrors.CodeNotFound, "Document not found")
}

func (s *ServiceSuite) TestListFilters() {
	for _, n := range []string{"DOC-001", "DOC-002", "DOC-003"} {
		_, err := s.svc.Create(s.ctx, s.request(n))
		s.Require().NoError(err)
	}
	public := s.request("DOC-004")
	public.IsPublic = patch.Val(true)
	public.UploadDate = patch.Val("2024-02-20")
	_, err := s.svc.Create(s.ctx, public)
	s.Require().NoError(err)

	yes := true
	res, err := s.svc.List(s.ctx, models.Filter{IsPublic: &yes}, listing.Page{Page: 1, PageSize: 10})
	s.Require().NoError(err)
	s.Equal(1, res.Total)

	res, err = s.svc.List(s.ctx, models.Filter{OrganizationID: &s.org.ID}, listing.Page{Page: 1, PageSize: 2})
	s.Require().NoError(err)
	s.Equal(4, res.Total)
	s.Equal(2, res.TotalPages)
	s.Equal("DOC-004", res.Items[0].DocumentNumber)
}

func (s *ServiceSuite) TestTypeLifecycle() {
	t, err := s.svc.CreateType(s.ctx, models.TypeRequest{TypeName: patch.Val("Minutes")})
	s.Require().NoError(err)

	_, err = s.svc.CreateType(s.ctx, models.TypeRequest{TypeName: patch.Val("Minutes")})
	s.assertCode(err, dErrors.CodeConflict, "Document type name already exists")
	_, err = s.svc.CreateType(s.ctx, models.TypeRequest{})
	s.assertCode(err, dErrors.CodeBadRequest, "typeName is required")

	updated, err := s.svc.UpdateType(s.ctx, t.ID, models.TypeRequest{Description: patch.Val("Meeting minutes")})
	s.Require().NoError(err)
	s.Equal("Minutes", updated.TypeName)
	s.Equal("Meeting minutes", *updated.Description)

	req := s.request("DOC-001")
	req.DocumentTypeID = patch.Val(t.ID)
	d, err := s.svc.Create(s.ctx, req)
	s.Require().NoError(err)
	s.assertCode(s.svc.DeleteType(s.ctx, t.ID), dErrors.CodeConflict, "Document type is in use and cannot be deleted")

	s.Require().NoError(s.svc.Delete(s.ctx, d.ID))
	s.Require().NoError(s.svc.DeleteType(s.ctx, t.ID))
	s.assertCode(s.svc.DeleteType(s.ctx, t.ID), dErrors.CodeNotFound, "Document type not found")
}

func (s *ServiceSuite) TestStoreFailureIsInternal() {
	ctrl := gomock.NewController(s.T())
	store := mocks.NewMockStore(ctrl)
	types := mocks.NewMockTypes(ctrl)
	svc, err := New(store, Targets{
		Organizations: mocks.NewMockOrganizations(ctrl),
		Agreements:    mocks.NewMockAgreements(ctrl),
		Elections:     mocks.NewMockElections(ctrl),
		Workshops:     mocks.NewMockWorkshops(ctrl),
	}, mocks.NewMockUsers(ctrl), types)
	s.Require().NoError(err)

	types.EXPECT().TypeByID(gomock.Any(), reference.KindDocument, 3).Return(&reference.LookupType{ID: 3}, nil)
	store.EXPECT().CountByType(gomock.Any(), 3).Return(0, errors.New("connection reset"))
	s.assertCode(svc.DeleteType(s.ctx, 3), dErrors.CodeInternal, "count documents by type")
}

func TestNewRequiresDependencies(t *testing.T) {
	_, err := New(documentStore.NewInMemory(), Targets{}, userStore.New(), refstore.NewInMemory())
	if err == nil {
		t.Fatal("expected an error for missing targets")
	}
}
