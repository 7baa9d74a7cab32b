package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"registrar/internal/organization/models"
	"registrar/internal/organization/service/mocks"
	orgStore "registrar/internal/organization/store"
	"registrar/internal/reference"
	refstore "registrar/internal/reference/store"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/platform/dates"
	"registrar/pkg/platform/listing"
	"registrar/pkg/platform/patch"
	"registrar/pkg/platform/sentinel"
	"registrar/pkg/requestcontext"
)

type ServiceSuite struct {
	suite.Suite
	ctx    context.Context
	store  *orgStore.InMemoryStore
	dir    *refstore.InMemoryStore
	svc    *Service
	typeID int
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = requestcontext.WithTime(context.Background(), time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	dir, err := refstore.NewSeededInMemory(s.ctx)
	s.Require().NoError(err)
	s.dir = dir
	types, err := dir.ListTypes(s.ctx, reference.KindOrganization)
	s.Require().NoError(err)
	s.typeID = types[0].ID

	s.store = orgStore.NewInMemory()
	s.svc, err = New(s.store, dir)
	s.Require().NoError(err)
}

func (s *ServiceSuite) request(number, name string) models.OrganizationRequest {
	return models.OrganizationRequest{
		RegistrationNumber: patch.Val(number),
		OrganizationName:   patch.Val(name),
		OrganizationTypeID: patch.Val(s.typeID),
		RegistrationDate:   patch.Val("2024-01-15"),
		Status:             patch.Val("active"),
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

func (s *ServiceSuite) TestCreateThenDuplicate() {
	o, err := s.svc.Create(s.ctx, s.request("IO-07", "Dock Workers Union"))
	s.Require().NoError(err)
	s.True(o.IsCompliant)
	s.Equal("2024-01-15", o.RegistrationDate.String())

	_, err = s.svc.Create(s.ctx, s.request("IO-07", "Another Union"))
	s.assertCode(err, dErrors.CodeConflict, "Registration number already exists")
}

func (s *ServiceSuite) TestCreateValidationOrder() {
	req := s.request("IO-08", "Nurses Union")
	req.OrganizationTypeID = patch.Field[int]{}
	req.RegistrationDate = patch.Val("15/01/2024")
	_, err := s.svc.Create(s.ctx, req)
	s.assertCode(err, dErrors.CodeBadRequest, "organizationTypeId is required")

	req = s.request("IO-08", "Nurses Union")
	req.RegistrationDate = patch.Val("15/01/2024")
	_, err = s.svc.Create(s.ctx, req)
	s.assertCode(err, dErrors.CodeBadRequest, "Invalid registrationDate format")

	req = s.request("IO-08", "Nurses Union")
	req.Status = patch.Val("dormant")
	_, err = s.svc.Create(s.ctx, req)
	s.assertCode(err, dErrors.CodeBadRequest, "Invalid status")

	req = s.request("IO-08", "Nurses Union")
	req.DistrictID = patch.Val(9999)
	_, err = s.svc.Create(s.ctx, req)
	s.assertCode(err, dErrors.CodeBadRequest, "Invalid districtId")
}

func (s *ServiceSuite) TestZuluAndOffsetDatesAreTheSameDay() {
	a := s.request("IO-10", "A")
	a.RegistrationDate = patch.Val("2024-01-15T00:00:00Z")
	b := s.request("IO-11", "B")
	b.RegistrationDate = patch.Val("2024-01-15T00:00:00+00:00")

	oa, err := s.svc.Create(s.ctx, a)
	s.Require().NoError(err)
	ob, err := s.svc.Create(s.ctx, b)
	s.Require().NoError(err)
	s.True(oa.RegistrationDate.Equal(ob.RegistrationDate))
}

func (s *ServiceSuite) TestPartialUpdateIsIdempotent() {
	created, err := s.svc.Create(s.ctx, s.request("IO-07", "Dock Workers Union"))
	s.Require().NoError(err)

	update := models.OrganizationRequest{Status: patch.Val("suspended")}
	once, err := s.svc.Update(s.ctx, created.ID, update)
	s.Require().NoError(err)
	twice, err := s.svc.Update(s.ctx, created.ID, update)
	s.Require().NoError(err)

	dateEq := cmp.Comparer(func(a, b dates.Date) bool { return a.Equal(b) })
	s.Empty(cmp.Diff(once, twice, dateEq))
	s.Empty(cmp.Diff(created, once, dateEq, cmpopts.IgnoreFields(models.Organization{}, "Status", "UpdatedAt")))
	s.Equal(models.StatusSuspended, twice.Status)
}

func (s *ServiceSuite) TestUpdateRegistrationConflictExcludesSelf() {
	a, err := s.svc.Create(s.ctx, s.request("IO-01", "A"))
	s.Require().NoError(err)
	_, err = s.svc.Create(s.ctx, s.request("IO-02", "B"))
	s.Require().NoError(err)

	_, err = s.svc.Update(s.ctx, a.ID, models.OrganizationRequest{RegistrationNumber: patch.Val("IO-02")})
	s.assertCode(err, dErrors.CodeConflict, "Registration number already exists")

	_, err = s.svc.Update(s.ctx, a.ID, models.OrganizationRequest{RegistrationNumber: patch.Val("IO-01")})
	s.NoError(err)

	_, err = s.svc.Update(s.ctx, a.ID, models.OrganizationRequest{OrganizationName: patch.NullField[string]()})
	s.assertCode(err, dErrors.CodeBadRequest, "organizationName cannot be null")

	_, err = s.svc.Update(s.ctx, uuid.New(), models.OrganizationRequest{Status: patch.Val("active")})
	s.assertCode(err, dErrors.CodeNotFound, "Organization not found")
}

func (s *ServiceSuite) TestListByRegion() {
	regions, err := s.dir.ListRegions(s.ctx)
	s.Require().NoError(err)
	var northern reference.Region
	for _, r := range regions {
		if r.RegionName == "Northern" {
			northern = r
		}
	}
	districts, err := s.dir.ListDistricts(s.ctx, &northern.ID)
	s.Require().NoError(err)

	north := s.request("IO-20", "Mzuzu Traders")
	north.DistrictID = patch.Val(districts[0].ID)
	_, err = s.svc.Create(s.ctx, north)
	s.Require().NoError(err)
	_, err = s.svc.Create(s.ctx, s.request("IO-21", "Nowhere Union"))
	s.Require().NoError(err)

	res, err := s.svc.List(s.ctx, models.Filter{}, &northern.ID, listing.Page{Page: 1, PageSize: 10})
	s.Require().NoError(err)
	s.Require().Len(res.Items, 1)
	s.Equal("IO-20", res.Items[0].RegistrationNumber)

	missing := 424242
	res, err = s.svc.List(s.ctx, models.Filter{}, &missing, listing.Page{Page: 1, PageSize: 10})
	s.Require().NoError(err)
	s.Empty(res.Items)
	s.Equal(0, res.Total)
}

func (s *ServiceSuite) TestGetEmbedsChildren() {
	o, err := s.svc.Create(s.ctx, s.request("IO-30", "Miners Union"))
	s.Require().NoError(err)

	_, err = s.svc.CreateOfficial(s.ctx, o.ID, models.OfficialRequest{
		Position: patch.Val("Secretary General"), FirstName: patch.Val("Grace"), LastName: patch.Val("Banda"),
		StartDate: patch.Val("2023-05-01"),
	})
	s.Require().NoError(err)
	for _, v := range []int{1, 2} {
		_, err = s.svc.CreateConstitution(s.ctx, o.ID, models.ConstitutionRequest{
			VersionNumber: patch.Val(v), EffectiveDate: patch.Val("2023-01-01"), Status: patch.Val("approved"),
		})
		s.Require().NoError(err)
	}

	d, err := s.svc.Get(s.ctx, o.ID)
	s.Require().NoError(err)
	s.Require().NotNil(d.OrganizationType)
	s.Require().Len(d.Officials, 1)
	s.True(d.Officials[0].IsCurrent)
	s.Require().Len(d.Constitutions, 2)
	s.Equal(2, d.Constitutions[0].VersionNumber)
}

func (s *ServiceSuite) TestChildrenNeedParentAndUniqueVersion() {
	_, err := s.svc.CreateOfficial(s.ctx, uuid.New(), models.OfficialRequest{
		Position: patch.Val("Treasurer"), FirstName: patch.Val("A"), LastName: patch.Val("B"), StartDate: patch.Val("2023-01-01"),
	})
	s.assertCode(err, dErrors.CodeNotFound, "Organization not found")

	o, err := s.svc.Create(s.ctx, s.request("IO-31", "Nurses Union"))
	s.Require().NoError(err)
	req := models.ConstitutionRequest{VersionNumber: patch.Val(1), EffectiveDate: patch.Val("2023-01-01"), Status: patch.Val("draft")}
	_, err = s.svc.CreateConstitution(s.ctx, o.ID, req)
	s.Require().NoError(err)
	_, err = s.svc.CreateConstitution(s.ctx, o.ID, req)
	s.assertCode(err, dErrors.CodeConflict, "Constitution version already exists for this organization")
}

func (s *ServiceSuite) TestDeleteCascadesOwnedRecords() {
	o, err := s.svc.Create(s.ctx, s.request("IO-40", "Bakers Union"))
	s.Require().NoError(err)
	off, err := s.svc.CreateOfficial(s.ctx, o.ID, models.OfficialRequest{
		Position: patch.Val("Chair"), FirstName: patch.Val("A"), LastName: patch.Val("B"), StartDate: patch.Val("2023-01-01"),
	})
	s.Require().NoError(err)

	s.Require().NoError(s.svc.Delete(s.ctx, o.ID))
	_, err = s.store.FindOfficial(s.ctx, off.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
	s.assertCode(s.svc.Delete(s.ctx, o.ID), dErrors.CodeNotFound, "Organization not found")
}

func (s *ServiceSuite) TestReferencedDeleteIsConflict() {
	ctrl := gomock.NewController(s.T())
	store := mocks.NewMockStore(ctrl)
	svc, err := New(store, s.dir)
	s.Require().NoError(err)

	id := uuid.New()
	store.EXPECT().FindByID(gomock.Any(), id).Return(&models.Organization{ID: id}, nil)
	store.EXPECT().Delete(gomock.Any(), id).Return(errors.Join(errors.New("fk"), sentinel.ErrReferenced))
	s.assertCode(svc.Delete(s.ctx, id), dErrors.CodeConflict, "Organization is still referenced")
}

func (s *ServiceSuite) TestStorageConflictIsAuthoritative() {
	ctrl := gomock.NewController(s.T())
	store := mocks.NewMockStore(ctrl)
	svc, err := New(store, s.dir)
	s.Require().NoError(err)

	// The pre-check passes but the unique constraint rejects the insert.
	store.EXPECT().FindByRegistrationNumber(gomock.Any(), "IO-50").Return(nil, sentinel.ErrNotFound)
	store.EXPECT().Create(gomock.Any(), gomock.Any()).Return(orgStore.ErrRegistrationTaken)
	_, err = svc.Create(s.ctx, s.request("IO-50", "Racing Union"))
	s.assertCode(err, dErrors.CodeConflict, "Registration number already exists")
}
