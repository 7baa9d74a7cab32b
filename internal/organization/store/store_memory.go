package store

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"registrar/internal/organization/models"
	"registrar/pkg/platform/dates"
	"registrar/pkg/platform/listing"
	"registrar/pkg/platform/sentinel"
)

// InMemoryStore keeps organizations and their owned records in maps. It
// enforces the same uniqueness rules as the schema and cascades deletes to
// owned records; it does not know about references from other aggregates.
type InMemoryStore struct {
	mu            sync.RWMutex
	orgs          map[uuid.UUID]*models.Organization
	officials     map[uuid.UUID]*models.Official
	constitutions map[uuid.UUID]*models.Constitution
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		orgs:          make(map[uuid.UUID]*models.Organization),
		officials:     make(map[uuid.UUID]*models.Official),
		constitutions: make(map[uuid.UUID]*models.Constitution),
	}
}

func notFound(what string, id any) error {
	return fmt.Errorf("%s %v: %w", what, id, sentinel.ErrNotFound)
}

func (s *InMemoryStore) Create(_ context.Context, o *models.Organization) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkRegistration(o); err != nil {
		return err
	}
	c := *o
	s.orgs[o.ID] = &c
	return nil
}

func (s *InMemoryStore) checkRegistration(o *models.Organization) error {
	for _, existing := range s.orgs {
		if existing.ID != o.ID && existing.RegistrationNumber == o.RegistrationNumber {
			return ErrRegistrationTaken
		}
	}
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id uuid.UUID) (*models.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orgs[id]
	if !ok {
		return nil, notFound("organization", id)
	}
	c := *o
	return &c, nil
}

func (s *InMemoryStore) FindByRegistrationNumber(_ context.Context, number string) (*models.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.orgs {
		if o.RegistrationNumber == number {
			c := *o
			return &c, nil
		}
	}
	return nil, notFound("organization", number)
}

func (s *InMemoryStore) Update(_ context.Context, o *models.Organization) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orgs[o.ID]; !ok {
		return notFound("organization", o.ID)
	}
	if err := s.checkRegistration(o); err != nil {
		return err
	}
	c := *o
	s.orgs[o.ID] = &c
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orgs[id]; !ok {
		return notFound("organization", id)
	}
	delete(s.orgs, id)
	for oid, off := range s.officials {
		if off.OrganizationID == id {
			delete(s.officials, oid)
		}
	}
	for cid, con := range s.constitutions {
		if con.OrganizationID == id {
			delete(s.constitutions, cid)
		}
	}
	return nil
}

func (s *InMemoryStore) List(_ context.Context, f models.Filter, p listing.Page) ([]*models.Organization, int, error) {
	s.mu.RLock()
	var matched []*models.Organization
	for _, o := range s.orgs {
		if matches(o, f) {
			c := *o
			matched = append(matched, &c)
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(matched, func(a, b *models.Organization) int {
		return cmp.Or(cmp.Compare(a.OrganizationName, b.OrganizationName), cmp.Compare(a.RegistrationNumber, b.RegistrationNumber))
	})
	return listing.Slice(matched, p), len(matched), nil
}

func matches(o *models.Organization, f models.Filter) bool {
	if f.Search != nil {
		term := strings.ToLower(*f.Search)
		if !strings.Contains(strings.ToLower(o.OrganizationName), term) &&
			!strings.Contains(strings.ToLower(o.RegistrationNumber), term) {
			return false
		}
	}
	if f.Status != nil && o.Status != *f.Status {
		return false
	}
	if f.TypeID != nil && (o.OrganizationTypeID == nil || *o.OrganizationTypeID != *f.TypeID) {
		return false
	}
	if f.DistrictID != nil && (o.DistrictID == nil || *o.DistrictID != *f.DistrictID) {
		return false
	}
	if f.DistrictIn != nil && (o.DistrictID == nil || !slices.Contains(f.DistrictIn, *o.DistrictID)) {
		return false
	}
	if f.IsCompliant != nil && o.IsCompliant != *f.IsCompliant {
		return false
	}
	return true
}

func (s *InMemoryStore) SetCompliance(_ context.Context, id uuid.UUID, compliant bool, checked dates.Date) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orgs[id]
	if !ok {
		return notFound("organization", id)
	}
	o.IsCompliant = compliant
	o.LastComplianceCheck = &checked
	return nil
}

func (s *InMemoryStore) ListOfficials(_ context.Context, orgID uuid.UUID) ([]models.Official, error) {
	s.mu.RLock()
	out := []models.Official{}
	for _, off := range s.officials {
		if off.OrganizationID == orgID {
			out = append(out, *off)
		}
	}
	s.mu.RUnlock()
	slices.SortFunc(out, func(a, b models.Official) int {
		return cmp.Or(cmp.Compare(a.LastName, b.LastName), cmp.Compare(a.FirstName, b.FirstName))
	})
	return out, nil
}

func (s *InMemoryStore) FindOfficial(_ context.Context, id uuid.UUID) (*models.Official, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	off, ok := s.officials[id]
	if !ok {
		return nil, notFound("official", id)
	}
	c := *off
	return &c, nil
}

func (s *InMemoryStore) CreateOfficial(_ context.Context, off *models.Official) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orgs[off.OrganizationID]; !ok {
		return fmt.Errorf("organization %s: %w", off.OrganizationID, sentinel.ErrReferenced)
	}
	c := *off
	s.officials[off.ID] = &c
	return nil
}

func (s *InMemoryStore) UpdateOfficial(_ context.Context, off *models.Official) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.officials[off.ID]; !ok {
		return notFound("official", off.ID)
	}
	c := *off
	s.officials[off.ID] = &c
	return nil
}

func (s *InMemoryStore) DeleteOfficial(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.officials[id]; !ok {
		return notFound("official", id)
	}
	delete(s.officials, id)
	return nil
}

func (s *InMemoryStore) ListConstitutions(_ context.Context, orgID uuid.UUID) ([]models.Constitution, error) {
	s.mu.RLock()
	out := []models.Constitution{}
	for _, con := range s.constitutions {
		if con.OrganizationID == orgID {
			out = append(out, *con)
		}
	}
	s.mu.RUnlock()
	slices.SortFunc(out, func(a, b models.Constitution) int { return cmp.Compare(b.VersionNumber, a.VersionNumber) })
	return out, nil
}

func (s *InMemoryStore) FindConstitution(_ context.Context, id uuid.UUID) (*models.Constitution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	con, ok := s.constitutions[id]
	if !ok {
		return nil, notFound("constitution", id)
	}
	c := *con
	return &c, nil
}

func (s *InMemoryStore) checkVersion(con *models.Constitution) error {
	for _, existing := range s.constitutions {
		if existing.ID != con.ID && existing.OrganizationID == con.OrganizationID && existing.VersionNumber == con.VersionNumber {
			return ErrVersionTaken
		}
	}
	return nil
}

func (s *InMemoryStore) CreateConstitution(_ context.Context, con *models.Constitution) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orgs[con.OrganizationID]; !ok {
		return fmt.Errorf("organization %s: %w", con.OrganizationID, sentinel.ErrReferenced)
	}
	if err := s.checkVersion(con); err != nil {
		return err
	}
	c := *con
	s.constitutions[con.ID] = &c
	return nil
}

func (s *InMemoryStore) UpdateConstitution(_ context.Context, con *models.Constitution) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.constitutions[con.ID]; !ok {
		return notFound("constitution", con.ID)
	}
	if err := s.checkVersion(con); err != nil {
		return err
	}
	c := *con
	s.constitutions[con.ID] = &c
	return nil
}

func (s *InMemoryStore) DeleteConstitution(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.constitutions[id]; !ok {
		return notFound("constitution", id)
	}
	delete(s.constitutions, id)
	return nil
}
