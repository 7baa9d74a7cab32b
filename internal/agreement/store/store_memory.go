package store

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"registrar/internal/agreement/models"
	"registrar/pkg/platform/listing"
	"registrar/pkg/platform/sentinel"
)

// InMemoryStore mirrors the schema rules for agreements: unique numbers,
// amendments cascading with their agreement and disputes losing the link.
type InMemoryStore struct {
	mu         sync.RWMutex
	agreements map[uuid.UUID]*models.Agreement
	amendments map[uuid.UUID]*models.Amendment
	disputes   map[uuid.UUID]*models.Dispute
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		agreements: make(map[uuid.UUID]*models.Agreement),
		amendments: make(map[uuid.UUID]*models.Amendment),
		disputes:   make(map[uuid.UUID]*models.Dispute),
	}
}

func notFound(what string, id any) error {
	return fmt.Errorf("%s %v: %w", what, id, sentinel.ErrNotFound)
}

func contains(s *string, term string) bool {
	return s != nil && strings.Contains(strings.ToLower(*s), term)
}

func (s *InMemoryStore) Create(_ context.Context, a *models.Agreement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkNumber(a); err != nil {
		return err
	}
	c := *a
	s.agreements[a.ID] = &c
	return nil
}

func (s *InMemoryStore) checkNumber(a *models.Agreement) error {
	for _, existing := range s.agreements {
		if existing.ID != a.ID && existing.AgreementNumber == a.AgreementNumber {
			return ErrNumberTaken
		}
	}
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id uuid.UUID) (*models.Agreement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.agreements[id]
	if !ok {
		return nil, notFound("agreement", id)
	}
	c := *a
	return &c, nil
}

func (s *InMemoryStore) FindByNumber(_ context.Context, number string) (*models.Agreement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.agreements {
		if a.AgreementNumber == number {
			c := *a
			return &c, nil
		}
	}
	return nil, notFound("agreement", number)
}

func (s *InMemoryStore) Update(_ context.Context, a *models.Agreement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.agreements[a.ID]; !ok {
		return notFound("agreement", a.ID)
	}
	if err := s.checkNumber(a); err != nil {
		return err
	}
	c := *a
	s.agreements[a.ID] = &c
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.agreements[id]; !ok {
		return notFound("agreement", id)
	}
	delete(s.agreements, id)
	for aid, am := range s.amendments {
		if am.AgreementID == id {
			delete(s.amendments, aid)
		}
	}
	for _, d := range s.disputes {
		if d.AgreementID != nil && *d.AgreementID == id {
			d.AgreementID = nil
		}
	}
	return nil
}

func (s *InMemoryStore) List(_ context.Context, f models.Filter, p listing.Page) ([]*models.Agreement, int, error) {
	s.mu.RLock()
	var matched []*models.Agreement
	for _, a := range s.agreements {
		if matchesAgreement(a, f) {
			c := *a
			matched = append(matched, &c)
		}
	}
	s.mu.RUnlock()
	slices.SortFunc(matched, func(a, b *models.Agreement) int {
		return cmp.Or(cmp.Compare(a.AgreementName, b.AgreementName), cmp.Compare(a.AgreementNumber, b.AgreementNumber))
	})
	return listing.Slice(matched, p), len(matched), nil
}

func matchesAgreement(a *models.Agreement, f models.Filter) bool {
	if f.Search != nil {
		term := strings.ToLower(*f.Search)
		if !contains(&a.AgreementName, term) && !contains(&a.AgreementNumber, term) {
			return false
		}
	}
	if f.Status != nil && a.Status != *f.Status {
		return false
	}
	if f.TypeID != nil && (a.AgreementTypeID == nil || *a.AgreementTypeID != *f.TypeID) {
		return false
	}
	if f.OrganizationID != nil && a.PrimaryOrganizationID != *f.OrganizationID &&
		(a.CounterpartyOrganizationID == nil || *a.CounterpartyOrganizationID != *f.OrganizationID) {
		return false
	}
	if f.ExpiringBefore != nil && (a.ExpiryDate == nil || a.ExpiryDate.After(*f.ExpiringBefore)) {
		return false
	}
	if f.ExpiringAfter != nil && (a.ExpiryDate == nil || a.ExpiryDate.Before(*f.ExpiringAfter)) {
		return false
	}
	return true
}

func (s *InMemoryStore) ListAmendments(_ context.Context, agreementID uuid.UUID) ([]models.Amendment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Amendment{}
	for _, am := range s.amendments {
		if am.AgreementID == agreementID {
			out = append(out, *am)
		}
	}
	slices.SortFunc(out, func(a, b models.Amendment) int {
		return cmp.Or(b.AmendmentDate.Time().Compare(a.AmendmentDate.Time()), cmp.Compare(b.AmendmentNumber, a.AmendmentNumber))
	})
	return out, nil
}

func (s *InMemoryStore) FindAmendment(_ context.Context, id uuid.UUID) (*models.Amendment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	am, ok := s.amendments[id]
	if !ok {
		return nil, notFound("amendment", id)
	}
	c := *am
	return &c, nil
}

func (s *InMemoryStore) checkAmendment(am *models.Amendment) error {
	for _, existing := range s.amendments {
		if existing.ID != am.ID && existing.AgreementID == am.AgreementID && existing.AmendmentNumber == am.AmendmentNumber {
			return ErrAmendmentTaken
		}
	}
	return nil
}

func (s *InMemoryStore) CreateAmendment(_ context.Context, am *models.Amendment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.agreements[am.AgreementID]; !ok {
		return fmt.Errorf("agreement %v: %w", am.AgreementID, sentinel.ErrReferenced)
	}
	if err := s.checkAmendment(am); err != nil {
		return err
	}
	c := *am
	s.amendments[am.ID] = &c
	return nil
}

func (s *InMemoryStore) UpdateAmendment(_ context.Context, am *models.Amendment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.amendments[am.ID]; !ok {
		return notFound("amendment", am.ID)
	}
	if err := s.checkAmendment(am); err != nil {
		return err
	}
	c := *am
	s.amendments[am.ID] = &c
	return nil
}

func (s *InMemoryStore) DeleteAmendment(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.amendments[id]; !ok {
		return notFound("amendment", id)
	}
	delete(s.amendments, id)
	return nil
}

func (s *InMemoryStore) checkDispute(d *models.Dispute) error {
	for _, existing := range s.disputes {
		if existing.ID != d.ID && existing.DisputeNumber == d.DisputeNumber {
			return ErrDisputeNumberTaken
		}
	}
	return nil
}

func (s *InMemoryStore) CreateDispute(_ context.Context, d *models.Dispute) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkDispute(d); err != nil {
		return err
	}
	c := *d
	s.disputes[d.ID] = &c
	return nil
}

func (s *InMemoryStore) FindDispute(_ context.Context, id uuid.UUID) (*models.Dispute, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.disputes[id]
	if !ok {
		return nil, notFound("dispute", id)
	}
	c := *d
	return &c, nil
}

func (s *InMemoryStore) FindDisputeByNumber(_ context.Context, number string) (*models.Dispute, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.disputes {
		if d.DisputeNumber == number {
			c := *d
			return &c, nil
		}
	}
	return nil, notFound("dispute", number)
}

func (s *InMemoryStore) UpdateDispute(_ context.Context, d *models.Dispute) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.disputes[d.ID]; !ok {
		return notFound("dispute", d.ID)
	}
	if err := s.checkDispute(d); err != nil {
		return err
	}
	c := *d
	s.disputes[d.ID] = &c
	return nil
}

func (s *InMemoryStore) DeleteDispute(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.disputes[id]; !ok {
		return notFound("dispute", id)
	}
	delete(s.disputes, id)
	return nil
}

func (s *InMemoryStore) ListDisputes(_ context.Context, f models.DisputeFilter, p listing.Page) ([]*models.Dispute, int, error) {
	s.mu.RLock()
	var matched []*models.Dispute
	for _, d := range s.disputes {
		if matchesDispute(d, f) {
			c := *d
			matched = append(matched, &c)
		}
	}
	s.mu.RUnlock()
	slices.SortFunc(matched, func(a, b *models.Dispute) int {
		return cmp.Or(b.FilingDate.Time().Compare(a.FilingDate.Time()), cmp.Compare(a.DisputeNumber, b.DisputeNumber))
	})
	return listing.Slice(matched, p), len(matched), nil
}

func matchesDispute(d *models.Dispute, f models.DisputeFilter) bool {
	if f.Search != nil {
		term := strings.ToLower(*f.Search)
		if !contains(&d.DisputeNumber, term) && !contains(d.ResolutionSummary, term) {
			return false
		}
	}
	if f.Status != nil && d.Status != *f.Status {
		return false
	}
	if f.TypeID != nil && (d.DisputeTypeID == nil || *d.DisputeTypeID != *f.TypeID) {
		return false
	}
	if f.OrganizationID != nil && d.OrganizationID != *f.OrganizationID &&
		(d.CounterpartyID == nil || *d.CounterpartyID != *f.OrganizationID) {
		return false
	}
	if f.DateFrom != nil && d.FilingDate.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && d.FilingDate.After(*f.DateTo) {
		return false
	}
	return true
}
