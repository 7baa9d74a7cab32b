// Package store persists compliance records, inspections and issues.
package store

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"registrar/internal/compliance/models"
	"registrar/pkg/platform/listing"
	"registrar/pkg/platform/sentinel"
)

type InMemoryStore struct {
	mu          sync.RWMutex
	records     map[uuid.UUID]*models.Record
	inspections map[uuid.UUID]*models.Inspection
	issues      map[uuid.UUID]*models.Issue
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		records:     make(map[uuid.UUID]*models.Record),
		inspections: make(map[uuid.UUID]*models.Inspection),
		issues:      make(map[uuid.UUID]*models.Issue),
	}
}

func notFound(what string, id any) error {
	return fmt.Errorf("%s %v: %w", what, id, sentinel.ErrNotFound)
}

// put stores a copy of v under id, failing when mustExist and the id is
// unknown.
func put[T any](m map[uuid.UUID]*T, id uuid.UUID, v *T, what string, mustExist bool) error {
	if _, ok := m[id]; mustExist && !ok {
		return notFound(what, id)
	}
	c := *v
	m[id] = &c
	return nil
}

func get[T any](m map[uuid.UUID]*T, id uuid.UUID, what string) (*T, error) {
	v, ok := m[id]
	if !ok {
		return nil, notFound(what, id)
	}
	c := *v
	return &c, nil
}

func (s *InMemoryStore) CreateRecord(_ context.Context, r *models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return put(s.records, r.ID, r, "record", false)
}

func (s *InMemoryStore) FindRecord(_ context.Context, id uuid.UUID) (*models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return get(s.records, id, "record")
}

func (s *InMemoryStore) UpdateRecord(_ context.Context, r *models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return put(s.records, r.ID, r, "record", true)
}

func (s *InMemoryStore) DeleteRecord(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return notFound("record", id)
	}
	delete(s.records, id)
	return nil
}

func (s *InMemoryStore) ListRecords(_ context.Context, f models.RecordFilter, p listing.Page) ([]*models.Record, int, error) {
	s.mu.RLock()
	var matched []*models.Record
	for _, r := range s.records {
		if matchesRecord(r, f) {
			c := *r
			matched = append(matched, &c)
		}
	}
	s.mu.RUnlock()
	slices.SortFunc(matched, func(a, b *models.Record) int {
		return cmp.Or(a.DueDate.Time().Compare(b.DueDate.Time()), cmp.Compare(a.ID.String(), b.ID.String()))
	})
	return listing.Slice(matched, p), len(matched), nil
}

func matchesRecord(r *models.Record, f models.RecordFilter) bool {
	switch {
	case f.OrganizationID != nil && r.OrganizationID != *f.OrganizationID:
		return false
	case f.RequirementID != nil && r.RequirementID != *f.RequirementID:
		return false
	case f.Status != nil && r.Status != *f.Status:
		return false
	case f.DueBefore != nil && r.DueDate.After(*f.DueBefore):
		return false
	case f.DueAfter != nil && r.DueDate.Before(*f.DueAfter):
		return false
	}
	return true
}

func (s *InMemoryStore) CreateInspection(_ context.Context, in *models.Inspection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return put(s.inspections, in.ID, in, "inspection", false)
}

func (s *InMemoryStore) FindInspection(_ context.Context, id uuid.UUID) (*models.Inspection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return get(s.inspections, id, "inspection")
}

func (s *InMemoryStore) UpdateInspection(_ context.Context, in *models.Inspection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return put(s.inspections, in.ID, in, "inspection", true)
}

// DeleteInspection removes the inspection; its issues stay and lose the
// link.
func (s *InMemoryStore) DeleteInspection(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.inspections[id]; !ok {
		return notFound("inspection", id)
	}
	delete(s.inspections, id)
	for _, is := range s.issues {
		if is.InspectionID != nil && *is.InspectionID == id {
			is.InspectionID = nil
		}
	}
	return nil
}

func (s *InMemoryStore) ListInspections(_ context.Context, f models.InspectionFilter, p listing.Page) ([]*models.Inspection, int, error) {
	s.mu.RLock()
	var matched []*models.Inspection
	for _, in := range s.inspections {
		if matchesInspection(in, f) {
			c := *in
			matched = append(matched, &c)
		}
	}
	s.mu.RUnlock()
	slices.SortFunc(matched, func(a, b *models.Inspection) int {
		return cmp.Or(b.InspectionDate.Time().Compare(a.InspectionDate.Time()), cmp.Compare(a.ID.String(), b.ID.String()))
	})
	return listing.Slice(matched, p), len(matched), nil
}

func matchesInspection(in *models.Inspection, f models.InspectionFilter) bool {
	switch {
	case f.OrganizationID != nil && in.OrganizationID != *f.OrganizationID:
		return false
	case f.InspectorID != nil && in.InspectorID != *f.InspectorID:
		return false
	case f.Status != nil && in.Status != *f.Status:
		return false
	case f.DateFrom != nil && in.InspectionDate.Before(*f.DateFrom):
		return false
	case f.DateTo != nil && in.InspectionDate.After(*f.DateTo):
		return false
	}
	return true
}

func (s *InMemoryStore) CreateIssue(_ context.Context, is *models.Issue) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return put(s.issues, is.ID, is, "issue", false)
}

func (s *InMemoryStore) FindIssue(_ context.Context, id uuid.UUID) (*models.Issue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return get(s.issues, id, "issue")
}

func (s *InMemoryStore) UpdateIssue(_ context.Context, is *models.Issue) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return put(s.issues, is.ID, is, "issue", true)
}

func (s *InMemoryStore) DeleteIssue(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.issues[id]; !ok {
		return notFound("issue", id)
	}
	delete(s.issues, id)
	return nil
}

func (s *InMemoryStore) ListIssues(_ context.Context, f models.IssueFilter, p listing.Page) ([]*models.Issue, int, error) {
	s.mu.RLock()
	var matched []*models.Issue
	for _, is := range s.issues {
		if matchesIssue(is, f) {
			c := *is
			matched = append(matched, &c)
		}
	}
	s.mu.RUnlock()
	slices.SortFunc(matched, func(a, b *models.Issue) int {
		return cmp.Or(b.IssueDate.Time().Compare(a.IssueDate.Time()), cmp.Compare(a.ID.String(), b.ID.String()))
	})
	return listing.Slice(matched, p), len(matched), nil
}

func matchesIssue(is *models.Issue, f models.IssueFilter) bool {
	switch {
	case f.OrganizationID != nil && is.OrganizationID != *f.OrganizationID:
		return false
	case f.InspectionID != nil && (is.InspectionID == nil || *is.InspectionID != *f.InspectionID):
		return false
	case f.Status != nil && is.Status != *f.Status:
		return false
	case f.Severity != nil && is.Severity != *f.Severity:
		return false
	}
	return true
}

// Standing counts the organization's blocking records and unresolved
// critical issues.
func (s *InMemoryStore) Standing(_ context.Context, orgID uuid.UUID) (models.Standing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var st models.Standing
	for _, r := range s.records {
		if r.OrganizationID == orgID && r.Blocking() {
			st.BlockingRecords++
		}
	}
	for _, is := range s.issues {
		if is.OrganizationID == orgID && is.Blocking() {
			st.OpenCritical++
		}
	}
	return st, nil
}
