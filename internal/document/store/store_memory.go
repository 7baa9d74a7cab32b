package store

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"registrar/internal/document/models"
	"registrar/pkg/platform/listing"
	"registrar/pkg/platform/sentinel"
)

type InMemoryStore struct {
	mu        sync.RWMutex
	documents map[uuid.UUID]*models.Document
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{documents: make(map[uuid.UUID]*models.Document)}
}

func notFound(id any) error {
	return fmt.Errorf("document %v: %w", id, sentinel.ErrNotFound)
}

func (s *InMemoryStore) numberTaken(number string, except uuid.UUID) bool {
	for id, d := range s.documents {
		if id != except && d.DocumentNumber == number {
			return true
		}
	}
	return false
}

func (s *InMemoryStore) Create(_ context.Context, d *models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.numberTaken(d.DocumentNumber, d.ID) {
		return ErrNumberTaken
	}
	c := *d
	s.documents[d.ID] = &c
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id uuid.UUID) (*models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.documents[id]
	if !ok {
		return nil, notFound(id)
	}
	c := *d
	return &c, nil
}

func (s *InMemoryStore) FindByNumber(_ context.Context, number string) (*models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.documents {
		if d.DocumentNumber == number {
			c := *d
			return &c, nil
		}
	}
	return nil, notFound(number)
}

func (s *InMemoryStore) Update(_ context.Context, d *models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.documents[d.ID]; !ok {
		return notFound(d.ID)
	}
	if s.numberTaken(d.DocumentNumber, d.ID) {
		return ErrNumberTaken
	}
	c := *d
	s.documents[d.ID] = &c
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.documents[id]; !ok {
		return notFound(id)
	}
	delete(s.documents, id)
	return nil
}

func (s *InMemoryStore) List(_ context.Context, f models.Filter, p listing.Page) ([]*models.Document, int, error) {
	s.mu.RLock()
	var matched []*models.Document
	for _, d := range s.documents {
		if matches(d, f) {
			c := *d
			matched = append(matched, &c)
		}
	}
	s.mu.RUnlock()
	slices.SortFunc(matched, func(a, b *models.Document) int {
		return cmp.Or(b.UploadDate.Time().Compare(a.UploadDate.Time()), cmp.Compare(a.DocumentNumber, b.DocumentNumber))
	})
	return listing.Slice(matched, p), len(matched), nil
}

// CountByType reports how many documents use the document type.
func (s *InMemoryStore) CountByType(_ context.Context, typeID int) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, d := range s.documents {
		if d.DocumentTypeID != nil && *d.DocumentTypeID == typeID {
			n++
		}
	}
	return n, nil
}

func sameID(have, want *uuid.UUID) bool {
	return want == nil || (have != nil && *have == *want)
}

func matches(d *models.Document, f models.Filter) bool {
	if f.Search != nil {
		term := strings.ToLower(*f.Search)
		hit := strings.Contains(strings.ToLower(d.DocumentName), term) ||
			strings.Contains(strings.ToLower(d.DocumentNumber), term) ||
			(d.Description != nil && strings.Contains(strings.ToLower(*d.Description), term))
		if !hit {
			return false
		}
	}
	if f.TypeID != nil && (d.DocumentTypeID == nil || *d.DocumentTypeID != *f.TypeID) {
		return false
	}
	if f.IsPublic != nil && d.IsPublic != *f.IsPublic {
		return false
	}
	return sameID(d.OrganizationID, f.OrganizationID) &&
		sameID(d.AgreementID, f.AgreementID) &&
		sameID(d.ElectionID, f.ElectionID) &&
		sameID(d.WorkshopID, f.WorkshopID)
}
