package store

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"registrar/internal/training/models"
	"registrar/pkg/platform/listing"
	"registrar/pkg/platform/sentinel"
)

type InMemoryStore struct {
	mu           sync.RWMutex
	workshops    map[uuid.UUID]*models.Workshop
	participants map[uuid.UUID]*models.Participant
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		workshops:    make(map[uuid.UUID]*models.Workshop),
		participants: make(map[uuid.UUID]*models.Participant),
	}
}

func notFound(what string, id any) error {
	return fmt.Errorf("%s %v: %w", what, id, sentinel.ErrNotFound)
}

func (s *InMemoryStore) Create(_ context.Context, w *models.Workshop) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *w
	s.workshops[w.ID] = &c
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id uuid.UUID) (*models.Workshop, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.workshops[id]
	if !ok {
		return nil, notFound("workshop", id)
	}
	c := *w
	return &c, nil
}

func (s *InMemoryStore) Update(_ context.Context, w *models.Workshop) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.workshops[w.ID]; !ok {
		return notFound("workshop", w.ID)
	}
	c := *w
	s.workshops[w.ID] = &c
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.workshops[id]; !ok {
		return notFound("workshop", id)
	}
	delete(s.workshops, id)
	for pid, p := range s.participants {
		if p.WorkshopID == id {
			delete(s.participants, pid)
		}
	}
	return nil
}

func (s *InMemoryStore) List(_ context.Context, f models.Filter, p listing.Page) ([]*models.Workshop, int, error) {
	s.mu.RLock()
	var matched []*models.Workshop
	for _, w := range s.workshops {
		if matches(w, f) {
			c := *w
			matched = append(matched, &c)
		}
	}
	s.mu.RUnlock()
	slices.SortFunc(matched, func(a, b *models.Workshop) int {
		return cmp.Or(b.StartDate.Time().Compare(a.StartDate.Time()), cmp.Compare(a.WorkshopName, b.WorkshopName))
	})
	return listing.Slice(matched, p), len(matched), nil
}

func matches(w *models.Workshop, f models.Filter) bool {
	if f.Search != nil {
		term := strings.ToLower(*f.Search)
		hit := strings.Contains(strings.ToLower(w.WorkshopName), term) ||
			(w.Facilitator != nil && strings.Contains(strings.ToLower(*w.Facilitator), term)) ||
			(w.Location != nil && strings.Contains(strings.ToLower(*w.Location), term))
		if !hit {
			return false
		}
	}
	if f.Status != nil && w.Status != *f.Status {
		return false
	}
	if f.TypeID != nil && (w.TrainingTypeID == nil || *w.TrainingTypeID != *f.TypeID) {
		return false
	}
	if f.DateFrom != nil && w.StartDate.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && w.StartDate.After(*f.DateTo) {
		return false
	}
	return true
}

func (s *InMemoryStore) ListParticipants(_ context.Context, workshopID uuid.UUID) ([]models.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Participant{}
	for _, p := range s.participants {
		if p.WorkshopID == workshopID {
			out = append(out, *p)
		}
	}
	slices.SortFunc(out, func(a, b models.Participant) int {
		return cmp.Or(cmp.Compare(a.LastName, b.LastName), cmp.Compare(a.FirstName, b.FirstName))
	})
	return out, nil
}

func (s *InMemoryStore) FindParticipant(_ context.Context, id uuid.UUID) (*models.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.participants[id]
	if !ok {
		return nil, notFound("participant", id)
	}
	c := *p
	return &c, nil
}

// AddParticipant enrols p unless the workshop has reached its capacity.
func (s *InMemoryStore) AddParticipant(_ context.Context, p *models.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.workshops[p.WorkshopID]
	if !ok {
		return fmt.Errorf("workshop %v: %w", p.WorkshopID, sentinel.ErrReferenced)
	}
	if w.MaxParticipants != nil {
		n := 0
		for _, existing := range s.participants {
			if existing.WorkshopID == p.WorkshopID {
				n++
			}
		}
		if n >= *w.MaxParticipants {
			return ErrWorkshopFull
		}
	}
	c := *p
	s.participants[p.ID] = &c
	return nil
}

func (s *InMemoryStore) UpdateParticipant(_ context.Context, p *models.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.participants[p.ID]; !ok {
		return notFound("participant", p.ID)
	}
	c := *p
	s.participants[p.ID] = &c
	return nil
}

func (s *InMemoryStore) DeleteParticipant(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.participants[id]; !ok {
		return notFound("participant", id)
	}
	delete(s.participants, id)
	return nil
}
