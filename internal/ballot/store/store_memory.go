package store

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"registrar/internal/ballot/models"
	"registrar/pkg/platform/listing"
	"registrar/pkg/platform/sentinel"
)

type tallyKey struct {
	election, position, candidate uuid.UUID
}

// InMemoryStore keeps elections with cascading positions, candidates and
// results. Results are unique per tally key.
type InMemoryStore struct {
	mu         sync.RWMutex
	elections  map[uuid.UUID]*models.Election
	positions  map[uuid.UUID]*models.Position
	candidates map[uuid.UUID]*models.Candidate
	results    map[uuid.UUID]*models.Result
	tallies    map[tallyKey]uuid.UUID
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		elections:  make(map[uuid.UUID]*models.Election),
		positions:  make(map[uuid.UUID]*models.Position),
		candidates: make(map[uuid.UUID]*models.Candidate),
		results:    make(map[uuid.UUID]*models.Result),
		tallies:    make(map[tallyKey]uuid.UUID),
	}
}

func notFound(what string, id any) error {
	return fmt.Errorf("%s %v: %w", what, id, sentinel.ErrNotFound)
}

func (s *InMemoryStore) checkNumber(e *models.Election) error {
	for _, existing := range s.elections {
		if existing.ID != e.ID && existing.ElectionNumber == e.ElectionNumber {
			return ErrNumberTaken
		}
	}
	return nil
}

func (s *InMemoryStore) Create(_ context.Context, e *models.Election) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkNumber(e); err != nil {
		return err
	}
	c := *e
	s.elections[e.ID] = &c
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id uuid.UUID) (*models.Election, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.elections[id]
	if !ok {
		return nil, notFound("election", id)
	}
	c := *e
	return &c, nil
}

func (s *InMemoryStore) FindByNumber(_ context.Context, number string) (*models.Election, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.elections {
		if e.ElectionNumber == number {
			c := *e
			return &c, nil
		}
	}
	return nil, notFound("election", number)
}

func (s *InMemoryStore) Update(_ context.Context, e *models.Election) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.elections[e.ID]; !ok {
		return notFound("election", e.ID)
	}
	if err := s.checkNumber(e); err != nil {
		return err
	}
	c := *e
	s.elections[e.ID] = &c
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.elections[id]; !ok {
		return notFound("election", id)
	}
	delete(s.elections, id)
	for pid, p := range s.positions {
		if p.ElectionID == id {
			s.deletePosition(pid)
		}
	}
	return nil
}

// deletePosition removes a position with its candidates and results.
func (s *InMemoryStore) deletePosition(id uuid.UUID) {
	delete(s.positions, id)
	for cid, c := range s.candidates {
		if c.PositionID == id {
			delete(s.candidates, cid)
		}
	}
	for rid, r := range s.results {
		if r.PositionID == id {
			s.deleteResult(rid)
		}
	}
}

func (s *InMemoryStore) deleteResult(id uuid.UUID) {
	r := s.results[id]
	delete(s.tallies, tallyKey{r.ElectionID, r.PositionID, r.CandidateID})
	delete(s.results, id)
}

func (s *InMemoryStore) List(_ context.Context, f models.Filter, p listing.Page) ([]*models.Election, int, error) {
	s.mu.RLock()
	var matched []*models.Election
	for _, e := range s.elections {
		if matches(e, f) {
			c := *e
			matched = append(matched, &c)
		}
	}
	s.mu.RUnlock()
	slices.SortFunc(matched, func(a, b *models.Election) int {
		return cmp.Or(b.ElectionDate.Time().Compare(a.ElectionDate.Time()), cmp.Compare(a.ElectionNumber, b.ElectionNumber))
	})
	return listing.Slice(matched, p), len(matched), nil
}

func matches(e *models.Election, f models.Filter) bool {
	if f.Search != nil {
		term := strings.ToLower(*f.Search)
		if !strings.Contains(strings.ToLower(e.ElectionNumber), term) && !strings.Contains(strings.ToLower(e.Purpose), term) {
			return false
		}
	}
	if f.Status != nil && e.Status != *f.Status {
		return false
	}
	if f.OrganizationID != nil && e.OrganizationID != *f.OrganizationID {
		return false
	}
	if f.DateFrom != nil && e.ElectionDate.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && e.ElectionDate.After(*f.DateTo) {
		return false
	}
	return true
}

func (s *InMemoryStore) ListPositions(_ context.Context, electionID uuid.UUID) ([]models.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Position{}
	for _, p := range s.positions {
		if p.ElectionID == electionID {
			out = append(out, *p)
		}
	}
	slices.SortFunc(out, func(a, b models.Position) int { return cmp.Compare(a.PositionName, b.PositionName) })
	return out, nil
}

func (s *InMemoryStore) FindPosition(_ context.Context, id uuid.UUID) (*models.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.positions[id]
	if !ok {
		return nil, notFound("position", id)
	}
	c := *p
	return &c, nil
}

func (s *InMemoryStore) CreatePosition(_ context.Context, p *models.Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.elections[p.ElectionID]; !ok {
		return fmt.Errorf("election %v: %w", p.ElectionID, sentinel.ErrReferenced)
	}
	c := *p
	s.positions[p.ID] = &c
	return nil
}

func (s *InMemoryStore) UpdatePosition(_ context.Context, p *models.Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.positions[p.ID]; !ok {
		return notFound("position", p.ID)
	}
	c := *p
	s.positions[p.ID] = &c
	return nil
}

func (s *InMemoryStore) DeletePosition(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.positions[id]; !ok {
		return notFound("position", id)
	}
	s.deletePosition(id)
	return nil
}

func (s *InMemoryStore) ListCandidates(_ context.Context, positionID uuid.UUID) ([]models.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Candidate{}
	for _, c := range s.candidates {
		if c.PositionID == positionID {
			out = append(out, *c)
		}
	}
	slices.SortFunc(out, func(a, b models.Candidate) int {
		return cmp.Or(cmp.Compare(a.LastName, b.LastName), cmp.Compare(a.FirstName, b.FirstName))
	})
	return out, nil
}

func (s *InMemoryStore) FindCandidate(_ context.Context, id uuid.UUID) (*models.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.candidates[id]
	if !ok {
		return nil, notFound("candidate", id)
	}
	out := *c
	return &out, nil
}

func (s *InMemoryStore) CreateCandidate(_ context.Context, c *models.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.positions[c.PositionID]; !ok {
		return fmt.Errorf("position %v: %w", c.PositionID, sentinel.ErrReferenced)
	}
	out := *c
	s.candidates[c.ID] = &out
	return nil
}

func (s *InMemoryStore) UpdateCandidate(_ context.Context, c *models.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.candidates[c.ID]; !ok {
		return notFound("candidate", c.ID)
	}
	out := *c
	s.candidates[c.ID] = &out
	return nil
}

func (s *InMemoryStore) DeleteCandidate(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.candidates[id]; !ok {
		return notFound("candidate", id)
	}
	delete(s.candidates, id)
	for rid, r := range s.results {
		if r.CandidateID == id {
			s.deleteResult(rid)
		}
	}
	return nil
}

func (s *InMemoryStore) ListResults(_ context.Context, electionID uuid.UUID) ([]models.ResultView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.ResultView{}
	for _, r := range s.results {
		if r.ElectionID != electionID {
			continue
		}
		v := models.ResultView{Result: *r}
		if p, ok := s.positions[r.PositionID]; ok {
			v.PositionName = p.PositionName
		}
		if c, ok := s.candidates[r.CandidateID]; ok {
			v.CandidateName = c.FirstName + " " + c.LastName
		}
		out = append(out, v)
	}
	slices.SortFunc(out, func(a, b models.ResultView) int {
		return cmp.Or(cmp.Compare(a.PositionName, b.PositionName), cmp.Compare(b.VotesReceived, a.VotesReceived))
	})
	return out, nil
}

// UpsertResult inserts r or overwrites the tally already recorded for its
// key. It reports whether a new row was created; on overwrite r takes the
// existing id and creation time.
func (s *InMemoryStore) UpsertResult(_ context.Context, r *models.Result) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := tallyKey{r.ElectionID, r.PositionID, r.CandidateID}
	if id, ok := s.tallies[key]; ok {
		existing := s.results[id]
		r.ID, r.CreatedAt = existing.ID, existing.CreatedAt
		c := *r
		s.results[id] = &c
		return false, nil
	}
	c := *r
	s.results[r.ID] = &c
	s.tallies[key] = r.ID
	return true, nil
}

func (s *InMemoryStore) DeleteResult(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.results[id]; !ok {
		return notFound("result", id)
	}
	s.deleteResult(id)
	return nil
}
