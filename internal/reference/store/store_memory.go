package store

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"registrar/internal/reference"
	"registrar/pkg/platform/sentinel"
)

// InMemoryStore keeps lookups in process. It backs unit and router tests.
type InMemoryStore struct {
	mu           sync.RWMutex
	roles        []reference.Role
	positions    []reference.Position
	regions      []reference.Region
	districts    []reference.District
	types        map[reference.Kind][]reference.LookupType
	requirements []reference.Requirement
	seq          int
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{types: make(map[reference.Kind][]reference.LookupType)}
}

// NewSeededInMemory returns a store loaded with the default seed.
func NewSeededInMemory(ctx context.Context) (*InMemoryStore, error) {
	seed, err := reference.DefaultSeed()
	if err != nil {
		return nil, err
	}
	s := NewInMemory()
	if err := reference.Apply(ctx, s, seed); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *InMemoryStore) next() int {
	s.seq++
	return s.seq
}

func notFound(what string, key any) error {
	return fmt.Errorf("%s %v: %w", what, key, sentinel.ErrNotFound)
}

func (s *InMemoryStore) ListRoles(_ context.Context) ([]reference.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := slices.Clone(s.roles)
	slices.SortFunc(out, func(a, b reference.Role) int { return cmp.Compare(a.RoleName, b.RoleName) })
	return out, nil
}

func (s *InMemoryStore) RoleByID(_ context.Context, id int) (*reference.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.roles {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, notFound("role", id)
}

func (s *InMemoryStore) RoleByCode(_ context.Context, code string) (*reference.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.roles {
		if r.RoleCode == code {
			return &r, nil
		}
	}
	return nil, notFound("role", code)
}

func (s *InMemoryStore) ListPositions(_ context.Context) ([]reference.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := slices.Clone(s.positions)
	slices.SortFunc(out, func(a, b reference.Position) int { return cmp.Compare(a.PositionName, b.PositionName) })
	return out, nil
}

func (s *InMemoryStore) PositionByID(_ context.Context, id int) (*reference.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.positions {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, notFound("position", id)
}

func (s *InMemoryStore) PositionByCode(_ context.Context, code string) (*reference.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.positions {
		if p.PositionCode == code {
			return &p, nil
		}
	}
	return nil, notFound("position", code)
}

func (s *InMemoryStore) ListRegions(_ context.Context) ([]reference.Region, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := slices.Clone(s.regions)
	slices.SortFunc(out, func(a, b reference.Region) int { return cmp.Compare(a.RegionName, b.RegionName) })
	return out, nil
}

func (s *InMemoryStore) regionByID(id int) *reference.Region {
	for _, r := range s.regions {
		if r.ID == id {
			return &r
		}
	}
	return nil
}

func (s *InMemoryStore) ListDistricts(_ context.Context, regionID *int) ([]reference.District, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]reference.District, 0, len(s.districts))
	for _, d := range s.districts {
		if regionID != nil && d.RegionID != *regionID {
			continue
		}
		d.Region = s.regionByID(d.RegionID)
		out = append(out, d)
	}
	slices.SortFunc(out, func(a, b reference.District) int { return cmp.Compare(a.DistrictName, b.DistrictName) })
	return out, nil
}

func (s *InMemoryStore) DistrictByID(_ context.Context, id int) (*reference.District, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.districts {
		if d.ID == id {
			d.Region = s.regionByID(d.RegionID)
			return &d, nil
		}
	}
	return nil, notFound("district", id)
}

func (s *InMemoryStore) ListTypes(_ context.Context, kind reference.Kind) ([]reference.LookupType, error) {
	if _, err := kind.Table(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := slices.Clone(s.types[kind])
	slices.SortFunc(out, func(a, b reference.LookupType) int { return cmp.Compare(a.TypeName, b.TypeName) })
	return out, nil
}

func (s *InMemoryStore) TypeByID(_ context.Context, kind reference.Kind, id int) (*reference.LookupType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.types[kind] {
		if t.ID == id {
			return &t, nil
		}
	}
	return nil, notFound(string(kind)+" type", id)
}

func (s *InMemoryStore) ListRequirements(_ context.Context) ([]reference.Requirement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := slices.Clone(s.requirements)
	slices.SortFunc(out, func(a, b reference.Requirement) int { return cmp.Compare(a.RequirementName, b.RequirementName) })
	return out, nil
}

func (s *InMemoryStore) RequirementByID(_ context.Context, id int) (*reference.Requirement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.requirements {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, notFound("requirement", id)
}

func (s *InMemoryStore) UpsertRole(_ context.Context, r reference.Role) (reference.Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.roles {
		if existing.RoleCode == r.RoleCode {
			r.ID = existing.ID
			s.roles[i] = r
			return r, nil
		}
	}
	r.ID = s.next()
	s.roles = append(s.roles, r)
	return r, nil
}

func (s *InMemoryStore) UpsertPosition(_ context.Context, p reference.Position) (reference.Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.positions {
		if existing.PositionCode == p.PositionCode {
			p.ID = existing.ID
			s.positions[i] = p
			return p, nil
		}
	}
	p.ID = s.next()
	s.positions = append(s.positions, p)
	return p, nil
}

func (s *InMemoryStore) UpsertRegion(_ context.Context, name string) (reference.Region, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.regions {
		if existing.RegionName == name {
			return existing, nil
		}
	}
	r := reference.Region{ID: s.next(), RegionName: name}
	s.regions = append(s.regions, r)
	return r, nil
}

func (s *InMemoryStore) UpsertDistrict(_ context.Context, regionID int, name string) (reference.District, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.regionByID(regionID) == nil {
		return reference.District{}, fmt.Errorf("region %d: %w", regionID, sentinel.ErrReferenced)
	}
	for _, existing := range s.districts {
		if existing.RegionID == regionID && existing.DistrictName == name {
			return existing, nil
		}
	}
	d := reference.District{ID: s.next(), DistrictName: name, RegionID: regionID}
	s.districts = append(s.districts, d)
	return d, nil
}

func (s *InMemoryStore) UpsertType(_ context.Context, kind reference.Kind, t reference.LookupType) (reference.LookupType, error) {
	if _, err := kind.Table(); err != nil {
		return reference.LookupType{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.types[kind] {
		if existing.TypeName == t.TypeName {
			t.ID = existing.ID
			s.types[kind][i] = t
			return t, nil
		}
	}
	t.ID = s.next()
	s.types[kind] = append(s.types[kind], t)
	return t, nil
}

func (s *InMemoryStore) UpsertRequirement(_ context.Context, r reference.Requirement) (reference.Requirement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.requirements {
		if existing.RequirementName == r.RequirementName {
			r.ID = existing.ID
			s.requirements[i] = r
			return r, nil
		}
	}
	r.ID = s.next()
	s.requirements = append(s.requirements, r)
	return r, nil
}

func (s *InMemoryStore) typeNameTaken(kind reference.Kind, name string, exceptID int) bool {
	for _, t := range s.types[kind] {
		if t.ID != exceptID && strings.EqualFold(t.TypeName, name) {
			return true
		}
	}
	return false
}

func (s *InMemoryStore) CreateType(_ context.Context, kind reference.Kind, t *reference.LookupType) error {
	if _, err := kind.Table(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.typeNameTaken(kind, t.TypeName, 0) {
		return fmt.Errorf("%s type %q: %w", kind, t.TypeName, sentinel.ErrConflict)
	}
	t.ID = s.next()
	s.types[kind] = append(s.types[kind], *t)
	return nil
}

func (s *InMemoryStore) UpdateType(_ context.Context, kind reference.Kind, t *reference.LookupType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.types[kind] {
		if existing.ID != t.ID {
			continue
		}
		if s.typeNameTaken(kind, t.TypeName, t.ID) {
			return fmt.Errorf("%s type %q: %w", kind, t.TypeName, sentinel.ErrConflict)
		}
		s.types[kind][i] = *t
		return nil
	}
	return notFound(string(kind)+" type", t.ID)
}

func (s *InMemoryStore) DeleteType(_ context.Context, kind reference.Kind, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.types[kind] {
		if existing.ID == id {
			s.types[kind] = slices.Delete(s.types[kind], i, i+1)
			return nil
		}
	}
	return notFound(string(kind)+" type", id)
}
