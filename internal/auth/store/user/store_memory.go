package user

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"registrar/internal/auth/models"
	"registrar/pkg/platform/listing"
	"registrar/pkg/platform/sentinel"
)

// InMemoryUserStore keeps users in a map guarded by a RWMutex. Username and
// email are unique, case-insensitively, among accounts that are not deleted.
type InMemoryUserStore struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*models.User
}

func New() *InMemoryUserStore {
	return &InMemoryUserStore{users: make(map[uuid.UUID]*models.User)}
}

func clone(u *models.User) *models.User {
	c := *u
	return &c
}

func (s *InMemoryUserStore) checkUnique(u *models.User) error {
	for _, existing := range s.users {
		if existing.ID == u.ID || existing.IsDeleted {
			continue
		}
		if strings.EqualFold(existing.Username, u.Username) {
			return ErrUsernameTaken
		}
		if strings.EqualFold(existing.Email, u.Email) {
			return ErrEmailTaken
		}
	}
	return nil
}

func (s *InMemoryUserStore) Create(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; ok {
		return fmt.Errorf("user %s: %w", u.ID, sentinel.ErrConflict)
	}
	if err := s.checkUnique(u); err != nil {
		return err
	}
	s.users[u.ID] = clone(u)
	return nil
}

func (s *InMemoryUserStore) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.users[id]; ok {
		return clone(u), nil
	}
	return nil, fmt.Errorf("user %s: %w", id, sentinel.ErrNotFound)
}

func (s *InMemoryUserStore) findLive(match func(*models.User) bool) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if !u.IsDeleted && match(u) {
			return clone(u), nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	return s.findLive(func(u *models.User) bool { return strings.EqualFold(u.Email, email) })
}

func (s *InMemoryUserStore) FindByUsername(_ context.Context, username string) (*models.User, error) {
	return s.findLive(func(u *models.User) bool { return strings.EqualFold(u.Username, username) })
}

func (s *InMemoryUserStore) Update(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; !ok {
		return fmt.Errorf("user %s: %w", u.ID, sentinel.ErrNotFound)
	}
	if err := s.checkUnique(u); err != nil {
		return err
	}
	s.users[u.ID] = clone(u)
	return nil
}

func (s *InMemoryUserStore) TouchLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return fmt.Errorf("user %s: %w", id, sentinel.ErrNotFound)
	}
	u.LastLogin = &at
	return nil
}

func (s *InMemoryUserStore) SoftDelete(_ context.Context, id uuid.UUID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok || u.IsDeleted {
		return fmt.Errorf("user %s: %w", id, sentinel.ErrNotFound)
	}
	u.IsDeleted = true
	u.Status = models.StatusInactive
	u.UpdatedAt = at
	return nil
}

func (s *InMemoryUserStore) List(_ context.Context, f models.UserFilter, p listing.Page) ([]*models.User, int, error) {
	s.mu.RLock()
	var matched []*models.User
	for _, u := range s.users {
		if u.IsDeleted {
			continue
		}
		if f.Search != nil {
			term := strings.ToLower(*f.Search)
			if !strings.Contains(strings.ToLower(u.Username), term) &&
				!strings.Contains(strings.ToLower(u.Email), term) {
				continue
			}
		}
		if f.Status != nil && !strings.EqualFold(u.Status, *f.Status) {
			continue
		}
		if f.RoleID != nil && (u.RoleID == nil || *u.RoleID != *f.RoleID) {
			continue
		}
		matched = append(matched, clone(u))
	}
	s.mu.RUnlock()

	slices.SortFunc(matched, func(a, b *models.User) int { return cmp.Compare(a.Username, b.Username) })
	return listing.Slice(matched, p), len(matched), nil
}
