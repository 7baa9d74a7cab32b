package store

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"registrar/internal/settings/models"
)

type InMemoryStore struct {
	mu       sync.RWMutex
	settings map[string]models.Setting
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{settings: make(map[string]models.Setting)}
}

func (s *InMemoryStore) Create(_ context.Context, st *models.Setting) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.settings[st.SettingKey]; ok {
		return ErrKeyTaken
	}
	s.settings[st.SettingKey] = *st
	return nil
}

func (s *InMemoryStore) Find(_ context.Context, key string) (*models.Setting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.settings[key]
	if !ok {
		return nil, notFound(key)
	}
	return &st, nil
}

func (s *InMemoryStore) Update(_ context.Context, st *models.Setting) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.settings[st.SettingKey]; !ok {
		return notFound(st.SettingKey)
	}
	s.settings[st.SettingKey] = *st
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.settings[key]; !ok {
		return notFound(key)
	}
	delete(s.settings, key)
	return nil
}

func (s *InMemoryStore) List(_ context.Context) ([]models.Setting, error) {
	s.mu.RLock()
	out := make([]models.Setting, 0, len(s.settings))
	for _, st := range s.settings {
		out = append(out, st)
	}
	s.mu.RUnlock()
	slices.SortFunc(out, func(a, b models.Setting) int { return cmp.Compare(a.SettingKey, b.SettingKey) })
	return out, nil
}
