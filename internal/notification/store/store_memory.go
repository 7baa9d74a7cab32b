package store

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"registrar/internal/notification/models"
	"registrar/pkg/platform/listing"
)

type inboxKey struct {
	user, notification uuid.UUID
}

type inboxRow struct {
	isRead bool
	readAt *time.Time
}

type InMemoryStore struct {
	mu            sync.RWMutex
	notifications map[uuid.UUID]*models.Notification
	inbox         map[inboxKey]*inboxRow
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		notifications: make(map[uuid.UUID]*models.Notification),
		inbox:         make(map[inboxKey]*inboxRow),
	}
}

// Create stores n and one unread inbox row per recipient.
func (s *InMemoryStore) Create(_ context.Context, n *models.Notification, userIDs []uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *n
	s.notifications[n.ID] = &c
	for _, id := range userIDs {
		s.inbox[inboxKey{id, n.ID}] = &inboxRow{}
	}
	return nil
}

func (s *InMemoryStore) delivery(id, userID uuid.UUID) (*models.Delivery, error) {
	n, ok := s.notifications[id]
	if !ok {
		return nil, notFound(id)
	}
	row, ok := s.inbox[inboxKey{userID, id}]
	if !ok {
		return nil, ErrNotAddressed
	}
	return &models.Delivery{Notification: *n, IsRead: row.isRead, ReadAt: row.readAt}, nil
}

func (s *InMemoryStore) Delivery(_ context.Context, id, userID uuid.UUID) (*models.Delivery, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.delivery(id, userID)
}

func (s *InMemoryStore) MarkRead(_ context.Context, id, userID uuid.UUID, at time.Time) (*models.Delivery, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.delivery(id, userID); err != nil {
		return nil, err
	}
	row := s.inbox[inboxKey{userID, id}]
	if !row.isRead {
		row.isRead, row.readAt = true, &at
	}
	return s.delivery(id, userID)
}

func (s *InMemoryStore) MarkAllRead(_ context.Context, userID uuid.UUID, at time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for k, row := range s.inbox {
		if k.user == userID && !row.isRead {
			row.isRead, row.readAt = true, &at
			n++
		}
	}
	return n, nil
}

func (s *InMemoryStore) Inbox(_ context.Context, userID uuid.UUID, f models.Filter, p listing.Page) ([]models.Delivery, int, error) {
	s.mu.RLock()
	var matched []models.Delivery
	for k, row := range s.inbox {
		if k.user != userID {
			continue
		}
		n := s.notifications[k.notification]
		if f.IsRead != nil && row.isRead != *f.IsRead {
			continue
		}
		if f.IsUrgent != nil && n.IsUrgent != *f.IsUrgent {
			continue
		}
		matched = append(matched, models.Delivery{Notification: *n, IsRead: row.isRead, ReadAt: row.readAt})
	}
	s.mu.RUnlock()
	slices.SortFunc(matched, func(a, b models.Delivery) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(a.ID.String(), b.ID.String()))
	})
	return listing.Slice(matched, p), len(matched), nil
}

func (s *InMemoryStore) UnreadCount(_ context.Context, userID uuid.UUID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for k, row := range s.inbox {
		if k.user == userID && !row.isRead {
			n++
		}
	}
	return n, nil
}

// Delete removes the notification and every inbox row for it.
func (s *InMemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.notifications[id]; !ok {
		return notFound(id)
	}
	delete(s.notifications, id)
	for k := range s.inbox {
		if k.notification == id {
			delete(s.inbox, k)
		}
	}
	return nil
}
