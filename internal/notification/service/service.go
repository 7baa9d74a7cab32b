// Package service implements notifications: broadcast to a set of users and
// per-user inboxes with read tracking.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	authmodels "registrar/internal/auth/models"
	"registrar/internal/notification/models"
	notificationStore "registrar/internal/notification/store"
	"registrar/internal/platform/tracing"
	"registrar/internal/resource"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/platform/dates"
	"registrar/pkg/platform/listing"
	"registrar/pkg/platform/patch"
	"registrar/pkg/platform/sentinel"
	"registrar/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store Users

type Store interface {
	Create(ctx context.Context, n *models.Notification, userIDs []uuid.UUID) error
	Delivery(ctx context.Context, id, userID uuid.UUID) (*models.Delivery, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID, at time.Time) (*models.Delivery, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID, at time.Time) (int, error)
	Inbox(ctx context.Context, userID uuid.UUID, f models.Filter, p listing.Page) ([]models.Delivery, int, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Users interface {
	FindByID(ctx context.Context, id uuid.UUID) (*authmodels.User, error)
}

type Service struct {
	store Store
	users Users
	deps  resource.Deps
}

func New(store Store, users Users, opts ...resource.Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("notification store is required")
	}
	if users == nil {
		return nil, errors.New("user store is required")
	}
	return &Service{store: store, users: users, deps: resource.NewDeps(opts...)}, nil
}

const (
	entity          = "notification"
	msgNotFound     = "Notification not found"
	msgNotAddressed = "You do not have access to this notification"
	msgUsers        = "Invalid userIds"
)

func caller(ctx context.Context) (uuid.UUID, error) {
	c, ok := requestcontext.CallerFrom(ctx)
	if !ok {
		return uuid.Nil, dErrors.New(dErrors.CodeUnauthorized, "Unauthorized")
	}
	return c.UserID, nil
}

func deliveryError(err error) error {
	if errors.Is(err, notificationStore.ErrNotAddressed) {
		return dErrors.Wrap(err, dErrors.CodeForbidden, msgNotAddressed)
	}
	return resource.NotFound(err, msgNotFound)
}

// Inbox lists the caller's notifications, newest first, with their unread
// total.
func (s *Service) Inbox(ctx context.Context, f models.Filter, p listing.Page) (*models.Inbox, error) {
	userID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	items, total, err := s.store.Inbox(ctx, userID, f, p)
	if err != nil {
		return nil, resource.Internal(err, "list inbox")
	}
	unread, err := s.store.UnreadCount(ctx, userID)
	if err != nil {
		return nil, resource.Internal(err, "count unread")
	}
	return &models.Inbox{Result: listing.NewResult(items, total, p), UnreadCount: unread}, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Delivery, error) {
	userID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	d, err := s.store.Delivery(ctx, id, userID)
	if err != nil {
		return nil, deliveryError(err)
	}
	return d, nil
}

// MarkRead marks one of the caller's notifications read. Repeating it keeps
// the first read time.
func (s *Service) MarkRead(ctx context.Context, id uuid.UUID) (*models.Delivery, error) {
	userID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	d, err := s.store.MarkRead(ctx, id, userID, requestcontext.Now(ctx))
	if err != nil {
		return nil, deliveryError(err)
	}
	return d, nil
}

// MarkAllRead returns how many notifications changed state.
func (s *Service) MarkAllRead(ctx context.Context) (int, error) {
	userID, err := caller(ctx)
	if err != nil {
		return 0, err
	}
	n, err := s.store.MarkAllRead(ctx, userID, requestcontext.Now(ctx))
	if err != nil {
		return 0, resource.Internal(err, "mark all read")
	}
	return n, nil
}

// Create stores a notification and addresses it to every distinct user in
// userIds.
func (s *Service) Create(ctx context.Context, req models.NotificationRequest) (_ *models.Broadcast, err error) {
	ctx, span := tracing.Start(ctx, entity, "create")
	defer func() { tracing.End(span, err) }()

	if err := patch.CheckRequired(
		patch.Req("notificationType", req.NotificationType),
		patch.Req("title", req.Title),
		patch.Req("message", req.Message),
		patch.Req("userIds", req.UserIDs),
	); err != nil {
		return nil, err
	}
	recipients, err := s.recipients(ctx, req.UserIDs.Value)
	if err != nil {
		return nil, err
	}
	relatedID, err := resource.OptionalID("relatedEntityId", req.RelatedEntityID)
	if err != nil {
		return nil, err
	}
	now := requestcontext.Now(ctx)
	expiry := now.Add(models.DefaultExpiry)
	if !req.ExpiryDate.Blank() {
		if expiry, err = dates.ParseTime(req.ExpiryDate.Value); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "Invalid expiryDate format")
		}
	}

	n := &models.Notification{
		ID:                uuid.New(),
		NotificationType:  req.NotificationType.Value,
		Title:             req.Title.Value,
		Message:           req.Message.Value,
		RelatedEntityType: req.RelatedEntityType.Ptr(),
		RelatedEntityID:   relatedID,
		IsUrgent:          req.IsUrgent.Or(false),
		CreatedAt:         now,
		ExpiryDate:        &expiry,
	}
	if err := s.store.Create(ctx, n, recipients); err != nil {
		if errors.Is(err, sentinel.ErrReferenced) {
			return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, msgUsers)
		}
		return nil, resource.Internal(err, "create notification")
	}
	s.deps.Created(ctx, entity, n.ID)
	return &models.Broadcast{Notification: n, UserCount: len(recipients)}, nil
}

// recipients parses, deduplicates and resolves the user ids, keeping their
// first-seen order.
func (s *Service) recipients(ctx context.Context, raw []string) ([]uuid.UUID, error) {
	seen := make(map[uuid.UUID]bool, len(raw))
	out := make([]uuid.UUID, 0, len(raw))
	for _, v := range raw {
		id, err := resource.ParseID("userIds", v)
		if err != nil {
			return nil, err
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		if _, err := s.users.FindByID(ctx, id); err != nil {
			return nil, resource.InvalidReference(err, "userIds")
		}
		out = append(out, id)
	}
	if len(out) == 0 {
		return nil, dErrors.New(dErrors.CodeBadRequest, "userIds is required")
	}
	return out, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return resource.NotFound(err, msgNotFound)
	}
	s.deps.Deleted(ctx, entity, id)
	return nil
}
