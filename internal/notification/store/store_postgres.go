package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"registrar/internal/notification/models"
	"registrar/internal/platform/postgres"
	"registrar/pkg/platform/listing"
	"registrar/pkg/platform/sentinel"
	"registrar/pkg/platform/tx"
)

// PostgresStore keeps notifications in notifications and their recipients
// in user_notifications. Inbox rows cascade with the notification.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const inboxFrom = "user_notifications un JOIN notifications n ON n.id = un.notification_id"

var deliveryColumns = []string{
	"n.id", "n.notification_type", "n.title", "n.message", "n.related_entity_type", "n.related_entity_id",
	"n.is_urgent", "n.created_at", "n.expiry_date", "un.is_read", "un.read_at",
}

func scanDelivery(row postgres.Scanner) (models.Delivery, error) {
	var d models.Delivery
	err := row.Scan(&d.ID, &d.NotificationType, &d.Title, &d.Message, &d.RelatedEntityType, &d.RelatedEntityID,
		&d.IsUrgent, &d.CreatedAt, &d.ExpiryDate, &d.IsRead, &d.ReadAt)
	return d, err
}

// Create inserts n and fans it out to userIDs with a single array insert.
func (s *PostgresStore) Create(ctx context.Context, n *models.Notification, userIDs []uuid.UUID) error {
	ids := make([]string, len(userIDs))
	for i, id := range userIDs {
		ids[i] = id.String()
	}
	err := tx.SQLRunner{DB: s.db}.RunInTx(ctx, func(ctx context.Context) error {
		conn := postgres.Conn(ctx, s.db)
		_, err := postgres.Exec(ctx, conn, postgres.Builder.Insert("notifications").SetMap(map[string]any{
			"id":                  n.ID,
			"notification_type":   n.NotificationType,
			"title":               n.Title,
			"message":             n.Message,
			"related_entity_type": n.RelatedEntityType,
			"related_entity_id":   n.RelatedEntityID,
			"is_urgent":           n.IsUrgent,
			"created_at":          n.CreatedAt,
			"expiry_date":         n.ExpiryDate,
		}))
		if err != nil {
			return err
		}
		_, err = conn.ExecContext(ctx,
			`INSERT INTO user_notifications (user_id, notification_id, created_at)
			 SELECT unnest($1::uuid[]), $2, $3`, pq.Array(ids), n.ID, n.CreatedAt)
		return postgres.Classify(err)
	})
	if err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

func (s *PostgresStore) Delivery(ctx context.Context, id, userID uuid.UUID) (*models.Delivery, error) {
	conn := postgres.Conn(ctx, s.db)
	d, err := postgres.Get(ctx, conn, postgres.Builder.Select(deliveryColumns...).From(inboxFrom).
		Where(sq.Eq{"un.notification_id": id, "un.user_id": userID}), scanDelivery)
	if err == nil {
		return &d, nil
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, fmt.Errorf("find delivery: %w", err)
	}
	exists, err := postgres.Exists(ctx, conn, "notifications", sq.Eq{"id": id})
	if err != nil {
		return nil, fmt.Errorf("find notification: %w", err)
	}
	if !exists {
		return nil, notFound(id)
	}
	return nil, ErrNotAddressed
}

func (s *PostgresStore) MarkRead(ctx context.Context, id, userID uuid.UUID, at time.Time) (*models.Delivery, error) {
	_, err := postgres.Exec(ctx, postgres.Conn(ctx, s.db), postgres.Builder.Update("user_notifications").
		Set("is_read", true).Set("read_at", at).
		Where(sq.Eq{"notification_id": id, "user_id": userID, "is_read": false}))
	if err != nil {
		return nil, fmt.Errorf("mark notification read: %w", err)
	}
	return s.Delivery(ctx, id, userID)
}

func (s *PostgresStore) MarkAllRead(ctx context.Context, userID uuid.UUID, at time.Time) (int, error) {
	res, err := postgres.Exec(ctx, postgres.Conn(ctx, s.db), postgres.Builder.Update("user_notifications").
		Set("is_read", true).Set("read_at", at).
		Where(sq.Eq{"user_id": userID, "is_read": false}))
	if err != nil {
		return 0, fmt.Errorf("mark all read: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("mark all read: %w", err)
	}
	return int(n), nil
}

func (s *PostgresStore) Inbox(ctx context.Context, userID uuid.UUID, f models.Filter, p listing.Page) ([]models.Delivery, int, error) {
	where := sq.And{sq.Eq{"un.user_id": userID}}
	if f.IsRead != nil {
		where = append(where, sq.Eq{"un.is_read": *f.IsRead})
	}
	if f.IsUrgent != nil {
		where = append(where, sq.Eq{"n.is_urgent": *f.IsUrgent})
	}
	out, total, err := postgres.Paged(ctx, postgres.Conn(ctx, s.db), inboxFrom, where, deliveryColumns,
		[]string{"n.created_at DESC", "n.id"}, p, scanDelivery)
	if err != nil {
		return nil, 0, fmt.Errorf("list inbox: %w", err)
	}
	return out, total, nil
}

func (s *PostgresStore) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	n, err := postgres.Count(ctx, postgres.Conn(ctx, s.db), postgres.Builder.Select("count(*)").
		From("user_notifications").Where(sq.Eq{"user_id": userID, "is_read": false}))
	if err != nil {
		return 0, fmt.Errorf("count unread: %w", err)
	}
	return n, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id uuid.UUID) error {
	err := postgres.ExecOne(ctx, postgres.Conn(ctx, s.db),
		postgres.Builder.Delete("notifications").Where(sq.Eq{"id": id}), "notification")
	if err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	return nil
}
