package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	audit "registrar/pkg/platform/audit"
	txcontext "registrar/pkg/platform/tx"
)

// Store implements audit.Store over the audit_events table.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (s *Store) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

// Append inserts the event. Duplicate ids are ignored so replays are safe.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	query := `
		INSERT INTO audit_events (
			id, category, action, actor_id, entity_type, entity_id,
			request_id, ip, detail, occurred_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO NOTHING
	`
	var actor *uuid.UUID
	if event.ActorID != uuid.Nil {
		actor = &event.ActorID
	}
	_, err := s.execer(ctx).ExecContext(ctx, query,
		event.ID,
		string(event.Category),
		string(event.Action),
		actor,
		event.EntityType,
		event.EntityID,
		event.RequestID,
		event.IP,
		event.Detail,
		event.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// ListByActor returns events for an actor, oldest first.
func (s *Store) ListByActor(ctx context.Context, actorID uuid.UUID) ([]audit.Event, error) {
	query := `
		SELECT id, category, action, actor_id, entity_type, entity_id,
		       request_id, ip, detail, occurred_at
		FROM audit_events
		WHERE actor_id = $1
		ORDER BY occurred_at ASC
	`
	rows, err := s.execer(ctx).QueryContext(ctx, query, actorID)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	var events []audit.Event
	for rows.Next() {
		var (
			event    audit.Event
			category string
			action   string
			actor    *uuid.UUID
		)
		if err := rows.Scan(&event.ID, &category, &action, &actor, &event.EntityType,
			&event.EntityID, &event.RequestID, &event.IP, &event.Detail, &event.Timestamp); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		event.Category = audit.Category(category)
		event.Action = audit.Action(action)
		if actor != nil {
			event.ActorID = *actor
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return events, nil
}
