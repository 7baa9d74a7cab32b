package audit

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"registrar/pkg/requestcontext"
)

// Emitter accepts events for asynchronous delivery.
type Emitter interface {
	Emit(ctx context.Context, event Event) error
}

// Record writes ev as an audit log line and hands it to em. Actor, request id
// and client IP are taken from ctx when the event leaves them empty. Delivery
// failures are logged and never returned.
func Record(ctx context.Context, logger *slog.Logger, em Emitter, ev Event, attrs ...any) {
	if ev.ActorID == uuid.Nil {
		ev.ActorID = requestcontext.UserID(ctx)
	}
	if ev.RequestID == "" {
		ev.RequestID = requestcontext.RequestID(ctx)
	}
	if ev.IP == "" {
		ev.IP = requestcontext.ClientIP(ctx)
	}

	if logger != nil {
		args := append([]any{
			"event", string(ev.Action),
			"log_type", "audit",
			"request_id", ev.RequestID,
		}, attrs...)
		if ev.EntityType != "" {
			args = append(args, "entity_type", ev.EntityType, "entity_id", ev.EntityID)
		}
		if ev.ActorID != uuid.Nil {
			args = append(args, "actor_id", ev.ActorID.String())
		}
		logger.InfoContext(ctx, string(ev.Action), args...)
	}
	if em == nil {
		return
	}
	if err := em.Emit(ctx, ev); err != nil && logger != nil {
		logger.WarnContext(ctx, "audit emit failed", "event", string(ev.Action), "error", err)
	}
}
