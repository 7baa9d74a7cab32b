package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Category classifies audit events by their primary purpose so sinks can
// route and retain them differently.
type Category string

const (
	// CategoryCompliance covers registry changes with regulatory weight:
	// entity creation, update and deletion, user administration.
	CategoryCompliance Category = "compliance"
	// CategorySecurity covers authentication outcomes and credential changes.
	CategorySecurity Category = "security"
	// CategoryOperations covers routine activity.
	CategoryOperations Category = "operations"
)

// Action names what happened.
type Action string

const (
	ActionLoginSucceeded    Action = "login_succeeded"
	ActionLoginFailed       Action = "login_failed"
	ActionLogout            Action = "logout"
	ActionUserRegistered    Action = "user_registered"
	ActionPasswordChanged   Action = "password_changed"
	ActionPasswordResetSent Action = "password_reset_requested"
	ActionPasswordReset     Action = "password_reset"
	ActionUserDeactivated   Action = "user_deactivated"
	ActionRateLimited       Action = "rate_limit_exceeded"
)

// Verb is the mutation applied to a registry entity.
type Verb string

const (
	VerbCreated Verb = "created"
	VerbUpdated Verb = "updated"
	VerbDeleted Verb = "deleted"
)

// EntityAction builds the action for a registry mutation, e.g.
// "organization_created".
func EntityAction(entityType string, verb Verb) Action {
	return Action(entityType + "_" + string(verb))
}

var security = map[Action]bool{
	ActionLoginSucceeded:    true,
	ActionLoginFailed:       true,
	ActionLogout:            true,
	ActionPasswordChanged:   true,
	ActionPasswordResetSent: true,
	ActionPasswordReset:     true,
	ActionRateLimited:       true,
}

// Category returns the category of the action. Entity mutations and user
// administration are compliance events.
func (a Action) Category() Category {
	if security[a] {
		return CategorySecurity
	}
	if a == ActionUserRegistered || a == ActionUserDeactivated {
		return CategoryCompliance
	}
	for _, v := range []Verb{VerbCreated, VerbUpdated, VerbDeleted} {
		if len(a) > len(v) && string(a[len(a)-len(v):]) == string(v) {
			return CategoryCompliance
		}
	}
	return CategoryOperations
}

// Event is emitted from services to capture key actions. It stays
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID         uuid.UUID `json:"id"`
	Category   Category  `json:"category"`
	Action     Action    `json:"action"`
	ActorID    uuid.UUID `json:"actorId"`
	EntityType string    `json:"entityType,omitempty"`
	EntityID   string    `json:"entityId,omitempty"`
	RequestID  string    `json:"requestId,omitempty"`
	IP         string    `json:"ip,omitempty"`
	Detail     string    `json:"detail,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// Lister reads back events recorded for an actor, oldest first.
type Lister interface {
	ListByActor(ctx context.Context, actorID uuid.UUID) ([]Event, error)
}
