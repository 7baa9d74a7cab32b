// Package store persists training workshops and participants.
package store

import (
	"fmt"

	"registrar/pkg/platform/sentinel"
)

// ErrWorkshopFull is returned when a participant would exceed the
// workshop's maxParticipants.
var ErrWorkshopFull = fmt.Errorf("workshop is full: %w", sentinel.ErrConflict)
