// Package store persists ballot elections and everything hanging off them.
package store

import (
	"fmt"

	"registrar/pkg/platform/sentinel"
)

var (
	ErrNumberTaken       = fmt.Errorf("election number taken: %w", sentinel.ErrConflict)
	ErrUnknownSupervisor = fmt.Errorf("supervisor: %w", sentinel.ErrReferenced)
)
