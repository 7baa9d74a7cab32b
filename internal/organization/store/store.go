// Package store persists organizations with their officials and
// constitutions.
package store

import (
	"fmt"

	"registrar/pkg/platform/sentinel"
)

var (
	ErrRegistrationTaken = fmt.Errorf("registration number taken: %w", sentinel.ErrConflict)
	ErrVersionTaken      = fmt.Errorf("constitution version taken: %w", sentinel.ErrConflict)
)
