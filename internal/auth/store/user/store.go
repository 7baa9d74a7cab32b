package user

import (
	"fmt"

	"registrar/pkg/platform/sentinel"
)

// Both wrap sentinel.ErrConflict so callers may match either precisely or
// generically.
var (
	ErrUsernameTaken = fmt.Errorf("username taken: %w", sentinel.ErrConflict)
	ErrEmailTaken    = fmt.Errorf("email taken: %w", sentinel.ErrConflict)
)
