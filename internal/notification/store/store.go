// Package store persists notifications and the inbox rows that address
// them to users.
package store

import (
	"errors"
	"fmt"

	"registrar/pkg/platform/sentinel"
)

// ErrNotAddressed is returned when a notification exists but has no inbox
// row for the user.
var ErrNotAddressed = errors.New("notification not addressed to user")

func notFound(id any) error {
	return fmt.Errorf("notification %v: %w", id, sentinel.ErrNotFound)
}
