// Package store persists system settings.
package store

import (
	"fmt"

	"registrar/pkg/platform/sentinel"
)

var ErrKeyTaken = fmt.Errorf("setting key taken: %w", sentinel.ErrConflict)

func notFound(key string) error {
	return fmt.Errorf("setting %q: %w", key, sentinel.ErrNotFound)
}
