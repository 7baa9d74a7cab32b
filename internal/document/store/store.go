// Package store persists document metadata.
package store

import (
	"fmt"

	"registrar/pkg/platform/sentinel"
)

var ErrNumberTaken = fmt.Errorf("document number taken: %w", sentinel.ErrConflict)
