// Package store persists agreements, amendments and disputes.
package store

import (
	"fmt"

	"registrar/pkg/platform/sentinel"
)

var (
	ErrNumberTaken        = fmt.Errorf("agreement number taken: %w", sentinel.ErrConflict)
	ErrAmendmentTaken     = fmt.Errorf("amendment number taken: %w", sentinel.ErrConflict)
	ErrDisputeNumberTaken = fmt.Errorf("dispute number taken: %w", sentinel.ErrConflict)
)
