package revocation

import (
	"fmt"
	"time"

	"registrar/pkg/platform/sentinel"
)

// Clock returns the current time.
type Clock func() time.Time

// LatencyObserver records how long a revocation lookup took.
type LatencyObserver interface {
	ObserveRevocationCheck(seconds float64)
}

func validateTTL(ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("ttl must be positive: %w", sentinel.ErrInvalidState)
	}
	return nil
}
