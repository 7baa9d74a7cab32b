package revocation

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedTokenKeyPrefix = "trl:jti:"

// RedisTRL shares revocation state between instances. Keys expire with the
// token, so nothing needs sweeping.
type RedisTRL struct {
	client  *redis.Client
	latency LatencyObserver
}

type RedisTRLOption func(*RedisTRL)

func WithLatencyObserver(o LatencyObserver) RedisTRLOption {
	return func(t *RedisTRL) { t.latency = o }
}

func NewRedisTRL(client *redis.Client, opts ...RedisTRLOption) *RedisTRL {
	trl := &RedisTRL{client: client}
	for _, opt := range opts {
		if opt != nil {
			opt(trl)
		}
	}
	return trl
}

// RevokeToken marks jti revoked for ttl.
func (t *RedisTRL) RevokeToken(ctx context.Context, jti string, ttl time.Duration) error {
	if jti == "" {
		return nil
	}
	if err := validateTTL(ttl); err != nil {
		return err
	}
	return t.client.Set(ctx, revokedTokenKeyPrefix+jti, "1", ttl).Err()
}

// IsRevoked reports whether jti has an unexpired revocation marker.
func (t *RedisTRL) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if t.latency != nil {
		start := time.Now()
		defer func() { t.latency.ObserveRevocationCheck(time.Since(start).Seconds()) }()
	}
	if jti == "" {
		return false, nil
	}
	err := t.client.Get(ctx, revokedTokenKeyPrefix+jti).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
