package revocation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"registrar/internal/platform/postgres"
	"registrar/pkg/platform/sentinel"
)

// PostgresTRL keeps revoked token ids in token_revocations. serve uses it
// when REDIS_URL is empty. Lapsed rows are pruned on each revocation.
type PostgresTRL struct {
	db    *sql.DB
	clock Clock
}

type PostgresTRLOption func(*PostgresTRL)

func WithPostgresClock(clock Clock) PostgresTRLOption {
	return func(trl *PostgresTRL) {
		if clock != nil {
			trl.clock = clock
		}
	}
}

func NewPostgresTRL(db *sql.DB, opts ...PostgresTRLOption) *PostgresTRL {
	trl := &PostgresTRL{db: db, clock: time.Now}
	for _, opt := range opts {
		opt(trl)
	}
	return trl
}

func (t *PostgresTRL) RevokeToken(ctx context.Context, jti string, ttl time.Duration) error {
	if jti == "" {
		return nil
	}
	if err := validateTTL(ttl); err != nil {
		return err
	}
	now := t.clock()
	conn := postgres.Conn(ctx, t.db)
	upsert := postgres.Builder.Insert("token_revocations").
		Columns("jti", "expires_at").
		Values(jti, now.Add(ttl)).
		Suffix("ON CONFLICT (jti) DO UPDATE SET expires_at = GREATEST(token_revocations.expires_at, EXCLUDED.expires_at)")
	if _, err := postgres.Exec(ctx, conn, upsert); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	prune := postgres.Builder.Delete("token_revocations").Where(sq.LtOrEq{"expires_at": now})
	if _, err := postgres.Exec(ctx, conn, prune); err != nil {
		return fmt.Errorf("prune lapsed revocations: %w", err)
	}
	return nil
}

func (t *PostgresTRL) IsRevoked(ctx context.Context, jti string) (bool, error) {
	q := postgres.Builder.Select("1").From("token_revocations").
		Where(sq.Eq{"jti": jti}).
		Where(sq.Gt{"expires_at": t.clock()})
	_, err := postgres.Get(ctx, postgres.Conn(ctx, t.db), q, func(row postgres.Scanner) (int, error) {
		var one int
		return one, row.Scan(&one)
	})
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, sentinel.ErrNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("check token revocation: %w", err)
	}
}
