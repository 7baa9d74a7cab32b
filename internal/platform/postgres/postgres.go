// Package postgres opens the database pool, applies the embedded schema and
// classifies driver errors into sentinel errors for the stores.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"registrar/internal/platform/config"
	"registrar/pkg/platform/listing"
	"registrar/pkg/platform/sentinel"
	"registrar/pkg/platform/tx"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Builder produces squirrel statements with $n placeholders.
var Builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// Open connects to Postgres and applies pool settings.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	if cfg.URL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// Migrate applies every embedded migration not yet recorded in
// schema_migrations, in file-name order, each in its own transaction.
func Migrate(ctx context.Context, db *sql.DB) ([]string, error) {
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`); err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}

	names, err := MigrationNames()
	if err != nil {
		return nil, err
	}

	var applied []string
	runner := tx.SQLRunner{DB: db}
	for _, name := range names {
		version := strings.TrimSuffix(name, ".sql")
		var exists bool
		if err := db.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)`, version,
		).Scan(&exists); err != nil {
			return applied, fmt.Errorf("check migration %s: %w", version, err)
		}
		if exists {
			continue
		}
		body, err := migrations.ReadFile("migrations/" + name)
		if err != nil {
			return applied, fmt.Errorf("read migration %s: %w", name, err)
		}
		err = runner.RunInTx(ctx, func(ctx context.Context) error {
			conn := Conn(ctx, db)
			if _, err := conn.ExecContext(ctx, string(body)); err != nil {
				return err
			}
			_, err := conn.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, version)
			return err
		})
		if err != nil {
			return applied, fmt.Errorf("apply migration %s: %w", version, err)
		}
		applied = append(applied, version)
	}
	return applied, nil
}

// MigrationNames lists the embedded migration files in apply order.
func MigrationNames() ([]string, error) {
	entries, err := fs.ReadDir(migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// DBTX is the subset of *sql.DB and *sql.Tx the stores use.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Conn returns the transaction carried by ctx, or db when there is none.
func Conn(ctx context.Context, db *sql.DB) DBTX {
	if sqlTx, ok := tx.From(ctx); ok {
		return sqlTx
	}
	return db
}

// ConstraintError is a classified integrity violation. It matches both the
// sentinel kind and the underlying driver error with errors.Is/As.
type ConstraintError struct {
	Kind       error
	Constraint string
	Err        error
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("%s (%s): %v", e.Kind, e.Constraint, e.Err)
}

func (e *ConstraintError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// Classify maps unique violations to sentinel.ErrConflict and foreign key
// violations to sentinel.ErrReferenced. sql.ErrNoRows becomes
// sentinel.ErrNotFound. Other errors are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return sentinel.ErrNotFound
	}
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch string(pqErr.Code) {
	case codeUniqueViolation:
		return &ConstraintError{Kind: sentinel.ErrConflict, Constraint: pqErr.Constraint, Err: err}
	case codeForeignKeyViolation:
		return &ConstraintError{Kind: sentinel.ErrReferenced, Constraint: pqErr.Constraint, Err: err}
	default:
		return err
	}
}

// Constraint returns the violated constraint name of a classified error.
func Constraint(err error) string {
	var ce *ConstraintError
	if errors.As(err, &ce) {
		return ce.Constraint
	}
	return ""
}

// Count runs a SELECT COUNT(*) built from b.
func Count(ctx context.Context, conn DBTX, b sq.SelectBuilder) (int, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}
	var n int
	if err := conn.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

// Exists reports whether any row of table matches where.
func Exists(ctx context.Context, conn DBTX, table string, where sq.Sqlizer) (bool, error) {
	query, args, err := Builder.Select("1").Prefix("SELECT EXISTS (").From(table).Where(where).Suffix(")").ToSql()
	if err != nil {
		return false, fmt.Errorf("build exists query: %w", err)
	}
	var ok bool
	if err := conn.QueryRowContext(ctx, query, args...).Scan(&ok); err != nil {
		return false, fmt.Errorf("exists %s: %w", table, err)
	}
	return ok, nil
}

// Like escapes s for use inside an ILIKE pattern and wraps it in %.
func Like(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

// Grouped runs a "key, count" query and returns the counts keyed by label.
func Grouped(ctx context.Context, conn DBTX, query string, args ...any) (map[string]int, error) {
	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]int{}
	for rows.Next() {
		var key sql.NullString
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return nil, err
		}
		label := key.String
		if !key.Valid {
			label = "unknown"
		}
		out[label] += n
	}
	return out, rows.Err()
}

// RequireAffected returns sentinel.ErrNotFound when res touched no rows.
func RequireAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", what, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, sentinel.ErrNotFound)
	}
	return nil
}

// Scanner is satisfied by *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// Select runs b and scans every row.
func Select[T any](ctx context.Context, conn DBTX, b sq.SelectBuilder, scan func(Scanner) (T, error)) ([]T, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}
	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Get runs b and scans one row; no row is sentinel.ErrNotFound.
func Get[T any](ctx context.Context, conn DBTX, b sq.SelectBuilder, scan func(Scanner) (T, error)) (T, error) {
	var zero T
	query, args, err := b.Limit(1).ToSql()
	if err != nil {
		return zero, fmt.Errorf("build select: %w", err)
	}
	v, err := scan(conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		return zero, Classify(err)
	}
	return v, nil
}

// Paged counts the rows of from matching where, then selects one page of
// columns in orderBy order.
func Paged[T any](ctx context.Context, conn DBTX, from string, where sq.Sqlizer, columns, orderBy []string,
	p listing.Page, scan func(Scanner) (T, error),
) ([]T, int, error) {
	total, err := Count(ctx, conn, Builder.Select("count(*)").From(from).Where(where))
	if err != nil {
		return nil, 0, err
	}
	items, err := Select(ctx, conn, Builder.Select(columns...).From(from).Where(where).
		OrderBy(orderBy...).Limit(uint64(p.PageSize)).Offset(uint64(p.Offset())), scan)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Exec runs b and classifies driver errors.
func Exec(ctx context.Context, conn DBTX, b sq.Sqlizer) (sql.Result, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build statement: %w", err)
	}
	res, err := conn.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, Classify(err)
	}
	return res, nil
}

// ExecOne runs b and requires it to touch at least one row.
func ExecOne(ctx context.Context, conn DBTX, b sq.Sqlizer, what string) error {
	res, err := Exec(ctx, conn, b)
	if err != nil {
		return err
	}
	return RequireAffected(res, what)
}

// All is a tautology for optional where clauses.
var All = sq.Expr("TRUE")
