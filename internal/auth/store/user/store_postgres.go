package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"registrar/internal/auth/models"
	"registrar/internal/platform/postgres"
	"registrar/pkg/platform/listing"
	"registrar/pkg/platform/sentinel"
)

// PostgresUserStore persists users. Uniqueness of username and email among
// live accounts is enforced by partial unique indexes.
type PostgresUserStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresUserStore {
	return &PostgresUserStore{db: db}
}

var userColumns = []string{
	"id", "username", "email", "password_hash", "first_name", "last_name", "phone",
	"position_id", "role_id", "status", "is_deleted", "last_login", "created_at", "updated_at",
}

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Phone,
		&u.PositionID, &u.RoleID, &u.Status, &u.IsDeleted, &u.LastLogin, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func translate(err error) error {
	err = postgres.Classify(err)
	switch postgres.Constraint(err) {
	case "users_username_live_key":
		return ErrUsernameTaken
	case "users_email_live_key":
		return ErrEmailTaken
	}
	return err
}

func (s *PostgresUserStore) Create(ctx context.Context, u *models.User) error {
	_, err := postgres.Conn(ctx, s.db).ExecContext(ctx, `
		INSERT INTO users (id, username, email, password_hash, first_name, last_name, phone,
			position_id, role_id, status, is_deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, FALSE, $11, $11)`,
		u.ID, u.Username, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Phone,
		u.PositionID, u.RoleID, u.Status, u.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create user: %w", translate(err))
	}
	return nil
}

func (s *PostgresUserStore) findOne(ctx context.Context, where sq.Sqlizer) (*models.User, error) {
	query, args, err := postgres.Builder.Select(userColumns...).From("users").Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build user query: %w", err)
	}
	u, err := scanUser(postgres.Conn(ctx, s.db).QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("find user: %w", postgres.Classify(err))
	}
	return u, nil
}

func (s *PostgresUserStore) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.findOne(ctx, sq.Eq{"id": id})
}

func (s *PostgresUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, sq.And{sq.Expr("lower(email) = lower(?)", email), sq.Eq{"is_deleted": false}})
}

func (s *PostgresUserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.findOne(ctx, sq.And{sq.Expr("lower(username) = lower(?)", username), sq.Eq{"is_deleted": false}})
}

func (s *PostgresUserStore) Update(ctx context.Context, u *models.User) error {
	res, err := postgres.Conn(ctx, s.db).ExecContext(ctx, `
		UPDATE users SET
			username = $2, email = $3, password_hash = $4, first_name = $5, last_name = $6,
			phone = $7, position_id = $8, role_id = $9, status = $10, updated_at = $11
		WHERE id = $1`,
		u.ID, u.Username, u.Email, u.PasswordHash, u.FirstName, u.LastName,
		u.Phone, u.PositionID, u.RoleID, u.Status, u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", translate(err))
	}
	return postgres.RequireAffected(res, "user")
}

func (s *PostgresUserStore) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	res, err := postgres.Conn(ctx, s.db).ExecContext(ctx, `UPDATE users SET last_login = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("touch last login: %w", err)
	}
	return postgres.RequireAffected(res, "user")
}

func (s *PostgresUserStore) SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) error {
	res, err := postgres.Conn(ctx, s.db).ExecContext(ctx, `
		UPDATE users SET is_deleted = TRUE, status = $2, updated_at = $3
		WHERE id = $1 AND NOT is_deleted`, id, models.StatusInactive, at)
	if err != nil {
		return fmt.Errorf("soft delete user: %w", err)
	}
	return postgres.RequireAffected(res, "user")
}

func (s *PostgresUserStore) List(ctx context.Context, f models.UserFilter, p listing.Page) ([]*models.User, int, error) {
	where := sq.And{sq.Eq{"is_deleted": false}}
	if f.Search != nil {
		like := postgres.Like(*f.Search)
		where = append(where, sq.Or{sq.ILike{"username": like}, sq.ILike{"email": like}})
	}
	if f.Status != nil {
		where = append(where, sq.Eq{"status": strings.ToUpper(*f.Status)})
	}
	if f.RoleID != nil {
		where = append(where, sq.Eq{"role_id": *f.RoleID})
	}

	conn := postgres.Conn(ctx, s.db)
	total, err := postgres.Count(ctx, conn, postgres.Builder.Select("count(*)").From("users").Where(where))
	if err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	query, args, err := postgres.Builder.Select(userColumns...).From("users").Where(where).
		OrderBy("username").Limit(uint64(p.PageSize)).Offset(uint64(p.Offset())).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build users query: %w", err)
	}
	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var out []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// IsNotFound reports whether err means the user does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, sentinel.ErrNotFound)
}
