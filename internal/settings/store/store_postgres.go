package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"registrar/internal/platform/postgres"
	"registrar/internal/settings/models"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

var settingColumns = []string{"setting_key", "setting_value", "description", "created_at", "updated_at"}

func scanSetting(row postgres.Scanner) (models.Setting, error) {
	var st models.Setting
	err := row.Scan(&st.SettingKey, &st.SettingValue, &st.Description, &st.CreatedAt, &st.UpdatedAt)
	return st, err
}

func (s *PostgresStore) Create(ctx context.Context, st *models.Setting) error {
	_, err := postgres.Exec(ctx, postgres.Conn(ctx, s.db), postgres.Builder.Insert("system_settings").SetMap(map[string]any{
		"setting_key":   st.SettingKey,
		"setting_value": st.SettingValue,
		"description":   st.Description,
		"created_at":    st.CreatedAt,
		"updated_at":    st.UpdatedAt,
	}))
	if postgres.Constraint(err) == "system_settings_pkey" {
		return ErrKeyTaken
	}
	if err != nil {
		return fmt.Errorf("create setting: %w", err)
	}
	return nil
}

func (s *PostgresStore) Find(ctx context.Context, key string) (*models.Setting, error) {
	st, err := postgres.Get(ctx, postgres.Conn(ctx, s.db),
		postgres.Builder.Select(settingColumns...).From("system_settings").Where(sq.Eq{"setting_key": key}), scanSetting)
	if err != nil {
		return nil, fmt.Errorf("find setting: %w", err)
	}
	return &st, nil
}

func (s *PostgresStore) Update(ctx context.Context, st *models.Setting) error {
	err := postgres.ExecOne(ctx, postgres.Conn(ctx, s.db), postgres.Builder.Update("system_settings").SetMap(map[string]any{
		"setting_value": st.SettingValue,
		"description":   st.Description,
		"updated_at":    st.UpdatedAt,
	}).Where(sq.Eq{"setting_key": st.SettingKey}), "setting")
	if err != nil {
		return fmt.Errorf("update setting: %w", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	err := postgres.ExecOne(ctx, postgres.Conn(ctx, s.db),
		postgres.Builder.Delete("system_settings").Where(sq.Eq{"setting_key": key}), "setting")
	if err != nil {
		return fmt.Errorf("delete setting: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]models.Setting, error) {
	out, err := postgres.Select(ctx, postgres.Conn(ctx, s.db),
		postgres.Builder.Select(settingColumns...).From("system_settings").OrderBy("setting_key"), scanSetting)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	return out, nil
}
