package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Maxito7/studio_backend/internal/db"
	"github.com/Maxito7/studio_backend/internal/domain"
)

type settingsRepository struct {
	db  *db.DB
	now func() time.Time
}

func NewSettingsRepository(db *db.DB) domain.SettingsRepository {
	return &settingsRepository{db: db, now: time.Now}
}

func (r *settingsRepository) GetByKey(ctx context.Context, key string) (*domain.SiteSetting, error) {
	query := r.db.Rebind(`SELECT setting_key, setting_value, updated_at
			  FROM site_settings
			  WHERE setting_key = ?`)

	var s domain.SiteSetting
	err := r.db.QueryRowContext(ctx, query, key).Scan(&s.Key, &s.Value, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("setting %q: %w", key, domain.ErrNotFound)
		}
		return nil, err
	}
	return &s, nil
}

func (r *settingsRepository) Upsert(ctx context.Context, key, value string) error {
	query := r.db.Rebind(`INSERT INTO site_settings (setting_key, setting_value, updated_at)
			  VALUES (?, ?, ?)
			  ON CONFLICT (setting_key) DO UPDATE
			  SET setting_value = excluded.setting_value, updated_at = excluded.updated_at`)

	if _, err := r.db.ExecContext(ctx, query, key, value, r.now().UTC()); err != nil {
		return fmt.Errorf("saving setting %q: %w", key, err)
	}
	return nil
}

func (r *settingsRepository) GetAll(ctx context.Context) ([]domain.SiteSetting, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT setting_key, setting_value, updated_at
	          FROM site_settings
	          ORDER BY setting_key ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settings := []domain.SiteSetting{}
	for rows.Next() {
		var s domain.SiteSetting
		if err := rows.Scan(&s.Key, &s.Value, &s.UpdatedAt); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}
