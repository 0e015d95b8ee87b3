package domain

import (
	"context"
	"time"
)

type SiteSetting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SettingsRepository stores small key/value site settings such as the theme.
type SettingsRepository interface {
	GetByKey(ctx context.Context, key string) (*SiteSetting, error)
	Upsert(ctx context.Context, key, value string) error
	GetAll(ctx context.Context) ([]SiteSetting, error)
}
