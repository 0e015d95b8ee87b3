package application

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Maxito7/studio_backend/internal/domain"
)

// ThemeService owns the site-wide light/dark flag. It is read once from the
// settings store by Init and changed only through Toggle.
type ThemeService struct {
	repo   domain.SettingsRepository
	logger *zap.Logger

	mu    sync.RWMutex
	theme domain.Theme
}

func NewThemeService(repo domain.SettingsRepository, logger *zap.Logger) *ThemeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ThemeService{repo: repo, logger: logger, theme: domain.ThemeLight}
}

// Init loads the persisted theme. A missing or unreadable value leaves the
// default light theme in place.
func (s *ThemeService) Init(ctx context.Context) error {
	setting, err := s.repo.GetByKey(ctx, domain.ThemeSettingKey)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("loading theme: %w", err)
	}

	theme, err := domain.ParseTheme(setting.Value)
	if err != nil {
		s.logger.Warn("ignoring stored theme", zap.String("value", setting.Value), zap.Error(err))
		return nil
	}

	s.mu.Lock()
	s.theme = theme
	s.mu.Unlock()
	return nil
}

func (s *ThemeService) Current() domain.Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// Toggle flips the theme and persists the new value. On a storage error
// the in-memory theme is left unchanged.
func (s *ThemeService) Toggle(ctx context.Context) (domain.Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.theme.Toggle()
	if err := s.repo.Upsert(ctx, domain.ThemeSettingKey, string(next)); err != nil {
		return s.theme, fmt.Errorf("saving theme: %w", err)
	}
	s.theme = next
	s.logger.Info("theme toggled", zap.String("theme", string(next)))
	return next, nil
}
