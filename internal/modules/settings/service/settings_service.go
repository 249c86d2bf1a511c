package service

import (
	"context"
	"fmt"

	"moonlight/internal/modules/settings/domain"
	settingsout "moonlight/internal/modules/settings/port/out"
)

type SettingsService struct {
	store settingsout.SettingsStore
}

func NewSettingsService(store settingsout.SettingsStore) *SettingsService {
	return &SettingsService{store: store}
}

func (s *SettingsService) Get(ctx context.Context) (domain.Settings, error) {
	return s.store.Load(ctx)
}

func (s *SettingsService) Replace(ctx context.Context, settings domain.Settings) (domain.Settings, error) {
	if err := settings.Validate(); err != nil {
		return domain.Settings{}, fmt.Errorf("validate settings: %w", err)
	}
	if err := s.store.Save(ctx, settings); err != nil {
		return domain.Settings{}, fmt.Errorf("save settings: %w", err)
	}
	return settings, nil
}
