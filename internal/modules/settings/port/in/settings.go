package in

import (
	"context"

	"moonlight/internal/modules/settings/dto"
)

type Usecase interface {
	GetSettings(ctx context.Context) (dto.SettingsOutput, error)
	// UpdateSettings merges the patch into the stored record and re-arms
	// the reminder scheduler with the new notification preferences.
	UpdateSettings(ctx context.Context, input dto.UpdateSettingsInput) (dto.SettingsOutput, error)
}
