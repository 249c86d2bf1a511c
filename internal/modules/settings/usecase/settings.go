package usecase

import (
	"context"

	reminderin "moonlight/internal/modules/reminder/port/in"
	"moonlight/internal/modules/settings/domain"
	"moonlight/internal/modules/settings/dto"
	settingsin "moonlight/internal/modules/settings/port/in"
	"moonlight/internal/modules/settings/service"
)

type Interactor struct {
	svc      *service.SettingsService
	reminder reminderin.Usecase
}

func NewInteractor(svc *service.SettingsService, reminder reminderin.Usecase) settingsin.Usecase {
	return &Interactor{svc: svc, reminder: reminder}
}

func (i *Interactor) GetSettings(ctx context.Context) (dto.SettingsOutput, error) {
	settings, err := i.svc.Get(ctx)
	if err != nil {
		return dto.SettingsOutput{}, err
	}
	return toOutput(settings), nil
}

// UpdateSettings merges the patch over the stored record and, once it
// is persisted, re-arms the scheduler so a changed notification time
// takes effect without a restart.
func (i *Interactor) UpdateSettings(ctx context.Context, input dto.UpdateSettingsInput) (dto.SettingsOutput, error) {
	current, err := i.svc.Get(ctx)
	if err != nil {
		return dto.SettingsOutput{}, err
	}
	saved, err := i.svc.Replace(ctx, merge(current, input))
	if err != nil {
		return dto.SettingsOutput{}, err
	}
	if i.reminder != nil {
		if err := i.reminder.Arm(ctx); err != nil {
			return dto.SettingsOutput{}, err
		}
	}
	return toOutput(saved), nil
}

func merge(current domain.Settings, input dto.UpdateSettingsInput) domain.Settings {
	if input.AIBaseURL != nil {
		current.AIBaseURL = *input.AIBaseURL
	}
	if input.AIAPIKey != nil {
		current.AIAPIKey = *input.AIAPIKey
	}
	if input.AIModel != nil {
		current.AIModel = *input.AIModel
	}
	if input.NotificationsEnabled != nil {
		current.NotificationsEnabled = *input.NotificationsEnabled
	}
	if input.NotificationTime != nil {
		current.NotificationTime = *input.NotificationTime
	}
	if input.DailyTaskCount != nil {
		current.DailyTaskCount = *input.DailyTaskCount
	}
	if input.Theme != nil {
		current.Theme = domain.Theme(*input.Theme)
	}
	return current
}

func toOutput(settings domain.Settings) dto.SettingsOutput {
	return dto.SettingsOutput{
		AIBaseURL:            settings.AIBaseURL,
		AIKeySet:             settings.AIAPIKey != "",
		AIModel:              settings.AIModel,
		NotificationsEnabled: settings.NotificationsEnabled,
		NotificationTime:     settings.NotificationTime,
		DailyTaskCount:       settings.DailyTaskCount,
		Theme:                string(settings.Theme),
	}
}
