package out

import (
	"context"

	reminderout "moonlight/internal/modules/reminder/port/out"
	settingsout "moonlight/internal/modules/settings/port/out"
)

// SettingsAdapter reads notification preferences straight from the
// settings store, so the scheduler sees a change at its next tick.
type SettingsAdapter struct {
	settings settingsout.SettingsStore
}

func NewSettingsAdapter(settings settingsout.SettingsStore) reminderout.SettingsSource {
	return &SettingsAdapter{settings: settings}
}

func (a *SettingsAdapter) Load(ctx context.Context) (reminderout.Preferences, error) {
	stored, err := a.settings.Load(ctx)
	if err != nil {
		return reminderout.Preferences{}, err
	}
	return reminderout.Preferences{
		Enabled: stored.NotificationsEnabled,
		Time:    stored.NotificationTime,
	}, nil
}
