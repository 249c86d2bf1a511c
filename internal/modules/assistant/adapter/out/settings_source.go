package out

import (
	"context"

	assistantout "moonlight/internal/modules/assistant/port/out"
	settingsout "moonlight/internal/modules/settings/port/out"
)

// SettingsPreferenceSource feeds the assistant from the stored user
// settings.
type SettingsPreferenceSource struct {
	settings settingsout.SettingsStore
}

func NewSettingsPreferenceSource(settings settingsout.SettingsStore) assistantout.PreferenceSource {
	return &SettingsPreferenceSource{settings: settings}
}

func (s *SettingsPreferenceSource) Load(ctx context.Context) (assistantout.Preferences, error) {
	stored, err := s.settings.Load(ctx)
	if err != nil {
		return assistantout.Preferences{}, err
	}
	return assistantout.Preferences{
		Endpoint: assistantout.Endpoint{
			BaseURL: stored.AIBaseURL,
			APIKey:  stored.AIAPIKey,
			Model:   stored.AIModel,
		},
		DailyTaskCount: stored.DailyTaskCount,
	}, nil
}
