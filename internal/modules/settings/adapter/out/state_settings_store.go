package out

import (
	"context"
	"encoding/json"
	"fmt"

	"moonlight/internal/modules/settings/domain"
	settingsout "moonlight/internal/modules/settings/port/out"
	"moonlight/internal/platform/statefile"
)

// StateSettingsStore keeps the single settings record in the shared
// JSON state document.
type StateSettingsStore struct {
	state *statefile.Store
}

func NewStateSettingsStore(state *statefile.Store) settingsout.SettingsStore {
	return &StateSettingsStore{state: state}
}

func (s *StateSettingsStore) Load(_ context.Context) (domain.Settings, error) {
	raw, err := s.state.Read(statefile.KeySettings)
	if err != nil {
		return domain.Settings{}, err
	}
	if raw == nil {
		return domain.Defaults(), nil
	}
	// Decode over the defaults so fields added since the document was
	// written keep their default value.
	settings := domain.Defaults()
	if err := json.Unmarshal(raw, &settings); err != nil {
		return domain.Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	return settings, nil
}

func (s *StateSettingsStore) Save(_ context.Context, settings domain.Settings) error {
	return s.state.Update(statefile.KeySettings, func(json.RawMessage) (json.RawMessage, error) {
		return json.Marshal(settings)
	})
}
