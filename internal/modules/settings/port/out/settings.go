package out

import (
	"context"

	"moonlight/internal/modules/settings/domain"
)

type SettingsStore interface {
	// Load returns the stored record, or the defaults when none has been
	// saved yet.
	Load(ctx context.Context) (domain.Settings, error)
	Save(ctx context.Context, settings domain.Settings) error
}
