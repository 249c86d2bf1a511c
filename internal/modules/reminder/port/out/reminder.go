package out

import "context"

type Notifier interface {
	Notify(ctx context.Context, title, body string) error
}

// PendingTaskSource lists the titles of pending tasks scheduled on a
// date ("YYYY-MM-DD").
type PendingTaskSource interface {
	PendingTitles(ctx context.Context, date string) ([]string, error)
}

// Preferences is the slice of user settings the scheduler needs.
type Preferences struct {
	Enabled bool
	Time    string
}

type SettingsSource interface {
	Load(ctx context.Context) (Preferences, error)
}
