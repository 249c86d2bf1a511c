package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"moonlight/internal/modules/reminder/domain"
	reminderout "moonlight/internal/modules/reminder/port/out"
	"moonlight/internal/platform/clock"
)

const tickInterval = time.Minute

// ReminderService runs the daily notification check. One check per
// minute; the preference record is re-read on every check so a changed
// time takes effect at the next tick.
type ReminderService struct {
	clock    clock.Clock
	settings reminderout.SettingsSource
	tasks    reminderout.PendingTaskSource
	notifier reminderout.Notifier

	mu        sync.Mutex
	stop      chan struct{}
	lastStamp string
}

func NewReminderService(clk clock.Clock, settings reminderout.SettingsSource, tasks reminderout.PendingTaskSource, notifier reminderout.Notifier) *ReminderService {
	return &ReminderService{clock: clk, settings: settings, tasks: tasks, notifier: notifier}
}

// Arm starts the minute ticker. Arming while armed restarts it, so a
// settings change never leaves two tickers running. Arming with
// notifications disabled is a disarm.
func (s *ReminderService) Arm(ctx context.Context) error {
	prefs, err := s.settings.Load(ctx)
	if err != nil {
		return fmt.Errorf("load reminder preferences: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
	if !prefs.Enabled {
		return nil
	}

	stop := make(chan struct{})
	s.stop = stop
	go s.run(stop)
	return nil
}

func (s *ReminderService) Disarm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *ReminderService) Armed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stop != nil
}

func (s *ReminderService) stopLocked() {
	if s.stop != nil {
		close(s.stop)
		s.stop = nil
	}
}

func (s *ReminderService) run(stop chan struct{}) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			// A failed check is retried implicitly at the next tick.
			_, _ = s.CheckOnce(context.Background(), s.clock.Now(), false)
		}
	}
}

// CheckResult reports what one reminder check did.
type CheckResult struct {
	Fired     bool
	Body      string
	TaskCount int
}

// CheckOnce runs one reminder check against the given instant. With
// force set the configured time of day is ignored. The same minute
// never fires twice.
func (s *ReminderService) CheckOnce(ctx context.Context, now time.Time, force bool) (CheckResult, error) {
	prefs, err := s.settings.Load(ctx)
	if err != nil {
		return CheckResult{}, fmt.Errorf("load reminder preferences: %w", err)
	}
	if !force && !domain.ShouldFire(now, prefs.Enabled, prefs.Time) {
		return CheckResult{}, nil
	}

	stamp := domain.FireStamp(now)
	s.mu.Lock()
	if !force && s.lastStamp == stamp {
		s.mu.Unlock()
		return CheckResult{}, nil
	}
	s.lastStamp = stamp
	s.mu.Unlock()

	titles, err := s.tasks.PendingTitles(ctx, now.Format("2006-01-02"))
	if err != nil {
		return CheckResult{}, fmt.Errorf("list pending tasks: %w", err)
	}
	body, ok := domain.NotificationBody(titles)
	if !ok {
		return CheckResult{}, nil
	}
	if err := s.notifier.Notify(ctx, domain.NotificationTitle, body); err != nil {
		return CheckResult{}, fmt.Errorf("send reminder: %w", err)
	}
	return CheckResult{Fired: true, Body: body, TaskCount: len(titles)}, nil
}

// Preferences reports the current notification preferences.
func (s *ReminderService) Preferences(ctx context.Context) (reminderout.Preferences, error) {
	return s.settings.Load(ctx)
}
