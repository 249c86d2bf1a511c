package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	reminderout "moonlight/internal/modules/reminder/port/out"
	"moonlight/internal/modules/reminder/service"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type staticSettings struct {
	prefs reminderout.Preferences
}

func (s staticSettings) Load(context.Context) (reminderout.Preferences, error) {
	return s.prefs, nil
}

type staticTasks struct {
	titles []string
}

func (s staticTasks) PendingTitles(context.Context, string) ([]string, error) {
	return s.titles, nil
}

type recordingNotifier struct {
	mu     sync.Mutex
	titles []string
	bodies []string
}

func (n *recordingNotifier) Notify(_ context.Context, title, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.titles = append(n.titles, title)
	n.bodies = append(n.bodies, body)
	return nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.bodies)
}

func newService(enabled bool, at string, titles []string, notifier *recordingNotifier) *service.ReminderService {
	return service.NewReminderService(
		fixedClock{now: time.Date(2026, 8, 28, 9, 0, 0, 0, time.Local)},
		staticSettings{prefs: reminderout.Preferences{Enabled: enabled, Time: at}},
		staticTasks{titles: titles},
		notifier,
	)
}

func TestCheckOnceFiresAtConfiguredMinute(t *testing.T) {
	t.Parallel()
	notifier := &recordingNotifier{}
	svc := newService(true, "09:00", []string{"Practice scales", "Stretch"}, notifier)

	now := time.Date(2026, 8, 28, 9, 0, 30, 0, time.Local)
	result, err := svc.CheckOnce(context.Background(), now, false)
	if err != nil {
		t.Fatalf("CheckOnce: %v", err)
	}
	if !result.Fired {
		t.Fatal("expected a firing at the configured minute")
	}
	if result.Body != "You have 2 task(s) today: Practice scales" {
		t.Fatalf("body = %q", result.Body)
	}
	if result.TaskCount != 2 {
		t.Fatalf("taskCount = %d, want 2", result.TaskCount)
	}
	if notifier.titles[0] != "Today's Tasks" {
		t.Fatalf("title = %q", notifier.titles[0])
	}
}

func TestCheckOnceSameMinuteFiresOnce(t *testing.T) {
	t.Parallel()
	notifier := &recordingNotifier{}
	svc := newService(true, "09:00", []string{"a"}, notifier)
	ctx := context.Background()

	first := time.Date(2026, 8, 28, 9, 0, 1, 0, time.Local)
	second := time.Date(2026, 8, 28, 9, 0, 58, 0, time.Local)
	if result, _ := svc.CheckOnce(ctx, first, false); !result.Fired {
		t.Fatal("first check should fire")
	}
	if result, _ := svc.CheckOnce(ctx, second, false); result.Fired {
		t.Fatal("second check in the same minute should not fire")
	}
	if notifier.count() != 1 {
		t.Fatalf("notified %d times, want 1", notifier.count())
	}
}

func TestCheckOnceOutsideWindow(t *testing.T) {
	t.Parallel()
	notifier := &recordingNotifier{}
	svc := newService(true, "09:00", []string{"a"}, notifier)

	now := time.Date(2026, 8, 28, 9, 1, 0, 0, time.Local)
	if result, _ := svc.CheckOnce(context.Background(), now, false); result.Fired {
		t.Fatal("check one minute late should not fire")
	}
}

func TestCheckOnceForceIgnoresSchedule(t *testing.T) {
	t.Parallel()
	notifier := &recordingNotifier{}
	svc := newService(true, "09:00", []string{"a"}, notifier)

	now := time.Date(2026, 8, 28, 17, 42, 0, 0, time.Local)
	result, err := svc.CheckOnce(context.Background(), now, true)
	if err != nil {
		t.Fatalf("CheckOnce: %v", err)
	}
	if !result.Fired {
		t.Fatal("forced check should fire regardless of the configured time")
	}
}

func TestCheckOnceEmptyDayStaysQuiet(t *testing.T) {
	t.Parallel()
	notifier := &recordingNotifier{}
	svc := newService(true, "09:00", nil, notifier)

	now := time.Date(2026, 8, 28, 9, 0, 0, 0, time.Local)
	result, err := svc.CheckOnce(context.Background(), now, false)
	if err != nil {
		t.Fatalf("CheckOnce: %v", err)
	}
	if result.Fired || notifier.count() != 0 {
		t.Fatal("empty day should produce no notification")
	}
}

func TestRearmLeavesOneScheduler(t *testing.T) {
	t.Parallel()
	notifier := &recordingNotifier{}
	svc := newService(true, "09:00", []string{"a"}, notifier)
	ctx := context.Background()

	if err := svc.Arm(ctx); err != nil {
		t.Fatalf("Arm: %v", err)
	}
	if err := svc.Arm(ctx); err != nil {
		t.Fatalf("re-Arm: %v", err)
	}
	if !svc.Armed() {
		t.Fatal("service should be armed")
	}
	svc.Disarm()
	if svc.Armed() {
		t.Fatal("service should be disarmed")
	}
}

func TestArmWhileDisabledDisarms(t *testing.T) {
	t.Parallel()
	notifier := &recordingNotifier{}
	svc := newService(false, "09:00", []string{"a"}, notifier)

	if err := svc.Arm(context.Background()); err != nil {
		t.Fatalf("Arm: %v", err)
	}
	if svc.Armed() {
		t.Fatal("arming with notifications disabled should leave the scheduler stopped")
	}
}
