package domain_test

import (
	"testing"
	"time"

	"moonlight/internal/modules/task/domain"
)

func validTask() domain.Task {
	return domain.Task{
		ID:               "t1",
		GoalID:           "g1",
		Title:            "Read chapter one",
		ScheduledDate:    "2026-08-28",
		Status:           domain.StatusPending,
		Difficulty:       domain.DifficultyMedium,
		EstimatedMinutes: 30,
	}
}

func TestTaskValidate(t *testing.T) {
	t.Parallel()
	if err := validTask().Validate(); err != nil {
		t.Fatalf("valid task rejected: %v", err)
	}

	noGoal := validTask()
	noGoal.GoalID = ""
	if err := noGoal.Validate(); err == nil {
		t.Fatal("expected error for missing goal id")
	}

	badDate := validTask()
	badDate.ScheduledDate = "28/08/2026"
	if err := badDate.Validate(); err == nil {
		t.Fatal("expected error for malformed scheduled date")
	}

	badMinutes := validTask()
	badMinutes.EstimatedMinutes = 0
	if err := badMinutes.Validate(); err == nil {
		t.Fatal("expected error for non-positive estimate")
	}

	badDifficulty := validTask()
	badDifficulty.Difficulty = "extreme"
	if err := badDifficulty.Validate(); err == nil {
		t.Fatal("expected error for unknown difficulty")
	}
}

func TestCompleteStampsTime(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 8, 28, 10, 30, 0, 0, time.UTC)
	task := validTask().Complete(now)
	if task.Status != domain.StatusCompleted {
		t.Fatalf("status = %s, want completed", task.Status)
	}
	if task.CompletedAt == nil || !task.CompletedAt.Equal(now) {
		t.Fatalf("completedAt = %v, want %v", task.CompletedAt, now)
	}
}

func TestSkipClearsCompletion(t *testing.T) {
	t.Parallel()
	now := time.Now()
	task := validTask().Complete(now).Skip()
	if task.Status != domain.StatusSkipped {
		t.Fatalf("status = %s, want skipped", task.Status)
	}
	if task.CompletedAt != nil {
		t.Fatalf("completedAt should be cleared on skip, got %v", task.CompletedAt)
	}
}
