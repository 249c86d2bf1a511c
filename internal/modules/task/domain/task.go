package domain

import (
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusSkipped   Status = "skipped"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// DateLayout is the calendar-date form used for scheduling ("YYYY-MM-DD").
const DateLayout = "2006-01-02"

type Task struct {
	ID               string     `json:"id"`
	GoalID           string     `json:"goalId"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	ScheduledDate    string     `json:"scheduledDate"`
	Status           Status     `json:"status"`
	CompletedAt      *time.Time `json:"completedAt,omitempty"`
	Difficulty       Difficulty `json:"difficulty"`
	EstimatedMinutes int        `json:"estimatedMinutes"`
}

func (s Status) Validate() error {
	switch s {
	case StatusPending, StatusCompleted, StatusSkipped:
		return nil
	default:
		return fmt.Errorf("unsupported task status %q", string(s))
	}
}

func (d Difficulty) Validate() error {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return nil
	default:
		return fmt.Errorf("unsupported difficulty %q", string(d))
	}
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(t.GoalID) == "" {
		return fmt.Errorf("goal id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if _, err := time.Parse(DateLayout, t.ScheduledDate); err != nil {
		return fmt.Errorf("scheduled date must be YYYY-MM-DD: %w", err)
	}
	if err := t.Status.Validate(); err != nil {
		return err
	}
	if err := t.Difficulty.Validate(); err != nil {
		return err
	}
	if t.EstimatedMinutes <= 0 {
		return fmt.Errorf("estimated minutes must be positive, got %d", t.EstimatedMinutes)
	}
	return nil
}

// Complete transitions the task to completed and stamps the completion
// time. Completing an already-completed task refreshes the stamp.
func (t Task) Complete(now time.Time) Task {
	t.Status = StatusCompleted
	t.CompletedAt = &now
	return t
}

// Skip transitions the task to skipped and clears any completion stamp.
func (t Task) Skip() Task {
	t.Status = StatusSkipped
	t.CompletedAt = nil
	return t
}
