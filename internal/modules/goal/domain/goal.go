package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusPaused    Status = "paused"
)

type Goal struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	TargetDate  string    `json:"targetDate,omitempty"`
	Status      Status    `json:"status"`
	Progress    int       `json:"progress"`
}

func (s Status) Validate() error {
	switch s {
	case StatusActive, StatusCompleted, StatusPaused:
		return nil
	default:
		return fmt.Errorf("unsupported goal status %q", string(s))
	}
}

func (g Goal) Validate() error {
	if strings.TrimSpace(g.ID) == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(g.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if err := g.Status.Validate(); err != nil {
		return err
	}
	if g.Progress < 0 || g.Progress > 100 {
		return fmt.Errorf("progress must be within 0..100, got %d", g.Progress)
	}
	if g.TargetDate != "" {
		if _, err := time.Parse("2006-01-02", g.TargetDate); err != nil {
			return fmt.Errorf("target date must be YYYY-MM-DD: %w", err)
		}
	}
	return nil
}

// ComputeProgress derives the completion percentage from task counts.
// A goal with no tasks is 0% complete.
func ComputeProgress(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}
