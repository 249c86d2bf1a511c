package in

import (
	"context"

	"moonlight/internal/modules/goal/dto"
)

type Usecase interface {
	SaveGoal(ctx context.Context, input dto.SaveGoalInput) (dto.GoalOutput, error)
	DeleteGoal(ctx context.Context, id string) error
	ListGoals(ctx context.Context) ([]dto.GoalOutput, error)
	GetGoal(ctx context.Context, id string) (dto.GoalOutput, error)
	// SetProgress derives the completion percentage from task counts and
	// persists it. The goal is rewritten only when the value changed.
	SetProgress(ctx context.Context, id string, completed, total int) error
}
