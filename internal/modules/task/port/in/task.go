package in

import (
	"context"

	"moonlight/internal/modules/task/dto"
)

type Usecase interface {
	SaveTask(ctx context.Context, input dto.SaveTaskInput) (dto.TaskOutput, error)
	// SaveTasks persists a generated batch in one document write. Either
	// every task lands or none do.
	SaveTasks(ctx context.Context, inputs []dto.SaveTaskInput) ([]dto.TaskOutput, error)
	CompleteTask(ctx context.Context, id string) (dto.TaskOutput, error)
	SkipTask(ctx context.Context, id string) (dto.TaskOutput, error)
	ListTasks(ctx context.Context) ([]dto.TaskOutput, error)
	ListByGoal(ctx context.Context, goalID string) ([]dto.TaskOutput, error)
	CountByGoal(ctx context.Context, goalID string) (dto.GoalTaskCount, error)
	// Today returns tasks scheduled on the given calendar date
	// ("YYYY-MM-DD"), pending first.
	Today(ctx context.Context, date string) ([]dto.TaskOutput, error)
	// Reindex rebuilds the task query index from the state document.
	Reindex(ctx context.Context) (int, error)
}
