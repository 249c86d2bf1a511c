package in

import (
	"context"

	"moonlight/internal/modules/task/dto"
	taskin "moonlight/internal/modules/task/port/in"
)

type CLIHandler struct {
	usecase taskin.Usecase
}

func NewCLIHandler(usecase taskin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) SaveTask(ctx context.Context, input dto.SaveTaskInput) (dto.TaskOutput, error) {
	return h.usecase.SaveTask(ctx, input)
}

func (h CLIHandler) CompleteTask(ctx context.Context, id string) (dto.TaskOutput, error) {
	return h.usecase.CompleteTask(ctx, id)
}

func (h CLIHandler) SkipTask(ctx context.Context, id string) (dto.TaskOutput, error) {
	return h.usecase.SkipTask(ctx, id)
}

func (h CLIHandler) ListTasks(ctx context.Context) ([]dto.TaskOutput, error) {
	return h.usecase.ListTasks(ctx)
}

func (h CLIHandler) ListByGoal(ctx context.Context, goalID string) ([]dto.TaskOutput, error) {
	return h.usecase.ListByGoal(ctx, goalID)
}

func (h CLIHandler) CountByGoal(ctx context.Context, goalID string) (dto.GoalTaskCount, error) {
	return h.usecase.CountByGoal(ctx, goalID)
}

func (h CLIHandler) Today(ctx context.Context, date string) ([]dto.TaskOutput, error) {
	return h.usecase.Today(ctx, date)
}

func (h CLIHandler) Reindex(ctx context.Context) (int, error) {
	return h.usecase.Reindex(ctx)
}
