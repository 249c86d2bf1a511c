package in

import (
	"context"

	"moonlight/internal/modules/goal/dto"
	goalin "moonlight/internal/modules/goal/port/in"
)

type CLIHandler struct {
	usecase goalin.Usecase
}

func NewCLIHandler(usecase goalin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) SaveGoal(ctx context.Context, input dto.SaveGoalInput) (dto.GoalOutput, error) {
	return h.usecase.SaveGoal(ctx, input)
}

func (h CLIHandler) DeleteGoal(ctx context.Context, id string) error {
	return h.usecase.DeleteGoal(ctx, id)
}

func (h CLIHandler) ListGoals(ctx context.Context) ([]dto.GoalOutput, error) {
	return h.usecase.ListGoals(ctx)
}

func (h CLIHandler) GetGoal(ctx context.Context, id string) (dto.GoalOutput, error) {
	return h.usecase.GetGoal(ctx, id)
}
