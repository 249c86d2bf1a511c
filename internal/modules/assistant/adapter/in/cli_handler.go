package in

import (
	"context"

	"moonlight/internal/modules/assistant/dto"
	assistantin "moonlight/internal/modules/assistant/port/in"
)

type CLIHandler struct {
	usecase assistantin.Usecase
}

func NewCLIHandler(usecase assistantin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) GenerateForGoal(ctx context.Context, goalID string) (dto.GenerationResult, error) {
	return h.usecase.GenerateForGoal(ctx, goalID)
}

func (h CLIHandler) TestConnection(ctx context.Context) (dto.ConnectionStatus, error) {
	return h.usecase.TestConnection(ctx)
}
