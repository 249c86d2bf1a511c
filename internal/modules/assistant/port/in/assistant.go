package in

import (
	"context"

	"moonlight/internal/modules/assistant/dto"
)

type Usecase interface {
	// GenerateForGoal asks the configured model for a week of tasks and
	// persists the whole batch. Nothing is written when the model reply
	// cannot be parsed.
	GenerateForGoal(ctx context.Context, goalID string) (dto.GenerationResult, error)
	// TestConnection verifies the configured endpoint answers its model
	// listing route.
	TestConnection(ctx context.Context) (dto.ConnectionStatus, error)
}
