package in

import (
	"context"

	"moonlight/internal/modules/reminder/dto"
	reminderin "moonlight/internal/modules/reminder/port/in"
)

type CLIHandler struct {
	usecase reminderin.Usecase
}

func NewCLIHandler(usecase reminderin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Arm(ctx context.Context) error {
	return h.usecase.Arm(ctx)
}

func (h CLIHandler) TriggerNow(ctx context.Context) (dto.TriggerResult, error) {
	return h.usecase.TriggerNow(ctx)
}

func (h CLIHandler) Status(ctx context.Context) (dto.ReminderStatus, error) {
	return h.usecase.Status(ctx)
}
