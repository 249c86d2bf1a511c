package in

import (
	"context"

	"moonlight/internal/modules/notify/dto"
	notifyin "moonlight/internal/modules/notify/port/in"
)

type CLIHandler struct {
	usecase notifyin.Usecase
}

func NewCLIHandler(usecase notifyin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) ListNotifiers(ctx context.Context) ([]dto.NotifierInfo, error) {
	return h.usecase.ListNotifiers(ctx)
}

func (h CLIHandler) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return h.usecase.Doctor(ctx)
}

func (h CLIHandler) Send(ctx context.Context, title, body string) (dto.SendReport, error) {
	return h.usecase.Send(ctx, title, body)
}
