package in

import (
	"context"

	"moonlight/internal/modules/notify/dto"
)

type Usecase interface {
	ListNotifiers(ctx context.Context) ([]dto.NotifierInfo, error)
	Doctor(ctx context.Context) ([]dto.DoctorResult, error)
	// Send delivers the message through every enabled notifier, in
	// manifest order. With none configured the message falls back to
	// stderr so a reminder is never silently lost.
	Send(ctx context.Context, title, body string) (dto.SendReport, error)
}
