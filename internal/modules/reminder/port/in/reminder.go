package in

import (
	"context"

	"moonlight/internal/modules/reminder/dto"
)

type Usecase interface {
	// Arm starts (or restarts) the minute scheduler using the current
	// notification preferences. Arming while disabled is a disarm.
	Arm(ctx context.Context) error
	Disarm(ctx context.Context) error
	// TriggerNow runs one reminder check immediately, ignoring the
	// configured time of day.
	TriggerNow(ctx context.Context) (dto.TriggerResult, error)
	Status(ctx context.Context) (dto.ReminderStatus, error)
}
