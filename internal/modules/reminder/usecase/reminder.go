package usecase

import (
	"context"

	"moonlight/internal/modules/reminder/domain"
	"moonlight/internal/modules/reminder/dto"
	reminderin "moonlight/internal/modules/reminder/port/in"
	"moonlight/internal/modules/reminder/service"
	"moonlight/internal/platform/clock"
)

type Interactor struct {
	svc   *service.ReminderService
	clock clock.Clock
}

func NewInteractor(svc *service.ReminderService, clk clock.Clock) reminderin.Usecase {
	return &Interactor{svc: svc, clock: clk}
}

func (i *Interactor) Arm(ctx context.Context) error {
	return i.svc.Arm(ctx)
}

func (i *Interactor) Disarm(context.Context) error {
	i.svc.Disarm()
	return nil
}

func (i *Interactor) TriggerNow(ctx context.Context) (dto.TriggerResult, error) {
	result, err := i.svc.CheckOnce(ctx, i.clock.Now(), true)
	if err != nil {
		return dto.TriggerResult{}, err
	}
	out := dto.TriggerResult{
		Fired:     result.Fired,
		TaskCount: result.TaskCount,
		Body:      result.Body,
	}
	if result.Fired {
		out.Title = domain.NotificationTitle
	}
	return out, nil
}

func (i *Interactor) Status(ctx context.Context) (dto.ReminderStatus, error) {
	prefs, err := i.svc.Preferences(ctx)
	if err != nil {
		return dto.ReminderStatus{}, err
	}
	return dto.ReminderStatus{
		Armed:            i.svc.Armed(),
		NotificationTime: prefs.Time,
	}, nil
}
