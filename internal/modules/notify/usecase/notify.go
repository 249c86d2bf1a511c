package usecase

import (
	"context"

	"moonlight/internal/modules/notify/domain"
	"moonlight/internal/modules/notify/dto"
	notifyin "moonlight/internal/modules/notify/port/in"
	"moonlight/internal/modules/notify/service"
)

type Interactor struct {
	svc *service.NotifyService
}

func NewInteractor(svc *service.NotifyService) notifyin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) ListNotifiers(ctx context.Context) ([]dto.NotifierInfo, error) {
	return i.svc.List(ctx)
}

func (i *Interactor) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return i.svc.Doctor(ctx)
}

func (i *Interactor) Send(ctx context.Context, title, body string) (dto.SendReport, error) {
	return i.svc.Send(ctx, domain.Message{Title: title, Body: body})
}
