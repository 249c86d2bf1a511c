package out

import (
	"context"

	notifyin "moonlight/internal/modules/notify/port/in"
	reminderout "moonlight/internal/modules/reminder/port/out"
)

// NotifyDispatchAdapter routes reminder notifications through the
// notifier plugin dispatch.
type NotifyDispatchAdapter struct {
	notify notifyin.Usecase
}

func NewNotifyDispatchAdapter(notify notifyin.Usecase) reminderout.Notifier {
	return &NotifyDispatchAdapter{notify: notify}
}

func (a *NotifyDispatchAdapter) Notify(ctx context.Context, title, body string) error {
	_, err := a.notify.Send(ctx, title, body)
	return err
}
