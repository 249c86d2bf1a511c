package out

import (
	"context"

	goalout "moonlight/internal/modules/goal/port/out"
	taskout "moonlight/internal/modules/task/port/out"
)

// TaskCascadeAdapter satisfies the goal module's purge port with the task
// module's storage ports, keeping the cascade wiring out of the usecases.
type TaskCascadeAdapter struct {
	store     taskout.TaskStore
	projector taskout.TaskIndexProjector
}

func NewTaskCascadeAdapter(store taskout.TaskStore, projector taskout.TaskIndexProjector) goalout.TaskPurger {
	return &TaskCascadeAdapter{store: store, projector: projector}
}

func (a *TaskCascadeAdapter) PurgeByGoal(ctx context.Context, goalID string) error {
	if err := a.store.DeleteByGoal(ctx, goalID); err != nil {
		return err
	}
	if a.projector != nil {
		return a.projector.DeleteByGoal(ctx, goalID)
	}
	return nil
}
