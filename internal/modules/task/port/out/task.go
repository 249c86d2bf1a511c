package out

import (
	"context"

	"moonlight/internal/modules/task/domain"
)

type TaskStore interface {
	Save(ctx context.Context, task domain.Task) error
	// BulkUpsert writes the whole batch inside a single document update.
	BulkUpsert(ctx context.Context, tasks []domain.Task) error
	FindByID(ctx context.Context, id string) (domain.Task, error)
	List(ctx context.Context) ([]domain.Task, error)
	DeleteByGoal(ctx context.Context, goalID string) error
}

// TaskIndexProjector maintains a derived query index over the task
// collection. The state document stays the source of truth; the index
// can always be rebuilt from it.
type TaskIndexProjector interface {
	Reset(ctx context.Context) error
	Upsert(ctx context.Context, task domain.Task) error
	DeleteByGoal(ctx context.Context, goalID string) error
	// ScheduledOn lists task ids scheduled on the date, pending first
	// then by estimated minutes ascending.
	ScheduledOn(ctx context.Context, date string) ([]string, error)
	PendingOn(ctx context.Context, date string) ([]string, error)
}
