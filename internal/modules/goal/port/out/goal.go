package out

import (
	"context"

	"moonlight/internal/modules/goal/domain"
)

type GoalStore interface {
	Save(ctx context.Context, goal domain.Goal) error
	FindByID(ctx context.Context, id string) (domain.Goal, error)
	List(ctx context.Context) ([]domain.Goal, error)
	Delete(ctx context.Context, id string) error
}

// TaskPurger removes every task belonging to a deleted goal.
type TaskPurger interface {
	PurgeByGoal(ctx context.Context, goalID string) error
}
