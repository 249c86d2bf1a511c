package usecase

import (
	"context"
	"time"

	"moonlight/internal/modules/goal/domain"
	"moonlight/internal/modules/goal/dto"
	goalin "moonlight/internal/modules/goal/port/in"
	goalout "moonlight/internal/modules/goal/port/out"
	"moonlight/internal/modules/goal/service"
)

type Interactor struct {
	svc    *service.GoalService
	purger goalout.TaskPurger
}

func NewInteractor(svc *service.GoalService, purger goalout.TaskPurger) goalin.Usecase {
	return &Interactor{svc: svc, purger: purger}
}

func (i *Interactor) SaveGoal(ctx context.Context, input dto.SaveGoalInput) (dto.GoalOutput, error) {
	goal, err := i.svc.Save(ctx, domain.Goal{
		ID:          input.ID,
		Title:       input.Title,
		Description: input.Description,
		TargetDate:  input.TargetDate,
		Status:      domain.Status(input.Status),
	})
	if err != nil {
		return dto.GoalOutput{}, err
	}
	return toOutput(goal), nil
}

// DeleteGoal removes the goal and cascades to every task that references
// it. Tasks are purged after the goal row so a failed purge leaves an
// orphaned task set rather than a half-deleted goal.
func (i *Interactor) DeleteGoal(ctx context.Context, id string) error {
	if err := i.svc.Delete(ctx, id); err != nil {
		return err
	}
	if i.purger != nil {
		return i.purger.PurgeByGoal(ctx, id)
	}
	return nil
}

func (i *Interactor) ListGoals(ctx context.Context) ([]dto.GoalOutput, error) {
	goals, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.GoalOutput, 0, len(goals))
	for _, goal := range goals {
		out = append(out, toOutput(goal))
	}
	return out, nil
}

func (i *Interactor) GetGoal(ctx context.Context, id string) (dto.GoalOutput, error) {
	goal, err := i.svc.Get(ctx, id)
	if err != nil {
		return dto.GoalOutput{}, err
	}
	return toOutput(goal), nil
}

func (i *Interactor) SetProgress(ctx context.Context, id string, completed, total int) error {
	return i.svc.SetProgress(ctx, id, domain.ComputeProgress(completed, total))
}

func toOutput(goal domain.Goal) dto.GoalOutput {
	return dto.GoalOutput{
		ID:          goal.ID,
		Title:       goal.Title,
		Description: goal.Description,
		TargetDate:  goal.TargetDate,
		Status:      string(goal.Status),
		Progress:    goal.Progress,
		CreatedAt:   goal.CreatedAt.Format(time.RFC3339),
	}
}
