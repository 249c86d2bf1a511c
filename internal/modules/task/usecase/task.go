package usecase

import (
	"context"
	"fmt"
	"time"

	goalin "moonlight/internal/modules/goal/port/in"
	"moonlight/internal/modules/task/domain"
	"moonlight/internal/modules/task/dto"
	taskin "moonlight/internal/modules/task/port/in"
	taskout "moonlight/internal/modules/task/port/out"
	"moonlight/internal/modules/task/service"
)

type Interactor struct {
	svc       *service.TaskService
	projector taskout.TaskIndexProjector
	goals     goalin.Usecase
}

func NewInteractor(svc *service.TaskService, projector taskout.TaskIndexProjector, goals goalin.Usecase) taskin.Usecase {
	return &Interactor{svc: svc, projector: projector, goals: goals}
}

func (i *Interactor) SaveTask(ctx context.Context, input dto.SaveTaskInput) (dto.TaskOutput, error) {
	task, err := i.svc.Save(ctx, fromInput(input))
	if err != nil {
		return dto.TaskOutput{}, err
	}
	if err := i.project(ctx, task); err != nil {
		return dto.TaskOutput{}, err
	}
	return toOutput(task), nil
}

func (i *Interactor) SaveTasks(ctx context.Context, inputs []dto.SaveTaskInput) ([]dto.TaskOutput, error) {
	drafts := make([]domain.Task, 0, len(inputs))
	for _, input := range inputs {
		drafts = append(drafts, fromInput(input))
	}
	tasks, err := i.svc.SaveBatch(ctx, drafts)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TaskOutput, 0, len(tasks))
	for _, task := range tasks {
		if err := i.project(ctx, task); err != nil {
			return nil, err
		}
		out = append(out, toOutput(task))
	}
	return out, nil
}

func (i *Interactor) CompleteTask(ctx context.Context, id string) (dto.TaskOutput, error) {
	task, err := i.svc.Complete(ctx, id)
	if err != nil {
		return dto.TaskOutput{}, err
	}
	if err := i.project(ctx, task); err != nil {
		return dto.TaskOutput{}, err
	}
	if err := i.refreshProgress(ctx, task.GoalID); err != nil {
		return dto.TaskOutput{}, err
	}
	return toOutput(task), nil
}

func (i *Interactor) SkipTask(ctx context.Context, id string) (dto.TaskOutput, error) {
	task, err := i.svc.Skip(ctx, id)
	if err != nil {
		return dto.TaskOutput{}, err
	}
	if err := i.project(ctx, task); err != nil {
		return dto.TaskOutput{}, err
	}
	if err := i.refreshProgress(ctx, task.GoalID); err != nil {
		return dto.TaskOutput{}, err
	}
	return toOutput(task), nil
}

func (i *Interactor) ListTasks(ctx context.Context) ([]dto.TaskOutput, error) {
	tasks, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	return toOutputs(tasks), nil
}

func (i *Interactor) ListByGoal(ctx context.Context, goalID string) ([]dto.TaskOutput, error) {
	tasks, err := i.svc.ListByGoal(ctx, goalID)
	if err != nil {
		return nil, err
	}
	return toOutputs(tasks), nil
}

func (i *Interactor) CountByGoal(ctx context.Context, goalID string) (dto.GoalTaskCount, error) {
	completed, total, err := i.svc.Progress(ctx, goalID)
	if err != nil {
		return dto.GoalTaskCount{}, err
	}
	return dto.GoalTaskCount{Completed: completed, Total: total}, nil
}

// Today resolves the date through the query index so the ordering
// (pending first) comes from one place.
func (i *Interactor) Today(ctx context.Context, date string) ([]dto.TaskOutput, error) {
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return nil, fmt.Errorf("parse date: %w", err)
	}
	ids, err := i.projector.ScheduledOn(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("query task index: %w", err)
	}
	all, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Task, len(all))
	for _, task := range all {
		byID[task.ID] = task
	}
	out := make([]dto.TaskOutput, 0, len(ids))
	for _, id := range ids {
		if task, ok := byID[id]; ok {
			out = append(out, toOutput(task))
		}
	}
	return out, nil
}

// Reindex drops and rebuilds the query index from the state document.
func (i *Interactor) Reindex(ctx context.Context) (int, error) {
	tasks, err := i.svc.List(ctx)
	if err != nil {
		return 0, err
	}
	if err := i.projector.Reset(ctx); err != nil {
		return 0, fmt.Errorf("reset task index: %w", err)
	}
	for _, task := range tasks {
		if err := i.projector.Upsert(ctx, task); err != nil {
			return 0, fmt.Errorf("index task %s: %w", task.ID, err)
		}
	}
	return len(tasks), nil
}

func (i *Interactor) project(ctx context.Context, task domain.Task) error {
	if i.projector == nil {
		return nil
	}
	if err := i.projector.Upsert(ctx, task); err != nil {
		return fmt.Errorf("index task %s: %w", task.ID, err)
	}
	return nil
}

func (i *Interactor) refreshProgress(ctx context.Context, goalID string) error {
	if i.goals == nil {
		return nil
	}
	completed, total, err := i.svc.Progress(ctx, goalID)
	if err != nil {
		return err
	}
	return i.goals.SetProgress(ctx, goalID, completed, total)
}

func fromInput(input dto.SaveTaskInput) domain.Task {
	return domain.Task{
		ID:               input.ID,
		GoalID:           input.GoalID,
		Title:            input.Title,
		Description:      input.Description,
		ScheduledDate:    input.ScheduledDate,
		Status:           domain.Status(input.Status),
		Difficulty:       domain.Difficulty(input.Difficulty),
		EstimatedMinutes: input.EstimatedMinutes,
	}
}

func toOutput(task domain.Task) dto.TaskOutput {
	out := dto.TaskOutput{
		ID:               task.ID,
		GoalID:           task.GoalID,
		Title:            task.Title,
		Description:      task.Description,
		ScheduledDate:    task.ScheduledDate,
		Status:           string(task.Status),
		Difficulty:       string(task.Difficulty),
		EstimatedMinutes: task.EstimatedMinutes,
	}
	if task.CompletedAt != nil {
		out.CompletedAt = task.CompletedAt.Format(time.RFC3339)
	}
	return out
}

func toOutputs(tasks []domain.Task) []dto.TaskOutput {
	out := make([]dto.TaskOutput, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, toOutput(task))
	}
	return out
}
