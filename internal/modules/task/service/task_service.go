package service

import (
	"context"
	"fmt"
	"strings"

	"moonlight/internal/modules/task/domain"
	taskout "moonlight/internal/modules/task/port/out"
	"moonlight/internal/platform/clock"
	"moonlight/internal/platform/id"
)

const (
	defaultTitle            = "Untitled Task"
	defaultEstimatedMinutes = 30
)

type TaskService struct {
	clock clock.Clock
	idGen id.Generator
	store taskout.TaskStore
}

func NewTaskService(clk clock.Clock, idGen id.Generator, store taskout.TaskStore) *TaskService {
	return &TaskService{clock: clk, idGen: idGen, store: store}
}

// normalize fills omitted fields with their defaults before validation.
func (s *TaskService) normalize(task domain.Task) domain.Task {
	if strings.TrimSpace(task.ID) == "" {
		task.ID = s.idGen.New()
	}
	if strings.TrimSpace(task.Title) == "" {
		task.Title = defaultTitle
	}
	if task.ScheduledDate == "" {
		task.ScheduledDate = s.clock.Now().Format(domain.DateLayout)
	}
	if task.Status == "" {
		task.Status = domain.StatusPending
	}
	if task.Difficulty == "" {
		task.Difficulty = domain.DifficultyMedium
	}
	if task.EstimatedMinutes <= 0 {
		task.EstimatedMinutes = defaultEstimatedMinutes
	}
	return task
}

func (s *TaskService) Save(ctx context.Context, task domain.Task) (domain.Task, error) {
	task = s.normalize(task)
	if err := task.Validate(); err != nil {
		return domain.Task{}, fmt.Errorf("validate task: %w", err)
	}
	if err := s.store.Save(ctx, task); err != nil {
		return domain.Task{}, fmt.Errorf("save task: %w", err)
	}
	return task, nil
}

// SaveBatch validates the whole batch before anything is written, so a
// bad entry rejects the batch instead of leaving a partial one behind.
func (s *TaskService) SaveBatch(ctx context.Context, tasks []domain.Task) ([]domain.Task, error) {
	normalized := make([]domain.Task, 0, len(tasks))
	for i, task := range tasks {
		task = s.normalize(task)
		if err := task.Validate(); err != nil {
			return nil, fmt.Errorf("validate task %d: %w", i, err)
		}
		normalized = append(normalized, task)
	}
	if len(normalized) == 0 {
		return normalized, nil
	}
	if err := s.store.BulkUpsert(ctx, normalized); err != nil {
		return nil, fmt.Errorf("save task batch: %w", err)
	}
	return normalized, nil
}

func (s *TaskService) Complete(ctx context.Context, taskID string) (domain.Task, error) {
	task, err := s.store.FindByID(ctx, taskID)
	if err != nil {
		return domain.Task{}, fmt.Errorf("load task: %w", err)
	}
	task = task.Complete(s.clock.Now())
	if err := s.store.Save(ctx, task); err != nil {
		return domain.Task{}, fmt.Errorf("save task: %w", err)
	}
	return task, nil
}

func (s *TaskService) Skip(ctx context.Context, taskID string) (domain.Task, error) {
	task, err := s.store.FindByID(ctx, taskID)
	if err != nil {
		return domain.Task{}, fmt.Errorf("load task: %w", err)
	}
	task = task.Skip()
	if err := s.store.Save(ctx, task); err != nil {
		return domain.Task{}, fmt.Errorf("save task: %w", err)
	}
	return task, nil
}

func (s *TaskService) List(ctx context.Context) ([]domain.Task, error) {
	return s.store.List(ctx)
}

func (s *TaskService) ListByGoal(ctx context.Context, goalID string) ([]domain.Task, error) {
	all, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	scoped := make([]domain.Task, 0, len(all))
	for _, task := range all {
		if task.GoalID == goalID {
			scoped = append(scoped, task)
		}
	}
	return scoped, nil
}

// Progress returns completed and total counts for a goal's tasks.
func (s *TaskService) Progress(ctx context.Context, goalID string) (completed, total int, err error) {
	tasks, err := s.ListByGoal(ctx, goalID)
	if err != nil {
		return 0, 0, err
	}
	for _, task := range tasks {
		if task.Status == domain.StatusCompleted {
			completed++
		}
	}
	return completed, len(tasks), nil
}
