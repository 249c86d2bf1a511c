package out

import (
	"context"
	"encoding/json"
	"fmt"

	"moonlight/internal/modules/task/domain"
	taskout "moonlight/internal/modules/task/port/out"
	apperrors "moonlight/internal/platform/errors"
	"moonlight/internal/platform/statefile"
)

// StateTaskStore keeps the task collection in the shared JSON state
// document alongside goals and settings.
type StateTaskStore struct {
	state *statefile.Store
}

func NewStateTaskStore(state *statefile.Store) taskout.TaskStore {
	return &StateTaskStore{state: state}
}

func (s *StateTaskStore) Save(ctx context.Context, task domain.Task) error {
	return s.BulkUpsert(ctx, []domain.Task{task})
}

func (s *StateTaskStore) BulkUpsert(_ context.Context, batch []domain.Task) error {
	return s.state.Update(statefile.KeyTasks, func(raw json.RawMessage) (json.RawMessage, error) {
		tasks, err := decodeTasks(raw)
		if err != nil {
			return nil, err
		}
		index := make(map[string]int, len(tasks))
		for i, task := range tasks {
			index[task.ID] = i
		}
		for _, task := range batch {
			if i, ok := index[task.ID]; ok {
				tasks[i] = task
				continue
			}
			index[task.ID] = len(tasks)
			tasks = append(tasks, task)
		}
		return json.Marshal(tasks)
	})
}

func (s *StateTaskStore) FindByID(_ context.Context, id string) (domain.Task, error) {
	raw, err := s.state.Read(statefile.KeyTasks)
	if err != nil {
		return domain.Task{}, err
	}
	tasks, err := decodeTasks(raw)
	if err != nil {
		return domain.Task{}, err
	}
	for _, task := range tasks {
		if task.ID == id {
			return task, nil
		}
	}
	return domain.Task{}, apperrors.ErrNotFound
}

func (s *StateTaskStore) List(_ context.Context) ([]domain.Task, error) {
	raw, err := s.state.Read(statefile.KeyTasks)
	if err != nil {
		return nil, err
	}
	return decodeTasks(raw)
}

func (s *StateTaskStore) DeleteByGoal(_ context.Context, goalID string) error {
	return s.state.Update(statefile.KeyTasks, func(raw json.RawMessage) (json.RawMessage, error) {
		tasks, err := decodeTasks(raw)
		if err != nil {
			return nil, err
		}
		kept := tasks[:0]
		for _, task := range tasks {
			if task.GoalID != goalID {
				kept = append(kept, task)
			}
		}
		return json.Marshal(kept)
	})
}

func decodeTasks(raw json.RawMessage) ([]domain.Task, error) {
	if raw == nil {
		return []domain.Task{}, nil
	}
	var tasks []domain.Task
	if err := json.Unmarshal(raw, &tasks); err != nil {
		return nil, fmt.Errorf("decode task collection: %w", err)
	}
	return tasks, nil
}
