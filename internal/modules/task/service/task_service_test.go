package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"moonlight/internal/modules/task/domain"
	"moonlight/internal/modules/task/service"
	apperrors "moonlight/internal/platform/errors"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type seqID struct{ n int }

func (g *seqID) New() string {
	g.n++
	return fmt.Sprintf("task-%d", g.n)
}

type memTaskStore struct {
	tasks   map[string]domain.Task
	order   []string
	saves   int
	upserts int
}

func newMemTaskStore() *memTaskStore {
	return &memTaskStore{tasks: map[string]domain.Task{}}
}

func (s *memTaskStore) Save(_ context.Context, task domain.Task) error {
	if _, ok := s.tasks[task.ID]; !ok {
		s.order = append(s.order, task.ID)
	}
	s.tasks[task.ID] = task
	s.saves++
	return nil
}

func (s *memTaskStore) BulkUpsert(ctx context.Context, tasks []domain.Task) error {
	for _, task := range tasks {
		if _, ok := s.tasks[task.ID]; !ok {
			s.order = append(s.order, task.ID)
		}
		s.tasks[task.ID] = task
	}
	s.upserts++
	return nil
}

func (s *memTaskStore) FindByID(_ context.Context, id string) (domain.Task, error) {
	task, ok := s.tasks[id]
	if !ok {
		return domain.Task{}, apperrors.ErrNotFound
	}
	return task, nil
}

func (s *memTaskStore) List(_ context.Context) ([]domain.Task, error) {
	out := make([]domain.Task, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.tasks[id])
	}
	return out, nil
}

func (s *memTaskStore) DeleteByGoal(_ context.Context, goalID string) error {
	kept := s.order[:0]
	for _, id := range s.order {
		if s.tasks[id].GoalID == goalID {
			delete(s.tasks, id)
			continue
		}
		kept = append(kept, id)
	}
	s.order = kept
	return nil
}

var testNow = time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)

func newService(store *memTaskStore) *service.TaskService {
	return service.NewTaskService(fixedClock{now: testNow}, &seqID{}, store)
}

func TestSaveAppliesDefaults(t *testing.T) {
	t.Parallel()
	store := newMemTaskStore()
	svc := newService(store)

	task, err := svc.Save(context.Background(), domain.Task{GoalID: "g1"})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if task.ID != "task-1" {
		t.Fatalf("id = %q, want generated task-1", task.ID)
	}
	if task.Title != "Untitled Task" {
		t.Fatalf("title = %q, want default", task.Title)
	}
	if task.ScheduledDate != "2026-08-28" {
		t.Fatalf("scheduledDate = %q, want today", task.ScheduledDate)
	}
	if task.Status != domain.StatusPending || task.Difficulty != domain.DifficultyMedium {
		t.Fatalf("status/difficulty defaults not applied: %+v", task)
	}
	if task.EstimatedMinutes != 30 {
		t.Fatalf("estimatedMinutes = %d, want 30", task.EstimatedMinutes)
	}
}

func TestSaveBatchRejectsWholeBatchOnBadEntry(t *testing.T) {
	t.Parallel()
	store := newMemTaskStore()
	svc := newService(store)

	_, err := svc.SaveBatch(context.Background(), []domain.Task{
		{GoalID: "g1", Title: "fine"},
		{Title: "missing goal"},
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if store.upserts != 0 || len(store.tasks) != 0 {
		t.Fatalf("store should be untouched after rejected batch, got %d tasks", len(store.tasks))
	}
}

func TestSaveBatchWritesOnce(t *testing.T) {
	t.Parallel()
	store := newMemTaskStore()
	svc := newService(store)

	saved, err := svc.SaveBatch(context.Background(), []domain.Task{
		{GoalID: "g1", Title: "a"},
		{GoalID: "g1", Title: "b"},
		{GoalID: "g1", Title: "c"},
	})
	if err != nil {
		t.Fatalf("SaveBatch: %v", err)
	}
	if len(saved) != 3 {
		t.Fatalf("saved %d tasks, want 3", len(saved))
	}
	if store.upserts != 1 {
		t.Fatalf("upserts = %d, want a single bulk write", store.upserts)
	}
}

func TestCompleteThenProgress(t *testing.T) {
	t.Parallel()
	store := newMemTaskStore()
	svc := newService(store)
	ctx := context.Background()

	for _, title := range []string{"a", "b", "c"} {
		if _, err := svc.Save(ctx, domain.Task{GoalID: "g1", Title: title}); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	done, err := svc.Complete(ctx, "task-1")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if done.CompletedAt == nil || !done.CompletedAt.Equal(testNow) {
		t.Fatalf("completedAt = %v, want %v", done.CompletedAt, testNow)
	}

	completed, total, err := svc.Progress(ctx, "g1")
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	if completed != 1 || total != 3 {
		t.Fatalf("progress = %d/%d, want 1/3", completed, total)
	}
}

func TestCompleteUnknownTask(t *testing.T) {
	t.Parallel()
	svc := newService(newMemTaskStore())
	if _, err := svc.Complete(context.Background(), "missing"); err == nil {
		t.Fatal("expected error for unknown task")
	}
}
