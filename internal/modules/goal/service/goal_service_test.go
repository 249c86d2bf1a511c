package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"moonlight/internal/modules/goal/domain"
	"moonlight/internal/modules/goal/service"
	apperrors "moonlight/internal/platform/errors"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type seqID struct{ n int }

func (g *seqID) New() string {
	g.n++
	return fmt.Sprintf("goal-%d", g.n)
}

type memGoalStore struct {
	goals map[string]domain.Goal
	saves int
}

func newMemGoalStore() *memGoalStore {
	return &memGoalStore{goals: map[string]domain.Goal{}}
}

func (s *memGoalStore) Save(_ context.Context, goal domain.Goal) error {
	s.goals[goal.ID] = goal
	s.saves++
	return nil
}

func (s *memGoalStore) FindByID(_ context.Context, id string) (domain.Goal, error) {
	goal, ok := s.goals[id]
	if !ok {
		return domain.Goal{}, apperrors.ErrNotFound
	}
	return goal, nil
}

func (s *memGoalStore) List(_ context.Context) ([]domain.Goal, error) {
	out := make([]domain.Goal, 0, len(s.goals))
	for _, goal := range s.goals {
		out = append(out, goal)
	}
	return out, nil
}

func (s *memGoalStore) Delete(_ context.Context, id string) error {
	delete(s.goals, id)
	return nil
}

var testNow = time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)

func newService(store *memGoalStore) *service.GoalService {
	return service.NewGoalService(fixedClock{now: testNow}, &seqID{}, store)
}

func TestSaveNewGoal(t *testing.T) {
	t.Parallel()
	store := newMemGoalStore()
	svc := newService(store)

	goal, err := svc.Save(context.Background(), domain.Goal{Title: "Learn the guitar"})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if goal.ID != "goal-1" {
		t.Fatalf("id = %q, want generated goal-1", goal.ID)
	}
	if goal.Status != domain.StatusActive || goal.Progress != 0 {
		t.Fatalf("new goal = %+v, want active with zero progress", goal)
	}
	if !goal.CreatedAt.Equal(testNow) {
		t.Fatalf("createdAt = %v, want clock time", goal.CreatedAt)
	}
}

func TestSaveUpdatePreservesDerivedFields(t *testing.T) {
	t.Parallel()
	store := newMemGoalStore()
	svc := newService(store)
	ctx := context.Background()

	created, err := svc.Save(ctx, domain.Goal{Title: "Learn the guitar"})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := svc.SetProgress(ctx, created.ID, 40); err != nil {
		t.Fatalf("SetProgress: %v", err)
	}

	updated, err := svc.Save(ctx, domain.Goal{ID: created.ID, Title: "Learn fingerstyle guitar"})
	if err != nil {
		t.Fatalf("Save update: %v", err)
	}
	if updated.Title != "Learn fingerstyle guitar" {
		t.Fatalf("title = %q", updated.Title)
	}
	if updated.Progress != 40 {
		t.Fatalf("progress = %d, want preserved 40", updated.Progress)
	}
	if !updated.CreatedAt.Equal(testNow) {
		t.Fatalf("createdAt changed on update: %v", updated.CreatedAt)
	}
}

func TestSaveRejectsInvalidGoal(t *testing.T) {
	t.Parallel()
	store := newMemGoalStore()
	svc := newService(store)
	if _, err := svc.Save(context.Background(), domain.Goal{}); err == nil {
		t.Fatal("expected validation error for empty title")
	}
}

func TestSetProgressSkipsUnchangedWrite(t *testing.T) {
	t.Parallel()
	store := newMemGoalStore()
	svc := newService(store)
	ctx := context.Background()

	created, err := svc.Save(ctx, domain.Goal{Title: "g"})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	savesAfterCreate := store.saves

	if err := svc.SetProgress(ctx, created.ID, 0); err != nil {
		t.Fatalf("SetProgress: %v", err)
	}
	if store.saves != savesAfterCreate {
		t.Fatal("unchanged progress should not rewrite the goal")
	}

	if err := svc.SetProgress(ctx, created.ID, 33); err != nil {
		t.Fatalf("SetProgress: %v", err)
	}
	if store.saves != savesAfterCreate+1 {
		t.Fatal("changed progress should write exactly once")
	}
}
