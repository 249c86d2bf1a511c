package out_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"moonlight/internal/modules/task/adapter/out"
	"moonlight/internal/modules/task/domain"
	apperrors "moonlight/internal/platform/errors"
	"moonlight/internal/platform/statefile"
)

func newStore(t *testing.T) *statefile.Store {
	t.Helper()
	return statefile.New(filepath.Join(t.TempDir(), "state.json"))
}

func task(id, goalID, title string) domain.Task {
	return domain.Task{
		ID:               id,
		GoalID:           goalID,
		Title:            title,
		ScheduledDate:    "2026-08-28",
		Status:           domain.StatusPending,
		Difficulty:       domain.DifficultyMedium,
		EstimatedMinutes: 30,
	}
}

func TestBulkUpsertRoundTrip(t *testing.T) {
	t.Parallel()
	store := out.NewStateTaskStore(newStore(t))
	ctx := context.Background()

	if err := store.BulkUpsert(ctx, []domain.Task{
		task("t1", "g1", "first"),
		task("t2", "g1", "second"),
	}); err != nil {
		t.Fatalf("BulkUpsert: %v", err)
	}

	got, err := store.FindByID(ctx, "t2")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Title != "second" {
		t.Fatalf("title = %q, want second", got.Title)
	}

	// Upserting an existing id replaces, not duplicates.
	updated := task("t1", "g1", "first revised")
	if err := store.Save(ctx, updated); err != nil {
		t.Fatalf("Save: %v", err)
	}
	all, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("list has %d tasks, want 2", len(all))
	}
	if all[0].Title != "first revised" {
		t.Fatalf("title = %q, want first revised", all[0].Title)
	}
}

func TestDeleteByGoalLeavesOtherGoals(t *testing.T) {
	t.Parallel()
	store := out.NewStateTaskStore(newStore(t))
	ctx := context.Background()

	if err := store.BulkUpsert(ctx, []domain.Task{
		task("t1", "g1", "doomed"),
		task("t2", "g2", "survivor"),
	}); err != nil {
		t.Fatalf("BulkUpsert: %v", err)
	}
	if err := store.DeleteByGoal(ctx, "g1"); err != nil {
		t.Fatalf("DeleteByGoal: %v", err)
	}

	if _, err := store.FindByID(ctx, "t1"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("t1 lookup err = %v, want ErrNotFound", err)
	}
	if _, err := store.FindByID(ctx, "t2"); err != nil {
		t.Fatalf("t2 should survive, got %v", err)
	}
}

func TestFindByIDMissing(t *testing.T) {
	t.Parallel()
	store := out.NewStateTaskStore(newStore(t))
	if _, err := store.FindByID(context.Background(), "nope"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
