package service

import (
	"context"
	"strings"

	"moonlight/internal/modules/goal/domain"
	goalout "moonlight/internal/modules/goal/port/out"
	"moonlight/internal/platform/clock"
	"moonlight/internal/platform/id"
)

type GoalService struct {
	clock clock.Clock
	idGen id.Generator
	store goalout.GoalStore
}

func NewGoalService(clock clock.Clock, idGen id.Generator, store goalout.GoalStore) *GoalService {
	return &GoalService{clock: clock, idGen: idGen, store: store}
}

// Save creates a new goal or updates an existing one. New goals start
// active with zero progress; updates keep the stored progress and creation
// time, since progress is derived from tasks and never edited directly.
func (s *GoalService) Save(ctx context.Context, goal domain.Goal) (domain.Goal, error) {
	if strings.TrimSpace(goal.ID) == "" {
		goal.ID = s.idGen.New()
		goal.CreatedAt = s.clock.Now()
		goal.Progress = 0
		if goal.Status == "" {
			goal.Status = domain.StatusActive
		}
	} else {
		existing, err := s.store.FindByID(ctx, goal.ID)
		if err == nil {
			goal.CreatedAt = existing.CreatedAt
			goal.Progress = existing.Progress
			if goal.Status == "" {
				goal.Status = existing.Status
			}
		} else {
			if goal.CreatedAt.IsZero() {
				goal.CreatedAt = s.clock.Now()
			}
			if goal.Status == "" {
				goal.Status = domain.StatusActive
			}
		}
	}
	if err := goal.Validate(); err != nil {
		return domain.Goal{}, err
	}
	if err := s.store.Save(ctx, goal); err != nil {
		return domain.Goal{}, err
	}
	return goal, nil
}

func (s *GoalService) Get(ctx context.Context, id string) (domain.Goal, error) {
	return s.store.FindByID(ctx, id)
}

func (s *GoalService) List(ctx context.Context) ([]domain.Goal, error) {
	return s.store.List(ctx)
}

func (s *GoalService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// SetProgress rewrites the goal only when the derived percentage differs
// from the stored one, so task completions that do not move the needle
// cost no extra write.
func (s *GoalService) SetProgress(ctx context.Context, id string, progress int) error {
	goal, err := s.store.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if goal.Progress == progress {
		return nil
	}
	goal.Progress = progress
	if err := goal.Validate(); err != nil {
		return err
	}
	return s.store.Save(ctx, goal)
}
