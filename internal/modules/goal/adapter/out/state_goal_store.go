package out

import (
	"context"
	"encoding/json"
	"fmt"

	"moonlight/internal/modules/goal/domain"
	goalout "moonlight/internal/modules/goal/port/out"
	apperrors "moonlight/internal/platform/errors"
	"moonlight/internal/platform/statefile"
)

// StateGoalStore keeps the goal collection in the shared JSON state
// document, mirroring the original single-document layout.
type StateGoalStore struct {
	state *statefile.Store
}

func NewStateGoalStore(state *statefile.Store) goalout.GoalStore {
	return &StateGoalStore{state: state}
}

func (s *StateGoalStore) Save(_ context.Context, goal domain.Goal) error {
	return s.state.Update(statefile.KeyGoals, func(raw json.RawMessage) (json.RawMessage, error) {
		goals, err := decodeGoals(raw)
		if err != nil {
			return nil, err
		}
		replaced := false
		for i := range goals {
			if goals[i].ID == goal.ID {
				goals[i] = goal
				replaced = true
				break
			}
		}
		if !replaced {
			goals = append(goals, goal)
		}
		return json.Marshal(goals)
	})
}

func (s *StateGoalStore) FindByID(_ context.Context, id string) (domain.Goal, error) {
	raw, err := s.state.Read(statefile.KeyGoals)
	if err != nil {
		return domain.Goal{}, err
	}
	goals, err := decodeGoals(raw)
	if err != nil {
		return domain.Goal{}, err
	}
	for _, goal := range goals {
		if goal.ID == id {
			return goal, nil
		}
	}
	return domain.Goal{}, apperrors.ErrNotFound
}

func (s *StateGoalStore) List(_ context.Context) ([]domain.Goal, error) {
	raw, err := s.state.Read(statefile.KeyGoals)
	if err != nil {
		return nil, err
	}
	return decodeGoals(raw)
}

func (s *StateGoalStore) Delete(_ context.Context, id string) error {
	return s.state.Update(statefile.KeyGoals, func(raw json.RawMessage) (json.RawMessage, error) {
		goals, err := decodeGoals(raw)
		if err != nil {
			return nil, err
		}
		kept := goals[:0]
		for _, goal := range goals {
			if goal.ID != id {
				kept = append(kept, goal)
			}
		}
		return json.Marshal(kept)
	})
}

func decodeGoals(raw json.RawMessage) ([]domain.Goal, error) {
	if raw == nil {
		return []domain.Goal{}, nil
	}
	var goals []domain.Goal
	if err := json.Unmarshal(raw, &goals); err != nil {
		return nil, fmt.Errorf("decode goal collection: %w", err)
	}
	return goals, nil
}
