package usecase

import (
	"context"
	"fmt"

	"moonlight/internal/modules/assistant/domain"
	"moonlight/internal/modules/assistant/dto"
	assistantin "moonlight/internal/modules/assistant/port/in"
	"moonlight/internal/modules/assistant/service"
	goalin "moonlight/internal/modules/goal/port/in"
	taskdto "moonlight/internal/modules/task/dto"
	taskin "moonlight/internal/modules/task/port/in"
)

type Interactor struct {
	svc   *service.AssistantService
	goals goalin.Usecase
	tasks taskin.Usecase
}

func NewInteractor(svc *service.AssistantService, goals goalin.Usecase, tasks taskin.Usecase) assistantin.Usecase {
	return &Interactor{svc: svc, goals: goals, tasks: tasks}
}

func (i *Interactor) GenerateForGoal(ctx context.Context, goalID string) (dto.GenerationResult, error) {
	goal, err := i.goals.GetGoal(ctx, goalID)
	if err != nil {
		return dto.GenerationResult{}, fmt.Errorf("load goal: %w", err)
	}
	counts, err := i.tasks.CountByGoal(ctx, goalID)
	if err != nil {
		return dto.GenerationResult{}, fmt.Errorf("count goal tasks: %w", err)
	}

	drafts, err := i.svc.GenerateDrafts(ctx, domain.GoalContext{
		Title:          goal.Title,
		Description:    goal.Description,
		TargetDate:     goal.TargetDate,
		CompletedCount: counts.Completed,
	})
	if err != nil {
		return dto.GenerationResult{}, err
	}

	inputs := make([]taskdto.SaveTaskInput, 0, len(drafts))
	for _, draft := range drafts {
		inputs = append(inputs, taskdto.SaveTaskInput{
			GoalID:           goalID,
			Title:            draft.Title,
			Description:      draft.Description,
			ScheduledDate:    draft.ScheduledDate,
			Difficulty:       draft.Difficulty,
			EstimatedMinutes: draft.EstimatedMinutes,
		})
	}
	saved, err := i.tasks.SaveTasks(ctx, inputs)
	if err != nil {
		return dto.GenerationResult{}, fmt.Errorf("persist generated tasks: %w", err)
	}

	result := dto.GenerationResult{GoalID: goalID, GoalTitle: goal.Title}
	for _, task := range saved {
		result.Tasks = append(result.Tasks, dto.GeneratedTask{
			ID:               task.ID,
			Title:            task.Title,
			ScheduledDate:    task.ScheduledDate,
			Difficulty:       task.Difficulty,
			EstimatedMinutes: task.EstimatedMinutes,
		})
	}
	return result, nil
}

func (i *Interactor) TestConnection(ctx context.Context) (dto.ConnectionStatus, error) {
	endpoint, local, err := i.svc.Probe(ctx)
	if err != nil {
		return dto.ConnectionStatus{}, err
	}
	return dto.ConnectionStatus{
		BaseURL: endpoint.BaseURL,
		Model:   endpoint.Model,
		Local:   local,
	}, nil
}
