package out

import (
	"context"

	reminderout "moonlight/internal/modules/reminder/port/out"
	taskin "moonlight/internal/modules/task/port/in"
)

// TaskQueryAdapter answers the scheduler's "what is pending today"
// question from the task module.
type TaskQueryAdapter struct {
	tasks taskin.Usecase
}

func NewTaskQueryAdapter(tasks taskin.Usecase) reminderout.PendingTaskSource {
	return &TaskQueryAdapter{tasks: tasks}
}

func (a *TaskQueryAdapter) PendingTitles(ctx context.Context, date string) ([]string, error) {
	day, err := a.tasks.Today(ctx, date)
	if err != nil {
		return nil, err
	}
	titles := make([]string, 0, len(day))
	for _, task := range day {
		if task.Status == "pending" {
			titles = append(titles, task.Title)
		}
	}
	return titles, nil
}
