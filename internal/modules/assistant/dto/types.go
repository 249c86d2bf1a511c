package dto

type GeneratedTask struct {
	ID               string
	Title            string
	ScheduledDate    string
	Difficulty       string
	EstimatedMinutes int
}

// GenerationResult is what one planning run produced and persisted.
type GenerationResult struct {
	GoalID    string
	GoalTitle string
	Tasks     []GeneratedTask
}

type ConnectionStatus struct {
	BaseURL string
	Model   string
	Local   bool
}
