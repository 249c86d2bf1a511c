package dto

// SaveTaskInput carries caller-provided task fields. Zero-value fields
// fall back to the documented defaults at the service boundary.
type SaveTaskInput struct {
	ID               string
	GoalID           string
	Title            string
	Description      string
	ScheduledDate    string
	Status           string
	Difficulty       string
	EstimatedMinutes int
}

type TaskOutput struct {
	ID               string
	GoalID           string
	Title            string
	Description      string
	ScheduledDate    string
	Status           string
	CompletedAt      string
	Difficulty       string
	EstimatedMinutes int
}

// GoalTaskCount summarises a goal's tasks for progress bookkeeping.
type GoalTaskCount struct {
	Total     int
	Completed int
}
