package dto

type SaveGoalInput struct {
	ID          string
	Title       string
	Description string
	TargetDate  string
	Status      string
}

type GoalOutput struct {
	ID          string
	Title       string
	Description string
	TargetDate  string
	Status      string
	Progress    int
	CreatedAt   string
}
