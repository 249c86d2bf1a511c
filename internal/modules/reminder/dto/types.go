package dto

type ReminderStatus struct {
	Armed            bool
	NotificationTime string
}

// TriggerResult reports what a reminder check did.
type TriggerResult struct {
	Fired     bool
	TaskCount int
	Title     string
	Body      string
}
