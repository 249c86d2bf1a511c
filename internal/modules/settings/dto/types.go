package dto

// UpdateSettingsInput is a partial update. Nil fields keep their
// current value.
type UpdateSettingsInput struct {
	AIBaseURL            *string
	AIAPIKey             *string
	AIModel              *string
	NotificationsEnabled *bool
	NotificationTime     *string
	DailyTaskCount       *int
	Theme                *string
}

type SettingsOutput struct {
	AIBaseURL            string
	AIKeySet             bool
	AIModel              string
	NotificationsEnabled bool
	NotificationTime     string
	DailyTaskCount       int
	Theme                string
}
