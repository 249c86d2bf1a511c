package domain

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

type Theme string

const ThemeDark Theme = "dark"

// Settings is the single user preference record. There is exactly one
// per state document.
type Settings struct {
	AIBaseURL            string `json:"openaiBaseUrl"`
	AIAPIKey             string `json:"openaiApiKey"`
	AIModel              string `json:"modelName"`
	NotificationsEnabled bool   `json:"notificationsEnabled"`
	NotificationTime     string `json:"notificationTime"`
	DailyTaskCount       int    `json:"dailyTaskCount"`
	Theme                Theme  `json:"theme"`
}

// Defaults returns the settings a fresh installation starts with.
func Defaults() Settings {
	return Settings{
		AIBaseURL:            "https://api.openai.com/v1",
		AIAPIKey:             "",
		AIModel:              "gpt-4o-mini",
		NotificationsEnabled: true,
		NotificationTime:     "09:00",
		DailyTaskCount:       3,
		Theme:                ThemeDark,
	}
}

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

func (t Theme) Validate() error {
	if t != ThemeDark {
		return fmt.Errorf("unsupported theme %q", string(t))
	}
	return nil
}

func (s Settings) Validate() error {
	if strings.TrimSpace(s.AIBaseURL) == "" {
		return fmt.Errorf("ai base url is required")
	}
	if u, err := url.Parse(s.AIBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("ai base url must be absolute, got %q", s.AIBaseURL)
	}
	if strings.TrimSpace(s.AIModel) == "" {
		return fmt.Errorf("ai model is required")
	}
	if !clockPattern.MatchString(s.NotificationTime) {
		return fmt.Errorf("notification time must be HH:MM, got %q", s.NotificationTime)
	}
	if s.DailyTaskCount < 1 {
		return fmt.Errorf("daily task count must be at least 1, got %d", s.DailyTaskCount)
	}
	return s.Theme.Validate()
}
