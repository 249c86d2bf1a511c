package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"
)

var (
	// ErrMissingCredential means a hosted endpoint was called without an
	// API key. Local endpoints never need one.
	ErrMissingCredential = errors.New("api key required for hosted endpoint")
	// ErrUnrecognizedResponse means the completion body matched none of
	// the known provider shapes.
	ErrUnrecognizedResponse = errors.New("unrecognized completion response shape")
	// ErrMissingTasksArray means the model's JSON had no "tasks" array.
	ErrMissingTasksArray = errors.New("completion payload has no tasks array")
)

// RequestError is a non-2xx completion response.
type RequestError struct {
	Status int
	Body   string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("completion request failed with status %d: %s", e.Status, snippet(e.Body))
}

// PayloadError means the model's text could not be read as a JSON
// object.
type PayloadError struct {
	Raw string
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("completion text is not a JSON object: %s", snippet(e.Raw))
}

func snippet(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 120 {
		return s[:120] + "..."
	}
	return s
}

// IsLocalBaseURL reports whether the endpoint host resolves to this
// machine or a private network, in which case no credential is needed
// and strict JSON response mode is not requested.
func IsLocalBaseURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	host := u.Hostname()
	if host == "" {
		return false
	}
	if strings.EqualFold(host, "localhost") || strings.HasSuffix(strings.ToLower(host), ".localhost") {
		return true
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return false
	}
	return ip.IsLoopback() || ip.IsPrivate()
}

// GoalContext is the slice of goal state the prompt is built from.
type GoalContext struct {
	Title          string
	Description    string
	TargetDate     string
	CompletedCount int
}

// PlanningWindowDays is how far ahead one generation plans.
const PlanningWindowDays = 7

// TaskCountFor converts the daily preference into the batch size for a
// one-week planning window.
func TaskCountFor(dailyTaskCount int) int {
	if dailyTaskCount < 1 {
		dailyTaskCount = 1
	}
	return dailyTaskCount * PlanningWindowDays
}

// BuildPrompt renders the completion prompt for a goal. The model is
// asked for strict JSON so the reply survives the lenient extractor
// even when the provider wraps it in prose.
func BuildPrompt(goal GoalContext, taskCount int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a productivity assistant. Break the following goal into %d small, concrete daily tasks covering the next %d days.\n\n", taskCount, PlanningWindowDays)
	fmt.Fprintf(&b, "Goal: %s\n", goal.Title)
	if goal.Description != "" {
		fmt.Fprintf(&b, "Details: %s\n", goal.Description)
	}
	if goal.TargetDate != "" {
		fmt.Fprintf(&b, "Target date: %s\n", goal.TargetDate)
	}
	fmt.Fprintf(&b, "Tasks already completed: %d\n\n", goal.CompletedCount)
	b.WriteString("Respond with ONLY a JSON object, no prose, in exactly this shape:\n")
	b.WriteString(`{"tasks":[{"title":"...","description":"...","difficulty":"easy|medium|hard","estimatedMinutes":30,"daysFromNow":0}]}`)
	b.WriteString("\ndaysFromNow is 0 for today, 1 for tomorrow, and so on. Spread the tasks across the window.")
	return b.String()
}

// contentPaths are the known provider response shapes, in priority
// order: OpenAI chat, Ollama, Anthropic-ish, bare message.
func extractors() []func(map[string]any) (string, bool) {
	return []func(map[string]any) (string, bool){
		func(m map[string]any) (string, bool) {
			choices, ok := m["choices"].([]any)
			if !ok || len(choices) == 0 {
				return "", false
			}
			first, ok := choices[0].(map[string]any)
			if !ok {
				return "", false
			}
			message, ok := first["message"].(map[string]any)
			if !ok {
				return "", false
			}
			content, ok := message["content"].(string)
			return content, ok
		},
		func(m map[string]any) (string, bool) {
			content, ok := m["response"].(string)
			return content, ok
		},
		func(m map[string]any) (string, bool) {
			content, ok := m["content"].(string)
			return content, ok
		},
		func(m map[string]any) (string, bool) {
			message, ok := m["message"].(map[string]any)
			if !ok {
				return "", false
			}
			content, ok := message["content"].(string)
			return content, ok
		},
	}
}

// ExtractContent pulls the model's text out of a completion body,
// trying each known provider shape in order. A body that is itself a
// JSON string is taken verbatim.
func ExtractContent(body []byte) (string, error) {
	var m map[string]any
	if err := json.Unmarshal(body, &m); err == nil {
		for _, extract := range extractors() {
			if content, ok := extract(m); ok {
				return content, nil
			}
		}
		return "", ErrUnrecognizedResponse
	}
	var s string
	if err := json.Unmarshal(body, &s); err == nil {
		return s, nil
	}
	return "", ErrUnrecognizedResponse
}

// ExtractJSONObject recovers the JSON object from model text that may
// be wrapped in prose or code fences: everything from the first "{" to
// the last "}" is taken.
func ExtractJSONObject(text string) (string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", &PayloadError{Raw: text}
	}
	return text[start : end+1], nil
}

// TaskDraft is one generated task before persistence.
type TaskDraft struct {
	Title            string
	Description      string
	Difficulty       string
	EstimatedMinutes int
	DaysFromNow      int
	ScheduledDate    string
}

type rawDraft struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	Difficulty       string `json:"difficulty"`
	EstimatedMinutes int    `json:"estimatedMinutes"`
	DaysFromNow      int    `json:"daysFromNow"`
}

const dateLayout = "2006-01-02"

// ParseDrafts reads the extracted JSON object into task drafts,
// filling omitted fields with defaults and resolving daysFromNow
// against today. Order is preserved as the model produced it.
func ParseDrafts(payload string, today time.Time) ([]TaskDraft, error) {
	var envelope struct {
		Tasks *[]rawDraft `json:"tasks"`
	}
	if err := json.Unmarshal([]byte(payload), &envelope); err != nil {
		return nil, &PayloadError{Raw: payload}
	}
	if envelope.Tasks == nil {
		return nil, ErrMissingTasksArray
	}
	drafts := make([]TaskDraft, 0, len(*envelope.Tasks))
	for _, raw := range *envelope.Tasks {
		draft := TaskDraft{
			Title:            strings.TrimSpace(raw.Title),
			Description:      raw.Description,
			Difficulty:       raw.Difficulty,
			EstimatedMinutes: raw.EstimatedMinutes,
			DaysFromNow:      raw.DaysFromNow,
		}
		if draft.Title == "" {
			draft.Title = "Untitled Task"
		}
		switch draft.Difficulty {
		case "easy", "medium", "hard":
		default:
			draft.Difficulty = "medium"
		}
		if draft.EstimatedMinutes <= 0 {
			draft.EstimatedMinutes = 30
		}
		if draft.DaysFromNow < 0 {
			draft.DaysFromNow = 0
		}
		draft.ScheduledDate = today.AddDate(0, 0, draft.DaysFromNow).Format(dateLayout)
		drafts = append(drafts, draft)
	}
	return drafts, nil
}
