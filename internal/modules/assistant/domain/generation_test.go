package domain_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"moonlight/internal/modules/assistant/domain"
)

func TestIsLocalBaseURL(t *testing.T) {
	t.Parallel()
	cases := []struct {
		url   string
		local bool
	}{
		{"https://api.openai.com/v1", false},
		{"http://localhost:11434/v1", true},
		{"http://127.0.0.1:1234/v1", true},
		{"http://[::1]:8080/v1", true},
		{"http://192.168.1.20:8080/v1", true},
		{"http://10.0.0.5/v1", true},
		{"http://172.20.1.1/v1", true},
		{"http://172.32.0.1/v1", false},
		{"http://ollama.localhost/v1", true},
		{"https://mylocalhost.example.com/v1", false},
		{"not a url", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := domain.IsLocalBaseURL(tc.url); got != tc.local {
			t.Errorf("IsLocalBaseURL(%q) = %v, want %v", tc.url, got, tc.local)
		}
	}
}

func TestTaskCountFor(t *testing.T) {
	t.Parallel()
	if got := domain.TaskCountFor(2); got != 14 {
		t.Fatalf("TaskCountFor(2) = %d, want 14", got)
	}
	if got := domain.TaskCountFor(0); got != 7 {
		t.Fatalf("TaskCountFor(0) = %d, want floor of one per day", got)
	}
}

func TestBuildPromptIncludesGoalState(t *testing.T) {
	t.Parallel()
	prompt := domain.BuildPrompt(domain.GoalContext{
		Title:          "Learn the guitar",
		Description:    "Acoustic, fingerstyle",
		TargetDate:     "2026-12-01",
		CompletedCount: 4,
	}, 21)
	for _, want := range []string{"Learn the guitar", "Acoustic, fingerstyle", "2026-12-01", "completed: 4", "21 small"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestExtractContentShapes(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		body string
		want string
	}{
		{"openai chat", `{"choices":[{"message":{"content":"hello"}}]}`, "hello"},
		{"ollama generate", `{"response":"hello"}`, "hello"},
		{"bare content", `{"content":"hello"}`, "hello"},
		{"bare message", `{"message":{"content":"hello"}}`, "hello"},
		{"json string body", `"hello"`, "hello"},
	}
	for _, tc := range cases {
		got, err := domain.ExtractContent([]byte(tc.body))
		if err != nil {
			t.Errorf("%s: %v", tc.name, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestExtractContentPrefersChatShape(t *testing.T) {
	t.Parallel()
	body := `{"choices":[{"message":{"content":"from chat"}}],"response":"from ollama"}`
	got, err := domain.ExtractContent([]byte(body))
	if err != nil {
		t.Fatalf("ExtractContent: %v", err)
	}
	if got != "from chat" {
		t.Fatalf("got %q, want the chat shape to win", got)
	}
}

func TestExtractContentUnknownShape(t *testing.T) {
	t.Parallel()
	if _, err := domain.ExtractContent([]byte(`{"data":[1,2,3]}`)); !errors.Is(err, domain.ErrUnrecognizedResponse) {
		t.Fatalf("err = %v, want ErrUnrecognizedResponse", err)
	}
}

func TestExtractJSONObjectLenient(t *testing.T) {
	t.Parallel()
	text := "Sure! Here you go:\n{\"tasks\":[]}\nHope that helps."
	got, err := domain.ExtractJSONObject(text)
	if err != nil {
		t.Fatalf("ExtractJSONObject: %v", err)
	}
	if got != `{"tasks":[]}` {
		t.Fatalf("got %q", got)
	}

	if _, err := domain.ExtractJSONObject("no braces here"); err == nil {
		t.Fatal("expected error when no object present")
	}
	var payloadErr *domain.PayloadError
	_, err = domain.ExtractJSONObject("}{")
	if !errors.As(err, &payloadErr) {
		t.Fatalf("err = %v, want PayloadError for reversed braces", err)
	}
}

func TestParseDraftsDefaults(t *testing.T) {
	t.Parallel()
	today := time.Date(2026, 8, 28, 15, 0, 0, 0, time.UTC)
	drafts, err := domain.ParseDrafts(`{"tasks":[{}]}`, today)
	if err != nil {
		t.Fatalf("ParseDrafts: %v", err)
	}
	if len(drafts) != 1 {
		t.Fatalf("got %d drafts, want 1", len(drafts))
	}
	d := drafts[0]
	if d.Title != "Untitled Task" || d.Difficulty != "medium" || d.EstimatedMinutes != 30 {
		t.Fatalf("defaults not applied: %+v", d)
	}
	if d.ScheduledDate != "2026-08-28" {
		t.Fatalf("scheduledDate = %q, want today", d.ScheduledDate)
	}
}

func TestParseDraftsSchedulesByOffset(t *testing.T) {
	t.Parallel()
	today := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	drafts, err := domain.ParseDrafts(`{"tasks":[
		{"title":"a","daysFromNow":3},
		{"title":"b","daysFromNow":-2},
		{"title":"a","daysFromNow":3}
	]}`, today)
	if err != nil {
		t.Fatalf("ParseDrafts: %v", err)
	}
	if drafts[0].ScheduledDate != "2026-08-31" {
		t.Fatalf("offset 3 scheduled %q, want 2026-08-31", drafts[0].ScheduledDate)
	}
	if drafts[1].ScheduledDate != "2026-08-28" {
		t.Fatalf("negative offset should clamp to today, got %q", drafts[1].ScheduledDate)
	}
	// Duplicates are kept in model order, not collapsed.
	if len(drafts) != 3 || drafts[2].Title != "a" {
		t.Fatalf("drafts = %+v, want all three in order", drafts)
	}
}

func TestParseDraftsMissingTasksArray(t *testing.T) {
	t.Parallel()
	if _, err := domain.ParseDrafts(`{}`, time.Now()); !errors.Is(err, domain.ErrMissingTasksArray) {
		t.Fatalf("err = %v, want ErrMissingTasksArray", err)
	}
	var payloadErr *domain.PayloadError
	if _, err := domain.ParseDrafts(`not json`, time.Now()); !errors.As(err, &payloadErr) {
		t.Fatalf("err = %v, want PayloadError", err)
	}
}
