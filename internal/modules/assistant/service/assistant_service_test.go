package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"moonlight/internal/modules/assistant/domain"
	assistantout "moonlight/internal/modules/assistant/port/out"
	"moonlight/internal/modules/assistant/service"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type staticPrefs struct {
	prefs assistantout.Preferences
}

func (p staticPrefs) Load(context.Context) (assistantout.Preferences, error) {
	return p.prefs, nil
}

type fakeChat struct {
	body     []byte
	err      error
	requests []assistantout.CompletionRequest
	probes   int
}

func (c *fakeChat) Complete(_ context.Context, req assistantout.CompletionRequest) ([]byte, error) {
	c.requests = append(c.requests, req)
	return c.body, c.err
}

func (c *fakeChat) ListModels(context.Context, assistantout.Endpoint) error {
	c.probes++
	return c.err
}

var testNow = time.Date(2026, 8, 28, 8, 0, 0, 0, time.UTC)

func hostedPrefs(apiKey string) staticPrefs {
	return staticPrefs{prefs: assistantout.Preferences{
		Endpoint: assistantout.Endpoint{
			BaseURL: "https://api.openai.com/v1",
			APIKey:  apiKey,
			Model:   "gpt-4o-mini",
		},
		DailyTaskCount: 2,
	}}
}

func localPrefs() staticPrefs {
	return staticPrefs{prefs: assistantout.Preferences{
		Endpoint: assistantout.Endpoint{
			BaseURL: "http://localhost:11434/v1",
			Model:   "llama3",
		},
		DailyTaskCount: 2,
	}}
}

func chatBody(content string) []byte {
	return []byte(`{"choices":[{"message":{"content":` + content + `}}]}`)
}

func TestGenerateRejectsHostedEndpointWithoutKey(t *testing.T) {
	t.Parallel()
	chat := &fakeChat{}
	svc := service.NewAssistantService(fixedClock{now: testNow}, hostedPrefs(""), chat)

	_, err := svc.GenerateDrafts(context.Background(), domain.GoalContext{Title: "g"})
	if !errors.Is(err, domain.ErrMissingCredential) {
		t.Fatalf("err = %v, want ErrMissingCredential", err)
	}
	if len(chat.requests) != 0 {
		t.Fatal("no request should be issued without a credential")
	}
}

func TestGenerateSizesBatchFromPreferences(t *testing.T) {
	t.Parallel()
	chat := &fakeChat{body: chatBody(`"{\"tasks\":[{\"title\":\"a\"}]}"`)}
	svc := service.NewAssistantService(fixedClock{now: testNow}, hostedPrefs("sk-test"), chat)

	drafts, err := svc.GenerateDrafts(context.Background(), domain.GoalContext{Title: "g"})
	if err != nil {
		t.Fatalf("GenerateDrafts: %v", err)
	}
	if len(drafts) != 1 {
		t.Fatalf("got %d drafts, want 1", len(drafts))
	}
	if len(chat.requests) != 1 {
		t.Fatalf("issued %d requests, want 1", len(chat.requests))
	}
	if !strings.Contains(chat.requests[0].Prompt, "14 small") {
		t.Fatalf("prompt should ask for 14 tasks (2 per day), got: %s", chat.requests[0].Prompt)
	}
	if !chat.requests[0].StrictJSON {
		t.Fatal("hosted endpoint should request strict JSON")
	}
}

func TestGenerateLocalEndpointSkipsStrictJSON(t *testing.T) {
	t.Parallel()
	chat := &fakeChat{body: chatBody(`"{\"tasks\":[]}"`)}
	svc := service.NewAssistantService(fixedClock{now: testNow}, localPrefs(), chat)

	if _, err := svc.GenerateDrafts(context.Background(), domain.GoalContext{Title: "g"}); err != nil {
		t.Fatalf("GenerateDrafts: %v", err)
	}
	if chat.requests[0].StrictJSON {
		t.Fatal("local endpoint should not request strict JSON")
	}
}

func TestGenerateSurfacesUnparsableReply(t *testing.T) {
	t.Parallel()
	chat := &fakeChat{body: chatBody(`"no json in here at all"`)}
	svc := service.NewAssistantService(fixedClock{now: testNow}, localPrefs(), chat)

	_, err := svc.GenerateDrafts(context.Background(), domain.GoalContext{Title: "g"})
	var payloadErr *domain.PayloadError
	if !errors.As(err, &payloadErr) {
		t.Fatalf("err = %v, want PayloadError", err)
	}
}

func TestGenerateSchedulesFromToday(t *testing.T) {
	t.Parallel()
	chat := &fakeChat{body: chatBody(`"{\"tasks\":[{\"title\":\"later\",\"daysFromNow\":3}]}"`)}
	svc := service.NewAssistantService(fixedClock{now: testNow}, localPrefs(), chat)

	drafts, err := svc.GenerateDrafts(context.Background(), domain.GoalContext{Title: "g"})
	if err != nil {
		t.Fatalf("GenerateDrafts: %v", err)
	}
	if drafts[0].ScheduledDate != "2026-08-31" {
		t.Fatalf("scheduledDate = %q, want 2026-08-31", drafts[0].ScheduledDate)
	}
}

func TestProbe(t *testing.T) {
	t.Parallel()
	chat := &fakeChat{}
	svc := service.NewAssistantService(fixedClock{now: testNow}, localPrefs(), chat)

	endpoint, local, err := svc.Probe(context.Background())
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if !local {
		t.Fatal("localhost endpoint should classify as local")
	}
	if endpoint.Model != "llama3" || chat.probes != 1 {
		t.Fatalf("endpoint = %+v, probes = %d", endpoint, chat.probes)
	}
}

func TestProbeHostedEndpointWithoutKeyStillAsksEndpoint(t *testing.T) {
	t.Parallel()
	chat := &fakeChat{}
	svc := service.NewAssistantService(fixedClock{now: testNow}, hostedPrefs(""), chat)

	endpoint, local, err := svc.Probe(context.Background())
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if local {
		t.Fatal("hosted endpoint should not classify as local")
	}
	if endpoint.BaseURL != "https://api.openai.com/v1" || chat.probes != 1 {
		t.Fatalf("endpoint = %+v, probes = %d", endpoint, chat.probes)
	}
}
