package service

import (
	"context"
	"fmt"

	"moonlight/internal/modules/assistant/domain"
	assistantout "moonlight/internal/modules/assistant/port/out"
	"moonlight/internal/platform/clock"
)

type AssistantService struct {
	clock clock.Clock
	prefs assistantout.PreferenceSource
	chat  assistantout.ChatClient
}

func NewAssistantService(clk clock.Clock, prefs assistantout.PreferenceSource, chat assistantout.ChatClient) *AssistantService {
	return &AssistantService{clock: clk, prefs: prefs, chat: chat}
}

// GenerateDrafts runs one completion for the goal and parses the reply
// into scheduled task drafts. Hosted endpoints without an API key are
// rejected before any request goes out.
func (s *AssistantService) GenerateDrafts(ctx context.Context, goal domain.GoalContext) ([]domain.TaskDraft, error) {
	prefs, err := s.prefs.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load preferences: %w", err)
	}
	local := domain.IsLocalBaseURL(prefs.Endpoint.BaseURL)
	if !local && prefs.Endpoint.APIKey == "" {
		return nil, domain.ErrMissingCredential
	}

	prompt := domain.BuildPrompt(goal, domain.TaskCountFor(prefs.DailyTaskCount))
	body, err := s.chat.Complete(ctx, assistantout.CompletionRequest{
		Endpoint:   prefs.Endpoint,
		Prompt:     prompt,
		StrictJSON: !local,
	})
	if err != nil {
		return nil, err
	}

	content, err := domain.ExtractContent(body)
	if err != nil {
		return nil, err
	}
	payload, err := domain.ExtractJSONObject(content)
	if err != nil {
		return nil, err
	}
	return domain.ParseDrafts(payload, s.clock.Now())
}

// Probe checks the endpoint answers and reports how it is classified.
// No credential precondition here: the request goes out as configured
// and the endpoint's own response decides the outcome.
func (s *AssistantService) Probe(ctx context.Context) (assistantout.Endpoint, bool, error) {
	prefs, err := s.prefs.Load(ctx)
	if err != nil {
		return assistantout.Endpoint{}, false, fmt.Errorf("load preferences: %w", err)
	}
	local := domain.IsLocalBaseURL(prefs.Endpoint.BaseURL)
	if err := s.chat.ListModels(ctx, prefs.Endpoint); err != nil {
		return assistantout.Endpoint{}, false, err
	}
	return prefs.Endpoint, local, nil
}
