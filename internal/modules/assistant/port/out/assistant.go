package out

import "context"

// Endpoint identifies one OpenAI-compatible completion endpoint.
type Endpoint struct {
	BaseURL string
	APIKey  string
	Model   string
}

type CompletionRequest struct {
	Endpoint Endpoint
	Prompt   string
	// StrictJSON asks the provider for a JSON-only response. Hosted
	// providers honor it; local servers often reject the field.
	StrictJSON bool
}

type ChatClient interface {
	// Complete returns the raw response body. Transport and non-2xx
	// failures surface as errors; the body is not interpreted here.
	Complete(ctx context.Context, req CompletionRequest) ([]byte, error)
	// ListModels probes the endpoint's model listing route.
	ListModels(ctx context.Context, endpoint Endpoint) error
}

// Preferences is the slice of user settings generation needs.
type Preferences struct {
	Endpoint       Endpoint
	DailyTaskCount int
}

type PreferenceSource interface {
	Load(ctx context.Context) (Preferences, error)
}
