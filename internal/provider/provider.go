package provider

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Provider identifiers form a closed set of four external LLM API vendors.
const (
	Anthropic = "anthropic"
	OpenAI    = "openai"
	Google    = "google"
	XAI       = "xai"
)

// IDs returns the known provider identifiers in display order.
func IDs() []string {
	return []string{Anthropic, OpenAI, Google, XAI}
}

// Known reports whether id names one of the four providers.
func Known(id string) bool {
	switch id {
	case Anthropic, OpenAI, Google, XAI:
		return true
	}
	return false
}

// DefaultModel returns a sensible default model for a provider. Unknown
// identifiers yield an empty string.
func DefaultModel(id string) string {
	switch id {
	case Anthropic:
		return "claude-3-5-haiku-latest"
	case OpenAI:
		return "gpt-4o-mini"
	case Google:
		return "gemini-2.0-flash"
	case XAI:
		return "grok-3-mini"
	}
	return ""
}

// validateTimeout bounds the key-validation probe. The summarization call
// itself carries no client-imposed timeout.
const validateTimeout = 10 * time.Second

// Client is the minimal interface the pipeline needs from a provider. Each of
// the four vendors implements it with its own endpoint, auth header shape,
// request body, and response path.
type Client interface {
	// Name returns the provider identifier.
	Name() string
	// Complete sends a system+user prompt pair and returns the raw model text.
	Complete(ctx context.Context, system, user string) (string, error)
	// Validate probes the API with the configured key, bounded by a 10s
	// timeout. A nil error means the key was accepted.
	Validate(ctx context.Context) error
}

// APIError is a provider failure carrying the HTTP status and response text.
// No retry or backoff is attempted on it.
type APIError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", e.Provider, e.StatusCode, e.Message)
}

// New maps a provider identifier to its client. httpClient may be nil, in
// which case http.DefaultClient is used.
func New(id, apiKey, model string, httpClient *http.Client) (Client, error) {
	if model == "" {
		model = DefaultModel(id)
	}
	switch id {
	case Anthropic:
		return &AnthropicClient{APIKey: apiKey, Model: model, HTTPClient: httpClient}, nil
	case OpenAI:
		return NewOpenAIClient(apiKey, model, httpClient), nil
	case Google:
		return &GoogleClient{APIKey: apiKey, Model: model, HTTPClient: httpClient}, nil
	case XAI:
		return NewXAIClient(apiKey, model, httpClient), nil
	}
	return nil, fmt.Errorf("unknown provider: %q", id)
}

func orDefault(c *http.Client) *http.Client {
	if c != nil {
		return c
	}
	return http.DefaultClient
}
