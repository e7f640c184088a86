package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// ChatCompletionsClient serves the OpenAI-compatible chat-completions shape
// (Bearer auth). Both the OpenAI and xAI providers use it; they differ only
// in base URL and identifier.
type ChatCompletionsClient struct {
	name  string
	model string
	inner *openai.Client
}

// NewOpenAIClient builds a client against api.openai.com.
func NewOpenAIClient(apiKey, model string, httpClient *http.Client) *ChatCompletionsClient {
	return newChatCompletionsClient(OpenAI, apiKey, model, "", httpClient)
}

// NewXAIClient builds a client against the xAI chat-completions endpoint,
// which is OpenAI-compatible.
func NewXAIClient(apiKey, model string, httpClient *http.Client) *ChatCompletionsClient {
	return newChatCompletionsClient(XAI, apiKey, model, "https://api.x.ai/v1", httpClient)
}

// NewChatCompletionsClient builds a client for an explicit base URL. Tests
// point this at a stub server.
func NewChatCompletionsClient(name, apiKey, model, baseURL string, httpClient *http.Client) *ChatCompletionsClient {
	return newChatCompletionsClient(name, apiKey, model, baseURL, httpClient)
}

func newChatCompletionsClient(name, apiKey, model, baseURL string, httpClient *http.Client) *ChatCompletionsClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}
	return &ChatCompletionsClient{
		name:  name,
		model: model,
		inner: openai.NewClientWithConfig(cfg),
	}
}

func (c *ChatCompletionsClient) Name() string { return c.name }

// Complete issues a chat completion and returns the first choice's content.
func (c *ChatCompletionsClient) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.inner.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0.3,
		N:           1,
	})
	if err != nil {
		return "", c.wrapErr(err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s: no choices returned", c.name)
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("%s: empty completion", c.name)
	}
	return text, nil
}

// Validate lists models with the configured key, bounded by the validation
// timeout.
func (c *ChatCompletionsClient) Validate(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, validateTimeout)
	defer cancel()
	if _, err := c.inner.ListModels(ctx); err != nil {
		return c.wrapErr(err)
	}
	return nil
}

// wrapErr converts go-openai error types into APIError so callers always see
// the numeric status code.
func (c *ChatCompletionsClient) wrapErr(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &APIError{Provider: c.name, StatusCode: apiErr.HTTPStatusCode, Message: apiErr.Message}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &APIError{Provider: c.name, StatusCode: reqErr.HTTPStatusCode, Message: reqErr.Error()}
	}
	return fmt.Errorf("%s: %w", c.name, err)
}
