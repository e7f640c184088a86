package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const googleDefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GoogleClient calls the Google Generative Language API. Auth is the
// x-goog-api-key header.
type GoogleClient struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

type googleRequest struct {
	Contents          []googleContent  `json:"contents"`
	SystemInstruction *googleContent   `json:"systemInstruction,omitempty"`
	GenerationConfig  *googleGenConfig `json:"generationConfig,omitempty"`
}

type googleContent struct {
	Parts []googlePart `json:"parts"`
}

type googlePart struct {
	Text string `json:"text"`
}

type googleGenConfig struct {
	Temperature float64 `json:"temperature"`
}

type googleResponse struct {
	Candidates []struct {
		Content googleContent `json:"content"`
	} `json:"candidates"`
}

func (c *GoogleClient) Name() string { return Google }

func (c *GoogleClient) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return googleDefaultBaseURL
}

// Complete sends the prompt to models/{model}:generateContent and joins the
// parts of the first candidate.
func (c *GoogleClient) Complete(ctx context.Context, system, user string) (string, error) {
	payload := googleRequest{
		Contents:         []googleContent{{Parts: []googlePart{{Text: user}}}},
		GenerationConfig: &googleGenConfig{Temperature: 0.3},
	}
	if strings.TrimSpace(system) != "" {
		payload.SystemInstruction = &googleContent{Parts: []googlePart{{Text: system}}}
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("google: marshal request: %w", err)
	}
	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL(), c.Model)
	body, err := c.do(ctx, http.MethodPost, url, raw)
	if err != nil {
		return "", err
	}
	var out googleResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("google: decode response: %w", err)
	}
	if len(out.Candidates) == 0 {
		return "", fmt.Errorf("google: no candidates returned")
	}
	var sb strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("google: empty completion")
	}
	return text, nil
}

// Validate lists models with the configured key, bounded by the validation
// timeout.
func (c *GoogleClient) Validate(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, validateTimeout)
	defer cancel()
	_, err := c.do(ctx, http.MethodGet, c.baseURL()+"/models", nil)
	return err
}

func (c *GoogleClient) do(ctx context.Context, method, url string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("google: new request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("x-goog-api-key", c.APIKey)

	resp, err := orDefault(c.HTTPClient).Do(req)
	if err != nil {
		return nil, fmt.Errorf("google: %w", err)
	}
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("google: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Provider: Google, StatusCode: resp.StatusCode, Message: errorText(out)}
	}
	return out, nil
}
