package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNew_KnownProviders(t *testing.T) {
	for _, id := range IDs() {
		c, err := New(id, "key", "", nil)
		if err != nil {
			t.Fatalf("New(%q): %v", id, err)
		}
		if c.Name() != id {
			t.Fatalf("expected name %q, got %q", id, c.Name())
		}
	}
}

func TestNew_UnknownProvider(t *testing.T) {
	if _, err := New("mystery", "key", "", nil); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}

func TestAnthropic_AuthHeadersAndResponsePath(t *testing.T) {
	var gotKey, gotVersion string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		gotVersion = r.Header.Get("anthropic-version")
		if r.URL.Path != "/v1/messages" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"hello "},{"type":"text","text":"world"}]}`))
	}))
	defer srv.Close()

	c := &AnthropicClient{APIKey: "sk-ant-test", Model: "claude-3-5-haiku-latest", BaseURL: srv.URL}
	out, err := c.Complete(context.Background(), "sys", "user")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if out != "hello world" {
		t.Fatalf("unexpected completion %q", out)
	}
	if gotKey != "sk-ant-test" {
		t.Fatalf("expected x-api-key header, got %q", gotKey)
	}
	if gotVersion == "" {
		t.Fatalf("expected anthropic-version header")
	}
}

func TestAnthropic_ErrorCarriesStatusCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid x-api-key"}}`))
	}))
	defer srv.Close()

	c := &AnthropicClient{APIKey: "bad", Model: "m", BaseURL: srv.URL}
	_, err := c.Complete(context.Background(), "", "hi")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", apiErr.StatusCode)
	}
	if !strings.Contains(apiErr.Error(), "401") {
		t.Fatalf("error text should include the status code: %q", apiErr.Error())
	}
	if !strings.Contains(apiErr.Message, "invalid x-api-key") {
		t.Fatalf("expected provider message, got %q", apiErr.Message)
	}
}

func TestGoogle_HeaderAndResponsePath(t *testing.T) {
	var gotKey, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-goog-api-key")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"gemini says hi"}]}}]}`))
	}))
	defer srv.Close()

	c := &GoogleClient{APIKey: "g-key", Model: "gemini-2.0-flash", BaseURL: srv.URL}
	out, err := c.Complete(context.Background(), "sys", "user")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if out != "gemini says hi" {
		t.Fatalf("unexpected completion %q", out)
	}
	if gotKey != "g-key" {
		t.Fatalf("expected x-goog-api-key header, got %q", gotKey)
	}
	if gotPath != "/models/gemini-2.0-flash:generateContent" {
		t.Fatalf("unexpected path %q", gotPath)
	}
}

func TestGoogle_ServerErrorCarriesStatusCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))
	defer srv.Close()

	c := &GoogleClient{APIKey: "k", Model: "m", BaseURL: srv.URL}
	_, err := c.Complete(context.Background(), "", "hi")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", apiErr.StatusCode)
	}
}

func TestGoogle_ValidateHitsModels(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"models":[]}`))
	}))
	defer srv.Close()

	c := &GoogleClient{APIKey: "k", Model: "m", BaseURL: srv.URL}
	if err := c.Validate(context.Background()); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if gotPath != "/models" {
		t.Fatalf("unexpected path %q", gotPath)
	}
}

func TestChatCompletions_BearerAuthAndContent(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"openai says hi"}}]}`))
	}))
	defer srv.Close()

	c := NewChatCompletionsClient(OpenAI, "sk-test", "gpt-4o-mini", srv.URL, nil)
	out, err := c.Complete(context.Background(), "sys", "user")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if out != "openai says hi" {
		t.Fatalf("unexpected completion %q", out)
	}
	if gotAuth != "Bearer sk-test" {
		t.Fatalf("expected bearer auth, got %q", gotAuth)
	}
}

func TestChatCompletions_ErrorCarriesStatusCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited","type":"requests"}}`))
	}))
	defer srv.Close()

	c := NewChatCompletionsClient(XAI, "sk-test", "grok-3-mini", srv.URL, nil)
	_, err := c.Complete(context.Background(), "", "hi")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected status 429, got %d", apiErr.StatusCode)
	}
	if apiErr.Provider != XAI {
		t.Fatalf("expected provider xai, got %q", apiErr.Provider)
	}
}
