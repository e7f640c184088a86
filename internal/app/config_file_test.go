package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFileConfig_MissingFileIsNil(t *testing.T) {
	fc, err := LoadFileConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fc != nil {
		t.Fatalf("expected nil config for missing file")
	}
}

func TestLoadFileConfig_AppliesBelowFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `provider: google
model: gemini-2.0-flash
store:
  dir: /tmp/pb-store
cache:
  dir: /tmp/pb-cache
  maxAge: 24h
language: fi
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	fc, err := LoadFileConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	// Flag-set fields win; empty fields fill from the file.
	cfg := Config{Provider: "openai"}
	fc.Apply(&cfg)
	if cfg.Provider != "openai" {
		t.Fatalf("flag value should win, got %q", cfg.Provider)
	}
	if cfg.Model != "gemini-2.0-flash" {
		t.Fatalf("expected model from file, got %q", cfg.Model)
	}
	if cfg.StoreDir != "/tmp/pb-store" || cfg.CacheDir != "/tmp/pb-cache" {
		t.Fatalf("expected dirs from file, got %+v", cfg)
	}
	if cfg.CacheMaxAge != 24*time.Hour {
		t.Fatalf("expected 24h max age, got %v", cfg.CacheMaxAge)
	}
	if cfg.LanguageHint != "fi" {
		t.Fatalf("expected language from file, got %q", cfg.LanguageHint)
	}
}

func TestLoadFileConfig_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte(":\t{not yaml"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadFileConfig(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestEnvConfig_KeyFor(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "a-key")
	t.Setenv("XAI_API_KEY", "x-key")

	ec, err := LoadEnv()
	if err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if got := ec.KeyFor("anthropic"); got != "a-key" {
		t.Fatalf("expected anthropic key, got %q", got)
	}
	if got := ec.KeyFor("xai"); got != "x-key" {
		t.Fatalf("expected xai key, got %q", got)
	}
	if got := ec.KeyFor("unknown"); got != "" {
		t.Fatalf("expected empty key for unknown provider, got %q", got)
	}
}

func TestLoadEnvFiles_SetsVariables(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "# comment\nPAGEBRIEF_PROVIDER=openai\nPAGEBRIEF_MODEL=\"gpt-4o-mini\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("PAGEBRIEF_PROVIDER", "")
	t.Setenv("PAGEBRIEF_MODEL", "")

	if err := LoadEnvFiles(path, "does-not-exist.env"); err != nil {
		t.Fatalf("LoadEnvFiles: %v", err)
	}
	if got := os.Getenv("PAGEBRIEF_PROVIDER"); got != "openai" {
		t.Fatalf("expected provider from dotenv, got %q", got)
	}
	if got := os.Getenv("PAGEBRIEF_MODEL"); got != "gpt-4o-mini" {
		t.Fatalf("expected unquoted model, got %q", got)
	}
}
