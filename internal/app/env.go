package app

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
)

// EnvConfig carries environment-provided defaults. Flags override these.
// Provider keys follow the vendors' conventional variable names.
type EnvConfig struct {
	Provider string `env:"PAGEBRIEF_PROVIDER"`
	Model    string `env:"PAGEBRIEF_MODEL"`
	StoreDir string `env:"PAGEBRIEF_STORE_DIR"`
	CacheDir string `env:"PAGEBRIEF_CACHE_DIR"`

	AnthropicKey string `env:"ANTHROPIC_API_KEY"`
	OpenAIKey    string `env:"OPENAI_API_KEY"`
	GoogleKey    string `env:"GEMINI_API_KEY"`
	XAIKey       string `env:"XAI_API_KEY"`
}

// LoadEnv parses environment variables into an EnvConfig.
func LoadEnv() (EnvConfig, error) {
	var ec EnvConfig
	if err := env.Parse(&ec); err != nil {
		return EnvConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return ec, nil
}

// KeyFor returns the environment-provided API key for a provider identifier,
// or empty.
func (ec EnvConfig) KeyFor(provider string) string {
	switch provider {
	case "anthropic":
		return ec.AnthropicKey
	case "openai":
		return ec.OpenAIKey
	case "google":
		return ec.GoogleKey
	case "xai":
		return ec.XAIKey
	}
	return ""
}

// LoadEnvFiles loads one or more dotenv files of KEY=VALUE pairs into the
// process environment. Later files override earlier ones. Lines starting with
// '#' and blank lines are ignored. Values are not expanded.
func LoadEnvFiles(paths ...string) error {
	for _, p := range paths {
		if strings.TrimSpace(p) == "" {
			continue
		}
		if err := loadEnvFile(p); err != nil {
			// Missing files are not fatal; continue to next path
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return err
		}
	}
	return nil
}

func loadEnvFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		// Simple KEY=VALUE parser; stops at first '='
		eq := strings.IndexByte(line, '=')
		if eq <= 0 {
			// ignore malformed lines silently
			continue
		}
		key := strings.TrimSpace(line[:eq])
		val := strings.TrimSpace(line[eq+1:])
		if len(val) >= 2 {
			if (val[0] == '"' && val[len(val)-1] == '"') || (val[0] == '\'' && val[len(val)-1] == '\'') {
				val = val[1 : len(val)-1]
			}
		}
		_ = os.Setenv(key, val)
	}
	return scanner.Err()
}
