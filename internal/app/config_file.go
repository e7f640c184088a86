package app

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig is the optional YAML configuration file schema. Nested sections
// map naturally to the CLI flags; flags override file values.
type FileConfig struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`

	Store struct {
		Dir string `yaml:"dir"`
	} `yaml:"store"`

	Cache struct {
		Dir    string `yaml:"dir"`
		MaxAge string `yaml:"maxAge"`
	} `yaml:"cache"`

	Language  string `yaml:"language"`
	UserAgent string `yaml:"userAgent"`
	Verbose   bool   `yaml:"verbose"`
}

// LoadFileConfig reads and parses a YAML config file. A missing file is not
// an error when the path was not explicitly requested.
func LoadFileConfig(path string) (*FileConfig, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}
	var fc FileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	if fc.Cache.MaxAge != "" {
		if _, err := time.ParseDuration(fc.Cache.MaxAge); err != nil {
			return nil, fmt.Errorf("parse config file: cache.maxAge: %w", err)
		}
	}
	return &fc, nil
}

// Apply fills empty Config fields from the file config. Flag and env values
// already present in cfg win.
func (fc *FileConfig) Apply(cfg *Config) {
	if fc == nil || cfg == nil {
		return
	}
	if cfg.Provider == "" {
		cfg.Provider = fc.Provider
	}
	if cfg.Model == "" {
		cfg.Model = fc.Model
	}
	if cfg.StoreDir == "" {
		cfg.StoreDir = fc.Store.Dir
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = fc.Cache.Dir
	}
	if cfg.CacheMaxAge == 0 && fc.Cache.MaxAge != "" {
		// Validated during load; a parse failure here leaves the zero value.
		if d, err := time.ParseDuration(fc.Cache.MaxAge); err == nil {
			cfg.CacheMaxAge = d
		}
	}
	if cfg.LanguageHint == "" {
		cfg.LanguageHint = fc.Language
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = fc.UserAgent
	}
	if fc.Verbose {
		cfg.Verbose = true
	}
}
