package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pagebrief/pagebrief/internal/summary"
)

// Store persists settings, provider records, summary results, and aggregate
// stats as JSON files under fixed string keys in a single directory. API keys
// live here, so directories are 0700 and files 0600.
type Store struct {
	Dir string
}

// Fixed storage keys. Provider and summary records add a suffix.
const (
	keySettings       = "settings"
	keyStats          = "stats"
	providerKeyPrefix = "provider."
	summaryKeyPrefix  = "summary."
)

// Settings is the top-level settings blob. CurrentProvider is one of the
// known provider identifiers or empty.
type Settings struct {
	CurrentProvider string    `json:"currentProvider"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ProviderSettings holds the per-provider configuration. At most one record
// exists per provider identifier; the fixed storage key enforces that.
type ProviderSettings struct {
	APIKey string `json:"apiKey"`
	Model  string `json:"model"`
	// KeyValid caches the last validation verdict. Nil means never checked.
	KeyValid     *bool     `json:"keyValid,omitempty"`
	KeyCheckedAt time.Time `json:"keyCheckedAt,omitempty"`
}

// Stats is the aggregate counters blob. Read-then-write, last write wins.
type Stats struct {
	TotalSummaries int            `json:"totalSummaries"`
	TotalWords     int            `json:"totalWords"`
	ByProvider     map[string]int `json:"byProvider"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// ErrNotFound is returned when a record does not exist under the given key.
var ErrNotFound = errors.New("record not found")

func (s *Store) ensureDir() error {
	if s == nil || s.Dir == "" {
		return errors.New("store dir not configured")
	}
	if err := os.MkdirAll(s.Dir, 0o700); err != nil {
		return err
	}
	// Tighten perms if the directory pre-existed looser.
	if info, err := os.Stat(s.Dir); err == nil {
		if info.Mode()&0o777 != 0o700 {
			_ = os.Chmod(s.Dir, 0o700)
		}
	}
	return nil
}

func (s *Store) pathFor(key string) string {
	return filepath.Join(s.Dir, key+".json")
}

func (s *Store) read(key string, v any) error {
	if err := s.ensureDir(); err != nil {
		return err
	}
	b, err := os.ReadFile(s.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotFound
		}
		return err
	}
	return json.Unmarshal(b, v)
}

func (s *Store) write(key string, v any) error {
	if err := s.ensureDir(); err != nil {
		return err
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	// Write via temp file and rename so readers never see partial JSON.
	p := s.pathFor(key)
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, p)
}

// LoadSettings returns the settings blob, or a zero value when none exists.
func (s *Store) LoadSettings(_ context.Context) (Settings, error) {
	var out Settings
	err := s.read(keySettings, &out)
	if errors.Is(err, ErrNotFound) {
		return Settings{}, nil
	}
	return out, err
}

// SaveSettings replaces the settings blob.
func (s *Store) SaveSettings(_ context.Context, v Settings) error {
	v.UpdatedAt = time.Now().UTC()
	return s.write(keySettings, v)
}

// LoadProvider returns the record for the given provider identifier.
func (s *Store) LoadProvider(_ context.Context, id string) (ProviderSettings, error) {
	var out ProviderSettings
	err := s.read(providerKeyPrefix+id, &out)
	return out, err
}

// SaveProvider replaces the record for the given provider identifier.
func (s *Store) SaveProvider(_ context.Context, id string, v ProviderSettings) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("empty provider id")
	}
	return s.write(providerKeyPrefix+id, v)
}

// SaveSummary persists a result keyed by its generated id.
func (s *Store) SaveSummary(_ context.Context, r summary.Result) error {
	if strings.TrimSpace(r.ID) == "" {
		return errors.New("summary has no id")
	}
	return s.write(summaryKeyPrefix+r.ID, r)
}

// LoadSummary returns the result stored under the given id.
func (s *Store) LoadSummary(_ context.Context, id string) (summary.Result, error) {
	var out summary.Result
	err := s.read(summaryKeyPrefix+id, &out)
	return out, err
}

// ListSummaries returns all stored results, newest first.
func (s *Store) ListSummaries(_ context.Context) ([]summary.Result, error) {
	if err := s.ensureDir(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, err
	}
	var out []summary.Result
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), summaryKeyPrefix) || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		b, err := os.ReadFile(filepath.Join(s.Dir, e.Name()))
		if err != nil {
			continue
		}
		var r summary.Result
		if err := json.Unmarshal(b, &r); err != nil {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// FindByURL linear-scans stored summaries for the first matching URL,
// preferring the newest record.
func (s *Store) FindByURL(ctx context.Context, url string) (summary.Result, error) {
	all, err := s.ListSummaries(ctx)
	if err != nil {
		return summary.Result{}, err
	}
	for _, r := range all {
		if r.URL == url {
			return r, nil
		}
	}
	return summary.Result{}, ErrNotFound
}

// LoadStats returns the aggregate stats blob, or a zero value when none exists.
func (s *Store) LoadStats(_ context.Context) (Stats, error) {
	var out Stats
	err := s.read(keyStats, &out)
	if errors.Is(err, ErrNotFound) {
		return Stats{ByProvider: map[string]int{}}, nil
	}
	if out.ByProvider == nil {
		out.ByProvider = map[string]int{}
	}
	return out, err
}

// RecordSummary folds one result into the stats blob. No transactional
// guarantee: read-then-write, last write wins.
func (s *Store) RecordSummary(ctx context.Context, r summary.Result) error {
	stats, err := s.LoadStats(ctx)
	if err != nil {
		return err
	}
	stats.TotalSummaries++
	stats.TotalWords += r.SourceWordCount
	stats.ByProvider[r.Provider]++
	stats.UpdatedAt = time.Now().UTC()
	return s.write(keyStats, stats)
}
