package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/pagebrief/pagebrief/internal/cache"
	"github.com/pagebrief/pagebrief/internal/extract"
	"github.com/pagebrief/pagebrief/internal/fetch"
	"github.com/pagebrief/pagebrief/internal/normalize"
	"github.com/pagebrief/pagebrief/internal/prompt"
	"github.com/pagebrief/pagebrief/internal/provider"
	"github.com/pagebrief/pagebrief/internal/store"
	"github.com/pagebrief/pagebrief/internal/summary"
)

// keyValidityTTL is how long a cached key-validation verdict stays fresh.
const keyValidityTTL = time.Hour

// fetchTimeout bounds the page fetch. The summarization call itself has no
// client-imposed timeout.
const fetchTimeout = 30 * time.Second

// App wires the summarization pipeline: fetch, extract, prompt, dispatch,
// normalize, persist. One generation is in flight per invocation.
type App struct {
	cfg     Config
	store   *store.Store
	fetcher *fetch.Client

	// newClient builds a provider client. Tests stub it.
	newClient func(id, apiKey, model string) (provider.Client, error)
}

func New(cfg Config) (*App, error) {
	if strings.TrimSpace(cfg.StoreDir) == "" {
		return nil, errors.New("store dir not configured")
	}

	fetcher := &fetch.Client{
		UserAgent:         cfg.UserAgent,
		PerRequestTimeout: fetchTimeout,
		BypassCache:       cfg.BypassCache,
	}
	if cfg.CacheDir != "" {
		if cfg.CacheClear {
			if err := cache.ClearDir(cfg.CacheDir); err != nil {
				log.Warn().Err(err).Msg("cache clear failed")
			}
		}
		if cfg.CacheMaxAge > 0 {
			if n, err := cache.PurgeByAge(cfg.CacheDir, cfg.CacheMaxAge); err == nil && n > 0 {
				log.Debug().Int("removed", n).Msg("purged expired page cache entries")
			}
		}
		fetcher.Cache = &cache.HTTPCache{Dir: cfg.CacheDir}
	}

	return &App{
		cfg:     cfg,
		store:   &store.Store{Dir: cfg.StoreDir},
		fetcher: fetcher,
		newClient: func(id, apiKey, model string) (provider.Client, error) {
			return provider.New(id, apiKey, model, nil)
		},
	}, nil
}

// Store exposes the underlying record store for read-only operations.
func (a *App) Store() *store.Store { return a.store }

// resolved is the effective provider configuration for one request.
type resolved struct {
	id     string
	apiKey string
	model  string
}

// resolve determines provider, key, and model from flags and stored settings.
// It fails before any network call when configuration is incomplete.
func (a *App) resolve(ctx context.Context) (resolved, error) {
	id := a.cfg.Provider
	if id == "" {
		settings, err := a.store.LoadSettings(ctx)
		if err != nil {
			return resolved{}, fmt.Errorf("load settings: %w", err)
		}
		id = settings.CurrentProvider
	}
	if id == "" {
		return resolved{}, errors.New("no provider configured: choose one with -provider and persist it with -save (settings)")
	}
	if !provider.Known(id) {
		return resolved{}, fmt.Errorf("unknown provider %q: valid providers are %s", id, strings.Join(provider.IDs(), ", "))
	}

	rec, err := a.store.LoadProvider(ctx, id)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return resolved{}, fmt.Errorf("load provider settings: %w", err)
	}

	key := a.cfg.APIKey
	if key == "" {
		key = rec.APIKey
	}
	if key == "" {
		return resolved{}, fmt.Errorf("no API key configured for %s: add one to settings with -key and -save", id)
	}

	model := a.cfg.Model
	if model == "" {
		model = rec.Model
	}
	if model == "" {
		model = provider.DefaultModel(id)
	}
	return resolved{id: id, apiKey: key, model: model}, nil
}

// pageHTML obtains the page markup: a local file when -input is given,
// otherwise a fetch of the configured URL. The second return value is the
// identifier persisted with the result.
func (a *App) pageHTML(ctx context.Context) ([]byte, string, error) {
	if a.cfg.InputPath != "" {
		b, err := os.ReadFile(a.cfg.InputPath)
		if err != nil {
			return nil, "", fmt.Errorf("read input file: %w", err)
		}
		id := a.cfg.URL
		if id == "" {
			id = a.cfg.InputPath
		}
		return b, id, nil
	}
	if strings.TrimSpace(a.cfg.URL) == "" {
		return nil, "", errors.New("no page to summarize: pass -url or -input")
	}
	body, _, err := a.fetcher.Get(ctx, a.cfg.URL)
	if err != nil {
		return nil, "", fmt.Errorf("fetch page: %w", err)
	}
	return body, a.cfg.URL, nil
}

// Summarize runs the full pipeline once and persists the result.
func (a *App) Summarize(ctx context.Context) (summary.Result, error) {
	start := time.Now()

	// Configuration is checked before any network traffic.
	r, err := a.resolve(ctx)
	if err != nil {
		return summary.Result{}, err
	}

	html, pageURL, err := a.pageHTML(ctx)
	if err != nil {
		return summary.Result{}, err
	}

	doc := extract.FromHTML(html)
	if strings.TrimSpace(doc.Text) == "" {
		return summary.Result{}, errors.New("no readable text extracted from page")
	}
	wordCount := summary.WordCount(doc.Text)
	log.Debug().Str("title", doc.Title).Int("words", wordCount).Msg("extracted page content")

	client, err := a.newClient(r.id, r.apiKey, r.model)
	if err != nil {
		return summary.Result{}, err
	}

	userMsg := prompt.Build(prompt.Input{
		Title:        doc.Title,
		Text:         doc.Text,
		LanguageHint: a.cfg.LanguageHint,
	})
	log.Debug().Str("provider", r.id).Str("model", r.model).Msg("requesting summary")

	raw, err := client.Complete(ctx, prompt.SystemMessage, userMsg)
	if err != nil {
		return summary.Result{}, err
	}

	out := normalize.Parse(raw)
	if !out.Structured {
		log.Debug().Msg("model reply was not valid JSON; using raw text fallback")
	}

	res := summary.Result{
		ID:               summary.NewID(),
		URL:              pageURL,
		Title:            doc.Title,
		Summary:          out.Summary,
		Sentiment:        out.Sentiment,
		KeyThemes:        out.KeyThemes,
		SourceWordCount:  wordCount,
		CreatedAt:        time.Now().UTC(),
		ProcessingTimeMs: time.Since(start).Milliseconds(),
		Provider:         r.id,
		Model:            r.model,
		Structured:       out.Structured,
	}

	if err := a.store.SaveSummary(ctx, res); err != nil {
		return summary.Result{}, fmt.Errorf("persist summary: %w", err)
	}
	// Stats are best-effort; a failed counter update should not fail the run.
	if err := a.store.RecordSummary(ctx, res); err != nil {
		log.Warn().Err(err).Msg("stats update failed")
	}
	return res, nil
}

// ValidateKey probes the configured provider with its API key. Verdicts are
// cached in the provider record for keyValidityTTL, so repeated checks within
// the window do not hit the network.
func (a *App) ValidateKey(ctx context.Context) error {
	r, err := a.resolve(ctx)
	if err != nil {
		return err
	}

	rec, err := a.store.LoadProvider(ctx, r.id)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("load provider settings: %w", err)
	}
	if rec.KeyValid != nil && rec.APIKey == r.apiKey && time.Since(rec.KeyCheckedAt) < keyValidityTTL {
		log.Debug().Str("provider", r.id).Bool("valid", *rec.KeyValid).Msg("using cached key verdict")
		if *rec.KeyValid {
			return nil
		}
		return fmt.Errorf("%s API key failed validation (cached verdict from %s)", r.id, rec.KeyCheckedAt.Format(time.RFC3339))
	}

	client, err := a.newClient(r.id, r.apiKey, r.model)
	if err != nil {
		return err
	}
	verr := client.Validate(ctx)

	valid := verr == nil
	rec.APIKey = r.apiKey
	if rec.Model == "" {
		rec.Model = r.model
	}
	rec.KeyValid = &valid
	rec.KeyCheckedAt = time.Now().UTC()
	if err := a.store.SaveProvider(ctx, r.id, rec); err != nil {
		log.Warn().Err(err).Msg("saving key verdict failed")
	}
	if verr != nil {
		return fmt.Errorf("validate %s key: %w", r.id, verr)
	}
	return nil
}

// SaveSettings persists the provider selection from flags as the current
// provider and its per-provider record.
func (a *App) SaveSettings(ctx context.Context) error {
	id := a.cfg.Provider
	if id == "" {
		return errors.New("nothing to save: pass -provider")
	}
	if !provider.Known(id) {
		return fmt.Errorf("unknown provider %q: valid providers are %s", id, strings.Join(provider.IDs(), ", "))
	}

	rec, err := a.store.LoadProvider(ctx, id)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("load provider settings: %w", err)
	}
	if a.cfg.APIKey != "" {
		if rec.APIKey != a.cfg.APIKey {
			// New key invalidates any cached verdict.
			rec.KeyValid = nil
			rec.KeyCheckedAt = time.Time{}
		}
		rec.APIKey = a.cfg.APIKey
	}
	if a.cfg.Model != "" {
		rec.Model = a.cfg.Model
	}
	if rec.Model == "" {
		rec.Model = provider.DefaultModel(id)
	}
	if err := a.store.SaveProvider(ctx, id, rec); err != nil {
		return fmt.Errorf("save provider settings: %w", err)
	}
	if err := a.store.SaveSettings(ctx, store.Settings{CurrentProvider: id}); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	log.Info().Str("provider", id).Str("model", rec.Model).Msg("settings saved")
	return nil
}
