package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"

	"github.com/pagebrief/pagebrief/internal/app"
	"github.com/pagebrief/pagebrief/internal/store"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		pageURL     string
		inputPath   string
		providerID  string
		model       string
		apiKey      string
		outputPath  string
		pdfPath     string
		lang        string
		storeDir    string
		cacheDir    string
		cacheMaxAge time.Duration
		cacheClear  bool
		noCache     bool
		configPath  string
		envFile     string
		userAgent   string
		verbose     bool

		doSave     bool
		doValidate bool
		doHistory  bool
		doStats    bool
		lookupURL  string
	)

	flag.StringVar(&pageURL, "url", "", "Page URL to summarize")
	flag.StringVar(&inputPath, "input", "", "Local HTML file to summarize instead of fetching a URL")
	flag.StringVar(&providerID, "provider", "", "Provider: anthropic, openai, google, or xai")
	flag.StringVar(&model, "model", "", "Model name (provider default when empty)")
	flag.StringVar(&apiKey, "key", "", "API key for the selected provider")
	flag.StringVar(&outputPath, "out", "", "Write the summary as Markdown to this path")
	flag.StringVar(&pdfPath, "pdf", "", "Write the summary as PDF to this path")
	flag.StringVar(&lang, "lang", "", "Optional language hint, e.g. 'en' or 'fi'")
	flag.StringVar(&storeDir, "store.dir", "", "Directory for settings and summary records (default ~/.pagebrief)")
	flag.StringVar(&cacheDir, "cache.dir", "", "Page cache directory; empty disables caching")
	flag.DurationVar(&cacheMaxAge, "cache.maxAge", 0, "Max age for page cache entries before purge (e.g. 24h); 0 disables")
	flag.BoolVar(&cacheClear, "cache.clear", false, "Clear page cache before run")
	flag.BoolVar(&noCache, "no-cache", false, "Bypass the page cache for this run")
	flag.StringVar(&configPath, "config", "", "Path to YAML config file")
	flag.StringVar(&envFile, "env", ".env", "Path to dotenv file loaded before reading the environment")
	flag.StringVar(&userAgent, "ua", "pagebrief/1.0 (+https://github.com/pagebrief/pagebrief)", "User-Agent for page fetches")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.BoolVar(&doSave, "save", false, "Persist provider/model/key as the current settings and exit")
	flag.BoolVar(&doValidate, "validate", false, "Validate the configured API key and exit")
	flag.BoolVar(&doHistory, "history", false, "List stored summaries and exit")
	flag.BoolVar(&doStats, "stats", false, "Print aggregate stats and exit")
	flag.StringVar(&lookupURL, "lookup", "", "Look up a stored summary by URL and exit")
	flag.Parse()

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err := app.LoadEnvFiles(envFile); err != nil {
		log.Warn().Err(err).Msg("dotenv load failed")
	}
	envCfg, err := app.LoadEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("environment parse failed")
	}

	cfg := app.Config{
		URL:          pageURL,
		InputPath:    inputPath,
		Provider:     providerID,
		Model:        model,
		APIKey:       apiKey,
		OutputPath:   outputPath,
		PDFPath:      pdfPath,
		LanguageHint: normalizeLang(lang),
		StoreDir:     storeDir,
		CacheDir:     cacheDir,
		CacheMaxAge:  cacheMaxAge,
		CacheClear:   cacheClear,
		BypassCache:  noCache,
		UserAgent:    userAgent,
		Verbose:      verbose,
	}

	// Precedence: flags, then environment, then config file, then defaults.
	if cfg.Provider == "" {
		cfg.Provider = envCfg.Provider
	}
	if cfg.Model == "" {
		cfg.Model = envCfg.Model
	}
	if cfg.StoreDir == "" {
		cfg.StoreDir = envCfg.StoreDir
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = envCfg.CacheDir
	}
	fileCfg, err := app.LoadFileConfig(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("config file failed")
	}
	fileCfg.Apply(&cfg)
	if cfg.APIKey == "" {
		cfg.APIKey = envCfg.KeyFor(cfg.Provider)
	}
	if cfg.StoreDir == "" {
		cfg.StoreDir = defaultStoreDir()
	}

	a, err := app.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, a, cfg, doSave, doValidate, doHistory, doStats, lookupURL); err != nil {
		log.Error().Msg(err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context, a *app.App, cfg app.Config, doSave, doValidate, doHistory, doStats bool, lookupURL string) error {
	switch {
	case doSave:
		return a.SaveSettings(ctx)

	case doValidate:
		if err := a.ValidateKey(ctx); err != nil {
			return err
		}
		fmt.Println("API key is valid")
		return nil

	case doHistory:
		results, err := a.Store().ListSummaries(ctx)
		if err != nil {
			return err
		}
		fmt.Print(app.FormatHistory(results))
		return nil

	case doStats:
		stats, err := a.Store().LoadStats(ctx)
		if err != nil {
			return err
		}
		fmt.Print(app.FormatStats(stats))
		return nil

	case lookupURL != "":
		res, err := a.Store().FindByURL(ctx, lookupURL)
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no stored summary for %s", lookupURL)
		}
		if err != nil {
			return err
		}
		fmt.Print(app.FormatMarkdown(res))
		return nil
	}

	res, err := a.Summarize(ctx)
	if err != nil {
		return err
	}
	log.Info().
		Str("provider", res.Provider).
		Int("sourceWords", res.SourceWordCount).
		Int64("ms", res.ProcessingTimeMs).
		Msg("summary generated")

	rendered := app.FormatMarkdown(res)
	if cfg.OutputPath != "" {
		if err := os.WriteFile(cfg.OutputPath, []byte(rendered), 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	} else {
		fmt.Print(rendered)
	}
	if cfg.PDFPath != "" {
		if err := app.WritePDF(res, cfg.PDFPath); err != nil {
			return fmt.Errorf("write pdf: %w", err)
		}
	}
	return nil
}

// normalizeLang canonicalizes a BCP 47 language hint. Invalid tags are
// dropped with a warning rather than failing the run.
func normalizeLang(lang string) string {
	if strings.TrimSpace(lang) == "" {
		return ""
	}
	tag, err := language.Parse(lang)
	if err != nil {
		log.Warn().Str("lang", lang).Msg("ignoring invalid language hint")
		return ""
	}
	return tag.String()
}

func defaultStoreDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pagebrief"
	}
	return filepath.Join(home, ".pagebrief")
}
