package app

import "time"

// Config holds runtime configuration for one invocation.
type Config struct {
	// Page input: a URL to fetch, or a local HTML file read as-is.
	URL       string
	InputPath string

	// Provider selection. Empty values fall back to the stored settings.
	Provider string
	Model    string
	APIKey   string

	// Output
	OutputPath string
	PDFPath    string

	// LanguageHint asks the model to answer in the given language.
	LanguageHint string

	// Storage and page cache
	StoreDir    string
	CacheDir    string
	CacheMaxAge time.Duration
	CacheClear  bool
	BypassCache bool

	UserAgent string
	Verbose   bool
}
