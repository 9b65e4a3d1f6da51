package config

import "time"

// Settings is the typed view of console configuration consumed by the
// client and the execution monitor.
type Settings struct {
	// APIBaseURL is the flow API base URL, e.g. "http://localhost:8080/api".
	APIBaseURL string
	// WebhookSecret is the optional shared secret sent on webhook triggers.
	WebhookSecret string

	// PollInterval is the healthy-path delay between execution polls.
	PollInterval time.Duration
	// BaseBackoff is the first retry delay after a poll failure.
	BaseBackoff time.Duration
	// MaxBackoff caps the retry delay.
	MaxBackoff time.Duration
	// MaxFailures is the consecutive-failure count after which
	// polling stops until restarted.
	MaxFailures int
	// CacheSize bounds the per-flow recent-execution cache.
	CacheSize int

	// HistoryPath is the SQLite file for persisted execution history.
	// Empty keeps history in memory only.
	HistoryPath string
}

// Defaults for Settings fields.
const (
	DefaultAPIBaseURL   = "http://localhost:8080/api"
	DefaultPollInterval = 30 * time.Second
	DefaultBaseBackoff  = 5 * time.Second
	DefaultMaxBackoff   = 30 * time.Second
	DefaultMaxFailures  = 3
	DefaultCacheSize    = 20
)

// SettingsFrom extracts Settings from a Config, applying defaults for
// anything missing.
func SettingsFrom(c Config) Settings {
	return Settings{
		APIBaseURL:    c.String("apiBaseUrl", DefaultAPIBaseURL),
		WebhookSecret: c.String("webhookSecret", ""),
		PollInterval:  c.Duration("pollInterval", DefaultPollInterval),
		BaseBackoff:   c.Duration("baseBackoff", DefaultBaseBackoff),
		MaxBackoff:    c.Duration("maxBackoff", DefaultMaxBackoff),
		MaxFailures:   c.Int("maxFailures", DefaultMaxFailures),
		CacheSize:     c.Int("cacheSize", DefaultCacheSize),
		HistoryPath:   c.String("historyPath", ""),
	}
}
