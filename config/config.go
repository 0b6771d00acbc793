package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Browser BrowserConfig
	Scraper ScraperConfig
	Hunter  HunterConfig
	Export  ExportConfig
	Log     LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8000
	Mode string // "debug", "release", "test"; default: "release"
}

// BrowserConfig controls the Rod browser instance.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string

	// DefaultProxy is an optional proxy URL for the browser.
	DefaultProxy string
}

// ScraperConfig controls the Google Maps scraping loop.
type ScraperConfig struct {
	// NavigationTimeout bounds the initial navigation plus results-feed wait.
	NavigationTimeout time.Duration // default: 15s

	// SettleDelay is the fixed pause after navigation before extraction starts.
	SettleDelay time.Duration // default: 2s

	// ScrollPause is the fixed pause after each scroll of the results panel.
	ScrollPause time.Duration // default: 1s

	// DetailPause is the fixed pause after clicking into and out of a listing.
	DetailPause time.Duration // default: 1s
}

// HunterConfig controls the Hunter.io enrichment client.
type HunterConfig struct {
	// BaseURL is the Hunter.io API root.
	BaseURL string // default: "https://api.hunter.io"

	// Timeout is the per-lookup request deadline.
	Timeout time.Duration // default: 10s

	// RequestsPerSecond paces outbound lookups.
	RequestsPerSecond float64 // default: 2
}

// ExportConfig controls flat-file exports.
type ExportConfig struct {
	// Dir is the directory export files are written to.
	Dir string // default: "exports"
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("LEADGEN_HOST", "0.0.0.0"),
			Port: envIntOr("LEADGEN_PORT", 8000),
			Mode: envOr("LEADGEN_MODE", "release"),
		},
		Browser: BrowserConfig{
			Headless:     envBoolOr("LEADGEN_HEADLESS", true),
			NoSandbox:    envBoolOr("LEADGEN_NO_SANDBOX", false),
			BrowserBin:   os.Getenv("LEADGEN_BROWSER_BIN"),
			DefaultProxy: os.Getenv("LEADGEN_PROXY"),
		},
		Scraper: ScraperConfig{
			NavigationTimeout: envDurationOr("LEADGEN_NAV_TIMEOUT", 15*time.Second),
			SettleDelay:       envDurationOr("LEADGEN_SETTLE_DELAY", 2*time.Second),
			ScrollPause:       envDurationOr("LEADGEN_SCROLL_PAUSE", time.Second),
			DetailPause:       envDurationOr("LEADGEN_DETAIL_PAUSE", time.Second),
		},
		Hunter: HunterConfig{
			BaseURL:           envOr("LEADGEN_HUNTER_BASE_URL", "https://api.hunter.io"),
			Timeout:           envDurationOr("LEADGEN_HUNTER_TIMEOUT", 10*time.Second),
			RequestsPerSecond: envFloatOr("LEADGEN_HUNTER_RPS", 2.0),
		},
		Export: ExportConfig{
			Dir: envOr("LEADGEN_EXPORT_DIR", "exports"),
		},
		Log: LogConfig{
			Level:  envOr("LEADGEN_LOG_LEVEL", "info"),
			Format: envOr("LEADGEN_LOG_FORMAT", "json"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
