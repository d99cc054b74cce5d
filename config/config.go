// Package config reads application settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// FluentBit configures log forwarding. Enabled is true when Host is set.
type FluentBit struct {
	Host      string
	Port      int
	TagPrefix string
}

// Enabled reports whether forwarding is configured.
func (f FluentBit) Enabled() bool {
	return f.Host != ""
}

// Config holds every setting the application reads.
type Config struct {
	APIKey          string
	Model           string
	HTTPAddr        string
	CORSOrigins     string
	RedisAddr       string
	CacheTTL        time.Duration
	LogLevel        string
	LogFormat       string
	FluentBit       FluentBit
	ResetOnLogout   bool
	RequireTitle    bool
	ShutdownTimeout time.Duration

	// Warnings lists values that could not be parsed and fell back to defaults.
	Warnings []string
}

// Load reads .env files (default ".env"; missing files are ignored) and then
// the process environment. Variables already set in the environment win.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return FromLookup(os.LookupEnv), nil
}

// FromLookup builds a Config from lookup.
func FromLookup(lookup func(string) (string, bool)) Config {
	r := reader{lookup: lookup}
	cfg := Config{
		APIKey:          r.str("API_KEY", ""),
		Model:           r.str("GEMINI_MODEL", "gemini-2.5-flash"),
		HTTPAddr:        r.str("HTTP_ADDR", ":3000"),
		CORSOrigins:     r.str("CORS_ALLOWED_ORIGINS", "*"),
		RedisAddr:       r.str("REDIS_ADDR", ""),
		CacheTTL:        r.duration("CACHE_TTL", 10*time.Minute),
		LogLevel:        r.str("LOG_LEVEL", "info"),
		LogFormat:       r.str("LOG_FORMAT", "text"),
		ResetOnLogout:   r.boolean("RESET_ON_LOGOUT", false),
		RequireTitle:    r.boolean("REQUIRE_TITLE", false),
		ShutdownTimeout: r.duration("SHUTDOWN_TIMEOUT", 30*time.Second),
		FluentBit: FluentBit{
			Host:      r.str("FLUENTBIT_HOST", ""),
			Port:      r.integer("FLUENTBIT_PORT", 24224),
			TagPrefix: r.str("FLUENTBIT_TAG", "rentlink"),
		},
	}
	if cfg.APIKey == "" {
		cfg.APIKey = r.str("GEMINI_API_KEY", "")
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		r.warn("LOG_FORMAT", cfg.LogFormat, "text")
		cfg.LogFormat = "text"
	}
	cfg.Warnings = r.warnings
	return cfg
}

type reader struct {
	lookup   func(string) (string, bool)
	warnings []string
}

func (r *reader) warn(key, value string, def any) {
	r.warnings = append(r.warnings, fmt.Sprintf("%s=%q is invalid, using %v", key, value, def))
}

func (r *reader) str(key, def string) string {
	if v, ok := r.lookup(key); ok && v != "" {
		return v
	}
	return def
}

func (r *reader) integer(key string, def int) int {
	v, ok := r.lookup(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.warn(key, v, def)
		return def
	}
	return n
}

func (r *reader) boolean(key string, def bool) bool {
	v, ok := r.lookup(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.warn(key, v, def)
		return def
	}
	return b
}

func (r *reader) duration(key string, def time.Duration) time.Duration {
	v, ok := r.lookup(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		r.warn(key, v, def)
		return def
	}
	return d
}
