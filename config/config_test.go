package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
}

func TestFromLookup_Defaults(t *testing.T) {
	cfg := FromLookup(lookupFrom(nil))

	assert.Equal(t, "", cfg.APIKey)
	assert.Equal(t, "gemini-2.5-flash", cfg.Model)
	assert.Equal(t, ":3000", cfg.HTTPAddr)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.False(t, cfg.FluentBit.Enabled())
	assert.Equal(t, 24224, cfg.FluentBit.Port)
	assert.False(t, cfg.ResetOnLogout)
	assert.False(t, cfg.RequireTitle)
	assert.Empty(t, cfg.Warnings)
}

func TestFromLookup_Overrides(t *testing.T) {
	cfg := FromLookup(lookupFrom(map[string]string{
		"GEMINI_API_KEY":   "g-key",
		"HTTP_ADDR":        ":8080",
		"REDIS_ADDR":       "localhost:6379",
		"CACHE_TTL":        "1m",
		"LOG_FORMAT":       "json",
		"FLUENTBIT_HOST":   "fluent",
		"FLUENTBIT_PORT":   "24225",
		"RESET_ON_LOGOUT":  "true",
		"REQUIRE_TITLE":    "1",
		"SHUTDOWN_TIMEOUT": "5s",
	}))

	assert.Equal(t, "g-key", cfg.APIKey, "GEMINI_API_KEY is a fallback for API_KEY")
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.True(t, cfg.FluentBit.Enabled())
	assert.Equal(t, 24225, cfg.FluentBit.Port)
	assert.True(t, cfg.ResetOnLogout)
	assert.True(t, cfg.RequireTitle)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
}

func TestFromLookup_APIKeyWins(t *testing.T) {
	cfg := FromLookup(lookupFrom(map[string]string{"API_KEY": "a", "GEMINI_API_KEY": "g"}))
	assert.Equal(t, "a", cfg.APIKey)
}

func TestFromLookup_InvalidValuesFallBack(t *testing.T) {
	cfg := FromLookup(lookupFrom(map[string]string{
		"CACHE_TTL":       "soon",
		"FLUENTBIT_PORT":  "abc",
		"RESET_ON_LOGOUT": "maybe",
		"LOG_FORMAT":      "xml",
	}))

	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 24224, cfg.FluentBit.Port)
	assert.False(t, cfg.ResetOnLogout)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Len(t, cfg.Warnings, 4)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("RENTLINK_TEST_ONLY=1\nHTTP_ADDR=:9999\n"), 0o600))
	t.Setenv("HTTP_ADDR", ":7777")
	t.Cleanup(func() { os.Unsetenv("RENTLINK_TEST_ONLY") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7777", cfg.HTTPAddr, "environment beats .env")
	assert.Equal(t, "1", os.Getenv("RENTLINK_TEST_ONLY"))
}

func TestLoad_MissingFileIgnored(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(t, err)
}
