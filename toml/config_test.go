package toml_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/parsel"
	"github.com/fwojciec/parsel/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("creates the file with defaults when missing", func(t *testing.T) {
		t.Parallel()

		// Given
		dir := t.TempDir()
		path := filepath.Join(dir, "config", "parsel.toml")

		// When
		cfg, err := toml.Load(path, "/cache")

		// Then
		require.NoError(t, err)
		assert.Equal(t, parsel.DefaultConfig("/cache"), cfg)
		assert.FileExists(t, path)

		// And the written file loads back to the same config
		again, err := toml.Load(path, "/other")
		require.NoError(t, err)
		assert.Equal(t, cfg.Requests, again.Requests)
		assert.Equal(t, cfg.HistoryFileCSS, again.HistoryFileCSS)
		assert.Equal(t, cfg.StartMode, again.StartMode)
		assert.Equal(t, cfg.WarnLimit, again.WarnLimit)
		assert.Empty(t, again.InitialInput)
	})

	t.Run("merges set keys over defaults", func(t *testing.T) {
		t.Parallel()

		// Given
		path := filepath.Join(t.TempDir(), "parsel.toml")
		require.NoError(t, os.WriteFile(path, []byte(`
color = false
warn_limit = 10
start_mode = "xpath"
initial_input = ["--strip", "h1::text"]

[requests]
cache_expire = 60

[requests.headers]
User-Agent = "parsel-test"
`), 0o644))

		// When
		cfg, err := toml.Load(path, "/cache")

		// Then
		require.NoError(t, err)
		assert.False(t, cfg.Color)
		assert.Equal(t, 10, cfg.WarnLimit)
		assert.Equal(t, parsel.ModeXPath, cfg.StartMode)
		assert.Equal(t, []string{"--strip", "h1::text"}, cfg.InitialInput)
		assert.Equal(t, time.Minute, cfg.Requests.CacheExpire)
		assert.Equal(t, "parsel-test", cfg.Requests.Headers["User-Agent"])
		assert.Equal(t, parsel.DefaultHeaders["Accept"], cfg.Requests.Headers["Accept"])
		assert.Equal(t, "/cache/history_css", cfg.HistoryFileCSS)
		assert.Equal(t, parsel.DefaultRateLimit, cfg.Requests.RateLimit)

		// And the missing keys are written back
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "history_file_css")
		assert.Contains(t, string(data), "parsel-test")
	})

	t.Run("rejects malformed files", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "parsel.toml")
		require.NoError(t, os.WriteFile(path, []byte("color = = true"), 0o644))

		_, err := toml.Load(path, "/cache")

		assert.Equal(t, parsel.EINVALID, parsel.ErrorCode(err))
	})

	t.Run("rejects invalid values", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "parsel.toml")
		require.NoError(t, os.WriteFile(path, []byte(`start_mode = "regex"`), 0o644))

		_, err := toml.Load(path, "/cache")

		assert.Equal(t, parsel.EINVALID, parsel.ErrorCode(err))
	})
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
	t.Setenv("XDG_CACHE_HOME", "/xdg/cache")

	assert.Equal(t, "/xdg/config/parsel.toml", toml.DefaultPath())
	assert.Equal(t, "/xdg/cache/parsel", toml.DefaultCacheDir())
}
