// Package toml loads parsel.Config from a TOML file using
// github.com/pelletier/go-toml/v2.
package toml

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/parsel"
	"github.com/pelletier/go-toml/v2"
)

// AppName names the config file and cache directory.
const AppName = "parsel"

// DefaultPath returns $XDG_CONFIG_HOME/parsel.toml, falling back to
// ~/.config/parsel.toml.
func DefaultPath() string {
	return filepath.Join(xdgDir("XDG_CONFIG_HOME", ".config"), AppName+".toml")
}

// DefaultCacheDir returns $XDG_CACHE_HOME/parsel, falling back to
// ~/.cache/parsel.
func DefaultCacheDir() string {
	return filepath.Join(xdgDir("XDG_CACHE_HOME", ".cache"), AppName)
}

func xdgDir(env, fallback string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return fallback
	}
	return filepath.Join(home, fallback)
}

// file mirrors the on-disk layout. Pointer fields distinguish unset keys
// from zero values so defaults can be merged in.
type file struct {
	Color            *bool     `toml:"color"`
	ViMode           *bool     `toml:"vi_mode"`
	WarnLimit        *int      `toml:"warn_limit"`
	JoinSeparator    *string   `toml:"join_separator"`
	StartMode        *string   `toml:"start_mode"`
	PreferredShell   *string   `toml:"preferred_shell"`
	InitialInput     *[]string `toml:"initial_input"`
	HistoryFileCSS   *string   `toml:"history_file_css"`
	HistoryFileXPath *string   `toml:"history_file_xpath"`
	HistoryFileEmbed *string   `toml:"history_file_embed"`
	Requests         *requests `toml:"requests"`
}

type requests struct {
	Headers     map[string]string `toml:"headers"`
	CacheExpire *int64            `toml:"cache_expire"`
	CacheFile   *string           `toml:"cache_file"`
	RateLimit   *float64          `toml:"rate_limit"`
}

// Load reads the configuration at path. Keys missing from the file take
// their defaults and are written back, so a missing file is created with
// the full default configuration. File paths default to cacheDir.
func Load(path, cacheDir string) (*parsel.Config, error) {
	cfg := parsel.DefaultConfig(cacheDir)

	var f file
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	default:
		if err := toml.Unmarshal(data, &f); err != nil {
			return nil, parsel.Errorf(parsel.EINVALID, "invalid config %s: %v", path, err)
		}
	}

	complete, err := merge(cfg, &f)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !complete {
		if err := Save(path, cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// merge copies set keys from f into cfg and reports whether every key was set.
func merge(cfg *parsel.Config, f *file) (bool, error) {
	complete := assign(&cfg.Color, f.Color)
	complete = assign(&cfg.ViMode, f.ViMode) && complete
	complete = assign(&cfg.WarnLimit, f.WarnLimit) && complete
	complete = assign(&cfg.JoinSeparator, f.JoinSeparator) && complete
	complete = assign(&cfg.PreferredShell, f.PreferredShell) && complete
	complete = assign(&cfg.InitialInput, f.InitialInput) && complete
	complete = assign(&cfg.HistoryFileCSS, f.HistoryFileCSS) && complete
	complete = assign(&cfg.HistoryFileXPath, f.HistoryFileXPath) && complete
	complete = assign(&cfg.HistoryFileEmbed, f.HistoryFileEmbed) && complete

	if f.StartMode == nil {
		complete = false
	} else {
		mode, err := parsel.ParseMode(*f.StartMode)
		if err != nil {
			return false, err
		}
		cfg.StartMode = mode
	}

	r := f.Requests
	if r == nil {
		return false, nil
	}
	for k := range cfg.Requests.Headers {
		if _, ok := r.Headers[k]; !ok {
			complete = false
		}
	}
	for k, v := range r.Headers {
		cfg.Requests.Headers[k] = v
	}
	if r.CacheExpire == nil {
		complete = false
	} else {
		cfg.Requests.CacheExpire = time.Duration(*r.CacheExpire) * time.Second
	}
	complete = assign(&cfg.Requests.CacheFile, r.CacheFile) && complete
	complete = assign(&cfg.Requests.RateLimit, r.RateLimit) && complete
	return complete, nil
}

// assign stores *src into dst when src is set.
func assign[T any](dst *T, src *T) bool {
	if src == nil {
		return false
	}
	*dst = *src
	return true
}

// Save writes cfg to path, creating parent directories.
func Save(path string, cfg *parsel.Config) error {
	mode := string(cfg.StartMode)
	expire := int64(cfg.Requests.CacheExpire / time.Second)
	f := file{
		Color:            &cfg.Color,
		ViMode:           &cfg.ViMode,
		WarnLimit:        &cfg.WarnLimit,
		JoinSeparator:    &cfg.JoinSeparator,
		StartMode:        &mode,
		PreferredShell:   &cfg.PreferredShell,
		InitialInput:     &cfg.InitialInput,
		HistoryFileCSS:   &cfg.HistoryFileCSS,
		HistoryFileXPath: &cfg.HistoryFileXPath,
		HistoryFileEmbed: &cfg.HistoryFileEmbed,
		Requests: &requests{
			Headers:     cfg.Requests.Headers,
			CacheExpire: &expire,
			CacheFile:   &cfg.Requests.CacheFile,
			RateLimit:   &cfg.Requests.RateLimit,
		},
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
