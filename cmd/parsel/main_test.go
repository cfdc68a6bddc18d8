package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	main "github.com/fwojciec/parsel/cmd/parsel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<html><head><title>Greeting</title></head><body>
<h1>Hello</h1>
<a href="/one">One</a>
</body></html>`

// setup writes page to a temp directory and returns a Main rooted there,
// the page path and a config path.
func setup(t *testing.T) (*main.Main, string, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "page.html")
	require.NoError(t, os.WriteFile(path, []byte(page), 0o644))

	m := main.NewMain()
	m.CacheDir = filepath.Join(dir, "cache")
	m.Stdin = strings.NewReader("")
	return m, path, filepath.Join(dir, "parsel.toml")
}

func TestMain_Run_Help(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--help"}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "parsel")
	assert.Contains(t, stdout.String(), "--css-expr")
	assert.Contains(t, stdout.String(), "--headless")
}

func TestMain_Run_NoArgs(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{}, &stdout, &stderr)

	assert.Error(t, err)
}

func TestMain_Run_CompileCSS(t *testing.T) {
	t.Parallel()

	m, path, config := setup(t)
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{path, "--config", config, "-c", "h1::text"}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Hello")
}

func TestMain_Run_CompileXPath(t *testing.T) {
	t.Parallel()

	m, path, config := setup(t)
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{path, "--config", config, "-x", "count(//a)"}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "1")
}

func TestMain_Run_InitialInputActivatesProcessors(t *testing.T) {
	t.Parallel()

	// Given a startup line that only carries processors
	m, path, config := setup(t)
	var stdout, stderr bytes.Buffer

	// When an expression is compiled
	err := m.Run(context.Background(), []string{path, "--config", config, "--input=--first", "-c", "title::text, h1::text"}, &stdout, &stderr)

	// Then the session chain applies to it
	require.NoError(t, err)
	assert.Equal(t, "Greeting\n", stdout.String())
}

func TestMain_Run_WritesDefaultConfig(t *testing.T) {
	t.Parallel()

	m, path, config := setup(t)
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{path, "--config", config, "-c", "h1"}, &stdout, &stderr)

	require.NoError(t, err)
	data, err := os.ReadFile(config)
	require.NoError(t, err)
	assert.Contains(t, string(data), "warn_limit")
}

func TestMain_Run_InvalidConfig(t *testing.T) {
	t.Parallel()

	m, path, config := setup(t)
	require.NoError(t, os.WriteFile(config, []byte(`start_mode = "regex"`+"\n"), 0o644))
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{path, "--config", config, "-c", "h1"}, &stdout, &stderr)

	assert.Error(t, err)
}

func TestMain_Run_Interactive(t *testing.T) {
	t.Parallel()

	// Given piped input switching modes midway
	m, path, config := setup(t)
	m.Stdin = strings.NewReader("h1::text\n--xpath\n//a/@href\nexit\n")
	var stdout, stderr bytes.Buffer

	// When the loop runs to completion
	err := m.Run(context.Background(), []string{path, "--config", config}, &stdout, &stderr)

	// Then both queries are answered and recorded per mode
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Hello")
	assert.Contains(t, stdout.String(), "/one")
	assert.Contains(t, stderr.String(), "switched to xpath")

	css, err := os.ReadFile(filepath.Join(m.CacheDir, "history_css"))
	require.NoError(t, err)
	assert.Contains(t, string(css), "h1::text")
	xpath, err := os.ReadFile(filepath.Join(m.CacheDir, "history_xpath"))
	require.NoError(t, err)
	assert.Contains(t, string(xpath), "//a/@href")
}

func TestMain_Run_XPathFlagSetsStartMode(t *testing.T) {
	t.Parallel()

	m, path, config := setup(t)
	m.Stdin = strings.NewReader("//h1/text()\n")
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{path, "--config", config, "--xpath"}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "XPATH> ")
	assert.Contains(t, stdout.String(), "Hello")
}
