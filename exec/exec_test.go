package exec_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/parsel"
	"github.com/fwojciec/parsel/exec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClipboard_Copy(t *testing.T) {
	t.Parallel()

	t.Run("pipes text into the first available tool", func(t *testing.T) {
		t.Parallel()

		// Given
		out := filepath.Join(t.TempDir(), "clip")
		c := &exec.Clipboard{Commands: [][]string{
			{"parsel-missing-tool"},
			{"sh", "-c", "cat > " + out},
		}}

		// When
		err := c.Copy("//h1/text()")

		// Then
		require.NoError(t, err)
		got, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, "//h1/text()", string(got))
	})

	t.Run("returns unavailable without a tool", func(t *testing.T) {
		t.Parallel()

		c := &exec.Clipboard{Commands: [][]string{{"parsel-missing-tool"}}}

		err := c.Copy("x")

		assert.Equal(t, parsel.EUNAVAILABLE, parsel.ErrorCode(err))
	})

	t.Run("reports tool failures", func(t *testing.T) {
		t.Parallel()

		c := &exec.Clipboard{Commands: [][]string{{"sh", "-c", "exit 3"}}}

		err := c.Copy("x")

		assert.Error(t, err)
	})
}

func TestOpener_Open(t *testing.T) {
	t.Parallel()

	t.Run("passes the target to the tool", func(t *testing.T) {
		t.Parallel()

		out := filepath.Join(t.TempDir(), "opened")
		o := &exec.Opener{Commands: [][]string{{"sh", "-c", `printf %s "$0" > ` + out}}}

		err := o.Open("https://example.com/")

		require.NoError(t, err)
		got, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/", string(got))
	})

	t.Run("rejects an empty target", func(t *testing.T) {
		t.Parallel()

		err := exec.NewOpener().Open("")

		assert.Equal(t, parsel.EINVALID, parsel.ErrorCode(err))
	})
}

func TestShell_Embed(t *testing.T) {
	t.Parallel()

	// Given a shell that dumps its environment
	dir := t.TempDir()
	nsOut := filepath.Join(dir, "ns.json")
	histOut := filepath.Join(dir, "hist")
	historyFile := filepath.Join(dir, "cache", "history_embed")
	s := exec.NewShell("sh", "sh", "-c",
		`cat "$PARSEL_NAMESPACE" > `+nsOut+`; printf %s "$HISTFILE" > `+histOut+`; exit 1`)
	s.Stdin = strings.NewReader("")
	s.Stdout, s.Stderr = nil, nil
	ns := parsel.Namespace{URL: "https://example.com/", StatusCode: 200, Mode: parsel.ModeCSS, Out: "a"}

	// When
	err := s.Embed(context.Background(), ns, historyFile)

	// Then a non-zero exit is not an error
	require.NoError(t, err)
	assert.True(t, s.Available())
	assert.Equal(t, "sh", s.Name())

	raw, err := os.ReadFile(nsOut)
	require.NoError(t, err)
	var got parsel.Namespace
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, ns.URL, got.URL)
	assert.Equal(t, 200, got.StatusCode)
	assert.Equal(t, "a", got.Out)

	hist, err := os.ReadFile(histOut)
	require.NoError(t, err)
	assert.Equal(t, historyFile, string(hist))
	assert.DirExists(t, filepath.Dir(historyFile))
}

func TestDefaultShells(t *testing.T) {
	t.Setenv("SHELL", "/bin/zsh")

	var names []string
	for _, s := range exec.DefaultShells("fish") {
		names = append(names, s.Name())
	}

	assert.Equal(t, []string{"fish", "zsh", "bash", "sh"}, names)
}
