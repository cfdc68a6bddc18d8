package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/parsel"
	"github.com/fwojciec/parsel/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRenderer_Goto(t *testing.T) {
	t.Parallel()

	t.Run("reads a file by path", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "page.html", "<h1>local</h1>")

		resp, err := fs.NewRenderer().Goto(context.Background(), path)

		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, "<h1>local</h1>", resp.Content)
		assert.Equal(t, "file://"+path, resp.URL)
		assert.Contains(t, resp.ContentType, "text/html")
	})

	t.Run("reads a file by file url", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "feed.xml", "<rss/>")

		resp, err := fs.NewRenderer().Goto(context.Background(), "file://"+path)

		require.NoError(t, err)
		assert.Equal(t, "<rss/>", resp.Content)
		assert.True(t, resp.IsXML())
	})

	t.Run("reports missing files", func(t *testing.T) {
		t.Parallel()

		_, err := fs.NewRenderer().Goto(context.Background(), filepath.Join(t.TempDir(), "missing.html"))

		assert.Equal(t, parsel.ENOTFOUND, parsel.ErrorCode(err))
	})
}

func TestIsLocal(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "page.html", "")

	assert.True(t, fs.IsLocal(path))
	assert.True(t, fs.IsLocal("file:///tmp/whatever.html"))
	assert.False(t, fs.IsLocal("https://example.com"))
	assert.False(t, fs.IsLocal(filepath.Join(t.TempDir(), "missing.html")))
}

func TestTempWriter_WriteFileURL(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	target, err := fs.NewTempWriter(dir).Write("<h1>view</h1>", ".html")

	require.NoError(t, err)
	require.Regexp(t, `^file://.*parsel-.*\.html$`, target)
	data, err := os.ReadFile(target[len("file://"):])
	require.NoError(t, err)
	assert.Equal(t, "<h1>view</h1>", string(data))
}
