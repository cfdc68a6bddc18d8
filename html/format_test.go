package html_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/parsel"
	"github.com/fwojciec/parsel/html"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatter_Format(t *testing.T) {
	t.Parallel()

	t.Run("puts nested elements on indented lines", func(t *testing.T) {
		t.Parallel()

		got, err := html.NewFormatter().Format("<div><a><b>foo</b></a></div>")

		require.NoError(t, err)
		lines := strings.Split(got, "\n")
		require.Greater(t, len(lines), 2)
		assert.Equal(t, "<div>", lines[0])
		assert.Equal(t, "</div>", lines[len(lines)-1])
		assert.True(t, strings.HasPrefix(lines[1], " "), "child should be indented: %q", lines[1])
		assert.Contains(t, got, "foo")
	})

	t.Run("does not add a body wrapper", func(t *testing.T) {
		t.Parallel()

		got, err := html.NewFormatter().Format(`<p class="x">a</p><br>`)

		require.NoError(t, err)
		assert.Contains(t, got, `<p class="x">`)
		assert.NotContains(t, got, "<body>")
		assert.NotContains(t, got, "<html>")
	})

	t.Run("keeps entities escaped", func(t *testing.T) {
		t.Parallel()

		got, err := html.NewFormatter().Format("<p>a &amp; b</p>")

		require.NoError(t, err)
		assert.Contains(t, got, "a &amp; b")
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		_, err := html.NewFormatter().Format("  ")

		assert.Equal(t, parsel.EINVALID, parsel.ErrorCode(err))
	})
}
