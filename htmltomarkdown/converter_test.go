package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/parsel"
	"github.com/fwojciec/parsel/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts a fragment without surrounding whitespace", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<p>Hello, <strong>world</strong>!</p>`, "")

		require.NoError(t, err)
		assert.Equal(t, "Hello, **world**!", md)
	})

	t.Run("converts headings", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<h1>Title</h1><h2>Subtitle</h2>`, "")

		require.NoError(t, err)
		assert.Contains(t, md, "# Title")
		assert.Contains(t, md, "## Subtitle")
	})

	t.Run("converts links", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<a href="https://example.com">Example</a>`, "")

		require.NoError(t, err)
		assert.Equal(t, "[Example](https://example.com)", md)
	})

	t.Run("resolves relative links against the base url", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<a href="/docs">Docs</a>`, "https://example.com/dir/page.html")

		require.NoError(t, err)
		assert.Contains(t, md, "https://example.com/docs")
	})

	t.Run("ignores a base url without a host", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<a href="/docs">Docs</a>`, "page.html")

		require.NoError(t, err)
		assert.Equal(t, "[Docs](/docs)", md)
	})

	t.Run("converts tables", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<table><tr><th>A</th></tr><tr><td>1</td></tr></table>`, "")

		require.NoError(t, err)
		assert.Contains(t, md, "| A |")
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		_, err := htmltomarkdown.NewConverter().Convert("  ", "")

		assert.Equal(t, parsel.EINVALID, parsel.ErrorCode(err))
	})
}
