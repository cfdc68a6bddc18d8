package slog_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/parsel"
	"github.com/fwojciec/parsel/mock"
	parselslog "github.com/fwojciec/parsel/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func debugLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLoggingParser_Parse(t *testing.T) {
	t.Parallel()

	t.Run("wraps parsed documents so queries are logged", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.DocumentParser{
			ParseFn: func(raw, url string) (parsel.Document, error) {
				return &mock.Document{
					QueryFn: func(parsel.Mode, string) ([]string, error) { return []string{"a", "b"}, nil },
				}, nil
			},
		}

		doc, err := parselslog.NewLoggingParser(inner, debugLogger(&buf)).Parse("<h1>x</h1>", "file.html")
		require.NoError(t, err)
		got, err := doc.Query(parsel.ModeCSS, "h1::text")

		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, got)
		output := buf.String()
		assert.Contains(t, output, "msg=parse")
		assert.Contains(t, output, "bytes=10")
		assert.Contains(t, output, "msg=query")
		assert.Contains(t, output, "mode=css")
		assert.Contains(t, output, "results=2")
	})

	t.Run("logs parse failures", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.DocumentParser{
			ParseFn: func(string, string) (parsel.Document, error) { return nil, errors.New("bad markup") },
		}

		_, err := parselslog.NewLoggingParser(inner, debugLogger(&buf)).Parse("<", "file.html")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "level=ERROR")
	})
}

func TestLoggingDocument_Delegates(t *testing.T) {
	t.Parallel()

	inner := &mock.Document{
		VocabularyFn: func(parsel.Mode) []string { return []string{"h1"} },
		RawFn:        func() string { return "<h1></h1>" },
	}
	doc := parselslog.NewLoggingDocument(inner, debugLogger(&bytes.Buffer{}))

	assert.Equal(t, []string{"h1"}, doc.Vocabulary(parsel.ModeCSS))
	assert.Equal(t, "<h1></h1>", doc.Raw())
}
