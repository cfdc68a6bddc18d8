package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/parsel"
	"github.com/fwojciec/parsel/mock"
	parselslog "github.com/fwojciec/parsel/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingRenderer_Goto(t *testing.T) {
	t.Parallel()

	t.Run("logs url status and size", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Renderer{
			GotoFn: func(_ context.Context, url string) (*parsel.Response, error) {
				return &parsel.Response{StatusCode: 200, URL: url, Content: "12345", FromCache: true}, nil
			},
		}

		resp, err := parselslog.NewLoggingRenderer(inner, logger).Goto(context.Background(), "https://example.com")

		require.NoError(t, err)
		assert.Equal(t, "12345", resp.Content)
		output := buf.String()
		assert.Contains(t, output, "msg=goto")
		assert.Contains(t, output, "url=https://example.com")
		assert.Contains(t, output, "status=200")
		assert.Contains(t, output, "bytes=5")
		assert.Contains(t, output, "cached=true")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs failures at error level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Renderer{
			GotoFn: func(context.Context, string) (*parsel.Response, error) {
				return nil, errors.New("connection refused")
			},
		}

		_, err := parselslog.NewLoggingRenderer(inner, logger).Goto(context.Background(), "https://example.com")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "level=ERROR")
		assert.Contains(t, output, `err="connection refused"`)
	})
}

func TestLoggingRenderer_Delegates(t *testing.T) {
	t.Parallel()

	var opened, closed bool
	inner := &mock.Renderer{
		OpenFn:  func(context.Context) error { opened = true; return nil },
		CloseFn: func() error { closed = true; return nil },
	}
	r := parselslog.NewLoggingRenderer(inner, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	require.NoError(t, r.Open(context.Background()))
	require.NoError(t, r.Close())

	assert.True(t, opened)
	assert.True(t, closed)
}
