// Package slog provides logging decorators for parsel collaborators.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/parsel"
)

// Ensure LoggingRenderer implements parsel.Renderer.
var _ parsel.Renderer = (*LoggingRenderer)(nil)

// LoggingRenderer wraps a Renderer with logging of every navigation.
type LoggingRenderer struct {
	next   parsel.Renderer
	logger *slog.Logger
}

// NewLoggingRenderer creates a new LoggingRenderer.
func NewLoggingRenderer(next parsel.Renderer, logger *slog.Logger) *LoggingRenderer {
	return &LoggingRenderer{next: next, logger: logger}
}

// Open delegates to the wrapped renderer.
func (r *LoggingRenderer) Open(ctx context.Context) error {
	err := r.next.Open(ctx)
	if err != nil {
		r.logger.Error("renderer open", "err", err)
	}
	return err
}

// Goto logs the URL, status, size and duration of the navigation.
func (r *LoggingRenderer) Goto(ctx context.Context, url string) (resp *parsel.Response, err error) {
	defer func(begin time.Time) {
		attrs := []any{"url", url, "duration", time.Since(begin)}
		if resp != nil {
			attrs = append(attrs, "status", resp.StatusCode, "bytes", len(resp.Content), "cached", resp.FromCache)
		}
		if err != nil {
			r.logger.Error("goto", append(attrs, "err", err)...)
			return
		}
		r.logger.Info("goto", attrs...)
	}(time.Now())
	return r.next.Goto(ctx, url)
}

// Close delegates to the wrapped renderer.
func (r *LoggingRenderer) Close() error {
	return r.next.Close()
}
