package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/parsel"
)

// Compile-time interface verification.
var (
	_ parsel.Document       = (*LoggingDocument)(nil)
	_ parsel.DocumentParser = (*LoggingParser)(nil)
)

// LoggingParser wraps a DocumentParser so that every parsed Document logs its queries.
type LoggingParser struct {
	next   parsel.DocumentParser
	logger *slog.Logger
}

// NewLoggingParser creates a new LoggingParser.
func NewLoggingParser(next parsel.DocumentParser, logger *slog.Logger) *LoggingParser {
	return &LoggingParser{next: next, logger: logger}
}

// Parse logs the document size and parse duration.
func (p *LoggingParser) Parse(raw, url string) (parsel.Document, error) {
	begin := time.Now()
	doc, err := p.next.Parse(raw, url)
	if err != nil {
		p.logger.Error("parse", "url", url, "err", err)
		return nil, err
	}
	p.logger.Debug("parse", "url", url, "bytes", len(raw), "duration", time.Since(begin))
	return NewLoggingDocument(doc, p.logger), nil
}

// LoggingDocument wraps a Document with debug logging of queries.
type LoggingDocument struct {
	next   parsel.Document
	logger *slog.Logger
}

// NewLoggingDocument creates a new LoggingDocument.
func NewLoggingDocument(next parsel.Document, logger *slog.Logger) *LoggingDocument {
	return &LoggingDocument{next: next, logger: logger}
}

// Query logs the expression, result count and duration.
func (d *LoggingDocument) Query(mode parsel.Mode, expr string) (out []string, err error) {
	defer func(begin time.Time) {
		d.logger.Debug("query",
			"mode", string(mode),
			"expr", expr,
			"results", len(out),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.Query(mode, expr)
}

// Vocabulary delegates to the wrapped document.
func (d *LoggingDocument) Vocabulary(mode parsel.Mode) []string {
	return d.next.Vocabulary(mode)
}

// Raw delegates to the wrapped document.
func (d *LoggingDocument) Raw() string {
	return d.next.Raw()
}
