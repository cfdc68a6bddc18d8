// Package prompt implements the interactive selector session: the input
// line protocol, the command table and the read-eval-print loop.
package prompt

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fwojciec/parsel"
)

// Session holds the state of one interactive run: the current document,
// query mode and session processor chain. Collaborators are assigned by the
// caller; commands whose collaborator is nil report EUNAVAILABLE.
type Session struct {
	Parser     parsel.DocumentParser
	Renderer   parsel.Renderer
	Processors *parsel.ProcessorRegistry

	Reader    parsel.LineReader
	Confirmer parsel.Confirmer
	Clipboard parsel.Clipboard
	Opener    parsel.Opener
	Temp      parsel.TempWriter
	Extractor parsel.Extractor
	Converter parsel.Converter
	Shells    []parsel.Shell

	// HistoryCSS and HistoryXPath store input lines per mode.
	HistoryCSS   parsel.History
	HistoryXPath parsel.History

	// Out receives results; Err receives command output and error echoes.
	Out    io.Writer
	Err    io.Writer
	Logger *slog.Logger

	config   *parsel.Config
	options  *parsel.OptionParser
	commands map[string]command

	mode     parsel.Mode
	chain    parsel.Chain
	viMode   bool
	document parsel.Document
	response *parsel.Response
	outputs  []parsel.Value
}

// NewSession creates a session configured by cfg.
func NewSession(cfg *parsel.Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	options, err := parsel.NewOptionParser(Flags(cfg.JoinSeparator))
	if err != nil {
		return nil, err
	}
	s := &Session{
		Processors: parsel.NewProcessorRegistry(),
		Out:        os.Stdout,
		Err:        os.Stderr,
		Logger:     slog.New(slog.DiscardHandler),
		config:     cfg,
		options:    options,
		mode:       cfg.StartMode,
		viMode:     cfg.ViMode,
	}
	s.commands = s.commandTable()
	return s, nil
}

// Mode returns the current query mode.
func (s *Session) Mode() parsel.Mode {
	return s.mode
}

// Chain returns the session processor chain.
func (s *Session) Chain() parsel.Chain {
	return s.chain
}

// ViMode reports the input mode preference.
func (s *Session) ViMode() bool {
	return s.viMode
}

// Response returns the response the current document was built from.
func (s *Session) Response() *parsel.Response {
	return s.response
}

// Outputs returns the printed results, oldest first.
func (s *Session) Outputs() []parsel.Value {
	return s.outputs
}

// SwitchMode changes the query mode. The processor chain and stored
// history are left untouched.
func (s *Session) SwitchMode(mode parsel.Mode) {
	if s.mode == mode {
		return
	}
	s.Logger.Debug("switch mode", "from", s.mode, "to", mode)
	s.mode = mode
}

// Reset empties the session processor chain.
func (s *Session) Reset() {
	s.chain = nil
}

// SetDocument replaces the current document and the response it came from.
func (s *Session) SetDocument(doc parsel.Document, resp *parsel.Response) {
	s.document, s.response = doc, resp
}

// Load navigates the renderer to url and replaces the current document.
func (s *Session) Load(ctx context.Context, url string) error {
	if s.Renderer == nil || s.Parser == nil {
		return parsel.Errorf(parsel.EUNAVAILABLE, "no renderer attached")
	}
	resp, err := s.Renderer.Goto(ctx, url)
	if err != nil {
		return err
	}
	doc, err := s.Parser.Parse(resp.Content, resp.URL)
	if err != nil {
		return err
	}
	s.SetDocument(doc, resp)
	return nil
}

// History returns the history store of the current mode.
func (s *Session) History() parsel.History {
	if s.mode == parsel.ModeXPath {
		return s.HistoryXPath
	}
	return s.HistoryCSS
}

// Completions returns the completion vocabulary of the current mode: every
// flag spelling plus words derived from the document.
func (s *Session) Completions() []string {
	words := s.options.Spellings()
	if s.document != nil {
		words = append(words, s.document.Vocabulary(s.mode)...)
	}
	return words
}

// ReadLine executes one input line. Command flags run in order of
// appearance. Processor flags form a one-shot chain for the line's query,
// or replace the session chain when the line holds nothing else. A nil
// result means nothing was queried.
func (s *Session) ReadLine(ctx context.Context, line string) (*parsel.Result, error) {
	if !parsel.NeedsParsing(line) {
		return s.Evaluate(line, s.chain)
	}

	parsed, err := s.options.Parse(line)
	if err != nil {
		return nil, err
	}
	s.Logger.Debug("parsed line", "line", line, "flags", len(parsed.Flags), "remainder", parsed.Remainder)

	// Processors are built before any command runs so that a bad argument
	// leaves the session untouched.
	var oneShot parsel.Chain
	for _, f := range parsed.Flags {
		if f.Kind != parsel.FlagProcessor {
			continue
		}
		processors, err := s.newProcessors(f)
		if err != nil {
			return nil, err
		}
		oneShot = append(oneShot, processors...)
	}

	var ran bool
	for _, f := range parsed.Flags {
		if f.Kind != parsel.FlagCommand {
			continue
		}
		ran = true
		if err := s.run(ctx, f); err != nil {
			s.Logger.Debug("command failed", "command", f.Name, "err", err)
			s.echo("%s", parsel.ErrorMessage(err))
		}
	}

	switch {
	case len(parsed.Flags) == 0:
		// Flag-like text that is not a flag is part of the selector.
		return s.Evaluate(line, s.chain)
	case parsed.Remainder != "":
		chain := s.chain
		if len(oneShot) > 0 {
			chain = oneShot
		}
		return s.Evaluate(parsed.Remainder, chain)
	case len(oneShot) > 0 && !ran:
		s.chain = oneShot
		s.echo("active processors: %s", s.chain)
	}
	return nil, nil
}

// newProcessors builds the processors requested by f. A repeated flag
// yields one processor per value.
func (s *Session) newProcessors(f parsel.ParsedFlag) ([]parsel.Processor, error) {
	if len(f.Values) > 1 {
		out := make([]parsel.Processor, 0, len(f.Values))
		for _, v := range f.Values {
			p, err := s.Processors.New(f.Name, v)
			if err != nil {
				return nil, err
			}
			out = append(out, p)
		}
		return out, nil
	}
	p, err := s.Processors.New(f.Name, f.Args()...)
	if err != nil {
		return nil, err
	}
	return []parsel.Processor{p}, nil
}

// Evaluate queries expr in the current mode and applies chain to the
// result. Query errors are echoed and an empty list is processed instead.
func (s *Session) Evaluate(expr string, chain parsel.Chain) (*parsel.Result, error) {
	s.Logger.Info("extracting", "mode", s.mode, "expr", expr, "processors", chain.String())

	values, err := s.query(expr)
	if err != nil {
		s.echo("E:\"%s\": %s", expr, parsel.ErrorMessage(err))
		values = []string{}
	}

	ctx := parsel.ProcessContext{Response: s.response}
	v, meta, err := chain.Apply(ctx, parsel.Strings(values))
	if err != nil {
		return nil, err
	}
	return &parsel.Result{Value: v, Meta: meta}, nil
}

func (s *Session) query(expr string) ([]string, error) {
	if s.document == nil {
		return nil, parsel.Errorf(parsel.ENOTFOUND, "no document loaded")
	}
	return s.document.Query(s.mode, expr)
}

// Toolbar summarises the session: input mode, response origin, status,
// URL and active processors.
func (s *Session) Toolbar() string {
	var toolbar string
	if s.viMode {
		toolbar = "[vi]"
	}
	if s.response != nil {
		url := s.response.URL
		if r := []rune(url); len(r) > 70 {
			url = string(r[:67]) + "..."
		}
		origin := "live"
		if s.response.FromCache {
			origin = "cached"
		}
		toolbar += fmt.Sprintf(" [%s] %d %s", origin, s.response.StatusCode, url)
	}
	return toolbar + " | " + s.chain.String()
}

// Prompt returns the input prompt, labelled with the current mode.
func (s *Session) Prompt() string {
	return s.mode.Label() + "> "
}

func (s *Session) echo(format string, args ...any) {
	fmt.Fprintf(s.Err, format+"\n", args...)
}
