package prompt

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/parsel"
)

// command runs a command flag. value is the flag argument, if any.
type command func(ctx context.Context, value string) error

func (s *Session) commandTable() map[string]command {
	return map[string]command{
		cmdHelp:    func(context.Context, string) error { s.help(); return nil },
		cmdInfo:    func(context.Context, string) error { s.info(); return nil },
		cmdCSS:     func(context.Context, string) error { s.switchTo(parsel.ModeCSS); return nil },
		cmdXPath:   func(context.Context, string) error { s.switchTo(parsel.ModeXPath); return nil },
		cmdReset:   func(context.Context, string) error { s.reset(); return nil },
		cmdVi:      func(context.Context, string) error { s.toggleVi(); return nil },
		cmdFetch:   s.fetch,
		cmdOpen:    func(context.Context, string) error { return s.open() },
		cmdView:    func(context.Context, string) error { return s.view() },
		cmdEmbed:   func(ctx context.Context, _ string) error { return s.Embed(ctx) },
		cmdClipIn:  func(context.Context, string) error { return s.clipIn() },
		cmdClipOut: func(context.Context, string) error { return s.clipOut() },
		cmdArticle: func(context.Context, string) error { return s.article() },
	}
}

func (s *Session) run(ctx context.Context, f parsel.ParsedFlag) error {
	cmd, ok := s.commands[f.Name]
	if !ok {
		return parsel.Errorf(parsel.ENOTFOUND, "unknown command %q", f.Name)
	}
	s.Logger.Debug("running command", "command", f.Name, "value", f.Value)
	return cmd(ctx, f.Value)
}

// help prints the command and processor reference.
func (s *Session) help() {
	s.echo("Commands:")
	for _, spec := range s.options.Specs() {
		if spec.Kind == parsel.FlagCommand {
			s.echo("%-25s%s", strings.Join(spec.Spellings, ", "), spec.Help)
		}
	}
	s.echo("Processors:")
	for _, spec := range s.options.Specs() {
		if spec.Kind == parsel.FlagProcessor {
			s.echo("%-25s%s", strings.Join(spec.Spellings, ", "), spec.Help)
		}
	}
}

func (s *Session) info() {
	if s.response == nil {
		s.echo("No response object attached")
	} else {
		s.echo("%d %s", s.response.StatusCode, s.response.URL)
	}
	s.echo("Enabled processors: %s", s.chain)
	s.echo("%s", s.Toolbar())
}

func (s *Session) switchTo(mode parsel.Mode) {
	s.echo("switched to %s", mode)
	s.SwitchMode(mode)
}

func (s *Session) reset() {
	s.Reset()
	s.echo("active processors: %s", s.chain)
}

func (s *Session) toggleVi() {
	s.viMode = !s.viMode
	state := "OFF"
	if s.viMode {
		state = "ON"
	}
	s.echo("vi mode turned %s", state)
}

func (s *Session) fetch(ctx context.Context, url string) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return parsel.Errorf(parsel.EINVALID, "fetch requires a url")
	}
	s.echo("requesting: %s", url)
	return s.Load(ctx, url)
}

func (s *Session) open() error {
	if s.Opener == nil {
		return parsel.Errorf(parsel.EUNAVAILABLE, "no browser opener available")
	}
	if s.response == nil {
		return parsel.Errorf(parsel.ENOTFOUND, "No response object attached")
	}
	return s.Opener.Open(s.response.URL)
}

// view writes the raw document to a temporary file and opens it.
func (s *Session) view() error {
	if s.Opener == nil || s.Temp == nil {
		return parsel.Errorf(parsel.EUNAVAILABLE, "no browser opener available")
	}
	if s.document == nil {
		return parsel.Errorf(parsel.ENOTFOUND, "no document loaded")
	}
	suffix := ".html"
	if s.response != nil && s.response.IsXML() {
		suffix = ".xml"
	}
	target, err := s.Temp.Write(s.document.Raw(), suffix)
	if err != nil {
		return fmt.Errorf("writing document: %w", err)
	}
	return s.Opener.Open(target)
}

// clipIn copies the input line before the current one.
func (s *Session) clipIn() error {
	if s.Clipboard == nil {
		return parsel.Errorf(parsel.EUNAVAILABLE, "no clipboard available")
	}
	h := s.History()
	if h == nil {
		return parsel.Errorf(parsel.ENOTFOUND, "no input history")
	}
	lines, err := h.Lines()
	if err != nil {
		return err
	}
	// The most recent line is the one running this command.
	if len(lines) < 2 {
		return parsel.Errorf(parsel.ENOTFOUND, "no previous input")
	}
	value := lines[1]
	if err := s.Clipboard.Copy(value); err != nil {
		return err
	}
	s.echo("copied %q to clipboard", truncate(value, 100))
	return nil
}

func (s *Session) clipOut() error {
	if s.Clipboard == nil {
		return parsel.Errorf(parsel.EUNAVAILABLE, "no clipboard available")
	}
	if len(s.outputs) == 0 {
		return parsel.Errorf(parsel.ENOTFOUND, "no output to copy")
	}
	value := s.outputs[len(s.outputs)-1].String()
	if err := s.Clipboard.Copy(value); err != nil {
		return err
	}
	s.echo("copied %s to clipboard", truncate(value, 100))
	return nil
}

// article prints the main content of the document as Markdown.
func (s *Session) article() error {
	if s.Extractor == nil || s.Converter == nil {
		return parsel.Errorf(parsel.EUNAVAILABLE, "article extraction unavailable")
	}
	if s.document == nil {
		return parsel.Errorf(parsel.ENOTFOUND, "no document loaded")
	}
	var pageURL string
	if s.response != nil {
		pageURL = s.response.URL
	}
	title, content, err := s.Extractor.Extract(s.document.Raw(), pageURL)
	if err != nil {
		return err
	}
	md, err := s.Converter.Convert(content, pageURL)
	if err != nil {
		return err
	}
	if title != "" {
		fmt.Fprintf(s.Out, "# %s\n\n", title)
	}
	fmt.Fprintln(s.Out, md)
	return nil
}

// Embed hands control to an interactive shell with a snapshot of the
// session and blocks until it exits.
func (s *Session) Embed(ctx context.Context) error {
	ns, err := s.namespace()
	if err != nil {
		return err
	}
	s.Logger.Debug("embedding shell", "preferred", s.config.PreferredShell)
	return parsel.EmbedAuto(ctx, s.Shells, s.config.PreferredShell, ns, s.config.HistoryFileEmbed)
}

func (s *Session) namespace() (parsel.Namespace, error) {
	ns := parsel.Namespace{
		Mode:       s.mode,
		Processors: make([]string, len(s.chain)),
		Outputs:    make([]string, len(s.outputs)),
	}
	for i, p := range s.chain {
		ns.Processors[i] = p.String()
	}
	for i, v := range s.outputs {
		ns.Outputs[i] = v.String()
	}
	if n := len(ns.Outputs); n > 0 {
		ns.Out = ns.Outputs[n-1]
	}
	if s.response != nil {
		ns.URL, ns.StatusCode = s.response.URL, s.response.StatusCode
	}
	if s.document != nil {
		ns.Document = s.document.Raw()
	}

	var err error
	if ns.InCSS, err = lines(s.HistoryCSS); err != nil {
		return ns, err
	}
	if ns.InXPath, err = lines(s.HistoryXPath); err != nil {
		return ns, err
	}
	return ns, nil
}

func lines(h parsel.History) ([]string, error) {
	if h == nil {
		return []string{}, nil
	}
	return h.Lines()
}

// truncate cuts s to its first n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) < n {
		return s
	}
	return string(r[:n]) + "<...>"
}
