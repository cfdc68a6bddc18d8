package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/parsel"
)

// Run reads and executes lines until exit, end of input or cancellation.
// With startInEmbed the shell is embedded before the first prompt.
func (s *Session) Run(ctx context.Context, startInEmbed bool) error {
	if s.Reader == nil {
		return parsel.Errorf(parsel.EUNAVAILABLE, "no line reader attached")
	}
	if startInEmbed {
		if err := s.Embed(ctx); err != nil {
			s.echo("%s", parsel.ErrorMessage(err))
		}
	}

	for ctx.Err() == nil {
		s.Reader.SetHistory(s.History())
		s.Reader.SetCompletions(s.Completions())
		s.Reader.SetViMode(s.viMode)

		line, err := s.Reader.ReadLine(s.Prompt())
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		if s.Handle(ctx, line) {
			return nil
		}
	}
	return nil
}

// Handle executes one raw input line and prints its result. The line is
// recorded in the history of the mode it was typed in. Returns true when
// the line asks to exit.
func (s *Session) Handle(ctx context.Context, line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "exit":
		return true
	case "help":
		s.help()
		return false
	case "":
		return false
	}

	if h := s.History(); h != nil {
		if err := h.Append(line); err != nil {
			s.Logger.Warn("history append failed", "err", err)
		}
	}

	result, err := s.ReadLine(ctx, strings.ReplaceAll(line, `\n`, "\n"))
	if err != nil {
		s.echo("%s", parsel.ErrorMessage(err))
		return false
	}
	if result != nil {
		s.Print(result.Value)
	}
	return false
}

// Print writes v to Out and records it in the output history. Output over
// the configured warn limit is printed only after confirmation.
func (s *Session) Print(v parsel.Value) {
	if size := len(v.Flatten()); s.config.WarnLimit > 0 && size > s.config.WarnLimit {
		if s.Confirmer == nil {
			s.echo("very big output %d, skipped", size)
			return
		}
		ok, err := s.Confirmer.Confirm(fmt.Sprintf("very big output %d, print?", size))
		if err != nil || !ok {
			return
		}
	}
	fmt.Fprintln(s.Out, v.String())
	if !v.IsEmpty() {
		s.outputs = append(s.outputs, v)
	}
}

// Compile evaluates expr once in the given mode with the session chain and
// prints the result for one-shot runs. It skips the warn limit confirmation
// and does not record the result as session output.
func (s *Session) Compile(mode parsel.Mode, expr string) error {
	s.SwitchMode(mode)
	result, err := s.Evaluate(expr, s.chain)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.Out, result.Value.String())
	return nil
}

// Prime executes startup lines, typically to activate session processors.
// Results are discarded and nothing is recorded in history.
func (s *Session) Prime(ctx context.Context, lines []string) {
	for _, line := range lines {
		if _, err := s.ReadLine(ctx, strings.ReplaceAll(line, `\n`, "\n")); err != nil {
			s.echo("%s", parsel.ErrorMessage(err))
		}
	}
}
