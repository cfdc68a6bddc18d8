// Package term reads input lines from the terminal with golang.org/x/term,
// falling back to plain buffered reading when input is not a terminal.
package term

import (
	"bufio"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fwojciec/parsel"
	"golang.org/x/term"
)

// Compile-time interface verification.
var (
	_ parsel.LineReader = (*Reader)(nil)
	_ parsel.Confirmer  = (*Reader)(nil)
)

// Reader implements parsel.LineReader and parsel.Confirmer.
type Reader struct {
	// Color highlights the prompt on interactive terminals.
	Color bool

	mu          sync.Mutex
	completions []string
	history     *historyAdapter
	vi          bool

	out io.Writer

	// Interactive mode.
	fd       int
	terminal *term.Terminal

	// Fallback mode.
	buf *bufio.Reader
}

// NewReader creates a Reader. When in is a terminal, line editing, history
// recall and tab completion are enabled.
func NewReader(in io.Reader, out io.Writer) *Reader {
	r := &Reader{out: out, history: &historyAdapter{}}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		r.fd = int(f.Fd())
		r.terminal = term.NewTerminal(struct {
			io.Reader
			io.Writer
		}{in, out}, "")
		r.terminal.AutoCompleteCallback = r.autoComplete
		r.terminal.History = r.history
		return r
	}
	r.buf = bufio.NewReader(in)
	return r
}

// Interactive reports whether the Reader is attached to a terminal.
func (r *Reader) Interactive() bool {
	return r.terminal != nil
}

// ReadLine shows prompt and returns the next line without its newline.
// Returns io.EOF at the end of input.
func (r *Reader) ReadLine(prompt string) (string, error) {
	if r.terminal == nil {
		return r.readBuffered(prompt)
	}

	state, err := term.MakeRaw(r.fd)
	if err != nil {
		return "", err
	}
	defer term.Restore(r.fd, state)

	if r.Color {
		prompt = string(r.terminal.Escape.Cyan) + prompt + string(r.terminal.Escape.Reset)
	}
	r.terminal.SetPrompt(prompt)
	return r.terminal.ReadLine()
}

func (r *Reader) readBuffered(prompt string) (string, error) {
	if _, err := io.WriteString(r.out, prompt); err != nil {
		return "", err
	}
	line, err := r.buf.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Confirm asks question and reports whether the answer was yes.
func (r *Reader) Confirm(question string) (bool, error) {
	answer, err := r.ReadLine(question + " [y/N] ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// SetCompletions replaces the completion vocabulary.
func (r *Reader) SetCompletions(words []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completions = append([]string(nil), words...)
}

// SetHistory routes history recall to h.
func (r *Reader) SetHistory(h parsel.History) {
	r.history.set(h)
}

// SetViMode records the input mode preference. x/term only provides
// emacs-style editing, so the flag is informational.
func (r *Reader) SetViMode(on bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vi = on
}

// ViMode reports the recorded input mode preference.
func (r *Reader) ViMode() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.vi
}

// Close is a no-op; the terminal state is restored after every line.
func (r *Reader) Close() error {
	return nil
}

func (r *Reader) autoComplete(line string, pos int, key rune) (string, int, bool) {
	if key != '\t' {
		return "", 0, false
	}
	r.mu.Lock()
	words := r.completions
	r.mu.Unlock()
	return Complete(words, line, pos)
}

// Complete extends the word ending at pos to the longest prefix shared by
// every matching candidate. Matching is case-insensitive. Words start after
// the last space, so completion works in the middle of a selector.
func Complete(words []string, line string, pos int) (string, int, bool) {
	start := strings.LastIndexAny(line[:pos], " \t") + 1
	prefix := line[start:pos]
	if prefix == "" {
		return "", 0, false
	}

	var matches []string
	for _, w := range words {
		if len(w) > len(prefix) && strings.EqualFold(w[:len(prefix)], prefix) {
			matches = append(matches, w)
		}
	}
	if len(matches) == 0 {
		return "", 0, false
	}

	common := matches[0]
	for _, m := range matches[1:] {
		common = commonPrefix(common, m)
	}
	if len(common) <= len(prefix) {
		return "", 0, false
	}
	newLine := line[:start] + common + line[pos:]
	return newLine, start + len(common), true
}

func commonPrefix(a, b string) string {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if !strings.EqualFold(a[i:i+1], b[i:i+1]) {
			return a[:i]
		}
	}
	return a[:n]
}
