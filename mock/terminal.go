package mock

import "github.com/fwojciec/parsel"

var (
	_ parsel.LineReader = (*LineReader)(nil)
	_ parsel.Confirmer  = (*Confirmer)(nil)
	_ parsel.Clipboard  = (*Clipboard)(nil)
	_ parsel.Opener     = (*Opener)(nil)
	_ parsel.History    = (*History)(nil)
)

// LineReader is a mock implementation of parsel.LineReader.
type LineReader struct {
	ReadLineFn       func(prompt string) (string, error)
	SetCompletionsFn func(words []string)
	SetHistoryFn     func(h parsel.History)
	SetViModeFn      func(on bool)
	CloseFn          func() error
}

func (r *LineReader) ReadLine(prompt string) (string, error) {
	return r.ReadLineFn(prompt)
}

func (r *LineReader) SetCompletions(words []string) {
	r.SetCompletionsFn(words)
}

func (r *LineReader) SetHistory(h parsel.History) {
	r.SetHistoryFn(h)
}

func (r *LineReader) SetViMode(on bool) {
	r.SetViModeFn(on)
}

func (r *LineReader) Close() error {
	return r.CloseFn()
}

// Confirmer is a mock implementation of parsel.Confirmer.
type Confirmer struct {
	ConfirmFn func(question string) (bool, error)
}

func (c *Confirmer) Confirm(question string) (bool, error) {
	return c.ConfirmFn(question)
}

// Clipboard is a mock implementation of parsel.Clipboard.
type Clipboard struct {
	CopyFn func(text string) error
}

func (c *Clipboard) Copy(text string) error {
	return c.CopyFn(text)
}

// Opener is a mock implementation of parsel.Opener.
type Opener struct {
	OpenFn func(target string) error
}

func (o *Opener) Open(target string) error {
	return o.OpenFn(target)
}

// History is a mock implementation of parsel.History.
type History struct {
	AppendFn func(line string) error
	LinesFn  func() ([]string, error)
}

func (h *History) Append(line string) error {
	return h.AppendFn(line)
}

func (h *History) Lines() ([]string, error) {
	return h.LinesFn()
}

var _ parsel.TempWriter = (*TempWriter)(nil)

// TempWriter is a mock implementation of parsel.TempWriter.
type TempWriter struct {
	WriteFn func(content, suffix string) (string, error)
}

func (w *TempWriter) Write(content, suffix string) (string, error) {
	return w.WriteFn(content, suffix)
}
