package fs

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/parsel"
)

// Ensure History implements parsel.History at compile time.
var _ parsel.History = (*History)(nil)

// History is an append-only line history file. Each entry is written as a
// "# <timestamp>" comment followed by its lines prefixed with "+", so
// entries may span several lines.
type History struct {
	path string

	// Now returns the current time. Overridable in tests.
	Now func() time.Time
}

// NewHistory creates a History backed by the file at path.
// The file and its directory are created on first Append.
func NewHistory(path string) *History {
	return &History{path: path, Now: time.Now}
}

// Path returns the backing file path.
func (h *History) Path() string {
	return h.path
}

// Append adds line to the end of the file.
func (h *History) Append(line string) error {
	if err := os.MkdirAll(filepath.Dir(h.path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	var b strings.Builder
	b.WriteString("\n# " + h.Now().Format("2006-01-02 15:04:05.000000") + "\n")
	for _, l := range strings.Split(line, "\n") {
		b.WriteString("+" + l + "\n")
	}
	_, err = f.WriteString(b.String())
	return err
}

// Lines returns stored entries, most recent first. A missing file has no entries.
func (h *History) Lines() ([]string, error) {
	f, err := os.Open(h.path)
	if os.IsNotExist(err) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var (
		entries []string
		current []string
	)
	flush := func() {
		if len(current) > 0 {
			entries = append(entries, strings.Join(current, "\n"))
			current = nil
		}
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "+") {
			current = append(current, line[1:])
			continue
		}
		flush()
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flush()

	out := make([]string, len(entries))
	for i, e := range entries {
		out[len(entries)-1-i] = e
	}
	return out, nil
}
