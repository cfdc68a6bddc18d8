package term

import (
	"sync"

	"github.com/fwojciec/parsel"
)

// historyAdapter exposes a parsel.History to the x/term line editor.
// Entries are appended by the interpreter loop, so Add only invalidates
// the cached snapshot.
type historyAdapter struct {
	mu     sync.Mutex
	source parsel.History
	lines  []string
	loaded bool
}

func (h *historyAdapter) set(source parsel.History) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.source, h.lines, h.loaded = source, nil, false
}

// Add implements term.History.
func (h *historyAdapter) Add(string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.loaded = false
}

// Len implements term.History.
func (h *historyAdapter) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.snapshot())
}

// At implements term.History. Index 0 is the most recent entry.
func (h *historyAdapter) At(idx int) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	lines := h.snapshot()
	if idx < 0 || idx >= len(lines) {
		return ""
	}
	return lines[idx]
}

// snapshot must be called with mu held.
func (h *historyAdapter) snapshot() []string {
	if h.loaded {
		return h.lines
	}
	h.lines, h.loaded = nil, true
	if h.source == nil {
		return nil
	}
	if lines, err := h.source.Lines(); err == nil {
		h.lines = lines
	}
	return h.lines
}
