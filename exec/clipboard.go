package exec

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/fwojciec/parsel"
)

var _ parsel.Clipboard = (*Clipboard)(nil)

// DefaultClipboardCommands are the clipboard tools tried in order.
var DefaultClipboardCommands = [][]string{
	{"pbcopy"},
	{"wl-copy"},
	{"xclip", "-selection", "clipboard"},
	{"xsel", "--clipboard", "--input"},
	{"clip.exe"},
}

// Clipboard pipes text into the first available clipboard tool.
type Clipboard struct {
	Commands [][]string
}

// NewClipboard creates a Clipboard using DefaultClipboardCommands.
func NewClipboard() *Clipboard {
	return &Clipboard{Commands: DefaultClipboardCommands}
}

// Copy implements parsel.Clipboard.
func (c *Clipboard) Copy(text string) error {
	argv, err := lookup(c.Commands)
	if err != nil {
		return err
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = strings.NewReader(text)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("copying with %s: %w: %s", argv[0], err, strings.TrimSpace(string(out)))
	}
	return nil
}
