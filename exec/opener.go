package exec

import (
	"fmt"
	"os/exec"

	"github.com/fwojciec/parsel"
)

var _ parsel.Opener = (*Opener)(nil)

// DefaultOpenerCommands are the programs tried in order to open a URL.
var DefaultOpenerCommands = [][]string{
	{"xdg-open"},
	{"open"},
	{"wslview"},
}

// Opener opens URLs and files with the desktop's default handler.
type Opener struct {
	Commands [][]string
}

// NewOpener creates an Opener using DefaultOpenerCommands.
func NewOpener() *Opener {
	return &Opener{Commands: DefaultOpenerCommands}
}

// Open implements parsel.Opener.
func (o *Opener) Open(target string) error {
	if target == "" {
		return parsel.Errorf(parsel.EINVALID, "nothing to open")
	}
	argv, err := lookup(o.Commands)
	if err != nil {
		return err
	}
	cmd := exec.Command(argv[0], append(argv[1:], target)...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("opening %s: %w", target, err)
	}
	return nil
}
