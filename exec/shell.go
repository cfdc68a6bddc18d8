package exec

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/fwojciec/parsel"
)

var _ parsel.Shell = (*Shell)(nil)

// Environment variables set for embedded shells.
const (
	EnvNamespace = "PARSEL_NAMESPACE"
	EnvURL       = "PARSEL_URL"
	EnvOut       = "PARSEL_OUT"
)

// Shell runs an interactive program with the session namespace written to
// a JSON file. The file path is exported as PARSEL_NAMESPACE.
type Shell struct {
	name string
	argv []string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewShell creates a Shell named name that runs argv.
// With no argv the name is used as the program.
func NewShell(name string, argv ...string) *Shell {
	if len(argv) == 0 {
		argv = []string{name}
	}
	return &Shell{
		name:   name,
		argv:   argv,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Name implements parsel.Shell.
func (s *Shell) Name() string {
	return s.name
}

// Available implements parsel.Shell.
func (s *Shell) Available() bool {
	_, err := exec.LookPath(s.argv[0])
	return err == nil
}

// Embed implements parsel.Shell. It blocks until the program exits.
func (s *Shell) Embed(ctx context.Context, ns parsel.Namespace, historyFile string) error {
	f, err := os.CreateTemp("", "parsel-namespace-*.json")
	if err != nil {
		return fmt.Errorf("creating namespace file: %w", err)
	}
	defer os.Remove(f.Name())

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ns); err != nil {
		f.Close()
		return fmt.Errorf("writing namespace: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing namespace: %w", err)
	}

	cmd := exec.CommandContext(ctx, s.argv[0], s.argv[1:]...)
	cmd.Env = append(os.Environ(),
		EnvNamespace+"="+f.Name(),
		EnvURL+"="+ns.URL,
		EnvOut+"="+ns.Out,
	)
	if historyFile != "" {
		if err := os.MkdirAll(filepath.Dir(historyFile), 0o755); err != nil {
			return fmt.Errorf("creating history directory: %w", err)
		}
		cmd.Env = append(cmd.Env, "HISTFILE="+historyFile)
	}
	cmd.Stdin, cmd.Stdout, cmd.Stderr = s.Stdin, s.Stdout, s.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// A non-zero exit of an interactive shell is the user's business.
			return nil
		}
		return fmt.Errorf("running %s: %w", s.name, err)
	}
	return nil
}

// DefaultShells returns the shell providers to try in order: the
// preferred program if set, the user's $SHELL, then bash and sh.
func DefaultShells(preferred string) []parsel.Shell {
	var shells []parsel.Shell
	if preferred != "" {
		shells = append(shells, NewShell(preferred))
	}
	if path := os.Getenv("SHELL"); path != "" {
		shells = append(shells, NewShell(filepath.Base(path), path))
	}
	return append(shells, NewShell("bash"), NewShell("sh"))
}
