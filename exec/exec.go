// Package exec implements clipboard, browser and shell collaborators by
// running external programs with os/exec.
package exec

import (
	"os/exec"

	"github.com/fwojciec/parsel"
)

// lookup returns the first command whose program is on PATH.
func lookup(commands [][]string) ([]string, error) {
	for _, argv := range commands {
		if len(argv) == 0 {
			continue
		}
		path, err := exec.LookPath(argv[0])
		if err != nil {
			continue
		}
		return append([]string{path}, argv[1:]...), nil
	}
	names := make([]string, 0, len(commands))
	for _, argv := range commands {
		if len(argv) > 0 {
			names = append(names, argv[0])
		}
	}
	return nil, parsel.Errorf(parsel.EUNAVAILABLE, "none of %v found in PATH", names)
}
