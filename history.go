package parsel

// History is an append-only store of input lines.
type History interface {
	// Append stores a line.
	Append(line string) error

	// Lines returns stored lines, most recent first.
	Lines() ([]string, error)
}
