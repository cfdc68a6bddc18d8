package parsel

// LineReader supplies raw input lines to the interpreter loop.
type LineReader interface {
	// ReadLine shows prompt and returns the next line.
	// Returns io.EOF when input is exhausted or interrupted.
	ReadLine(prompt string) (string, error)

	// SetCompletions replaces the completion vocabulary.
	SetCompletions(words []string)

	// SetHistory routes recall of previous lines to h.
	SetHistory(h History)

	// SetViMode toggles vi-style input editing where supported.
	SetViMode(on bool)

	// Close restores the terminal.
	Close() error
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(question string) (bool, error)
}

// Clipboard copies text to the system clipboard.
type Clipboard interface {
	Copy(text string) error
}

// Opener opens a URL or file in an external viewer such as a web browser.
type Opener interface {
	Open(target string) error
}

// TempWriter stores content in temporary files for external viewers.
type TempWriter interface {
	// Write stores content in a new file with the given suffix and returns
	// its URL.
	Write(content, suffix string) (string, error)
}
