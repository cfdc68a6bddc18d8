package fs

import (
	"net/url"
	"os"

	"github.com/fwojciec/parsel"
)

var _ parsel.TempWriter = (*TempWriter)(nil)

// TempWriter writes documents to temporary files so they can be opened in
// an external viewer.
type TempWriter struct {
	dir string
}

// NewTempWriter creates a TempWriter writing into dir.
// An empty dir uses the system temporary directory.
func NewTempWriter(dir string) *TempWriter {
	return &TempWriter{dir: dir}
}

// Write stores content in a new file with the given suffix, e.g. ".html",
// and returns its file:// URL. The file is left in place for the viewer.
func (w *TempWriter) Write(content, suffix string) (string, error) {
	f, err := os.CreateTemp(w.dir, "parsel-*"+suffix)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := f.WriteString(content); err != nil {
		return "", err
	}
	return (&url.URL{Scheme: "file", Path: f.Name()}).String(), nil
}
