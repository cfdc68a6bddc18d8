package mock

import "github.com/fwojciec/parsel"

var _ parsel.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of parsel.Extractor.
type Extractor struct {
	ExtractFn func(html, pageURL string) (string, string, error)
}

func (e *Extractor) Extract(html, pageURL string) (string, string, error) {
	return e.ExtractFn(html, pageURL)
}
