package mock

import "github.com/fwojciec/parsel"

var (
	_ parsel.Document       = (*Document)(nil)
	_ parsel.DocumentParser = (*DocumentParser)(nil)
)

// Document is a mock implementation of parsel.Document.
type Document struct {
	QueryFn      func(mode parsel.Mode, expr string) ([]string, error)
	VocabularyFn func(mode parsel.Mode) []string
	RawFn        func() string
}

func (d *Document) Query(mode parsel.Mode, expr string) ([]string, error) {
	return d.QueryFn(mode, expr)
}

func (d *Document) Vocabulary(mode parsel.Mode) []string {
	return d.VocabularyFn(mode)
}

func (d *Document) Raw() string {
	return d.RawFn()
}

// DocumentParser is a mock implementation of parsel.DocumentParser.
type DocumentParser struct {
	ParseFn func(raw, url string) (parsel.Document, error)
}

func (p *DocumentParser) Parse(raw, url string) (parsel.Document, error) {
	return p.ParseFn(raw, url)
}
