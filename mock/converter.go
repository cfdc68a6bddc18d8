package mock

import "github.com/fwojciec/parsel"

var (
	_ parsel.Converter = (*Converter)(nil)
	_ parsel.Formatter = (*Formatter)(nil)
)

// Converter is a mock implementation of parsel.Converter.
type Converter struct {
	ConvertFn func(html, baseURL string) (string, error)
}

func (c *Converter) Convert(html, baseURL string) (string, error) {
	return c.ConvertFn(html, baseURL)
}

// Formatter is a mock implementation of parsel.Formatter.
type Formatter struct {
	FormatFn func(fragment string) (string, error)
}

func (f *Formatter) Format(fragment string) (string, error) {
	return f.FormatFn(fragment)
}
