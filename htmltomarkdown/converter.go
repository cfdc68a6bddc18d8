// Package htmltomarkdown converts extracted HTML fragments to Markdown.
package htmltomarkdown

import (
	"net/url"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/strikethrough"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/parsel"
)

// Ensure Converter implements parsel.Converter at compile time.
var _ parsel.Converter = (*Converter)(nil)

// Converter backs the md processor and the article command.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			strikethrough.NewStrikethroughPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms an HTML fragment into Markdown with surrounding
// whitespace removed. Root-relative links and images are made absolute
// against the scheme and host of baseURL when it has both.
func (c *Converter) Convert(html, baseURL string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", parsel.Errorf(parsel.EINVALID, "empty HTML input")
	}

	var opts []converter.ConvertOptionFunc
	if u, err := url.Parse(baseURL); err == nil && u.Scheme != "" && u.Host != "" {
		opts = append(opts, converter.WithDomain(u.Scheme+"://"+u.Host))
	}
	result, err := c.conv.ConvertString(html, opts...)
	if err != nil {
		return "", parsel.Errorf(parsel.EINVALID, "failed to convert HTML: %v", err)
	}
	return strings.TrimSpace(result), nil
}
