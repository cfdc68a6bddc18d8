// Package readability extracts the main article of a page for the article command.
package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/parsel"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements parsel.Extractor at compile time.
var _ parsel.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the title and main content HTML of rawHTML. Relative links
// are resolved against pageURL when it is set.
// Returns ENOTFOUND if readability finds no article content.
func (e *Extractor) Extract(rawHTML, pageURL string) (string, string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", "", parsel.Errorf(parsel.EINVALID, "empty HTML input")
	}

	var base *url.URL
	if pageURL != "" {
		u, err := url.Parse(pageURL)
		if err != nil {
			return "", "", parsel.Errorf(parsel.EINVALID, "invalid page URL %q: %v", pageURL, err)
		}
		base = u
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), base)
	if err != nil {
		return "", "", parsel.Errorf(parsel.EINVALID, "failed to extract article: %v", err)
	}
	if strings.TrimSpace(article.Content) == "" {
		return "", "", parsel.Errorf(parsel.ENOTFOUND, "no article content found")
	}
	return article.Title, article.Content, nil
}
