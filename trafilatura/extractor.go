// Package trafilatura extracts the main article of a page for the article
// command, ahead of the readability fallback.
package trafilatura

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/fwojciec/parsel"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements parsel.Extractor at compile time.
var _ parsel.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the title and main content HTML of rawHTML. Relative href
// and src attributes are resolved against pageURL when it is set.
func (e *Extractor) Extract(rawHTML, pageURL string) (string, string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", "", parsel.Errorf(parsel.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
		IncludeLinks:   true,
		IncludeImages:  true,
	}

	var base *url.URL
	if pageURL != "" {
		u, err := url.Parse(pageURL)
		if err != nil {
			return "", "", parsel.Errorf(parsel.EINVALID, "invalid page URL %q: %v", pageURL, err)
		}
		base = u
		opts.OriginalURL = u
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return "", "", parsel.Errorf(parsel.ENOTFOUND, "failed to extract article: %v", err)
	}
	if result.ContentNode == nil {
		return "", "", parsel.Errorf(parsel.ENOTFOUND, "no article content found")
	}

	if base != nil {
		resolveLinks(result.ContentNode, base)
	}
	contentHTML, err := renderNode(result.ContentNode)
	if err != nil {
		return "", "", parsel.Errorf(parsel.EINTERNAL, "failed to render article: %v", err)
	}
	return result.Metadata.Title, contentHTML, nil
}

// resolveLinks rewrites href and src attributes under n to absolute URLs.
func resolveLinks(n *html.Node, base *url.URL) {
	if n.Type == html.ElementNode {
		for i, a := range n.Attr {
			if a.Namespace != "" || (a.Key != "href" && a.Key != "src") {
				continue
			}
			ref, err := url.Parse(strings.TrimSpace(a.Val))
			if err != nil {
				continue
			}
			n.Attr[i].Val = base.ResolveReference(ref).String()
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		resolveLinks(c, base)
	}
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
