package parsel

import (
	"context"
	"strings"
)

// Response describes the result of loading a document source.
type Response struct {
	StatusCode  int
	URL         string
	ContentType string
	Content     string
	FromCache   bool
}

// IsXML reports whether the response carries an XML (non-HTML) document.
func (r *Response) IsXML() bool {
	ct := strings.ToLower(r.ContentType)
	return strings.Contains(ct, "xml") && !strings.Contains(ct, "html")
}

// Renderer loads documents from URLs or paths.
// Implementations may use plain HTTP, a cache, a browser, or the file system.
type Renderer interface {
	// Open prepares the renderer (sessions, browsers).
	// Must be called before Goto.
	Open(ctx context.Context) error

	// Goto loads the document at url and returns the response.
	Goto(ctx context.Context, url string) (*Response, error)

	// Close releases renderer resources.
	Close() error
}

// Cache stores rendered responses keyed by URL and request headers.
type Cache interface {
	// Get returns a cached response that has not expired.
	// Returns ENOTFOUND on a miss.
	Get(ctx context.Context, url string, headers map[string]string) (*Response, error)

	// Put stores a response.
	Put(ctx context.Context, url string, headers map[string]string, resp *Response) error
}
