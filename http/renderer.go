// Package http provides an HTTP-based implementation of parsel.Renderer
// for documents that don't require JavaScript rendering.
package http

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/fwojciec/parsel"
	"golang.org/x/net/html/charset"
)

// DefaultTimeout is the default timeout for HTTP requests.
const DefaultTimeout = 30 * time.Second

// Ensure Renderer implements parsel.Renderer at compile time.
var _ parsel.Renderer = (*Renderer)(nil)

// Renderer loads documents with plain HTTP GET requests. Responses with any
// status code are returned; only transport failures are errors.
type Renderer struct {
	client  *http.Client
	timeout time.Duration
	headers map[string]string
	limiter *DomainLimiter
	cache   parsel.Cache
	logger  *slog.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(r *Renderer) {
		r.timeout = d
	}
}

// WithHeaders sets the headers sent with every request.
func WithHeaders(headers map[string]string) Option {
	return func(r *Renderer) {
		r.headers = headers
	}
}

// WithRateLimit limits requests per second to each domain.
// Zero disables limiting.
func WithRateLimit(rps float64) Option {
	return func(r *Renderer) {
		if rps > 0 {
			r.limiter = NewDomainLimiter(rps)
		}
	}
}

// WithCache serves responses from cache and stores successful ones in it.
func WithCache(c parsel.Cache) Option {
	return func(r *Renderer) {
		r.cache = c
	}
}

// WithLogger sets the logger for failures that do not fail a request.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		r.logger = logger
	}
}

// NewRenderer creates a new HTTP Renderer.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		timeout: DefaultTimeout,
		headers: map[string]string{},
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Open prepares the HTTP client.
func (r *Renderer) Open(_ context.Context) error {
	r.client = &http.Client{Timeout: r.timeout}
	return nil
}

// Goto retrieves the document at rawURL.
func (r *Renderer) Goto(ctx context.Context, rawURL string) (*parsel.Response, error) {
	if r.client == nil {
		return nil, parsel.Errorf(parsel.EINTERNAL, "renderer is not open")
	}

	if r.cache != nil {
		resp, err := r.cache.Get(ctx, rawURL, r.headers)
		if err == nil {
			resp.FromCache = true
			return resp, nil
		}
		if parsel.ErrorCode(err) != parsel.ENOTFOUND {
			return nil, err
		}
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, parsel.Errorf(parsel.EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	if r.limiter != nil {
		if err := r.limiter.Wait(ctx, u.Host); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, parsel.Errorf(parsel.EINVALID, "invalid request for %s: %v", rawURL, err)
	}
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}

	httpResp, err := r.client.Do(req)
	if err != nil {
		return nil, parsel.Errorf(parsel.EUNAVAILABLE, "request to %s failed: %v", rawURL, err)
	}
	defer httpResp.Body.Close()

	contentType := httpResp.Header.Get("Content-Type")
	body, err := charset.NewReader(httpResp.Body, contentType)
	if err != nil {
		return nil, fmt.Errorf("decoding response from %s: %w", rawURL, err)
	}
	content, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w", rawURL, err)
	}

	resp := &parsel.Response{
		StatusCode:  httpResp.StatusCode,
		URL:         httpResp.Request.URL.String(),
		ContentType: contentType,
		Content:     string(content),
	}

	if r.cache != nil && httpResp.StatusCode >= 200 && httpResp.StatusCode < 300 {
		if err := r.cache.Put(ctx, rawURL, r.headers, resp); err != nil {
			r.logger.Warn("cache write failed", "url", rawURL, "err", err)
		}
	}
	return resp, nil
}

// Close releases idle connections.
func (r *Renderer) Close() error {
	if r.client != nil {
		r.client.CloseIdleConnections()
	}
	return nil
}
