// Package rod provides a browser-based implementation of parsel.Renderer
// for documents that need JavaScript rendering.
package rod

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/parsel"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultTimeout bounds navigation and load of a single page.
const DefaultTimeout = 30 * time.Second

// Ensure Renderer implements parsel.Renderer at compile time.
var _ parsel.Renderer = (*Renderer)(nil)

// Renderer loads documents in a Chrome browser and returns the rendered DOM.
// One page is reused for every Goto so the browser window keeps its history.
type Renderer struct {
	headless  bool
	timeout   time.Duration
	headers   map[string]string
	waitCSS   string
	waitXPath string

	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithHeadless controls whether the browser window is hidden. Defaults to true.
func WithHeadless(headless bool) Option {
	return func(r *Renderer) {
		r.headless = headless
	}
}

// WithHeaders sets headers sent with every navigation.
func WithHeaders(headers map[string]string) Option {
	return func(r *Renderer) {
		r.headers = headers
	}
}

// WithTimeout sets the per-page timeout. Defaults to DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(r *Renderer) {
		r.timeout = d
	}
}

// WithWaitCSS makes Goto wait until an element matches the CSS selector.
func WithWaitCSS(selector string) Option {
	return func(r *Renderer) {
		r.waitCSS = selector
	}
}

// WithWaitXPath makes Goto wait until an element matches the XPath expression.
func WithWaitXPath(expr string) Option {
	return func(r *Renderer) {
		r.waitXPath = expr
	}
}

// NewRenderer creates a new Renderer. Open must be called before Goto.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{headless: true, timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Open launches the browser and opens the page used for navigation.
// Returns EUNAVAILABLE if Chrome cannot be found or launched.
func (r *Renderer) Open(ctx context.Context) error {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(r.headless)

	u, err := l.Context(ctx).Launch()
	if err != nil {
		return parsel.Errorf(parsel.EUNAVAILABLE, "launching browser: %v", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return parsel.Errorf(parsel.EUNAVAILABLE, "connecting to browser: %v", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = browser.Close()
		l.Kill()
		return fmt.Errorf("opening page: %w", err)
	}
	if err := r.applyHeaders(page); err != nil {
		_ = browser.Close()
		l.Kill()
		return err
	}

	r.launcher, r.browser, r.page = l, browser, page
	return nil
}

func (r *Renderer) applyHeaders(page *rod.Page) error {
	var extra []string
	for k, v := range r.headers {
		if strings.EqualFold(k, "User-Agent") {
			if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: v}); err != nil {
				return fmt.Errorf("setting user agent: %w", err)
			}
			continue
		}
		extra = append(extra, k, v)
	}
	if len(extra) > 0 {
		if _, err := page.SetExtraHeaders(extra); err != nil {
			return fmt.Errorf("setting headers: %w", err)
		}
	}
	return nil
}

// pageInfoJS reads the navigation status, final URL and content type.
const pageInfoJS = `() => {
	const nav = performance.getEntriesByType("navigation")[0];
	return {
		status: (nav && nav.responseStatus) || 0,
		url: location.href,
		type: document.contentType,
	};
}`

// Goto navigates to url, waits for the load event and returns the rendered HTML.
func (r *Renderer) Goto(ctx context.Context, url string) (*parsel.Response, error) {
	if r.page == nil {
		return nil, parsel.Errorf(parsel.EINTERNAL, "renderer is not open")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	page := r.page.Context(ctx)
	if err := page.Navigate(url); err != nil {
		return nil, parsel.Errorf(parsel.EUNAVAILABLE, "navigating to %s: %v", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("waiting for %s: %w", url, err)
	}
	if r.waitCSS != "" {
		if _, err := page.Element(r.waitCSS); err != nil {
			return nil, fmt.Errorf("waiting for %q: %w", r.waitCSS, err)
		}
	}
	if r.waitXPath != "" {
		if _, err := page.ElementX(r.waitXPath); err != nil {
			return nil, fmt.Errorf("waiting for %q: %w", r.waitXPath, err)
		}
	}

	html, err := page.HTML()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, err)
	}

	resp := &parsel.Response{URL: url, StatusCode: 200, Content: html, ContentType: "text/html"}
	if info, err := page.Eval(pageInfoJS); err == nil {
		if status := info.Value.Get("status").Int(); status > 0 {
			resp.StatusCode = status
		}
		resp.URL = info.Value.Get("url").Str()
		resp.ContentType = info.Value.Get("type").Str()
	}
	return resp, nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (r *Renderer) Close() error {
	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser, r.page = nil, nil
	}
	if r.launcher != nil {
		r.launcher.Kill()
		r.launcher = nil
	}
	return err
}
