package parsel

import (
	"context"
	"strings"
)

// Namespace is the snapshot of session state handed to an embedded shell.
type Namespace struct {
	URL        string   `json:"url"`
	StatusCode int      `json:"status_code"`
	Mode       Mode     `json:"mode"`
	Processors []string `json:"processors"`
	Outputs    []string `json:"outputs"`
	Out        string   `json:"out"`
	InCSS      []string `json:"in_css"`
	InXPath    []string `json:"in_xpath"`
	Document   string   `json:"document"`
}

// Shell is an interactive shell the session can hand control to.
type Shell interface {
	// Name identifies the shell, e.g. "bash".
	Name() string

	// Available reports whether the shell can be started in this environment.
	Available() bool

	// Embed runs the shell with the namespace and blocks until it exits.
	Embed(ctx context.Context, ns Namespace, historyFile string) error
}

// Extractor extracts the main article content from an HTML page.
type Extractor interface {
	// Extract returns the page title and the main content as clean HTML.
	// Relative links in the content are resolved against pageURL when it
	// is not empty.
	Extract(html, pageURL string) (title string, contentHTML string, err error)
}

// Extractors tries each extractor in order and returns the first result
// with content. The last error is returned when every extractor fails.
type Extractors []Extractor

// Extract implements Extractor.
func (e Extractors) Extract(html, pageURL string) (string, string, error) {
	var err error = Errorf(EUNAVAILABLE, "no extractor available")
	for _, x := range e {
		title, content, xerr := x.Extract(html, pageURL)
		if xerr == nil && strings.TrimSpace(content) != "" {
			return title, content, nil
		}
		if xerr == nil {
			xerr = Errorf(ENOTFOUND, "no article content found")
		}
		err = xerr
	}
	return "", "", err
}

// EmbedAuto embeds the shell named preferred when it is available,
// otherwise the first available shell in order.
// Returns EUNAVAILABLE if no shell can be started.
func EmbedAuto(ctx context.Context, shells []Shell, preferred string, ns Namespace, historyFile string) error {
	if preferred != "" {
		for _, s := range shells {
			if s.Name() == preferred && s.Available() {
				return s.Embed(ctx, ns, historyFile)
			}
		}
	}
	for _, s := range shells {
		if s.Available() {
			return s.Embed(ctx, ns, historyFile)
		}
	}
	return Errorf(EUNAVAILABLE, "no shell available to embed")
}
