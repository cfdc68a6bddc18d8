package html

import (
	"strings"

	"github.com/fwojciec/parsel"
	"github.com/yosssi/gohtml"
)

var _ parsel.Formatter = (*Formatter)(nil)

// Formatter pretty-prints HTML fragments with gohtml. Markup is
// re-indented token by token, so fragments keep their shape and gain no
// html/head/body wrapper.
type Formatter struct{}

// NewFormatter creates a Formatter.
func NewFormatter() *Formatter {
	return &Formatter{}
}

// Format implements parsel.Formatter.
func (f *Formatter) Format(fragment string) (string, error) {
	if strings.TrimSpace(fragment) == "" {
		return "", parsel.Errorf(parsel.EINVALID, "empty HTML input")
	}
	return strings.TrimRight(gohtml.Format(fragment), "\n"), nil
}
