// Package etree pretty-prints XML fragments with github.com/beevik/etree.
package etree

import (
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/parsel"
)

var _ parsel.Formatter = (*Formatter)(nil)

// Formatter indents XML fragments. Several top-level elements are allowed.
type Formatter struct {
	// Spaces is the indentation per nesting level.
	Spaces int
}

// NewFormatter creates a Formatter indenting by one space.
func NewFormatter() *Formatter {
	return &Formatter{Spaces: 1}
}

// Format implements parsel.Formatter.
func (f *Formatter) Format(fragment string) (string, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.Permissive = true
	if err := doc.ReadFromString(fragment); err != nil {
		return "", parsel.Errorf(parsel.EINVALID, "failed to parse XML: %v", err)
	}
	if len(doc.ChildElements()) == 0 {
		return "", parsel.Errorf(parsel.EINVALID, "failed to parse XML: no elements")
	}

	doc.Indent(f.Spaces)
	out, err := doc.WriteToString()
	if err != nil {
		return "", parsel.Errorf(parsel.EINTERNAL, "failed to write XML: %v", err)
	}
	return strings.TrimRight(out, "\n"), nil
}
