package html

import (
	"sort"
	"strings"

	"github.com/fwojciec/parsel"
	"golang.org/x/net/html"
)

// CSSCompletion holds pseudo-elements offered in CSS mode.
var CSSCompletion = []string{"::text", "::attr("}

// XPathCompletion holds functions and axes offered in XPath mode.
var XPathCompletion = []string{
	"text()",
	"contains(",
	"starts-with(",
	"normalize-space(",
	"matches(",
	"count(",
	"position()",
	"last()",
	"following-sibling::",
	"preceding-sibling::",
	"ancestor::",
}

// Vocabulary implements parsel.Document.
func (d *Document) Vocabulary(mode parsel.Mode) []string {
	nodes := map[string]struct{}{}
	attrs := map[string]struct{}{}
	classes := map[string]struct{}{}
	ids := map[string]struct{}{}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			nodes[n.Data] = struct{}{}
			for _, a := range n.Attr {
				attrs[a.Key] = struct{}{}
				switch a.Key {
				case "class":
					for _, c := range strings.Fields(a.Val) {
						classes[c] = struct{}{}
					}
				case "id":
					if id := strings.TrimSpace(a.Val); id != "" {
						ids[id] = struct{}{}
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(d.root)

	words := keys(nodes, "")
	if mode == parsel.ModeXPath {
		words = append(words, keys(attrs, "@")...)
		return append(words, XPathCompletion...)
	}
	words = append(words, keys(classes, ".")...)
	words = append(words, keys(ids, "#")...)
	return append(words, CSSCompletion...)
}

func keys(set map[string]struct{}, prefix string) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, prefix+k)
	}
	sort.Strings(out)
	return out
}
