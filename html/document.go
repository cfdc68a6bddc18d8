// Package html implements parsel.Document on top of golang.org/x/net/html.
//
// CSS expressions are compiled with cascadia and evaluated through goquery;
// XPath expressions are evaluated with antchfx/xpath over an htmlquery
// navigator. Both engines share one parsed tree.
package html

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xpath"
	"github.com/fwojciec/parsel"
	"golang.org/x/net/html"
)

// Compile-time interface verification.
var (
	_ parsel.Document       = (*Document)(nil)
	_ parsel.DocumentParser = (*Parser)(nil)
)

// Parser parses raw markup into Documents.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse implements parsel.DocumentParser.
func (p *Parser) Parse(raw, url string) (parsel.Document, error) {
	root, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return nil, parsel.Errorf(parsel.EINVALID, "failed to parse %s: %v", url, err)
	}
	return &Document{
		root: root,
		doc:  goquery.NewDocumentFromNode(root),
		raw:  raw,
	}, nil
}

// Document is a parsed HTML tree.
type Document struct {
	root *html.Node
	doc  *goquery.Document
	raw  string
}

// Raw implements parsel.Document.
func (d *Document) Raw() string {
	return d.raw
}

// Query implements parsel.Document.
func (d *Document) Query(mode parsel.Mode, expr string) ([]string, error) {
	switch mode {
	case parsel.ModeCSS:
		return d.css(expr)
	case parsel.ModeXPath:
		return d.xpath(expr)
	}
	return nil, parsel.Errorf(parsel.EINVALID, "unknown mode %q", mode)
}

// pseudoRe matches the trailing ::text and ::attr(name) pseudo-elements.
var pseudoRe = regexp.MustCompile(`^(.*?)::(text|attr\(\s*([^)\s]+)\s*\))\s*$`)

// cssGroup is one selector of a selector list with its optional
// pseudo-element.
type cssGroup struct {
	matcher cascadia.Selector
	pseudo  string
	attr    string
}

// css evaluates a selector list as a union: every matched element,
// attribute or text node is returned once, in document order.
func (d *Document) css(expr string) ([]string, error) {
	selected := map[*html.Node][]cssGroup{}
	for _, g := range splitGroups(expr) {
		group, err := compileGroup(g)
		if err != nil {
			return nil, err
		}
		for _, n := range d.doc.FindMatcher(group.matcher).Nodes {
			selected[n] = append(selected[n], group)
		}
	}

	out := []string{}
	var walk func(n *html.Node) error
	walk = func(n *html.Node) error {
		switch n.Type {
		case html.ElementNode:
			if matches(selected[n], "", "") {
				s, err := render(n)
				if err != nil {
					return err
				}
				out = append(out, s)
			}
			for _, a := range n.Attr {
				if matches(selected[n], "attr", a.Key) {
					out = append(out, a.Val)
				}
			}
		case html.TextNode:
			if n.Parent != nil && matches(selected[n.Parent], "text", "") {
				out = append(out, n.Data)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if err := walk(c); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(d.root); err != nil {
		return nil, err
	}
	return out, nil
}

func compileGroup(expr string) (cssGroup, error) {
	selector, pseudo, attr := strings.TrimSpace(expr), "", ""
	if m := pseudoRe.FindStringSubmatch(selector); m != nil {
		selector, pseudo, attr = strings.TrimSpace(m[1]), m[2], m[3]
		if strings.HasPrefix(pseudo, "attr") {
			pseudo = "attr"
		}
	}
	if selector == "" && pseudo != "" {
		selector = "*"
	}
	matcher, err := cascadia.Compile(selector)
	if err != nil {
		return cssGroup{}, parsel.Errorf(parsel.EINVALID, "%v", err)
	}
	return cssGroup{matcher: matcher, pseudo: pseudo, attr: attr}, nil
}

// matches reports whether any of the groups that selected a node asks for
// the given pseudo-element.
func matches(groups []cssGroup, pseudo, attr string) bool {
	for _, g := range groups {
		if g.pseudo == pseudo && g.attr == attr {
			return true
		}
	}
	return false
}

// splitGroups splits a selector list on commas outside brackets, parentheses
// and quotes.
func splitGroups(expr string) []string {
	var (
		groups []string
		depth  int
		quote  rune
		start  int
	)
	for i, r := range expr {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
		case r == '(' || r == '[':
			depth++
		case r == ')' || r == ']':
			depth--
		case r == ',' && depth == 0:
			groups = append(groups, expr[start:i])
			start = i + 1
		}
	}
	return append(groups, expr[start:])
}

func (d *Document) xpath(expr string) (out []string, err error) {
	compiled, err := xpath.Compile(expr)
	if err != nil {
		return nil, parsel.Errorf(parsel.EINVALID, "%v", err)
	}

	// Evaluation panics on some type errors, e.g. applying a node-set
	// function to a number.
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, parsel.Errorf(parsel.EINVALID, "%v", r)
		}
	}()

	out = []string{}
	switch v := compiled.Evaluate(htmlquery.CreateXPathNavigator(d.root)).(type) {
	case *xpath.NodeIterator:
		for v.MoveNext() {
			nav, ok := v.Current().(*htmlquery.NodeNavigator)
			if !ok {
				continue
			}
			s, err := navigatorValue(nav)
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
	case float64:
		out = append(out, strconv.FormatFloat(v, 'f', -1, 64))
	case bool:
		if v {
			out = append(out, "1")
		} else {
			out = append(out, "0")
		}
	case string:
		out = append(out, v)
	default:
		out = append(out, fmt.Sprint(v))
	}
	return out, nil
}

func navigatorValue(nav *htmlquery.NodeNavigator) (string, error) {
	switch nav.NodeType() {
	case xpath.AttributeNode, xpath.TextNode:
		return nav.Value(), nil
	case xpath.CommentNode:
		return "<!--" + nav.Value() + "-->", nil
	}
	return render(nav.Current())
}

func render(n *html.Node) (string, error) {
	var b strings.Builder
	if err := html.Render(&b, n); err != nil {
		return "", parsel.Errorf(parsel.EINTERNAL, "failed to render node: %v", err)
	}
	return b.String(), nil
}
