package parsel

import (
	"math/big"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// Compile-time interface verification.
var (
	_ Processor = Strip{}
	_ Processor = Collapse{}
	_ Processor = First{}
	_ Processor = Nth{}
	_ Processor = Join{}
	_ Processor = Absolute{}
	_ Processor = Len{}
	_ Processor = Repr{}
	_ Processor = (*Regex)(nil)
	_ Processor = Slice{}
	_ Processor = Sum{}
	_ Processor = Pretty{}
	_ Processor = Markdown{}
)

// Strip removes leading and trailing characters from every value.
// List elements that become empty are dropped.
type Strip struct {
	// Chars is the set of characters to strip. Empty means whitespace.
	Chars string
}

// NewStrip constructs a Strip with an optional character set.
func NewStrip(args ...string) (Processor, error) {
	if len(args) > 1 {
		return nil, Errorf(EINVALID, "strip takes at most one argument")
	}
	if len(args) == 1 {
		return Strip{Chars: args[0]}, nil
	}
	return Strip{}, nil
}

func (p Strip) strip(s string) string {
	if p.Chars == "" {
		return strings.TrimSpace(s)
	}
	return strings.Trim(s, p.Chars)
}

// Apply implements Processor.
func (p Strip) Apply(_ ProcessContext, v Value) (Value, Meta, error) {
	if !v.IsList() {
		return String(p.strip(v.Text())), nil, nil
	}
	texts, err := v.Texts()
	if err != nil {
		return Value{}, nil, err
	}
	out := make([]string, 0, len(texts))
	for _, s := range texts {
		if stripped := p.strip(s); stripped != "" {
			out = append(out, stripped)
		}
	}
	return Strings(out), nil, nil
}

func (p Strip) String() string {
	if p.Chars == "" {
		return "strip"
	}
	return "strip(" + strconv.Quote(p.Chars) + ")"
}

// Collapse unwraps single element lists and turns empty lists into "".
type Collapse struct{}

// Apply implements Processor.
func (Collapse) Apply(_ ProcessContext, v Value) (Value, Meta, error) {
	if !v.IsList() {
		return v, nil, nil
	}
	switch len(v.Items()) {
	case 0:
		return String(""), nil, nil
	case 1:
		return v.Items()[0], nil, nil
	}
	return v, nil, nil
}

func (Collapse) String() string { return "collapse" }

// First takes the first element of a list, or "" if the list is empty.
type First struct{}

// Apply implements Processor.
func (First) Apply(_ ProcessContext, v Value) (Value, Meta, error) {
	if !v.IsList() {
		return v, nil, nil
	}
	if len(v.Items()) == 0 {
		return String(""), nil, nil
	}
	return v.Items()[0], nil, nil
}

func (First) String() string { return "first" }

// Nth takes the element (or rune) at index N. Negative indexes count from the end.
type Nth struct {
	N int
}

// NewNth constructs an Nth from its integer argument.
func NewNth(args ...string) (Processor, error) {
	if len(args) != 1 {
		return nil, Errorf(EINVALID, "n requires an integer argument")
	}
	n, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return nil, Errorf(EINVALID, "invalid integer %q", args[0])
	}
	return Nth{N: n}, nil
}

// Apply implements Processor.
func (p Nth) Apply(_ ProcessContext, v Value) (Value, Meta, error) {
	if v.IsList() {
		i, ok := normalizeIndex(p.N, len(v.Items()))
		if !ok {
			return Value{}, nil, Errorf(EINVALID, "list index %d out of range", p.N)
		}
		return v.Items()[i], nil, nil
	}
	runes := []rune(v.Text())
	i, ok := normalizeIndex(p.N, len(runes))
	if !ok {
		return Value{}, nil, Errorf(EINVALID, "string index %d out of range", p.N)
	}
	return String(string(runes[i])), nil, nil
}

func (p Nth) String() string { return "n(" + strconv.Itoa(p.N) + ")" }

func normalizeIndex(n, length int) (int, bool) {
	if n < 0 {
		n += length
	}
	if n < 0 || n >= length {
		return 0, false
	}
	return n, true
}

// Join concatenates list elements with Sep. Scalars pass through unchanged.
type Join struct {
	Sep string
}

// NewJoin constructs a Join with an optional separator.
func NewJoin(args ...string) (Processor, error) {
	if len(args) > 1 {
		return nil, Errorf(EINVALID, "join takes at most one argument")
	}
	if len(args) == 1 {
		return Join{Sep: args[0]}, nil
	}
	return Join{}, nil
}

// Apply implements Processor.
func (p Join) Apply(_ ProcessContext, v Value) (Value, Meta, error) {
	if !v.IsList() {
		return v, nil, nil
	}
	texts, err := v.Texts()
	if err != nil {
		return Value{}, nil, err
	}
	return String(strings.Join(texts, p.Sep)), nil, nil
}

func (p Join) String() string { return "join(" + strconv.Quote(p.Sep) + ")" }

// Absolute resolves relative URLs against the current response URL.
// Values pass through unchanged when no base URL is available.
type Absolute struct{}

// Apply implements Processor.
func (Absolute) Apply(ctx ProcessContext, v Value) (Value, Meta, error) {
	base, err := url.Parse(ctx.BaseURL())
	if ctx.BaseURL() == "" || err != nil {
		return v, nil, nil
	}
	out, err := v.mapTexts(func(s string) (Value, error) {
		ref, err := url.Parse(strings.TrimSpace(s))
		if err != nil {
			return String(s), nil
		}
		return String(base.ResolveReference(ref).String()), nil
	})
	return out, nil, err
}

func (Absolute) String() string { return "absolute" }

// Len replaces a value with its length: element count for lists, rune count for strings.
type Len struct{}

// Apply implements Processor.
func (Len) Apply(_ ProcessContext, v Value) (Value, Meta, error) {
	return String(strconv.Itoa(v.Len())), nil, nil
}

func (Len) String() string { return "len" }

// Repr replaces a value with its quoted representation.
type Repr struct{}

// Apply implements Processor.
func (Repr) Apply(_ ProcessContext, v Value) (Value, Meta, error) {
	return String(v.Repr()), nil, nil
}

func (Repr) String() string { return "repr" }

// Regex searches every value for Pattern. Without capture groups a matching
// value is kept, with one group it is replaced by the group, and with several
// groups it is replaced by the list of groups. Non-matching values become "".
type Regex struct {
	re *regexp.Regexp
}

// NewRegex compiles the pattern argument.
func NewRegex(args ...string) (Processor, error) {
	if len(args) != 1 {
		return nil, Errorf(EINVALID, "re requires a pattern argument")
	}
	re, err := regexp.Compile(args[0])
	if err != nil {
		return nil, Errorf(EINVALID, "invalid pattern %q: %v", args[0], err)
	}
	return &Regex{re: re}, nil
}

// Apply implements Processor.
func (p *Regex) Apply(_ ProcessContext, v Value) (Value, Meta, error) {
	groups := p.re.NumSubexp()
	out, err := v.mapTexts(func(s string) (Value, error) {
		m := p.re.FindStringSubmatch(s)
		switch {
		case m == nil:
			return String(""), nil
		case groups == 0:
			return String(s), nil
		case groups == 1:
			return String(m[1]), nil
		}
		return Strings(m[1:]), nil
	})
	if err != nil {
		return Value{}, nil, err
	}
	return out, Meta{"re.groups": strconv.Itoa(groups)}, nil
}

func (p *Regex) String() string { return "re(" + strconv.Quote(p.re.String()) + ")" }

// Slice takes a sub-list or substring using start:stop[:step] semantics with
// optional bounds and negative indexes counting from the end.
type Slice struct {
	Start, Stop, Step *int
	raw               string
}

// NewSlice parses a textual range such as "1:3", ":-1" or "::2".
func NewSlice(args ...string) (Processor, error) {
	if len(args) != 1 {
		return nil, Errorf(EINVALID, "slice requires a range argument")
	}
	raw := strings.TrimSpace(args[0])
	raw = strings.TrimSuffix(strings.TrimPrefix(raw, "["), "]")
	parts := strings.Split(raw, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return nil, Errorf(EINVALID, "invalid slice %q, expected start:stop[:step]", args[0])
	}
	bounds := make([]*int, 3)
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, Errorf(EINVALID, "invalid slice %q, %q is not an integer", args[0], part)
		}
		bounds[i] = &n
	}
	if bounds[2] != nil && *bounds[2] == 0 {
		return nil, Errorf(EINVALID, "invalid slice %q, step cannot be zero", args[0])
	}
	return Slice{Start: bounds[0], Stop: bounds[1], Step: bounds[2], raw: raw}, nil
}

// indices returns the positions selected from a sequence of the given length.
func (p Slice) indices(length int) []int {
	step := 1
	if p.Step != nil {
		step = *p.Step
	}
	clamp := func(bound *int, def, lo, hi int) int {
		if bound == nil {
			return def
		}
		n := *bound
		if n < 0 {
			n += length
		}
		if n < lo {
			return lo
		}
		if n > hi {
			return hi
		}
		return n
	}
	var idx []int
	if step > 0 {
		start := clamp(p.Start, 0, 0, length)
		stop := clamp(p.Stop, length, 0, length)
		for i := start; i < stop; i += step {
			idx = append(idx, i)
		}
		return idx
	}
	start := clamp(p.Start, length-1, -1, length-1)
	stop := clamp(p.Stop, -1, -1, length-1)
	for i := start; i > stop; i += step {
		idx = append(idx, i)
	}
	return idx
}

// Apply implements Processor.
func (p Slice) Apply(_ ProcessContext, v Value) (Value, Meta, error) {
	if v.IsList() {
		items := v.Items()
		out := make([]Value, 0, len(items))
		for _, i := range p.indices(len(items)) {
			out = append(out, items[i])
		}
		return List(out...), nil, nil
	}
	runes := []rune(v.Text())
	var b strings.Builder
	for _, i := range p.indices(len(runes)) {
		b.WriteRune(runes[i])
	}
	return String(b.String()), nil, nil
}

func (p Slice) String() string { return "slice(" + strconv.Quote(p.raw) + ")" }

var (
	integerRe = regexp.MustCompile(`^[+-]?\d+$`)
	decimalRe = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)$`)
)

// Sum adds up numeric list elements. Integer-only input is summed as
// integers, anything else as exact decimals keeping the widest scale.
// Scalars pass through unchanged.
type Sum struct{}

// Apply implements Processor.
func (Sum) Apply(_ ProcessContext, v Value) (Value, Meta, error) {
	if !v.IsList() {
		return v, nil, nil
	}
	texts, err := v.Texts()
	if err != nil {
		return Value{}, nil, err
	}
	for i := range texts {
		texts[i] = strings.TrimSpace(texts[i])
	}

	allInts := true
	for _, s := range texts {
		if !integerRe.MatchString(s) {
			allInts = false
			break
		}
	}
	if allInts {
		total := new(big.Int)
		for _, s := range texts {
			n, _ := new(big.Int).SetString(strings.TrimPrefix(s, "+"), 10)
			total.Add(total, n)
		}
		return String(total.String()), nil, nil
	}

	total := new(big.Rat)
	scale := 0
	for _, s := range texts {
		if !decimalRe.MatchString(s) {
			return Value{}, nil, Errorf(EINVALID, "invalid decimal %q", s)
		}
		n, ok := new(big.Rat).SetString(normalizeDecimal(s))
		if !ok {
			return Value{}, nil, Errorf(EINVALID, "invalid decimal %q", s)
		}
		if dot := strings.IndexByte(s, '.'); dot >= 0 {
			scale = max(scale, len(s)-dot-1)
		}
		total.Add(total, n)
	}
	return String(total.FloatString(scale)), nil, nil
}

func (Sum) String() string { return "sum" }

// normalizeDecimal rewrites forms such as "+.5" or "3." into "0.5" and "3".
func normalizeDecimal(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
	}
	s = strings.TrimLeft(s, "+-")
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}
	return sign + strings.TrimSuffix(s, ".")
}

// Formatter pretty-prints a markup fragment.
type Formatter interface {
	Format(fragment string) (string, error)
}

// Pretty formats values that look like markup fragments. Fragments of XML
// responses go through XML, everything else through HTML.
type Pretty struct {
	HTML Formatter
	XML  Formatter
}

// PrettyFactory returns a factory building Pretty processors with the given formatters.
func PrettyFactory(htmlFormatter, xmlFormatter Formatter) ProcessorFactory {
	return noArgs(func() Processor { return Pretty{HTML: htmlFormatter, XML: xmlFormatter} })
}

// Apply implements Processor.
func (p Pretty) Apply(ctx ProcessContext, v Value) (Value, Meta, error) {
	formatter := p.HTML
	if ctx.Response != nil && ctx.Response.IsXML() && p.XML != nil {
		formatter = p.XML
	}
	out, err := v.mapTexts(func(s string) (Value, error) {
		if !looksLikeMarkup(s) {
			return String(s), nil
		}
		formatted, err := formatter.Format(s)
		if err != nil {
			return Value{}, err
		}
		return String(formatted), nil
	})
	return out, nil, err
}

func (Pretty) String() string { return "pretty" }

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown. Relative links are
	// made absolute against baseURL when it is not empty.
	Convert(html, baseURL string) (string, error)
}

// Markdown converts values that look like HTML fragments into Markdown.
type Markdown struct {
	Converter Converter
}

// MarkdownFactory returns a factory building Markdown processors.
func MarkdownFactory(converter Converter) ProcessorFactory {
	return noArgs(func() Processor { return Markdown{Converter: converter} })
}

// Apply implements Processor.
func (p Markdown) Apply(ctx ProcessContext, v Value) (Value, Meta, error) {
	out, err := v.mapTexts(func(s string) (Value, error) {
		if !looksLikeMarkup(s) {
			return String(s), nil
		}
		md, err := p.Converter.Convert(s, ctx.BaseURL())
		if err != nil {
			return Value{}, err
		}
		return String(md), nil
	})
	return out, nil, err
}

func (Markdown) String() string { return "md" }

func looksLikeMarkup(s string) bool {
	return strings.HasPrefix(strings.TrimSpace(s), "<")
}
