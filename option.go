package parsel

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// FlagKind distinguishes flags that run commands from flags that build processors.
type FlagKind int

const (
	FlagCommand FlagKind = iota
	FlagProcessor
)

// FlagSpec describes one flag recognised by an OptionParser.
//
// Several specs may share a Name; they then collapse onto one key of the
// parsed result and the later occurrence on a line wins.
type FlagSpec struct {
	// Name is the result key, e.g. "join" for both --join and --join-with.
	Name string

	// Spellings are the literal triggers, e.g. "--strip", "-s" or "+s".
	// Spellings with a single character after a single '-' or '+' are
	// short and may be clustered.
	Spellings []string

	// TakesValue reports whether the flag consumes an argument.
	TakesValue bool

	// Int requires the argument to be an integer.
	Int bool

	// Const is the value recorded when a switch appears. Nil records a
	// bare switch without a value.
	Const *string

	// Default is used when a value flag is followed by another flag or by
	// nothing. Nil makes that a parse error.
	Default *string

	// Multiple accumulates repeated values instead of replacing them.
	Multiple bool

	Help string
	Kind FlagKind
}

// ParsedFlag is one recognised flag of a parsed line.
type ParsedFlag struct {
	Name     string
	Kind     FlagKind
	Value    string
	HasValue bool

	// Values holds every occurrence of a Multiple flag.
	Values []string
}

// Args returns the construction arguments carried by the flag.
func (f ParsedFlag) Args() []string {
	if !f.HasValue {
		return nil
	}
	return []string{f.Value}
}

// ParsedLine is the result of parsing one input line.
type ParsedLine struct {
	// Flags are in order of first appearance with aliases collapsed.
	Flags []ParsedFlag

	// Remainder is the literal text left after flag extraction.
	Remainder string
}

// Get returns the flag stored under name.
func (l *ParsedLine) Get(name string) (ParsedFlag, bool) {
	for _, f := range l.Flags {
		if f.Name == name {
			return f, true
		}
	}
	return ParsedFlag{}, false
}

// Has reports whether the flag name was present on the line.
func (l *ParsedLine) Has(name string) bool {
	_, ok := l.Get(name)
	return ok
}

var (
	flagHintRe   = regexp.MustCompile(`[-+][\w\[]`)
	flagLikeRe   = regexp.MustCompile(`^--?[A-Za-z][\w-]*(=.*)?$`)
	spellingRe   = regexp.MustCompile(`^(--[\w\[-]+|[-+][\w\[][\w\[-]*)$`)
	endOfFlagsTk = "--"
)

// NeedsParsing is a coarse check for lines that may carry flags. Lines that
// fail it are plain selector expressions.
func NeedsParsing(line string) bool {
	return flagHintRe.MatchString(line)
}

// OptionParser extracts flags from input lines.
type OptionParser struct {
	specs     []FlagSpec
	spellings map[string]*FlagSpec
}

// NewOptionParser builds a parser for the given specs.
// Returns EINVALID if a spelling is malformed or registered twice.
func NewOptionParser(specs []FlagSpec) (*OptionParser, error) {
	p := &OptionParser{
		specs:     make([]FlagSpec, len(specs)),
		spellings: make(map[string]*FlagSpec),
	}
	copy(p.specs, specs)
	for i := range p.specs {
		spec := &p.specs[i]
		if spec.Name == "" {
			return nil, Errorf(EINVALID, "flag spec %d has no name", i)
		}
		for _, s := range spec.Spellings {
			if !spellingRe.MatchString(s) {
				return nil, Errorf(EINVALID, "invalid flag spelling %q", s)
			}
			if _, dup := p.spellings[s]; dup {
				return nil, Errorf(EINVALID, "flag spelling %q registered twice", s)
			}
			p.spellings[s] = spec
		}
	}
	return p, nil
}

// Specs returns the registered specs in registration order.
func (p *OptionParser) Specs() []FlagSpec {
	return p.specs
}

// Spellings returns every registered spelling in registration order.
func (p *OptionParser) Spellings() []string {
	var out []string
	for _, spec := range p.specs {
		out = append(out, spec.Spellings...)
	}
	return out
}

// Parse tokenizes line and separates recognised flags from the remainder.
func (p *OptionParser) Parse(line string) (*ParsedLine, error) {
	tokens, err := Tokenize(line)
	if err != nil {
		return nil, err
	}

	s := &scan{parser: p, tokens: tokens, index: make(map[string]int)}
	if err := s.run(); err != nil {
		return nil, err
	}
	return &ParsedLine{
		Flags:     s.flags,
		Remainder: Unquote(strings.TrimSpace(strings.Join(s.rest, " "))),
	}, nil
}

// isFlag reports whether tok names a flag exactly. Clusters are not
// considered so that values such as "-3:" can follow a value flag.
func (p *OptionParser) isFlag(tok string) bool {
	if _, ok := p.spellings[tok]; ok {
		return true
	}
	if name, _, ok := strings.Cut(tok, "="); ok && strings.HasPrefix(name, "--") {
		if _, ok := p.spellings[name]; ok {
			return true
		}
	}
	return false
}

// shortPrefix returns the first short spelling of a cluster such as "-sl".
func shortPrefix(tok string) (string, bool) {
	if len(tok) < 3 || (tok[0] != '-' && tok[0] != '+') || tok[1] == '-' {
		return "", false
	}
	_, size := utf8.DecodeRuneInString(tok[1:])
	return tok[:1+size], true
}

type scan struct {
	parser *OptionParser
	tokens []string
	pos    int
	flags  []ParsedFlag
	index  map[string]int
	rest   []string
}

func (s *scan) run() error {
	for s.pos < len(s.tokens) {
		tok := s.tokens[s.pos]
		s.pos++

		if tok == endOfFlagsTk {
			s.rest = append(s.rest, s.tokens[s.pos:]...)
			return nil
		}

		if spec, ok := s.parser.spellings[tok]; ok {
			if err := s.take(spec, tok, "", false); err != nil {
				return err
			}
			continue
		}

		if name, value, ok := strings.Cut(tok, "="); ok && strings.HasPrefix(name, "--") {
			if spec, ok := s.parser.spellings[name]; ok {
				if !spec.TakesValue {
					return Errorf(EINVALID, "option %s does not take a value", name)
				}
				if err := s.take(spec, name, value, true); err != nil {
					return err
				}
				continue
			}
		}

		if short, ok := shortPrefix(tok); ok {
			if _, known := s.parser.spellings[short]; known {
				if err := s.cluster(tok); err != nil {
					return err
				}
				continue
			}
		}

		if flagLikeRe.MatchString(tok) {
			name, _, _ := strings.Cut(tok, "=")
			return Errorf(EINVALID, "no such option: %s", name)
		}
		s.rest = append(s.rest, tok)
	}
	return nil
}

// cluster expands a token such as "-sl" or "-n2" into its short flags.
func (s *scan) cluster(tok string) error {
	prefix := tok[:1]
	body := []rune(tok[1:])
	for i, r := range body {
		spelling := prefix + string(r)
		spec, ok := s.parser.spellings[spelling]
		if !ok {
			return Errorf(EINVALID, "no such option: %s", spelling)
		}
		if spec.TakesValue {
			if rest := string(body[i+1:]); rest != "" {
				return s.take(spec, spelling, rest, true)
			}
			return s.take(spec, spelling, "", false)
		}
		if err := s.take(spec, spelling, "", false); err != nil {
			return err
		}
	}
	return nil
}

// take records spec. When inline is false a value flag reads the next token.
func (s *scan) take(spec *FlagSpec, spelling, value string, inline bool) error {
	var (
		hasValue bool
		err      error
	)
	switch {
	case !spec.TakesValue:
		if spec.Const != nil {
			value, hasValue = *spec.Const, true
		}
	case inline:
		hasValue = true
	default:
		value, hasValue, err = s.next(spec, spelling)
		if err != nil {
			return err
		}
	}

	if hasValue {
		value = Unquote(value)
		if spec.Int {
			if _, err := strconv.Atoi(value); err != nil {
				return Errorf(EINVALID, "invalid value for %s: %q is not a valid integer", spelling, value)
			}
		}
	}
	s.record(spec, value, hasValue)
	return nil
}

func (s *scan) next(spec *FlagSpec, spelling string) (string, bool, error) {
	if s.pos < len(s.tokens) && !s.parser.isFlag(s.tokens[s.pos]) && s.tokens[s.pos] != endOfFlagsTk {
		tok := s.tokens[s.pos]
		s.pos++
		return tok, true, nil
	}
	if spec.Default != nil {
		return *spec.Default, true, nil
	}
	return "", false, Errorf(EINVALID, "option %s requires an argument", spelling)
}

func (s *scan) record(spec *FlagSpec, value string, hasValue bool) {
	i, seen := s.index[spec.Name]
	if !seen {
		i = len(s.flags)
		s.index[spec.Name] = i
		s.flags = append(s.flags, ParsedFlag{Name: spec.Name})
	}
	f := &s.flags[i]
	f.Kind = spec.Kind
	if spec.Multiple && hasValue {
		f.Values = append(f.Values, value)
	}
	f.Value, f.HasValue = value, hasValue
}
