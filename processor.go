package parsel

import (
	"sort"
	"strings"
)

// Meta carries metadata contributed by processors, e.g. regex group counts.
type Meta map[string]string

// ProcessContext exposes the state a processor may read at apply time.
type ProcessContext struct {
	// Response is the response the current document was built from.
	// It is nil when no response is attached.
	Response *Response
}

// BaseURL returns the URL of the current response, or "" if there is none.
func (c ProcessContext) BaseURL() string {
	if c.Response == nil {
		return ""
	}
	return c.Response.URL
}

// Processor transforms an extraction result.
// Processors are stateless once constructed.
type Processor interface {
	// Apply transforms v and returns the new value with any metadata.
	Apply(ctx ProcessContext, v Value) (Value, Meta, error)

	// String returns the processor name with its construction argument.
	String() string
}

// ProcessorFactory constructs a processor from zero or one argument.
type ProcessorFactory func(args ...string) (Processor, error)

// Chain is an ordered sequence of processors.
type Chain []Processor

// Apply threads v through every processor in order. The chain is atomic:
// the first failing processor aborts it and no partial value is returned.
func (c Chain) Apply(ctx ProcessContext, v Value) (Value, Meta, error) {
	meta := Meta{}
	for _, p := range c {
		next, m, err := p.Apply(ctx, v)
		if err != nil {
			return Value{}, nil, Errorf(EPROCESSOR, "processor \"%s\" failed: %s", p.String(), ErrorMessage(err))
		}
		for k, val := range m {
			meta[k] = val
		}
		v = next
	}
	return v, meta, nil
}

// String renders the chain as a bracketed list, e.g. [strip, join(",")].
func (c Chain) String() string {
	names := make([]string, len(c))
	for i, p := range c {
		names[i] = p.String()
	}
	return "[" + strings.Join(names, ", ") + "]"
}

// Result is the output of a query after processing.
type Result struct {
	Value Value
	Meta  Meta
}

// ProcessorRegistry maps processor names to factories.
type ProcessorRegistry struct {
	factories map[string]ProcessorFactory
}

// NewProcessorRegistry returns a registry holding every built-in processor
// that needs no external formatter.
func NewProcessorRegistry() *ProcessorRegistry {
	r := &ProcessorRegistry{factories: make(map[string]ProcessorFactory)}
	r.Register("strip", NewStrip)
	r.Register("collapse", noArgs(func() Processor { return Collapse{} }))
	r.Register("first", noArgs(func() Processor { return First{} }))
	r.Register("n", NewNth)
	r.Register("join", NewJoin)
	r.Register("absolute", noArgs(func() Processor { return Absolute{} }))
	r.Register("len", noArgs(func() Processor { return Len{} }))
	r.Register("repr", noArgs(func() Processor { return Repr{} }))
	r.Register("re", NewRegex)
	r.Register("slice", NewSlice)
	r.Register("sum", noArgs(func() Processor { return Sum{} }))
	return r
}

// Register adds a factory under name, replacing any existing one.
func (r *ProcessorRegistry) Register(name string, factory ProcessorFactory) {
	r.factories[name] = factory
}

// Has reports whether a factory is registered under name.
func (r *ProcessorRegistry) Has(name string) bool {
	_, ok := r.factories[name]
	return ok
}

// New constructs the processor registered under name.
// Returns ENOTFOUND if no such processor exists.
func (r *ProcessorRegistry) New(name string, args ...string) (Processor, error) {
	factory, ok := r.factories[name]
	if !ok {
		return nil, Errorf(ENOTFOUND, "unknown processor %q", name)
	}
	return factory(args...)
}

// Names returns all registered processor names in sorted order.
func (r *ProcessorRegistry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func noArgs(fn func() Processor) ProcessorFactory {
	return func(args ...string) (Processor, error) {
		if len(args) > 0 {
			return nil, Errorf(EINVALID, "%s takes no argument", fn().String())
		}
		return fn(), nil
	}
}
