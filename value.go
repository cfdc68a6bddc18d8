package parsel

import (
	"strconv"
	"strings"
)

// Value is the unit flowing through a processor chain: either a single
// string or an ordered list of values. Query results always start out as a
// flat list of strings; only processors such as regex with several capture
// groups produce lists of lists.
type Value struct {
	text  string
	items []Value
	list  bool
}

// String returns a scalar Value.
func String(s string) Value {
	return Value{text: s}
}

// List returns a list Value holding the given items.
// The result is never nil-backed, so empty lists compare equal.
func List(items ...Value) Value {
	cp := make([]Value, len(items))
	copy(cp, items)
	return Value{items: cp, list: true}
}

// Strings returns a flat list Value holding the given strings.
func Strings(ss []string) Value {
	items := make([]Value, len(ss))
	for i, s := range ss {
		items[i] = String(s)
	}
	return Value{items: items, list: true}
}

// IsList reports whether v is a list.
func (v Value) IsList() bool {
	return v.list
}

// Text returns the scalar text of v. It is empty for lists.
func (v Value) Text() string {
	return v.text
}

// Items returns the elements of a list value. It is nil for scalars.
func (v Value) Items() []Value {
	return v.items
}

// Len returns the number of elements of a list or the number of runes of a scalar.
func (v Value) Len() int {
	if v.list {
		return len(v.items)
	}
	return len([]rune(v.text))
}

// IsEmpty reports whether v is an empty string or an empty list.
func (v Value) IsEmpty() bool {
	if v.list {
		return len(v.items) == 0
	}
	return v.text == ""
}

// Texts returns the text of every element of a flat list.
// It fails if an element is itself a list.
func (v Value) Texts() ([]string, error) {
	if !v.list {
		return []string{v.text}, nil
	}
	out := make([]string, len(v.items))
	for i, item := range v.items {
		if item.list {
			return nil, Errorf(EINVALID, "expected string element at index %d, got list", i)
		}
		out[i] = item.text
	}
	return out, nil
}

// Flatten concatenates all text held by v. It is used to measure output size.
func (v Value) Flatten() string {
	if !v.list {
		return v.text
	}
	var b strings.Builder
	for _, item := range v.items {
		b.WriteString(item.Flatten())
	}
	return b.String()
}

// Repr returns the quoted representation of v, e.g. ["a", "b\n"].
func (v Value) Repr() string {
	if !v.list {
		return strconv.Quote(v.text)
	}
	parts := make([]string, len(v.items))
	for i, item := range v.items {
		parts[i] = item.Repr()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// String renders v for display: scalars as is, lists in repr form.
func (v Value) String() string {
	if !v.list {
		return v.text
	}
	return v.Repr()
}

// mapTexts applies fn to a scalar or to every element of a flat list.
func (v Value) mapTexts(fn func(string) (Value, error)) (Value, error) {
	if !v.list {
		return fn(v.text)
	}
	texts, err := v.Texts()
	if err != nil {
		return Value{}, err
	}
	out := make([]Value, 0, len(texts))
	for _, s := range texts {
		mapped, err := fn(s)
		if err != nil {
			return Value{}, err
		}
		out = append(out, mapped)
	}
	return Value{items: out, list: true}, nil
}
