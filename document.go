package parsel

// Document is an immutable parsed markup tree that can be queried.
type Document interface {
	// Query evaluates expr in the given mode and returns the extracted strings
	// in document order. Malformed expressions return EINVALID.
	Query(mode Mode, expr string) ([]string, error)

	// Vocabulary returns completion candidates derived from the document:
	// node names for both modes plus .class and #id tokens for CSS.
	Vocabulary(mode Mode) []string

	// Raw returns the markup the document was parsed from.
	Raw() string
}

// DocumentParser builds Documents from raw markup.
type DocumentParser interface {
	// Parse parses raw markup. The url is the document's source, used for
	// error messages only.
	Parse(raw string, url string) (Document, error)
}
