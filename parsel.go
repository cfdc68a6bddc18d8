// Package parsel provides an interactive shell for CSS and XPath selectors.
// A user types selector expressions against a parsed HTML/XML document and
// sees extracted values immediately, optionally transformed by a chain of
// processors selected with inline flags.
//
// This package contains domain types, interfaces and the pure line protocol
// (option parsing, processors) following Ben Johnson's Standard Package
// Layout. Implementations live in subdirectories named after their primary
// dependency (e.g., html/, sqlite/, rod/).
package parsel
