package parsel

import "strings"

// Mode selects how literal input is interpreted.
type Mode string

// Query modes.
const (
	ModeCSS   Mode = "css"
	ModeXPath Mode = "xpath"
)

// ParseMode converts a mode name into a Mode.
// Returns EINVALID for unknown names.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeCSS:
		return ModeCSS, nil
	case ModeXPath:
		return ModeXPath, nil
	}
	return "", Errorf(EINVALID, "unknown mode %q", s)
}

// Label returns the upper-case label shown next to the prompt.
func (m Mode) Label() string {
	return strings.ToUpper(string(m))
}
