package parsel

import "strings"

// Tokenize splits a line on spaces and tabs. A token that starts with a
// single or double quote runs to the matching closing quote and keeps its
// quotes; quotes inside a word are literal. Newlines are ordinary characters
// so that processor arguments may contain them.
func Tokenize(line string) ([]string, error) {
	var tokens []string
	runes := []rune(line)
	i := 0
	for i < len(runes) {
		if isBlank(runes[i]) {
			i++
			continue
		}

		if q := runes[i]; q == '\'' || q == '"' {
			end := indexRune(runes, q, i+1)
			if end < 0 {
				return nil, Errorf(EINVALID, "No closing quotation")
			}
			tokens = append(tokens, string(runes[i:end+1]))
			i = end + 1
			continue
		}

		start := i
		for i < len(runes) && !isBlank(runes[i]) {
			i++
		}
		tokens = append(tokens, string(runes[start:i]))
	}
	return tokens, nil
}

// Unquote strips one enclosing pair of matching quotes from s.
func Unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '\'' || first == '"') && !strings.ContainsRune(s[1:len(s)-1], rune(first)) {
			return s[1 : len(s)-1]
		}
	}
	return s
}

func isBlank(r rune) bool {
	return r == ' ' || r == '\t'
}

func indexRune(runes []rune, r rune, from int) int {
	for i := from; i < len(runes); i++ {
		if runes[i] == r {
			return i
		}
	}
	return -1
}
