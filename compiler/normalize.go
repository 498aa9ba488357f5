package compiler

import "strings"

const (
	commentMarker = '#'
	terminator    = ";"
)

// NormalizeLine removes the comment, the surrounding whitespace, and one
// trailing statement terminator from a raw source line. It reports false
// when nothing is left to translate.
func NormalizeLine(raw string) (string, bool) {
	if i := strings.IndexByte(raw, commentMarker); i >= 0 {
		raw = raw[:i]
	}

	line := stripTerminator(raw)

	return line, line != ""
}

func stripTerminator(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, terminator)

	return strings.TrimSpace(s)
}

// StripDegreeMarker removes a trailing degree sign followed by a slash from a
// print payload. The UTF-8 form is checked before the single byte Latin-1
// form, and at most one marker is removed.
func StripDegreeMarker(s string) string {
	if strings.HasSuffix(s, "\xc2\xb0/") {
		return s[:len(s)-3]
	}

	if strings.HasSuffix(s, "\xb0/") {
		return s[:len(s)-2]
	}

	return s
}
