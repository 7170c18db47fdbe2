package utils

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeText prepares user text for storage. It does not escape or strip
// markup: posts are stored as typed and escaped by whatever renders them.
//
// Invalid UTF-8 becomes U+FFFD, CRLF becomes LF, control characters other
// than tab and newline are dropped (postgres rejects NUL in text), the result
// is composed to NFC so length limits count what the user sees, and
// surrounding whitespace is trimmed.
func NormalizeText(s string) string {
	s = strings.ToValidUTF8(s, "\uFFFD")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.Map(func(r rune) rune {
		if r == '\t' || r == '\n' {
			return r
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(norm.NFC.String(s))
}
