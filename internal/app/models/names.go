package models

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Capitalize returns s with its first letter upper-cased and the rest
// lower-cased, matching how person names are stored.
func Capitalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	first, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(first)) + strings.ToLower(s[size:])
}
