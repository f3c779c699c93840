package stringsx

import (
	"unicode"
	"unicode/utf8"
)

// LowerFirstChar returns s with its first rune converted to lowercase.
// The rest of the string is left unchanged, so "URLPath" becomes "uRLPath".
func LowerFirstChar(s string) string {
	if s == "" {
		return ""
	}

	first, size := utf8.DecodeRuneInString(s)
	if first == utf8.RuneError || !unicode.IsUpper(first) {
		return s
	}

	return string(unicode.ToLower(first)) + s[size:]
}

// IsUpperFirstChar reports whether s starts with an uppercase rune.
func IsUpperFirstChar(s string) bool {
	first, _ := utf8.DecodeRuneInString(s)
	return first != utf8.RuneError && unicode.IsUpper(first)
}
