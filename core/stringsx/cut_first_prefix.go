package stringsx

import "strings"

// CutFirstPrefix removes the first prefix from prefixes that starts s and is
// immediately followed by an uppercase rune. It returns the remainder, the
// matched prefix and true, or s unchanged, "" and false if nothing matched.
//
// Empty prefixes never match.
func CutFirstPrefix(s string, prefixes ...string) (rest string, prefix string, found bool) {
	for _, p := range prefixes {
		if p == "" {
			continue
		}
		if after, ok := strings.CutPrefix(s, p); ok && IsUpperFirstChar(after) {
			return after, p, true
		}
	}
	return s, "", false
}
