package route

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Normalize converts a route path into the PascalCase identifier used to
// name blocks in the remote registry: "/user-center/settings" becomes
// "UserCenterSettings". A single leading "." is dropped; empty input gives
// empty output, which never matches a block.
func Normalize(path string) string {
	path = strings.TrimPrefix(path, ".")
	tokens := strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == '-'
	})

	var b strings.Builder
	for _, tok := range tokens {
		tok = strings.ToLower(tok)
		r, size := utf8.DecodeRuneInString(tok)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(tok[size:])
	}
	return b.String()
}
