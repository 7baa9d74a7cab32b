// Package email derives display data from mail addresses.
package email

import (
	"strings"
	"unicode"
)

// NameParts guesses a first and last name from the local part of address,
// splitting on dots, underscores, dashes and plus signs. Parts that cannot be
// derived come back as fallback.
func NameParts(address, fallback string) (first, last string) {
	local, _, _ := strings.Cut(address, "@")
	words := strings.FieldsFunc(local, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+'
	})
	switch len(words) {
	case 0:
		return fallback, fallback
	case 1:
		return title(words[0]), fallback
	default:
		return title(words[0]), title(words[len(words)-1])
	}
}

func title(s string) string {
	r := []rune(strings.ToLower(s))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
