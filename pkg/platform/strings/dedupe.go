// Package strings holds small string helpers shared by config and handlers.
package strings

import (
	"strings"
)

// SplitList splits a comma separated value, trimming each element and
// dropping blanks and repeats. Order is preserved. An empty input yields nil.
func SplitList(raw string) []string {
	var out []string
	seen := map[string]struct{}{}
	for _, part := range strings.Split(raw, ",") {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
