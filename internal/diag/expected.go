package diag

import (
	"strings"

	"stellar/internal/token"
)

// Expected is the set of alternatives an unexpected-token diagnostic lists.
// Entries are already rendered: token kinds in backticks, constructs by name.
type Expected []string

// Kinds builds an Expected set from token kinds.
func Kinds(kinds ...token.Kind) Expected {
	out := make(Expected, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, k.String())
	}
	return out
}

// Also returns a copy of e extended with more alternatives.
func (e Expected) Also(more ...string) Expected {
	out := make(Expected, 0, len(e)+len(more))
	out = append(out, e...)
	return append(out, more...)
}

// String enumerates the set: "a", "a or b", "one of a, b or c".
func (e Expected) String() string {
	switch len(e) {
	case 0:
		return "nothing"
	case 1:
		return e[0]
	case 2:
		return e[0] + " or " + e[1]
	}
	var sb strings.Builder
	sb.WriteString("one of ")
	for i, item := range e {
		switch {
		case i == 0:
		case i == len(e)-1:
			sb.WriteString(" or ")
		default:
			sb.WriteString(", ")
		}
		sb.WriteString(item)
	}
	return sb.String()
}
