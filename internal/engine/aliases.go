package engine

import (
	"strings"

	"github.com/inkwell-docs/inkwell/internal/format"
)

// deriveCaseAliases enumerates the case-insensitive alias names for one
// variable: all-lower, all-upper, first-letter-upper, first-letter-lower.
// The original key and duplicates are excluded. Template authors type
// variable names from memory; the renderer contract is that casing never
// matters for lookup.
func deriveCaseAliases(key string) []string {
	candidates := []string{
		strings.ToLower(key),
		strings.ToUpper(key),
		format.FirstUpper(key),
		format.FirstLower(key),
	}

	var out []string
	for _, c := range candidates {
		if c == key || containsString(out, c) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// singularize trims the plural "s" from a group name: founders -> founder.
// Group names are chosen by question authors and follow this convention;
// a name without the suffix passes through unchanged.
func singularize(group string) string {
	if len(group) > 1 && strings.HasSuffix(group, "s") {
		return group[:len(group)-1]
	}
	return group
}

func containsString(items []string, s string) bool {
	for _, item := range items {
		if item == s {
			return true
		}
	}
	return false
}
