package format

import "strings"

// JoinAnd joins items as prose with "and": one item is itself, two items
// are "A and B", three or more use the Oxford comma: "A, B, and C".
func JoinAnd(items []string) string {
	return joinWithConnector(items, "and")
}

// JoinOr joins items as prose with "or", otherwise identical to JoinAnd.
func JoinOr(items []string) string {
	return joinWithConnector(items, "or")
}

// JoinComma joins items with ", ".
func JoinComma(items []string) string {
	return strings.Join(items, ", ")
}

// JoinNewline joins items with line breaks.
func JoinNewline(items []string) string {
	return strings.Join(items, "\n")
}

func joinWithConnector(items []string, connector string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " " + connector + " " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", " + connector + " " + items[len(items)-1]
	}
}
