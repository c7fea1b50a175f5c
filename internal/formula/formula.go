// Package formula evaluates the restricted arithmetic formulas attached to
// calculated variable mappings. A formula references generated variables
// with {name} placeholders and combines them with + - * / and parentheses.
//
// Evaluation is a three-step pipeline:
//
//  1. Substitute every {name} placeholder with the numeric value of the
//     variable (missing or non-numeric values become 0).
//  2. Reject the substituted text unless every character is a digit,
//     operator, parenthesis, dot, or whitespace. Formulas come from
//     template authors, not end users, but the whitelist still holds the
//     line: nothing resembling general code is ever evaluated.
//  3. Tokenize and parse into a small AST, then evaluate.
//
// Failure is silent by contract: malformed input, division by zero, and
// non-finite results all yield an empty string. The surrounding document
// pipeline prefers a blank over a failed generation.
package formula

import (
	"math"
	"strconv"
	"strings"
)

// Lookup resolves a placeholder name to its raw string value.
type Lookup func(name string) (string, bool)

// Evaluate runs a formula against a variable lookup and returns the result
// formatted as a plain numeric string ("12", "0.5"). Malformed formulas,
// division by zero, and non-finite results return "".
func Evaluate(formulaText string, lookup Lookup) string {
	f, ok := EvaluateNumber(formulaText, lookup)
	if !ok {
		return ""
	}
	return trimFloat(f)
}

// EvaluateNumber is Evaluate without the final string formatting.
// The second return is false on any failure.
func EvaluateNumber(formulaText string, lookup Lookup) (float64, bool) {
	substituted := Substitute(formulaText, lookup)
	if !allowedExpression(substituted) {
		return 0, false
	}

	tokens, ok := tokenize(substituted)
	if !ok || len(tokens) == 0 {
		return 0, false
	}

	p := &parser{tokens: tokens}
	node, ok := p.parseExpression()
	if !ok || !p.atEnd() {
		return 0, false
	}

	result, ok := node.eval()
	if !ok || math.IsNaN(result) || math.IsInf(result, 0) {
		return 0, false
	}
	return result, true
}

// Substitute replaces every {name} placeholder with the numeric value of
// the variable. A missing variable or a value that does not parse as a
// number substitutes as 0. Text outside placeholders passes through.
func Substitute(formulaText string, lookup Lookup) string {
	var b strings.Builder
	i := 0
	for i < len(formulaText) {
		c := formulaText[i]
		if c != '{' {
			b.WriteByte(c)
			i++
			continue
		}

		end := strings.IndexByte(formulaText[i:], '}')
		if end < 0 {
			// Unterminated placeholder; pass through and let the
			// whitelist reject it.
			b.WriteString(formulaText[i:])
			break
		}

		name := formulaText[i+1 : i+end]
		b.WriteString(numericValue(name, lookup))
		i += end + 1
	}
	return b.String()
}

// numericValue renders a variable as a numeric literal, defaulting to "0".
// Formatted values may carry commas or a currency sign from earlier
// pipeline stages, so those are stripped before parsing.
func numericValue(name string, lookup Lookup) string {
	raw, ok := lookup(name)
	if !ok {
		return "0"
	}
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if !numericLiteral(cleaned) {
		return "0"
	}
	return cleaned
}

// numericLiteral reports whether s is a plain signed decimal number.
func numericLiteral(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	if s[0] == '-' || s[0] == '+' {
		i = 1
	}
	sawDigit := false
	sawDot := false
	for ; i < len(s); i++ {
		switch {
		case s[i] >= '0' && s[i] <= '9':
			sawDigit = true
		case s[i] == '.' && !sawDot:
			sawDot = true
		default:
			return false
		}
	}
	return sawDigit
}

// allowedExpression enforces the post-substitution character whitelist.
func allowedExpression(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '+' || r == '-' || r == '*' || r == '/':
		case r == '(' || r == ')' || r == '.':
		case r == ' ' || r == '\t':
		default:
			return false
		}
	}
	return true
}

// trimFloat renders a float without exponent notation or trailing zeros.
func trimFloat(f float64) string {
	// -0 is indistinguishable from 0 in a document.
	if f == 0 {
		return "0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
