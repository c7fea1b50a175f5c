package format

import (
	"strconv"
	"strings"
)

// FormatNumberWithComma formats a numeric string with thousands separators
// in the integer part. The decimal part is preserved verbatim - a number
// entered with 4 decimal places renders with all 4 digits, no rounding.
// Unparseable input returns "".
func FormatNumberWithComma(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return ""
	}

	sign := ""
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		if s[0] == '-' {
			sign = "-"
		}
		s = s[1:]
	}

	intPart, decPart, hasDec := strings.Cut(s, ".")
	if intPart == "" {
		intPart = "0"
	}
	grouped := groupThousands(intPart)
	if hasDec {
		return sign + grouped + "." + decPart
	}
	return sign + grouped
}

// FormatNumber formats a float the way FormatNumberWithComma formats
// strings, trimming the trailing zeros strconv would otherwise keep.
func FormatNumber(f float64) string {
	return FormatNumberWithComma(strconv.FormatFloat(f, 'f', -1, 64))
}

// FormatCurrency renders a dollar amount: "$" plus the comma-grouped
// number. Missing or invalid input returns "$0".
func FormatCurrency(raw string) string {
	grouped := FormatNumberWithComma(raw)
	if grouped == "" {
		return "$0"
	}
	return "$" + grouped
}

// groupThousands inserts commas into a bare digit run.
func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
