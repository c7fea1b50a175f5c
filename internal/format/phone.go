package format

import "strings"

// Phone separator styles.
const (
	PhoneDashed = "dashed"
	PhoneDotted = "dotted"
	PhoneNone   = "none"
)

// FormatPhone normalizes a phone answer: strips every non-digit, infers
// the grouping from the digit count, and re-joins with the chosen
// separator ("dashed", "dotted") or none.
//
// Grouping rules for local numbers:
//   - 11 digits: mobile, 3-4-4 (010-1234-5678)
//   - 10 digits: 02 area code 2-4-4, otherwise 3-3-4
//   - 9 digits:  02 area code 2-3-4, otherwise 3-2-4
//
// Other digit counts pass through ungrouped. Input with no digits at all
// returns "".
func FormatPhone(raw, style string) string {
	digits := stripNonDigits(raw)
	if digits == "" {
		return ""
	}

	sep := "-"
	switch style {
	case PhoneDotted:
		sep = "."
	case PhoneNone:
		sep = ""
	}

	groups := phoneGroups(digits)
	return strings.Join(groups, sep)
}

// phoneGroups splits a digit run by inferred area-code-vs-mobile layout.
func phoneGroups(digits string) []string {
	switch len(digits) {
	case 11:
		return []string{digits[:3], digits[3:7], digits[7:]}
	case 10:
		if strings.HasPrefix(digits, "02") {
			return []string{digits[:2], digits[2:6], digits[6:]}
		}
		return []string{digits[:3], digits[3:6], digits[6:]}
	case 9:
		if strings.HasPrefix(digits, "02") {
			return []string{digits[:2], digits[2:5], digits[5:]}
		}
		return []string{digits[:3], digits[3:5], digits[5:]}
	default:
		return []string{digits}
	}
}

func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
