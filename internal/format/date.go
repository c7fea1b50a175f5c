package format

import (
	"strconv"
	"strings"
	"time"
)

// DatePresets names the pattern strings template authors can reference by
// a transform rule instead of spelling out tokens.
var DatePresets = map[string]string{
	"long":   "MMMM D, YYYY",
	"abbrev": "MMM D, YYYY",
	"short":  "MM/DD/YYYY",
	"iso":    "YYYY-MM-DD",
	"dotted": "YYYY.MM.DD",
}

// DefaultDatePattern is used when a date mapping names no pattern.
const DefaultDatePattern = "MMMM D, YYYY"

// Input layouts accepted for date answers, tried in order.
var dateInputLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006/01/02",
	"2006.01.02",
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// ParseDate parses a date answer using the accepted input layouts.
func ParseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateInputLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders a date answer through a token pattern. The pattern
// may be a preset name or a literal pattern with YYYY, MMMM, MMM, MM, M,
// DD, D tokens. Input that does not parse as a date returns the original
// value unchanged, not an empty string - a raw date beats a blank in a
// generated document.
func FormatDate(raw, pattern string) string {
	t, ok := ParseDate(raw)
	if !ok {
		return raw
	}
	return FormatTime(t, pattern)
}

// FormatTime renders a time.Time through a token pattern or preset name.
func FormatTime(t time.Time, pattern string) string {
	if pattern == "" {
		pattern = DefaultDatePattern
	}
	if preset, ok := DatePresets[pattern]; ok {
		pattern = preset
	}
	return expandDateTokens(t, pattern)
}

// Date pattern tokens, longest first so MMMM is never read as M+M+M+M.
var dateTokens = []struct {
	token string
	emit  func(t time.Time) string
}{
	{"YYYY", func(t time.Time) string { return strconv.Itoa(t.Year()) }},
	{"MMMM", func(t time.Time) string { return t.Month().String() }},
	{"MMM", func(t time.Time) string { return t.Month().String()[:3] }},
	{"MM", func(t time.Time) string { return pad2(int(t.Month())) }},
	{"DD", func(t time.Time) string { return pad2(t.Day()) }},
	{"M", func(t time.Time) string { return strconv.Itoa(int(t.Month())) }},
	{"D", func(t time.Time) string { return strconv.Itoa(t.Day()) }},
}

// expandDateTokens scans the pattern left to right, replacing the longest
// token at each position. Scanning (instead of sequential string replace)
// keeps emitted text from being re-matched by later tokens.
func expandDateTokens(t time.Time, pattern string) string {
	var b strings.Builder
	i := 0
	for i < len(pattern) {
		matched := false
		for _, tok := range dateTokens {
			if strings.HasPrefix(pattern[i:], tok.token) {
				b.WriteString(tok.emit(t))
				i += len(tok.token)
				matched = true
				break
			}
		}
		if !matched {
			b.WriteByte(pattern[i])
			i++
		}
	}
	return b.String()
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
