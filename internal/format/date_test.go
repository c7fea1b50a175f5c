package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDate_Patterns(t *testing.T) {
	testCases := []struct {
		name    string
		pattern string
		want    string
	}{
		{"slash pattern", "MM/DD/YYYY", "01/31/2026"},
		{"prose pattern", "MMMM D, YYYY", "January 31, 2026"},
		{"abbreviated month", "MMM D, YYYY", "Jan 31, 2026"},
		{"iso tokens", "YYYY-MM-DD", "2026-01-31"},
		{"single digit tokens", "M/D/YYYY", "1/31/2026"},
		{"preset long", "long", "January 31, 2026"},
		{"preset short", "short", "01/31/2026"},
		{"empty pattern uses default", "", "January 31, 2026"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatDate("2026-01-31", tc.pattern))
		})
	}
}

func TestFormatDate_SingleDigitDayPads(t *testing.T) {
	assert.Equal(t, "03/05/2026", FormatDate("2026-03-05", "MM/DD/YYYY"))
	assert.Equal(t, "March 5, 2026", FormatDate("2026-03-05", "MMMM D, YYYY"))
}

func TestFormatDate_InvalidInputReturnsOriginal(t *testing.T) {
	assert.Equal(t, "not a date", FormatDate("not a date", "MM/DD/YYYY"))
	assert.Equal(t, "", FormatDate("", "MM/DD/YYYY"))
}

func TestFormatDate_AcceptsSeveralInputLayouts(t *testing.T) {
	inputs := []string{
		"2026-01-31",
		"2026/01/31",
		"2026.01.31",
		"01/31/2026",
		"January 31, 2026",
		"2026-01-31T09:30:00Z",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, "2026-01-31", FormatDate(in, "YYYY-MM-DD"))
		})
	}
}

func TestParseDate(t *testing.T) {
	got, ok := ParseDate("2026-01-31")
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), got)

	_, ok = ParseDate("31st of January")
	assert.False(t, ok)
}

func TestFormatTime_LiteralTextPreserved(t *testing.T) {
	d := time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "signed on 07/04/2026", FormatTime(d, "signed on MM/DD/YYYY"))
}
