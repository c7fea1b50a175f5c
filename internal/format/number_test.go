package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumberWithComma(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{"plain integer", "1234", "1,234"},
		{"ten million", "10000000", "10,000,000"},
		{"short integer", "999", "999"},
		{"preserves 4 decimal places", "0.0001", "0.0001"},
		{"preserves trailing zeros", "1234.5000", "1,234.5000"},
		{"negative", "-1234567", "-1,234,567"},
		{"leading plus dropped", "+1234", "1,234"},
		{"whitespace trimmed", " 1000 ", "1,000"},
		{"bare decimal point", ".5", "0.5"},
		{"not a number", "abc", ""},
		{"empty", "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatNumberWithComma(tc.in))
		})
	}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "10,000,000", FormatNumber(10000000))
	assert.Equal(t, "1,234.5", FormatNumber(1234.5))
	assert.Equal(t, "0", FormatNumber(0))
}

func TestFormatCurrency(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{"grouped", "1000000", "$1,000,000"},
		{"decimal preserved", "0.10", "$0.10"},
		{"invalid falls back to zero", "n/a", "$0"},
		{"empty falls back to zero", "", "$0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatCurrency(tc.in))
		})
	}
}
