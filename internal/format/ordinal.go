package format

// Irregular ordinals for 1..19.
var ordinalOnes = []string{
	"", "First", "Second", "Third", "Fourth", "Fifth", "Sixth", "Seventh",
	"Eighth", "Ninth", "Tenth", "Eleventh", "Twelfth", "Thirteenth",
	"Fourteenth", "Fifteenth", "Sixteenth", "Seventeenth", "Eighteenth",
	"Nineteenth",
}

var ordinalTens = []string{
	"", "", "Twentieth", "Thirtieth", "Fortieth", "Fiftieth", "Sixtieth",
	"Seventieth", "Eightieth", "Ninetieth",
}

var cardinalTensCap = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy",
	"Eighty", "Ninety",
}

var cardinalOnesCap = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

// OrdinalWords spells out an ordinal number in capitalized English words:
// 1 is "First", 22 is "Twenty-Second", 100 is "One Hundredth", 101 is
// "One Hundred First". Non-positive input returns "".
func OrdinalWords(n int) string {
	if n <= 0 {
		return ""
	}
	if n < 20 {
		return ordinalOnes[n]
	}
	if n < 100 {
		if n%10 == 0 {
			return ordinalTens[n/10]
		}
		return cardinalTensCap[n/10] + "-" + ordinalOnes[n%10]
	}

	hundreds := n / 100
	rest := n % 100
	prefix := cardinalBelowHundred(hundreds)
	if rest == 0 {
		return prefix + " Hundredth"
	}
	return prefix + " Hundred " + OrdinalWords(rest)
}

// cardinalBelowHundred spells a cardinal in 1..99, capitalized.
func cardinalBelowHundred(n int) string {
	if n <= 0 || n >= 100 {
		return ""
	}
	if n < 20 {
		return cardinalOnesCap[n]
	}
	if n%10 == 0 {
		return cardinalTensCap[n/10]
	}
	return cardinalTensCap[n/10] + "-" + cardinalOnesCap[n%10]
}
