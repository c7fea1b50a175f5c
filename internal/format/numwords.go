package format

import "strings"

var englishOnes = []string{
	"", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
	"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen",
	"seventeen", "eighteen", "nineteen",
}

var englishTens = []string{
	"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety",
}

// English scale words for successive thousand-groups.
var englishScales = []string{"", "thousand", "million", "billion", "trillion"}

// NumberToEnglishWords spells out an integer in English words.
// Zero is "zero"; negatives are prefixed with "minus".
func NumberToEnglishWords(n int64) string {
	if n == 0 {
		return "zero"
	}
	if n < 0 {
		return "minus " + NumberToEnglishWords(-n)
	}

	// Split into thousand-groups, least significant first.
	var chunks []int64
	for n > 0 {
		chunks = append(chunks, n%1000)
		n /= 1000
	}

	var parts []string
	for i := len(chunks) - 1; i >= 0; i-- {
		chunk := chunks[i]
		if chunk == 0 {
			continue
		}
		words := englishHundreds(chunk)
		if i > 0 && i < len(englishScales) {
			words += " " + englishScales[i]
		}
		parts = append(parts, words)
	}
	return strings.Join(parts, " ")
}

// englishHundreds spells a value in 1..999.
func englishHundreds(n int64) string {
	var parts []string
	if n >= 100 {
		parts = append(parts, englishOnes[n/100]+" hundred")
		n %= 100
	}
	if n >= 20 {
		word := englishTens[n/10]
		if n%10 != 0 {
			word += "-" + englishOnes[n%10]
		}
		parts = append(parts, word)
	} else if n > 0 {
		parts = append(parts, englishOnes[n])
	}
	return strings.Join(parts, " ")
}

var koreanDigits = []string{"", "일", "이", "삼", "사", "오", "육", "칠", "팔", "구"}

var koreanPositions = []string{"", "십", "백", "천"}

// Korean scale words for successive ten-thousand-groups.
var koreanScales = []string{"", "만", "억", "조"}

// NumberToKoreanWords spells out an integer in sino-Korean words using
// 4-digit grouping (만/억/조 scales).
//
// Within a group, a leading 일 is always elided before 십/백/천. For the
// scale words, 일 is elided only when the number is an exact multiple of
// that scale: 10000 is 만, 100000000 is 억, but 15000 is 일만오천.
func NumberToKoreanWords(n int64) string {
	if n == 0 {
		return "영"
	}
	if n < 0 {
		return "마이너스 " + NumberToKoreanWords(-n)
	}

	// Split into ten-thousand-groups, least significant first.
	var chunks []int64
	for n > 0 {
		chunks = append(chunks, n%10000)
		n /= 10000
	}

	var b strings.Builder
	for i := len(chunks) - 1; i >= 0; i-- {
		chunk := chunks[i]
		if chunk == 0 {
			continue
		}
		lowerAllZero := true
		for j := 0; j < i; j++ {
			if chunks[j] != 0 {
				lowerAllZero = false
				break
			}
		}
		if i > 0 && i < len(koreanScales) {
			if chunk == 1 && lowerAllZero {
				// Exact multiple of the scale: 만, 억, 조.
				b.WriteString(koreanScales[i])
				continue
			}
			b.WriteString(koreanThousands(chunk))
			b.WriteString(koreanScales[i])
			continue
		}
		b.WriteString(koreanThousands(chunk))
	}
	return b.String()
}

// koreanThousands spells a value in 1..9999, eliding 일 before 십/백/천.
func koreanThousands(n int64) string {
	var b strings.Builder
	for pos := 3; pos >= 0; pos-- {
		unit := int64(1)
		for i := 0; i < pos; i++ {
			unit *= 10
		}
		digit := (n / unit) % 10
		if digit == 0 {
			continue
		}
		if digit != 1 || pos == 0 {
			b.WriteString(koreanDigits[digit])
		}
		b.WriteString(koreanPositions[pos])
	}
	return b.String()
}
