package format

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// TitleCase capitalizes every space-delimited token: "jane doe" becomes
// "Jane Doe". Used for person-name answers.
func TitleCase(s string) string {
	return titleCaser.String(s)
}

// CorporateCapitalize capitalizes each token of a company name, except
// tokens that are already all-uppercase and at most 4 characters long -
// those are treated as legal abbreviations (LLC, INC, LP) and kept as-is.
func CorporateCapitalize(s string) string {
	tokens := strings.Split(s, " ")
	for i, tok := range tokens {
		if tok == "" {
			continue
		}
		if isUpperAbbrev(tok) {
			continue
		}
		tokens[i] = capitalizeToken(tok)
	}
	return strings.Join(tokens, " ")
}

// isUpperAbbrev reports whether a token looks like a legal abbreviation:
// all uppercase letters, 4 characters or fewer.
func isUpperAbbrev(tok string) bool {
	runes := []rune(tok)
	if len(runes) > 4 {
		return false
	}
	sawLetter := false
	for _, r := range runes {
		if unicode.IsLetter(r) {
			sawLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return sawLetter
}

// capitalizeToken uppercases the first letter and lowercases the rest.
func capitalizeToken(tok string) string {
	runes := []rune(tok)
	out := make([]rune, len(runes))
	for i, r := range runes {
		if i == 0 {
			out[i] = unicode.ToUpper(r)
		} else {
			out[i] = unicode.ToLower(r)
		}
	}
	return string(out)
}

// FirstUpper uppercases the first rune only, leaving the rest untouched.
func FirstUpper(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// FirstLower lowercases the first rune only, leaving the rest untouched.
func FirstLower(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}
