// Package format holds the pure value formatters used by the variable
// transformation engine: numeral-to-words in two locales, ordinal words,
// comma-grouped numbers, currency, pattern-driven dates, phone numbers,
// text-case transforms, and list joins.
//
// Every function here is total: bad input produces a best-effort string or
// an empty string, never a panic and never an error. A partially filled
// legal document beats a failed generation, so formatting problems degrade
// silently and the caller decides whether to warn.
package format
