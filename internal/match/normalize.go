package match

import (
	"strings"
	"unicode"
)

// NormalizeKey lower-cases s and drops word separators.
func NormalizeKey(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		if isSeparator(r) {
			continue
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

// Words splits a key into lower-case words at separators and camel-case
// boundaries, e.g. "itemCount" and "item_count" both give [item count].
func Words(s string) []string {
	var (
		words []string
		cur   []rune
	)

	flush := func() {
		if len(cur) > 0 {
			words = append(words, strings.ToLower(string(cur)))
			cur = cur[:0]
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			flush()
			continue
		}

		if i > 0 && startsWord(runes, i) {
			flush()
		}

		cur = append(cur, r)
	}

	flush()

	return words
}

func isSeparator(r rune) bool {
	switch r {
	case '_', '-', ' ', '.':
		return true
	}

	return false
}

// startsWord reports a lower-to-upper transition ("itemCount") or the last
// capital of an acronym followed by lower case ("HTTPServer").
func startsWord(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(r) {
		return false
	}

	if !unicode.IsUpper(prev) && !isSeparator(prev) {
		return true
	}

	return unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
