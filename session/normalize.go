// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// Normalize reduces an item string to its canonical comparison key: the
// input is Unicode case-folded (locale-independent lowercasing, so
// "Straße" and "STRASSE" agree), then every rune that is not a letter
// or digit is dropped (whitespace, punctuation, symbols, emoji). An
// empty result means the item is not usable.
//
// Folding happens first: it can emit combining marks (e.g. for "İ"),
// and filtering afterwards keeps the function idempotent.
func Normalize(text string) string {
	// cases.Caser is stateful; build one per call.
	folded := cases.Fold().String(text)

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
