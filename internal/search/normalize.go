// Package search builds the suggestion index over loaded modules and ranks
// scenarios against a free-text query.
package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize is the one text canonicaliser used for every search comparison.
// It applies NFKC, lowercases, drops whitespace and common separators, and
// folds katakana to hiragana. Normalize(Normalize(s)) == Normalize(s).
//
// NFKC runs again at the end: a spacing voiced mark decomposes to a space
// plus a combining mark, and once the space is stripped the mark has to
// compose with the preceding kana.
func Normalize(s string) string {
	s = strings.ToLower(norm.NFKC.String(s))

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || isSeparator(r) {
			continue
		}
		b.WriteRune(kataToHira(r))
	}
	return norm.NFKC.String(b.String())
}

func isSeparator(r rune) bool {
	switch r {
	case '・', '·', '-', '_', '/', '(', ')', '（', '）':
		return true
	}
	return false
}

// kataToHira maps ァ..ヶ onto ぁ..ゖ. Long-vowel marks and other katakana
// outside that block are left alone.
func kataToHira(r rune) rune {
	if r >= 'ァ' && r <= 'ヶ' {
		return r - 0x60
	}
	return r
}
