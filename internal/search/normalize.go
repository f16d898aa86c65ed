// internal/search/normalize.go

// Package search implements the lexical ranking engine that maps a free-text
// question to the most relevant corpus entries.
//
// The pipeline is one-way: Normalize, Tokenize, score every entry of a
// prebuilt Index, then rank and threshold. An Index is immutable after
// BuildIndex returns, so an Engine may be shared by concurrent callers
// without locking.
package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize folds text into its matching form: NFKC, lower case, punctuation
// and symbols replaced by a space, whitespace collapsed and trimmed.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	folded := strings.ToLower(norm.NFKC.String(text))

	var b strings.Builder
	b.Grow(len(folded))
	pendingSpace := false
	for _, r := range folded {
		if isSeparator(r) {
			pendingSpace = true
			continue
		}
		if pendingSpace && b.Len() > 0 {
			b.WriteByte(' ')
		}
		pendingSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

func isSeparator(r rune) bool {
	return unicode.IsSpace(r) ||
		unicode.IsPunct(r) ||
		unicode.IsSymbol(r) ||
		unicode.IsControl(r) ||
		r == unicode.ReplacementChar
}
