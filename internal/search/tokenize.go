package search

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenSet records token presence.
type TokenSet map[string]struct{}

// NewTokenSet builds a set from tokens.
func NewTokenSet(tokens ...[]string) TokenSet {
	set := make(TokenSet)
	for _, group := range tokens {
		for _, t := range group {
			set[t] = struct{}{}
		}
	}
	return set
}

// Has reports whether token is in the set.
func (s TokenSet) Has(token string) bool {
	_, ok := s[token]
	return ok
}

// Tokenize returns the distinct maximal runs of letters and digits in text,
// in first-seen order.
func Tokenize(text string) []string {
	tokens := []string{}
	if text == "" {
		return tokens
	}
	seen := make(map[string]struct{})
	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		tok := text[start:end]
		start = -1
		if _, dup := seen[tok]; dup {
			return
		}
		seen[tok] = struct{}{}
		tokens = append(tokens, tok)
	}
	for i, r := range text {
		if isTokenRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
	}
	flush(len(text))
	return tokens
}

func isTokenRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}

// IsUseful reports whether a token carries enough signal to score. Single
// characters are dropped unless they contain a digit, which filters one
// syllable particles but keeps grade levels like "3".
func IsUseful(token string) bool {
	if utf8.RuneCountInString(token) > 1 {
		return true
	}
	return strings.IndexFunc(token, unicode.IsDigit) >= 0
}

// QueryTokens extracts the scoring tokens of an already normalized query:
// useful tokens that are not stop-words, in query order.
func QueryTokens(normalized string, stop StopWords) []string {
	out := []string{}
	for _, tok := range Tokenize(normalized) {
		if !IsUseful(tok) || stop.Has(tok) {
			continue
		}
		out = append(out, tok)
	}
	return out
}
