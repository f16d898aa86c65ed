package search

import (
	"strings"
	"unicode/utf8"
)

// Score rates one indexed entry against a query. queryTokens must already be
// filtered with QueryTokens; normalizedQuery is the output of Normalize.
// It returns the score and the matched tokens in query order.
func (p Policy) Score(queryTokens []string, normalizedQuery string, e *IndexedEntry) (int, []string) {
	score := 0
	matched := []string{}
	if e == nil || len(queryTokens) == 0 {
		return 0, matched
	}

	// An exact echo of the question always earns the phrase bonus; shorter
	// queries than MinPhraseRunes only skip the containment checks.
	switch {
	case normalizedQuery != "" && normalizedQuery == e.Question:
		score += p.PhraseQuestion
	case utf8.RuneCountInString(normalizedQuery) < p.MinPhraseRunes:
	case strings.Contains(e.Question, normalizedQuery):
		score += p.PhraseQuestion
	case strings.Contains(e.Answer, normalizedQuery):
		score += p.PhraseAnswer
	}

	seen := make(map[string]struct{}, len(queryTokens))
	for _, tok := range queryTokens {
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}

		hit := false
		if e.QuestionTokens.Has(tok) {
			score += p.QuestionToken
			hit = true
		}
		if e.AnswerTokens.Has(tok) {
			score += p.AnswerToken
			hit = true
		}
		if e.TagTokens.Has(tok) || e.CategoryTokens.Has(tok) {
			score += p.MetaToken
			hit = true
		}
		if !hit && utf8.RuneCountInString(tok) > 1 && strings.Contains(e.Combined, tok) {
			score += p.PartialToken
			hit = true
		}
		if hit {
			matched = append(matched, tok)
		}
	}

	score += p.coverageBonus(len(matched))
	return score, matched
}
