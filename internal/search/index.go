package search

import (
	"strings"

	"github.com/pangyo-qna/kbqa/internal/knowledge"
)

// IndexedEntry is the precomputed matching form of one corpus entry.
type IndexedEntry struct {
	Entry knowledge.Entry

	Question string
	Answer   string
	Tags     string
	Category string
	Combined string

	QuestionTokens TokenSet
	AnswerTokens   TokenSet
	TagTokens      TokenSet
	CategoryTokens TokenSet
	AllTokens      TokenSet
}

// Index is the immutable, read-only view of a corpus used for ranking.
type Index struct {
	entries []IndexedEntry
}

// BuildIndex normalizes and tokenizes every entry once. Entries are copied,
// so later changes to the caller's slice do not reach the index.
func BuildIndex(entries []knowledge.Entry) *Index {
	indexed := make([]IndexedEntry, 0, len(entries))
	for _, e := range entries {
		indexed = append(indexed, indexEntry(e.Clone()))
	}
	return &Index{entries: indexed}
}

func indexEntry(e knowledge.Entry) IndexedEntry {
	tagsJoined := strings.Join(e.Tags, " ")
	sourcesJoined := strings.Join(e.Sources, " ")

	ie := IndexedEntry{
		Entry:    e,
		Question: Normalize(e.Question),
		Answer:   Normalize(e.Answer),
		Tags:     Normalize(tagsJoined),
		Category: Normalize(e.Category),
		Combined: Normalize(strings.Join([]string{e.Question, e.Answer, e.Category, tagsJoined, sourcesJoined}, "\n")),
	}

	questionTokens := Tokenize(ie.Question)
	answerTokens := Tokenize(ie.Answer)
	tagTokens := Tokenize(ie.Tags)
	categoryTokens := Tokenize(ie.Category)
	sourceTokens := Tokenize(Normalize(sourcesJoined))

	ie.QuestionTokens = NewTokenSet(questionTokens)
	ie.AnswerTokens = NewTokenSet(answerTokens)
	ie.TagTokens = NewTokenSet(tagTokens)
	ie.CategoryTokens = NewTokenSet(categoryTokens)
	ie.AllTokens = NewTokenSet(questionTokens, answerTokens, tagTokens, categoryTokens, sourceTokens)
	return ie
}

// Len returns the number of indexed entries.
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.entries)
}

// Entry returns the i-th indexed entry. Callers must not modify it.
func (ix *Index) Entry(i int) *IndexedEntry {
	return &ix.entries[i]
}

// Entries returns copies of the source entries in corpus order.
func (ix *Index) Entries() []knowledge.Entry {
	if ix == nil {
		return nil
	}
	out := make([]knowledge.Entry, 0, len(ix.entries))
	for _, ie := range ix.entries {
		out = append(out, ie.Entry.Clone())
	}
	return out
}
