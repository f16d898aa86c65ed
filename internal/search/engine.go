package search

import (
	"sort"
	"unicode/utf8"

	"github.com/pangyo-qna/kbqa/internal/knowledge"
)

// Result is one ranked entry for a query.
type Result struct {
	Entry         knowledge.Entry `json:"entry"`
	Score         int             `json:"score"`
	MatchedTokens []string        `json:"matchedTokens"`
}

// Engine ranks an immutable Index under a fixed Policy and stop-word set.
type Engine struct {
	index  *Index
	policy Policy
	stop   StopWords
}

// Option configures an Engine.
type Option func(*Engine)

// WithPolicy replaces the default ranking policy.
func WithPolicy(p Policy) Option {
	return func(e *Engine) { e.policy = p }
}

// WithStopWords replaces the default stop-word set. A nil set disables
// stop-word filtering.
func WithStopWords(s StopWords) Option {
	return func(e *Engine) { e.stop = s }
}

// NewEngine wraps an index built once at startup.
func NewEngine(index *Index, opts ...Option) *Engine {
	e := &Engine{
		index:  index,
		policy: DefaultPolicy(),
		stop:   DefaultStopWords(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.index == nil {
		e.index = BuildIndex(nil)
	}
	return e
}

// Policy returns the engine's ranking policy.
func (e *Engine) Policy() Policy { return e.policy }

// Index returns the engine's index.
func (e *Engine) Index() *Index { return e.index }

// Search ranks the corpus for query and returns at most limit results. A
// limit of zero or less yields no results; an empty or stop-word-only query
// yields an empty, non-nil slice.
func (e *Engine) Search(query string, limit int) []Result {
	results := []Result{}
	if limit <= 0 {
		return results
	}

	normalized := Normalize(query)
	tokens := QueryTokens(normalized, e.stop)
	if normalized == "" || len(tokens) == 0 {
		return results
	}

	for i := 0; i < e.index.Len(); i++ {
		ie := e.index.Entry(i)
		score, matched := e.policy.Score(tokens, normalized, ie)
		if score <= 0 || score < e.policy.MinScore {
			continue
		}
		results = append(results, Result{
			Entry:         ie.Entry.Clone(),
			Score:         score,
			MatchedTokens: matched,
		})
	}
	if len(results) == 0 {
		return results
	}

	sortResults(results)

	cut := e.policy.Threshold(results[0].Score)
	kept := results[:1]
	for _, r := range results[1:] {
		if r.Score < cut {
			break
		}
		kept = append(kept, r)
	}

	if len(kept) > limit {
		kept = kept[:limit]
	}
	return kept
}

// sortResults orders by score, then shorter question, then id so equal
// scores always come out in the same order.
func sortResults(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		la, lb := utf8.RuneCountInString(a.Entry.Question), utf8.RuneCountInString(b.Entry.Question)
		if la != lb {
			return la < lb
		}
		return a.Entry.ID < b.Entry.ID
	})
}
