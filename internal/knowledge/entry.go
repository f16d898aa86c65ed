// internal/knowledge/entry.go

// Package knowledge holds the static question/answer corpus the assistant
// answers from: the entry type, loading and validation, and browse helpers.
package knowledge

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyCorpus is returned when a corpus contains no entries.
	ErrEmptyCorpus = errors.New("knowledge: corpus is empty")
	// ErrDuplicateID is returned when two entries share an id.
	ErrDuplicateID = errors.New("knowledge: duplicate entry id")
	// ErrInvalidEntry is returned when an entry is missing a required field.
	ErrInvalidEntry = errors.New("knowledge: invalid entry")
)

// Entry is a single pre-authored question and its official answer.
type Entry struct {
	ID       string   `json:"id" yaml:"id"`
	Category string   `json:"category" yaml:"category"`
	Question string   `json:"question" yaml:"question"`
	Answer   string   `json:"answer" yaml:"answer"`
	Tags     []string `json:"tags" yaml:"tags"`
	Sources  []string `json:"sources" yaml:"sources"`
}

// Clone returns a copy of e that shares no slices with it.
func (e Entry) Clone() Entry {
	out := e
	out.Tags = append([]string{}, e.Tags...)
	out.Sources = append([]string{}, e.Sources...)
	return out
}

// Validate checks the corpus invariants: at least one entry, unique ids, and
// non-empty question and answer text. Missing tags and sources are replaced
// with empty slices in place.
func Validate(entries []Entry) error {
	if len(entries) == 0 {
		return ErrEmptyCorpus
	}
	seen := make(map[string]int, len(entries))
	for i := range entries {
		e := &entries[i]
		if strings.TrimSpace(e.ID) == "" {
			return fmt.Errorf("%w: entry %d has no id", ErrInvalidEntry, i)
		}
		if strings.TrimSpace(e.Question) == "" {
			return fmt.Errorf("%w: entry %q has no question", ErrInvalidEntry, e.ID)
		}
		if strings.TrimSpace(e.Answer) == "" {
			return fmt.Errorf("%w: entry %q has no answer", ErrInvalidEntry, e.ID)
		}
		if prev, ok := seen[e.ID]; ok {
			return fmt.Errorf("%w: %q at entries %d and %d", ErrDuplicateID, e.ID, prev, i)
		}
		seen[e.ID] = i
		if e.Tags == nil {
			e.Tags = []string{}
		}
		if e.Sources == nil {
			e.Sources = []string{}
		}
	}
	return nil
}

// UniqueSources returns the distinct non-empty sources of entries in
// first-seen order.
func UniqueSources(entries []Entry) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, e := range entries {
		for _, s := range e.Sources {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}
