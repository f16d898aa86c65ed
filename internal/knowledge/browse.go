package knowledge

import "strings"

// Browse filters entries for the explore listing. A non-empty tag must be
// one of the entry's tags; a non-empty term must appear, case-insensitively,
// in the question, answer or category. Order is preserved.
func Browse(entries []Entry, tag, term string) []Entry {
	tag = strings.TrimSpace(tag)
	term = strings.ToLower(strings.TrimSpace(term))

	out := []Entry{}
	for _, e := range entries {
		if tag != "" && !hasTag(e, tag) {
			continue
		}
		if term != "" && !containsFold(e, term) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Tags lists the distinct tags across entries in first-seen order.
func Tags(entries []Entry) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, e := range entries {
		for _, t := range e.Tags {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}

func hasTag(e Entry, tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func containsFold(e Entry, term string) bool {
	for _, field := range []string{e.Question, e.Answer, e.Category} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}
