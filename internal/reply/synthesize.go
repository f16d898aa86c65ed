// internal/reply/synthesize.go

// Package reply turns ranked search results into user-facing text and into
// the context blocks handed to a remote generator.
package reply

import (
	"fmt"
	"strings"

	"github.com/pangyo-qna/kbqa/internal/search"
)

// NotFoundMessage is the fixed reply when no entry matched. It never
// contains invented content.
const NotFoundMessage = "죄송합니다. 제공된 학교 공식 자료에서 해당 질문에 대한 답을 찾지 못했습니다.\n" +
	"질문을 조금 더 구체적으로 작성해 주시거나, 다른 주제로 문의해 주세요."

const (
	defaultSourceDelimiter = ", "
	citationLabel          = "출처: "
	relatedHeading         = "추가로 참고할 만한 공식 답변:"
)

// Synthesizer formats ranked results. The zero value is ready to use.
type Synthesizer struct {
	// SourceDelimiter joins the primary entry's sources; defaults to ", ".
	SourceDelimiter string
	// SummarizeRelated appends the first answer line to each related question.
	SummarizeRelated bool
}

// Synthesize renders results for query. The first result is the answer;
// the rest become a numbered related-questions list. Ordering and filtering
// are taken as given.
func (s Synthesizer) Synthesize(results []search.Result, query string) string {
	if len(results) == 0 {
		return NotFoundMessage
	}

	primary := results[0].Entry
	var b strings.Builder
	fmt.Fprintf(&b, "\"%s\"에 대한 답변입니다.\n\n", primary.Question)
	b.WriteString(strings.TrimSpace(primary.Answer))

	if sources := nonEmpty(primary.Sources); len(sources) > 0 {
		delim := s.SourceDelimiter
		if delim == "" {
			delim = defaultSourceDelimiter
		}
		b.WriteString("\n\n")
		b.WriteString(citationLabel)
		b.WriteString(strings.Join(sources, delim))
	}

	if len(results) > 1 {
		b.WriteString("\n\n")
		b.WriteString(relatedHeading)
		for i, r := range results[1:] {
			fmt.Fprintf(&b, "\n%d. %s", i+1, r.Entry.Question)
			if !s.SummarizeRelated {
				continue
			}
			if summary := Summarize(r.Entry.Answer); summary != "" {
				fmt.Fprintf(&b, " — %s", summary)
			}
		}
	}

	return b.String()
}

// Summarize returns the first non-empty line of answer, without a leading
// bullet.
func Summarize(answer string) string {
	for _, line := range strings.Split(strings.ReplaceAll(answer, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "•◉▪-"))
		if line != "" {
			return line
		}
	}
	return ""
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
