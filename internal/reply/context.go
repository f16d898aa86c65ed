package reply

import (
	"fmt"
	"strings"

	"github.com/pangyo-qna/kbqa/internal/knowledge"
)

// DefaultSystemPrompt instructs a remote generator to answer only from the
// supplied excerpts.
const DefaultSystemPrompt = "너는 판교고등학교에 대해 매우 잘 아는 친절한 도우미이며, 학생 혹은 학부모들의 질문에 대한 Q&A를 담당하고 있어. " +
	"제공된 학교 공식 문서 발췌 내용만을 근거로 정확하고 도움이 되는 답변을 제공해. " +
	"문서에 정보가 없으면 사실대로 모른다고 말하고, 절대로 추측하거나 문서에 없는 내용을 만들어내지 마."

const (
	noContextMessage = "관련 문서를 찾지 못했습니다. 제공된 문서 내 근거가 없다면 솔직하게 모른다고 답변하세요."
	noHistoryMessage = "이전 대화 없음."
	referenceMarker  = "참고 문서"

	answerGuidelines = "답변 지침:\n" +
		"- 반드시 위 문서 발췌를 근거로만 답변하세요.\n" +
		"- 문서에 없는 내용은 \"제공된 자료에서 관련 정보를 찾지 못했습니다.\"라고 답하세요.\n" +
		"- 친절하고 이해하기 쉽게 한국어로 작성하세요.\n" +
		"- 핵심 정보를 간결하게 정리하고, 필요하면 목록으로 제시하세요."
)

// Turn is one prior message of a conversation.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// BuildContext renders entries as numbered plain-text excerpt blocks.
func BuildContext(entries []knowledge.Entry) string {
	if len(entries) == 0 {
		return noContextMessage
	}
	blocks := make([]string, 0, len(entries))
	for i, e := range entries {
		blocks = append(blocks, fmt.Sprintf("문서 %d: [카테고리] %s\n[질문] %s\n[답변] %s", i+1, e.Category, e.Question, strings.TrimSpace(e.Answer)))
	}
	return strings.Join(blocks, "\n\n")
}

// SummarizeHistory renders prior turns as "사용자:"/"AI:" lines.
func SummarizeHistory(history []Turn) string {
	if len(history) == 0 {
		return noHistoryMessage
	}
	lines := make([]string, 0, len(history))
	for _, turn := range history {
		speaker := "AI"
		if strings.EqualFold(turn.Role, "user") {
			speaker = "사용자"
		}
		lines = append(lines, fmt.Sprintf("%s: %s", speaker, turn.Content))
	}
	return strings.Join(lines, "\n")
}

// BuildPrompt assembles the user message sent to a remote generator.
func BuildPrompt(question string, entries []knowledge.Entry, history []Turn) string {
	return strings.Join([]string{
		"이전 대화 요약:\n" + SummarizeHistory(history),
		"학교 공식 문서 발췌:\n" + BuildContext(entries),
		answerGuidelines,
		"사용자 질문:\n" + question,
	}, "\n\n")
}

// StripReferenceFooter drops everything from the first line that starts a
// reference section, and trims the rest.
func StripReferenceFooter(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), referenceMarker) {
			return strings.TrimSpace(strings.Join(lines[:i], "\n"))
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
