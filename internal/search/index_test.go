package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pangyo-qna/kbqa/internal/knowledge"
)

func knowledgeEntryForScore() knowledge.Entry {
	return knowledge.Entry{
		ID:       "meal",
		Category: "생활",
		Question: "급식 안내",
		Answer:   "급식실 운영 안내",
		Tags:     []string{"생활지원"},
	}
}

func TestBuildIndexFields(t *testing.T) {
	ix := BuildIndex([]knowledge.Entry{{
		ID:       "ace",
		Category: "ACE 프로그램",
		Question: "ACE 프로그램은 무엇인가요?",
		Answer:   "• Pathfinder 탐구\n• 멘토링",
		Tags:     []string{"ACE특화", "비교과·프로그램"},
		Sources:  []string{"ACE_QNA.pdf"},
	}})
	require.Equal(t, 1, ix.Len())

	ie := ix.Entry(0)
	assert.Equal(t, "ace 프로그램은 무엇인가요", ie.Question)
	assert.Equal(t, "pathfinder 탐구 멘토링", ie.Answer)
	assert.Equal(t, "ace특화 비교과 프로그램", ie.Tags)
	assert.Equal(t, "ace 프로그램", ie.Category)
	assert.Contains(t, ie.Combined, "ace qna pdf")

	assert.True(t, ie.QuestionTokens.Has("프로그램은"))
	assert.True(t, ie.AnswerTokens.Has("pathfinder"))
	assert.True(t, ie.TagTokens.Has("비교과"))
	assert.True(t, ie.CategoryTokens.Has("프로그램"))
	for _, tok := range []string{"ace", "무엇인가요", "멘토링", "ace특화", "qna", "pdf"} {
		assert.True(t, ie.AllTokens.Has(tok), "all tokens missing %q", tok)
	}
}

func TestBuildIndexToleratesMissingCollections(t *testing.T) {
	ix := BuildIndex([]knowledge.Entry{{ID: "a", Question: "질문", Answer: "답변"}})
	ie := ix.Entry(0)
	assert.Empty(t, ie.Tags)
	assert.Empty(t, ie.TagTokens)
	assert.NotNil(t, ie.Entry.Tags)
	assert.NotNil(t, ie.Entry.Sources)
}

func TestBuildIndexIsDeterministic(t *testing.T) {
	corpus, err := knowledge.Default()
	require.NoError(t, err)

	assert.Equal(t, BuildIndex(corpus), BuildIndex(corpus))
	assert.Equal(t, corpus, BuildIndex(corpus).Entries())
}

func TestNilIndex(t *testing.T) {
	var ix *Index
	assert.Zero(t, ix.Len())
	assert.Nil(t, ix.Entries())
	assert.Empty(t, NewEngine(nil).Search("급식", 3))
}
