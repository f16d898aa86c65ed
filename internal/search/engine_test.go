package search

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pangyo-qna/kbqa/internal/knowledge"
)

func newTestEngine(entries ...knowledge.Entry) *Engine {
	return NewEngine(BuildIndex(entries))
}

func TestSearchEmptyQueries(t *testing.T) {
	engine := newTestEngine(knowledge.Entry{ID: "a", Question: "급식 안내", Answer: "급식실 운영 안내"})

	for _, q := range []string{"", "   ", "?!", "가 나"} {
		got := engine.Search(q, 3)
		require.NotNil(t, got, "query %q", q)
		assert.Empty(t, got, "query %q", q)
	}
}

func TestSearchNoMatch(t *testing.T) {
	engine := newTestEngine(
		knowledge.Entry{ID: "a", Question: "급식 안내", Answer: "급식실 운영 안내"},
		knowledge.Entry{ID: "b", Question: "동아리 신청", Answer: "3월에 신청합니다"},
	)

	assert.Empty(t, engine.Search("어떻게 되나요?", 3), "stop-words only")
	assert.Empty(t, engine.Search("우주선 발사", 3), "absent words")
}

func TestSearchExactQuestionGetsPhraseBonus(t *testing.T) {
	entry := knowledge.Entry{
		ID:       "ace",
		Category: "ACE 프로그램",
		Question: "ACE 프로그램은 무엇인가요?",
		Answer:   "탐구 역량을 키우는 특화 과정입니다.",
	}
	engine := newTestEngine(entry)

	got := engine.Search(entry.Question, 3)
	require.Len(t, got, 1)
	assert.Equal(t, "ace", got[0].Entry.ID)
	// phrase 12 + ace (question 7, category 3) + 프로그램은 (question 7) + coverage 2
	assert.Equal(t, 31, got[0].Score)
	assert.Equal(t, []string{"ace", "프로그램은"}, got[0].MatchedTokens)

	boosted := DefaultPolicy()
	boosted.PhraseQuestion = 100
	got = NewEngine(BuildIndex([]knowledge.Entry{entry}), WithPolicy(boosted)).Search(entry.Question, 3)
	require.Len(t, got, 1)
	assert.Equal(t, 119, got[0].Score)
}

func TestSearchExactQuestionBonusIgnoresLength(t *testing.T) {
	require.Equal(t, 4, DefaultPolicy().MinPhraseRunes)

	cases := []struct {
		name     string
		question string
	}{
		{"1 rune", "3?"},
		{"2 runes", "학비?"},
		{"3 runes", "교복비?"},
		{"4 runes", "급식시간?"},
		{"5 runes", "야간자율학?"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			engine := newTestEngine(knowledge.Entry{ID: "q", Question: tc.question, Answer: "별도 안내"})

			got := engine.Search(tc.question, 3)
			require.Len(t, got, 1)
			// phrase 12 + question token 7
			assert.Equal(t, 19, got[0].Score)
		})
	}
}

func TestSearchShortQueryContainedGetsNoPhraseBonus(t *testing.T) {
	engine := newTestEngine(knowledge.Entry{ID: "q", Question: "학비 지원 안내", Answer: "별도 공지"})

	got := engine.Search("학비", 3)
	require.Len(t, got, 1)
	// question token 7 only: "학비" is under the containment length gate
	assert.Equal(t, 7, got[0].Score)
}

func TestSearchPartialTokenFallback(t *testing.T) {
	engine := newTestEngine(knowledge.Entry{
		ID:       "transfer",
		Category: "학교 현황",
		Question: "전학 절차는 어떻게 되나요?",
		Answer:   "주소지 이전 후 교육지원청에 신청합니다.",
		Sources:  []string{"입학요강.pdf"},
	})

	got := engine.Search("전학 절차", 3)
	require.Len(t, got, 1)
	// phrase 12 + 전학 (question 7) + 절차 (substring 1) + coverage 2
	assert.Equal(t, 22, got[0].Score)
	assert.Equal(t, []string{"전학", "절차"}, got[0].MatchedTokens)
}

func tieCorpus() []knowledge.Entry {
	return []knowledge.Entry{
		{ID: "beta", Question: "급식 시간 안내", Answer: "내용"},
		{ID: "alpha", Question: "급식 시간 안내", Answer: "내용"},
		{ID: "zeta", Question: "급식 안내", Answer: "내용"},
	}
}

func TestSearchTieBreakIsStable(t *testing.T) {
	engine := newTestEngine(tieCorpus()...)

	for i := 0; i < 20; i++ {
		got := engine.Search("급식", 3)
		require.Len(t, got, 3)
		ids := []string{got[0].Entry.ID, got[1].Entry.ID, got[2].Entry.ID}
		assert.Equal(t, []string{"zeta", "alpha", "beta"}, ids)
		for _, r := range got {
			assert.Equal(t, 7, r.Score)
		}
	}
}

func TestSearchRespectsLimit(t *testing.T) {
	engine := newTestEngine(tieCorpus()...)

	assert.Len(t, engine.Search("급식", 2), 2)
	assert.Len(t, engine.Search("급식", 1), 1)
	assert.Empty(t, engine.Search("급식", 0))
	assert.Empty(t, engine.Search("급식", -4))
}

func TestSearchPrunesFarBelowTop(t *testing.T) {
	engine := newTestEngine(
		knowledge.Entry{ID: "strong", Question: "수행평가 비율", Answer: "지필 60 수행 40"},
		knowledge.Entry{ID: "weak", Question: "학교 소개", Answer: "수행평가 관련 안내는 별도 공지"},
	)

	got := engine.Search("수행평가 비율", 3)
	require.Len(t, got, 1)
	assert.Equal(t, "strong", got[0].Entry.ID)
	assert.Equal(t, 28, got[0].Score)
}

func TestSearchAlwaysKeepsTopResult(t *testing.T) {
	engine := newTestEngine(knowledge.Entry{ID: "only", Question: "학교 소개", Answer: "수행평가 관련 안내"})

	got := engine.Search("수행평가", 3)
	require.Len(t, got, 1)
	// answer phrase 8 + answer token 4
	assert.Equal(t, 12, got[0].Score)
}

func TestSearchIsDeterministicAcrossIndexBuilds(t *testing.T) {
	corpus, err := knowledge.Default()
	require.NoError(t, err)

	first := NewEngine(BuildIndex(corpus))
	second := NewEngine(BuildIndex(corpus))

	queries := []string{"전학 절차", "ACE 프로그램", "수행평가 비율", "석식", "2025 모집 정원", "동아리"}
	for _, q := range queries {
		a := first.Search(q, 4)
		assert.Equal(t, a, first.Search(q, 4), "repeat %q", q)
		assert.Equal(t, a, second.Search(q, 4), "rebuild %q", q)
	}
}

func TestSearchResultsDoNotAliasIndex(t *testing.T) {
	corpus := []knowledge.Entry{{ID: "a", Question: "급식 안내", Answer: "내용", Tags: []string{"생활지원"}}}
	engine := newTestEngine(corpus...)
	corpus[0].Tags[0] = "changed"

	got := engine.Search("급식", 1)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"생활지원"}, got[0].Entry.Tags)

	got[0].Entry.Tags[0] = "mutated"
	again := engine.Search("급식", 1)
	assert.Equal(t, []string{"생활지원"}, again[0].Entry.Tags)
}

func TestSearchConcurrentReaders(t *testing.T) {
	corpus, err := knowledge.Default()
	require.NoError(t, err)
	engine := NewEngine(BuildIndex(corpus))
	want := engine.Search("ACE 프로그램 선발", 3)

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := engine.Search("ACE 프로그램 선발", 3)
			if len(got) != len(want) || got[0].Entry.ID != want[0].Entry.ID {
				errs <- fmt.Errorf("unexpected result %+v", got)
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
