package search

import (
	"math"
	"sort"
)

// Tier scales the dynamic threshold once the top score reaches MinTop.
type Tier struct {
	MinTop int     `json:"minTop"`
	Ratio  float64 `json:"ratio"`
}

// Policy holds every tunable weight and threshold of the ranker.
type Policy struct {
	// PhraseQuestion is added when the whole normalized query occurs in the
	// normalized question; PhraseAnswer when it occurs only in the answer.
	PhraseQuestion int `json:"phraseQuestion"`
	PhraseAnswer   int `json:"phraseAnswer"`
	// MinPhraseRunes is the shortest normalized query that earns a phrase bonus.
	MinPhraseRunes int `json:"minPhraseRunes"`

	QuestionToken int `json:"questionToken"`
	AnswerToken   int `json:"answerToken"`
	MetaToken     int `json:"metaToken"`
	PartialToken  int `json:"partialToken"`

	// Coverage[n] is added when n distinct query tokens matched; counts past
	// the end of the slice use its last element.
	Coverage []int `json:"coverage"`

	// MinScore is the absolute floor; anything below it is never returned.
	MinScore int `json:"minScore"`
	// Tiers must be ordered by descending MinTop.
	Tiers []Tier `json:"tiers"`

	DefaultLimit int `json:"defaultLimit"`
}

// DefaultPolicy returns the stock ranking policy.
func DefaultPolicy() Policy {
	return Policy{
		PhraseQuestion: 12,
		PhraseAnswer:   8,
		MinPhraseRunes: 4,
		QuestionToken:  7,
		AnswerToken:    4,
		MetaToken:      3,
		PartialToken:   1,
		Coverage:       []int{0, 0, 2, 4, 6},
		MinScore:       1,
		Tiers: []Tier{
			{MinTop: 18, Ratio: 0.6},
			{MinTop: 12, Ratio: 0.55},
			{MinTop: 8, Ratio: 0.5},
			{MinTop: 0, Ratio: 0.4},
		},
		DefaultLimit: 3,
	}
}

// PolicyOverride is the configurable subset of a Policy. Nil fields and empty
// slices keep the base value, so an explicit 0 can switch a weight off.
type PolicyOverride struct {
	PhraseQuestion *int   `json:"phraseQuestion,omitempty"`
	PhraseAnswer   *int   `json:"phraseAnswer,omitempty"`
	MinPhraseRunes *int   `json:"minPhraseRunes,omitempty"`
	QuestionToken  *int   `json:"questionToken,omitempty"`
	AnswerToken    *int   `json:"answerToken,omitempty"`
	MetaToken      *int   `json:"metaToken,omitempty"`
	PartialToken   *int   `json:"partialToken,omitempty"`
	Coverage       []int  `json:"coverage,omitempty"`
	MinScore       *int   `json:"minScore,omitempty"`
	Tiers          []Tier `json:"tiers,omitempty"`
	DefaultLimit   *int   `json:"defaultLimit,omitempty"`
}

// Merge returns p with every set field of override applied. Tiers are
// re-sorted by descending MinTop.
func (p Policy) Merge(override PolicyOverride) Policy {
	setInt := func(dst *int, v *int) {
		if v != nil {
			*dst = *v
		}
	}
	setInt(&p.PhraseQuestion, override.PhraseQuestion)
	setInt(&p.PhraseAnswer, override.PhraseAnswer)
	setInt(&p.MinPhraseRunes, override.MinPhraseRunes)
	setInt(&p.QuestionToken, override.QuestionToken)
	setInt(&p.AnswerToken, override.AnswerToken)
	setInt(&p.MetaToken, override.MetaToken)
	setInt(&p.PartialToken, override.PartialToken)
	setInt(&p.MinScore, override.MinScore)
	setInt(&p.DefaultLimit, override.DefaultLimit)
	if len(override.Coverage) > 0 {
		p.Coverage = append([]int{}, override.Coverage...)
	}
	if len(override.Tiers) > 0 {
		tiers := append([]Tier{}, override.Tiers...)
		sort.SliceStable(tiers, func(i, j int) bool { return tiers[i].MinTop > tiers[j].MinTop })
		p.Tiers = tiers
	}
	return p
}

// coverageBonus rewards entries matching more distinct query tokens, with a
// capped step so long queries cannot win on token count alone.
func (p Policy) coverageBonus(matched int) int {
	if matched <= 0 || len(p.Coverage) == 0 {
		return 0
	}
	if matched >= len(p.Coverage) {
		return p.Coverage[len(p.Coverage)-1]
	}
	return p.Coverage[matched]
}

// Threshold is the minimum score a secondary result needs given the top
// score. The kept fraction grows with the top score: a strong best match
// prunes weak neighbours, a weak one lets nearby results through.
func (p Policy) Threshold(top int) int {
	floor := p.MinScore
	for _, t := range p.Tiers {
		if top >= t.MinTop {
			cut := int(math.Floor(float64(top) * t.Ratio))
			if cut > floor {
				return cut
			}
			return floor
		}
	}
	return floor
}
