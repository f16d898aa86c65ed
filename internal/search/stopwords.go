package search

// StopWords is a set of normalized tokens that never contribute to a score.
type StopWords map[string]struct{}

// NewStopWords normalizes words and builds a set from them. Words that
// normalize to nothing are ignored.
func NewStopWords(words ...string) StopWords {
	set := make(StopWords, len(words))
	for _, w := range words {
		for _, tok := range Tokenize(Normalize(w)) {
			set[tok] = struct{}{}
		}
	}
	return set
}

// Has reports whether token is a stop-word. A nil set has no members.
func (s StopWords) Has(token string) bool {
	_, ok := s[token]
	return ok
}

// With returns a new set holding the members of s plus words.
func (s StopWords) With(words ...string) StopWords {
	out := make(StopWords, len(s)+len(words))
	for w := range s {
		out[w] = struct{}{}
	}
	for w := range NewStopWords(words...) {
		out[w] = struct{}{}
	}
	return out
}

// defaultStopWords are generic interrogatives, request phrases and
// functional words for Korean, plus common English function words.
var defaultStopWords = []string{
	// Korean interrogatives and request endings
	"어떻게", "어떤", "무엇", "무엇인가요", "무엇인지", "뭔가요", "뭐", "뭐가", "뭐예요",
	"왜", "언제", "어디", "어디서", "어디에", "누가", "누구", "얼마나", "몇",
	"있나요", "있는지", "있어요", "있습니까", "없나요",
	"되나요", "되는지", "되어", "돼요", "됩니까",
	"인가요", "인지", "입니까", "이에요", "예요",
	"하나요", "하는지", "합니까", "해요", "하면", "하려면",
	"알려주세요", "알려줘", "알고", "싶어요", "싶습니다",
	"궁금합니다", "궁금해요", "궁금한", "질문", "문의",
	// Korean functional words
	"그리고", "또는", "그런데", "그래서", "및", "등", "좀", "것", "수", "그", "이", "저",
	// English
	"a", "an", "the", "and", "or", "of", "to", "in", "on", "for", "with", "about",
	"is", "are", "was", "were", "be", "do", "does", "can", "please",
	"what", "how", "why", "when", "where", "who", "which",
	"i", "you", "it", "this", "that",
}

// DefaultStopWords returns a fresh copy of the built-in stop-word set.
func DefaultStopWords() StopWords {
	return NewStopWords(defaultStopWords...)
}
