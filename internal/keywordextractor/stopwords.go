package keywordextractor

// stopwordsEN are common English function words excluded from the
// frequency-ranked heuristic fallback.
var stopwordsEN = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "is": {}, "are": {},
	"was": {}, "were": {}, "be": {}, "been": {}, "being": {}, "to": {}, "of": {}, "in": {},
	"on": {}, "at": {}, "for": {}, "with": {}, "about": {}, "as": {}, "by": {}, "from": {},
	"this": {}, "that": {}, "these": {}, "those": {}, "it": {}, "its": {}, "what": {},
	"which": {}, "who": {}, "how": {}, "news": {}, "latest": {},
}

// stopwordsKO are common Korean particles and function words (josa/adverbs)
// excluded from the frequency-ranked heuristic fallback. Since the
// tokenizer splits on Unicode letter-run boundaries rather than morphemes,
// these entries target whole tokens that tend to survive tokenization as
// standalone runs (bound particles attached to a noun stay inside that
// noun's run and are not separately matched here).
var stopwordsKO = map[string]struct{}{
	"그리고": {}, "그러나": {}, "하지만": {}, "그래서": {}, "또한": {}, "등": {},
	"것": {}, "수": {}, "이": {}, "그": {}, "저": {}, "및": {}, "을": {}, "를": {},
	"은": {}, "는": {}, "이다": {}, "합니다": {}, "뉴스": {}, "최신": {},
}

func isStopword(token string) bool {
	if _, ok := stopwordsEN[token]; ok {
		return true
	}
	_, ok := stopwordsKO[token]
	return ok
}
