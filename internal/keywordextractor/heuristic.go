package keywordextractor

import (
	"sort"
	"unicode"
)

const minTokenLen = 2

// tokenize splits s into runs of Unicode letters, matching the "Unicode
// letter runs, length >= 2" rule. Runs of any other rune (digits,
// punctuation, whitespace) act as separators.
func tokenize(s string) []string {
	var tokens []string
	var cur []rune
	flush := func() {
		if len(cur) >= minTokenLen {
			tokens = append(tokens, string(cur))
		}
		cur = cur[:0]
	}
	for _, r := range s {
		if unicode.IsLetter(r) {
			cur = append(cur, unicode.ToLower(r))
		} else {
			flush()
		}
	}
	flush()
	return tokens
}

// heuristicKeywords tokenizes query, drops stopwords, and returns the top-N
// terms by descending frequency. Ties keep first-seen order, matching the
// stable-ranking expectation of a deterministic fallback.
func heuristicKeywords(query string, topN int) []string {
	tokens := tokenize(query)

	freq := make(map[string]int)
	order := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if isStopword(t) {
			continue
		}
		if _, seen := freq[t]; !seen {
			order = append(order, t)
		}
		freq[t]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return freq[order[i]] > freq[order[j]]
	})

	if len(order) > topN {
		order = order[:topN]
	}
	return order
}

func looksKorean(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Hangul, r) {
			return true
		}
	}
	return false
}
