// Package relevancefilter implements the Relevance Filter component (C5):
// scoring feed entries against a keyword set and selecting the top-ranked
// subset. It has no dependencies beyond the domain entities.
package relevancefilter

import (
	"sort"
	"strings"

	"catchup-feed/internal/domain/entity"
)

const (
	titleHitWeight   = 3
	snippetHitWeight = 1
)

// Filter scores entries against keywords, drops zero-score entries, and
// returns the top limit entries ordered by descending score. Ties break on
// newer PublishedAt first, then on input order for entries with no
// PublishedAt.
func Filter(entries []entity.FeedEntry, keywords entity.KeywordSet, limit int) []entity.FeedEntry {
	type scored struct {
		entry entity.FeedEntry
		score int
		index int
	}

	candidates := make([]scored, 0, len(entries))
	for i, e := range entries {
		s := score(e, keywords.Terms)
		if s == 0 {
			continue
		}
		candidates = append(candidates, scored{entry: e, score: s, index: i})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.score != b.score {
			return a.score > b.score
		}
		if a.entry.PublishedAt != nil && b.entry.PublishedAt != nil {
			if !a.entry.PublishedAt.Equal(*b.entry.PublishedAt) {
				return a.entry.PublishedAt.After(*b.entry.PublishedAt)
			}
		} else if a.entry.PublishedAt != nil {
			return true
		} else if b.entry.PublishedAt != nil {
			return false
		}
		return a.index < b.index
	})

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}

	result := make([]entity.FeedEntry, len(candidates))
	for i, c := range candidates {
		result[i] = c.entry
	}
	return result
}

// score computes Σ(α·titleHits + β·snippetHits) for a single entry, with
// α=3, β=1, using case-insensitive substring counts.
func score(e entity.FeedEntry, terms []string) int {
	title := strings.ToLower(e.Title)
	snippet := strings.ToLower(e.SummarySnippet)

	total := 0
	for _, term := range terms {
		if term == "" {
			continue
		}
		total += titleHitWeight * strings.Count(title, term)
		total += snippetHitWeight * strings.Count(snippet, term)
	}
	return total
}
