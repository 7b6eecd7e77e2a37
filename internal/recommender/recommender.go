// Package recommender scores and ranks not-yet-seen articles for a user
// based on their recent keyword and category history, falling back to a
// recency-only trending mix for users with no history yet.
package recommender

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"catchup-feed/internal/domain/entity"
)

// Recommender computes ranked Recommendation lists. It never writes;
// RecordRecommendationClick lives on historystore.Store.
type Recommender struct {
	cfg     Config
	feeds   FeedLister
	fetcher FeedFetcher
	history HistoryReader
	clock   Clock
}

// Deps bundles Recommender's collaborators.
type Deps struct {
	Feeds   FeedLister
	Fetcher FeedFetcher
	History HistoryReader
	Clock   Clock
}

// New builds a Recommender. Clock defaults to the system clock.
func New(cfg Config, deps Deps) *Recommender {
	clock := deps.Clock
	if clock == nil {
		clock = systemClock{}
	}
	return &Recommender{cfg: cfg, feeds: deps.Feeds, fetcher: deps.Fetcher, history: deps.History, clock: clock}
}

// Recommend returns up to limit ranked Recommendations for userID. limit is
// clamped to [1, cfg.MaxLimit]; a non-positive limit defaults to MaxLimit.
func (r *Recommender) Recommend(ctx context.Context, userID string, limit int) ([]entity.Recommendation, error) {
	limit = clampLimit(limit, r.cfg.MaxLimit)

	keywordCounts, err := r.history.KeywordsOfUser(ctx, userID, r.cfg.HistoryWindowDays)
	if err != nil {
		return nil, err
	}
	categoryCounts, err := r.history.CategoriesOfUser(ctx, userID, r.cfg.HistoryWindowDays)
	if err != nil {
		return nil, err
	}
	seen, err := r.history.RecentByUser(ctx, userID, time.Time{})
	if err != nil {
		return nil, err
	}
	excluded := excludedURLs(seen)

	var candidates []entity.Recommendation
	if len(keywordCounts) == 0 && len(categoryCounts) == 0 {
		candidates, err = r.trendingCandidates(ctx)
	} else {
		candidates, err = r.historyDrivenCandidates(ctx, keywordCounts, categoryCounts)
	}
	if err != nil {
		return nil, err
	}

	candidates = dedupeByURLKeepingHigherScore(candidates)
	candidates = excludeSeen(candidates, excluded)
	normalizeScores(candidates)

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].RecommendationScore > candidates[j].RecommendationScore
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}

func excludedURLs(records []entity.HistoryRecord) map[string]struct{} {
	out := make(map[string]struct{}, len(records))
	for _, rec := range records {
		out[rec.ArticleURL] = struct{}{}
	}
	return out
}

func excludeSeen(candidates []entity.Recommendation, excluded map[string]struct{}) []entity.Recommendation {
	out := make([]entity.Recommendation, 0, len(candidates))
	for _, c := range candidates {
		if _, skip := excluded[c.ArticleURL]; skip {
			continue
		}
		out = append(out, c)
	}
	return out
}

func dedupeByURLKeepingHigherScore(candidates []entity.Recommendation) []entity.Recommendation {
	best := make(map[string]entity.Recommendation, len(candidates))
	order := make([]string, 0, len(candidates))
	for _, c := range candidates {
		existing, ok := best[c.ArticleURL]
		if !ok {
			order = append(order, c.ArticleURL)
			best[c.ArticleURL] = c
			continue
		}
		if c.RecommendationScore > existing.RecommendationScore {
			best[c.ArticleURL] = c
		}
	}
	out := make([]entity.Recommendation, 0, len(order))
	for _, url := range order {
		out = append(out, best[url])
	}
	return out
}

// normalizeScores min-max normalizes every score in place to [0,1]. When
// every candidate has the same score, they are all set to 1.0 rather than
// dividing by zero.
func normalizeScores(candidates []entity.Recommendation) {
	if len(candidates) == 0 {
		return
	}
	min, max := candidates[0].RecommendationScore, candidates[0].RecommendationScore
	for _, c := range candidates {
		if c.RecommendationScore < min {
			min = c.RecommendationScore
		}
		if c.RecommendationScore > max {
			max = c.RecommendationScore
		}
	}
	spread := max - min
	for i := range candidates {
		if spread == 0 {
			if max > 0 {
				candidates[i].RecommendationScore = 1.0
			}
			continue
		}
		candidates[i].RecommendationScore = (candidates[i].RecommendationScore - min) / spread
	}
}

func (r *Recommender) trendingCandidates(ctx context.Context) ([]entity.Recommendation, error) {
	entries, err := r.fetchBounded(ctx, r.feeds.List())
	if err != nil {
		return nil, err
	}

	now := r.clock.Now()
	out := make([]entity.Recommendation, 0, len(entries))
	for _, e := range entries {
		out = append(out, entity.Recommendation{
			ArticleTitle:        e.Title,
			ArticleURL:          e.Link,
			ArticleSource:       e.Source.Name,
			Category:            e.Source.Category,
			RecommendationType:  entity.RecommendationTrending,
			RecommendationScore: recencyScore(e.PublishedAt, now),
			CreatedAt:           now,
		})
	}
	return out, nil
}

// recencyScore is exp(-ageHours/48), clamped to [0,1]. A zero PublishedAt
// (entry carried no timestamp) scores 0 rather than an arbitrary age.
func recencyScore(publishedAt, now time.Time) float64 {
	if publishedAt.IsZero() {
		return 0
	}
	ageHours := now.Sub(publishedAt).Hours()
	if ageHours < 0 {
		ageHours = 0
	}
	score := math.Exp(-ageHours / 48)
	if score > 1 {
		return 1
	}
	if score < 0 {
		return 0
	}
	return score
}

func (r *Recommender) historyDrivenCandidates(ctx context.Context, keywordCounts map[string]int, categoryCounts map[entity.Category]int) ([]entity.Recommendation, error) {
	entries, err := r.fetchBounded(ctx, r.feeds.List())
	if err != nil {
		return nil, err
	}

	now := r.clock.Now()
	var out []entity.Recommendation
	out = append(out, keywordCandidates(entries, keywordCounts, now)...)
	out = append(out, categoryCandidates(entries, categoryCounts, now)...)
	return out, nil
}

func keywordCandidates(entries []entity.FeedEntry, counts map[string]int, now time.Time) []entity.Recommendation {
	if len(counts) == 0 {
		return nil
	}
	var totalFreq int
	for _, f := range counts {
		totalFreq += f
	}
	normalize := math.Max(1, float64(totalFreq))

	terms := make([]string, 0, len(counts))
	for t := range counts {
		terms = append(terms, t)
	}

	out := make([]entity.Recommendation, 0, len(entries))
	for _, e := range entries {
		titleLower := strings.ToLower(e.Title)
		var score float64
		for _, t := range terms {
			hits := strings.Count(titleLower, strings.ToLower(t))
			if hits == 0 {
				continue
			}
			score += float64(counts[t]*hits)
		}
		score /= normalize
		if score <= 0 {
			continue
		}
		out = append(out, entity.Recommendation{
			ArticleTitle:        e.Title,
			ArticleURL:          e.Link,
			ArticleSource:       e.Source.Name,
			Category:            e.Source.Category,
			Keywords:            matchingTerms(titleLower, terms),
			RecommendationType:  entity.RecommendationKeyword,
			RecommendationScore: score,
			CreatedAt:           now,
		})
	}
	return out
}

func matchingTerms(titleLower string, terms []string) []string {
	var matched []string
	for _, t := range terms {
		if strings.Contains(titleLower, strings.ToLower(t)) {
			matched = append(matched, t)
		}
	}
	return matched
}

func categoryCandidates(entries []entity.FeedEntry, counts map[entity.Category]int, now time.Time) []entity.Recommendation {
	if len(counts) == 0 {
		return nil
	}
	top3 := topCategories(counts, 3)
	var total int
	for _, n := range counts {
		total += n
	}
	if total == 0 {
		return nil
	}

	out := make([]entity.Recommendation, 0, len(entries))
	for _, e := range entries {
		freq, ok := top3[e.Source.Category]
		if !ok {
			continue
		}
		out = append(out, entity.Recommendation{
			ArticleTitle:        e.Title,
			ArticleURL:          e.Link,
			ArticleSource:       e.Source.Name,
			Category:            e.Source.Category,
			RecommendationType:  entity.RecommendationCategory,
			RecommendationScore: float64(freq) / float64(total),
			CreatedAt:           now,
		})
	}
	return out
}

// topCategories returns the n most frequent categories from counts.
func topCategories(counts map[entity.Category]int, n int) map[entity.Category]int {
	type pair struct {
		category entity.Category
		count    int
	}
	pairs := make([]pair, 0, len(counts))
	for c, n := range counts {
		pairs = append(pairs, pair{c, n})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].count != pairs[j].count {
			return pairs[i].count > pairs[j].count
		}
		return pairs[i].category < pairs[j].category
	})
	if len(pairs) > n {
		pairs = pairs[:n]
	}
	out := make(map[entity.Category]int, len(pairs))
	for _, p := range pairs {
		out[p.category] = p.count
	}
	return out
}
