// Package historystore persists summarized-article history, user
// feedback and recommendation-click events, and serves the paginated
// history and feedback/click read paths the core exposes to callers.
package historystore

import (
	"context"
	"time"

	"catchup-feed/internal/domain/entity"
)

// Store is the full persistence contract: the single Persist method
// satisfies pipeline.HistoryStore, and the rest back GetHistory,
// RecordFeedback, RecordRecommendationClick and the recommender's
// history lookback.
type Store interface {
	// Persist appends one HistoryRecord. A duplicate (same user, URL,
	// and created_at truncated to the second) is silently ignored
	// rather than returned as an error: spec.md treats resubmission
	// within the same second as a no-op, not a failure.
	Persist(ctx context.Context, record entity.HistoryRecord) error

	// GetHistory returns one page of a user's history, newest first,
	// optionally filtered to a single summary language.
	GetHistory(ctx context.Context, userID string, page, perPage int, language entity.LanguageHint) (HistoryPage, error)

	// RecordFeedback appends a feedback rating for a previously
	// summarized article.
	RecordFeedback(ctx context.Context, record entity.FeedbackRecord) error

	// RecordRecommendationClick appends a click event used to tune
	// future recommendations.
	RecordRecommendationClick(ctx context.Context, userID, articleURL string) error

	// RecentByUser returns every history record for userID created at
	// or after since, for the recommender's lookback window.
	RecentByUser(ctx context.Context, userID string, since time.Time) ([]entity.HistoryRecord, error)

	// KeywordsOfUser returns a keyword->occurrence-count multiset drawn
	// from userID's history over the last sinceDays days, for the
	// recommender's keyword-candidate scoring.
	KeywordsOfUser(ctx context.Context, userID string, sinceDays int) (map[string]int, error)

	// CategoriesOfUser returns a category->occurrence-count multiset
	// drawn from userID's history over the last sinceDays days, for the
	// recommender's category-candidate scoring.
	CategoriesOfUser(ctx context.Context, userID string, sinceDays int) (map[entity.Category]int, error)
}

// HistoryPage is one page of a user's summary history.
type HistoryPage struct {
	Records []entity.HistoryRecord
	Total   int
	Page    int
	PerPage int
}

// keywordMultiset tallies keyword occurrences across records, shared by
// every Store implementation's KeywordsOfUser.
func keywordMultiset(records []entity.HistoryRecord) map[string]int {
	counts := make(map[string]int)
	for _, r := range records {
		for _, kw := range r.Keywords {
			counts[kw]++
		}
	}
	return counts
}

// categoryMultiset tallies category occurrences across records, shared by
// every Store implementation's CategoriesOfUser.
func categoryMultiset(records []entity.HistoryRecord) map[entity.Category]int {
	counts := make(map[entity.Category]int)
	for _, r := range records {
		counts[r.Category]++
	}
	return counts
}
