package recommender

import (
	"context"
	"time"

	"catchup-feed/internal/domain/entity"
	"catchup-feed/internal/feedfetcher"
)

// FeedLister exposes the curated feed table; satisfied by *registry.Registry.
type FeedLister interface {
	List() []entity.FeedSource
}

// FeedFetcher downloads and parses one source's entries; satisfied by
// *feedfetcher.Fetcher.
type FeedFetcher interface {
	Fetch(ctx context.Context, source entity.FeedSource, deadline time.Duration) ([]entity.FeedEntry, feedfetcher.Result)
}

// HistoryReader is the slice of historystore.Store the recommender reads
// from: recent history signals plus exclusion of already-seen URLs.
type HistoryReader interface {
	KeywordsOfUser(ctx context.Context, userID string, sinceDays int) (map[string]int, error)
	CategoriesOfUser(ctx context.Context, userID string, sinceDays int) (map[entity.Category]int, error)
	RecentByUser(ctx context.Context, userID string, since time.Time) ([]entity.HistoryRecord, error)
}

// Clock abstracts time.Now for deterministic recency-scoring tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }
