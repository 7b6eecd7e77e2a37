package recommender

import (
	"context"
	"time"

	"catchup-feed/internal/domain/entity"
	"catchup-feed/internal/feedfetcher"
)

type fakeFeedLister struct {
	sources []entity.FeedSource
}

func (f *fakeFeedLister) List() []entity.FeedSource { return f.sources }

type fakeFetcher struct {
	bySource map[string][]entity.FeedEntry
}

func (f *fakeFetcher) Fetch(_ context.Context, source entity.FeedSource, _ time.Duration) ([]entity.FeedEntry, feedfetcher.Result) {
	entries, ok := f.bySource[source.RSSURL]
	if !ok {
		return nil, feedfetcher.Result{Outcome: feedfetcher.OutcomeNetworkError}
	}
	return entries, feedfetcher.Result{Outcome: feedfetcher.OutcomeOk}
}

type fakeHistoryReader struct {
	keywords   map[string]int
	categories map[entity.Category]int
	recent     []entity.HistoryRecord
	err        error
}

func (f *fakeHistoryReader) KeywordsOfUser(context.Context, string, int) (map[string]int, error) {
	return f.keywords, f.err
}

func (f *fakeHistoryReader) CategoriesOfUser(context.Context, string, int) (map[entity.Category]int, error) {
	return f.categories, f.err
}

func (f *fakeHistoryReader) RecentByUser(context.Context, string, time.Time) ([]entity.HistoryRecord, error) {
	return f.recent, f.err
}

type fakeClock struct{ t time.Time }

func (f fakeClock) Now() time.Time { return f.t }
