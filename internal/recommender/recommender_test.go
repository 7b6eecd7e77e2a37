package recommender

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catchup-feed/internal/domain/entity"
)

func testSource(name string, category entity.Category) entity.FeedSource {
	return entity.FeedSource{Name: name, Category: category, RSSURL: "https://feed/" + name}
}

func testConfig() Config {
	return Config{
		HistoryWindowDays:   30,
		CandidatesPerSource: 2,
		FetchParallelism:    4,
		FetchTimeout:        time.Second,
		MaxLimit:            20,
	}
}

func TestRecommend_TrendingWhenNoHistory(t *testing.T) {
	now := time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC)
	source := testSource("it-feed", entity.CategoryIT)

	fetcher := &fakeFetcher{bySource: map[string][]entity.FeedEntry{
		source.RSSURL: {
			{Title: "fresh news", Link: "https://x/fresh", PublishedAt: now.Add(-1 * time.Hour), Source: source},
			{Title: "old news", Link: "https://x/old", PublishedAt: now.Add(-200 * time.Hour), Source: source},
		},
	}}

	rec := New(testConfig(), Deps{
		Feeds:   &fakeFeedLister{sources: []entity.FeedSource{source}},
		Fetcher: fetcher,
		History: &fakeHistoryReader{},
		Clock:   fakeClock{t: now},
	})

	out, err := rec.Recommend(context.Background(), "u1", 10)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, entity.RecommendationTrending, out[0].RecommendationType)
	// fresh news scores higher (smaller age) so it ranks first
	assert.Equal(t, "https://x/fresh", out[0].ArticleURL)
	assert.InDelta(t, 1.0, out[0].RecommendationScore, 0.0001)
	assert.InDelta(t, 0.0, out[1].RecommendationScore, 0.0001)
}

func TestRecommend_ExcludesSeenURLs(t *testing.T) {
	now := time.Now()
	source := testSource("it-feed", entity.CategoryIT)

	fetcher := &fakeFetcher{bySource: map[string][]entity.FeedEntry{
		source.RSSURL: {
			{Title: "a", Link: "https://x/seen", PublishedAt: now, Source: source},
			{Title: "b", Link: "https://x/unseen", PublishedAt: now, Source: source},
		},
	}}

	rec := New(testConfig(), Deps{
		Feeds:   &fakeFeedLister{sources: []entity.FeedSource{source}},
		Fetcher: fetcher,
		History: &fakeHistoryReader{recent: []entity.HistoryRecord{{ArticleURL: "https://x/seen"}}},
		Clock:   fakeClock{t: now},
	})

	out, err := rec.Recommend(context.Background(), "u1", 10)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "https://x/unseen", out[0].ArticleURL)
}

func TestRecommend_KeywordCandidatesScoreByTitleHits(t *testing.T) {
	now := time.Now()
	source := testSource("it-feed", entity.CategoryIT)

	fetcher := &fakeFetcher{bySource: map[string][]entity.FeedEntry{
		source.RSSURL: {
			{Title: "chip exports surge", Link: "https://x/1", Source: source},
			{Title: "unrelated weather report", Link: "https://x/2", Source: source},
		},
	}}

	rec := New(testConfig(), Deps{
		Feeds:   &fakeFeedLister{sources: []entity.FeedSource{source}},
		Fetcher: fetcher,
		History: &fakeHistoryReader{keywords: map[string]int{"chip": 3, "exports": 1}},
		Clock:   fakeClock{t: now},
	})

	out, err := rec.Recommend(context.Background(), "u1", 10)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "https://x/1", out[0].ArticleURL)
	assert.Equal(t, entity.RecommendationKeyword, out[0].RecommendationType)
}

func TestRecommend_CategoryCandidatesRestrictToTop3(t *testing.T) {
	now := time.Now()
	itSource := testSource("it-feed", entity.CategoryIT)
	sportsSource := testSource("sports-feed", entity.CategorySports)

	fetcher := &fakeFetcher{bySource: map[string][]entity.FeedEntry{
		itSource.RSSURL:     {{Title: "t1", Link: "https://x/it", Source: itSource}},
		sportsSource.RSSURL: {{Title: "t2", Link: "https://x/sports", Source: sportsSource}},
	}}

	rec := New(testConfig(), Deps{
		Feeds:   &fakeFeedLister{sources: []entity.FeedSource{itSource, sportsSource}},
		Fetcher: fetcher,
		History: &fakeHistoryReader{categories: map[entity.Category]int{entity.CategoryIT: 10}},
		Clock:   fakeClock{t: now},
	})

	out, err := rec.Recommend(context.Background(), "u1", 10)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "https://x/it", out[0].ArticleURL)
	assert.Equal(t, entity.RecommendationCategory, out[0].RecommendationType)
}

func TestRecommend_DedupesByURLKeepingHigherScore(t *testing.T) {
	now := time.Now()
	source := testSource("it-feed", entity.CategoryIT)

	fetcher := &fakeFetcher{bySource: map[string][]entity.FeedEntry{
		source.RSSURL: {
			{Title: "chip news", Link: "https://x/1", Source: source},
		},
	}}

	rec := New(testConfig(), Deps{
		Feeds:   &fakeFeedLister{sources: []entity.FeedSource{source}},
		Fetcher: fetcher,
		History: &fakeHistoryReader{
			keywords:   map[string]int{"chip": 5},
			categories: map[entity.Category]int{entity.CategoryIT: 1},
		},
		Clock: fakeClock{t: now},
	})

	out, err := rec.Recommend(context.Background(), "u1", 10)
	require.NoError(t, err)
	require.Len(t, out, 1)
}

func TestRecommend_LimitIsClampedToMaxLimit(t *testing.T) {
	now := time.Now()
	source := testSource("it-feed", entity.CategoryIT)

	entries := make([]entity.FeedEntry, 0, 30)
	bySource := map[string][]entity.FeedEntry{}
	sources := make([]entity.FeedSource, 0, 30)
	for i := 0; i < 30; i++ {
		s := testSource(string(rune('a'+i)), entity.CategoryIT)
		bySource[s.RSSURL] = []entity.FeedEntry{{Title: "t", Link: s.RSSURL + "/1", PublishedAt: now, Source: s}}
		sources = append(sources, s)
	}
	_ = entries

	cfg := testConfig()
	cfg.CandidatesPerSource = 1
	cfg.MaxLimit = 5

	rec := New(cfg, Deps{
		Feeds:   &fakeFeedLister{sources: sources},
		Fetcher: &fakeFetcher{bySource: bySource},
		History: &fakeHistoryReader{},
		Clock:   fakeClock{t: now},
	})

	out, err := rec.Recommend(context.Background(), "u1", 100)
	require.NoError(t, err)
	assert.Len(t, out, 5)
}

func TestRecommend_DegradesWhenOneSourceFails(t *testing.T) {
	now := time.Now()
	good := testSource("good-feed", entity.CategoryIT)
	bad := testSource("bad-feed", entity.CategoryIT)

	fetcher := &fakeFetcher{bySource: map[string][]entity.FeedEntry{
		good.RSSURL: {{Title: "t", Link: "https://x/good", PublishedAt: now, Source: good}},
		// bad.RSSURL intentionally absent: fakeFetcher returns a network error
	}}

	rec := New(testConfig(), Deps{
		Feeds:   &fakeFeedLister{sources: []entity.FeedSource{good, bad}},
		Fetcher: fetcher,
		History: &fakeHistoryReader{},
		Clock:   fakeClock{t: now},
	})

	out, err := rec.Recommend(context.Background(), "u1", 10)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "https://x/good", out[0].ArticleURL)
}

func TestRecommend_PropagatesHistoryError(t *testing.T) {
	rec := New(testConfig(), Deps{
		Feeds:   &fakeFeedLister{},
		Fetcher: &fakeFetcher{},
		History: &fakeHistoryReader{err: assert.AnError},
		Clock:   fakeClock{t: time.Now()},
	})

	_, err := rec.Recommend(context.Background(), "u1", 10)
	require.Error(t, err)
}
