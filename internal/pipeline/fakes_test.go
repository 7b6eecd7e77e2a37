package pipeline

import (
	"context"
	"sync"
	"time"

	"catchup-feed/internal/domain/entity"
	"catchup-feed/internal/feedfetcher"
)

type fetchResult struct {
	entries []entity.FeedEntry
	result  feedfetcher.Result
}

type fakeFeedFetcher struct {
	bySource map[string]fetchResult
}

func (f *fakeFeedFetcher) Fetch(_ context.Context, source entity.FeedSource, _ time.Duration) ([]entity.FeedEntry, feedfetcher.Result) {
	r, ok := f.bySource[source.RSSURL]
	if !ok {
		return nil, feedfetcher.Result{Outcome: feedfetcher.OutcomeOk}
	}
	return r.entries, r.result
}

type extractResult struct {
	article *entity.Article
	err     error
}

type fakeArticleExtractor struct {
	byURL map[string]extractResult
}

func (f *fakeArticleExtractor) Extract(_ context.Context, articleURL string, _ time.Duration) (*entity.Article, error) {
	if r, ok := f.byURL[articleURL]; ok {
		return r.article, r.err
	}
	return &entity.Article{
		Title: "default title",
		URL:   articleURL,
		Body:  defaultBody,
	}, nil
}

const defaultBody = "A long enough article body that clears the minimum extraction length threshold comfortably."

type fakeKeywordExtractor struct {
	keywords entity.KeywordSet
	err      error
}

func (f *fakeKeywordExtractor) Extract(_ context.Context, _ string, _ time.Duration) (entity.KeywordSet, error) {
	return f.keywords, f.err
}

type summarizeResult struct {
	sa  *entity.SummarizedArticle
	err error
}

type fakeSummarizer struct {
	byURL map[string]summarizeResult
}

func (f *fakeSummarizer) Summarize(_ context.Context, article entity.Article, language entity.LanguageHint, _ string, _ time.Duration) (*entity.SummarizedArticle, error) {
	if r, ok := f.byURL[article.URL]; ok {
		return r.sa, r.err
	}
	return &entity.SummarizedArticle{
		Article:         article,
		Summary:         "a short summary",
		SummaryLanguage: language,
		Model:           "test-model",
		ProducedAt:      time.Now(),
	}, nil
}

type fakeRegistry struct {
	sources []entity.FeedSource
}

func (f *fakeRegistry) List() []entity.FeedSource { return f.sources }

type fakeHistoryStore struct {
	mu      sync.Mutex
	records []entity.HistoryRecord
	err     error
}

func (f *fakeHistoryStore) Persist(_ context.Context, r entity.HistoryRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, r)
	return nil
}

type fakeMailSender struct {
	mu      sync.Mutex
	sent    bool
	err     error
	to      string
	subject string
}

func (f *fakeMailSender) Send(_ context.Context, to, subject, _, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = true
	f.to = to
	f.subject = subject
	return f.err
}

type fakeClock struct {
	t time.Time
}

func (f *fakeClock) Now() time.Time { return f.t }
