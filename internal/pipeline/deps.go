package pipeline

import (
	"context"
	"time"

	"catchup-feed/internal/domain/entity"
	"catchup-feed/internal/feedfetcher"
)

// FeedFetcher fetches one feed source's entries. Satisfied by
// *feedfetcher.Fetcher.
type FeedFetcher interface {
	Fetch(ctx context.Context, source entity.FeedSource, deadline time.Duration) ([]entity.FeedEntry, feedfetcher.Result)
}

// ArticleExtractor fetches and extracts one article's title and body.
// Satisfied by *articleextractor.Extractor.
type ArticleExtractor interface {
	Extract(ctx context.Context, articleURL string, deadline time.Duration) (*entity.Article, error)
}

// KeywordExtractor turns a free-text query into a keyword set. Satisfied
// by *keywordextractor.Extractor.
type KeywordExtractor interface {
	Extract(ctx context.Context, query string, deadline time.Duration) (entity.KeywordSet, error)
}

// Summarizer produces a summary for one extracted article. Satisfied by
// *llmsummarizer.Summarizer.
type Summarizer interface {
	Summarize(ctx context.Context, article entity.Article, language entity.LanguageHint, customPrompt string, deadline time.Duration) (*entity.SummarizedArticle, error)
}

// FeedLister lists the registry's curated feed sources. Satisfied by
// *registry.Registry.
type FeedLister interface {
	List() []entity.FeedSource
}

// HistoryStore persists one successfully summarized article for a user.
type HistoryStore interface {
	Persist(ctx context.Context, record entity.HistoryRecord) error
}

// MailSender delivers a digest to a recipient.
type MailSender interface {
	Send(ctx context.Context, to, subject, htmlBody, textBody string) error
}

// Clock is injected so cache expiry and persisted timestamps are
// deterministic under test.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }
