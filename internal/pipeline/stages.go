package pipeline

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"catchup-feed/internal/articleextractor"
	"catchup-feed/internal/domain/entity"
	"catchup-feed/internal/feedfetcher"
	"catchup-feed/internal/llmsummarizer"
)

// fetchAllFeeds fetches every source bounded to FeedParallelism concurrent
// requests. A per-source failure is collected, not fatal to the others.
func (o *Orchestrator) fetchAllFeeds(ctx context.Context, sources []entity.FeedSource) ([]entity.FeedEntry, []entity.PipelineError) {
	sem := make(chan struct{}, o.cfg.FeedParallelism)
	eg, egCtx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	var entries []entity.FeedEntry
	var errs []entity.PipelineError

	for _, src := range sources {
		src := src
		eg.Go(func() error {
			sem <- struct{}{}
			defer func() { <-sem }()

			got, result := o.feedFetcher.Fetch(egCtx, src, o.cfg.FetchTimeout)

			mu.Lock()
			defer mu.Unlock()
			if result.Outcome != feedfetcher.OutcomeOk {
				errs = append(errs, entity.PipelineError{
					Stage:   entity.StageFeedFetch,
					URL:     src.RSSURL,
					Kind:    mapFetchOutcome(result.Outcome),
					Message: result.String(),
				})
				return nil
			}
			entries = append(entries, got...)
			return nil
		})
	}
	_ = eg.Wait()
	return entries, errs
}

func mapFetchOutcome(o feedfetcher.Outcome) entity.PipelineErrorKind {
	switch o {
	case feedfetcher.OutcomeNetworkError:
		return entity.PipelineErrorNetwork
	case feedfetcher.OutcomeHTTPError:
		return entity.PipelineErrorHTTP
	case feedfetcher.OutcomeParseError:
		return entity.PipelineErrorParseError
	case feedfetcher.OutcomeTimeout:
		return entity.PipelineErrorTimeout
	case feedfetcher.OutcomeCharsetUnresolvable:
		return entity.PipelineErrorCharsetUnresolvable
	default:
		return entity.PipelineErrorNetwork
	}
}

// extractAll extracts every entry's article bounded to ArticleParallelism.
func (o *Orchestrator) extractAll(ctx context.Context, entries []entity.FeedEntry) ([]entity.Article, []entity.PipelineError) {
	sem := make(chan struct{}, o.cfg.ArticleParallelism)
	eg, egCtx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	var articles []entity.Article
	var errs []entity.PipelineError

	for _, e := range entries {
		entry := e
		eg.Go(func() error {
			sem <- struct{}{}
			defer func() { <-sem }()

			article, err := o.articleExtractor.Extract(egCtx, entry.Link, o.cfg.ExtractTimeout)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, entity.PipelineError{
					Stage:   entity.StageExtract,
					URL:     entry.Link,
					Kind:    mapExtractFailure(err),
					Message: err.Error(),
				})
				return nil
			}
			article.Source = entry.Source
			articles = append(articles, *article)
			return nil
		})
	}
	_ = eg.Wait()
	return articles, errs
}

func mapExtractFailure(err error) entity.PipelineErrorKind {
	var failure *articleextractor.ExtractionFailure
	if errors.As(err, &failure) {
		switch failure.Kind {
		case articleextractor.FailureNetworkError:
			return entity.PipelineErrorNetwork
		case articleextractor.FailureHTTPError:
			return entity.PipelineErrorHTTP
		case articleextractor.FailureTimeout:
			return entity.PipelineErrorTimeout
		case articleextractor.FailureBodyTooShort:
			return entity.PipelineErrorBodyTooShort
		case articleextractor.FailureUnparseable:
			return entity.PipelineErrorUnparseable
		}
	}
	return entity.PipelineErrorUnparseable
}

// summarizeAll summarizes every article bounded to LLMParallelism.
func (o *Orchestrator) summarizeAll(ctx context.Context, articles []entity.Article, language entity.LanguageHint, customPrompt string) ([]entity.SummarizedArticle, []entity.PipelineError) {
	sem := make(chan struct{}, o.cfg.LLMParallelism)
	eg, egCtx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	var summarized []entity.SummarizedArticle
	var errs []entity.PipelineError

	for _, a := range articles {
		article := a
		eg.Go(func() error {
			sem <- struct{}{}
			defer func() { <-sem }()

			sa, err := o.summarizer.Summarize(egCtx, article, language, customPrompt, o.cfg.LLMTimeout)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, entity.PipelineError{
					Stage:   entity.StageSummarize,
					URL:     article.URL,
					Kind:    mapSummarizeFailure(err),
					Message: err.Error(),
				})
				return nil
			}
			summarized = append(summarized, *sa)
			return nil
		})
	}
	_ = eg.Wait()
	return summarized, errs
}

func mapSummarizeFailure(err error) entity.PipelineErrorKind {
	var se *llmsummarizer.SummarizeError
	if errors.As(err, &se) {
		switch se.Kind {
		case llmsummarizer.ErrorRateLimited:
			return entity.PipelineErrorRateLimited
		case llmsummarizer.ErrorTimeout:
			return entity.PipelineErrorTimeout
		case llmsummarizer.ErrorSummaryInvalid:
			return entity.PipelineErrorSummaryInvalid
		case llmsummarizer.ErrorInputTooLarge:
			return entity.PipelineErrorInputTooLarge
		}
	}
	return entity.PipelineErrorLLMUnavailable
}

// persistAll records each summarized article to history, sequentially:
// persistence is not on the request's critical concurrency path the way
// fetch/extract/summarize are, and spec.md puts no parallelism bound on it.
func (o *Orchestrator) persistAll(ctx context.Context, userID string, summarized []entity.SummarizedArticle, keywords []string) []entity.PipelineError {
	if o.historyStore == nil {
		return nil
	}
	var errs []entity.PipelineError
	now := o.clock.Now()
	for _, sa := range summarized {
		record := entity.NewHistoryRecord(userID, sa, keywords, now)
		if err := o.historyStore.Persist(ctx, record); err != nil {
			errs = append(errs, entity.PipelineError{
				Stage:   entity.StagePersist,
				URL:     sa.Article.URL,
				Kind:    entity.PipelineErrorStoreUnavailable,
				Message: err.Error(),
			})
		}
	}
	return errs
}
