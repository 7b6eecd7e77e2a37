package pipeline

import (
	"context"
	"strings"

	"catchup-feed/internal/domain/entity"
	"catchup-feed/internal/relevancefilter"
)

// Orchestrator wires the registry, fetcher, extractor, keyword extractor,
// relevance filter and summarizer into the query and URL-list entry
// points. It owns concurrency bounds, per-stage timeouts, the overall
// request deadline and the idempotency cache.
type Orchestrator struct {
	cfg Config

	registry         FeedLister
	feedFetcher      FeedFetcher
	articleExtractor ArticleExtractor
	keywordExtractor KeywordExtractor
	summarizer       Summarizer
	historyStore     HistoryStore // may be nil: persistence is opt-in per request via UserID
	mailSender       MailSender   // may be nil: mailing is opt-in per request via RecipientEmail
	clock            Clock

	cache *idempotencyCache
}

// Deps collects the orchestrator's injected collaborators. HistoryStore
// and MailSender may be left nil; a request that asks for persistence or
// mail without one configured simply skips that step.
type Deps struct {
	Registry         FeedLister
	FeedFetcher      FeedFetcher
	ArticleExtractor ArticleExtractor
	KeywordExtractor KeywordExtractor
	Summarizer       Summarizer
	HistoryStore     HistoryStore
	MailSender       MailSender
	Clock            Clock
}

func New(cfg Config, deps Deps) *Orchestrator {
	clock := deps.Clock
	if clock == nil {
		clock = systemClock{}
	}
	return &Orchestrator{
		cfg:              cfg,
		registry:         deps.Registry,
		feedFetcher:      deps.FeedFetcher,
		articleExtractor: deps.ArticleExtractor,
		keywordExtractor: deps.KeywordExtractor,
		summarizer:       deps.Summarizer,
		historyStore:     deps.HistoryStore,
		mailSender:       deps.MailSender,
		clock:            clock,
		cache:            newIdempotencyCache(cfg.IdempotencyCapacity, cfg.IdempotencyWindow, clock),
	}
}

// SummarizeByQuery runs the query path: keyword extraction, fan out over
// every registered feed, relevance filtering down to maxArticles, then the
// shared extract/summarize/persist/mail stages.
func (o *Orchestrator) SummarizeByQuery(ctx context.Context, req Request) (*entity.SummarizeResponse, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, newRequestError(ErrorInvalidRequest, "query is required")
	}

	key := idempotencyKey(req.UserID, []string{"query:" + req.Query}, req.Language)
	if cached, ok := o.cache.get(key); ok {
		return cached, nil
	}

	ctx, cancel := context.WithTimeout(ctx, o.cfg.RequestDeadline)
	defer cancel()

	keywords, err := o.keywordExtractor.Extract(ctx, req.Query, o.cfg.KeywordTimeout)
	if err != nil {
		return nil, newRequestError(ErrorKeywordEmpty, err.Error())
	}

	sources := o.registry.List()
	if len(sources) == 0 {
		return nil, newRequestError(ErrorNoFeedsConfigured, "no feed sources configured")
	}

	entries, feedErrs := o.fetchAllFeeds(ctx, sources)

	maxArticles := clampMaxArticles(req.MaxArticles, o.cfg.MaxArticlesHard)
	var selected []entity.FeedEntry
	if maxArticles > 0 {
		selected = relevancefilter.Filter(entries, keywords, maxArticles)
	}

	resp, rerr := o.runRest(ctx, selected, &keywords, feedErrs, req, maxArticles)
	if rerr != nil {
		return nil, rerr
	}
	o.cache.put(key, resp)
	return resp, nil
}

// SummarizeByRSS runs the URL-list path: fetches any given RSS URLs,
// unions their entries with any directly given article URLs (treated as
// pre-selected), skipping keyword extraction and relevance filtering
// entirely, then the shared extract/summarize/persist/mail stages.
func (o *Orchestrator) SummarizeByRSS(ctx context.Context, req Request) (*entity.SummarizeResponse, error) {
	if len(req.RSSURLs) == 0 && len(req.ArticleURLs) == 0 {
		return nil, newRequestError(ErrorInvalidRequest, "at least one rssURL or articleURL is required")
	}

	key := idempotencyKey(req.UserID, append(append([]string{}, req.RSSURLs...), req.ArticleURLs...), req.Language)
	if cached, ok := o.cache.get(key); ok {
		return cached, nil
	}

	ctx, cancel := context.WithTimeout(ctx, o.cfg.RequestDeadline)
	defer cancel()

	var entries []entity.FeedEntry
	var feedErrs []entity.PipelineError

	if len(req.RSSURLs) > 0 {
		sources := make([]entity.FeedSource, len(req.RSSURLs))
		for i, u := range req.RSSURLs {
			sources[i] = entity.FeedSource{Name: u, Category: entity.CategoryGeneral, RSSURL: u}
		}
		entries, feedErrs = o.fetchAllFeeds(ctx, sources)
	}

	for _, u := range req.ArticleURLs {
		entries = append(entries, entity.FeedEntry{
			Title:  u,
			Link:   u,
			Source: entity.FeedSource{Name: u, Category: entity.CategoryGeneral, RSSURL: u},
		})
	}

	maxArticles := clampMaxArticles(req.MaxArticles, o.cfg.MaxArticlesHard)
	if maxArticles < len(entries) {
		entries = entries[:maxArticles]
	}

	resp, rerr := o.runRest(ctx, entries, nil, feedErrs, req, maxArticles)
	if rerr != nil {
		return nil, rerr
	}
	o.cache.put(key, resp)
	return resp, nil
}

// runRest is the tail shared by both entry paths: extract, summarize,
// optionally persist and mail, then assemble the response.
func (o *Orchestrator) runRest(ctx context.Context, entries []entity.FeedEntry, keywords *entity.KeywordSet, priorErrors []entity.PipelineError, req Request, maxArticles int) (*entity.SummarizeResponse, error) {
	errs := append([]entity.PipelineError{}, priorErrors...)

	articles, extractErrs := o.extractAll(ctx, entries)
	errs = append(errs, extractErrs...)

	summarized, sumErrs := o.summarizeAll(ctx, articles, req.Language, req.CustomPrompt)
	errs = append(errs, sumErrs...)

	if req.UserID != "" {
		persistErrs := o.persistAll(ctx, req.UserID, summarized, keywordTerms(keywords))
		errs = append(errs, persistErrs...)
	}

	if req.RecipientEmail != "" && len(summarized) > 0 {
		if err := o.mailDigest(ctx, req.RecipientEmail, summarized); err != nil {
			errs = append(errs, entity.PipelineError{
				Stage:   entity.StageMail,
				Kind:    entity.PipelineErrorMail,
				Message: err.Error(),
			})
		}
	}

	if len(summarized) == 0 && maxArticles != 0 {
		return nil, newRequestError(ErrorNoResults, "no articles could be summarized")
	}

	results := make([]entity.ArticleResult, len(summarized))
	for i, sa := range summarized {
		results[i] = entity.ArticleResult{
			Title:    sa.Article.Title,
			URL:      sa.Article.URL,
			Source:   sa.Article.Source.Name,
			Summary:  sa.Summary,
			Language: sa.SummaryLanguage,
			Category: sa.Article.Source.Category,
		}
	}

	resp := &entity.SummarizeResponse{
		Success:       true,
		Articles:      results,
		TotalArticles: len(results),
		Partial:       len(errs) > 0,
		Errors:        errs,
		ProcessedAt:   o.clock.Now(),
	}
	if keywords != nil {
		resp.ExtractedKeywords = keywords.Terms
	}
	return resp, nil
}

func keywordTerms(keywords *entity.KeywordSet) []string {
	if keywords == nil {
		return nil
	}
	return keywords.Terms
}
