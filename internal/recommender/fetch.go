package recommender

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"catchup-feed/internal/domain/entity"
	"catchup-feed/internal/feedfetcher"
)

// fetchBounded fetches every source with at most cfg.FetchParallelism
// concurrent requests, truncating each source's entries to
// cfg.CandidatesPerSource. A failing source is skipped silently: the
// recommender degrades to fewer candidates rather than failing the
// whole recommendation request.
func (r *Recommender) fetchBounded(ctx context.Context, sources []entity.FeedSource) ([]entity.FeedEntry, error) {
	sem := make(chan struct{}, r.cfg.FetchParallelism)
	eg, egCtx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	var entries []entity.FeedEntry

	for _, src := range sources {
		src := src
		eg.Go(func() error {
			sem <- struct{}{}
			defer func() { <-sem }()

			got, result := r.fetcher.Fetch(egCtx, src, r.cfg.FetchTimeout)
			if result.Outcome != feedfetcher.OutcomeOk {
				return nil
			}
			if r.cfg.CandidatesPerSource > 0 && len(got) > r.cfg.CandidatesPerSource {
				got = got[:r.cfg.CandidatesPerSource]
			}

			mu.Lock()
			entries = append(entries, got...)
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}
