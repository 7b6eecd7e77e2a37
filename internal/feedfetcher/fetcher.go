package feedfetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"mime"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/sony/gobreaker"

	"catchup-feed/internal/domain/entity"
	"catchup-feed/internal/observability/metrics"
	"catchup-feed/internal/resilience/circuitbreaker"
	"catchup-feed/internal/resilience/retry"
)

const maxRedirects = 5

// userAgents is rotated per request to avoid feed-side throttling that a
// single fixed UA would trigger.
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36",
	"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:124.0) Gecko/20100101 Firefox/124.0",
}

func randomUserAgent() string {
	return userAgents[rand.Intn(len(userAgents))]
}

// errCharsetUnresolvable is returned by doFetch when no candidate charset
// decodes the body into well-formed text. It is intentionally not a
// net.Error or *retry.HTTPError, so retry.IsRetryable treats it as fatal.
var errCharsetUnresolvable = errors.New("no charset decoded the feed body")

// errFeedParse wraps any gofeed parse failure so classify can recognize it
// regardless of which concrete error gofeed returned.
var errFeedParse = errors.New("feed parse failed")

// Fetcher implements the Feed Fetcher component (C2): it downloads and
// parses a single FeedSource's RSS/Atom feed, returning normalized
// FeedEntry values and a Result describing the outcome.
type Fetcher struct {
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// New builds a Fetcher. client's Timeout, if any, is superseded per-call
// by the deadline passed to Fetch.
func New(client *http.Client) *Fetcher {
	if client == nil {
		client = &http.Client{}
	}
	return &Fetcher{
		client: &http.Client{
			Transport: client.Transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return http.ErrUseLastResponse
				}
				return nil
			},
		},
		circuitBreaker: circuitbreaker.New(circuitbreaker.FeedFetchConfig()),
		retryConfig:    retry.FeedFetchConfig(),
	}
}

// Fetch downloads and parses source's feed, honoring deadline as a hard
// cutoff. A non-Ok Result is never fatal: callers should treat it as zero
// entries for this source and continue.
func (f *Fetcher) Fetch(ctx context.Context, source entity.FeedSource, deadline time.Duration) ([]entity.FeedEntry, Result) {
	ctx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	start := time.Now()
	var entries []entity.FeedEntry
	var lastErr error

	retryErr := retry.WithBackoff(ctx, f.retryConfig, func() error {
		cbResult, err := f.circuitBreaker.Execute(func() (interface{}, error) {
			return f.doFetch(ctx, source)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("feed fetch circuit breaker open",
					slog.String("rss_url", source.RSSURL),
					slog.String("state", f.circuitBreaker.State().String()))
			}
			lastErr = err
			return err
		}

		entries = cbResult.([]entity.FeedEntry)
		lastErr = nil
		return nil
	})

	if retryErr == nil {
		metrics.RecordFeedCrawl(source.Name, time.Since(start), len(entries))
		return entries, ok()
	}

	result := classify(ctx, lastErr)
	metrics.RecordFeedCrawlError(source.Name, string(result.Outcome))
	return nil, result
}

// classify maps the terminal error from the retry loop onto a Result.
func classify(ctx context.Context, err error) Result {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return timeout(err)
	}

	var httpErr *retry.HTTPError
	if errors.As(err, &httpErr) {
		return httpError(httpErr.StatusCode)
	}
	if errors.Is(err, errCharsetUnresolvable) {
		return charsetUnresolvable()
	}
	if errors.Is(err, errFeedParse) {
		return parseError(err)
	}

	return networkError(err)
}

func (f *Fetcher) doFetch(ctx context.Context, source entity.FeedSource) ([]entity.FeedEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source.RSSURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", randomUserAgent())
	req.Header.Set("Accept", "application/rss+xml, application/xml, text/xml, */*")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, &retry.HTTPError{StatusCode: resp.StatusCode, Message: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, err
	}

	contentTypeCharset := ""
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		if _, params, err := mime.ParseMediaType(ct); err == nil {
			contentTypeCharset = params["charset"]
		}
	}

	decoded, decodedOK := decodeBody(body, contentTypeCharset)
	if !decodedOK {
		return nil, errCharsetUnresolvable
	}

	fp := gofeed.NewParser()
	feed, err := fp.ParseString(decoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errFeedParse, err)
	}

	return toFeedEntries(feed, source), nil
}

func toFeedEntries(feed *gofeed.Feed, source entity.FeedSource) []entity.FeedEntry {
	entries := make([]entity.FeedEntry, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item.Link == "" || item.Title == "" {
			continue
		}

		var publishedAt *time.Time
		if item.PublishedParsed != nil {
			publishedAt = item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			publishedAt = item.UpdatedParsed
		}

		description := item.Description
		if description == "" {
			description = item.Content
		}

		entries = append(entries, entity.FeedEntry{
			Title:          item.Title,
			Link:           canonicalizeLink(item.Link),
			PublishedAt:    publishedAt,
			Source:         source,
			SummarySnippet: buildSnippet(description),
		})
	}
	return entries
}
