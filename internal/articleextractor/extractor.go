package articleextractor

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"github.com/sony/gobreaker"

	"catchup-feed/internal/domain/entity"
	"catchup-feed/internal/observability/metrics"
	"catchup-feed/internal/resilience/circuitbreaker"
	"catchup-feed/internal/resilience/retry"
)

const minBodyLength = 100

// Extractor implements the Article Extractor component (C3).
type Extractor struct {
	client         *http.Client
	cfg            Config
	adPattern      *regexp.Regexp
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// New builds an Extractor from cfg, which must already be Validate()'d.
func New(client *http.Client, cfg Config) *Extractor {
	if client == nil {
		client = &http.Client{}
	}
	e := &Extractor{
		cfg:            cfg,
		adPattern:      regexp.MustCompile(cfg.AdClassPattern),
		circuitBreaker: circuitbreaker.New(circuitbreaker.WebScraperConfig()),
		retryConfig:    retry.WebScraperConfig(),
	}
	e.client = &http.Client{
		Transport: client.Transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= cfg.MaxRedirects {
				return http.ErrUseLastResponse
			}
			if err := entity.ValidateURL(req.URL.String()); err != nil {
				return err
			}
			return nil
		},
	}
	return e
}

// Extract fetches articleURL and returns an Article whose body meets the
// minimum length invariant, or an *ExtractionFailure otherwise. It never
// panics and never returns a partially-valid Article.
func (e *Extractor) Extract(ctx context.Context, articleURL string, deadline time.Duration) (*entity.Article, error) {
	if err := entity.ValidateURL(articleURL); err != nil {
		return nil, failUnparseable(err)
	}

	ctx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	start := time.Now()
	var html []byte
	var failure *ExtractionFailure

	retryErr := retry.WithBackoff(ctx, e.retryConfig, func() error {
		cbResult, err := e.circuitBreaker.Execute(func() (interface{}, error) {
			return e.doFetch(ctx, articleURL)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				failure = failNetwork(err)
				return nil
			}
			var ef *ExtractionFailure
			if errors.As(err, &ef) {
				failure = ef
			}
			return err
		}
		html = cbResult.([]byte)
		failure = nil
		return nil
	})

	if retryErr != nil {
		metrics.RecordContentFetchFailed(time.Since(start))
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, failTimeout(retryErr)
		}
		if failure != nil {
			return nil, failure
		}
		return nil, failNetwork(retryErr)
	}

	metrics.RecordContentFetchSuccess(time.Since(start), len(html))
	return e.parse(html, articleURL)
}

func (e *Extractor) doFetch(ctx context.Context, articleURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, articleURL, nil)
	if err != nil {
		return nil, failUnparseable(err)
	}
	req.Header.Set("User-Agent", randomUserAgent())
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, failNetwork(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, failHTTP(resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, e.cfg.MaxBodySize))
	if err != nil {
		return nil, failNetwork(err)
	}
	return body, nil
}

func (e *Extractor) parse(html []byte, articleURL string) (*entity.Article, error) {
	parsedURL, _ := url.Parse(articleURL)

	body := ""
	if art, err := readability.FromReader(bytes.NewReader(html), parsedURL); err == nil {
		body = normalizeText(art.TextContent)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		if len(body) >= minBodyLength {
			return e.finish(body, articleURL, "")
		}
		return nil, failUnparseable(err)
	}

	stripNoise(doc, e.adPattern)
	title := extractTitle(doc)

	if len(body) < minBodyLength {
		body = selectBody(doc, e.cfg.BodySelectors, minBodyLength)
	}

	if len(body) < minBodyLength {
		return nil, failBodyTooShort()
	}

	return e.finish(body, articleURL, title)
}

func (e *Extractor) finish(body, articleURL, title string) (*entity.Article, error) {
	article := &entity.Article{
		Title:     title,
		URL:       articleURL,
		Body:      body,
		FetchedAt: time.Now(),
	}
	return article, nil
}
