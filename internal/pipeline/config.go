// Package pipeline wires the feed registry, fetcher, extractor, keyword
// extractor, relevance filter and LLM summarizer into the two request
// flows (query-driven and URL-list-driven) that make up the service's
// core concurrency model.
package pipeline

import (
	"log/slog"
	"time"

	"catchup-feed/internal/pkg/config"
)

// Config holds every tunable named in the configuration table: stage
// parallelism caps, per-stage timeouts, the overall request deadline, the
// idempotency cache's size and window, and the LLM input truncation caps.
type Config struct {
	FeedParallelism     int
	ArticleParallelism  int
	LLMParallelism      int
	FetchTimeout        time.Duration
	ExtractTimeout      time.Duration
	LLMTimeout          time.Duration
	KeywordTimeout      time.Duration
	RequestDeadline     time.Duration
	MaxArticlesHard     int
	BodySoftCap         int
	BodyHardCap         int
	IdempotencyWindow   time.Duration
	IdempotencyCapacity int
	LLMModel            string
}

// DefaultConfig returns the documented defaults. KeywordTimeout has no
// named configuration key; it is sized off LLM_TIMEOUT's ballpark since
// keyword extraction is a single short LLM round trip, not a full summary.
func DefaultConfig() Config {
	return Config{
		FeedParallelism:     8,
		ArticleParallelism:  6,
		LLMParallelism:      3,
		FetchTimeout:        15 * time.Second,
		ExtractTimeout:      20 * time.Second,
		LLMTimeout:          60 * time.Second,
		KeywordTimeout:      10 * time.Second,
		RequestDeadline:     300 * time.Second,
		MaxArticlesHard:     50,
		BodySoftCap:         4000,
		BodyHardCap:         6000,
		IdempotencyWindow:   60 * time.Second,
		IdempotencyCapacity: 256,
		LLMModel:            "gpt-3.5-turbo",
	}
}

// configMetrics tracks fallback/validation behavior for LoadConfigFromEnv,
// mirroring internal/infra/worker's use of the same shared metrics factory.
var configMetrics = config.NewConfigMetrics("pipeline")

// LoadConfigFromEnv loads pipeline configuration from the environment
// variables named in the configuration table, falling back to
// DefaultConfig's value (and logging a warning) for any key that is
// unset or fails validation. It never returns an error: an
// unconfigurable environment still produces a usable, documented
// default configuration.
func LoadConfigFromEnv(logger *slog.Logger) Config {
	cfg := DefaultConfig()
	fallbackApplied := false

	loadInt := func(envKey, field string, current int, min, max int) int {
		result := config.LoadEnvInt(envKey, current, func(v int) error {
			return config.ValidateIntRange(v, min, max)
		})
		if result.FallbackApplied {
			fallbackApplied = true
			configMetrics.RecordValidationError(field)
			configMetrics.RecordFallback(field, "default")
			for _, warning := range result.Warnings {
				logger.Warn("pipeline configuration fallback applied",
					slog.String("field", field), slog.String("warning", warning))
			}
		}
		return result.Value.(int)
	}

	loadDuration := func(envKey, field string, current time.Duration, min, max time.Duration) time.Duration {
		result := config.LoadEnvDuration(envKey, current, func(d time.Duration) error {
			return config.ValidateDuration(d, min, max)
		})
		if result.FallbackApplied {
			fallbackApplied = true
			configMetrics.RecordValidationError(field)
			configMetrics.RecordFallback(field, "default")
			for _, warning := range result.Warnings {
				logger.Warn("pipeline configuration fallback applied",
					slog.String("field", field), slog.String("warning", warning))
			}
		}
		return result.Value.(time.Duration)
	}

	cfg.FeedParallelism = loadInt("FEED_PARALLELISM", "feed_parallelism", cfg.FeedParallelism, 1, 64)
	cfg.ArticleParallelism = loadInt("ARTICLE_PARALLELISM", "article_parallelism", cfg.ArticleParallelism, 1, 64)
	cfg.LLMParallelism = loadInt("LLM_PARALLELISM", "llm_parallelism", cfg.LLMParallelism, 1, 32)
	cfg.MaxArticlesHard = loadInt("MAX_ARTICLES_HARD", "max_articles_hard", cfg.MaxArticlesHard, 1, 500)
	cfg.BodySoftCap = loadInt("BODY_SOFT_CAP", "body_soft_cap", cfg.BodySoftCap, 100, 100000)
	cfg.BodyHardCap = loadInt("BODY_HARD_CAP", "body_hard_cap", cfg.BodyHardCap, 100, 100000)
	cfg.IdempotencyCapacity = loadInt("IDEMPOTENCY_CAPACITY", "idempotency_capacity", cfg.IdempotencyCapacity, 16, 65536)

	cfg.FetchTimeout = loadDuration("FETCH_TIMEOUT", "fetch_timeout", cfg.FetchTimeout, time.Second, 5*time.Minute)
	cfg.ExtractTimeout = loadDuration("EXTRACT_TIMEOUT", "extract_timeout", cfg.ExtractTimeout, time.Second, 5*time.Minute)
	cfg.LLMTimeout = loadDuration("LLM_TIMEOUT", "llm_timeout", cfg.LLMTimeout, time.Second, 10*time.Minute)
	cfg.RequestDeadline = loadDuration("REQUEST_DEADLINE", "request_deadline", cfg.RequestDeadline, time.Second, 30*time.Minute)
	cfg.IdempotencyWindow = loadDuration("IDEMPOTENCY_WINDOW", "idempotency_window", cfg.IdempotencyWindow, time.Second, time.Hour)

	cfg.LLMModel = config.LoadEnvString("LLM_MODEL", cfg.LLMModel)

	configMetrics.SetFallbackActive("", fallbackApplied)
	configMetrics.RecordLoadTimestamp()

	return cfg
}

// clampMaxArticles resolves the caller's requested article count against
// the hard cap. A negative value means "unspecified", defaulting to the
// hard cap; zero is a deliberate, distinct "summarize nothing" request
// (see Request.MaxArticles) and is returned as-is.
func clampMaxArticles(requested, hardCap int) int {
	if requested < 0 {
		return hardCap
	}
	if requested > hardCap {
		return hardCap
	}
	return requested
}
