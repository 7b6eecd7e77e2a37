package pipeline

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_MatchesDocumentedDefaults(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 8, cfg.FeedParallelism)
	assert.Equal(t, 6, cfg.ArticleParallelism)
	assert.Equal(t, 3, cfg.LLMParallelism)
	assert.Equal(t, 15*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 20*time.Second, cfg.ExtractTimeout)
	assert.Equal(t, 60*time.Second, cfg.LLMTimeout)
	assert.Equal(t, 300*time.Second, cfg.RequestDeadline)
	assert.Equal(t, 50, cfg.MaxArticlesHard)
	assert.Equal(t, 4000, cfg.BodySoftCap)
	assert.Equal(t, 6000, cfg.BodyHardCap)
	assert.Equal(t, 60*time.Second, cfg.IdempotencyWindow)
	assert.Equal(t, "gpt-3.5-turbo", cfg.LLMModel)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestLoadConfigFromEnv_UsesDefaultsWhenUnset(t *testing.T) {
	cfg := LoadConfigFromEnv(testLogger())
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigFromEnv_AppliesOverrides(t *testing.T) {
	t.Setenv("FEED_PARALLELISM", "16")
	t.Setenv("LLM_TIMEOUT", "90s")
	t.Setenv("LLM_MODEL", "gpt-4o-mini")
	t.Setenv("BODY_SOFT_CAP", "5000")

	cfg := LoadConfigFromEnv(testLogger())

	assert.Equal(t, 16, cfg.FeedParallelism)
	assert.Equal(t, 90*time.Second, cfg.LLMTimeout)
	assert.Equal(t, "gpt-4o-mini", cfg.LLMModel)
	assert.Equal(t, 5000, cfg.BodySoftCap)
}

func TestLoadConfigFromEnv_FallsBackOnInvalidValue(t *testing.T) {
	t.Setenv("FEED_PARALLELISM", "not-a-number")
	t.Setenv("LLM_PARALLELISM", "999") // out of range, max 32

	cfg := LoadConfigFromEnv(testLogger())

	assert.Equal(t, DefaultConfig().FeedParallelism, cfg.FeedParallelism)
	assert.Equal(t, DefaultConfig().LLMParallelism, cfg.LLMParallelism)
}

func TestClampMaxArticles(t *testing.T) {
	assert.Equal(t, 50, clampMaxArticles(-1, 50))
	assert.Equal(t, 50, clampMaxArticles(100, 50))
	assert.Equal(t, 10, clampMaxArticles(10, 50))
	assert.Equal(t, 0, clampMaxArticles(0, 50))
}
