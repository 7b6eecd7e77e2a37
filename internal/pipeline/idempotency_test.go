package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"catchup-feed/internal/domain/entity"
)

func TestIdempotencyKey_OrderInsensitive(t *testing.T) {
	a := idempotencyKey("u1", []string{"https://x/2", "https://x/1"}, entity.LanguageEnglish)
	b := idempotencyKey("u1", []string{"https://x/1", "https://x/2"}, entity.LanguageEnglish)
	assert.Equal(t, a, b)
}

func TestIdempotencyKey_DifferentUserDifferentKey(t *testing.T) {
	a := idempotencyKey("u1", []string{"https://x/1"}, entity.LanguageEnglish)
	b := idempotencyKey("u2", []string{"https://x/1"}, entity.LanguageEnglish)
	assert.NotEqual(t, a, b)
}

func TestIdempotencyCache_GetMiss(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	c := newIdempotencyCache(10, time.Minute, clock)
	_, ok := c.get("missing")
	assert.False(t, ok)
}

func TestIdempotencyCache_PutThenGet(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	c := newIdempotencyCache(10, time.Minute, clock)
	resp := &entity.SummarizeResponse{Success: true}
	c.put("k", resp)

	got, ok := c.get("k")
	assert.True(t, ok)
	assert.Same(t, resp, got)
}

func TestIdempotencyCache_ExpiresAfterWindow(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	c := newIdempotencyCache(10, time.Minute, clock)
	c.put("k", &entity.SummarizeResponse{Success: true})

	clock.t = clock.t.Add(61 * time.Second)
	_, ok := c.get("k")
	assert.False(t, ok)
}

func TestIdempotencyCache_EvictsOldestBeyondCapacity(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	c := newIdempotencyCache(2, time.Minute, clock)
	c.put("a", &entity.SummarizeResponse{})
	c.put("b", &entity.SummarizeResponse{})
	c.put("c", &entity.SummarizeResponse{})

	_, ok := c.get("a")
	assert.False(t, ok, "oldest entry should have been evicted")
	_, ok = c.get("b")
	assert.True(t, ok)
	_, ok = c.get("c")
	assert.True(t, ok)
}

func TestIdempotencyCache_GetRefreshesRecency(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	c := newIdempotencyCache(2, time.Minute, clock)
	c.put("a", &entity.SummarizeResponse{})
	c.put("b", &entity.SummarizeResponse{})

	// touch "a" so it becomes the most recently used
	_, _ = c.get("a")
	c.put("c", &entity.SummarizeResponse{})

	_, ok := c.get("b")
	assert.False(t, ok, "b should have been evicted instead of a")
	_, ok = c.get("a")
	assert.True(t, ok)
}
