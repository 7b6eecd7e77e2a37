// Package keywordextractor implements the Keyword Extractor component (C4):
// turning a free-text user query into a KeywordSet, preferring an LLM call
// and falling back to a deterministic heuristic when the LLM is unusable
// or unavailable.
package keywordextractor

import (
	"context"
	"strings"
	"time"

	"catchup-feed/internal/domain/entity"
	"catchup-feed/internal/llmclient"
)

const systemPrompt = "You extract 3-7 salient search keywords from a user query. " +
	"Reply as a comma-separated list, no commentary."

const (
	maxReplyKeywords = 7
	heuristicTopN    = 10
)

// Extractor produces a KeywordSet from a user query.
type Extractor struct {
	completer llmclient.Completer
}

// New builds an Extractor. completer may be nil, in which case every call
// falls back directly to the heuristic tokenizer.
func New(completer llmclient.Completer) *Extractor {
	return &Extractor{completer: completer}
}

// Extract implements the C4 contract. It never returns a KeywordSet with
// zero terms: if both the LLM path and the heuristic fallback yield
// nothing, it returns entity.ErrKeywordEmpty.
func (e *Extractor) Extract(ctx context.Context, query string, deadline time.Duration) (entity.KeywordSet, error) {
	hint := entity.LanguageAuto
	if looksKorean(query) {
		hint = entity.LanguageKorean
	}

	clean, usable := sanitize(query)
	if usable && e.completer != nil {
		ctx, cancel := context.WithTimeout(ctx, deadline)
		terms, err := e.tryLLM(ctx, clean)
		cancel()
		if err == nil {
			if ks, err := entity.NewKeywordSet(terms, hint); err == nil {
				return ks, nil
			}
		}
	}

	terms := heuristicKeywords(query, heuristicTopN)
	return entity.NewKeywordSet(terms, hint)
}

func (e *Extractor) tryLLM(ctx context.Context, cleanQuery string) ([]string, error) {
	reply, err := e.completer.Complete(ctx, systemPrompt, cleanQuery)
	if err != nil {
		return nil, err
	}
	return parseReply(reply), nil
}

// parseReply splits a comma-separated LLM reply into trimmed, non-empty
// terms, capped to the 3-7 keywords the prompt asked for.
func parseReply(reply string) []string {
	parts := strings.Split(reply, ",")
	terms := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t == "" {
			continue
		}
		terms = append(terms, t)
		if len(terms) == maxReplyKeywords {
			break
		}
	}
	return terms
}
