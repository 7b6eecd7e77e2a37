// Package llmsummarizer implements the LLM Summarizer component (C6):
// turning an extracted Article into a SummarizedArticle through a safe,
// validated LLM call, generalizing the teacher's fixed-language Claude and
// OpenAI summarizers to the spec's language/custom-prompt contract.
package llmsummarizer

import (
	"context"
	"errors"
	"time"

	"catchup-feed/internal/domain/entity"
	"catchup-feed/internal/llmclient"
)

// maxValidationAttempts is the number of times the LLM is asked to
// produce a valid summary before giving up: one initial attempt plus one
// retry on a validation failure, per spec.
const maxValidationAttempts = 2

// Summarizer produces a SummarizedArticle from an Article.
type Summarizer struct {
	completer llmclient.Completer
	model     string
	softCap   int
	hardCap   int
}

// New builds a Summarizer backed by completer. model is recorded on the
// resulting SummarizedArticle for auditability. Body truncation uses the
// documented BODY_SOFT_CAP/BODY_HARD_CAP defaults; use NewWithCaps to
// override them from configuration.
func New(completer llmclient.Completer, model string) *Summarizer {
	return NewWithCaps(completer, model, softTruncateLimit, hardTruncateLimit)
}

// NewWithCaps builds a Summarizer with explicit body truncation caps,
// wired from CoreConfig's BODY_SOFT_CAP/BODY_HARD_CAP.
func NewWithCaps(completer llmclient.Completer, model string, softCap, hardCap int) *Summarizer {
	return &Summarizer{completer: completer, model: model, softCap: softCap, hardCap: hardCap}
}

// Summarize implements the C6 contract.
func (s *Summarizer) Summarize(ctx context.Context, article entity.Article, language entity.LanguageHint, customPrompt string, deadline time.Duration) (*entity.SummarizedArticle, error) {
	if len(customPrompt) > maxCustomPrompt {
		return nil, errTooLarge(nil)
	}

	ctx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	system := systemPromptFor(languageName(language))
	user := buildUserPrompt(customPrompt, article.Body, s.softCap, s.hardCap)

	var lastErr error
	for attempt := 1; attempt <= maxValidationAttempts; attempt++ {
		summary, err := s.completer.Complete(ctx, system, user)
		if err != nil {
			return nil, classify(ctx, err)
		}

		candidate := &entity.SummarizedArticle{
			Article:         article,
			Summary:         summary,
			SummaryLanguage: language,
			Model:           s.model,
			ProducedAt:      time.Now(),
		}

		valErr := candidate.Validate(system)
		if valErr == nil {
			return candidate, nil
		}
		lastErr = valErr
	}

	return nil, errInvalid(lastErr)
}

func languageName(hint entity.LanguageHint) string {
	switch hint {
	case entity.LanguageKorean:
		return "Korean"
	case entity.LanguageEnglish:
		return "English"
	default:
		return "Korean"
	}
}

// classify maps a completer error to the C6 error taxonomy. Network/5xx
// errors are already retried inside the completer's own retry.WithBackoff
// loop, so by the time an error reaches here it is terminal.
func classify(ctx context.Context, err error) *SummarizeError {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errTimeout(err)
	}
	if isRateLimitError(err) {
		return errRateLimited(err)
	}
	return errUnavailable(err)
}
