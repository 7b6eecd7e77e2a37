package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"catchup-feed/internal/domain/entity"
	"catchup-feed/internal/handler/http/respond"
	"catchup-feed/internal/observability/metrics"
	"catchup-feed/internal/pipeline"
)

// Orchestrator is the subset of *pipeline.Orchestrator the HTTP layer
// drives: the query-driven and RSS/URL-list-driven request entry points.
type Orchestrator interface {
	SummarizeByQuery(ctx context.Context, req pipeline.Request) (*entity.SummarizeResponse, error)
	SummarizeByRSS(ctx context.Context, req pipeline.Request) (*entity.SummarizeResponse, error)
}

// SummarizeHandler serves the combined query/RSS summarization endpoint.
// The request body's Mode field selects which orchestrator entry point
// runs; everything else maps directly onto pipeline.Request.
type SummarizeHandler struct {
	Orchestrator Orchestrator
}

type summarizeRequestBody struct {
	Mode           string              `json:"mode"` // "query" or "rss"
	Query          string              `json:"query,omitempty"`
	RSSURLs        []string            `json:"rssUrls,omitempty"`
	ArticleURLs    []string            `json:"articleUrls,omitempty"`
	Language       entity.LanguageHint `json:"language,omitempty"`
	UserID         string              `json:"userId,omitempty"`
	RecipientEmail string              `json:"recipientEmail,omitempty"`
	MaxArticles    *int                `json:"maxArticles,omitempty"`
	CustomPrompt   string              `json:"customPrompt,omitempty"`
}

// ServeHTTP decodes a summarize request, dispatches it to the
// orchestrator and returns the resulting entity.SummarizeResponse as JSON.
func (h *SummarizeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respond.Error(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}

	var body summarizeRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respond.Error(w, http.StatusBadRequest, errors.New("invalid JSON request body"))
		return
	}

	maxArticles := -1
	if body.MaxArticles != nil {
		maxArticles = *body.MaxArticles
	}

	req := pipeline.Request{
		Query:          body.Query,
		RSSURLs:        body.RSSURLs,
		ArticleURLs:    body.ArticleURLs,
		Language:       body.Language,
		UserID:         body.UserID,
		RecipientEmail: body.RecipientEmail,
		MaxArticles:    maxArticles,
		CustomPrompt:   body.CustomPrompt,
	}

	var (
		resp *entity.SummarizeResponse
		err  error
	)
	start := time.Now()
	switch body.Mode {
	case "query":
		resp, err = h.Orchestrator.SummarizeByQuery(r.Context(), req)
	case "rss", "":
		resp, err = h.Orchestrator.SummarizeByRSS(r.Context(), req)
	default:
		respond.Error(w, http.StatusBadRequest, errors.New("mode must be 'query' or 'rss'"))
		return
	}
	elapsed := time.Since(start)

	if err != nil {
		metrics.RecordArticleSummarized(false)
		var reqErr *pipeline.RequestError
		if errors.As(err, &reqErr) {
			respond.Error(w, http.StatusBadRequest, reqErr)
			return
		}
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	metrics.RecordSummarizationDuration(elapsed)
	for range resp.Articles {
		metrics.RecordArticleSummarized(true)
	}
	for range resp.Errors {
		metrics.RecordArticleSummarized(false)
	}

	status := http.StatusOK
	if !resp.Success {
		status = http.StatusUnprocessableEntity
	}
	respond.JSON(w, status, resp)
}
