package http

import (
	"context"
	"net/http"

	"catchup-feed/internal/domain/entity"
	"catchup-feed/internal/handler/http/respond"
	"catchup-feed/internal/observability/metrics"
)

const defaultRecommendationLimit = 10

// RecommenderService is the subset of *recommender.Recommender the HTTP
// layer drives.
type RecommenderService interface {
	Recommend(ctx context.Context, userID string, limit int) ([]entity.Recommendation, error)
}

// RecommendationHandler serves GET /api/v1/recommendations/{userID}.
type RecommendationHandler struct {
	Recommender RecommenderService
}

func (h *RecommendationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respond.Error(w, http.StatusMethodNotAllowed, errMethodNotAllowed)
		return
	}

	userID := r.PathValue("userID")
	if userID == "" {
		respond.Error(w, http.StatusBadRequest, errMissingUserID)
		return
	}

	limit := parseIntQuery(r, "limit", defaultRecommendationLimit)

	recs, err := h.Recommender.Recommend(r.Context(), userID, limit)
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	metrics.RecordRecommendationsServed(len(recs))
	respond.JSON(w, http.StatusOK, recs)
}

// RecommendationClickHandler serves POST /api/v1/recommendations/{userID}/click.
type RecommendationClickHandler struct {
	Store HistoryStore
}

type recommendationClickBody struct {
	ArticleURL string `json:"articleUrl"`
}

func (h *RecommendationClickHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respond.Error(w, http.StatusMethodNotAllowed, errMethodNotAllowed)
		return
	}

	userID := r.PathValue("userID")
	if userID == "" {
		respond.Error(w, http.StatusBadRequest, errMissingUserID)
		return
	}

	var body recommendationClickBody
	if err := decodeJSON(r, &body); err != nil {
		respond.Error(w, http.StatusBadRequest, err)
		return
	}
	if body.ArticleURL == "" {
		respond.Error(w, http.StatusBadRequest, errMissingArticleURL)
		return
	}

	if err := h.Store.RecordRecommendationClick(r.Context(), userID, body.ArticleURL); err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
