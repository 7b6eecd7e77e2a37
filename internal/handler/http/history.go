package http

import (
	"context"
	"net/http"
	"strconv"

	"catchup-feed/internal/domain/entity"
	"catchup-feed/internal/handler/http/respond"
	"catchup-feed/internal/historystore"
)

// HistoryStore is the subset of historystore.Store the HTTP layer reads
// from directly: paginated history lookup and feedback/click recording.
type HistoryStore interface {
	GetHistory(ctx context.Context, userID string, page, perPage int, language entity.LanguageHint) (historystore.HistoryPage, error)
	RecordFeedback(ctx context.Context, record entity.FeedbackRecord) error
	RecordRecommendationClick(ctx context.Context, userID, articleURL string) error
}

const (
	defaultHistoryPerPage = 20
	maxHistoryPerPage     = 100
)

// HistoryHandler serves GET /api/v1/history/{userID}.
type HistoryHandler struct {
	Store HistoryStore
}

func (h *HistoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respond.Error(w, http.StatusMethodNotAllowed, errMethodNotAllowed)
		return
	}

	userID := r.PathValue("userID")
	if userID == "" {
		respond.Error(w, http.StatusBadRequest, errMissingUserID)
		return
	}

	page := parseIntQuery(r, "page", 1)
	if page < 1 {
		page = 1
	}
	perPage := parseIntQuery(r, "perPage", defaultHistoryPerPage)
	if perPage < 1 {
		perPage = defaultHistoryPerPage
	}
	if perPage > maxHistoryPerPage {
		perPage = maxHistoryPerPage
	}

	language := entity.LanguageHint(r.URL.Query().Get("language"))

	page2, err := h.Store.GetHistory(r.Context(), userID, page, perPage, language)
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	respond.JSON(w, http.StatusOK, page2)
}

// FeedbackHandler serves POST /api/v1/feedback.
type FeedbackHandler struct {
	Store HistoryStore
}

func (h *FeedbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respond.Error(w, http.StatusMethodNotAllowed, errMethodNotAllowed)
		return
	}

	var record entity.FeedbackRecord
	if err := decodeJSON(r, &record); err != nil {
		respond.Error(w, http.StatusBadRequest, err)
		return
	}
	if err := record.Validate(); err != nil {
		respond.Error(w, http.StatusBadRequest, err)
		return
	}

	if err := h.Store.RecordFeedback(r.Context(), record); err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	respond.JSON(w, http.StatusCreated, record)
}

func parseIntQuery(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
