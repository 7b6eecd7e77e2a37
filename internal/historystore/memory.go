package historystore

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"catchup-feed/internal/domain/entity"
)

// MemoryStore is an in-process Store backed by plain slices, guarded by a
// mutex. Intended for tests and single-process deployments that don't need
// Postgres.
type MemoryStore struct {
	mu       sync.Mutex
	history  []entity.HistoryRecord
	feedback []entity.FeedbackRecord
	clicks   []recommendationClick
	nextID   int64
}

type recommendationClick struct {
	userID     string
	articleURL string
	clickedAt  time.Time
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Persist(_ context.Context, record entity.HistoryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	userID, url, second := record.DedupKey()
	for _, existing := range s.history {
		eUserID, eURL, eSecond := existing.DedupKey()
		if eUserID == userID && eURL == url && eSecond == second {
			return nil
		}
	}

	s.nextID++
	record.ID = strconv.FormatInt(s.nextID, 10)
	s.history = append(s.history, record)
	return nil
}

func (s *MemoryStore) GetHistory(_ context.Context, userID string, page, perPage int, language entity.LanguageHint) (HistoryPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	var matched []entity.HistoryRecord
	for _, r := range s.history {
		if r.UserID != userID {
			continue
		}
		if language != "" && r.SummaryLanguage != language {
			continue
		}
		matched = append(matched, r)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := len(matched)
	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	return HistoryPage{
		Records: append([]entity.HistoryRecord{}, matched[start:end]...),
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}, nil
}

func (s *MemoryStore) RecordFeedback(_ context.Context, record entity.FeedbackRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feedback = append(s.feedback, record)
	return nil
}

func (s *MemoryStore) RecordRecommendationClick(_ context.Context, userID, articleURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clicks = append(s.clicks, recommendationClick{userID: userID, articleURL: articleURL, clickedAt: time.Now()})
	return nil
}

func (s *MemoryStore) RecentByUser(_ context.Context, userID string, since time.Time) ([]entity.HistoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []entity.HistoryRecord
	for _, r := range s.history {
		if r.UserID == userID && !r.CreatedAt.Before(since) {
			matched = append(matched, r)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	return matched, nil
}

func (s *MemoryStore) KeywordsOfUser(ctx context.Context, userID string, sinceDays int) (map[string]int, error) {
	records, err := s.RecentByUser(ctx, userID, time.Now().AddDate(0, 0, -sinceDays))
	if err != nil {
		return nil, err
	}
	return keywordMultiset(records), nil
}

func (s *MemoryStore) CategoriesOfUser(ctx context.Context, userID string, sinceDays int) (map[entity.Category]int, error) {
	records, err := s.RecentByUser(ctx, userID, time.Now().AddDate(0, 0, -sinceDays))
	if err != nil {
		return nil, err
	}
	return categoryMultiset(records), nil
}
