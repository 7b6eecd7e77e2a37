package historystore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"catchup-feed/internal/domain/entity"
	"catchup-feed/internal/observability/metrics"
)

// PostgresStore is the database/sql-backed Store implementation.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore wraps an open *sql.DB (see internal/infra/db.Open).
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Persist(ctx context.Context, record entity.HistoryRecord) error {
	keywordsJSON, err := json.Marshal(record.Keywords)
	if err != nil {
		return fmt.Errorf("Persist: marshal keywords: %w", err)
	}

	const query = `
INSERT INTO summary_history
       (user_id, article_url, article_title, content_excerpt, summary_text,
        summary_language, original_length, summary_length, keywords_json,
        category, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (user_id, article_url, date_trunc('second', created_at)) DO NOTHING`

	defer recordDBQuery("persist_history", time.Now())
	_, err = s.db.ExecContext(ctx, query,
		record.UserID, record.ArticleURL, record.ArticleTitle, record.ContentExcerpt,
		record.SummaryText, string(record.SummaryLanguage), record.OriginalLength,
		record.SummaryLength, keywordsJSON, string(record.Category), record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("Persist: %w", err)
	}
	return nil
}

// recordDBQuery reports the elapsed time since start under operation. It is
// called via defer so failed queries are timed the same as successful ones.
func recordDBQuery(operation string, start time.Time) {
	metrics.RecordDBQuery(operation, time.Since(start))
}

func (s *PostgresStore) GetHistory(ctx context.Context, userID string, page, perPage int, language entity.LanguageHint) (HistoryPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}
	offset := (page - 1) * perPage

	var whereClauses = []string{"user_id = $1"}
	args := []interface{}{userID}
	if language != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("summary_language = $%d", len(args)+1))
		args = append(args, string(language))
	}
	where := strings.Join(whereClauses, " AND ")

	defer recordDBQuery("get_history", time.Now())

	var total int
	countQuery := `SELECT COUNT(*) FROM summary_history WHERE ` + where
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return HistoryPage{}, fmt.Errorf("GetHistory: count: %w", err)
	}

	limitArg := len(args) + 1
	offsetArg := len(args) + 2
	query := fmt.Sprintf(`
SELECT id, user_id, article_url, article_title, content_excerpt, summary_text,
       summary_language, original_length, summary_length, keywords_json,
       category, created_at
FROM summary_history
WHERE %s
ORDER BY created_at DESC
LIMIT $%d OFFSET $%d`, where, limitArg, offsetArg)

	rows, err := s.db.QueryContext(ctx, query, append(append([]interface{}{}, args...), perPage, offset)...)
	if err != nil {
		return HistoryPage{}, fmt.Errorf("GetHistory: query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := make([]entity.HistoryRecord, 0, perPage)
	for rows.Next() {
		record, err := scanHistoryRecord(rows)
		if err != nil {
			return HistoryPage{}, fmt.Errorf("GetHistory: scan: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return HistoryPage{}, fmt.Errorf("GetHistory: rows: %w", err)
	}

	return HistoryPage{Records: records, Total: total, Page: page, PerPage: perPage}, nil
}

func (s *PostgresStore) RecordFeedback(ctx context.Context, record entity.FeedbackRecord) error {
	const query = `
INSERT INTO feedback (user_id, article_url, rating, feedback_type, created_at)
VALUES ($1, $2, $3, $4, $5)`
	defer recordDBQuery("record_feedback", time.Now())
	_, err := s.db.ExecContext(ctx, query,
		record.UserID, record.ArticleURL, record.Rating, string(record.FeedbackType), record.CreatedAt)
	if err != nil {
		return fmt.Errorf("RecordFeedback: %w", err)
	}
	return nil
}

func (s *PostgresStore) RecordRecommendationClick(ctx context.Context, userID, articleURL string) error {
	const query = `INSERT INTO recommendation_clicks (user_id, article_url) VALUES ($1, $2)`
	defer recordDBQuery("record_recommendation_click", time.Now())
	_, err := s.db.ExecContext(ctx, query, userID, articleURL)
	if err != nil {
		return fmt.Errorf("RecordRecommendationClick: %w", err)
	}
	return nil
}

func (s *PostgresStore) RecentByUser(ctx context.Context, userID string, since time.Time) ([]entity.HistoryRecord, error) {
	const query = `
SELECT id, user_id, article_url, article_title, content_excerpt, summary_text,
       summary_language, original_length, summary_length, keywords_json,
       category, created_at
FROM summary_history
WHERE user_id = $1 AND created_at >= $2
ORDER BY created_at DESC`

	defer recordDBQuery("recent_by_user", time.Now())
	rows, err := s.db.QueryContext(ctx, query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("RecentByUser: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := make([]entity.HistoryRecord, 0, 32)
	for rows.Next() {
		record, err := scanHistoryRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("RecentByUser: scan: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (s *PostgresStore) KeywordsOfUser(ctx context.Context, userID string, sinceDays int) (map[string]int, error) {
	records, err := s.RecentByUser(ctx, userID, time.Now().AddDate(0, 0, -sinceDays))
	if err != nil {
		return nil, fmt.Errorf("KeywordsOfUser: %w", err)
	}
	return keywordMultiset(records), nil
}

func (s *PostgresStore) CategoriesOfUser(ctx context.Context, userID string, sinceDays int) (map[entity.Category]int, error) {
	records, err := s.RecentByUser(ctx, userID, time.Now().AddDate(0, 0, -sinceDays))
	if err != nil {
		return nil, fmt.Errorf("CategoriesOfUser: %w", err)
	}
	return categoryMultiset(records), nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanHistoryRecord(rows rowScanner) (entity.HistoryRecord, error) {
	var r entity.HistoryRecord
	var id int64
	var language, category string
	var keywordsJSON []byte

	if err := rows.Scan(&id, &r.UserID, &r.ArticleURL, &r.ArticleTitle, &r.ContentExcerpt,
		&r.SummaryText, &language, &r.OriginalLength, &r.SummaryLength, &keywordsJSON,
		&category, &r.CreatedAt); err != nil {
		return entity.HistoryRecord{}, err
	}

	r.ID = fmt.Sprintf("%d", id)
	r.SummaryLanguage = entity.LanguageHint(language)
	r.Category = entity.Category(category)
	if len(keywordsJSON) > 0 {
		if err := json.Unmarshal(keywordsJSON, &r.Keywords); err != nil {
			return entity.HistoryRecord{}, fmt.Errorf("unmarshal keywords: %w", err)
		}
	}
	return r, nil
}
