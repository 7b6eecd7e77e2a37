package historystore_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catchup-feed/internal/domain/entity"
	"catchup-feed/internal/historystore"
)

func sampleRecord() entity.HistoryRecord {
	return entity.HistoryRecord{
		UserID:          "u1",
		ArticleURL:      "https://example.com/a",
		ArticleTitle:    "Chips surge",
		ContentExcerpt:  "excerpt",
		SummaryText:     "summary",
		SummaryLanguage: entity.LanguageKorean,
		OriginalLength:  1000,
		SummaryLength:   200,
		Keywords:        []string{"chips", "exports"},
		Category:        entity.CategoryIT,
		CreatedAt:       time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestPostgresStore_Persist(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO summary_history")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	store := historystore.NewPostgresStore(db)
	err = store.Persist(context.Background(), sampleRecord())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Persist_PropagatesError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO summary_history")).
		WillReturnError(errors.New("connection refused"))

	store := historystore.NewPostgresStore(db)
	err = store.Persist(context.Background(), sampleRecord())
	require.Error(t, err)
}

func TestPostgresStore_GetHistory(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM summary_history")).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rec := sampleRecord()
	keywordsJSON := `["chips","exports"]`
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "article_url", "article_title", "content_excerpt",
		"summary_text", "summary_language", "original_length", "summary_length",
		"keywords_json", "category", "created_at",
	}).AddRow(1, rec.UserID, rec.ArticleURL, rec.ArticleTitle, rec.ContentExcerpt,
		rec.SummaryText, string(rec.SummaryLanguage), rec.OriginalLength, rec.SummaryLength,
		[]byte(keywordsJSON), string(rec.Category), rec.CreatedAt)

	mock.ExpectQuery(regexp.QuoteMeta("FROM summary_history")).
		WithArgs("u1", 20, 0).
		WillReturnRows(rows)

	store := historystore.NewPostgresStore(db)
	page, err := store.GetHistory(context.Background(), "u1", 1, 20, "")
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	require.Len(t, page.Records, 1)
	assert.Equal(t, rec.ArticleURL, page.Records[0].ArticleURL)
	assert.Equal(t, []string{"chips", "exports"}, page.Records[0].Keywords)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetHistory_FiltersByLanguage(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM summary_history")).
		WithArgs("u1", "ko").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta("FROM summary_history")).
		WithArgs("u1", "ko", 20, 0).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "article_url", "article_title", "content_excerpt",
			"summary_text", "summary_language", "original_length", "summary_length",
			"keywords_json", "category", "created_at",
		}))

	store := historystore.NewPostgresStore(db)
	page, err := store.GetHistory(context.Background(), "u1", 1, 20, entity.LanguageKorean)
	require.NoError(t, err)
	assert.Equal(t, 0, page.Total)
	assert.Empty(t, page.Records)
}

func TestPostgresStore_RecordFeedback(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO feedback")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	store := historystore.NewPostgresStore(db)
	err = store.RecordFeedback(context.Background(), entity.FeedbackRecord{
		UserID: "u1", ArticleURL: "https://example.com/a", Rating: 5,
		FeedbackType: entity.FeedbackPositive, CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_RecordRecommendationClick(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO recommendation_clicks")).
		WithArgs("u1", "https://example.com/a").
		WillReturnResult(sqlmock.NewResult(1, 1))

	store := historystore.NewPostgresStore(db)
	err = store.RecordRecommendationClick(context.Background(), "u1", "https://example.com/a")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_KeywordsOfUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	rows := sqlmock.NewRows([]string{
		"id", "user_id", "article_url", "article_title", "content_excerpt",
		"summary_text", "summary_language", "original_length", "summary_length",
		"keywords_json", "category", "created_at",
	}).AddRow(1, "u1", "https://x/1", "t", "e", "s", "ko", 10, 5,
		[]byte(`["chips","exports"]`), "it", time.Now()).
		AddRow(2, "u1", "https://x/2", "t2", "e2", "s2", "ko", 10, 5,
			[]byte(`["chips"]`), "economy", time.Now())

	mock.ExpectQuery(regexp.QuoteMeta("FROM summary_history")).WillReturnRows(rows)

	store := historystore.NewPostgresStore(db)
	keywords, err := store.KeywordsOfUser(context.Background(), "u1", 30)
	require.NoError(t, err)
	assert.Equal(t, 2, keywords["chips"])
	assert.Equal(t, 1, keywords["exports"])
}

func TestPostgresStore_CategoriesOfUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	rows := sqlmock.NewRows([]string{
		"id", "user_id", "article_url", "article_title", "content_excerpt",
		"summary_text", "summary_language", "original_length", "summary_length",
		"keywords_json", "category", "created_at",
	}).AddRow(1, "u1", "https://x/1", "t", "e", "s", "ko", 10, 5, []byte(`[]`), "it", time.Now())

	mock.ExpectQuery(regexp.QuoteMeta("FROM summary_history")).WillReturnRows(rows)

	store := historystore.NewPostgresStore(db)
	categories, err := store.CategoriesOfUser(context.Background(), "u1", 30)
	require.NoError(t, err)
	assert.Equal(t, 1, categories[entity.CategoryIT])
}

func TestPostgresStore_RecentByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	rec := sampleRecord()
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "article_url", "article_title", "content_excerpt",
		"summary_text", "summary_language", "original_length", "summary_length",
		"keywords_json", "category", "created_at",
	}).AddRow(1, rec.UserID, rec.ArticleURL, rec.ArticleTitle, rec.ContentExcerpt,
		rec.SummaryText, string(rec.SummaryLanguage), rec.OriginalLength, rec.SummaryLength,
		[]byte(`[]`), string(rec.Category), rec.CreatedAt)

	since := rec.CreatedAt.Add(-24 * time.Hour)
	mock.ExpectQuery(regexp.QuoteMeta("FROM summary_history")).
		WithArgs("u1", since).
		WillReturnRows(rows)

	store := historystore.NewPostgresStore(db)
	got, err := store.RecentByUser(context.Background(), "u1", since)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, rec.ArticleURL, got[0].ArticleURL)
}
