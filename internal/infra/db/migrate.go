package db

import "database/sql"

// MigrateUp creates the summary_history, feedback and recommendation_clicks
// tables and their supporting indexes. Safe to run repeatedly: every
// statement is idempotent (IF NOT EXISTS / IF NOT EXISTS).
func MigrateUp(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS summary_history (
    id                SERIAL PRIMARY KEY,
    user_id           TEXT NOT NULL,
    article_url       TEXT NOT NULL,
    article_title     TEXT NOT NULL,
    content_excerpt   TEXT NOT NULL,
    summary_text      TEXT NOT NULL,
    summary_language  VARCHAR(8) NOT NULL,
    original_length   INTEGER NOT NULL,
    summary_length    INTEGER NOT NULL,
    keywords_json     JSONB NOT NULL DEFAULT '[]',
    category          VARCHAR(32) NOT NULL,
    created_at        TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS feedback (
    id            SERIAL PRIMARY KEY,
    user_id       TEXT NOT NULL,
    article_url   TEXT NOT NULL,
    rating        SMALLINT NOT NULL,
    feedback_type VARCHAR(16) NOT NULL,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS recommendation_clicks (
    id          SERIAL PRIMARY KEY,
    user_id     TEXT NOT NULL,
    article_url TEXT NOT NULL,
    clicked_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	indexes := []string{
		// newest-first history pagination for a single user
		`CREATE INDEX IF NOT EXISTS idx_summary_history_user_created ON summary_history(user_id, created_at DESC)`,
		// at-most-once persistence per (user, article, second)
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_summary_history_dedup ON summary_history(user_id, article_url, date_trunc('second', created_at))`,
		// newest-first feedback lookup for a single user
		`CREATE INDEX IF NOT EXISTS idx_feedback_user_created ON feedback(user_id, created_at DESC)`,
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return err
		}
	}

	return nil
}

// MigrateDown drops the tables MigrateUp creates, in dependency order.
// Use with caution: this deletes all history, feedback and click data.
func MigrateDown(db *sql.DB) error {
	dropStatements := []string{
		`DROP TABLE IF EXISTS recommendation_clicks`,
		`DROP TABLE IF EXISTS feedback`,
		`DROP TABLE IF EXISTS summary_history`,
	}
	for _, stmt := range dropStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
