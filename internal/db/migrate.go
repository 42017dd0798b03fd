package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id           TEXT PRIMARY KEY,
		email        TEXT NOT NULL UNIQUE,
		display_name TEXT NOT NULL DEFAULT '',
		created_at   TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS user_settings (
		user_id               TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		session_duration_min  INTEGER NOT NULL DEFAULT 60,
		break_duration_min    INTEGER NOT NULL DEFAULT 10,
		notifications_enabled INTEGER NOT NULL DEFAULT 1,
		bio                   TEXT NOT NULL DEFAULT '',
		updated_at            TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS subjects (
		id          TEXT PRIMARY KEY,
		user_id     TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		difficulty  INTEGER NOT NULL DEFAULT 2 CHECK(difficulty BETWEEN 1 AND 3),
		exam_at     TEXT,
		created_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS availability_slots (
		id      TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		day     INTEGER NOT NULL CHECK(day BETWEEN 0 AND 6),
		hour    INTEGER NOT NULL CHECK(hour BETWEEN 0 AND 23),
		UNIQUE(user_id, day, hour)
	)`,

	`CREATE TABLE IF NOT EXISTS study_sessions (
		id                TEXT PRIMARY KEY,
		user_id           TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		subject_id        TEXT NOT NULL REFERENCES subjects(id) ON DELETE CASCADE,
		start_at          TEXT NOT NULL,
		end_at            TEXT NOT NULL,
		topic             TEXT NOT NULL DEFAULT '',
		completed         INTEGER NOT NULL DEFAULT 0,
		synced            INTEGER NOT NULL DEFAULT 0,
		external_event_id TEXT,
		created_at        TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS google_credentials (
		user_id       TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		access_token  TEXT NOT NULL,
		refresh_token TEXT NOT NULL DEFAULT '',
		token_type    TEXT NOT NULL DEFAULT 'Bearer',
		expiry        TEXT,
		scopes        TEXT NOT NULL DEFAULT '',
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS study_summaries (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		session_id TEXT NOT NULL UNIQUE REFERENCES study_sessions(id) ON DELETE CASCADE,
		subject_id TEXT NOT NULL REFERENCES subjects(id) ON DELETE CASCADE,
		content    TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS quiz_results (
		id              TEXT PRIMARY KEY,
		user_id         TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		session_id      TEXT NOT NULL REFERENCES study_sessions(id) ON DELETE CASCADE,
		questions_json  TEXT NOT NULL,
		answers_json    TEXT NOT NULL,
		score           INTEGER NOT NULL,
		total_questions INTEGER NOT NULL,
		created_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_subjects_user ON subjects(user_id, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_user_start ON study_sessions(user_id, start_at)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_pending ON study_sessions(user_id, completed)`,
	`CREATE INDEX IF NOT EXISTS idx_quiz_results_session ON quiz_results(session_id)`,

	// Columns added after the first schema.
	`ALTER TABLE subjects ADD COLUMN importance INTEGER NOT NULL DEFAULT 2`,
	`ALTER TABLE user_settings ADD COLUMN academic_goal TEXT NOT NULL DEFAULT ''`,
}
