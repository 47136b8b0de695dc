package sqlite

import (
	"context"

	"journal/internal/errors"

	"gorm.io/gorm"
)

// schema is applied in order on every start. Relations are declared here rather
// than derived from model structs: link rows cascade with their entry, while
// moods and tags cannot be removed while an entry still references them.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		username      TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		created_at    DATETIME NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username ON users (username)`,

	`CREATE TABLE IF NOT EXISTS moods (
		id       INTEGER PRIMARY KEY AUTOINCREMENT,
		name     TEXT NOT NULL,
		category TEXT NOT NULL CHECK (category IN ('Positive', 'Neutral', 'Negative')),
		glyph    TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_moods_name ON moods (name)`,

	`CREATE TABLE IF NOT EXISTS tags (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		name          TEXT NOT NULL,
		name_key      TEXT NOT NULL,
		is_predefined BOOLEAN NOT NULL DEFAULT 0
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_tags_name_key ON tags (name_key)`,

	`CREATE TABLE IF NOT EXISTS entries (
		id              TEXT PRIMARY KEY,
		user_id         TEXT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		entry_date      DATETIME NOT NULL,
		title           TEXT NOT NULL,
		content         TEXT NOT NULL DEFAULT '',
		primary_mood_id INTEGER NOT NULL REFERENCES moods (id) ON DELETE RESTRICT,
		created_at      DATETIME NOT NULL,
		updated_at      DATETIME NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_entries_user_date ON entries (user_id, entry_date)`,
	`CREATE INDEX IF NOT EXISTS idx_entries_primary_mood ON entries (primary_mood_id)`,

	`CREATE TABLE IF NOT EXISTS entry_moods (
		id       INTEGER PRIMARY KEY AUTOINCREMENT,
		entry_id TEXT NOT NULL REFERENCES entries (id) ON DELETE CASCADE,
		mood_id  INTEGER NOT NULL REFERENCES moods (id) ON DELETE RESTRICT
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_entry_moods_entry_mood ON entry_moods (entry_id, mood_id)`,
	`CREATE INDEX IF NOT EXISTS idx_entry_moods_mood ON entry_moods (mood_id)`,

	`CREATE TABLE IF NOT EXISTS entry_tags (
		id       INTEGER PRIMARY KEY AUTOINCREMENT,
		entry_id TEXT NOT NULL REFERENCES entries (id) ON DELETE CASCADE,
		tag_id   INTEGER NOT NULL REFERENCES tags (id) ON DELETE RESTRICT
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_entry_tags_entry_tag ON entry_tags (entry_id, tag_id)`,
	`CREATE INDEX IF NOT EXISTS idx_entry_tags_tag ON entry_tags (tag_id)`,
}

// Migrate creates any missing table or index. It is safe to run repeatedly.
func Migrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, stmt := range schema {
			if err := tx.Exec(stmt).Error; err != nil {
				return errors.Wrap(err, "failed to apply schema")
			}
		}

		return nil
	})
}
