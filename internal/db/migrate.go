package db

import (
	"database/sql"
	"fmt"
)

// migrations are applied in order; PRAGMA user_version records how many
// have run. Append only.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS merged_blocks (
		id             TEXT PRIMARY KEY,
		note           TEXT NOT NULL,
		seq            INTEGER NOT NULL CHECK(seq > 0),
		template_label TEXT NOT NULL DEFAULT '',
		s              TEXT NOT NULL DEFAULT '',
		o              TEXT NOT NULL DEFAULT '',
		a              TEXT NOT NULL DEFAULT '',
		p              TEXT NOT NULL DEFAULT '',
		created_at     TEXT NOT NULL,
		UNIQUE(note, seq)
	)`,

	`CREATE TABLE IF NOT EXISTS generation_log (
		id         TEXT PRIMARY KEY,
		note       TEXT NOT NULL,
		action     TEXT NOT NULL
		           CHECK(action IN ('compose','hold','reset','copy')),
		details    TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_generation_log_created ON generation_log(created_at)`,

	`ALTER TABLE merged_blocks ADD COLUMN scenario TEXT NOT NULL DEFAULT ''`,

	// SQLite cannot alter a CHECK constraint; the log table is rebuilt to
	// admit 'amend'.
	`CREATE TABLE generation_log_v2 (
		id         TEXT PRIMARY KEY,
		note       TEXT NOT NULL,
		action     TEXT NOT NULL
		           CHECK(action IN ('compose','hold','reset','copy','amend')),
		details    TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,
	`INSERT INTO generation_log_v2 (id, note, action, details, created_at)
		SELECT id, note, action, details, created_at FROM generation_log`,
	`DROP TABLE generation_log`,
	`ALTER TABLE generation_log_v2 RENAME TO generation_log`,
	`CREATE INDEX IF NOT EXISTS idx_generation_log_created ON generation_log(created_at)`,
}

// SchemaVersion is the user_version of a fully migrated database.
var SchemaVersion = len(migrations)

// Migrate applies the migrations the database has not seen yet.
func Migrate(db *sql.DB) error {
	var applied int
	if err := db.QueryRow(`PRAGMA user_version`).Scan(&applied); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}
	if applied > len(migrations) {
		return fmt.Errorf("database schema version %d is newer than this build (%d)", applied, len(migrations))
	}

	for i := applied; i < len(migrations); i++ {
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
		if _, err := tx.Exec(migrations[i]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d: %w", i, err)
		}
		// PRAGMA does not accept bound parameters.
		if _, err := tx.Exec(fmt.Sprintf(`PRAGMA user_version = %d`, i+1)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d: recording version: %w", i, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
