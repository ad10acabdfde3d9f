package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		PRAGMA foreign_keys = ON;

		CREATE TABLE IF NOT EXISTS staff_rows (
			id       TEXT PRIMARY KEY,
			name     TEXT NOT NULL,
			kind     TEXT NOT NULL CHECK(kind IN ('unallocated', 'assigned')),
			position INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS visits (
			id             TEXT PRIMARY KEY,
			row_id         TEXT NOT NULL REFERENCES staff_rows(id) ON DELETE CASCADE,
			start_hour     REAL NOT NULL CHECK(start_hour >= 0 AND start_hour < 24),
			duration_hours REAL NOT NULL CHECK(duration_hours > 0),
			subject        TEXT NOT NULL DEFAULT '',
			category       TEXT NOT NULL DEFAULT '',
			status         TEXT NOT NULL DEFAULT 'scheduled',
			position       INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS moves (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			visit_id    TEXT NOT NULL,
			from_row_id TEXT NOT NULL,
			to_row_id   TEXT NOT NULL,
			from_hour   REAL NOT NULL,
			start_hour  REAL NOT NULL,
			moved_at    TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_visits_row ON visits(row_id);
		CREATE INDEX IF NOT EXISTS idx_moves_visit ON moves(visit_id);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating roster tables: %w", err)
	}

	return nil
}
