package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS schedule_tables (
			id         TEXT PRIMARY KEY,
			position   INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS schedule_entries (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			table_id         TEXT NOT NULL REFERENCES schedule_tables(id),
			position         INTEGER NOT NULL,
			day              TEXT NOT NULL CHECK(day IN ('Mon', 'Tue', 'Wed', 'Thu', 'Fri', 'Sat')),
			slots            TEXT NOT NULL,
			room             TEXT NOT NULL DEFAULT '',
			lecture_id       TEXT NOT NULL DEFAULT '',
			lecture_title    TEXT NOT NULL DEFAULT '',
			lecture_major    TEXT NOT NULL DEFAULT '',
			lecture_grade    INTEGER NOT NULL DEFAULT 0,
			lecture_credits  TEXT NOT NULL DEFAULT '',
			lecture_schedule TEXT NOT NULL DEFAULT ''
		);

		CREATE INDEX IF NOT EXISTS idx_entries_table ON schedule_entries(table_id, position);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating schedule tables: %w", err)
	}

	return nil
}
