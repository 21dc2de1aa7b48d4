// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/timetable/internal/schedule"
	"github.com/javiermolinar/timetable/internal/store"
)

// SQLite implements store.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

var _ store.Repository = (*SQLite)(nil)

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// LoadSchedules returns every stored table in display order.
func (s *SQLite) LoadSchedules(ctx context.Context) (*schedule.Map, error) {
	ids, err := s.tableIDs(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := s.entries(ctx)
	if err != nil {
		return nil, err
	}

	m := schedule.NewMap()
	for _, id := range ids {
		list := entries[id]
		if list == nil {
			list = []schedule.Entry{}
		}
		m = m.With(id, list)
	}
	return m, nil
}

func (s *SQLite) tableIDs(ctx context.Context) ([]schedule.TableID, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM schedule_tables ORDER BY position, created_at`)
	if err != nil {
		return nil, fmt.Errorf("querying tables: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ids []schedule.TableID
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning table: %w", err)
		}
		ids = append(ids, schedule.TableID(id))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tables: %w", err)
	}
	return ids, nil
}

func (s *SQLite) entries(ctx context.Context) (map[schedule.TableID][]schedule.Entry, error) {
	query := `
		SELECT table_id, day, slots, room,
		       lecture_id, lecture_title, lecture_major, lecture_grade,
		       lecture_credits, lecture_schedule
		FROM schedule_entries
		ORDER BY table_id, position
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make(map[schedule.TableID][]schedule.Entry)
	for rows.Next() {
		var (
			tableID string
			slots   string
			e       schedule.Entry
		)
		if err := rows.Scan(
			&tableID,
			&e.Day,
			&slots,
			&e.Room,
			&e.Lecture.ID,
			&e.Lecture.Title,
			&e.Lecture.Major,
			&e.Lecture.Grade,
			&e.Lecture.Credits,
			&e.Lecture.Schedule,
		); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}

		e.Range, err = parseSlots(slots)
		if err != nil {
			return nil, fmt.Errorf("entry in %s: %w", tableID, err)
		}
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("entry in %s: %w", tableID, err)
		}

		id := schedule.TableID(tableID)
		out[id] = append(out[id], e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entries: %w", err)
	}
	return out, nil
}

// SaveSchedules replaces the stored tables with m in a single transaction.
func (s *SQLite) SaveSchedules(ctx context.Context, m *schedule.Map) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM schedule_entries`); err != nil {
		return fmt.Errorf("clearing entries: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM schedule_tables`); err != nil {
		return fmt.Errorf("clearing tables: %w", err)
	}

	tableStmt, err := tx.PrepareContext(ctx, `INSERT INTO schedule_tables (id, position, created_at) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = tableStmt.Close() }()

	entryStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO schedule_entries (
			table_id, position, day, slots, room,
			lecture_id, lecture_title, lecture_major, lecture_grade,
			lecture_credits, lecture_schedule
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = entryStmt.Close() }()

	now := time.Now().Format(time.RFC3339)
	for pos, id := range m.IDs() {
		if _, err := tableStmt.ExecContext(ctx, string(id), pos, now); err != nil {
			return fmt.Errorf("inserting table %s: %w", id, err)
		}

		entries, _ := m.Entries(id)
		for i, e := range entries {
			if _, err := entryStmt.ExecContext(ctx,
				string(id),
				i,
				e.Day,
				formatSlots(e.Range),
				e.Room,
				e.Lecture.ID,
				e.Lecture.Title,
				e.Lecture.Major,
				e.Lecture.Grade,
				e.Lecture.Credits,
				e.Lecture.Schedule,
			); err != nil {
				return fmt.Errorf("inserting entry %d of %s: %w", i, id, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// formatSlots stores a range as "1,2,3".
func formatSlots(r []int) string {
	parts := make([]string, len(r))
	for i, v := range r {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func parseSlots(s string) ([]int, error) {
	if s == "" {
		return nil, schedule.ErrEmptyRange
	}
	parts := strings.Split(s, ",")
	out := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("parsing slots %q: %w", s, err)
		}
		out[i] = v
	}
	return out, nil
}
