package integration

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"testing"

	"github.com/javiermolinar/timetable/internal/catalog"
	"github.com/javiermolinar/timetable/internal/db"
	"github.com/javiermolinar/timetable/internal/editor"
	"github.com/javiermolinar/timetable/internal/schedule"
	"github.com/javiermolinar/timetable/internal/store"
)

// openRepo creates a fresh repository for each test with automatic cleanup.
func openRepo(t *testing.T, dbPath string) *db.SQLite {
	t.Helper()
	repo, err := db.New(dbPath)
	if err != nil {
		t.Fatalf("failed to open repo: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

// session mirrors what the TUI does on start: load, then edit through a controller.
func session(t *testing.T, repo *db.SQLite) (*editor.Controller, *store.Store) {
	t.Helper()
	m, err := repo.LoadSchedules(context.Background())
	if err != nil {
		t.Fatalf("failed to load schedules: %v", err)
	}
	s := store.New(m)
	return editor.NewController(s), s
}

func mustEntries(t *testing.T, m *schedule.Map, id schedule.TableID) []schedule.Entry {
	t.Helper()
	entries, ok := m.Entries(id)
	if !ok {
		t.Fatalf("table %s missing", id)
	}
	return entries
}

// cellCenter returns the grid point in the middle of a cell.
func cellCenter(g schedule.Geometry, day string, slot int) schedule.Point {
	return schedule.Point{
		X: g.HeaderWidth + schedule.DayIndex(day)*g.CellWidth + g.CellWidth/2,
		Y: g.HeaderHeight + (slot-1)*g.CellHeight + g.CellHeight/2,
	}
}

func TestEditingSessionPersists(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "timetable.db")
	repo := openRepo(t, dbPath)

	c, s := session(t, repo)
	if s.SchedulesMap().Len() != 1 {
		t.Fatalf("fresh database should start with one table, got %d", s.SchedulesMap().Len())
	}
	first := c.Items()[0]

	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}

	// Click an empty cell: the search dialog opens for that cell.
	g := first.Geometry()
	at := cellCenter(g, "Mon", 2)
	first.PointerDown(-1, at)
	if _, err := first.PointerUp(at, nil); err != nil {
		t.Fatalf("click on empty cell failed: %v", err)
	}
	info, ok := c.SearchInfo()
	if !ok || !info.HasSlot() || *info.Day != "Mon" || *info.Time != 2 {
		t.Fatalf("expected search for Mon 2, got %+v (open=%v)", info, ok)
	}

	results := cat.Search("", catalog.Filter{Day: *info.Day, Slot: *info.Time})
	if len(results) == 0 || results[0].Lecture.ID != "CS101-01" {
		t.Fatalf("expected CS101-01 first for Mon 2, got %+v", results)
	}
	blocks, err := catalog.ParseSchedule(results[0].Lecture)
	if err != nil {
		t.Fatalf("failed to parse schedule: %v", err)
	}
	if err := c.AddEntries(info.TableID, blocks...); err != nil {
		t.Fatalf("failed to add lecture: %v", err)
	}
	c.CloseSearch()

	// Drag the Monday block two days right and two slots down.
	entries := mustEntries(t, s.SchedulesMap(), first.ID)
	index := schedule.At(entries, "Mon", 2)
	from := cellCenter(g, "Mon", 2)
	to := cellCenter(g, "Wed", 4)
	first.PointerDown(index, from)
	if !first.PointerMove(to) {
		t.Fatal("pointer move past the activation distance should start a drag")
	}
	gesture, err := first.PointerUp(to, entries)
	if err != nil {
		t.Fatalf("drag failed: %v", err)
	}
	if !gesture.Dragged {
		t.Fatal("expected a drag gesture")
	}

	if err := first.Duplicate(); err != nil {
		t.Fatalf("failed to duplicate: %v", err)
	}
	if err := repo.SaveSchedules(ctx, s.SchedulesMap()); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	// Reopen the database and check everything survived.
	if err := repo.Close(); err != nil {
		t.Fatalf("failed to close repo: %v", err)
	}
	reopened := openRepo(t, dbPath)
	m, err := reopened.LoadSchedules(ctx)
	if err != nil {
		t.Fatalf("failed to reload: %v", err)
	}
	if m.Len() != 2 {
		t.Fatalf("expected 2 tables after reload, got %d", m.Len())
	}

	for _, id := range m.IDs() {
		got := mustEntries(t, m, id)
		if len(got) != 2 {
			t.Fatalf("table %s: expected 2 entries, got %d", id, len(got))
		}
		moved := got[index]
		if moved.Day != "Wed" || !slices.Equal(moved.Range, []int{3, 4, 5}) {
			t.Errorf("table %s: moved block = %s %v, want Wed [3 4 5]", id, moved.Day, moved.Range)
		}
		if moved.Room != "E101" || moved.Lecture.Title != "Introduction to Programming" {
			t.Errorf("table %s: moved block lost its lecture: %+v", id, moved)
		}
	}
}

func TestDuplicateIsIndependentAfterReload(t *testing.T) {
	ctx := context.Background()
	repo := openRepo(t, filepath.Join(t.TempDir(), "timetable.db"))

	c, s := session(t, repo)
	id := c.Items()[0].ID
	if err := c.AddEntries(id, schedule.Entry{
		Day:     "Tue",
		Range:   []int{5},
		Room:    "R1",
		Lecture: schedule.Lecture{ID: "X1", Title: "Seminar"},
	}); err != nil {
		t.Fatalf("failed to add entry: %v", err)
	}
	if err := c.Duplicate(id); err != nil {
		t.Fatalf("failed to duplicate: %v", err)
	}
	copyID := s.SchedulesMap().IDs()[1]
	if err := c.DeleteEntry(copyID, "Tue", 5); err != nil {
		t.Fatalf("failed to delete from copy: %v", err)
	}
	if err := repo.SaveSchedules(ctx, s.SchedulesMap()); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	m, err := repo.LoadSchedules(ctx)
	if err != nil {
		t.Fatalf("failed to reload: %v", err)
	}
	if got := mustEntries(t, m, id); len(got) != 1 {
		t.Errorf("original table: expected 1 entry, got %d", len(got))
	}
	if got := mustEntries(t, m, copyID); len(got) != 0 {
		t.Errorf("copied table: expected 0 entries, got %d", len(got))
	}
}

func TestLastTableSurvivesRemove(t *testing.T) {
	repo := openRepo(t, filepath.Join(t.TempDir(), "timetable.db"))

	c, s := session(t, repo)
	item := c.Items()[0]
	if !item.RemoveDisabled {
		t.Error("remove should be disabled on the only table")
	}
	if err := item.Remove(); !errors.Is(err, editor.ErrRemoveDisabled) {
		t.Errorf("got error %v, want %v", err, editor.ErrRemoveDisabled)
	}
	if err := c.Remove(item.ID); !errors.Is(err, schedule.ErrLastTable) {
		t.Errorf("got error %v, want %v", err, schedule.ErrLastTable)
	}
	if s.SchedulesMap().Len() != 1 {
		t.Errorf("expected 1 table, got %d", s.SchedulesMap().Len())
	}
}
