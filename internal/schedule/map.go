package schedule

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// TableID identifies one timetable.
type TableID string

// tableIDPrefix keeps ids readable in the database and the debug log.
const tableIDPrefix = "schedule-"

// NewTableID returns a fresh, process-wide unique table id.
func NewTableID() TableID {
	return TableID(tableIDPrefix + uuid.NewString())
}

// Map is an ordered, immutable mapping from table id to entries.
// Mutating methods return a new *Map and never touch the receiver. When nothing
// changes they return the receiver itself, so pointer equality means "unchanged".
// Slices returned by Entries are shared and must be treated as read-only.
type Map struct {
	ids    []TableID
	tables map[TableID][]Entry
}

// NewMap builds a map with the given ids in order, each with no entries.
func NewMap(ids ...TableID) *Map {
	m := &Map{tables: make(map[TableID][]Entry, len(ids))}
	for _, id := range ids {
		if _, ok := m.tables[id]; ok {
			continue
		}
		m.ids = append(m.ids, id)
		m.tables[id] = []Entry{}
	}
	return m
}

// Len returns the number of tables.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.ids)
}

// IDs returns the table ids in display order.
func (m *Map) IDs() []TableID {
	if m == nil {
		return nil
	}
	return slices.Clone(m.ids)
}

// Has reports whether id is present.
func (m *Map) Has(id TableID) bool {
	if m == nil {
		return false
	}
	_, ok := m.tables[id]
	return ok
}

// Index returns the display position of id, or -1.
func (m *Map) Index(id TableID) int {
	if m == nil {
		return -1
	}
	return slices.Index(m.ids, id)
}

// Entries returns the entries of a table.
func (m *Map) Entries(id TableID) ([]Entry, bool) {
	if m == nil {
		return nil, false
	}
	entries, ok := m.tables[id]
	return entries, ok
}

// With returns a map where id holds entries. New ids are appended.
func (m *Map) With(id TableID, entries []Entry) *Map {
	next := m.shallowCopy()
	if _, ok := next.tables[id]; !ok {
		next.ids = append(next.ids, id)
	}
	next.tables[id] = entries
	return next
}

// Without returns a map with id removed.
func (m *Map) Without(id TableID) *Map {
	if !m.Has(id) {
		return m
	}
	next := m.shallowCopy()
	delete(next.tables, id)
	next.ids = slices.DeleteFunc(next.ids, func(other TableID) bool { return other == id })
	return next
}

// Clone returns a deep copy of the map.
func (m *Map) Clone() *Map {
	next := m.shallowCopy()
	for id, entries := range next.tables {
		next.tables[id] = CloneEntries(entries)
	}
	return next
}

// TotalEntries counts entries across all tables.
func (m *Map) TotalEntries() int {
	if m == nil {
		return 0
	}
	n := 0
	for _, entries := range m.tables {
		n += len(entries)
	}
	return n
}

// String renders a compact debug representation.
func (m *Map) String() string {
	if m == nil {
		return "<nil>"
	}
	var b strings.Builder
	for i, id := range m.ids {
		if i > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "%s(%d)", id, len(m.tables[id]))
	}
	return b.String()
}

func (m *Map) shallowCopy() *Map {
	next := &Map{tables: make(map[TableID][]Entry, m.Len()+1)}
	if m == nil {
		return next
	}
	next.ids = slices.Clone(m.ids)
	for id, entries := range m.tables {
		next.tables[id] = entries
	}
	return next
}

// CloneEntries deep copies an entry list.
func CloneEntries(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[i] = e.Clone()
	}
	return out
}
