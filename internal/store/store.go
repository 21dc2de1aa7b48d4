// Package store holds the single source of truth for all timetables.
package store

import (
	"context"

	"github.com/javiermolinar/timetable/internal/schedule"
)

// Repository persists the schedules map.
type Repository interface {
	// LoadSchedules returns the stored tables in display order.
	// An empty store returns an empty, non-nil map.
	LoadSchedules(ctx context.Context) (*schedule.Map, error)

	// SaveSchedules replaces the stored tables with m.
	SaveSchedules(ctx context.Context, m *schedule.Map) error

	// Close releases any resources held by the repository.
	Close() error
}

// Store owns the current schedules map. It is not safe for concurrent use;
// all writes happen on the UI event loop.
type Store struct {
	current *schedule.Map
	version uint64
}

// New creates a store holding initial. A nil or empty map gets one fresh table,
// since a store without tables cannot be rendered.
func New(initial *schedule.Map) *Store {
	if initial.Len() == 0 {
		initial = schedule.NewMap(schedule.NewTableID())
	}
	return &Store{current: initial}
}

// SchedulesMap returns the current map. Callers must not modify it.
func (s *Store) SchedulesMap() *schedule.Map {
	return s.current
}

// Set replaces the current map.
func (s *Store) Set(next *schedule.Map) {
	s.Update(func(*schedule.Map) *schedule.Map { return next })
}

// Update replaces the current map with fn(current). Returning the same
// pointer, or a map without tables, leaves the store untouched.
func (s *Store) Update(fn func(prev *schedule.Map) *schedule.Map) {
	next := fn(s.current)
	if next == s.current || next.Len() == 0 {
		return
	}
	s.current = next
	s.version++
}

// Version increases every time the map is replaced.
func (s *Store) Version() uint64 {
	return s.version
}
