// Package editor implements the timetable collection controller and the
// per-table action bindings.
package editor

import (
	"fmt"

	"github.com/javiermolinar/timetable/internal/schedule"
	"github.com/javiermolinar/timetable/internal/store"
)

// Operations is the action set a table view needs from its parent.
// Every method leaves the state untouched when it returns an error.
type Operations interface {
	Duplicate(id schedule.TableID) error
	Remove(id schedule.TableID) error
	DeleteEntry(id schedule.TableID, day string, slot int) error
	MoveEntry(id schedule.TableID, ev schedule.DragEvent) error
	OpenSearch(id schedule.TableID) error
	OpenSearchAt(id schedule.TableID, day string, slot int) error
	CloseSearch()
}

// SearchInfo is the target of an open search dialog. Day and Time are set
// when the dialog was opened from an empty cell.
type SearchInfo struct {
	TableID schedule.TableID
	Day     *string
	Time    *int
}

// HasSlot reports whether the dialog targets a specific cell.
func (s SearchInfo) HasSlot() bool {
	return s.Day != nil && s.Time != nil
}

// Controller mediates all changes to the schedules map.
type Controller struct {
	store      *store.Store
	geometry   schedule.Geometry
	activation int
	newID      func() schedule.TableID
	search     *SearchInfo
	sensors    map[schedule.TableID]*PointerSensor
}

var _ Operations = (*Controller)(nil)

// Option configures a Controller.
type Option func(*Controller)

// WithIDGenerator overrides how duplicated tables are named.
func WithIDGenerator(fn func() schedule.TableID) Option {
	return func(c *Controller) {
		c.newID = fn
	}
}

// WithGeometry sets the grid geometry used to translate drag deltas.
func WithGeometry(g schedule.Geometry) Option {
	return func(c *Controller) {
		c.geometry = g
	}
}

// WithActivationDistance sets how far a press must travel to become a drag.
func WithActivationDistance(d int) Option {
	return func(c *Controller) {
		c.activation = d
	}
}

// NewController creates a controller writing to s.
func NewController(s *store.Store, opts ...Option) *Controller {
	c := &Controller{
		store:      s,
		geometry:   schedule.DefaultGeometry,
		activation: DefaultActivationDistance,
		newID:      schedule.NewTableID,
		sensors:    make(map[schedule.TableID]*PointerSensor),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SchedulesMap returns a read-only view of the current map.
func (c *Controller) SchedulesMap() *schedule.Map {
	return c.store.SchedulesMap()
}

// Geometry returns the grid geometry drags are translated with.
func (c *Controller) Geometry() schedule.Geometry {
	return c.geometry
}

// Version changes whenever the schedules map is replaced.
func (c *Controller) Version() uint64 {
	return c.store.Version()
}

// CanRemove reports whether a table may be removed.
func (c *Controller) CanRemove() bool {
	return c.store.SchedulesMap().Len() > 1
}

// Duplicate copies a table by value into a new table appended at the end.
func (c *Controller) Duplicate(id schedule.TableID) error {
	var err error
	c.store.Update(func(prev *schedule.Map) *schedule.Map {
		entries, ok := prev.Entries(id)
		if !ok {
			err = fmt.Errorf("duplicate %s: %w", id, schedule.ErrTableNotFound)
			return prev
		}
		newID := c.newID()
		for prev.Has(newID) {
			newID = c.newID()
		}
		return prev.With(newID, schedule.CloneEntries(entries))
	})
	return err
}

// Remove deletes a table. The last table is never removed.
func (c *Controller) Remove(id schedule.TableID) error {
	var err error
	c.store.Update(func(prev *schedule.Map) *schedule.Map {
		switch {
		case !prev.Has(id):
			err = fmt.Errorf("remove %s: %w", id, schedule.ErrTableNotFound)
			return prev
		case prev.Len() <= 1:
			err = fmt.Errorf("remove %s: %w", id, schedule.ErrLastTable)
			return prev
		}
		return prev.Without(id)
	})
	if err != nil {
		return err
	}
	delete(c.sensors, id)
	if c.search != nil && c.search.TableID == id {
		c.search = nil
	}
	return nil
}

// DeleteEntry drops every entry of a table that sits on day and covers slot.
func (c *Controller) DeleteEntry(id schedule.TableID, day string, slot int) error {
	var err error
	c.store.Update(func(prev *schedule.Map) *schedule.Map {
		entries, ok := prev.Entries(id)
		if !ok {
			err = fmt.Errorf("delete entry in %s: %w", id, schedule.ErrTableNotFound)
			return prev
		}
		kept, changed := schedule.Delete(entries, day, slot)
		if !changed {
			err = fmt.Errorf("delete %s %d in %s: %w", day, slot, id, schedule.ErrEntryNotFound)
			return prev
		}
		return prev.With(id, kept)
	})
	return err
}

// MoveEntry applies a finished drag to one entry of a table.
func (c *Controller) MoveEntry(id schedule.TableID, ev schedule.DragEvent) error {
	var err error
	c.store.Update(func(prev *schedule.Map) *schedule.Map {
		entries, ok := prev.Entries(id)
		if !ok {
			err = fmt.Errorf("move in %s: %w", id, schedule.ErrTableNotFound)
			return prev
		}
		moved, moveErr := schedule.Move(entries, ev, c.geometry)
		if moveErr != nil {
			err = fmt.Errorf("move in %s: %w", id, moveErr)
			return prev
		}
		return prev.With(id, moved)
	})
	return err
}

// AddEntries appends entries to a table. Invalid entries reject the whole call.
func (c *Controller) AddEntries(id schedule.TableID, entries ...schedule.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("add to %s: %w", id, err)
		}
	}

	var err error
	c.store.Update(func(prev *schedule.Map) *schedule.Map {
		current, ok := prev.Entries(id)
		if !ok {
			err = fmt.Errorf("add to %s: %w", id, schedule.ErrTableNotFound)
			return prev
		}
		next := make([]schedule.Entry, 0, len(current)+len(entries))
		next = append(next, current...)
		next = append(next, schedule.CloneEntries(entries)...)
		return prev.With(id, next)
	})
	return err
}

// AddTable appends an empty table and returns its id.
func (c *Controller) AddTable() schedule.TableID {
	id := c.newID()
	c.store.Update(func(prev *schedule.Map) *schedule.Map {
		for prev.Has(id) {
			id = c.newID()
		}
		return prev.With(id, []schedule.Entry{})
	})
	return id
}

// OpenSearch opens the search dialog for a table.
func (c *Controller) OpenSearch(id schedule.TableID) error {
	if !c.store.SchedulesMap().Has(id) {
		return fmt.Errorf("open search for %s: %w", id, schedule.ErrTableNotFound)
	}
	c.search = &SearchInfo{TableID: id}
	return nil
}

// OpenSearchAt opens the search dialog pre-filled with a cell.
func (c *Controller) OpenSearchAt(id schedule.TableID, day string, slot int) error {
	if !c.store.SchedulesMap().Has(id) {
		return fmt.Errorf("open search for %s: %w", id, schedule.ErrTableNotFound)
	}
	c.search = &SearchInfo{TableID: id, Day: &day, Time: &slot}
	return nil
}

// CloseSearch closes the search dialog.
func (c *Controller) CloseSearch() {
	c.search = nil
}

// SearchInfo returns the open search target, if any.
func (c *Controller) SearchInfo() (SearchInfo, bool) {
	if c.search == nil {
		return SearchInfo{}, false
	}
	return *c.search, true
}

// Items returns one bound TableItem per table, in display order.
func (c *Controller) Items() []*TableItem {
	ids := c.store.SchedulesMap().IDs()
	disabled := !c.CanRemove()
	items := make([]*TableItem, len(ids))
	for i, id := range ids {
		item := NewTableItem(id, i, c)
		item.RemoveDisabled = disabled
		item.geometry = c.geometry
		item.sensor = c.sensor(id)
		items[i] = item
	}
	return items
}

// Item returns the bound item for one table.
func (c *Controller) Item(id schedule.TableID) (*TableItem, bool) {
	for _, item := range c.Items() {
		if item.ID == id {
			return item, true
		}
	}
	return nil, false
}

// sensor returns the pointer sensor of a table, creating it on first use so a
// gesture survives repeated item lookups.
func (c *Controller) sensor(id schedule.TableID) *PointerSensor {
	s, ok := c.sensors[id]
	if !ok {
		s = NewPointerSensor(c.activation)
		c.sensors[id] = s
	}
	return s
}
