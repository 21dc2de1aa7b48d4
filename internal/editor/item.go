package editor

import (
	"errors"
	"fmt"

	"github.com/javiermolinar/timetable/internal/schedule"
)

// ErrRemoveDisabled is returned when removing a table whose remove action is disabled.
var ErrRemoveDisabled = errors.New("remove is disabled for this table")

// TableItem binds one table id to the parent's operations so callers never
// pass the id themselves. It owns the table's pointer sensor.
type TableItem struct {
	ID             schedule.TableID
	Index          int
	RemoveDisabled bool

	ops      Operations
	geometry schedule.Geometry
	sensor   *PointerSensor
}

// NewTableItem binds id to ops with the default geometry and activation distance.
func NewTableItem(id schedule.TableID, index int, ops Operations) *TableItem {
	return &TableItem{
		ID:       id,
		Index:    index,
		ops:      ops,
		geometry: schedule.DefaultGeometry,
		sensor:   NewPointerSensor(DefaultActivationDistance),
	}
}

// Title returns the heading shown above the table.
func (t *TableItem) Title() string {
	return fmt.Sprintf("Schedule %d", t.Index+1)
}

// Geometry returns the grid geometry of this table.
func (t *TableItem) Geometry() schedule.Geometry {
	return t.geometry
}

// Sensor returns the table's pointer sensor.
func (t *TableItem) Sensor() *PointerSensor {
	return t.sensor
}

// OpenSearch opens the search dialog for this table.
func (t *TableItem) OpenSearch() error {
	return t.ops.OpenSearch(t.ID)
}

// TimeClick opens the search dialog for an empty cell.
func (t *TableItem) TimeClick(day string, slot int) error {
	return t.ops.OpenSearchAt(t.ID, day, slot)
}

// Duplicate copies this table.
func (t *TableItem) Duplicate() error {
	return t.ops.Duplicate(t.ID)
}

// Remove deletes this table unless removal is disabled.
func (t *TableItem) Remove() error {
	if t.RemoveDisabled {
		return ErrRemoveDisabled
	}
	return t.ops.Remove(t.ID)
}

// DeleteEntry drops the entries covering a cell.
func (t *TableItem) DeleteEntry(day string, slot int) error {
	return t.ops.DeleteEntry(t.ID, day, slot)
}

// DragEnd forwards a finished drag to the parent.
func (t *TableItem) DragEnd(ev schedule.DragEvent) error {
	return t.ops.MoveEntry(t.ID, ev)
}

// PointerDown starts a gesture at a point relative to the grid's top-left
// corner, in grid units. index is the entry under the pointer or -1.
func (t *TableItem) PointerDown(index int, at schedule.Point) {
	t.sensor.Press(index, at)
}

// PointerMove feeds pointer motion and reports whether a drag is active.
func (t *TableItem) PointerMove(at schedule.Point) bool {
	return t.sensor.Move(at)
}

// PointerUp finishes a gesture. A drag is snapped and sent to DragEnd. A
// click on an empty cell opens the search dialog for that cell. Clicks on
// entries are returned to the caller untouched.
func (t *TableItem) PointerUp(at schedule.Point, entries []schedule.Entry) (Gesture, error) {
	g, ok := t.sensor.Release(at)
	if !ok {
		return g, nil
	}

	if g.Dragged {
		if g.Index < 0 || g.Index >= len(entries) {
			return g, fmt.Errorf("drag in %s: %w", t.ID, schedule.ErrEntryNotFound)
		}
		snapped := t.Snap(g.Delta, entries[g.Index])
		return g, t.DragEnd(schedule.DragEvent{
			ActiveID: schedule.ActiveID(string(t.ID), g.Index),
			Delta:    snapped,
		})
	}

	if g.Index >= 0 {
		return g, nil
	}
	day, slot, ok := t.geometry.CellAt(schedule.Point{}, g.Origin)
	if !ok {
		return g, nil
	}
	return g, t.TimeClick(day, slot)
}

// Snap applies the grid modifier to a raw transform of entry e.
func (t *TableItem) Snap(transform schedule.Point, e schedule.Entry) schedule.Point {
	origin := schedule.Point{}
	return t.geometry.Snap(transform, t.geometry.EntryRect(origin, e), t.geometry.ContainerRect(origin))
}

// Preview returns where the dragged entry would land if released now.
func (t *TableItem) Preview(entries []schedule.Entry) (int, schedule.Entry, bool) {
	if !t.sensor.Dragging() {
		return -1, schedule.Entry{}, false
	}
	index := t.sensor.Active()
	if index < 0 || index >= len(entries) {
		return -1, schedule.Entry{}, false
	}
	days, slots := t.geometry.Offsets(t.Snap(t.sensor.Delta(), entries[index]))
	moved, err := schedule.Translate(entries[index], days, slots)
	if err != nil {
		return -1, schedule.Entry{}, false
	}
	return index, moved, true
}
