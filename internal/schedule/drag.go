package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// DragEvent is the end of a drag gesture on one grid.
type DragEvent struct {
	// ActiveID identifies the dragged block as "<prefix>:<index>".
	ActiveID string
	// Delta is the snapped transform.
	Delta Point
}

// ActiveID builds the drag id of the entry at index.
func ActiveID(prefix string, index int) string {
	return prefix + ":" + strconv.Itoa(index)
}

// ParseActiveID extracts the entry index from a drag id. Only the last
// ":"-separated segment is meaningful.
func ParseActiveID(id string) (int, error) {
	sep := strings.LastIndex(id, ":")
	if sep < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidActiveID, id)
	}
	index, err := strconv.Atoi(id[sep+1:])
	if err != nil || index < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidActiveID, id)
	}
	return index, nil
}

// Translate shifts an entry by whole days and slots.
// Placements that leave DayLabels or [1, SlotCount] are rejected with ErrOutOfRange.
func Translate(e Entry, days, slots int) (Entry, error) {
	col := DayIndex(e.Day)
	if col < 0 {
		return e, fmt.Errorf("%w: %q", ErrUnknownDay, e.Day)
	}
	if len(e.Range) == 0 {
		return e, ErrEmptyRange
	}

	newCol := col + days
	if newCol < 0 || newCol >= len(DayLabels) {
		return e, fmt.Errorf("%w: day offset %d from %s", ErrOutOfRange, days, e.Day)
	}
	if e.Start()+slots < 1 || e.End()+slots > SlotCount {
		return e, fmt.Errorf("%w: slot offset %d from %d-%d", ErrOutOfRange, slots, e.Start(), e.End())
	}

	moved := e
	moved.Day = DayLabels[newCol]
	moved.Range = make([]int, len(e.Range))
	for i, slot := range e.Range {
		moved.Range[i] = slot + slots
	}
	return moved, nil
}

// Move applies a finished drag to an entry list. The result is a new slice in
// which only the dragged entry is replaced; entries is never modified.
func Move(entries []Entry, ev DragEvent, g Geometry) ([]Entry, error) {
	index, err := ParseActiveID(ev.ActiveID)
	if err != nil {
		return entries, err
	}
	if index >= len(entries) {
		return entries, fmt.Errorf("%w: index %d of %d", ErrEntryNotFound, index, len(entries))
	}

	days, slots := g.Offsets(ev.Delta)
	moved, err := Translate(entries[index], days, slots)
	if err != nil {
		return entries, err
	}

	next := make([]Entry, len(entries))
	copy(next, entries)
	next[index] = moved
	return next, nil
}

// Delete returns the entries that do not cover (day, slot), and whether any
// entry was dropped. When nothing matches, entries is returned as is.
func Delete(entries []Entry, day string, slot int) ([]Entry, bool) {
	kept := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Covers(day, slot) {
			continue
		}
		kept = append(kept, e)
	}
	if len(kept) == len(entries) {
		return entries, false
	}
	return kept, true
}

// At returns the index of the first entry covering (day, slot), or -1.
func At(entries []Entry, day string, slot int) int {
	for i, e := range entries {
		if e.Covers(day, slot) {
			return i
		}
	}
	return -1
}
