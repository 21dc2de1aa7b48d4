// Package schedule defines the core timetable types and the drag math.
package schedule

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Validation errors.
var (
	ErrEmptyRange    = errors.New("range cannot be empty")
	ErrUnsortedRange = errors.New("range must be contiguous and ascending")
	ErrUnknownDay    = errors.New("day is not a known day label")
	ErrSlotRange     = errors.New("slot outside the timetable")
)

// Domain errors.
var (
	ErrTableNotFound   = errors.New("table not found")
	ErrEntryNotFound   = errors.New("entry not found")
	ErrInvalidActiveID = errors.New("invalid drag id")
	ErrOutOfRange      = errors.New("placement outside the timetable")
	ErrLastTable       = errors.New("cannot remove the last table")
)

// DayLabels is the fixed column order of every timetable.
var DayLabels = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// SlotCount is the number of time-slot rows. Slots are numbered 1..SlotCount.
const SlotCount = 24

// Lecture holds the descriptive fields of a class.
type Lecture struct {
	ID      string `toml:"id"`
	Title   string `toml:"title"`
	Major   string `toml:"major"`
	Grade   int    `toml:"grade"`
	Credits string `toml:"credits"`

	// Schedule uses the "Mon1~3(R101) Wed4(R102)" notation.
	Schedule string `toml:"schedule"`
}

// Entry is one class block on a timetable.
type Entry struct {
	Day     string
	Range   []int // sorted, contiguous slot indices
	Room    string
	Lecture Lecture
}

// DayIndex returns the column of a day label, or -1.
func DayIndex(day string) int {
	return slices.Index(DayLabels, day)
}

// IsDay reports whether day is one of DayLabels.
func IsDay(day string) bool {
	return DayIndex(day) >= 0
}

// Validate checks the entry invariants.
func (e Entry) Validate() error {
	if !IsDay(e.Day) {
		return fmt.Errorf("%w: %q", ErrUnknownDay, e.Day)
	}
	if len(e.Range) == 0 {
		return ErrEmptyRange
	}
	for i, slot := range e.Range {
		if slot < 1 || slot > SlotCount {
			return fmt.Errorf("%w: %d", ErrSlotRange, slot)
		}
		if i > 0 && slot != e.Range[i-1]+1 {
			return ErrUnsortedRange
		}
	}
	return nil
}

// Covers reports whether the entry sits on day and occupies slot.
func (e Entry) Covers(day string, slot int) bool {
	return e.Day == day && slices.Contains(e.Range, slot)
}

// Start returns the first slot of the entry.
func (e Entry) Start() int {
	if len(e.Range) == 0 {
		return 0
	}
	return e.Range[0]
}

// End returns the last slot of the entry.
func (e Entry) End() int {
	if len(e.Range) == 0 {
		return 0
	}
	return e.Range[len(e.Range)-1]
}

// Title returns a display title for the entry.
func (e Entry) Title() string {
	if e.Lecture.Title != "" {
		return e.Lecture.Title
	}
	return e.Lecture.ID
}

// TimeLabel returns the "HH:MM~HH:MM" span from the first slot's start to
// the last slot's end.
func (e Entry) TimeLabel() string {
	first, last := SlotLabel(e.Start()), SlotLabel(e.End())
	if first == "" || last == "" {
		return ""
	}
	start, _, _ := strings.Cut(first, "~")
	_, end, _ := strings.Cut(last, "~")
	return start + "~" + end
}

// Clone returns a copy that shares no memory with e.
func (e Entry) Clone() Entry {
	e.Range = slices.Clone(e.Range)
	return e
}

// SlotRange builds the contiguous range [from, to].
func SlotRange(from, to int) []int {
	if to < from {
		return nil
	}
	r := make([]int, 0, to-from+1)
	for s := from; s <= to; s++ {
		r = append(r, s)
	}
	return r
}

// SlotLabel returns the "HH:MM~HH:MM" label of a 1-based slot.
// Slots 1..18 are 30 minutes from 09:00, slots 19..24 are 55 minutes from 18:00.
func SlotLabel(slot int) string {
	start, length := slotBounds(slot)
	if length == 0 {
		return ""
	}
	return fmt.Sprintf("%s~%s", clock(start), clock(start+length))
}

// SlotStart returns the "HH:MM" start time of a 1-based slot.
func SlotStart(slot int) string {
	start, length := slotBounds(slot)
	if length == 0 {
		return ""
	}
	return clock(start)
}

const (
	daySlots      = 18
	dayStart      = 9 * 60
	dayLength     = 30
	eveningStart  = 18 * 60
	eveningLength = 55
)

func slotBounds(slot int) (start, length int) {
	switch {
	case slot < 1 || slot > SlotCount:
		return 0, 0
	case slot <= daySlots:
		return dayStart + (slot-1)*dayLength, dayLength
	default:
		return eveningStart + (slot-daySlots-1)*eveningLength, eveningLength
	}
}

func clock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
