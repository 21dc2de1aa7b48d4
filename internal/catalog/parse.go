package catalog

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/javiermolinar/timetable/internal/schedule"
)

// ErrBadSchedule is returned for schedule strings that cannot be parsed.
var ErrBadSchedule = errors.New("malformed schedule")

// blockPattern matches "Mon1~3(R101)", "Wed4" and "Fri7~8".
var blockPattern = regexp.MustCompile(`^([A-Za-z]{3})(\d+)(?:~(\d+))?(?:\(([^)]*)\))?$`)

// ParseSchedule turns a lecture's schedule string into timetable entries,
// one per block. Every entry carries the lecture.
func ParseSchedule(l schedule.Lecture) ([]schedule.Entry, error) {
	fields := strings.Fields(l.Schedule)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: lecture %s has no schedule", ErrBadSchedule, l.ID)
	}

	entries := make([]schedule.Entry, 0, len(fields))
	for _, f := range fields {
		e, err := parseBlock(f)
		if err != nil {
			return nil, fmt.Errorf("lecture %s: %w", l.ID, err)
		}
		e.Lecture = l
		entries = append(entries, e)
	}
	return entries, nil
}

func parseBlock(s string) (schedule.Entry, error) {
	m := blockPattern.FindStringSubmatch(s)
	if m == nil {
		return schedule.Entry{}, fmt.Errorf("%w: %q", ErrBadSchedule, s)
	}

	day := normalizeDay(m[1])
	from, _ := strconv.Atoi(m[2])
	to := from
	if m[3] != "" {
		to, _ = strconv.Atoi(m[3])
	}

	e := schedule.Entry{
		Day:   day,
		Range: schedule.SlotRange(from, to),
		Room:  m[4],
	}
	if err := e.Validate(); err != nil {
		return schedule.Entry{}, fmt.Errorf("%w: %q: %w", ErrBadSchedule, s, err)
	}
	return e, nil
}

// normalizeDay maps "mon" or "MON" to "Mon".
func normalizeDay(d string) string {
	return strings.ToUpper(d[:1]) + strings.ToLower(d[1:])
}

// FormatSchedule renders entries back into schedule notation.
func FormatSchedule(entries []schedule.Entry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		var b strings.Builder
		b.WriteString(e.Day)
		b.WriteString(strconv.Itoa(e.Start()))
		if e.End() != e.Start() {
			b.WriteString("~")
			b.WriteString(strconv.Itoa(e.End()))
		}
		if e.Room != "" {
			fmt.Fprintf(&b, "(%s)", e.Room)
		}
		parts = append(parts, b.String())
	}
	return strings.Join(parts, " ")
}
