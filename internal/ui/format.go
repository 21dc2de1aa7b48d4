package ui

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/javiermolinar/timetable/internal/catalog"
	"github.com/javiermolinar/timetable/internal/schedule"
)

const (
	minTitleWidth = 12
	maxTitleWidth = 40
)

// titleWidth picks the title column width for a terminal of width w.
func titleWidth(w int) int {
	return min(max(w-44, minTitleWidth), maxTitleWidth)
}

// fit truncates or pads s to exactly width display cells.
func fit(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
}

// sortedEntries orders entries by day column, then start slot.
func sortedEntries(entries []schedule.Entry) []schedule.Entry {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b schedule.Entry) int {
		if d := schedule.DayIndex(a.Day) - schedule.DayIndex(b.Day); d != 0 {
			return d
		}
		return a.Start() - b.Start()
	})
	return sorted
}

// printTable prints one timetable, one entry per line.
func printTable(w io.Writer, pos int, id schedule.TableID, entries []schedule.Entry, width int) {
	fmt.Fprintf(w, "%s %s\n", formatHeader(fmt.Sprintf("=== Schedule %d ===", pos+1)), formatMuted(string(id)))
	if len(entries) == 0 {
		fmt.Fprintln(w, formatMuted("  (empty)"))
		return
	}

	tw := titleWidth(width)
	for _, e := range sortedEntries(entries) {
		fmt.Fprintf(w, "  %s %-11s  %s  %-6s %s\n",
			e.Day,
			e.TimeLabel(),
			formatTitle(fit(e.Title(), tw)),
			e.Room,
			formatMuted(e.Lecture.ID),
		)
	}
}

// printResult prints one search hit with the matched title characters
// highlighted.
func printResult(w io.Writer, r catalog.Result, width int) {
	tw := titleWidth(width)
	title := fit(r.Lecture.Title, tw)
	fmt.Fprintf(w, "  %-10s %s  %-6s %s\n",
		r.Lecture.ID,
		highlight(title, r.MatchedIndexes, len(r.Lecture.Title)),
		r.Lecture.Major,
		formatMuted(r.Lecture.Schedule),
	)
}

// highlight colors the bytes of s listed in matched. Offsets at or past
// limit belong to text after the title and are ignored.
func highlight(s string, matched []int, limit int) string {
	if len(matched) == 0 {
		return formatTitle(s)
	}
	var b strings.Builder
	for i, r := range s {
		ch := string(r)
		if i < limit && slices.Contains(matched, i) {
			b.WriteString(formatMatch(ch))
			continue
		}
		b.WriteString(formatTitle(ch))
	}
	return b.String()
}
