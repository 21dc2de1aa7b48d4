package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Cell is one rendered grid cell.
type Cell struct {
	Text  string
	Style lipgloss.Style
}

// GridViewState holds what RenderGrid needs to draw one timetable.
type GridViewState struct {
	Title     string // pre-rendered title line
	TimeWidth int
	ColWidth  int
	Days      []string
	Slots     []int // visible slot numbers, top to bottom

	TimeLabel func(slot int) string
	Cell      func(day string, slot int) Cell

	HeaderStyle lipgloss.Style
	TimeStyle   lipgloss.Style
	BorderStyle lipgloss.Style // must carry the border itself
	Bg          lipgloss.Color
}

// GridWidth returns the outer width of a grid, borders included.
func GridWidth(timeWidth, colWidth, days int) int {
	return timeWidth + days*colWidth + 2
}

// RenderGrid renders the title line and the bordered day/slot grid.
// The header row is the first line inside the border and each slot takes
// exactly one line, so screen rows map one to one onto slots.
func RenderGrid(state GridViewState) string {
	width := GridWidth(state.TimeWidth, state.ColWidth, len(state.Days))

	rows := make([]string, 0, len(state.Slots)+1)

	var header strings.Builder
	header.WriteString(state.TimeStyle.Render(FitCell("", state.TimeWidth)))
	for _, day := range state.Days {
		header.WriteString(state.HeaderStyle.Render(Center(day, state.ColWidth)))
	}
	rows = append(rows, header.String())

	for _, slot := range state.Slots {
		var row strings.Builder
		label := ""
		if state.TimeLabel != nil {
			label = state.TimeLabel(slot)
		}
		row.WriteString(state.TimeStyle.Render(FitCell(label, state.TimeWidth)))
		for _, day := range state.Days {
			c := Cell{}
			if state.Cell != nil {
				c = state.Cell(day, slot)
			}
			row.WriteString(c.Style.Render(FitCell(c.Text, state.ColWidth)))
		}
		rows = append(rows, row.String())
	}

	body := state.BorderStyle.Render(strings.Join(rows, "\n"))
	title := PadLine(state.Title, width, state.Bg)
	return title + "\n" + body
}
