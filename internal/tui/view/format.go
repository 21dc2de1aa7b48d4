package view

import "github.com/mattn/go-runewidth"

// FitCell truncates s to width terminal columns and pads it with spaces so
// the result is exactly width columns wide. Wide runes count double.
func FitCell(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(s, width)
}

// Center places s in the middle of a width wide cell.
func Center(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = runewidth.Truncate(s, width, "")
	left := (width - runewidth.StringWidth(s)) / 2
	return runewidth.FillRight(runewidth.FillLeft(s, left+runewidth.StringWidth(s)), width)
}
