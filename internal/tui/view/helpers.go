package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PadLinesWithBackground pads content to width/height with a background color.
// Lines wider than width are left alone; extra lines are dropped.
func PadLinesWithBackground(content string, width, height int, bg lipgloss.Color) string {
	if width <= 0 || height <= 0 {
		return content
	}
	lines := strings.Split(content, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	lines = lines[:height]

	fill := lipgloss.NewStyle().Background(bg)
	for i, line := range lines {
		if w := lipgloss.Width(line); w < width {
			lines[i] = line + fill.Render(strings.Repeat(" ", width-w))
		}
	}
	return strings.Join(lines, "\n")
}

// PadLine pads a single line to width with a background color.
func PadLine(line string, width int, bg lipgloss.Color) string {
	return PadLinesWithBackground(line, width, 1, bg)
}
