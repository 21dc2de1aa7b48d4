package view

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// FooterViewState holds the strings needed to render the footer section.
type FooterViewState struct {
	Width       int
	Mode        string // empty in normal mode
	StatusText  string
	HelpText    string
	ModeStyle   lipgloss.Style
	StatusStyle lipgloss.Style
	HelpStyle   lipgloss.Style
	Bg          lipgloss.Color
}

// RenderFooter renders the status line and the help line.
func RenderFooter(state FooterViewState) string {
	if state.Width <= 0 {
		return ""
	}

	status := ""
	if state.Mode != "" {
		status = state.ModeStyle.Render(state.Mode) + " "
	}
	status += state.StatusStyle.Render(ansi.Truncate(state.StatusText, max(state.Width-lipgloss.Width(status), 0), "…"))
	help := state.HelpStyle.Render(ansi.Truncate(state.HelpText, state.Width, "…"))

	return PadLinesWithBackground(status+"\n"+help, state.Width, 2, state.Bg)
}
