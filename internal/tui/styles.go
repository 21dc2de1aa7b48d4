// Package tui provides the terminal user interface for timetable.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/timetable/internal/tui/theme"
	"github.com/javiermolinar/timetable/internal/tui/view"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	palette *theme.Palette

	colorBg     lipgloss.Color
	colorBorder lipgloss.Color

	// Table chrome
	TitleStyle        lipgloss.Style
	TitleFocusedStyle lipgloss.Style
	BorderStyle       lipgloss.Style
	BorderFocused     lipgloss.Style
	ButtonStyle       lipgloss.Style
	ButtonDangerStyle lipgloss.Style
	ButtonDisabled    lipgloss.Style

	// Grid
	DayHeaderStyle  lipgloss.Style
	TimeColumnStyle lipgloss.Style
	EmptyCellStyle  lipgloss.Style
	CursorStyle     lipgloss.Style
	GhostStyle      lipgloss.Style

	// Footer
	StatusStyle lipgloss.Style
	ErrorStyle  lipgloss.Style
	HelpStyle   lipgloss.Style
	ModeStyle   lipgloss.Style

	// Modal
	ModalBgColor           lipgloss.Color
	ModalBackdropColor     lipgloss.Color
	ModalStyle             lipgloss.Style
	ModalHeaderStyle       lipgloss.Style
	ModalTitleStyle        lipgloss.Style
	ModalFooterStyle       lipgloss.Style
	ModalBodyStyle         lipgloss.Style
	ModalMetaStyle         lipgloss.Style
	ModalInputTextStyle    lipgloss.Style
	ModalInputCursorStyle  lipgloss.Style
	ModalPlaceholderStyle  lipgloss.Style
	ModalResultStyle       lipgloss.Style
	ModalResultActiveStyle lipgloss.Style
	ModalMatchStyle        lipgloss.Style

	AppStyle lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)
	s := &Styles{
		palette:     p,
		colorBg:     p.Bg,
		colorBorder: p.FgMuted,
	}

	base := lipgloss.NewStyle().Background(p.Bg).Foreground(p.Fg)

	s.TitleStyle = base.Bold(true)
	s.TitleFocusedStyle = base.Bold(true).Foreground(p.Accent)
	s.BorderStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.colorBorder).
		BorderBackground(s.colorBg)
	s.BorderFocused = s.BorderStyle.BorderForeground(p.Accent)
	s.ButtonStyle = lipgloss.NewStyle().Foreground(p.Accent).Background(p.BgHighlight)
	s.ButtonDangerStyle = lipgloss.NewStyle().Foreground(p.Danger).Background(p.BgHighlight)
	s.ButtonDisabled = lipgloss.NewStyle().Foreground(p.FgMuted).Background(p.Bg).Faint(true)

	s.DayHeaderStyle = base.Bold(true).Align(lipgloss.Center)
	s.TimeColumnStyle = lipgloss.NewStyle().Foreground(p.FgMuted).Background(p.Bg)
	s.EmptyCellStyle = lipgloss.NewStyle().Foreground(p.FgMuted).Background(p.Bg)
	s.CursorStyle = lipgloss.NewStyle().Foreground(p.Fg).Background(p.BgSelection).Bold(true)
	s.GhostStyle = lipgloss.NewStyle().Foreground(p.TextOnWarning).Background(p.Warning).Bold(true)

	s.StatusStyle = base.Foreground(p.Accent)
	s.ErrorStyle = base.Foreground(p.Danger)
	s.HelpStyle = base.Foreground(p.FgMuted)
	s.ModeStyle = lipgloss.NewStyle().Foreground(p.TextOnWarning).Background(p.Warning).Bold(true).Padding(0, 1)

	m := p.Modal
	s.ModalBgColor = m.Bg
	s.ModalBackdropColor = p.BgSelection
	s.ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.Border).
		BorderBackground(m.Bg).
		Background(m.Bg).
		Foreground(m.Text).
		Padding(1, 2)
	s.ModalHeaderStyle = lipgloss.NewStyle().Background(m.Bg)
	s.ModalTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(m.Border).Background(m.Bg)
	s.ModalFooterStyle = lipgloss.NewStyle().Foreground(m.Muted).Background(m.Bg)
	s.ModalBodyStyle = lipgloss.NewStyle().Foreground(m.Text).Background(m.Bg)
	s.ModalMetaStyle = lipgloss.NewStyle().Foreground(m.Muted).Background(m.Bg)
	s.ModalInputTextStyle = lipgloss.NewStyle().Foreground(m.Text).Background(m.Bg)
	s.ModalInputCursorStyle = lipgloss.NewStyle().Foreground(m.Border)
	s.ModalPlaceholderStyle = lipgloss.NewStyle().Foreground(m.Muted).Background(m.Bg)
	s.ModalResultStyle = lipgloss.NewStyle().Foreground(m.Text).Background(m.Bg)
	s.ModalResultActiveStyle = lipgloss.NewStyle().Foreground(m.Text).Background(m.Highlight).Bold(true)
	s.ModalMatchStyle = lipgloss.NewStyle().Foreground(m.Match).Underline(true)

	s.AppStyle = lipgloss.NewStyle().Background(p.Bg)

	return s
}

// Block returns the cell style of a lecture block.
func (s *Styles) Block(lectureID string) lipgloss.Style {
	c := s.palette.Block(lectureID)
	return lipgloss.NewStyle().Background(c.Bg).Foreground(c.Fg)
}

// DimmedBlock returns the style of a block that is being moved away.
func (s *Styles) DimmedBlock(lectureID string) lipgloss.Style {
	c := s.palette.Block(lectureID)
	return lipgloss.NewStyle().Background(c.Dimmed).Foreground(s.palette.FgMuted)
}

// ModalStyles returns the subset used by view.RenderModalFrame.
func (s *Styles) ModalStyles() view.ModalStyles {
	return view.ModalStyles{
		ModalHeaderStyle: s.ModalHeaderStyle,
		ModalTitleStyle:  s.ModalTitleStyle,
		ModalFooterStyle: s.ModalFooterStyle,
		ModalStyle:       s.ModalStyle,
		ModalBodyStyle:   s.ModalBodyStyle,
	}
}
