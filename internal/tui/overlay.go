package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// overlayMargin is the backdrop band drawn around modal content.
const overlayMargin = 1

// OverlayModel splices a modal box over the base view.
type OverlayModel struct {
	active  bool
	bgColor lipgloss.Color
}

// NewOverlayModel initializes an inactive overlay.
func NewOverlayModel() OverlayModel {
	return OverlayModel{}
}

// Show makes the overlay visible.
func (o *OverlayModel) Show() {
	o.active = true
}

// Hide hides the overlay.
func (o *OverlayModel) Hide() {
	o.active = false
}

// Active reports whether the overlay is visible.
func (o OverlayModel) Active() bool {
	return o.active
}

// SetBackground updates the backdrop color around the modal.
func (o *OverlayModel) SetBackground(color lipgloss.Color) {
	o.bgColor = color
}

// Render draws content centered on top of base. Base lines are cut with
// ansi.Cut so styled cells left and right of the box survive.
func (o OverlayModel) Render(base string, width, height int, content string) string {
	if !o.active || width <= 0 || height <= 0 {
		return base
	}

	box := o.box(content, width, height)
	if len(box) == 0 {
		return base
	}
	boxW := lipgloss.Width(box[0])
	top := max((height-len(box))/2, 0)
	left := max((width-boxW)/2, 0)

	lines := normalizeLines(base, width, height)
	for i, line := range box {
		row := top + i
		if row >= height {
			break
		}
		lines[row] = ansi.Cut(lines[row], 0, left) + line + ansi.Cut(lines[row], left+boxW, width)
	}
	return strings.Join(lines, "\n")
}

// box pads content to a rectangle and surrounds it with the backdrop margin.
func (o OverlayModel) box(content string, width, height int) []string {
	content = strings.TrimRight(content, "\n")
	if content == "" {
		return nil
	}
	rows := strings.Split(content, "\n")

	contentW := 0
	for _, r := range rows {
		contentW = max(contentW, lipgloss.Width(r))
	}
	boxW := min(contentW+2*overlayMargin, width)
	innerW := max(boxW-2*overlayMargin, 0)

	bg := o.backgroundSeq()
	blank := bg + strings.Repeat(" ", boxW) + ansi.ResetStyle
	margin := strings.Repeat(" ", boxW-innerW-overlayMargin)

	out := make([]string, 0, len(rows)+2*overlayMargin)
	for range overlayMargin {
		out = append(out, blank)
	}
	for _, r := range rows {
		w := lipgloss.Width(r)
		if w > innerW {
			r = ansi.Cut(r, 0, innerW)
			w = innerW
		}
		r = reapplyBackground(r+strings.Repeat(" ", innerW-w), bg)
		out = append(out, bg+strings.Repeat(" ", overlayMargin)+r+bg+margin+ansi.ResetStyle)
	}
	for range overlayMargin {
		out = append(out, blank)
	}
	if len(out) > height {
		out = out[:height]
	}
	return out
}

func (o OverlayModel) backgroundSeq() string {
	if o.bgColor == "" {
		return ""
	}
	return ansi.Style{}.BackgroundColor(ansi.HexColor(string(o.bgColor))).String()
}

// reapplyBackground restores the backdrop after every reset inside line.
func reapplyBackground(line, bgSeq string) string {
	if bgSeq == "" || line == "" {
		return line
	}
	line = strings.ReplaceAll(line, ansi.ResetStyle, ansi.ResetStyle+bgSeq)
	line = strings.ReplaceAll(line, "\x1b[0m", "\x1b[0m"+bgSeq)
	return strings.ReplaceAll(line, "\x1b[49m", "\x1b[49m"+bgSeq)
}

// normalizeLines pads or cuts base to exactly width x height cells.
func normalizeLines(base string, width, height int) []string {
	lines := strings.Split(base, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	lines = lines[:height]

	for i, line := range lines {
		w := lipgloss.Width(line)
		switch {
		case w > width:
			lines[i] = ansi.Cut(line, 0, width)
		case w < width:
			lines[i] = line + strings.Repeat(" ", width-w)
		}
	}
	return lines
}
