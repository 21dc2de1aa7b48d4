package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ModalStyles groups the styles needed to render modal frames.
type ModalStyles struct {
	ModalHeaderStyle lipgloss.Style
	ModalTitleStyle  lipgloss.Style
	ModalFooterStyle lipgloss.Style
	ModalStyle       lipgloss.Style
	ModalBodyStyle   lipgloss.Style
}

// RenderModalFrame renders a modal with the provided title, body, and footer.
func RenderModalFrame(title, body, footer string, styles ModalStyles) string {
	var b strings.Builder

	b.WriteString(styles.ModalHeaderStyle.Render(styles.ModalTitleStyle.Render(title)))
	if body != "" {
		b.WriteString("\n\n")
		b.WriteString(body)
	}
	if footer != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.ModalFooterStyle.Render(footer))
	}

	return styles.ModalStyle.Render(b.String())
}
