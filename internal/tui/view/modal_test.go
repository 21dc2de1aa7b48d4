package view

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestRenderModalFrame_IncludesSections(t *testing.T) {
	styles := ModalStyles{
		ModalStyle: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()),
	}

	out := RenderModalFrame("Add lecture", "body text", "[Esc] Close", styles)
	for _, want := range []string{"Add lecture", "body text", "[Esc] Close", "╭"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in modal output:\n%s", want, out)
		}
	}
}

func TestRenderModalFrame_OmitsEmptyFooter(t *testing.T) {
	out := RenderModalFrame("Title", "", "", ModalStyles{})
	if strings.Contains(out, "\n") {
		t.Fatalf("expected a single line, got %q", out)
	}
}
