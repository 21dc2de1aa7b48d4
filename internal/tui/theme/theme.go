// Package theme provides color themes for the TUI.
package theme

import (
	"embed"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pelletier/go-toml/v2"
)

//go:embed embedded/*.toml
var embeddedThemes embed.FS

// Theme holds all colors for a TUI theme.
type Theme struct {
	Name        string   `toml:"name"`
	Bg          string   `toml:"bg"`           // Base background
	BgHighlight string   `toml:"bg_highlight"` // Table body, subtle highlight
	BgSelection string   `toml:"bg_selection"` // Cursor, selection
	Fg          string   `toml:"fg"`           // Primary foreground
	FgMuted     string   `toml:"fg_muted"`     // Grid lines, time labels
	Accent      string   `toml:"accent"`       // Titles, focused table border
	Warning     string   `toml:"warning"`      // Move mode, drag ghost
	Danger      string   `toml:"danger"`       // Remove button, errors
	Blocks      []string `toml:"blocks"`       // Lecture block colors, picked per lecture

	// Modal palette (can override base theme values)
	BaseBg      string `toml:"base_bg"`
	ModalBorder string `toml:"modal_border"`
	TextPrimary string `toml:"text_primary"`
	TextMuted   string `toml:"text_muted"`
	Highlight   string `toml:"highlight"`
}

// Color returns a lipgloss.Color for the given hex string.
func Color(hex string) lipgloss.Color {
	return lipgloss.Color(hex)
}

// Load loads a theme by name from embedded files.
// Falls back to mocha if the theme is not found.
func Load(name string) (*Theme, error) {
	if name == "" {
		name = "mocha"
	}
	name = strings.ToLower(name)

	data, err := embeddedThemes.ReadFile("embedded/" + name + ".toml")
	if err != nil {
		if name != "mocha" {
			return Load("mocha")
		}
		return nil, fmt.Errorf("loading theme %q: %w", name, err)
	}

	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing theme %q: %w", name, err)
	}
	t.applyDefaults()

	return &t, nil
}

func (t *Theme) applyDefaults() {
	t.BaseBg = coalesce(t.BaseBg, t.BgHighlight, t.Bg)
	t.ModalBorder = coalesce(t.ModalBorder, t.Accent)
	t.TextPrimary = coalesce(t.TextPrimary, t.Fg)
	t.TextMuted = coalesce(t.TextMuted, t.FgMuted)
	t.Highlight = coalesce(t.Highlight, t.BgSelection, t.Accent)
	t.Danger = coalesce(t.Danger, t.Warning, t.Accent)
	if len(t.Blocks) == 0 {
		t.Blocks = []string{t.Accent}
	}
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Available returns a list of available theme names.
func Available() []string {
	return []string{"mocha", "latte"}
}

// IsAvailable reports whether a theme name is available.
func IsAvailable(name string) bool {
	return slices.Contains(Available(), strings.ToLower(name))
}
