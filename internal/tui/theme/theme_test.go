package theme

import (
	"testing"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		themeName string
		wantName  string
	}{
		{name: "load mocha theme", themeName: "mocha", wantName: "mocha"},
		{name: "load latte theme", themeName: "latte", wantName: "latte"},
		{name: "case insensitive", themeName: "LATTE", wantName: "latte"},
		{name: "empty name defaults to mocha", themeName: "", wantName: "mocha"},
		{name: "invalid theme falls back to mocha", themeName: "nonexistent", wantName: "mocha"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			theme, err := Load(tt.themeName)
			if err != nil {
				t.Fatalf("Load(%q) unexpected error: %v", tt.themeName, err)
			}
			if theme.Name != tt.wantName {
				t.Errorf("Load(%q).Name = %q, want %q", tt.themeName, theme.Name, tt.wantName)
			}
		})
	}
}

func TestLoad_ThemeColors(t *testing.T) {
	for _, name := range Available() {
		t.Run(name, func(t *testing.T) {
			theme, err := Load(name)
			if err != nil {
				t.Fatalf("Load(%s) unexpected error: %v", name, err)
			}

			colors := map[string]string{
				"Bg":          theme.Bg,
				"BgHighlight": theme.BgHighlight,
				"BgSelection": theme.BgSelection,
				"Fg":          theme.Fg,
				"FgMuted":     theme.FgMuted,
				"Accent":      theme.Accent,
				"Warning":     theme.Warning,
				"Danger":      theme.Danger,
				"BaseBg":      theme.BaseBg,
				"ModalBorder": theme.ModalBorder,
				"TextPrimary": theme.TextPrimary,
				"TextMuted":   theme.TextMuted,
				"Highlight":   theme.Highlight,
			}
			for i, hex := range theme.Blocks {
				colors["Blocks"+string(rune('0'+i))] = hex
			}

			for field, hex := range colors {
				if _, _, _, ok := parseHexColor(hex); !ok {
					t.Errorf("theme.%s = %q, want #rrggbb", field, hex)
				}
			}
			if len(theme.Blocks) < 2 {
				t.Errorf("expected several block colors, got %d", len(theme.Blocks))
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	th := &Theme{
		Bg:          "#101010",
		BgHighlight: "#202020",
		BgSelection: "#303030",
		Fg:          "#ffffff",
		FgMuted:     "#aaaaaa",
		Accent:      "#ff0000",
		Warning:     "#888888",
	}
	th.applyDefaults()

	if th.BaseBg != th.BgHighlight {
		t.Errorf("BaseBg = %q, want %q", th.BaseBg, th.BgHighlight)
	}
	if th.ModalBorder != th.Accent {
		t.Errorf("ModalBorder = %q, want %q", th.ModalBorder, th.Accent)
	}
	if th.Danger != th.Warning {
		t.Errorf("Danger = %q, want %q", th.Danger, th.Warning)
	}
	if len(th.Blocks) != 1 || th.Blocks[0] != th.Accent {
		t.Errorf("Blocks = %v, want [%s]", th.Blocks, th.Accent)
	}
}

func TestAvailable(t *testing.T) {
	available := Available()

	expected := []string{"mocha", "latte"}
	if len(available) != len(expected) {
		t.Fatalf("Available() returned %d themes, want %d", len(available), len(expected))
	}
	for i, want := range expected {
		if available[i] != want {
			t.Errorf("Available()[%d] = %q, want %q", i, available[i], want)
		}
	}
}

func TestIsAvailable(t *testing.T) {
	tests := []struct {
		name     string
		theme    string
		expected bool
	}{
		{name: "exact match", theme: "mocha", expected: true},
		{name: "case insensitive", theme: "Latte", expected: true},
		{name: "missing theme", theme: "unknown", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAvailable(tt.theme); got != tt.expected {
				t.Errorf("IsAvailable(%q) = %t, want %t", tt.theme, got, tt.expected)
			}
		})
	}
}

func TestColor(t *testing.T) {
	hex := "#89b4fa"
	c := Color(hex)
	if string(c) != hex {
		t.Errorf("Color(%q) = %q, want %q", hex, string(c), hex)
	}
}
