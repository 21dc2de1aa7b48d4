package view

import (
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestFitCell(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{name: "pads", in: "Mon", width: 6, want: "Mon   "},
		{name: "exact", in: "Friday", width: 6, want: "Friday"},
		{name: "truncates", in: "Data Structures", width: 8, want: "Data St…"},
		{name: "zero width", in: "x", width: 0, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FitCell(tt.in, tt.width); got != tt.want {
				t.Errorf("FitCell(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
		})
	}
}

func TestFitCell_WideRunes(t *testing.T) {
	got := FitCell("자료구조론", 7)
	if w := runewidth.StringWidth(got); w != 7 {
		t.Fatalf("width of %q = %d, want 7", got, w)
	}
}

func TestCenter(t *testing.T) {
	if got := Center("Mon", 9); got != "   Mon   " {
		t.Errorf("Center = %q", got)
	}
	if got := Center("Mon", 8); got != "  Mon   " {
		t.Errorf("Center even = %q", got)
	}
}
