package theme

import (
	"fmt"
	"hash/fnv"
	"math"
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// Palette holds precomputed colors derived from a Theme.
type Palette struct {
	Bg          lipgloss.Color
	BgHighlight lipgloss.Color
	BgSelection lipgloss.Color
	Fg          lipgloss.Color
	FgMuted     lipgloss.Color
	Accent      lipgloss.Color
	Warning     lipgloss.Color
	Danger      lipgloss.Color

	TextOnAccent  lipgloss.Color
	TextOnWarning lipgloss.Color
	TextOnDanger  lipgloss.Color

	// Blocks are lecture block backgrounds, already shaded for the theme.
	Blocks []BlockColors

	Modal ModalColors
}

// BlockColors is one lecture block shade set.
type BlockColors struct {
	Bg     lipgloss.Color // placed block
	Fg     lipgloss.Color // text on Bg
	Dimmed lipgloss.Color // block left behind while it is being moved
}

// ModalColors holds modal-specific colors derived from a Theme.
type ModalColors struct {
	Bg          lipgloss.Color
	Border      lipgloss.Color
	Text        lipgloss.Color
	Muted       lipgloss.Color
	Highlight   lipgloss.Color
	Match       lipgloss.Color
	ReverseText lipgloss.Color
}

// NewPalette derives a Palette from the provided Theme.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		t, _ = Load("mocha")
	}
	th := *t
	th.applyDefaults()

	light := isLightTheme(th.Bg)

	p := &Palette{
		Bg:          lipgloss.Color(th.Bg),
		BgHighlight: lipgloss.Color(th.BgHighlight),
		BgSelection: lipgloss.Color(th.BgSelection),
		Fg:          lipgloss.Color(th.Fg),
		FgMuted:     lipgloss.Color(th.FgMuted),
		Accent:      lipgloss.Color(th.Accent),
		Warning:     lipgloss.Color(th.Warning),
		Danger:      lipgloss.Color(th.Danger),

		TextOnAccent:  lipgloss.Color(chooseTextColor(th.Accent, th.Bg, th.Fg)),
		TextOnWarning: lipgloss.Color(chooseTextColor(th.Warning, th.Bg, th.Fg)),
		TextOnDanger:  lipgloss.Color(chooseTextColor(th.Danger, th.Bg, th.Fg)),

		Modal: ModalColors{
			Bg:          lipgloss.Color(th.BaseBg),
			Border:      lipgloss.Color(th.ModalBorder),
			Text:        lipgloss.Color(th.TextPrimary),
			Muted:       lipgloss.Color(th.TextMuted),
			Highlight:   lipgloss.Color(th.Highlight),
			Match:       lipgloss.Color(th.Accent),
			ReverseText: lipgloss.Color(th.BaseBg),
		},
	}

	for _, hex := range th.Blocks {
		bg := blockBg(hex, th.Bg, light)
		p.Blocks = append(p.Blocks, BlockColors{
			Bg:     lipgloss.Color(bg),
			Fg:     lipgloss.Color(chooseTextColor(bg, th.Fg, th.Bg)),
			Dimmed: lipgloss.Color(blendColors(bg, th.Bg, 0.65)),
		})
	}

	return p
}

// Block returns the block colors for a lecture. The same key always maps
// to the same colors; an empty key uses the first block.
func (p *Palette) Block(key string) BlockColors {
	if len(p.Blocks) == 0 {
		return BlockColors{Bg: p.BgSelection, Fg: p.Fg, Dimmed: p.BgHighlight}
	}
	if key == "" {
		return p.Blocks[0]
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return p.Blocks[h.Sum32()%uint32(len(p.Blocks))]
}

func isLightTheme(bg string) bool {
	return relativeLuminance(bg) > 0.55
}

// blockBg turns a bright accent into a block background readable under text.
func blockBg(accent, bg string, light bool) string {
	if light {
		return blendColors(accent, bg, 0.70)
	}
	return darkenColor(accent, 0.55, 40)
}

// darkenColor scales each channel by factor, keeping it at or above floor.
func darkenColor(hex string, factor float64, floor int) string {
	r, g, b, ok := parseHexColor(hex)
	if !ok {
		return hex
	}
	scale := func(c int) int {
		return max(int(float64(c)*factor), floor)
	}
	return formatHexColor(scale(r), scale(g), scale(b))
}

// parseHexColor splits a #rrggbb string into its channels.
func parseHexColor(hex string) (r, g, b int, ok bool) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), true
}

func formatHexColor(r, g, b int) string {
	return fmt.Sprintf("#%02x%02x%02x", clampChannel(r), clampChannel(g), clampChannel(b))
}

func clampChannel(c int) int {
	return min(max(c, 0), 255)
}

func chooseTextColor(bg, lightText, darkText string) string {
	if contrastRatio(bg, lightText) >= contrastRatio(bg, darkText) {
		return lightText
	}
	return darkText
}

func contrastRatio(a, b string) float64 {
	l1 := relativeLuminance(a)
	l2 := relativeLuminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

func relativeLuminance(hex string) float64 {
	r, g, b, ok := parseHexColor(hex)
	if !ok {
		return 0
	}
	return 0.2126*srgbToLinear(r) + 0.7152*srgbToLinear(g) + 0.0722*srgbToLinear(b)
}

func srgbToLinear(c int) float64 {
	v := float64(c) / 255.0
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// blendColors mixes b into a; ratio 0 keeps a, ratio 1 yields b.
func blendColors(a, b string, ratio float64) string {
	ar, ag, ab, okA := parseHexColor(a)
	br, bg, bb, okB := parseHexColor(b)
	if !okA || !okB {
		return a
	}
	ratio = math.Min(math.Max(ratio, 0), 1)
	mix := func(x, y int) int {
		return int(float64(x)*(1-ratio) + float64(y)*ratio)
	}
	return formatHexColor(mix(ar, br), mix(ag, bg), mix(ab, bb))
}
