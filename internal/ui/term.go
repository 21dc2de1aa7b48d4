package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the CLI.
var (
	// Lecture titles: bold cyan
	colorTitle = color.New(color.FgCyan, color.Bold)

	// Fuzzy matches inside titles
	colorMatch = color.New(color.FgYellow, color.Underline)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Confirmations
	colorStats = color.New(color.FgGreen)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

func formatTitle(s string) string {
	return colorTitle.Sprint(s)
}

func formatMatch(s string) string {
	return colorMatch.Sprint(s)
}

func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

func formatStats(s string) string {
	return colorStats.Sprint(s)
}

func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
