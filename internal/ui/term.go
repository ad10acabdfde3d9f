package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/javiermolinar/rota/internal/visit"
)

// Color definitions for consistent styling across the UI.
var (
	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Unallocated pool: yellow so unassigned work stands out
	colorPool = color.New(color.FgYellow, color.Bold)

	// Moves and other confirmations: green
	colorOK = color.New(color.FgGreen)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)

	categoryColors = map[visit.Category]*color.Color{
		visit.CategoryPersonalCare:  color.New(color.FgCyan),
		visit.CategoryMedication:    color.New(color.FgMagenta),
		visit.CategoryMeal:          color.New(color.FgYellow),
		visit.CategoryCompanionship: color.New(color.FgGreen),
		visit.CategoryDomestic:      color.New(color.FgBlue),
	}
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

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatPool formats the name of the unallocated row.
func formatPool(s string) string {
	return colorPool.Sprint(s)
}

// formatOK formats a confirmation.
func formatOK(s string) string {
	return colorOK.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}

// formatCategory colors a category label.
func formatCategory(c visit.Category) string {
	if col, ok := categoryColors[c]; ok {
		return col.Sprint(string(c))
	}
	return formatMuted(string(c))
}

// statusSymbol returns a one-character marker for a visit status.
func statusSymbol(s visit.Status) string {
	switch s {
	case visit.StatusInProgress:
		return "◐"
	case visit.StatusCompleted:
		return "●"
	default:
		return "○"
	}
}
