// Package theme provides color themes for the TUI.
package theme

import (
	"embed"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/rota/internal/visit"
)

//go:embed embedded/*.toml
var embeddedThemes embed.FS

// Theme holds all colors for a TUI theme.
type Theme struct {
	Name        string `toml:"name"`
	Bg          string `toml:"bg"`           // Base background
	BgHighlight string `toml:"bg_highlight"` // Alternate row stripe
	BgSelection string `toml:"bg_selection"` // Hour ruler, help box
	Fg          string `toml:"fg"`           // Primary foreground
	FgMuted     string `toml:"fg_muted"`     // Gridlines, muted labels
	Accent      string `toml:"accent"`       // Title, row names
	Current     string `toml:"current"`      // Current-time marker
	Warning     string `toml:"warning"`      // Ghost and drop preview

	// Visit categories
	PersonalCare  string `toml:"personal_care"`
	Medication    string `toml:"medication"`
	Meal          string `toml:"meal"`
	Companionship string `toml:"companionship"`
	Domestic      string `toml:"domestic"`
	Neutral       string `toml:"neutral"` // Unknown categories
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

	path := "embedded/" + name + ".toml"
	data, err := embeddedThemes.ReadFile(path)
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

// CategoryColor returns the accent for a visit category.
func (t *Theme) CategoryColor(c visit.Category) string {
	switch c {
	case visit.CategoryPersonalCare:
		return t.PersonalCare
	case visit.CategoryMedication:
		return t.Medication
	case visit.CategoryMeal:
		return t.Meal
	case visit.CategoryCompanionship:
		return t.Companionship
	case visit.CategoryDomestic:
		return t.Domestic
	default:
		return t.Neutral
	}
}

func (t *Theme) applyDefaults() {
	t.BgHighlight = coalesce(t.BgHighlight, t.Bg)
	t.BgSelection = coalesce(t.BgSelection, t.BgHighlight)
	t.Neutral = coalesce(t.Neutral, t.FgMuted, t.Fg)
	t.PersonalCare = coalesce(t.PersonalCare, t.Neutral)
	t.Medication = coalesce(t.Medication, t.Neutral)
	t.Meal = coalesce(t.Meal, t.Neutral)
	t.Companionship = coalesce(t.Companionship, t.Neutral)
	t.Domestic = coalesce(t.Domestic, t.Neutral)
	t.Warning = coalesce(t.Warning, t.Accent)
	t.Current = coalesce(t.Current, t.Accent)
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
	name = strings.ToLower(name)
	for _, themeName := range Available() {
		if themeName == name {
			return true
		}
	}
	return false
}
