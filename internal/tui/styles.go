package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/rota/internal/tui/theme"
	"github.com/javiermolinar/rota/internal/visit"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	palette *theme.Palette

	TitleStyle lipgloss.Style
	TitleMeta  lipgloss.Style

	RulerStyle     lipgloss.Style
	RulerHourStyle lipgloss.Style

	GutterStyle     lipgloss.Style
	GutterPoolStyle lipgloss.Style

	RowStyle    lipgloss.Style
	RowAltStyle lipgloss.Style

	GhostStyle   lipgloss.Style
	PreviewStyle lipgloss.Style
	NowStyle     lipgloss.Style

	StatusStyle lipgloss.Style
	ToastStyle  lipgloss.Style
	ErrorStyle  lipgloss.Style
	HelpStyle   lipgloss.Style

	HelpBoxColor lipgloss.Color
}

// NewStyles creates styles from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)

	return &Styles{
		palette: p,

		TitleStyle: lipgloss.NewStyle().Bold(true).Foreground(p.Accent).Background(p.Bg),
		TitleMeta:  lipgloss.NewStyle().Foreground(p.FgMuted).Background(p.Bg),

		RulerStyle:     lipgloss.NewStyle().Foreground(p.FgMuted).Background(p.BgSelection),
		RulerHourStyle: lipgloss.NewStyle().Bold(true).Foreground(p.Fg).Background(p.BgSelection),

		GutterStyle:     lipgloss.NewStyle().Foreground(p.Accent).Background(p.Bg),
		GutterPoolStyle: lipgloss.NewStyle().Italic(true).Foreground(p.Warning).Background(p.Bg),

		RowStyle:    lipgloss.NewStyle().Foreground(p.FgMuted).Background(p.Bg),
		RowAltStyle: lipgloss.NewStyle().Foreground(p.FgMuted).Background(p.BgHighlight),

		GhostStyle:   lipgloss.NewStyle().Bold(true).Foreground(p.Fg).Background(p.GhostBg),
		PreviewStyle: lipgloss.NewStyle().Foreground(p.Warning).Background(p.Bg),
		NowStyle:     lipgloss.NewStyle().Foreground(p.Current).Background(p.Bg),

		StatusStyle: lipgloss.NewStyle().Foreground(p.FgMuted).Background(p.Bg),
		ToastStyle:  lipgloss.NewStyle().Bold(true).Foreground(p.TextOnAccent).Background(p.Accent),
		ErrorStyle:  lipgloss.NewStyle().Bold(true).Foreground(p.TextOnCurrent).Background(p.Current),
		HelpStyle:   lipgloss.NewStyle().Foreground(p.FgMuted).Background(p.Bg),

		HelpBoxColor: p.BgSelection,
	}
}

// BlockStyle returns the style of a static visit block.
func (s *Styles) BlockStyle(v visit.Visit) lipgloss.Style {
	bc := s.palette.Block(v.Category)
	st := lipgloss.NewStyle().Foreground(bc.Text).Background(bc.Bg)
	switch v.Status {
	case visit.StatusCompleted:
		st = st.Background(bc.DoneBg).Faint(true)
	case visit.StatusInProgress:
		st = st.Bold(true)
	}
	return st
}

// BlockEdgeStyle colors the left edge marker of a block.
func (s *Styles) BlockEdgeStyle(v visit.Visit) lipgloss.Style {
	bc := s.palette.Block(v.Category)
	bg := bc.Bg
	if v.Status == visit.StatusCompleted {
		bg = bc.DoneBg
	}
	return lipgloss.NewStyle().Foreground(bc.Accent).Background(bg)
}

// RowBackground returns the stripe style for the displayed row at index i.
func (s *Styles) RowBackground(i int) lipgloss.Style {
	if i%2 == 1 {
		return s.RowAltStyle
	}
	return s.RowStyle
}
