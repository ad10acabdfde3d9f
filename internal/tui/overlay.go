package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	overlayPadX     = 2
	overlayPadY     = 1
	overlayMinWidth = 24
)

// OverlayModel draws an opaque box centred over the timeline.
type OverlayModel struct {
	active  bool
	bgColor lipgloss.Color
}

// NewOverlayModel initializes a hidden overlay.
func NewOverlayModel() OverlayModel {
	return OverlayModel{}
}

// Toggle flips the overlay visibility.
func (o *OverlayModel) Toggle() {
	o.active = !o.active
}

// Active reports whether the overlay is visible.
func (o OverlayModel) Active() bool {
	return o.active
}

// SetBackground updates the overlay background color.
func (o *OverlayModel) SetBackground(color lipgloss.Color) {
	o.bgColor = color
}

// Render splices the box holding content into base, which is expected to be
// width × height cells. Content wider or taller than the screen is cut.
func (o OverlayModel) Render(base string, width, height int, content string) string {
	if !o.active || width <= 0 || height <= 0 {
		return base
	}

	body := contentLines(content)
	contentW := 0
	for _, line := range body {
		contentW = max(contentW, lipgloss.Width(line))
	}
	boxW := min(max(contentW+2*overlayPadX, overlayMinWidth), width)
	boxH := min(len(body)+2*overlayPadY, height)

	top := (height - boxH) / 2
	left := (width - boxW) / 2

	box := o.box(body, boxW, boxH)
	lines := normalizeBase(base, width, height)
	for i, line := range box {
		row := top + i
		lines[row] = ansi.Cut(lines[row], 0, left) + line + ansi.Cut(lines[row], left+boxW, width)
	}
	return strings.Join(lines, "\n")
}

// box renders body inside a filled rectangle of boxW × boxH cells.
func (o OverlayModel) box(body []string, boxW, boxH int) []string {
	bg := ""
	if o.bgColor != "" {
		bg = ansi.Style{}.BackgroundColor(ansi.HexColor(string(o.bgColor))).String()
	}
	innerW := max(boxW-2*overlayPadX, 0)

	out := make([]string, boxH)
	for i := range out {
		idx := i - overlayPadY
		if idx < 0 || idx >= len(body) {
			out[i] = bg + strings.Repeat(" ", boxW) + ansi.ResetStyle
			continue
		}
		line := body[idx]
		if lipgloss.Width(line) > innerW {
			line = ansi.Cut(line, 0, innerW)
		}
		line += strings.Repeat(" ", innerW-lipgloss.Width(line))
		if bg != "" {
			// Inner resets would otherwise punch holes in the box background.
			line = strings.ReplaceAll(line, ansi.ResetStyle, ansi.ResetStyle+bg)
			line = strings.ReplaceAll(line, "\x1b[49m", "\x1b[49m"+bg)
		}
		pad := strings.Repeat(" ", overlayPadX)
		out[i] = bg + pad + line + bg + pad + ansi.ResetStyle
	}
	return out
}

func contentLines(content string) []string {
	if content == "" {
		return nil
	}
	return strings.Split(strings.TrimRight(content, "\n"), "\n")
}

// normalizeBase pads or cuts base to exactly width × height cells.
func normalizeBase(base string, width, height int) []string {
	lines := strings.Split(base, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	lines = lines[:height]

	for i, line := range lines {
		w := lipgloss.Width(line)
		switch {
		case w > width:
			lines[i] = ansi.Cut(line, 0, width)
		case w < width:
			lines[i] = line + strings.Repeat(" ", width-w)
		}
	}
	return lines
}
