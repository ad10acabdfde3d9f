package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/rota/internal/drag"
	"github.com/javiermolinar/rota/internal/timeaxis"
	"github.com/javiermolinar/rota/internal/timeline"
	"github.com/javiermolinar/rota/internal/visit"
)

const (
	edgeRune    = '▌'
	previewRune = '╌'
	nowRune     = '│'
	hourRune    = '·'
)

// View renders the TUI.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return "Loading..."
	}
	if m.grid.Cols < m.grid.CellsPerHour || m.grid.Lines < m.grid.RowLines {
		return "Terminal too small"
	}

	frame := m.frame()
	lines := make([]string, 0, m.height)
	lines = append(lines, m.renderTitle(), m.renderRuler(frame))
	lines = append(lines, m.renderTimeline(frame)...)
	lines = append(lines, m.renderFooter()...)
	base := strings.Join(lines, "\n")

	if m.showHelp {
		base = m.overlay.Render(base, m.width, m.height, m.renderHelp())
	}
	return base
}

// padLine truncates or pads s to the terminal width with st.
func (m Model) padLine(s string, st lipgloss.Style) string {
	w := lipgloss.Width(s)
	if w > m.width {
		return ansi.Truncate(s, m.width, "…")
	}
	return s + st.Render(strings.Repeat(" ", m.width-w))
}

func (m Model) renderTitle() string {
	meta := fmt.Sprintf("  %d of %d rows · %s · now %s", m.visibleRowCount(), m.store.Len(), m.filter, m.now.Label())
	if m.repo == nil {
		meta += " · demo"
	}
	title := m.styles.TitleStyle.Render(" rota") + m.styles.TitleMeta.Render(meta)
	return m.padLine(title, m.styles.TitleMeta)
}

func (m Model) renderRuler(frame timeline.Frame) string {
	g := m.grid
	c := newCanvas(m.width, 1)
	base := c.style("ruler", m.styles.RulerStyle)
	hour := c.style("ruler-hour", m.styles.RulerHourStyle)
	now := c.style("now", m.styles.NowStyle.Background(m.styles.palette.BgSelection))

	c.fill(0, 0, m.width, 1, ' ', base)
	c.text(1, 0, "staff", g.Gutter-2, base)

	// Leave room for a two-digit label between hour marks.
	step := max(1, int(math.Ceil(3/float64(g.CellsPerHour))))
	for col := range g.Cols {
		h := g.ViewStart + float64(col)/float64(g.CellsPerHour)
		whole := math.Round(h)
		if math.Abs(h-whole) > 1e-9 || int(whole)%step != 0 {
			continue
		}
		c.text(g.Gutter+col, 0, fmt.Sprintf("%02d", int(whole)%timeaxis.HoursPerDay), g.Cols-col, hour)
	}

	if frame.ShowNow {
		if col := g.Column(frame.NowX); col >= 0 && col < g.Cols {
			c.set(g.Gutter+col, 0, '▼', now)
		}
	}
	return c.lines()[0]
}

func (m Model) renderTimeline(frame timeline.Frame) []string {
	g := m.grid
	c := newCanvas(m.width, g.Lines)

	if m.loading || len(frame.Rows) == 0 {
		msg := "Loading roster..."
		if !m.loading {
			msg = "No staff rows. Run `rota seed` to load the demo roster."
			if m.store.Len() > 0 {
				msg = fmt.Sprintf("No %s rows. Press f to change the filter.", m.filter)
			}
		}
		st := c.style("status", m.styles.StatusStyle)
		c.fill(0, 0, m.width, g.Lines, ' ', st)
		c.text(max((m.width-ansi.StringWidth(msg))/2, 0), g.Lines/2, msg, m.width, st)
		return c.lines()
	}

	for i, row := range frame.Rows {
		m.drawRow(c, i, row)
	}
	if frame.ShowNow {
		m.drawNow(c, frame.Rows, frame.NowX)
	}
	for _, row := range frame.Rows {
		for _, b := range row.Blocks {
			m.drawBlock(c, b)
		}
	}
	if frame.Preview != nil {
		m.drawPreview(c, *frame.Preview)
	}
	if frame.Ghost != nil {
		m.drawGhost(c, *frame.Ghost)
	}
	return c.lines()
}

// drawRow paints the gutter and striped background of displayed row i.
func (m Model) drawRow(c *canvas, i int, row timeline.Row) {
	g := m.grid
	top := g.Line(row.Y)
	bottom := top + g.RowLines
	if bottom <= 0 || top >= g.Lines {
		return
	}

	stripe := c.style(fmt.Sprintf("row%d", i%2), m.styles.RowBackground(i))
	gutterStyle := m.styles.GutterStyle
	if row.Kind == visit.RowUnallocated {
		gutterStyle = m.styles.GutterPoolStyle
	}
	gutter := c.style("gutter-"+string(row.Kind), gutterStyle)

	c.fill(0, top, g.Gutter, bottom, ' ', gutter)
	c.text(1, top, row.Name, g.Gutter-2, gutter)
	c.fill(g.Gutter, top, g.Gutter+g.Cols, bottom, ' ', stripe)

	for col := range g.Cols {
		if col%g.CellsPerHour == 0 {
			c.set(g.Gutter+col, bottom-1, hourRune, stripe)
		}
	}
}

// drawNow draws the current-time marker over the row backgrounds, so
// blocks drawn afterwards cover it.
func (m Model) drawNow(c *canvas, rows []timeline.Row, x float64) {
	g := m.grid
	col := g.Column(x)
	if col < 0 || col >= g.Cols {
		return
	}
	for i, row := range rows {
		st := c.style(fmt.Sprintf("now%d", i%2), m.styles.RowBackground(i).Foreground(m.styles.palette.Current))
		top := g.Line(row.Y)
		for y := top; y < top+g.RowLines; y++ {
			c.set(g.Gutter+col, y, nowRune, st)
		}
	}
}

// span returns the visible columns [x0, x1) of a pixel rect, clipped to the
// timeline area, and whether its left edge is on screen.
func (m Model) span(r drag.Rect) (x0, x1 int, edge bool) {
	g := m.grid
	col := g.Column(r.X)
	x0 = g.Gutter + col
	x1 = x0 + g.Span(r.W)
	edge = col >= 0 && col < g.Cols
	return max(x0, g.Gutter), min(x1, g.Gutter+g.Cols), edge
}

func (m Model) drawBlock(c *canvas, b timeline.Block) {
	g := m.grid
	x0, x1, edge := m.span(b.Rect)
	if x0 >= x1 {
		return
	}
	top := g.Line(b.Rect.Y)
	key := fmt.Sprintf("block-%s-%s", b.Visit.Category, b.Visit.Status)
	body := c.style(key, m.styles.BlockStyle(b.Visit))
	edgeStyle := c.style(key+"-edge", m.styles.BlockEdgeStyle(b.Visit))

	c.fill(x0, top, x1, top+g.RowLines, ' ', body)
	textX := x0
	if edge {
		for y := top; y < top+g.RowLines; y++ {
			c.set(x0, y, edgeRune, edgeStyle)
		}
		textX++
	}
	m.blockText(c, textX, x1, top, b.Visit.Subject, b.Label, body)
}

func (m Model) drawPreview(c *canvas, p timeline.DropPreview) {
	g := m.grid
	x0, x1, _ := m.span(p.Rect)
	if x0 >= x1 {
		return
	}
	top := g.Line(p.Rect.Y)
	st := c.style("preview", m.styles.PreviewStyle)
	c.fill(x0, top, x1, top+g.RowLines, previewRune, st)
	c.text(x0, top, p.Label, x1-x0, st)
}

func (m Model) drawGhost(c *canvas, gh timeline.Ghost) {
	g := m.grid
	x0, x1, _ := m.span(gh.Rect)
	if x0 >= x1 {
		return
	}
	top := g.Line(gh.Rect.Y)
	st := c.style("ghost", m.styles.GhostStyle)
	c.fill(x0, top, x1, top+g.RowLines, ' ', st)
	m.blockText(c, x0, x1, top, gh.Visit.Subject, gh.Label, st)
}

// blockText writes the subject on the first line of a block and its time
// range on the second, when the row is tall enough.
func (m Model) blockText(c *canvas, x0, x1, top int, subject, label string, st int) {
	w := x1 - x0
	if w <= 0 {
		return
	}
	if m.grid.RowLines == 1 {
		if subject == "" {
			subject = label
		}
		c.text(x0, top, subject, w, st)
		return
	}
	c.text(x0, top, subject, w, st)
	c.text(x0, top+1, label, w, st)
}

func (m Model) renderFooter() []string {
	var status string
	style := m.styles.StatusStyle
	switch {
	case m.toast.Text() != "":
		status = " " + m.toast.Text() + " "
		style = m.styles.ToastStyle
	case m.statusMsg != "":
		status = " " + m.statusMsg
		if m.err != nil && strings.HasPrefix(m.statusMsg, "Error:") {
			style = m.styles.ErrorStyle
		}
	default:
		status = " " + m.dragHint()
	}

	line := m.padLine(style.Render(status), m.styles.StatusStyle)
	keys := m.padLine(m.styles.HelpStyle.Render(" ")+m.help.View(m.keys), m.styles.HelpStyle)
	return []string{line, keys}
}

// dragHint describes where the dragged visit would land.
func (m Model) dragHint() string {
	s := m.machine.State()
	if !s.Dragging() {
		return ""
	}
	subject := s.VisitID
	if v, _, ok := m.store.FindVisit(s.VisitID); ok && v.Subject != "" {
		subject = v.Subject
	}
	at := timeaxis.FormatHour(s.ProposedHour(m.machine.Config().Scale))
	r, ok := m.store.Row(s.TargetRowID)
	if !ok {
		return fmt.Sprintf("Moving %s · no row under pointer", subject)
	}
	if !m.filter.Match(r) {
		return fmt.Sprintf("Moving %s to %s (hidden) at %s · esc cancels", subject, r.Name, at)
	}
	return fmt.Sprintf("Moving %s to %s at %s · esc cancels", subject, r.Name, at)
}

func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(m.styles.TitleStyle.Background(m.styles.HelpBoxColor).Render("Keys"))
	b.WriteString("\n\n")
	b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	b.WriteString("\n\n")
	b.WriteString("Drag a visit to move it to another time or carer.\n")
	b.WriteString("Click a visit to see its details.")
	return b.String()
}
