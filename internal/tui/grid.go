package tui

import (
	"math"

	"github.com/javiermolinar/rota/internal/drag"
	"github.com/javiermolinar/rota/internal/timeaxis"
)

// Grid maps between terminal cells and timeline pixels. The timeline area
// starts Gutter columns from the left and Top lines from the top.
type Grid struct {
	Scale        timeaxis.Scale
	RowHeight    float64
	CellsPerHour int
	RowLines     int

	Gutter int // columns reserved for staff names
	Top    int // lines above the first row
	Cols   int // width of the timeline area
	Lines  int // height of the timeline area

	ViewStart float64 // hour shown in the first column
	RowOffset int     // first displayed row
}

// CellWidth is the pixel width of one terminal column.
func (g Grid) CellWidth() float64 {
	return g.Scale.PixelsPerHour / float64(g.CellsPerHour)
}

// LineHeight is the pixel height of one terminal line.
func (g Grid) LineHeight() float64 {
	return g.RowHeight / float64(g.RowLines)
}

// Point maps the terminal cell (x, y) to the pixel at the centre of the
// cell. inside is false when the cell is outside the timeline area; the
// point is still meaningful for an interaction already in progress.
func (g Grid) Point(x, y int) (p drag.Point, inside bool) {
	col := x - g.Gutter
	line := y - g.Top
	p = drag.Point{
		X: g.Scale.HourToPixels(g.ViewStart) + (float64(col)+0.5)*g.CellWidth(),
		Y: (float64(line+g.RowOffset*g.RowLines) + 0.5) * g.LineHeight(),
	}
	inside = col >= 0 && col < g.Cols && line >= 0 && line < g.Lines
	return p, inside
}

// Column returns the timeline-area column containing pixel x. It may fall
// outside [0, Cols).
func (g Grid) Column(x float64) int {
	return int(math.Floor((x - g.Scale.HourToPixels(g.ViewStart)) / g.CellWidth()))
}

// Line returns the timeline-area line containing pixel y, after scrolling.
func (g Grid) Line(y float64) int {
	return int(math.Floor(y/g.LineHeight())) - g.RowOffset*g.RowLines
}

// Span returns how many columns a pixel width covers, at least one.
func (g Grid) Span(w float64) int {
	return max(int(math.Round(w/g.CellWidth())), 1)
}

// VisibleHours is the number of hours the timeline area shows.
func (g Grid) VisibleHours() float64 {
	return float64(g.Cols) / float64(g.CellsPerHour)
}

// VisibleRows is the number of whole rows the timeline area shows.
func (g Grid) VisibleRows() int {
	return g.Lines / g.RowLines
}

// Pan shifts the view by hours, keeping it inside the day.
func (g Grid) Pan(hours float64) Grid {
	g.ViewStart = g.clampStart(g.ViewStart + hours)
	return g
}

// Scroll shifts the first displayed row, keeping at least one row visible.
func (g Grid) Scroll(rows, rowCount int) Grid {
	g.RowOffset = g.clampOffset(g.RowOffset+rows, rowCount)
	return g
}

func (g Grid) clampStart(h float64) float64 {
	maxStart := math.Max(0, timeaxis.HoursPerDay-g.VisibleHours())
	return math.Max(0, math.Min(maxStart, h))
}

func (g Grid) clampOffset(offset, rowCount int) int {
	maxOffset := max(0, rowCount-g.VisibleRows())
	return max(0, min(maxOffset, offset))
}
