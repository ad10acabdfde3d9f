package tui

import (
	"testing"

	"github.com/javiermolinar/rota/internal/drag"
	"github.com/javiermolinar/rota/internal/timeaxis"
)

func testGrid() Grid {
	return Grid{
		Scale:        timeaxis.NewScale(50),
		RowHeight:    80,
		CellsPerHour: 4,
		RowLines:     2,
		Gutter:       16,
		Top:          2,
		Cols:         64,
		Lines:        12,
		ViewStart:    6,
	}
}

func TestGrid_CellSize(t *testing.T) {
	g := testGrid()
	if g.CellWidth() != 12.5 {
		t.Errorf("expected 12.5px columns, got %v", g.CellWidth())
	}
	if g.LineHeight() != 40 {
		t.Errorf("expected 40px lines, got %v", g.LineHeight())
	}
	if g.VisibleHours() != 16 || g.VisibleRows() != 6 {
		t.Errorf("unexpected visible area %v hours, %d rows", g.VisibleHours(), g.VisibleRows())
	}
}

func TestGrid_Point(t *testing.T) {
	g := testGrid()

	tests := []struct {
		name       string
		x, y       int
		want       drag.Point
		wantInside bool
	}{
		{"first cell", 16, 2, drag.Point{X: 306.25, Y: 20}, true},
		{"09:00 on second row", 28, 4, drag.Point{X: 456.25, Y: 100}, true},
		{"gutter", 3, 4, drag.Point{X: 143.75, Y: 100}, false},
		{"ruler", 28, 1, drag.Point{X: 456.25, Y: -20}, false},
		{"below area", 28, 14, drag.Point{X: 456.25, Y: 500}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, inside := g.Point(tc.x, tc.y)
			if p != tc.want || inside != tc.wantInside {
				t.Errorf("Point(%d,%d) = %+v %v, want %+v %v", tc.x, tc.y, p, inside, tc.want, tc.wantInside)
			}
		})
	}
}

func TestGrid_PointFollowsScroll(t *testing.T) {
	g := testGrid()
	g.RowOffset = 1

	p, _ := g.Point(28, 2)
	if p.Y != 100 {
		t.Errorf("first displayed line should map into the second row, got %v", p.Y)
	}
	if g.Line(80) != 0 {
		t.Errorf("second row should start at line 0 after scrolling, got %d", g.Line(80))
	}
}

func TestGrid_ColumnAndSpan(t *testing.T) {
	g := testGrid()

	if got := g.Column(450); got != 12 {
		t.Errorf("09:00 should be column 12, got %d", got)
	}
	if got := g.Column(250); got != -4 {
		t.Errorf("05:00 should be left of the view, got %d", got)
	}
	if got := g.Span(50); got != 4 {
		t.Errorf("one hour should span 4 columns, got %d", got)
	}
	if got := g.Span(20); got != 2 {
		t.Errorf("20px should span 2 columns, got %d", got)
	}
	if got := g.Span(1); got != 1 {
		t.Errorf("span should be at least one column, got %d", got)
	}
}

func TestGrid_PanClampsToDay(t *testing.T) {
	g := testGrid()

	if got := g.Pan(-10).ViewStart; got != 0 {
		t.Errorf("pan left should stop at midnight, got %v", got)
	}
	if got := g.Pan(10).ViewStart; got != 8 {
		t.Errorf("pan right should stop when 24:00 is the last column, got %v", got)
	}
	if got := g.Pan(1).ViewStart; got != 7 {
		t.Errorf("expected 7, got %v", got)
	}
}

func TestGrid_ScrollClamps(t *testing.T) {
	g := testGrid()

	if got := g.Scroll(5, 8).RowOffset; got != 2 {
		t.Errorf("expected offset clamped to 2, got %d", got)
	}
	if got := g.Scroll(-1, 8).RowOffset; got != 0 {
		t.Errorf("expected offset clamped to 0, got %d", got)
	}
	if got := g.Scroll(3, 4).RowOffset; got != 0 {
		t.Errorf("no scrolling when every row fits, got %d", got)
	}
}
