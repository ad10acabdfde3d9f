// Package timeline turns the schedule and the current drag state into the
// set of shapes a renderer must draw, in timeline pixel space.
package timeline

import (
	"github.com/javiermolinar/rota/internal/drag"
	"github.com/javiermolinar/rota/internal/schedule"
	"github.com/javiermolinar/rota/internal/timeaxis"
	"github.com/javiermolinar/rota/internal/visit"
)

// DefaultMinBlockWidth keeps very short visits legible.
const DefaultMinBlockWidth = 20

// Options configures frame construction.
type Options struct {
	Geometry      drag.Config
	MinBlockWidth float64
	Filter        schedule.Filter
	NowHour       float64
	ShowNow       bool
}

// Block is a static visit block inside a row.
type Block struct {
	Visit visit.Visit
	RowID string
	Rect  drag.Rect
	Label string // "HH:MM-HH:MM"
}

// Row is one displayed staff lane.
type Row struct {
	ID     string
	Name   string
	Kind   visit.RowKind
	Index  int // position in the full roster
	Y      float64
	Height float64
	Blocks []Block
}

// Ghost is the floating copy of the dragged block that follows the pointer.
type Ghost struct {
	Visit visit.Visit
	Rect  drag.Rect
	Label string // snapped, clamped candidate range
}

// DropPreview is the dashed placeholder in the destination row.
type DropPreview struct {
	RowID string
	Rect  drag.Rect
	Label string
}

// Frame is everything a renderer draws for one state.
type Frame struct {
	Width   float64
	Rows    []Row
	Ghost   *Ghost
	Preview *DropPreview
	NowX    float64
	ShowNow bool
}

// Build lays out the visible rows of store under state.
func Build(store *schedule.Store, state drag.State, opts Options) Frame {
	geo := opts.Geometry
	if geo.Scale.PixelsPerHour <= 0 {
		geo.Scale = timeaxis.NewScale(0)
	}
	if geo.RowHeight <= 0 {
		geo.RowHeight = drag.DefaultRowHeight
	}
	minW := opts.MinBlockWidth
	if minW <= 0 {
		minW = DefaultMinBlockWidth
	}

	frame := Frame{
		Width:   geo.Scale.DayWidth(),
		NowX:    geo.Scale.HourToPixels(opts.NowHour),
		ShowNow: opts.ShowNow,
	}

	hideID := ""
	if state.Dragging() {
		hideID = state.VisitID
	}

	y := 0.0
	for idx, r := range store.Rows() {
		if !opts.Filter.Match(r) {
			continue
		}
		row := Row{ID: r.ID, Name: r.Name, Kind: r.Kind, Index: idx, Y: y, Height: geo.RowHeight}
		for _, v := range r.Visits {
			if v.ID == hideID {
				continue
			}
			row.Blocks = append(row.Blocks, Block{
				Visit: *v,
				RowID: r.ID,
				Rect:  blockRect(geo.Scale, v.StartHour, v.DurationHours, y, geo.RowHeight, minW),
				Label: timeaxis.FormatRange(v.StartHour, v.DurationHours),
			})
		}
		frame.Rows = append(frame.Rows, row)
		y += geo.RowHeight
	}

	if !state.Dragging() {
		return frame
	}

	proposed := state.ProposedHour(geo.Scale)
	label := timeaxis.FormatRange(proposed, state.DurationHours)

	ghost := &Ghost{Rect: state.GhostRect(), Label: label}
	if v, _, ok := store.FindVisit(state.VisitID); ok {
		ghost.Visit = *v
	} else {
		ghost.Visit = visit.Visit{ID: state.VisitID, StartHour: state.StartHour, DurationHours: state.DurationHours}
	}
	frame.Ghost = ghost

	if state.ChangesRow() {
		if target, ok := frame.Row(state.TargetRowID); ok {
			frame.Preview = &DropPreview{
				RowID: target.ID,
				Rect:  blockRect(geo.Scale, proposed, state.DurationHours, target.Y, geo.RowHeight, minW),
				Label: label,
			}
		}
	}
	return frame
}

func blockRect(scale timeaxis.Scale, start, duration, y, h, minW float64) drag.Rect {
	w := scale.HourToPixels(duration)
	if w < minW {
		w = minW
	}
	return drag.Rect{X: scale.HourToPixels(start), Y: y, W: w, H: h}
}

// Row returns the displayed row with the given id.
func (f Frame) Row(id string) (Row, bool) {
	for _, r := range f.Rows {
		if r.ID == id {
			return r, true
		}
	}
	return Row{}, false
}

// RowAtY returns the displayed row covering the vertical pixel y.
func (f Frame) RowAtY(y float64) (Row, bool) {
	for _, r := range f.Rows {
		if y >= r.Y && y < r.Y+r.Height {
			return r, true
		}
	}
	return Row{}, false
}

// HitTest returns the block under p. Overlapping blocks resolve to the one
// drawn last.
func (f Frame) HitTest(p drag.Point) (Block, bool) {
	row, ok := f.RowAtY(p.Y)
	if !ok {
		return Block{}, false
	}
	for i := len(row.Blocks) - 1; i >= 0; i-- {
		if row.Blocks[i].Rect.Contains(p) {
			return row.Blocks[i], true
		}
	}
	return Block{}, false
}
