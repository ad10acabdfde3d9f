package drag

import (
	"math"

	"github.com/javiermolinar/rota/internal/timeaxis"
)

// Phase is the stage of a pointer interaction.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePressed
	PhaseDragging
)

func (p Phase) String() string {
	switch p {
	case PhasePressed:
		return "pressed"
	case PhaseDragging:
		return "dragging"
	default:
		return "idle"
	}
}

// Point is a position in timeline pixel space.
type Point struct {
	X, Y float64
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Rect is an axis-aligned box in timeline pixel space.
type Rect struct {
	X, Y, W, H float64
}

// Offset returns the rect translated by d.
func (r Rect) Offset(d Point) Rect {
	return Rect{X: r.X + d.X, Y: r.Y + d.Y, W: r.W, H: r.H}
}

// Contains reports whether p lies inside the rect (right/bottom edges exclusive).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// State is the transient record of one pointer interaction.
// It is a value: every event produces a new State from the previous one.
type State struct {
	Phase          Phase
	VisitID        string
	SourceRowID    string
	TargetRowID    string // "" when no valid destination is implicated
	PointerOrigin  Point
	PointerCurrent Point
	BlockOrigin    Rect // block bounds at press time, anchors the ghost

	// Captured at press so the proposal is always computed from the
	// original start, never from an intermediate value.
	StartHour     float64
	DurationHours float64
}

// Active reports whether an interaction is in progress.
func (s State) Active() bool {
	return s.Phase != PhaseIdle
}

// Dragging reports whether the interaction has passed the movement threshold.
func (s State) Dragging() bool {
	return s.Phase == PhaseDragging
}

// Delta is the pointer displacement since press.
func (s State) Delta() Point {
	return s.PointerCurrent.Sub(s.PointerOrigin)
}

// GhostRect is where the floating copy of the block is drawn: the press-time
// bounds shifted by the raw pointer displacement, with no snapping.
func (s State) GhostRect() Rect {
	return s.BlockOrigin.Offset(s.Delta())
}

// ProposedHour is the clamped and snapped start the visit would land on.
func (s State) ProposedHour(scale timeaxis.Scale) float64 {
	return scale.Propose(s.StartHour, s.Delta().X)
}

// ChangesRow reports whether the current target differs from the source.
func (s State) ChangesRow() bool {
	return s.TargetRowID != "" && s.TargetRowID != s.SourceRowID
}

// pressed starts a new interaction. No field of a previous State is reused.
func pressed(visitID, rowID string, start, duration float64, pointer Point, block Rect) State {
	return State{
		Phase:          PhasePressed,
		VisitID:        visitID,
		SourceRowID:    rowID,
		TargetRowID:    rowID,
		PointerOrigin:  pointer,
		PointerCurrent: pointer,
		BlockOrigin:    block,
		StartHour:      start,
		DurationHours:  duration,
	}
}

// moved derives the next State from the latest pointer position alone, so a
// move arriving while an earlier one is still being rendered cannot corrupt it.
func (s State) moved(p Point, cfg Config, rowIDs []string) State {
	if s.Phase == PhaseIdle {
		return s
	}
	next := s
	next.PointerCurrent = p

	if next.Phase == PhasePressed {
		d := next.Delta()
		if math.Abs(d.X) > cfg.Threshold || math.Abs(d.Y) > cfg.Threshold {
			next.Phase = PhaseDragging
		}
	}
	if next.Phase == PhaseDragging {
		next.TargetRowID = resolveTarget(rowIDs, next.SourceRowID, next.Delta().Y, cfg.RowHeight)
	}
	return next
}
