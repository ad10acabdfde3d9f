package timeline

import (
	"testing"

	"github.com/javiermolinar/rota/internal/drag"
	"github.com/javiermolinar/rota/internal/schedule"
	"github.com/javiermolinar/rota/internal/visit"
)

func newStore(t *testing.T) *schedule.Store {
	t.Helper()
	s, err := schedule.New([]*visit.StaffRow{
		{ID: "pool", Name: "Unallocated", Kind: visit.RowUnallocated, Visits: []*visit.Visit{
			{ID: "u1", StartHour: 7, DurationHours: 0.25, Subject: "Ada"},
		}},
		{ID: "staff-A", Name: "Alice", Kind: visit.RowAssigned, Visits: []*visit.Visit{
			{ID: "v1", StartHour: 9, DurationHours: 1, Subject: "Bob", Category: visit.CategoryMeal},
		}},
		{ID: "staff-B", Name: "Bea", Kind: visit.RowAssigned},
	})
	if err != nil {
		t.Fatalf("schedule.New failed: %v", err)
	}
	return s
}

func defaultOpts() Options {
	return Options{Geometry: drag.DefaultConfig(), MinBlockWidth: 20}
}

func TestBuild_StaticBlocks(t *testing.T) {
	f := Build(newStore(t), drag.State{}, defaultOpts())

	if len(f.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(f.Rows))
	}
	if f.Width != 1200 {
		t.Errorf("expected width 1200, got %v", f.Width)
	}

	a := f.Rows[1]
	if a.Y != 80 || a.Height != 80 || a.Index != 1 {
		t.Errorf("unexpected row geometry: %+v", a)
	}
	if len(a.Blocks) != 1 {
		t.Fatalf("expected one block, got %d", len(a.Blocks))
	}
	b := a.Blocks[0]
	if b.Rect != (drag.Rect{X: 450, Y: 80, W: 50, H: 80}) {
		t.Errorf("unexpected block rect %+v", b.Rect)
	}
	if b.Label != "09:00-10:00" {
		t.Errorf("unexpected label %q", b.Label)
	}
	if f.Ghost != nil || f.Preview != nil {
		t.Error("idle frame has no ghost or preview")
	}
}

func TestBuild_MinimumBlockWidth(t *testing.T) {
	f := Build(newStore(t), drag.State{}, defaultOpts())
	short := f.Rows[0].Blocks[0]
	if short.Rect.W != 20 {
		t.Errorf("15-minute block should be widened to 20px, got %v", short.Rect.W)
	}
}

func TestBuild_FilterKeepsRosterIndex(t *testing.T) {
	opts := defaultOpts()
	opts.Filter = schedule.FilterAssigned
	f := Build(newStore(t), drag.State{}, opts)

	if len(f.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(f.Rows))
	}
	if f.Rows[0].ID != "staff-A" || f.Rows[0].Y != 0 || f.Rows[0].Index != 1 {
		t.Errorf("unexpected first visible row %+v", f.Rows[0])
	}
}

func draggingState(dx, dy float64) drag.State {
	origin := drag.Point{X: 460, Y: 100}
	return drag.State{
		Phase:          drag.PhaseDragging,
		VisitID:        "v1",
		SourceRowID:    "staff-A",
		TargetRowID:    "staff-A",
		PointerOrigin:  origin,
		PointerCurrent: drag.Point{X: origin.X + dx, Y: origin.Y + dy},
		BlockOrigin:    drag.Rect{X: 450, Y: 80, W: 50, H: 80},
		StartHour:      9,
		DurationHours:  1,
	}
}

func TestBuild_PressedDoesNotSuppressOriginal(t *testing.T) {
	s := draggingState(2, 0)
	s.Phase = drag.PhasePressed
	f := Build(newStore(t), s, defaultOpts())

	if len(f.Rows[1].Blocks) != 1 {
		t.Error("original block stays visible until the drag starts")
	}
	if f.Ghost != nil {
		t.Error("no ghost before the drag starts")
	}
}

func TestBuild_DraggingSuppressesOriginalAndShowsGhost(t *testing.T) {
	f := Build(newStore(t), draggingState(12, 7), defaultOpts())

	if len(f.Rows[1].Blocks) != 0 {
		t.Error("dragged visit must not be drawn in its row")
	}
	if f.Ghost == nil {
		t.Fatal("expected a ghost")
	}
	if f.Ghost.Rect != (drag.Rect{X: 462, Y: 87, W: 50, H: 80}) {
		t.Errorf("ghost should follow the raw pointer, got %+v", f.Ghost.Rect)
	}
	if f.Ghost.Label != "09:15-10:15" {
		t.Errorf("ghost label should show the snapped range, got %q", f.Ghost.Label)
	}
	if f.Ghost.Visit.Subject != "Bob" {
		t.Errorf("ghost should carry the visit, got %+v", f.Ghost.Visit)
	}
	if f.Preview != nil {
		t.Error("no drop preview while the target is the source row")
	}
}

func TestBuild_DropPreviewInTargetRow(t *testing.T) {
	s := draggingState(100, 80)
	s.TargetRowID = "staff-B"
	f := Build(newStore(t), s, defaultOpts())

	if f.Preview == nil {
		t.Fatal("expected a drop preview")
	}
	want := drag.Rect{X: 550, Y: 160, W: 50, H: 80}
	if f.Preview.RowID != "staff-B" || f.Preview.Rect != want {
		t.Errorf("unexpected preview %+v", f.Preview)
	}
	if f.Preview.Label != "11:00-12:00" {
		t.Errorf("unexpected preview label %q", f.Preview.Label)
	}
}

func TestBuild_DropPreviewHiddenWhenTargetFiltered(t *testing.T) {
	s := draggingState(0, -80)
	s.TargetRowID = "pool"
	opts := defaultOpts()
	opts.Filter = schedule.FilterAssigned

	f := Build(newStore(t), s, opts)
	if f.Preview != nil {
		t.Error("preview must not be drawn in a row that is not displayed")
	}
	if f.Ghost == nil {
		t.Error("ghost is still drawn")
	}
}

func TestBuild_NowMarker(t *testing.T) {
	opts := defaultOpts()
	opts.NowHour = 14.5
	opts.ShowNow = true
	f := Build(newStore(t), drag.State{}, opts)
	if !f.ShowNow || f.NowX != 725 {
		t.Errorf("unexpected marker %v %v", f.ShowNow, f.NowX)
	}
}

func TestFrame_HitTest(t *testing.T) {
	f := Build(newStore(t), drag.State{}, defaultOpts())

	b, ok := f.HitTest(drag.Point{X: 470, Y: 100})
	if !ok || b.Visit.ID != "v1" || b.RowID != "staff-A" {
		t.Errorf("expected v1, got %+v %v", b, ok)
	}
	if _, ok := f.HitTest(drag.Point{X: 600, Y: 100}); ok {
		t.Error("empty space should not hit")
	}
	if _, ok := f.HitTest(drag.Point{X: 470, Y: 1000}); ok {
		t.Error("below the last row should not hit")
	}
}
