package schedule

import (
	"errors"
	"reflect"
	"sort"
	"testing"
	"time"

	"github.com/javiermolinar/rota/internal/visit"
)

// testRows builds a roster with the unallocated pool first and two carers.
func testRows() []*visit.StaffRow {
	return []*visit.StaffRow{
		{ID: "pool", Name: "Unallocated", Kind: visit.RowUnallocated, Visits: []*visit.Visit{
			{ID: "u1", StartHour: 7, DurationHours: 0.5, Subject: "Ada"},
		}},
		{ID: "staff-A", Name: "Alice", Kind: visit.RowAssigned, Visits: []*visit.Visit{
			{ID: "v1", StartHour: 9, DurationHours: 1, Subject: "Bob"},
			{ID: "v2", StartHour: 11, DurationHours: 0.75, Subject: "Cleo"},
		}},
		{ID: "staff-B", Name: "Bea", Kind: visit.RowAssigned},
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(testRows())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return s
}

// contents returns row id -> sorted visit snapshots, ignoring in-row order.
func contents(s *Store) map[string][]visit.Visit {
	result := make(map[string][]visit.Visit)
	for _, r := range s.Rows() {
		vs := make([]visit.Visit, 0, len(r.Visits))
		for _, v := range r.Visits {
			vs = append(vs, *v)
		}
		sort.Slice(vs, func(i, j int) bool { return vs[i].ID < vs[j].ID })
		result[r.ID] = vs
	}
	return result
}

func TestNew_RejectsDuplicates(t *testing.T) {
	rows := testRows()
	rows[2].Visits = []*visit.Visit{{ID: "v1", StartHour: 10, DurationHours: 1}}
	if _, err := New(rows); !errors.Is(err, visit.ErrDuplicateVisit) {
		t.Errorf("expected ErrDuplicateVisit, got %v", err)
	}

	rows = testRows()
	rows[2].ID = "staff-A"
	if _, err := New(rows); !errors.Is(err, visit.ErrDuplicateRow) {
		t.Errorf("expected ErrDuplicateRow, got %v", err)
	}
}

func TestNew_RejectsInvalidVisit(t *testing.T) {
	rows := testRows()
	rows[1].Visits[0].DurationHours = 0
	if _, err := New(rows); !errors.Is(err, visit.ErrInvalidDuration) {
		t.Errorf("expected ErrInvalidDuration, got %v", err)
	}
}

func TestNew_CopiesInput(t *testing.T) {
	rows := testRows()
	s, err := New(rows)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	rows[1].Visits[0].StartHour = 20
	v, _, _ := s.FindVisit("v1")
	if v.StartHour != 9 {
		t.Error("store should not alias caller rows")
	}
}

func TestStore_Rows_StableOrder(t *testing.T) {
	s := newTestStore(t)
	var ids []string
	for _, r := range s.Rows() {
		ids = append(ids, r.ID)
	}
	want := []string{"pool", "staff-A", "staff-B"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("Rows order = %v, want %v", ids, want)
	}
}

func TestStore_RemoveVisit(t *testing.T) {
	s := newTestStore(t)

	v, from, err := s.RemoveVisit("v1")
	if err != nil {
		t.Fatalf("RemoveVisit failed: %v", err)
	}
	if v.ID != "v1" || from != "staff-A" {
		t.Errorf("got %s from %s", v.ID, from)
	}
	if _, _, found := s.FindVisit("v1"); found {
		t.Error("visit should be gone")
	}
	row, _ := s.Row("staff-A")
	if len(row.Visits) != 1 || row.Visits[0].ID != "v2" {
		t.Errorf("staff-A should only hold v2, got %d visits", len(row.Visits))
	}
}

func TestStore_RemoveVisit_NotFound(t *testing.T) {
	s := newTestStore(t)
	before := contents(s)

	_, _, err := s.RemoveVisit("missing")
	if !errors.Is(err, visit.ErrVisitNotFound) {
		t.Fatalf("expected ErrVisitNotFound, got %v", err)
	}
	if !reflect.DeepEqual(before, contents(s)) {
		t.Error("failed remove should not change the store")
	}
}

func TestStore_AppendVisit_MissingRow(t *testing.T) {
	s := newTestStore(t)
	before := contents(s)

	err := s.AppendVisit("nobody", &visit.Visit{ID: "x", DurationHours: 1})
	if !errors.Is(err, visit.ErrRowNotFound) {
		t.Fatalf("expected ErrRowNotFound, got %v", err)
	}
	if !reflect.DeepEqual(before, contents(s)) {
		t.Error("failed append should not change the store")
	}
}

func TestStore_AppendVisit_Duplicate(t *testing.T) {
	s := newTestStore(t)
	err := s.AppendVisit("staff-B", &visit.Visit{ID: "v1", DurationHours: 1})
	if !errors.Is(err, visit.ErrDuplicateVisit) {
		t.Errorf("expected ErrDuplicateVisit, got %v", err)
	}
}

func TestStore_RemoveThenAppend_RoundTrip(t *testing.T) {
	for _, id := range []string{"u1", "v1", "v2"} {
		t.Run(id, func(t *testing.T) {
			s := newTestStore(t)
			before := contents(s)

			v, from, err := s.RemoveVisit(id)
			if err != nil {
				t.Fatalf("RemoveVisit failed: %v", err)
			}
			if err := s.AppendVisit(from, v); err != nil {
				t.Fatalf("AppendVisit failed: %v", err)
			}

			if !reflect.DeepEqual(before, contents(s)) {
				t.Errorf("round trip changed the store:\nbefore %+v\nafter  %+v", before, contents(s))
			}
		})
	}
}

func TestStore_MoveVisit(t *testing.T) {
	s := newTestStore(t)
	moment := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	s.SetNow(func() time.Time { return moment })

	m, err := s.MoveVisit("v1", "staff-B", 13.5)
	if err != nil {
		t.Fatalf("MoveVisit failed: %v", err)
	}

	want := visit.Move{VisitID: "v1", FromRowID: "staff-A", ToRowID: "staff-B", FromHour: 9, StartHour: 13.5, MovedAt: moment}
	if m != want {
		t.Errorf("move = %+v, want %+v", m, want)
	}

	v, owner, found := s.FindVisit("v1")
	if !found || owner != "staff-B" {
		t.Fatalf("v1 should be owned by staff-B, got %q", owner)
	}
	if v.StartHour != 13.5 || v.DurationHours != 1 || v.Subject != "Bob" {
		t.Errorf("unexpected visit after move: %+v", v)
	}
}

func TestStore_MoveVisit_InvalidTargetLeavesStoreUnchanged(t *testing.T) {
	s := newTestStore(t)
	before := contents(s)

	_, err := s.MoveVisit("v1", "staff-Z", 12)
	if !errors.Is(err, visit.ErrRowNotFound) {
		t.Fatalf("expected ErrRowNotFound, got %v", err)
	}
	if !reflect.DeepEqual(before, contents(s)) {
		t.Error("move to a missing row must not remove the visit")
	}
}

func TestStore_MoveVisit_MissingVisit(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.MoveVisit("nope", "staff-B", 12); !errors.Is(err, visit.ErrVisitNotFound) {
		t.Errorf("expected ErrVisitNotFound, got %v", err)
	}
}

func TestStore_Load_KeepsRosterOnError(t *testing.T) {
	s := newTestStore(t)
	before := contents(s)

	bad := []*visit.StaffRow{{ID: ""}}
	if err := s.Load(bad); err == nil {
		t.Fatal("expected error for empty row id")
	}
	if !reflect.DeepEqual(before, contents(s)) {
		t.Error("failed load should keep the previous roster")
	}
}

func TestStore_Visible(t *testing.T) {
	s := newTestStore(t)

	tests := []struct {
		filter Filter
		want   []string
	}{
		{FilterAll, []string{"pool", "staff-A", "staff-B"}},
		{FilterUnallocated, []string{"pool"}},
		{FilterAssigned, []string{"staff-A", "staff-B"}},
	}
	for _, tt := range tests {
		t.Run(tt.filter.String(), func(t *testing.T) {
			var ids []string
			for _, r := range s.Visible(tt.filter) {
				ids = append(ids, r.ID)
			}
			if !reflect.DeepEqual(ids, tt.want) {
				t.Errorf("Visible(%s) = %v, want %v", tt.filter, ids, tt.want)
			}
		})
	}
}

func TestStore_Unallocated_ByKind(t *testing.T) {
	rows := testRows()
	// Pool is no longer first; lookup must use the kind tag.
	rows[0], rows[2] = rows[2], rows[0]
	s, err := New(rows)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	r, ok := s.Unallocated()
	if !ok || r.ID != "pool" {
		t.Errorf("expected pool row, got %+v", r)
	}
}

func TestParseFilter(t *testing.T) {
	for _, name := range []string{"all", "unallocated", "assigned"} {
		f, err := ParseFilter(name)
		if err != nil {
			t.Fatalf("ParseFilter(%q) failed: %v", name, err)
		}
		if f.String() != name {
			t.Errorf("round trip %q -> %q", name, f.String())
		}
	}
	if _, err := ParseFilter("mine"); err == nil {
		t.Error("expected error for unknown filter")
	}
	if FilterAssigned.Next() != FilterAll {
		t.Error("Next should wrap around")
	}
}
