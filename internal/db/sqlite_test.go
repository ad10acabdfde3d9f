package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/javiermolinar/rota/internal/visit"
)

func newTestRepo(t *testing.T) *SQLite {
	t.Helper()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	repo, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create test repo: %v", err)
	}

	t.Cleanup(func() {
		_ = repo.Close()
	})

	return repo
}

func sampleRoster() []*visit.StaffRow {
	return []*visit.StaffRow{
		{ID: "pool", Name: "Unallocated", Kind: visit.RowUnallocated, Visits: []*visit.Visit{
			{ID: "u1", StartHour: 7.5, DurationHours: 0.5, Subject: "Ada", Category: visit.CategoryMedication},
		}},
		{ID: "staff-A", Name: "Alice", Kind: visit.RowAssigned, Visits: []*visit.Visit{
			{ID: "v1", StartHour: 9, DurationHours: 1, Subject: "Bob", Category: visit.CategoryMeal, Status: visit.StatusInProgress},
			{ID: "v2", StartHour: 13.25, DurationHours: 0.75, Subject: "Cy"},
		}},
		{ID: "staff-B", Name: "Bea", Kind: visit.RowAssigned},
	}
}

func seedRepo(t *testing.T, repo *SQLite) {
	t.Helper()
	if err := repo.SaveRoster(context.Background(), sampleRoster()); err != nil {
		t.Fatalf("SaveRoster failed: %v", err)
	}
}

func TestLoadRoster_Empty(t *testing.T) {
	repo := newTestRepo(t)

	roster, err := repo.LoadRoster(context.Background())
	if err != nil {
		t.Fatalf("LoadRoster failed: %v", err)
	}
	if len(roster) != 0 {
		t.Errorf("expected empty roster, got %d rows", len(roster))
	}
}

func TestSaveRoster_LoadRoster(t *testing.T) {
	repo := newTestRepo(t)
	seedRepo(t, repo)

	roster, err := repo.LoadRoster(context.Background())
	if err != nil {
		t.Fatalf("LoadRoster failed: %v", err)
	}

	if len(roster) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(roster))
	}
	wantIDs := []string{"pool", "staff-A", "staff-B"}
	for i, id := range wantIDs {
		if roster[i].ID != id {
			t.Errorf("row %d: expected %s, got %s", i, id, roster[i].ID)
		}
	}
	if roster[0].Kind != visit.RowUnallocated {
		t.Errorf("expected unallocated kind, got %s", roster[0].Kind)
	}

	a := roster[1]
	if len(a.Visits) != 2 {
		t.Fatalf("expected 2 visits for Alice, got %d", len(a.Visits))
	}
	v1 := a.Visits[0]
	if v1.ID != "v1" || v1.StartHour != 9 || v1.DurationHours != 1 || v1.Subject != "Bob" {
		t.Errorf("unexpected visit %+v", v1)
	}
	if v1.Category != visit.CategoryMeal || v1.Status != visit.StatusInProgress {
		t.Errorf("category/status not preserved: %+v", v1)
	}
	if a.Visits[1].Status != visit.StatusScheduled {
		t.Errorf("empty status should be stored as scheduled, got %q", a.Visits[1].Status)
	}
	if roster[2].Visits != nil {
		t.Errorf("expected no visits for Bea, got %d", len(roster[2].Visits))
	}
}

func TestSaveRoster_Replaces(t *testing.T) {
	repo := newTestRepo(t)
	seedRepo(t, repo)

	replacement := []*visit.StaffRow{
		{ID: "staff-Z", Name: "Zoe", Kind: visit.RowAssigned, Visits: []*visit.Visit{
			{ID: "z1", StartHour: 10, DurationHours: 1},
		}},
	}
	if err := repo.SaveRoster(context.Background(), replacement); err != nil {
		t.Fatalf("SaveRoster failed: %v", err)
	}

	roster, err := repo.LoadRoster(context.Background())
	if err != nil {
		t.Fatalf("LoadRoster failed: %v", err)
	}
	if len(roster) != 1 || roster[0].ID != "staff-Z" || len(roster[0].Visits) != 1 {
		t.Errorf("roster was not replaced: %+v", roster)
	}
}

func TestSaveRoster_InvalidVisitRollsBack(t *testing.T) {
	repo := newTestRepo(t)
	seedRepo(t, repo)

	bad := []*visit.StaffRow{
		{ID: "staff-Z", Name: "Zoe", Kind: visit.RowAssigned, Visits: []*visit.Visit{
			{ID: "z1", StartHour: 10, DurationHours: 0},
		}},
	}
	err := repo.SaveRoster(context.Background(), bad)
	if !errors.Is(err, visit.ErrInvalidDuration) {
		t.Fatalf("expected ErrInvalidDuration, got %v", err)
	}

	roster, err := repo.LoadRoster(context.Background())
	if err != nil {
		t.Fatalf("LoadRoster failed: %v", err)
	}
	if len(roster) != 3 {
		t.Errorf("failed save must leave the previous roster, got %d rows", len(roster))
	}
}

func TestRecordMove(t *testing.T) {
	repo := newTestRepo(t)
	seedRepo(t, repo)
	ctx := context.Background()

	movedAt := time.Date(2026, 3, 2, 10, 15, 0, 0, time.UTC)
	m := visit.Move{
		VisitID:   "v1",
		FromRowID: "staff-A",
		ToRowID:   "staff-B",
		FromHour:  9,
		StartHour: 11,
		MovedAt:   movedAt,
	}
	if err := repo.RecordMove(ctx, m); err != nil {
		t.Fatalf("RecordMove failed: %v", err)
	}

	roster, err := repo.LoadRoster(ctx)
	if err != nil {
		t.Fatalf("LoadRoster failed: %v", err)
	}
	if len(roster[1].Visits) != 1 || roster[1].Visits[0].ID != "v2" {
		t.Errorf("v1 should have left Alice: %+v", roster[1].Visits)
	}
	b := roster[2]
	if len(b.Visits) != 1 || b.Visits[0].ID != "v1" || b.Visits[0].StartHour != 11 {
		t.Errorf("v1 should be with Bea at 11:00: %+v", b.Visits)
	}
	if b.Visits[0].DurationHours != 1 {
		t.Errorf("duration must not change, got %v", b.Visits[0].DurationHours)
	}

	moves, err := repo.ListMoves(ctx, 10)
	if err != nil {
		t.Fatalf("ListMoves failed: %v", err)
	}
	if len(moves) != 1 {
		t.Fatalf("expected 1 move, got %d", len(moves))
	}
	got := moves[0]
	if !got.MovedAt.Equal(movedAt) {
		t.Errorf("moved_at not preserved: %v", got.MovedAt)
	}
	if got.VisitID != "v1" || got.FromRowID != "staff-A" || got.ToRowID != "staff-B" ||
		got.FromHour != 9 || got.StartHour != 11 {
		t.Errorf("unexpected move %+v", got)
	}
}

func TestRecordMove_Missing(t *testing.T) {
	repo := newTestRepo(t)
	seedRepo(t, repo)
	ctx := context.Background()

	err := repo.RecordMove(ctx, visit.Move{VisitID: "ghost", FromRowID: "staff-A", ToRowID: "staff-B", StartHour: 10})
	if !errors.Is(err, visit.ErrVisitNotFound) {
		t.Errorf("expected ErrVisitNotFound, got %v", err)
	}

	err = repo.RecordMove(ctx, visit.Move{VisitID: "v1", FromRowID: "staff-A", ToRowID: "staff-Q", StartHour: 10})
	if !errors.Is(err, visit.ErrRowNotFound) {
		t.Errorf("expected ErrRowNotFound, got %v", err)
	}

	moves, err := repo.ListMoves(ctx, 0)
	if err != nil {
		t.Fatalf("ListMoves failed: %v", err)
	}
	if len(moves) != 0 {
		t.Errorf("failed moves must not be logged, got %d", len(moves))
	}
}

func TestRecordMove_StaleSource(t *testing.T) {
	repo := newTestRepo(t)
	seedRepo(t, repo)
	ctx := context.Background()

	// v1 went staff-A 9:00 -> staff-B 11:00, then staff-B -> pool 15:00.
	// The second save lands first; the first one is then out of date.
	first := visit.Move{VisitID: "v1", FromRowID: "staff-A", ToRowID: "staff-B", FromHour: 9, StartHour: 11}
	second := visit.Move{VisitID: "v1", FromRowID: "staff-B", ToRowID: "pool", FromHour: 11, StartHour: 15}

	err := repo.RecordMove(ctx, second)
	if !errors.Is(err, visit.ErrStaleMove) {
		t.Fatalf("expected ErrStaleMove for a move from the wrong row, got %v", err)
	}
	if err := repo.RecordMove(ctx, first); err != nil {
		t.Fatalf("RecordMove failed: %v", err)
	}
	if err := repo.RecordMove(ctx, first); !errors.Is(err, visit.ErrStaleMove) {
		t.Errorf("expected a replayed move to be stale, got %v", err)
	}
	sameRow := visit.Move{VisitID: "v1", FromRowID: "staff-B", ToRowID: "staff-B", FromHour: 9, StartHour: 12}
	if err := repo.RecordMove(ctx, sameRow); !errors.Is(err, visit.ErrStaleMove) {
		t.Errorf("expected a move from the wrong start to be stale, got %v", err)
	}

	roster, err := repo.LoadRoster(ctx)
	if err != nil {
		t.Fatalf("LoadRoster failed: %v", err)
	}
	b := roster[2]
	if len(b.Visits) != 1 || b.Visits[0].ID != "v1" || b.Visits[0].StartHour != 11 {
		t.Errorf("expected v1 with Bea at 11:00, got %+v", b.Visits)
	}

	moves, err := repo.ListMoves(ctx, 0)
	if err != nil {
		t.Fatalf("ListMoves failed: %v", err)
	}
	if len(moves) != 1 || moves[0].ToRowID != "staff-B" {
		t.Errorf("stale moves must not be logged, got %+v", moves)
	}
}

func TestNew_BadPath(t *testing.T) {
	dir := t.TempDir()
	if _, err := New(filepath.Join(dir, "missing", "test.db")); err == nil {
		t.Error("expected an error for a database in a missing directory")
	}
}

func TestListMoves_NewestFirstWithLimit(t *testing.T) {
	repo := newTestRepo(t)
	seedRepo(t, repo)
	ctx := context.Background()

	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	hours := []float64{10, 10.25, 10.5}
	from := 13.25
	for i, h := range hours {
		m := visit.Move{
			VisitID:   "v2",
			FromRowID: "staff-A",
			ToRowID:   "staff-A",
			FromHour:  from,
			StartHour: h,
			MovedAt:   base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.RecordMove(ctx, m); err != nil {
			t.Fatalf("RecordMove failed: %v", err)
		}
		from = h
	}

	moves, err := repo.ListMoves(ctx, 2)
	if err != nil {
		t.Fatalf("ListMoves failed: %v", err)
	}
	if len(moves) != 2 {
		t.Fatalf("expected 2 moves, got %d", len(moves))
	}
	if moves[0].StartHour != 10.5 || moves[1].StartHour != 10.25 {
		t.Errorf("expected newest first, got %v then %v", moves[0].StartHour, moves[1].StartHour)
	}

	all, err := repo.ListMoves(ctx, 0)
	if err != nil {
		t.Fatalf("ListMoves failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("limit 0 should return all moves, got %d", len(all))
	}
}

func TestSaveRoster_KeepsMoveLog(t *testing.T) {
	repo := newTestRepo(t)
	seedRepo(t, repo)
	ctx := context.Background()

	if err := repo.RecordMove(ctx, visit.Move{VisitID: "v1", FromRowID: "staff-A", ToRowID: "pool", FromHour: 9, StartHour: 9}); err != nil {
		t.Fatalf("RecordMove failed: %v", err)
	}
	seedRepo(t, repo)

	moves, err := repo.ListMoves(ctx, 0)
	if err != nil {
		t.Fatalf("ListMoves failed: %v", err)
	}
	if len(moves) != 1 {
		t.Errorf("expected move log to survive a reseed, got %d", len(moves))
	}
}
