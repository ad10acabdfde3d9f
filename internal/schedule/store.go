// Package schedule holds the in-memory roster: ordered staff rows, each
// owning an ordered list of visits.
package schedule

import (
	"fmt"
	"time"

	"github.com/javiermolinar/rota/internal/visit"
)

// Filter selects which rows are displayed. It never changes the row index
// space used for drag retargeting.
type Filter int

const (
	FilterAll Filter = iota
	FilterUnallocated
	FilterAssigned
)

// String returns the config/CLI name of the filter.
func (f Filter) String() string {
	switch f {
	case FilterUnallocated:
		return "unallocated"
	case FilterAssigned:
		return "assigned"
	default:
		return "all"
	}
}

// Next cycles through the filters in display order.
func (f Filter) Next() Filter {
	return (f + 1) % 3
}

// ParseFilter parses a filter name.
func ParseFilter(s string) (Filter, error) {
	switch s {
	case "", "all":
		return FilterAll, nil
	case "unallocated":
		return FilterUnallocated, nil
	case "assigned":
		return FilterAssigned, nil
	default:
		return FilterAll, fmt.Errorf("unknown filter %q (want all, unallocated or assigned)", s)
	}
}

// Match reports whether a row is shown under the filter.
func (f Filter) Match(r *visit.StaffRow) bool {
	switch f {
	case FilterUnallocated:
		return r.IsUnallocated()
	case FilterAssigned:
		return !r.IsUnallocated()
	default:
		return true
	}
}

// Store is the sole owner of the visit-to-row relationship.
// It is not safe for concurrent use; all mutation happens on the UI loop.
type Store struct {
	rows []*visit.StaffRow
	now  func() time.Time
}

// New creates a store from rows supplied by the data source.
// The rows are deep-copied so the caller keeps no aliases into the store.
func New(rows []*visit.StaffRow) (*Store, error) {
	s := &Store{now: time.Now}
	if err := s.Load(rows); err != nil {
		return nil, err
	}
	return s, nil
}

// SetNow overrides the clock used to timestamp moves.
func (s *Store) SetNow(now func() time.Time) {
	s.now = now
}

// Load replaces the roster. On error the previous roster is kept.
func (s *Store) Load(rows []*visit.StaffRow) error {
	if err := validateRows(rows); err != nil {
		return err
	}
	next := make([]*visit.StaffRow, len(rows))
	for i, r := range rows {
		next[i] = r.Clone()
	}
	s.rows = next
	return nil
}

func validateRows(rows []*visit.StaffRow) error {
	rowIDs := make(map[string]bool, len(rows))
	visitIDs := make(map[string]bool)
	for _, r := range rows {
		if r == nil || r.ID == "" {
			return fmt.Errorf("staff row: %w", visit.ErrEmptyID)
		}
		if rowIDs[r.ID] {
			return fmt.Errorf("%w: %s", visit.ErrDuplicateRow, r.ID)
		}
		rowIDs[r.ID] = true
		for _, v := range r.Visits {
			if v == nil {
				return fmt.Errorf("row %s: nil visit", r.ID)
			}
			if err := v.Validate(); err != nil {
				return fmt.Errorf("row %s: %w", r.ID, err)
			}
			if visitIDs[v.ID] {
				return fmt.Errorf("%w: %s", visit.ErrDuplicateVisit, v.ID)
			}
			visitIDs[v.ID] = true
		}
	}
	return nil
}

// Len returns the number of rows in the full roster.
func (s *Store) Len() int {
	return len(s.rows)
}

// Rows returns the full roster in display order.
// The returned rows are copies; mutating them does not affect the store.
func (s *Store) Rows() []*visit.StaffRow {
	result := make([]*visit.StaffRow, len(s.rows))
	for i, r := range s.rows {
		result[i] = r.Clone()
	}
	return result
}

// RowIDs returns the ids of the full roster in display order.
func (s *Store) RowIDs() []string {
	ids := make([]string, len(s.rows))
	for i, r := range s.rows {
		ids[i] = r.ID
	}
	return ids
}

// Visible returns copies of the rows shown under filter, keeping roster order.
func (s *Store) Visible(f Filter) []*visit.StaffRow {
	var result []*visit.StaffRow
	for _, r := range s.rows {
		if f.Match(r) {
			result = append(result, r.Clone())
		}
	}
	return result
}

// RowIndex returns the index of a row in the full roster, or -1.
func (s *Store) RowIndex(rowID string) int {
	for i, r := range s.rows {
		if r.ID == rowID {
			return i
		}
	}
	return -1
}

// RowAt returns a copy of the row at index i in the full roster.
func (s *Store) RowAt(i int) (*visit.StaffRow, bool) {
	if i < 0 || i >= len(s.rows) {
		return nil, false
	}
	return s.rows[i].Clone(), true
}

// Row returns a copy of the row with the given id.
func (s *Store) Row(rowID string) (*visit.StaffRow, bool) {
	return s.RowAt(s.RowIndex(rowID))
}

// Unallocated returns the first row tagged as the unallocated pool.
func (s *Store) Unallocated() (*visit.StaffRow, bool) {
	for _, r := range s.rows {
		if r.IsUnallocated() {
			return r.Clone(), true
		}
	}
	return nil, false
}

// FindVisit returns a copy of the visit and the id of the row owning it.
func (s *Store) FindVisit(visitID string) (*visit.Visit, string, bool) {
	ri, vi := s.locate(visitID)
	if ri < 0 {
		return nil, "", false
	}
	return s.rows[ri].Visits[vi].Clone(), s.rows[ri].ID, true
}

func (s *Store) locate(visitID string) (rowIdx, visitIdx int) {
	for ri, r := range s.rows {
		for vi, v := range r.Visits {
			if v.ID == visitID {
				return ri, vi
			}
		}
	}
	return -1, -1
}

// RemoveVisit deletes the visit from whichever row holds it and returns it
// together with the id of its previous owner.
// Returns ErrVisitNotFound if no row holds the id; the store is unchanged.
func (s *Store) RemoveVisit(visitID string) (*visit.Visit, string, error) {
	ri, vi := s.locate(visitID)
	if ri < 0 {
		return nil, "", fmt.Errorf("%w: %s", visit.ErrVisitNotFound, visitID)
	}
	row := s.rows[ri]
	v := row.Visits[vi]

	visits := make([]*visit.Visit, 0, len(row.Visits)-1)
	visits = append(visits, row.Visits[:vi]...)
	visits = append(visits, row.Visits[vi+1:]...)
	row.Visits = visits

	return v, row.ID, nil
}

// AppendVisit adds the visit to the end of the named row.
// Returns ErrRowNotFound if the row does not exist; the store is unchanged.
func (s *Store) AppendVisit(rowID string, v *visit.Visit) error {
	ri := s.RowIndex(rowID)
	if ri < 0 {
		return fmt.Errorf("%w: %s", visit.ErrRowNotFound, rowID)
	}
	if v == nil {
		return fmt.Errorf("append to %s: %w", rowID, visit.ErrVisitNotFound)
	}
	if r, _ := s.locate(v.ID); r >= 0 {
		return fmt.Errorf("%w: %s", visit.ErrDuplicateVisit, v.ID)
	}
	row := s.rows[ri]
	row.Visits = append(row.Visits, v.Clone())
	return nil
}

// MoveVisit relocates a visit to targetRowID with a new start hour.
// The target row is resolved before the visit is removed, so a failed move
// never loses the visit.
func (s *Store) MoveVisit(visitID, targetRowID string, startHour float64) (visit.Move, error) {
	if s.RowIndex(targetRowID) < 0 {
		return visit.Move{}, fmt.Errorf("%w: %s", visit.ErrRowNotFound, targetRowID)
	}

	v, fromRowID, err := s.RemoveVisit(visitID)
	if err != nil {
		return visit.Move{}, err
	}

	moved := v.Clone()
	moved.StartHour = startHour
	if err := s.AppendVisit(targetRowID, moved); err != nil {
		// Target was checked above; put the visit back rather than drop it.
		_ = s.AppendVisit(fromRowID, v)
		return visit.Move{}, err
	}

	return visit.Move{
		VisitID:   visitID,
		FromRowID: fromRowID,
		ToRowID:   targetRowID,
		FromHour:  v.StartHour,
		StartHour: startHour,
		MovedAt:   s.now(),
	}, nil
}
