// Package visit defines the core domain types for rota.
package visit

import (
	"errors"
	"fmt"
	"time"
)

// Validation errors.
var (
	ErrEmptyID         = errors.New("id cannot be empty")
	ErrInvalidDuration = errors.New("duration must be positive")
	ErrInvalidStart    = errors.New("start hour must be within [0, 24)")
)

// Domain errors.
var (
	ErrVisitNotFound  = errors.New("visit not found")
	ErrRowNotFound    = errors.New("staff row not found")
	ErrDuplicateVisit = errors.New("visit id appears more than once")
	ErrDuplicateRow   = errors.New("staff row id appears more than once")
	ErrStaleMove      = errors.New("visit has moved since the move was made")
)

// Status represents the progress of a visit.
type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Valid returns true if the status is a known value.
func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}

// Category represents the kind of care delivered during a visit.
type Category string

const (
	CategoryPersonalCare  Category = "personal-care"
	CategoryMedication    Category = "medication"
	CategoryMeal          Category = "meal"
	CategoryCompanionship Category = "companionship"
	CategoryDomestic      Category = "domestic"
)

// Visit is a time-blocked care appointment.
type Visit struct {
	ID            string
	StartHour     float64 // fractional hour of day, quarter-hour aligned once settled
	DurationHours float64
	Subject       string // person receiving care
	Category      Category
	Status        Status
}

// EndHour returns the hour at which the visit finishes.
func (v *Visit) EndHour() float64 {
	return v.StartHour + v.DurationHours
}

// Clone returns a copy of the visit.
func (v *Visit) Clone() *Visit {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// Validate checks the fields a data source must provide.
// The end of the visit is allowed to run past midnight.
func (v *Visit) Validate() error {
	if v.ID == "" {
		return ErrEmptyID
	}
	if v.DurationHours <= 0 {
		return fmt.Errorf("visit %s: %w", v.ID, ErrInvalidDuration)
	}
	if v.StartHour < 0 || v.StartHour >= 24 {
		return fmt.Errorf("visit %s: %w", v.ID, ErrInvalidStart)
	}
	return nil
}

// RowKind tags a staff row as the unallocated pool or a real carer.
type RowKind string

const (
	RowUnallocated RowKind = "unallocated"
	RowAssigned    RowKind = "assigned"
)

// StaffRow is an assignment target in the timeline.
type StaffRow struct {
	ID     string
	Name   string
	Kind   RowKind
	Visits []*Visit
}

// IsUnallocated returns true if the row is the pool of visits without a carer.
func (r *StaffRow) IsUnallocated() bool {
	return r.Kind == RowUnallocated
}

// Clone returns a deep copy of the row and its visits.
func (r *StaffRow) Clone() *StaffRow {
	if r == nil {
		return nil
	}
	c := &StaffRow{ID: r.ID, Name: r.Name, Kind: r.Kind}
	if r.Visits != nil {
		c.Visits = make([]*Visit, len(r.Visits))
		for i, v := range r.Visits {
			c.Visits[i] = v.Clone()
		}
	}
	return c
}

// Move describes a committed relocation of a visit.
type Move struct {
	VisitID   string
	FromRowID string
	ToRowID   string
	FromHour  float64
	StartHour float64
	MovedAt   time.Time
}

// ChangedRow returns true if the visit changed owner.
func (m Move) ChangedRow() bool {
	return m.FromRowID != m.ToRowID
}
