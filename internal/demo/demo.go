// Package demo provides a sample roster for trying the timeline without a
// database.
package demo

import (
	"github.com/google/uuid"

	"github.com/javiermolinar/rota/internal/visit"
)

// UnallocatedRowID is the id of the demo pool row.
const UnallocatedRowID = "unallocated"

type sample struct {
	start, duration float64
	subject         string
	category        visit.Category
	status          visit.Status
}

type carer struct {
	id, name string
	visits   []sample
}

var pool = []sample{
	{7.5, 0.5, "Margaret Hale", visit.CategoryMedication, visit.StatusScheduled},
	{12, 1, "Arthur Dent", visit.CategoryMeal, visit.StatusScheduled},
	{18.25, 0.75, "Edith Crawley", visit.CategoryPersonalCare, visit.StatusScheduled},
}

var carers = []carer{
	{"staff-ana", "Ana Torres", []sample{
		{7, 1, "Walter Bishop", visit.CategoryPersonalCare, visit.StatusCompleted},
		{9, 1, "Rose Tyler", visit.CategoryMeal, visit.StatusInProgress},
		{13.5, 0.5, "Walter Bishop", visit.CategoryMedication, visit.StatusScheduled},
	}},
	{"staff-ben", "Ben Okafor", []sample{
		{8, 1.5, "Harold Finch", visit.CategoryPersonalCare, visit.StatusCompleted},
		{11, 0.25, "Harold Finch", visit.CategoryMedication, visit.StatusScheduled},
		{16, 2, "Agnes Nutter", visit.CategoryCompanionship, visit.StatusScheduled},
	}},
	{"staff-cleo", "Cleo Park", []sample{
		{6.5, 0.75, "Ruth Langmore", visit.CategoryMedication, visit.StatusCompleted},
		{10, 1, "Ruth Langmore", visit.CategoryDomestic, visit.StatusScheduled},
	}},
	{"staff-dev", "Dev Patel", []sample{
		{14, 1, "Sam Gamgee", visit.CategoryMeal, visit.StatusScheduled},
		{20, 1, "Sam Gamgee", visit.CategoryPersonalCare, visit.StatusScheduled},
	}},
	{"staff-eli", "Eli Novak", nil},
}

// Roster returns a fresh roster: the unallocated pool followed by five carers.
// Visit ids are random and differ between calls.
func Roster() []*visit.StaffRow {
	rows := make([]*visit.StaffRow, 0, len(carers)+1)
	rows = append(rows, &visit.StaffRow{
		ID:     UnallocatedRowID,
		Name:   "Unallocated",
		Kind:   visit.RowUnallocated,
		Visits: build(pool),
	})
	for _, c := range carers {
		rows = append(rows, &visit.StaffRow{
			ID:     c.id,
			Name:   c.name,
			Kind:   visit.RowAssigned,
			Visits: build(c.visits),
		})
	}
	return rows
}

func build(samples []sample) []*visit.Visit {
	visits := make([]*visit.Visit, 0, len(samples))
	for _, s := range samples {
		visits = append(visits, &visit.Visit{
			ID:            uuid.New().String(),
			StartHour:     s.start,
			DurationHours: s.duration,
			Subject:       s.subject,
			Category:      s.category,
			Status:        s.status,
		})
	}
	return visits
}
