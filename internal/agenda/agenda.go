// Package agenda groups planned activities into the calendar buckets shown
// on the dashboard.
package agenda

import (
	"sort"
	"time"

	"github.com/alexanderramin/crmsheet/internal/domain"
)

// Buckets holds planned activities by due day, relative to the local
// calendar day of "now".
type Buckets struct {
	Overdue  []*domain.Activity
	Today    []*domain.Activity
	Tomorrow []*domain.Activity
	// ThisWeek is after tomorrow and before today+7.
	ThisWeek []*domain.Activity
}

// Len is the number of activities across all buckets.
func (b Buckets) Len() int {
	return len(b.Overdue) + len(b.Today) + len(b.Tomorrow) + len(b.ThisWeek)
}

// Build buckets the planned activities. Activities that are not planned,
// or whose date cannot be parsed, or that fall a week or more ahead, are
// left out. Each bucket is ordered ascending by date string.
func Build(activities []*domain.Activity, now time.Time) Buckets {
	loc := now.Location()
	today := startOfDay(now)
	tomorrow := today.AddDate(0, 0, 1)
	dayAfter := today.AddDate(0, 0, 2)
	weekEnd := today.AddDate(0, 0, 7)

	var b Buckets
	for _, a := range activities {
		if a == nil || !a.IsPlanned() {
			continue
		}
		due, err := domain.ParseTimestamp(a.Date, loc)
		if err != nil {
			continue
		}
		day := startOfDay(due.In(loc))
		switch {
		case day.Before(today):
			b.Overdue = append(b.Overdue, a)
		case day.Equal(today):
			b.Today = append(b.Today, a)
		case day.Equal(tomorrow):
			b.Tomorrow = append(b.Tomorrow, a)
		case !day.Before(dayAfter) && day.Before(weekEnd):
			b.ThisWeek = append(b.ThisWeek, a)
		}
	}
	for _, list := range [][]*domain.Activity{b.Overdue, b.Today, b.Tomorrow, b.ThisWeek} {
		sortAscending(list)
	}
	return b
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func sortAscending(list []*domain.Activity) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Date < list[j].Date
	})
}
