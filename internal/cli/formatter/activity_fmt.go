package formatter

import (
	"fmt"
	"time"

	"github.com/alexanderramin/crmsheet/internal/domain"
)

// FormatActivityList renders activities with their status and date.
// Planned activities show the due date relative to now.
func FormatActivityList(activities []*domain.Activity, subjects map[string]string, now time.Time) string {
	headers := []string{"ID", "DATE", "DUE", "TYPE", "TITLE", "FOR", "STATUS"}
	rows := make([][]string, 0, len(activities))
	for _, a := range activities {
		due := ""
		if a.IsPlanned() {
			due = DueStyled(a.Date, now)
		}
		rows = append(rows, []string{
			TruncID(a.ID),
			Stamp(a.Date, now.Location()),
			due,
			ActivityTypeBadge(a.Type),
			Bold(a.Title),
			subjects[a.ID],
			ActivityStatusPill(a.Status),
		})
	}
	return RenderBox(fmt.Sprintf("Activities (%d)", len(activities)), RenderTable(headers, rows))
}
