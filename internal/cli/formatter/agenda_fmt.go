package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/crmsheet/internal/agenda"
	"github.com/alexanderramin/crmsheet/internal/domain"
)

// FormatAgenda renders the planned-activity buckets. subjects maps an
// activity id to the name of the company or contact it belongs to.
func FormatAgenda(b agenda.Buckets, subjects map[string]string, now time.Time) string {
	if b.Len() == 0 {
		return RenderBox("Agenda", Dim("No planned activities this week."))
	}

	var out strings.Builder
	sections := []struct {
		title string
		list  []*domain.Activity
	}{
		{"Overdue", b.Overdue},
		{"Today", b.Today},
		{"Tomorrow", b.Tomorrow},
		{"This week", b.ThisWeek},
	}
	first := true
	for _, s := range sections {
		if len(s.list) == 0 {
			continue
		}
		if !first {
			out.WriteString("\n")
		}
		first = false
		out.WriteString(Header(fmt.Sprintf("%s (%d)", s.title, len(s.list))) + "\n")

		rows := make([][]string, 0, len(s.list))
		for _, a := range s.list {
			rows = append(rows, []string{
				TruncID(a.ID),
				DueStyled(a.Date, now),
				Dim(Stamp(a.Date, now.Location())),
				ActivityTypeBadge(a.Type),
				Bold(a.Title),
				subjects[a.ID],
			})
		}
		out.WriteString(RenderRows(rows))
	}
	return RenderBox("Agenda", out.String())
}
