package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/crmsheet/internal/timeline"
)

// FormatTimeline renders timeline items newest first, in the order given.
// names maps author emails to display names.
func FormatTimeline(title string, items []timeline.Item, names map[string]string, loc *time.Location) string {
	if len(items) == 0 {
		return RenderBox(title, Dim("Nothing here yet."))
	}

	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(formatTimelineItem(item, names, loc))
	}
	return RenderBox(title, b.String())
}

func formatTimelineItem(item timeline.Item, names map[string]string, loc *time.Location) string {
	when := Dim(Stamp(item.Timestamp(), loc))

	switch item.Kind {
	case timeline.ItemActivity:
		a := item.Activity
		line := fmt.Sprintf("%s  %s %s  %s", when, ActivityTypeBadge(a.Type), Bold(a.Title), ActivityStatusPill(a.Status))
		if a.Notes != "" {
			line += "\n" + strings.Repeat(" ", 18) + Dim(Truncate(a.Notes, 72))
		}
		return line + "\n"
	case timeline.ItemNote:
		e := item.Entry
		return fmt.Sprintf("%s  %s %s  %s\n", when, StyleYellow.Render("NOTE"), StyleFg.Render(e.Content), Dim(authorName(e.Author, names)))
	default:
		e := item.Entry
		return fmt.Sprintf("%s  %s %s  %s\n", when, Dim("EVENT"), Dim(e.Content), Dim(authorName(e.Author, names)))
	}
}

func authorName(email string, names map[string]string) string {
	if name := names[email]; name != "" {
		return name
	}
	return email
}
