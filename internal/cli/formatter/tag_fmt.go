package formatter

import (
	"fmt"

	"github.com/alexanderramin/crmsheet/internal/domain"
)

// FormatTagList renders the tags of one entity kind.
func FormatTagList(kind domain.EntityKind, tags []*domain.Tag) string {
	headers := []string{"ID", "TAG", "COLOR", "DESCRIPTION"}
	rows := make([][]string, 0, len(tags))
	for _, t := range tags {
		rows = append(rows, []string{TruncID(t.ID), TagChip(t), Dim(t.Color), t.Description})
	}
	return RenderBox(fmt.Sprintf("%s tags (%d)", kind, len(tags)), RenderTable(headers, rows))
}
