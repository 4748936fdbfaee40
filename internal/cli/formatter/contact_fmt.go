package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/crmsheet/internal/domain"
)

type ContactDetail struct {
	Contact *domain.Contact
	// Company is nil when the contact is not linked to one.
	Company *domain.Company
	Tags    []*domain.Tag
}

// FormatContactList renders contacts as a table. companyNames maps company
// ids to names; unknown ids are shown truncated.
func FormatContactList(contacts []*domain.Contact, companyNames map[string]string) string {
	headers := []string{"ID", "NAME", "POSITION", "COMPANY", "EMAIL", "PHONE"}
	rows := make([][]string, 0, len(contacts))
	for _, c := range contacts {
		company := ""
		if c.CompanyID != "" {
			company = companyNames[c.CompanyID]
			if company == "" {
				company = TruncID(c.CompanyID)
			}
		}
		rows = append(rows, []string{
			TruncID(c.ID),
			Bold(c.Name),
			c.Position,
			company,
			c.Email,
			c.Phone,
		})
	}
	return RenderBox(fmt.Sprintf("Contacts (%d)", len(contacts)), RenderTable(headers, rows))
}

func FormatContactDetail(d ContactDetail) string {
	c := d.Contact
	var b strings.Builder

	b.WriteString(StyleBold.Render(c.Name) + "\n")
	b.WriteString(TagChips(d.Tags) + "\n\n")

	company := ""
	if d.Company != nil {
		company = StylePurple.Render(d.Company.Name)
	}
	b.WriteString(RenderFields([][2]string{
		{"id", Dim(c.ID)},
		{"position", c.Position},
		{"company", company},
		{"email", c.Email},
		{"phone", c.Phone},
	}))

	return RenderBox("", b.String())
}
