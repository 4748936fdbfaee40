package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/crmsheet/internal/domain"
)

// CompanyDetail holds everything the company card shows.
type CompanyDetail struct {
	Company  *domain.Company
	Tags     []*domain.Tag
	Contacts []*domain.Contact
}

// FormatCompanyList renders companies as a table inside a bordered box.
func FormatCompanyList(companies []*domain.Company) string {
	headers := []string{"ID", "NAME", "INDUSTRY", "CITY", "WEBSITE", "PHONE"}
	rows := make([][]string, 0, len(companies))
	for _, c := range companies {
		rows = append(rows, []string{
			TruncID(c.ID),
			Bold(c.Name),
			c.Industry,
			c.City,
			domain.CoalesceStr(c.Website, c.Domain),
			c.Phone,
		})
	}
	return RenderBox(fmt.Sprintf("Companies (%d)", len(companies)), RenderTable(headers, rows))
}

// FormatCompanyDetail renders a company card with its tags and contacts.
func FormatCompanyDetail(d CompanyDetail) string {
	c := d.Company
	var b strings.Builder

	b.WriteString(StyleBold.Render(c.Name) + "\n")
	b.WriteString(TagChips(d.Tags) + "\n\n")
	b.WriteString(RenderFields([][2]string{
		{"id", Dim(c.ID)},
		{"industry", c.Industry},
		{"website", c.Website},
		{"domain", c.Domain},
		{"phone", c.Phone},
		{"city", c.City},
		{"country", c.Country},
	}))

	if c.Notes != "" {
		b.WriteString("\n" + Header("Notes") + "\n")
		b.WriteString(StyleFg.Render(c.Notes) + "\n")
	}

	b.WriteString("\n" + Header(fmt.Sprintf("Contacts (%d)", len(d.Contacts))) + "\n")
	if len(d.Contacts) == 0 {
		b.WriteString(Dim("No contacts.") + "\n")
	}
	for _, ct := range d.Contacts {
		line := StyleFg.Render(ct.Name)
		if ct.Position != "" {
			line += Dim(" · " + ct.Position)
		}
		if ct.Email != "" {
			line += Dim(" · " + ct.Email)
		}
		b.WriteString("  " + line + "\n")
	}

	return RenderBox("", b.String())
}
