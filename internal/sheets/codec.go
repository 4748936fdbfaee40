package sheets

import (
	"github.com/alexanderramin/crmsheet/internal/domain"
)

// Column layouts. Changing the order breaks existing spreadsheets.

// Companies!A:I
var companyCodec = codec[domain.Company]{
	lastCol: "I",
	encode: func(c *domain.Company) []string {
		return []string{c.ID, c.Name, c.Industry, c.Notes, c.Website, c.Phone, c.City, c.Country, c.Domain}
	},
	decode: func(row []string, rowNum int) (*domain.Company, bool) {
		c := &domain.Company{
			ID:       domain.CoalesceStr(domain.CellAt(row, 0), syntheticID(rowNum)),
			Name:     domain.CellAt(row, 1),
			Industry: domain.CellAt(row, 2),
			Notes:    domain.CellAt(row, 3),
			Website:  domain.CellAt(row, 4),
			Phone:    domain.CellAt(row, 5),
			City:     domain.CellAt(row, 6),
			Country:  domain.CellAt(row, 7),
			Domain:   domain.CellAt(row, 8),
		}
		return c, c.Name != ""
	},
}

// Contacts!A:F
var contactCodec = codec[domain.Contact]{
	lastCol: "F",
	encode: func(c *domain.Contact) []string {
		return []string{c.ID, c.CompanyID, c.Name, c.Position, c.Email, c.Phone}
	},
	decode: func(row []string, rowNum int) (*domain.Contact, bool) {
		c := &domain.Contact{
			ID:        domain.CoalesceStr(domain.CellAt(row, 0), syntheticID(rowNum)),
			CompanyID: domain.CellAt(row, 1),
			Name:      domain.CellAt(row, 2),
			Position:  domain.CellAt(row, 3),
			Email:     domain.CellAt(row, 4),
			Phone:     domain.CellAt(row, 5),
		}
		return c, c.Name != ""
	},
}

// Activities!A:K
var activityCodec = codec[domain.Activity]{
	lastCol: "K",
	encode: func(a *domain.Activity) []string {
		return []string{
			a.ID, string(a.Type), a.Title, a.Date, a.Notes, a.CompanyID, a.ContactID,
			string(a.Status), a.CreatedBy, a.CreatedAt, a.CompletedAt,
		}
	},
	decode: func(row []string, rowNum int) (*domain.Activity, bool) {
		a := &domain.Activity{
			ID:          domain.CoalesceStr(domain.CellAt(row, 0), syntheticID(rowNum)),
			Type:        domain.ActivityType(domain.CellAt(row, 1)),
			Title:       domain.CellAt(row, 2),
			Date:        domain.CellAt(row, 3),
			Notes:       domain.CellAt(row, 4),
			CompanyID:   domain.CellAt(row, 5),
			ContactID:   domain.CellAt(row, 6),
			Status:      domain.ActivityStatus(domain.CoalesceStr(domain.CellAt(row, 7), string(domain.ActivityPlanned))),
			CreatedBy:   domain.CellAt(row, 8),
			CreatedAt:   domain.CellAt(row, 9),
			CompletedAt: domain.CellAt(row, 10),
		}
		return a, a.Title != ""
	},
}

// CompanyHistory!A:G and ContactHistory!A:G. The entity kind comes from
// the sheet, not the row.
func historyCodec(kind domain.EntityKind) codec[domain.HistoryEntry] {
	return codec[domain.HistoryEntry]{
		lastCol: "G",
		encode: func(e *domain.HistoryEntry) []string {
			return []string{e.ID, e.Entity.ID, string(e.Type), e.Timestamp, e.Author, e.Content, e.Meta}
		},
		decode: func(row []string, rowNum int) (*domain.HistoryEntry, bool) {
			e := &domain.HistoryEntry{
				ID:        domain.CoalesceStr(domain.CellAt(row, 0), syntheticID(rowNum)),
				Entity:    domain.EntityRef{Kind: kind, ID: domain.CellAt(row, 1)},
				Type:      domain.HistoryType(domain.CoalesceStr(domain.CellAt(row, 2), string(domain.HistoryEvent))),
				Timestamp: domain.CellAt(row, 3),
				Author:    domain.CellAt(row, 4),
				Content:   domain.CellAt(row, 5),
				Meta:      domain.CellAt(row, 6),
			}
			return e, e.Entity.ID != ""
		},
	}
}

// CompanyTags!A:F and ContactTags!A:F
func tagCodec(kind domain.EntityKind) codec[domain.Tag] {
	return codec[domain.Tag]{
		lastCol: "F",
		encode: func(t *domain.Tag) []string {
			return []string{t.ID, t.Name, domain.CoalesceStr(t.Color, domain.DefaultTagColor), t.Description, t.CreatedBy, t.CreatedAt}
		},
		decode: func(row []string, rowNum int) (*domain.Tag, bool) {
			t := &domain.Tag{
				ID:          domain.CoalesceStr(domain.CellAt(row, 0), syntheticID(rowNum)),
				Kind:        kind,
				Name:        domain.CellAt(row, 1),
				Color:       domain.CoalesceStr(domain.CellAt(row, 2), domain.DefaultTagColor),
				Description: domain.CellAt(row, 3),
				CreatedBy:   domain.CellAt(row, 4),
				CreatedAt:   domain.CellAt(row, 5),
			}
			return t, t.Name != ""
		},
	}
}

// CompanyTagRelations!A:E and ContactTagRelations!A:E
func tagAssignmentCodec(kind domain.EntityKind) codec[domain.TagAssignment] {
	return codec[domain.TagAssignment]{
		lastCol: "E",
		encode: func(a *domain.TagAssignment) []string {
			return []string{a.ID, a.Entity.ID, a.TagID, a.AssignedBy, a.AssignedAt}
		},
		decode: func(row []string, rowNum int) (*domain.TagAssignment, bool) {
			a := &domain.TagAssignment{
				ID:         domain.CoalesceStr(domain.CellAt(row, 0), syntheticID(rowNum)),
				Entity:     domain.EntityRef{Kind: kind, ID: domain.CellAt(row, 1)},
				TagID:      domain.CellAt(row, 2),
				AssignedBy: domain.CellAt(row, 3),
				AssignedAt: domain.CellAt(row, 4),
			}
			return a, a.Entity.ID != "" && a.TagID != ""
		},
	}
}

// UserPreferences!A:D, keyed by email.
var profileCodec = codec[domain.UserProfile]{
	lastCol: "D",
	encode: func(p *domain.UserProfile) []string {
		return []string{p.Email, p.DisplayName, p.CreatedAt, p.UpdatedAt}
	},
	decode: func(row []string, _ int) (*domain.UserProfile, bool) {
		p := &domain.UserProfile{
			Email:       domain.CellAt(row, 0),
			DisplayName: domain.CellAt(row, 1),
			CreatedAt:   domain.CellAt(row, 2),
			UpdatedAt:   domain.CellAt(row, 3),
		}
		return p, p.Email != ""
	},
}
