package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/crmsheet/internal/domain"
)

// Company options
type CompanyOption func(*domain.Company)

func WithWebsite(url string) CompanyOption {
	return func(c *domain.Company) { c.Website = url }
}

func WithCompanyDomain(d string) CompanyOption {
	return func(c *domain.Company) { c.Domain = d }
}

func WithCompanyPhone(p string) CompanyOption {
	return func(c *domain.Company) { c.Phone = p }
}

func WithCity(city string) CompanyOption {
	return func(c *domain.Company) { c.City = city }
}

func NewTestCompany(name string, opts ...CompanyOption) *domain.Company {
	c := &domain.Company{
		ID:      uuid.New().String(),
		Name:    name,
		Country: "PL",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Contact options
type ContactOption func(*domain.Contact)

func WithEmail(email string) ContactOption {
	return func(c *domain.Contact) { c.Email = email }
}

func WithContactPhone(p string) ContactOption {
	return func(c *domain.Contact) { c.Phone = p }
}

func WithCompanyID(id string) ContactOption {
	return func(c *domain.Contact) { c.CompanyID = id }
}

func NewTestContact(name string, opts ...ContactOption) *domain.Contact {
	c := &domain.Contact{
		ID:   uuid.New().String(),
		Name: name,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Activity options
type ActivityOption func(*domain.Activity)

func WithActivityType(t domain.ActivityType) ActivityOption {
	return func(a *domain.Activity) { a.Type = t }
}

func WithActivityDate(d string) ActivityOption {
	return func(a *domain.Activity) { a.Date = d }
}

func WithActivityStatus(s domain.ActivityStatus) ActivityOption {
	return func(a *domain.Activity) { a.Status = s }
}

func WithContactLink(id string) ActivityOption {
	return func(a *domain.Activity) { a.ContactID = id }
}

// NewTestActivity returns a planned email activity for the company, due
// one day from now.
func NewTestActivity(companyID, title string, opts ...ActivityOption) *domain.Activity {
	now := time.Now().UTC()
	a := &domain.Activity{
		ID:        uuid.New().String(),
		Type:      domain.ActivityEmail,
		Title:     title,
		Date:      domain.FormatTimestamp(now.AddDate(0, 0, 1)),
		CompanyID: companyID,
		Status:    domain.ActivityPlanned,
		CreatedBy: "tester@example.com",
		CreatedAt: domain.FormatTimestamp(now),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NewTestNote returns a note on ref stamped ts.
func NewTestNote(ref domain.EntityRef, content, ts string) *domain.HistoryEntry {
	return &domain.HistoryEntry{
		ID:        uuid.New().String(),
		Entity:    ref,
		Type:      domain.HistoryNote,
		Timestamp: ts,
		Author:    "tester@example.com",
		Content:   content,
	}
}

// NewTestEvent returns a system event on ref stamped ts.
func NewTestEvent(ref domain.EntityRef, content, ts string) *domain.HistoryEntry {
	e := NewTestNote(ref, content, ts)
	e.Type = domain.HistoryEvent
	return e
}

func NewTestTag(kind domain.EntityKind, name string) *domain.Tag {
	return &domain.Tag{
		ID:        uuid.New().String(),
		Kind:      kind,
		Name:      name,
		Color:     domain.TagPalette[0],
		CreatedBy: "tester@example.com",
		CreatedAt: domain.FormatTimestamp(time.Now()),
	}
}
