package domain

import (
	"fmt"
	"strings"
)

// EntityRef points at a single company or contact.
type EntityRef struct {
	Kind EntityKind
	ID   string
}

func CompanyRef(id string) EntityRef { return EntityRef{Kind: KindCompany, ID: id} }
func ContactRef(id string) EntityRef { return EntityRef{Kind: KindContact, ID: id} }

func (r EntityRef) String() string {
	return fmt.Sprintf("%s:%s", r.Kind, r.ID)
}

// Validate checks that the ref names a known kind and carries an id.
func (r EntityRef) Validate() error {
	if !r.Kind.Valid() {
		return fmt.Errorf("unknown entity kind %q", r.Kind)
	}
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("%s id is required", r.Kind)
	}
	return nil
}

type Company struct {
	ID       string
	Name     string
	Industry string
	Notes    string
	Website  string
	Phone    string
	City     string
	Country  string
	Domain   string

	// TagIDs is populated from tag assignments; it is not stored on the row.
	TagIDs []string
}

// DeriveWebsite fills Website from Domain when only the domain was given.
func (c *Company) DeriveWebsite() {
	if c.Website != "" || c.Domain == "" {
		return
	}
	if strings.HasPrefix(c.Domain, "http") {
		c.Website = c.Domain
		return
	}
	c.Website = "https://" + c.Domain
}

// Trim strips surrounding whitespace from every free-text field.
func (c *Company) Trim() {
	c.Name = strings.TrimSpace(c.Name)
	c.Industry = strings.TrimSpace(c.Industry)
	c.Notes = strings.TrimSpace(c.Notes)
	c.Website = strings.TrimSpace(c.Website)
	c.Phone = strings.TrimSpace(c.Phone)
	c.City = strings.TrimSpace(c.City)
	c.Country = strings.TrimSpace(c.Country)
	c.Domain = strings.TrimSpace(c.Domain)
}

// MatchesSearch reports whether q occurs, ignoring case, in the company's
// descriptive fields joined by spaces. An empty q matches everything.
func (c *Company) MatchesSearch(q string) bool {
	return containsFold(q, c.Name, c.Industry, c.Notes, c.Website, c.Phone, c.City, c.Country)
}

type Contact struct {
	ID        string
	CompanyID string
	Name      string
	Position  string
	Email     string
	Phone     string

	TagIDs []string
}

func (c *Contact) Trim() {
	c.CompanyID = strings.TrimSpace(c.CompanyID)
	c.Name = strings.TrimSpace(c.Name)
	c.Position = strings.TrimSpace(c.Position)
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)
}

// MatchesSearch is like Company.MatchesSearch. The linked company's name,
// industry, city and country count as part of the contact; company may be nil.
func (c *Contact) MatchesSearch(q string, company *Company) bool {
	fields := []string{c.Name, c.Position, c.Email, c.Phone}
	if company != nil {
		fields = append(fields, company.Name, company.Industry, company.City, company.Country)
	}
	return containsFold(q, fields...)
}

func containsFold(q string, fields ...string) bool {
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(strings.Join(fields, " ")), strings.ToLower(q))
}
