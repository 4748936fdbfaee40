package dedup

import (
	"strings"

	"github.com/alexanderramin/crmsheet/internal/domain"
)

// Reason names the identity field that made two records collide.
type Reason string

const (
	ReasonName    Reason = "name"
	ReasonWebsite Reason = "website"
	ReasonPhone   Reason = "phone"
	ReasonEmail   Reason = "email"
)

// Identity is the capability set the matcher needs from an entity kind:
// how to read a record's id and how to compare two records' identity
// fields.
type Identity[T any] interface {
	RecordID(rec T) string
	Compare(candidate, existing T) []Reason
}

// Match is a probable duplicate and the fields that matched.
type Match[T any] struct {
	Existing T
	Reasons  []Reason
}

// CheckDuplicate returns the first record in existing whose identity
// collides with candidate. The record whose id equals excludeID (the one
// being edited) is never matched; an empty excludeID excludes nothing.
func CheckDuplicate[T any](id Identity[T], candidate T, existing []T, excludeID string) (Match[T], bool) {
	for _, rec := range existing {
		if excludeID != "" && id.RecordID(rec) == excludeID {
			continue
		}
		if reasons := id.Compare(candidate, rec); len(reasons) > 0 {
			return Match[T]{Existing: rec, Reasons: reasons}, true
		}
	}
	return Match[T]{}, false
}

// CompanyIdentity matches companies by normalized name, website/domain
// (cross-compared) and phone.
type CompanyIdentity struct{}

func (CompanyIdentity) RecordID(c *domain.Company) string {
	if c == nil {
		return ""
	}
	return c.ID
}

func (CompanyIdentity) Compare(candidate, existing *domain.Company) []Reason {
	if candidate == nil || existing == nil {
		return nil
	}
	var reasons []Reason

	if name := NormalizeCompanyName(candidate.Name); name != "" && name == NormalizeCompanyName(existing.Name) {
		reasons = append(reasons, ReasonName)
	}

	stored := []string{NormalizeURL(existing.Website), NormalizeURL(existing.Domain)}
	for _, in := range []string{NormalizeURL(candidate.Website), NormalizeURL(candidate.Domain)} {
		if in == "" {
			continue
		}
		if in == stored[0] || in == stored[1] {
			reasons = append(reasons, ReasonWebsite)
			break
		}
	}

	if phone := NormalizePhone(candidate.Phone); phone != "" && phone == NormalizePhone(existing.Phone) {
		reasons = append(reasons, ReasonPhone)
	}
	return reasons
}

// ContactIdentity matches contacts by case-insensitive name or email and by
// normalized phone.
type ContactIdentity struct{}

func (ContactIdentity) RecordID(c *domain.Contact) string {
	if c == nil {
		return ""
	}
	return c.ID
}

func (ContactIdentity) Compare(candidate, existing *domain.Contact) []Reason {
	if candidate == nil || existing == nil {
		return nil
	}
	var reasons []Reason
	if equalFoldNonEmpty(candidate.Name, existing.Name) {
		reasons = append(reasons, ReasonName)
	}
	if equalFoldNonEmpty(candidate.Email, existing.Email) {
		reasons = append(reasons, ReasonEmail)
	}
	if phone := NormalizePhone(candidate.Phone); phone != "" && phone == NormalizePhone(existing.Phone) {
		reasons = append(reasons, ReasonPhone)
	}
	return reasons
}

func equalFoldNonEmpty(a, b string) bool {
	return a != "" && b != "" && strings.ToLower(a) == strings.ToLower(b)
}

// CheckCompany runs CheckDuplicate with CompanyIdentity.
func CheckCompany(candidate *domain.Company, existing []*domain.Company, excludeID string) (Match[*domain.Company], bool) {
	return CheckDuplicate[*domain.Company](CompanyIdentity{}, candidate, existing, excludeID)
}

// CheckContact runs CheckDuplicate with ContactIdentity.
func CheckContact(candidate *domain.Contact, existing []*domain.Contact, excludeID string) (Match[*domain.Contact], bool) {
	return CheckDuplicate[*domain.Contact](ContactIdentity{}, candidate, existing, excludeID)
}
