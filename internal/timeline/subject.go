package timeline

import (
	"fmt"

	"github.com/alexanderramin/crmsheet/internal/domain"
)

// Subject knows which activities and history entries belong to one entity.
// There is one implementation per entity kind.
type Subject interface {
	Ref() domain.EntityRef
	OwnsActivity(a *domain.Activity) bool
	OwnsEntry(e *domain.HistoryEntry) bool
}

type companySubject string

// CompanySubject selects records linked to the company with the given id.
func CompanySubject(id string) Subject { return companySubject(id) }

func (s companySubject) Ref() domain.EntityRef { return domain.CompanyRef(string(s)) }

func (s companySubject) OwnsActivity(a *domain.Activity) bool {
	return a.CompanyID == string(s)
}

func (s companySubject) OwnsEntry(e *domain.HistoryEntry) bool {
	return e.Entity == s.Ref()
}

type contactSubject string

// ContactSubject selects records linked to the contact with the given id.
func ContactSubject(id string) Subject { return contactSubject(id) }

func (s contactSubject) Ref() domain.EntityRef { return domain.ContactRef(string(s)) }

func (s contactSubject) OwnsActivity(a *domain.Activity) bool {
	return a.ContactID == string(s)
}

func (s contactSubject) OwnsEntry(e *domain.HistoryEntry) bool {
	return e.Entity == s.Ref()
}

// SubjectFor maps an entity ref onto its Subject.
func SubjectFor(ref domain.EntityRef) (Subject, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}
	switch ref.Kind {
	case domain.KindCompany:
		return CompanySubject(ref.ID), nil
	case domain.KindContact:
		return ContactSubject(ref.ID), nil
	}
	return nil, fmt.Errorf("unknown entity kind %q", ref.Kind)
}

// MergeTimeline is Merge for a ref-addressed entity.
func MergeTimeline(ref domain.EntityRef, activities []*domain.Activity, history []*domain.HistoryEntry) ([]Item, error) {
	subject, err := SubjectFor(ref)
	if err != nil {
		return nil, err
	}
	return Merge(subject, activities, history), nil
}
