package sheets

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/crmsheet/internal/domain"
	"github.com/alexanderramin/crmsheet/internal/repository"
)

type companyRepo struct{ t *table[domain.Company] }

func byID[T any](id string, idOf func(*T) string) func(*T) bool {
	return func(v *T) bool { return idOf(v) == id }
}

func companyID(c *domain.Company) string { return c.ID }

func (r companyRepo) Create(ctx context.Context, c *domain.Company) error {
	if err := r.t.insert(ctx, c); err != nil {
		return fmt.Errorf("inserting company: %w", err)
	}
	return nil
}

func (r companyRepo) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	rec, ok, err := r.t.first(ctx, byID(id, companyID))
	if err != nil {
		return nil, fmt.Errorf("loading companies: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("company %s: %w", id, repository.ErrNotFound)
	}
	return rec.value, nil
}

func (r companyRepo) List(ctx context.Context) ([]*domain.Company, error) {
	list, err := r.t.list(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading companies: %w", err)
	}
	return list, nil
}

func (r companyRepo) Update(ctx context.Context, c *domain.Company) error {
	rec, ok, err := r.t.first(ctx, byID(c.ID, companyID))
	if err != nil {
		return fmt.Errorf("loading companies: %w", err)
	}
	if !ok {
		return fmt.Errorf("company %s: %w", c.ID, repository.ErrNotFound)
	}
	if err := r.t.put(ctx, rec.rowNum, c); err != nil {
		return fmt.Errorf("updating company: %w", err)
	}
	return nil
}

func (r companyRepo) Delete(ctx context.Context, id string) error {
	rec, ok, err := r.t.first(ctx, byID(id, companyID))
	if err != nil {
		return fmt.Errorf("loading companies: %w", err)
	}
	if !ok {
		return fmt.Errorf("company %s: %w", id, repository.ErrNotFound)
	}
	if err := r.t.clearRow(ctx, rec.rowNum); err != nil {
		return fmt.Errorf("deleting company: %w", err)
	}
	return nil
}

type contactRepo struct{ t *table[domain.Contact] }

func contactID(c *domain.Contact) string { return c.ID }

func (r contactRepo) Create(ctx context.Context, c *domain.Contact) error {
	if err := r.t.insert(ctx, c); err != nil {
		return fmt.Errorf("inserting contact: %w", err)
	}
	return nil
}

func (r contactRepo) GetByID(ctx context.Context, id string) (*domain.Contact, error) {
	rec, ok, err := r.t.first(ctx, byID(id, contactID))
	if err != nil {
		return nil, fmt.Errorf("loading contacts: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("contact %s: %w", id, repository.ErrNotFound)
	}
	return rec.value, nil
}

func (r contactRepo) List(ctx context.Context) ([]*domain.Contact, error) {
	list, err := r.t.list(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading contacts: %w", err)
	}
	return list, nil
}

func (r contactRepo) ListByCompany(ctx context.Context, companyID string) ([]*domain.Contact, error) {
	list, err := r.t.filter(ctx, func(c *domain.Contact) bool { return c.CompanyID == companyID })
	if err != nil {
		return nil, fmt.Errorf("loading contacts: %w", err)
	}
	return list, nil
}

func (r contactRepo) Update(ctx context.Context, c *domain.Contact) error {
	rec, ok, err := r.t.first(ctx, byID(c.ID, contactID))
	if err != nil {
		return fmt.Errorf("loading contacts: %w", err)
	}
	if !ok {
		return fmt.Errorf("contact %s: %w", c.ID, repository.ErrNotFound)
	}
	if err := r.t.put(ctx, rec.rowNum, c); err != nil {
		return fmt.Errorf("updating contact: %w", err)
	}
	return nil
}

func (r contactRepo) Delete(ctx context.Context, id string) error {
	rec, ok, err := r.t.first(ctx, byID(id, contactID))
	if err != nil {
		return fmt.Errorf("loading contacts: %w", err)
	}
	if !ok {
		return fmt.Errorf("contact %s: %w", id, repository.ErrNotFound)
	}
	if err := r.t.clearRow(ctx, rec.rowNum); err != nil {
		return fmt.Errorf("deleting contact: %w", err)
	}
	return nil
}

type activityRepo struct{ t *table[domain.Activity] }

func activityID(a *domain.Activity) string { return a.ID }

func (r activityRepo) Create(ctx context.Context, a *domain.Activity) error {
	if err := r.t.insert(ctx, a); err != nil {
		return fmt.Errorf("inserting activity: %w", err)
	}
	return nil
}

func (r activityRepo) GetByID(ctx context.Context, id string) (*domain.Activity, error) {
	rec, ok, err := r.t.first(ctx, byID(id, activityID))
	if err != nil {
		return nil, fmt.Errorf("loading activities: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("activity %s: %w", id, repository.ErrNotFound)
	}
	return rec.value, nil
}

func (r activityRepo) List(ctx context.Context) ([]*domain.Activity, error) {
	list, err := r.t.list(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading activities: %w", err)
	}
	return list, nil
}

func (r activityRepo) ListByEntity(ctx context.Context, ref domain.EntityRef) ([]*domain.Activity, error) {
	var keep func(*domain.Activity) bool
	switch ref.Kind {
	case domain.KindCompany:
		keep = func(a *domain.Activity) bool { return a.CompanyID == ref.ID }
	case domain.KindContact:
		keep = func(a *domain.Activity) bool { return a.ContactID == ref.ID }
	default:
		return nil, fmt.Errorf("unknown entity kind %q", ref.Kind)
	}
	list, err := r.t.filter(ctx, keep)
	if err != nil {
		return nil, fmt.Errorf("loading activities: %w", err)
	}
	return list, nil
}

func (r activityRepo) Update(ctx context.Context, a *domain.Activity) error {
	rec, ok, err := r.t.first(ctx, byID(a.ID, activityID))
	if err != nil {
		return fmt.Errorf("loading activities: %w", err)
	}
	if !ok {
		return fmt.Errorf("activity %s: %w", a.ID, repository.ErrNotFound)
	}
	if err := r.t.put(ctx, rec.rowNum, a); err != nil {
		return fmt.Errorf("updating activity: %w", err)
	}
	return nil
}

func (r activityRepo) Delete(ctx context.Context, id string) error {
	rec, ok, err := r.t.first(ctx, byID(id, activityID))
	if err != nil {
		return fmt.Errorf("loading activities: %w", err)
	}
	if !ok {
		return fmt.Errorf("activity %s: %w", id, repository.ErrNotFound)
	}
	if err := r.t.clearRow(ctx, rec.rowNum); err != nil {
		return fmt.Errorf("deleting activity: %w", err)
	}
	return nil
}

// perKind routes a collection that is split into one sheet per entity kind.
type perKind[T any] struct {
	company *table[T]
	contact *table[T]
}

func (p perKind[T]) of(kind domain.EntityKind) (*table[T], error) {
	switch kind {
	case domain.KindCompany:
		return p.company, nil
	case domain.KindContact:
		return p.contact, nil
	}
	return nil, fmt.Errorf("unknown entity kind %q", kind)
}

func (p perKind[T]) both() []*table[T] {
	return []*table[T]{p.company, p.contact}
}

type historyRepo struct{ sheets perKind[domain.HistoryEntry] }

func (r historyRepo) Create(ctx context.Context, e *domain.HistoryEntry) error {
	t, err := r.sheets.of(e.Entity.Kind)
	if err != nil {
		return err
	}
	if err := t.insert(ctx, e); err != nil {
		return fmt.Errorf("inserting history entry: %w", err)
	}
	return nil
}

func (r historyRepo) ListByEntity(ctx context.Context, ref domain.EntityRef) ([]*domain.HistoryEntry, error) {
	t, err := r.sheets.of(ref.Kind)
	if err != nil {
		return nil, err
	}
	list, err := t.filter(ctx, func(e *domain.HistoryEntry) bool { return e.Entity.ID == ref.ID })
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	return list, nil
}

func (r historyRepo) ListByKind(ctx context.Context, kind domain.EntityKind) ([]*domain.HistoryEntry, error) {
	t, err := r.sheets.of(kind)
	if err != nil {
		return nil, err
	}
	list, err := t.list(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	return list, nil
}

type tagRepo struct{ sheets perKind[domain.Tag] }

func tagID(t *domain.Tag) string { return t.ID }

// find searches both tag sheets.
func (r tagRepo) find(ctx context.Context, id string) (*table[domain.Tag], located[domain.Tag], error) {
	for _, t := range r.sheets.both() {
		rec, ok, err := t.first(ctx, byID(id, tagID))
		if err != nil {
			return nil, located[domain.Tag]{}, fmt.Errorf("loading tags: %w", err)
		}
		if ok {
			return t, rec, nil
		}
	}
	return nil, located[domain.Tag]{}, fmt.Errorf("tag %s: %w", id, repository.ErrNotFound)
}

func (r tagRepo) Create(ctx context.Context, tag *domain.Tag) error {
	t, err := r.sheets.of(tag.Kind)
	if err != nil {
		return err
	}
	if err := t.insert(ctx, tag); err != nil {
		return fmt.Errorf("inserting tag: %w", err)
	}
	return nil
}

func (r tagRepo) GetByID(ctx context.Context, id string) (*domain.Tag, error) {
	_, rec, err := r.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return rec.value, nil
}

func (r tagRepo) ListByKind(ctx context.Context, kind domain.EntityKind) ([]*domain.Tag, error) {
	t, err := r.sheets.of(kind)
	if err != nil {
		return nil, err
	}
	list, err := t.list(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading tags: %w", err)
	}
	return list, nil
}

func (r tagRepo) Update(ctx context.Context, tag *domain.Tag) error {
	t, rec, err := r.find(ctx, tag.ID)
	if err != nil {
		return err
	}
	if err := t.put(ctx, rec.rowNum, tag); err != nil {
		return fmt.Errorf("updating tag: %w", err)
	}
	return nil
}

// Delete clears the tag row only; the caller removes its assignments.
func (r tagRepo) Delete(ctx context.Context, id string) error {
	t, rec, err := r.find(ctx, id)
	if err != nil {
		return err
	}
	if err := t.clearRow(ctx, rec.rowNum); err != nil {
		return fmt.Errorf("deleting tag: %w", err)
	}
	return nil
}

type tagAssignmentRepo struct{ sheets perKind[domain.TagAssignment] }

// Create is a no-op when the entity already carries the tag.
func (r tagAssignmentRepo) Create(ctx context.Context, a *domain.TagAssignment) error {
	t, err := r.sheets.of(a.Entity.Kind)
	if err != nil {
		return err
	}
	_, exists, err := t.first(ctx, func(x *domain.TagAssignment) bool {
		return x.Entity.ID == a.Entity.ID && x.TagID == a.TagID
	})
	if err != nil {
		return fmt.Errorf("loading tag assignments: %w", err)
	}
	if exists {
		return nil
	}
	if err := t.insert(ctx, a); err != nil {
		return fmt.Errorf("inserting tag assignment: %w", err)
	}
	return nil
}

func (r tagAssignmentRepo) Delete(ctx context.Context, ref domain.EntityRef, tagID string) error {
	n, err := r.clearWhere(ctx, ref.Kind, func(a *domain.TagAssignment) bool {
		return a.Entity.ID == ref.ID && a.TagID == tagID
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("tag assignment %s/%s: %w", ref, tagID, repository.ErrNotFound)
	}
	return nil
}

func (r tagAssignmentRepo) DeleteByEntity(ctx context.Context, ref domain.EntityRef) error {
	_, err := r.clearWhere(ctx, ref.Kind, func(a *domain.TagAssignment) bool { return a.Entity.ID == ref.ID })
	return err
}

func (r tagAssignmentRepo) DeleteByTag(ctx context.Context, tagID string) error {
	for _, kind := range []domain.EntityKind{domain.KindCompany, domain.KindContact} {
		if _, err := r.clearWhere(ctx, kind, func(a *domain.TagAssignment) bool { return a.TagID == tagID }); err != nil {
			return err
		}
	}
	return nil
}

func (r tagAssignmentRepo) clearWhere(ctx context.Context, kind domain.EntityKind, pred func(*domain.TagAssignment) bool) (int, error) {
	t, err := r.sheets.of(kind)
	if err != nil {
		return 0, err
	}
	recs, err := t.locate(ctx, pred)
	if err != nil {
		return 0, fmt.Errorf("loading tag assignments: %w", err)
	}
	for _, rec := range recs {
		if err := t.clearRow(ctx, rec.rowNum); err != nil {
			return 0, fmt.Errorf("deleting tag assignment: %w", err)
		}
	}
	return len(recs), nil
}

func (r tagAssignmentRepo) ListByEntity(ctx context.Context, ref domain.EntityRef) ([]*domain.TagAssignment, error) {
	t, err := r.sheets.of(ref.Kind)
	if err != nil {
		return nil, err
	}
	list, err := t.filter(ctx, func(a *domain.TagAssignment) bool { return a.Entity.ID == ref.ID })
	if err != nil {
		return nil, fmt.Errorf("loading tag assignments: %w", err)
	}
	return list, nil
}

func (r tagAssignmentRepo) ListByTag(ctx context.Context, tagID string) ([]*domain.TagAssignment, error) {
	var out []*domain.TagAssignment
	for _, t := range r.sheets.both() {
		list, err := t.filter(ctx, func(a *domain.TagAssignment) bool { return a.TagID == tagID })
		if err != nil {
			return nil, fmt.Errorf("loading tag assignments: %w", err)
		}
		out = append(out, list...)
	}
	return out, nil
}

type profileRepo struct{ t *table[domain.UserProfile] }

func sameEmail(email string) func(*domain.UserProfile) bool {
	return func(p *domain.UserProfile) bool { return strings.EqualFold(p.Email, email) }
}

func (r profileRepo) Get(ctx context.Context, email string) (*domain.UserProfile, error) {
	rec, ok, err := r.t.first(ctx, sameEmail(email))
	if err != nil {
		return nil, fmt.Errorf("loading user preferences: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("user profile %s: %w", email, repository.ErrNotFound)
	}
	return rec.value, nil
}

// Upsert keeps the original created_at of an existing profile.
func (r profileRepo) Upsert(ctx context.Context, p *domain.UserProfile) error {
	rec, ok, err := r.t.first(ctx, sameEmail(p.Email))
	if err != nil {
		return fmt.Errorf("loading user preferences: %w", err)
	}
	if !ok {
		if err := r.t.insert(ctx, p); err != nil {
			return fmt.Errorf("inserting user preferences: %w", err)
		}
		return nil
	}
	updated := *p
	updated.CreatedAt = domain.CoalesceStr(rec.value.CreatedAt, p.CreatedAt)
	if err := r.t.put(ctx, rec.rowNum, &updated); err != nil {
		return fmt.Errorf("updating user preferences: %w", err)
	}
	return nil
}
