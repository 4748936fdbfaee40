package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/crmsheet/internal/domain"
)

// ErrNotFound is returned (wrapped) when a lookup, update or delete targets
// a record that does not exist.
var ErrNotFound = errors.New("not found")

// List methods return records in store order: the order they were created.
// The duplicate guard relies on this to pick the first match.

type CompanyRepo interface {
	Create(ctx context.Context, c *domain.Company) error
	GetByID(ctx context.Context, id string) (*domain.Company, error)
	List(ctx context.Context) ([]*domain.Company, error)
	Update(ctx context.Context, c *domain.Company) error
	Delete(ctx context.Context, id string) error
}

type ContactRepo interface {
	Create(ctx context.Context, c *domain.Contact) error
	GetByID(ctx context.Context, id string) (*domain.Contact, error)
	List(ctx context.Context) ([]*domain.Contact, error)
	ListByCompany(ctx context.Context, companyID string) ([]*domain.Contact, error)
	Update(ctx context.Context, c *domain.Contact) error
	Delete(ctx context.Context, id string) error
}

type ActivityRepo interface {
	Create(ctx context.Context, a *domain.Activity) error
	GetByID(ctx context.Context, id string) (*domain.Activity, error)
	List(ctx context.Context) ([]*domain.Activity, error)
	ListByEntity(ctx context.Context, ref domain.EntityRef) ([]*domain.Activity, error)
	Update(ctx context.Context, a *domain.Activity) error
	Delete(ctx context.Context, id string) error
}

// HistoryRepo is append-only.
type HistoryRepo interface {
	Create(ctx context.Context, e *domain.HistoryEntry) error
	ListByEntity(ctx context.Context, ref domain.EntityRef) ([]*domain.HistoryEntry, error)
	ListByKind(ctx context.Context, kind domain.EntityKind) ([]*domain.HistoryEntry, error)
}

type TagRepo interface {
	Create(ctx context.Context, t *domain.Tag) error
	GetByID(ctx context.Context, id string) (*domain.Tag, error)
	ListByKind(ctx context.Context, kind domain.EntityKind) ([]*domain.Tag, error)
	Update(ctx context.Context, t *domain.Tag) error
	Delete(ctx context.Context, id string) error
}

type TagAssignmentRepo interface {
	Create(ctx context.Context, a *domain.TagAssignment) error
	Delete(ctx context.Context, ref domain.EntityRef, tagID string) error
	DeleteByEntity(ctx context.Context, ref domain.EntityRef) error
	DeleteByTag(ctx context.Context, tagID string) error
	ListByEntity(ctx context.Context, ref domain.EntityRef) ([]*domain.TagAssignment, error)
	ListByTag(ctx context.Context, tagID string) ([]*domain.TagAssignment, error)
}

type UserProfileRepo interface {
	Get(ctx context.Context, email string) (*domain.UserProfile, error)
	Upsert(ctx context.Context, p *domain.UserProfile) error
}

// Store bundles one repository per collection. A Store handed out by a
// Transactor shares that transaction.
type Store struct {
	Companies      CompanyRepo
	Contacts       ContactRepo
	Activities     ActivityRepo
	History        HistoryRepo
	Tags           TagRepo
	TagAssignments TagAssignmentRepo
	Profiles       UserProfileRepo
}

// Transactor runs multi-write use cases. Backends without transactions run
// fn directly against their Store.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, s Store) error) error
}
