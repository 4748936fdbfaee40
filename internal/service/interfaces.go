package service

import (
	"context"

	"github.com/alexanderramin/crmsheet/internal/agenda"
	"github.com/alexanderramin/crmsheet/internal/domain"
	"github.com/alexanderramin/crmsheet/internal/timeline"
)

type CompanyService interface {
	Create(ctx context.Context, c *domain.Company, opts SaveOptions) error
	GetByID(ctx context.Context, id string) (*domain.Company, error)
	List(ctx context.Context) ([]*domain.Company, error)
	Update(ctx context.Context, c *domain.Company, opts SaveOptions) error
	Delete(ctx context.Context, id string) error
}

// ContactSave is the input of a contact create or update. CompanyName is
// used only when Contact.CompanyID is empty: it links the contact to the
// company of that name, creating the company when none exists.
type ContactSave struct {
	Contact     *domain.Contact
	CompanyName string
}

// ContactSaveResult reports how the contact's company was resolved.
type ContactSaveResult struct {
	Company        *domain.Company
	CompanyCreated bool
	AutoMatched    bool
}

type ContactService interface {
	Create(ctx context.Context, in ContactSave, opts SaveOptions) (*ContactSaveResult, error)
	GetByID(ctx context.Context, id string) (*domain.Contact, error)
	List(ctx context.Context) ([]*domain.Contact, error)
	ListByCompany(ctx context.Context, companyID string) ([]*domain.Contact, error)
	Update(ctx context.Context, in ContactSave, opts SaveOptions) (*ContactSaveResult, error)
	Delete(ctx context.Context, id string) error
}

type ActivityService interface {
	Create(ctx context.Context, a *domain.Activity) error
	GetByID(ctx context.Context, id string) (*domain.Activity, error)
	List(ctx context.Context) ([]*domain.Activity, error)
	ListByEntity(ctx context.Context, ref domain.EntityRef) ([]*domain.Activity, error)
	Complete(ctx context.Context, id string) (*domain.Activity, error)
	Cancel(ctx context.Context, id string) (*domain.Activity, error)
	Delete(ctx context.Context, id string) error
}

type HistoryService interface {
	AddNote(ctx context.Context, ref domain.EntityRef, content string) (*domain.HistoryEntry, error)
}

type TimelineService interface {
	Timeline(ctx context.Context, ref domain.EntityRef, scope timeline.Scope) ([]timeline.Item, error)
}

type TagService interface {
	Create(ctx context.Context, t *domain.Tag) error
	GetByID(ctx context.Context, id string) (*domain.Tag, error)
	ListByKind(ctx context.Context, kind domain.EntityKind) ([]*domain.Tag, error)
	Update(ctx context.Context, t *domain.Tag) error
	Delete(ctx context.Context, id string) error
	Assign(ctx context.Context, ref domain.EntityRef, tagID string) error
	Unassign(ctx context.Context, ref domain.EntityRef, tagID string) error
	TagsOf(ctx context.Context, ref domain.EntityRef) ([]*domain.Tag, error)
	EntitiesWithTag(ctx context.Context, tagID string) ([]domain.EntityRef, error)
}

type AgendaService interface {
	Agenda(ctx context.Context) (agenda.Buckets, error)
}

type ProfileService interface {
	Current(ctx context.Context) (*domain.UserProfile, error)
	SetDisplayName(ctx context.Context, name string) (*domain.UserProfile, error)
}
