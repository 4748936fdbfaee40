package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/crmsheet/internal/domain"
	"github.com/alexanderramin/crmsheet/internal/repository"
)

type activityService struct {
	store repository.Store
	tx    repository.Transactor
	deps
}

func NewActivityService(store repository.Store, tx repository.Transactor, opts ...Option) ActivityService {
	return &activityService{store: store, tx: tx, deps: newDeps(opts)}
}

// Create stores a new activity. The date is normalized to the stored
// timestamp layout; a contact-linked activity without a company inherits
// the contact's company.
func (s *activityService) Create(ctx context.Context, a *domain.Activity) (err error) {
	fields := map[string]any{}
	defer s.observe(ctx, "activity-create", time.Now(), fields, &err)

	if a == nil {
		return validationError("activity is required")
	}
	a.Title = strings.TrimSpace(a.Title)
	a.Type = domain.ActivityType(strings.ToUpper(strings.TrimSpace(string(a.Type))))
	if a.Status == "" {
		a.Status = domain.ActivityPlanned
	}
	if a.Date != "" {
		when, perr := domain.ParseTimestamp(a.Date, s.now().Location())
		if perr != nil {
			return validationError("activity date: %v", perr)
		}
		a.Date = domain.FormatTimestamp(when)
	}
	if err = a.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	fields["type"] = string(a.Type)

	return s.tx.WithinTx(ctx, func(ctx context.Context, st repository.Store) error {
		if a.ContactID != "" {
			contact, err := st.Contacts.GetByID(ctx, a.ContactID)
			if err != nil {
				return linkError(err, domain.KindContact, a.ContactID)
			}
			if a.CompanyID == "" {
				a.CompanyID = contact.CompanyID
			}
		}
		if a.CompanyID != "" {
			if _, err := st.Companies.GetByID(ctx, a.CompanyID); err != nil {
				return linkError(err, domain.KindCompany, a.CompanyID)
			}
		}

		if a.ID == "" {
			a.ID = s.newID()
		}
		a.CreatedBy = s.author
		a.CreatedAt = s.timestamp()
		if err := st.Activities.Create(ctx, a); err != nil {
			return err
		}
		return s.logOnLinks(ctx, st, a, fmt.Sprintf("Activity planned: %s %q", a.Type, a.Title))
	})
}

func (s *activityService) GetByID(ctx context.Context, id string) (*domain.Activity, error) {
	return s.store.Activities.GetByID(ctx, id)
}

func (s *activityService) List(ctx context.Context) ([]*domain.Activity, error) {
	return s.store.Activities.List(ctx)
}

func (s *activityService) ListByEntity(ctx context.Context, ref domain.EntityRef) ([]*domain.Activity, error) {
	if err := ref.Validate(); err != nil {
		return nil, validationError("%v", err)
	}
	return s.store.Activities.ListByEntity(ctx, ref)
}

func (s *activityService) Complete(ctx context.Context, id string) (a *domain.Activity, err error) {
	defer s.observe(ctx, "activity-complete", time.Now(), map[string]any{"activity_id": id}, &err)

	err = s.tx.WithinTx(ctx, func(ctx context.Context, st repository.Store) error {
		var txErr error
		if a, txErr = st.Activities.GetByID(ctx, id); txErr != nil {
			return txErr
		}
		if txErr = a.Complete(s.now()); txErr != nil {
			return fmt.Errorf("%w: %v", ErrValidation, txErr)
		}
		if txErr = st.Activities.Update(ctx, a); txErr != nil {
			return txErr
		}
		return s.logOnLinks(ctx, st, a, fmt.Sprintf("Activity completed: %q", a.Title))
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (s *activityService) Cancel(ctx context.Context, id string) (a *domain.Activity, err error) {
	defer s.observe(ctx, "activity-cancel", time.Now(), map[string]any{"activity_id": id}, &err)

	if a, err = s.store.Activities.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err = a.Cancel(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err = s.store.Activities.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *activityService) Delete(ctx context.Context, id string) (err error) {
	defer s.observe(ctx, "activity-delete", time.Now(), map[string]any{"activity_id": id}, &err)
	return s.store.Activities.Delete(ctx, id)
}

func (s *activityService) logOnLinks(ctx context.Context, st repository.Store, a *domain.Activity, content string) error {
	for _, ref := range a.Links() {
		if err := s.logEvent(ctx, st, ref, content); err != nil {
			return err
		}
	}
	return nil
}

func linkError(err error, kind domain.EntityKind, id string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return validationError("%s %s does not exist", kind, id)
	}
	return err
}
