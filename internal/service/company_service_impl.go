package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/crmsheet/internal/dedup"
	"github.com/alexanderramin/crmsheet/internal/domain"
	"github.com/alexanderramin/crmsheet/internal/repository"
)

type companyService struct {
	store repository.Store
	tx    repository.Transactor
	deps
}

func NewCompanyService(store repository.Store, tx repository.Transactor, opts ...Option) CompanyService {
	return &companyService{store: store, tx: tx, deps: newDeps(opts)}
}

func (s *companyService) Create(ctx context.Context, c *domain.Company, opts SaveOptions) (err error) {
	fields := map[string]any{"forced": opts.ForceBypassDuplicateCheck}
	defer s.observe(ctx, "company-create", time.Now(), fields, &err)

	if err = s.prepare(c); err != nil {
		return err
	}
	if err = s.checkDuplicate(ctx, c, "", opts, fields); err != nil {
		return err
	}
	if c.ID == "" {
		c.ID = s.newID()
	}

	return s.tx.WithinTx(ctx, func(ctx context.Context, st repository.Store) error {
		if err := st.Companies.Create(ctx, c); err != nil {
			return err
		}
		ref := domain.CompanyRef(c.ID)
		if err := s.syncTags(ctx, st, ref, c.TagIDs); err != nil {
			return err
		}
		return s.logEvent(ctx, st, ref, "Company created")
	})
}

func (s *companyService) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	c, err := s.store.Companies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.TagIDs, err = tagIDsOf(ctx, s.store, domain.CompanyRef(id)); err != nil {
		return nil, fmt.Errorf("loading company tags: %w", err)
	}
	return c, nil
}

func (s *companyService) List(ctx context.Context) ([]*domain.Company, error) {
	return s.store.Companies.List(ctx)
}

func (s *companyService) Update(ctx context.Context, c *domain.Company, opts SaveOptions) (err error) {
	fields := map[string]any{"forced": opts.ForceBypassDuplicateCheck}
	defer s.observe(ctx, "company-update", time.Now(), fields, &err)

	if err = s.prepare(c); err != nil {
		return err
	}
	fields["company_id"] = c.ID
	if _, err = s.store.Companies.GetByID(ctx, c.ID); err != nil {
		return err
	}
	if err = s.checkDuplicate(ctx, c, c.ID, opts, fields); err != nil {
		return err
	}

	return s.tx.WithinTx(ctx, func(ctx context.Context, st repository.Store) error {
		if err := st.Companies.Update(ctx, c); err != nil {
			return err
		}
		ref := domain.CompanyRef(c.ID)
		if err := s.syncTags(ctx, st, ref, c.TagIDs); err != nil {
			return err
		}
		return s.logEvent(ctx, st, ref, "Company updated")
	})
}

// Delete removes the company and its tag assignments and detaches its
// contacts. Activities and history stay behind as orphans.
func (s *companyService) Delete(ctx context.Context, id string) (err error) {
	fields := map[string]any{"company_id": id}
	defer s.observe(ctx, "company-delete", time.Now(), fields, &err)

	return s.tx.WithinTx(ctx, func(ctx context.Context, st repository.Store) error {
		if _, err := st.Companies.GetByID(ctx, id); err != nil {
			return err
		}
		// Read before the delete: SQLite nulls the link itself.
		contacts, err := st.Contacts.ListByCompany(ctx, id)
		if err != nil {
			return fmt.Errorf("listing company contacts: %w", err)
		}
		ref := domain.CompanyRef(id)
		if err := s.logEvent(ctx, st, ref, "Company deleted"); err != nil {
			return err
		}
		if err := st.Companies.Delete(ctx, id); err != nil {
			return err
		}
		for _, contact := range contacts {
			contact.CompanyID = ""
			if err := st.Contacts.Update(ctx, contact); err != nil {
				return fmt.Errorf("detaching contact %s: %w", contact.ID, err)
			}
			if err := s.logEvent(ctx, st, domain.ContactRef(contact.ID), "Contact detached from deleted company"); err != nil {
				return err
			}
		}
		fields["detached_contacts"] = len(contacts)
		return st.TagAssignments.DeleteByEntity(ctx, ref)
	})
}

func (s *companyService) prepare(c *domain.Company) error {
	if c == nil {
		return validationError("company is required")
	}
	c.Trim()
	if c.Name == "" {
		return validationError("company name is required")
	}
	c.DeriveWebsite()
	return nil
}

func (s *companyService) checkDuplicate(ctx context.Context, c *domain.Company, excludeID string, opts SaveOptions, fields map[string]any) error {
	if opts.ForceBypassDuplicateCheck {
		return nil
	}
	existing, err := s.store.Companies.List(ctx)
	if err != nil {
		return fmt.Errorf("loading companies: %w", err)
	}
	if m, found := dedup.CheckCompany(c, existing, excludeID); found {
		fields["duplicate"] = m.Existing.ID
		return companyDuplicate(m)
	}
	return nil
}
