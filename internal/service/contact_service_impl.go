package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/crmsheet/internal/dedup"
	"github.com/alexanderramin/crmsheet/internal/domain"
	"github.com/alexanderramin/crmsheet/internal/repository"
)

type contactService struct {
	store repository.Store
	tx    repository.Transactor
	deps
}

func NewContactService(store repository.Store, tx repository.Transactor, opts ...Option) ContactService {
	return &contactService{store: store, tx: tx, deps: newDeps(opts)}
}

func (s *contactService) Create(ctx context.Context, in ContactSave, opts SaveOptions) (res *ContactSaveResult, err error) {
	fields := map[string]any{"forced": opts.ForceBypassDuplicateCheck}
	defer s.observe(ctx, "contact-create", time.Now(), fields, &err)

	c := in.Contact
	if err = s.prepare(c); err != nil {
		return nil, err
	}
	if err = s.checkDuplicate(ctx, c, "", opts, fields); err != nil {
		return nil, err
	}
	if c.ID == "" {
		c.ID = s.newID()
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context, st repository.Store) error {
		var txErr error
		res, txErr = s.resolveCompany(ctx, st, c, in.CompanyName)
		if txErr != nil {
			return txErr
		}
		if txErr = st.Contacts.Create(ctx, c); txErr != nil {
			return txErr
		}
		ref := domain.ContactRef(c.ID)
		if txErr = s.syncTags(ctx, st, ref, c.TagIDs); txErr != nil {
			return txErr
		}
		if txErr = s.logEvent(ctx, st, ref, "Contact created"); txErr != nil {
			return txErr
		}
		if c.CompanyID != "" {
			return s.logEvent(ctx, st, domain.CompanyRef(c.CompanyID), fmt.Sprintf("Contact %q linked to company", c.Name))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["company_created"] = res.CompanyCreated
	fields["auto_matched"] = res.AutoMatched
	return res, nil
}

func (s *contactService) GetByID(ctx context.Context, id string) (*domain.Contact, error) {
	c, err := s.store.Contacts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.TagIDs, err = tagIDsOf(ctx, s.store, domain.ContactRef(id)); err != nil {
		return nil, fmt.Errorf("loading contact tags: %w", err)
	}
	return c, nil
}

func (s *contactService) List(ctx context.Context) ([]*domain.Contact, error) {
	return s.store.Contacts.List(ctx)
}

func (s *contactService) ListByCompany(ctx context.Context, companyID string) ([]*domain.Contact, error) {
	return s.store.Contacts.ListByCompany(ctx, companyID)
}

func (s *contactService) Update(ctx context.Context, in ContactSave, opts SaveOptions) (res *ContactSaveResult, err error) {
	fields := map[string]any{"forced": opts.ForceBypassDuplicateCheck}
	defer s.observe(ctx, "contact-update", time.Now(), fields, &err)

	c := in.Contact
	if err = s.prepare(c); err != nil {
		return nil, err
	}
	fields["contact_id"] = c.ID
	if _, err = s.store.Contacts.GetByID(ctx, c.ID); err != nil {
		return nil, err
	}
	if err = s.checkDuplicate(ctx, c, c.ID, opts, fields); err != nil {
		return nil, err
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context, st repository.Store) error {
		var txErr error
		res, txErr = s.resolveCompany(ctx, st, c, in.CompanyName)
		if txErr != nil {
			return txErr
		}
		if txErr = st.Contacts.Update(ctx, c); txErr != nil {
			return txErr
		}
		ref := domain.ContactRef(c.ID)
		if txErr = s.syncTags(ctx, st, ref, c.TagIDs); txErr != nil {
			return txErr
		}
		return s.logEvent(ctx, st, ref, "Contact updated")
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *contactService) Delete(ctx context.Context, id string) (err error) {
	defer s.observe(ctx, "contact-delete", time.Now(), map[string]any{"contact_id": id}, &err)

	return s.tx.WithinTx(ctx, func(ctx context.Context, st repository.Store) error {
		c, err := st.Contacts.GetByID(ctx, id)
		if err != nil {
			return err
		}
		ref := domain.ContactRef(id)
		if err := s.logEvent(ctx, st, ref, "Contact deleted"); err != nil {
			return err
		}
		if c.CompanyID != "" {
			if err := s.logEvent(ctx, st, domain.CompanyRef(c.CompanyID), fmt.Sprintf("Contact %q deleted", c.Name)); err != nil {
				return err
			}
		}
		if err := st.Contacts.Delete(ctx, id); err != nil {
			return err
		}
		return st.TagAssignments.DeleteByEntity(ctx, ref)
	})
}

func (s *contactService) prepare(c *domain.Contact) error {
	if c == nil {
		return validationError("contact is required")
	}
	c.Trim()
	if c.Name == "" {
		return validationError("contact name is required")
	}
	return nil
}

func (s *contactService) checkDuplicate(ctx context.Context, c *domain.Contact, excludeID string, opts SaveOptions, fields map[string]any) error {
	if opts.ForceBypassDuplicateCheck {
		return nil
	}
	existing, err := s.store.Contacts.List(ctx)
	if err != nil {
		return fmt.Errorf("loading contacts: %w", err)
	}
	if m, found := dedup.CheckContact(c, existing, excludeID); found {
		fields["duplicate"] = m.Existing.ID
		return contactDuplicate(m)
	}
	return nil
}

// resolveCompany fills c.CompanyID. An explicit id must exist. A company
// name links to the company of that name or creates one. With neither,
// the email domain picks a company when one matches.
func (s *contactService) resolveCompany(ctx context.Context, st repository.Store, c *domain.Contact, companyName string) (*ContactSaveResult, error) {
	res := &ContactSaveResult{}
	companyName = strings.TrimSpace(companyName)

	if c.CompanyID != "" {
		company, err := st.Companies.GetByID(ctx, c.CompanyID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, validationError("company %s does not exist", c.CompanyID)
			}
			return nil, err
		}
		res.Company = company
		return res, nil
	}

	companies, err := st.Companies.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading companies: %w", err)
	}

	if companyName != "" {
		for _, company := range companies {
			if strings.EqualFold(company.Name, companyName) {
				c.CompanyID = company.ID
				res.Company = company
				return res, nil
			}
		}
		company := &domain.Company{ID: s.newID(), Name: companyName}
		if d := dedup.EmailDomain(c.Email); d != "" && !publicMailDomains[d] {
			company.Domain = d
			company.DeriveWebsite()
		}
		if err := st.Companies.Create(ctx, company); err != nil {
			return nil, fmt.Errorf("creating company %q: %w", companyName, err)
		}
		if err := s.logEvent(ctx, st, domain.CompanyRef(company.ID), "Company created from contact"); err != nil {
			return nil, err
		}
		c.CompanyID = company.ID
		res.Company = company
		res.CompanyCreated = true
		return res, nil
	}

	if company := matchByEmailDomain(companies, c.Email); company != nil {
		c.CompanyID = company.ID
		res.Company = company
		res.AutoMatched = true
	}
	return res, nil
}

// matchByEmailDomain finds the company whose domain equals the email's
// domain, falling back to comparing registrable domains so that
// "jan@mail.acme.co.uk" still finds "acme.co.uk".
func matchByEmailDomain(companies []*domain.Company, email string) *domain.Company {
	host := dedup.EmailDomain(email)
	if host == "" {
		return nil
	}
	for _, company := range companies {
		if company.Domain != "" && dedup.NormalizeURL(strings.TrimSpace(company.Domain)) == host {
			return company
		}
	}
	if publicMailDomains[host] {
		return nil
	}
	registrable := dedup.RegistrableDomain(host)
	for _, company := range companies {
		d := domain.CoalesceStr(company.Domain, company.Website)
		if d != "" && dedup.RegistrableDomain(d) == registrable {
			return company
		}
	}
	return nil
}
