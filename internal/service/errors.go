package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/crmsheet/internal/dedup"
	"github.com/alexanderramin/crmsheet/internal/domain"
)

// ErrValidation wraps every rejected input.
var ErrValidation = errors.New("validation failed")

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// DuplicateError aborts a save whose record looks like an existing one.
// Re-submitting with SaveOptions.ForceBypassDuplicateCheck saves anyway.
type DuplicateError struct {
	Kind         domain.EntityKind
	ExistingID   string
	ExistingName string
	// Summary is a one-line description of the existing record.
	Summary string
	Reasons []dedup.Reason
}

func (e *DuplicateError) Error() string {
	reasons := make([]string, len(e.Reasons))
	for i, r := range e.Reasons {
		reasons[i] = string(r)
	}
	return fmt.Sprintf("possible duplicate of %s %q (matching %s)", e.Kind, e.ExistingName, strings.Join(reasons, ", "))
}

func companyDuplicate(m dedup.Match[*domain.Company]) *DuplicateError {
	c := m.Existing
	return &DuplicateError{
		Kind:         domain.KindCompany,
		ExistingID:   c.ID,
		ExistingName: c.Name,
		Summary:      joinNonEmpty(" · ", c.Name, domain.CoalesceStr(c.Website, c.Domain), c.Phone, c.City),
		Reasons:      m.Reasons,
	}
}

func contactDuplicate(m dedup.Match[*domain.Contact]) *DuplicateError {
	c := m.Existing
	return &DuplicateError{
		Kind:         domain.KindContact,
		ExistingID:   c.ID,
		ExistingName: c.Name,
		Summary:      joinNonEmpty(" · ", c.Name, c.Email, c.Phone),
		Reasons:      m.Reasons,
	}
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
