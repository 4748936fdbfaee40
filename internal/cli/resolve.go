package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/crmsheet/internal/domain"
)

// candidate is one record an argument may refer to.
type candidate struct {
	id   string
	name string
}

// resolveArg matches input against candidates, in order:
//  1. exact id
//  2. exact name (case-insensitive)
//  3. id prefix
//
// More than one match at the first step that matches is an error.
func resolveArg(what, input string, cands []candidate) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("%s is required", what)
	}

	for _, c := range cands {
		if c.id == input {
			return c.id, nil
		}
	}

	var matches []string
	for _, c := range cands {
		if strings.EqualFold(strings.TrimSpace(c.name), input) {
			matches = append(matches, c.id)
		}
	}
	if len(matches) > 1 {
		return "", fmt.Errorf("%s name %q is ambiguous (%d matches); use the id", what, input, len(matches))
	}
	if len(matches) == 1 {
		return matches[0], nil
	}

	for _, c := range cands {
		if strings.HasPrefix(c.id, input) {
			matches = append(matches, c.id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s not found: %q", what, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s ID prefix %q is ambiguous (%d matches)", what, input, len(matches))
	}
}

func resolveCompanyID(ctx context.Context, app *App, input string) (string, error) {
	companies, err := app.Companies.List(ctx)
	if err != nil {
		return "", err
	}
	cands := make([]candidate, len(companies))
	for i, c := range companies {
		cands[i] = candidate{id: c.ID, name: c.Name}
	}
	return resolveArg("company", input, cands)
}

func resolveContactID(ctx context.Context, app *App, input string) (string, error) {
	contacts, err := app.Contacts.List(ctx)
	if err != nil {
		return "", err
	}
	cands := make([]candidate, len(contacts))
	for i, c := range contacts {
		cands[i] = candidate{id: c.ID, name: c.Name}
	}
	return resolveArg("contact", input, cands)
}

func resolveActivityID(ctx context.Context, app *App, input string) (string, error) {
	activities, err := app.Activities.List(ctx)
	if err != nil {
		return "", err
	}
	cands := make([]candidate, len(activities))
	for i, a := range activities {
		cands[i] = candidate{id: a.ID, name: a.Title}
	}
	return resolveArg("activity", input, cands)
}

// resolveTagID finds a tag of kind, or of either kind when kind is empty.
func resolveTagID(ctx context.Context, app *App, kind domain.EntityKind, input string) (string, error) {
	kinds := []domain.EntityKind{kind}
	if kind == "" {
		kinds = []domain.EntityKind{domain.KindCompany, domain.KindContact}
	}
	var cands []candidate
	for _, k := range kinds {
		tags, err := app.Tags.ListByKind(ctx, k)
		if err != nil {
			return "", err
		}
		for _, t := range tags {
			cands = append(cands, candidate{id: t.ID, name: t.Name})
		}
	}
	return resolveArg("tag", input, cands)
}

// resolveTagIDs turns --tag values into tag ids of kind.
func resolveTagIDs(ctx context.Context, app *App, kind domain.EntityKind, inputs []string) ([]string, error) {
	ids := make([]string, 0, len(inputs))
	for _, in := range inputs {
		id, err := resolveTagID(ctx, app, kind, in)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// resolveEntity turns a --company/--contact pair into a ref. Exactly one
// of the two must be set.
func resolveEntity(ctx context.Context, app *App, f entityFlags) (domain.EntityRef, error) {
	switch {
	case f.company != "" && f.contact != "":
		return domain.EntityRef{}, fmt.Errorf("use either --company or --contact, not both")
	case f.company != "":
		id, err := resolveCompanyID(ctx, app, f.company)
		if err != nil {
			return domain.EntityRef{}, err
		}
		return domain.CompanyRef(id), nil
	case f.contact != "":
		id, err := resolveContactID(ctx, app, f.contact)
		if err != nil {
			return domain.EntityRef{}, err
		}
		return domain.ContactRef(id), nil
	default:
		return domain.EntityRef{}, fmt.Errorf("--company or --contact is required")
	}
}

// entityName looks up the display name of ref, falling back to its id.
func entityName(ctx context.Context, app *App, ref domain.EntityRef) string {
	switch ref.Kind {
	case domain.KindCompany:
		if c, err := app.Companies.GetByID(ctx, ref.ID); err == nil {
			return c.Name
		}
	case domain.KindContact:
		if c, err := app.Contacts.GetByID(ctx, ref.ID); err == nil {
			return c.Name
		}
	}
	return ref.ID
}
