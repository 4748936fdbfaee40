package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/crmsheet/internal/cli/formatter"
	"github.com/alexanderramin/crmsheet/internal/domain"
	"github.com/alexanderramin/crmsheet/internal/service"
	"github.com/spf13/cobra"
)

func newCompanyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "company",
		Aliases: []string{"companies"},
		Short:   "Manage companies",
	}

	cmd.AddCommand(
		newCompanyAddCmd(app),
		newCompanyEditCmd(app),
		newCompanyListCmd(app),
		newCompanyShowCmd(app),
		newCompanyDeleteCmd(app),
	)

	return cmd
}

type companyFlags struct {
	name, industry, website, domain string
	phone, city, country, notes     string
	tags                            []string
	force                           bool
}

func (f *companyFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Company name")
	cmd.Flags().StringVar(&f.industry, "industry", "", "Industry")
	cmd.Flags().StringVar(&f.website, "website", "", "Website URL")
	cmd.Flags().StringVar(&f.domain, "domain", "", "Email/web domain, e.g. acme.com")
	cmd.Flags().StringVar(&f.phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&f.city, "city", "", "City")
	cmd.Flags().StringVar(&f.country, "country", "", "Country")
	cmd.Flags().StringVar(&f.notes, "notes", "", "Free-form notes")
	cmd.Flags().StringSliceVar(&f.tags, "tag", nil, "Company tags by name or id (replaces the current set)")
	cmd.Flags().BoolVar(&f.force, "force", false, "Save even if the company looks like a duplicate")
}

// apply copies the flags the user set onto c. Tags are left nil, meaning
// untouched, unless --tag was given.
func (f *companyFlags) apply(ctx context.Context, cmd *cobra.Command, app *App, c *domain.Company) error {
	fields := []struct {
		flag string
		dst  *string
		val  string
	}{
		{"name", &c.Name, f.name},
		{"industry", &c.Industry, f.industry},
		{"website", &c.Website, f.website},
		{"domain", &c.Domain, f.domain},
		{"phone", &c.Phone, f.phone},
		{"city", &c.City, f.city},
		{"country", &c.Country, f.country},
		{"notes", &c.Notes, f.notes},
	}
	for _, fl := range fields {
		if cmd.Flags().Changed(fl.flag) {
			*fl.dst = fl.val
		}
	}

	c.TagIDs = nil
	if cmd.Flags().Changed("tag") {
		ids, err := resolveTagIDs(ctx, app, domain.KindCompany, f.tags)
		if err != nil {
			return err
		}
		c.TagIDs = ids
	}
	return nil
}

func newCompanyAddCmd(app *App) *cobra.Command {
	var f companyFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a company",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c := &domain.Company{}
			if err := f.apply(ctx, cmd, app, c); err != nil {
				return err
			}

			saved, err := saveGuarded(cmd, app, f.force, func(opts service.SaveOptions) error {
				return withSpinner(cmd, app, "Saving company…", func() error {
					return app.Companies.Create(ctx, c, opts)
				})
			})
			if err != nil || !saved {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created company %s %s\n", formatter.Bold(c.Name), formatter.TruncID(c.ID))
			return nil
		},
	}

	f.register(cmd)
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newCompanyEditCmd(app *App) *cobra.Command {
	var f companyFlags

	cmd := &cobra.Command{
		Use:   "edit COMPANY",
		Short: "Change a company's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveCompanyID(ctx, app, args[0])
			if err != nil {
				return err
			}
			c, err := app.Companies.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if err := f.apply(ctx, cmd, app, c); err != nil {
				return err
			}

			saved, err := saveGuarded(cmd, app, f.force, func(opts service.SaveOptions) error {
				return withSpinner(cmd, app, "Saving company…", func() error {
					return app.Companies.Update(ctx, c, opts)
				})
			})
			if err != nil || !saved {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated company %s\n", formatter.Bold(c.Name))
			return nil
		},
	}

	f.register(cmd)

	return cmd
}

func newCompanyListCmd(app *App) *cobra.Command {
	var tag, search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List companies",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var companies []*domain.Company
			err := withSpinner(cmd, app, "Loading companies…", func() error {
				var err error
				companies, err = app.Companies.List(ctx)
				return err
			})
			if err != nil {
				return err
			}

			if search != "" {
				filtered := companies[:0]
				for _, c := range companies {
					if c.MatchesSearch(search) {
						filtered = append(filtered, c)
					}
				}
				companies = filtered
			}

			if tag != "" {
				keep, err := taggedIDs(ctx, app, domain.KindCompany, tag)
				if err != nil {
					return err
				}
				filtered := companies[:0]
				for _, c := range companies {
					if keep[c.ID] {
						filtered = append(filtered, c)
					}
				}
				companies = filtered
			}

			if len(companies) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No companies found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCompanyList(companies))
			return nil
		},
	}

	cmd.Flags().StringVar(&tag, "tag", "", "Only companies carrying this tag")
	cmd.Flags().StringVar(&search, "search", "", "Only companies whose name, industry, notes, website, phone, city or country contain this text")

	return cmd
}

func newCompanyShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show COMPANY",
		Short: "Show a company with its tags and contacts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveCompanyID(ctx, app, args[0])
			if err != nil {
				return err
			}

			var d formatter.CompanyDetail
			err = withSpinner(cmd, app, "Loading company…", func() error {
				var err error
				if d.Company, err = app.Companies.GetByID(ctx, id); err != nil {
					return err
				}
				if d.Tags, err = app.Tags.TagsOf(ctx, domain.CompanyRef(id)); err != nil {
					return err
				}
				d.Contacts, err = app.Contacts.ListByCompany(ctx, id)
				return err
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCompanyDetail(d))
			return nil
		},
	}
}

func newCompanyDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete COMPANY",
		Short: "Delete a company and detach its contacts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveCompanyID(ctx, app, args[0])
			if err != nil {
				return err
			}
			c, err := app.Companies.GetByID(ctx, id)
			if err != nil {
				return err
			}
			contacts, err := app.Contacts.ListByCompany(ctx, id)
			if err != nil {
				return err
			}

			what := fmt.Sprintf("company %q", c.Name)
			if len(contacts) > 0 {
				what += fmt.Sprintf(" (%d contacts will be detached)", len(contacts))
			}
			ok, err := confirmDelete(cmd, app, what, yes)
			if err != nil || !ok {
				return err
			}

			if err := withSpinner(cmd, app, "Deleting company…", func() error {
				return app.Companies.Delete(ctx, id)
			}); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted company %s (%d contacts detached)\n", formatter.Bold(c.Name), len(contacts))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")

	return cmd
}

// taggedIDs returns the ids of the entities of kind carrying tag.
func taggedIDs(ctx context.Context, app *App, kind domain.EntityKind, tag string) (map[string]bool, error) {
	tagID, err := resolveTagID(ctx, app, kind, tag)
	if err != nil {
		return nil, err
	}
	refs, err := app.Tags.EntitiesWithTag(ctx, tagID)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]bool, len(refs))
	for _, r := range refs {
		if r.Kind == kind {
			ids[r.ID] = true
		}
	}
	return ids, nil
}
