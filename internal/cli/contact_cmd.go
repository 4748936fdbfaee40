package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/crmsheet/internal/cli/formatter"
	"github.com/alexanderramin/crmsheet/internal/domain"
	"github.com/alexanderramin/crmsheet/internal/service"
	"github.com/spf13/cobra"
)

func newContactCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "contact",
		Aliases: []string{"contacts"},
		Short:   "Manage contacts",
	}

	cmd.AddCommand(
		newContactAddCmd(app),
		newContactEditCmd(app),
		newContactListCmd(app),
		newContactShowCmd(app),
		newContactDeleteCmd(app),
	)

	return cmd
}

type contactFlags struct {
	name, position, email, phone string
	company                      string
	tags                         []string
	force                        bool
}

func (f *contactFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Full name")
	cmd.Flags().StringVar(&f.position, "position", "", "Job title")
	cmd.Flags().StringVar(&f.email, "email", "", "Email address")
	cmd.Flags().StringVar(&f.phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&f.company, "company", "", "Company id or name; an unknown name creates the company")
	cmd.Flags().StringSliceVar(&f.tags, "tag", nil, "Contact tags by name or id (replaces the current set)")
	cmd.Flags().BoolVar(&f.force, "force", false, "Save even if the contact looks like a duplicate")
}

// apply copies the flags the user set onto in. An exact company id links
// directly; any other --company value is passed on as a company name.
func (f *contactFlags) apply(ctx context.Context, cmd *cobra.Command, app *App, in *service.ContactSave) error {
	c := in.Contact
	fields := []struct {
		flag string
		dst  *string
		val  string
	}{
		{"name", &c.Name, f.name},
		{"position", &c.Position, f.position},
		{"email", &c.Email, f.email},
		{"phone", &c.Phone, f.phone},
	}
	for _, fl := range fields {
		if cmd.Flags().Changed(fl.flag) {
			*fl.dst = fl.val
		}
	}

	if cmd.Flags().Changed("company") {
		c.CompanyID = ""
		company := strings.TrimSpace(f.company)
		if company != "" {
			id, err := exactCompanyID(ctx, app, company)
			if err != nil {
				return err
			}
			if id != "" {
				c.CompanyID = id
			} else {
				in.CompanyName = company
			}
		}
	}

	c.TagIDs = nil
	if cmd.Flags().Changed("tag") {
		ids, err := resolveTagIDs(ctx, app, domain.KindContact, f.tags)
		if err != nil {
			return err
		}
		c.TagIDs = ids
	}
	return nil
}

func exactCompanyID(ctx context.Context, app *App, input string) (string, error) {
	companies, err := app.Companies.List(ctx)
	if err != nil {
		return "", err
	}
	for _, c := range companies {
		if c.ID == input {
			return c.ID, nil
		}
	}
	return "", nil
}

func printCompanyLink(w io.Writer, res *service.ContactSaveResult) {
	if res == nil || res.Company == nil {
		return
	}
	name := formatter.StylePurple.Render(res.Company.Name)
	switch {
	case res.CompanyCreated:
		fmt.Fprintf(w, "Created company %s %s\n", name, formatter.TruncID(res.Company.ID))
	case res.AutoMatched:
		fmt.Fprintf(w, "Linked to %s by email domain\n", name)
	default:
		fmt.Fprintf(w, "Linked to %s\n", name)
	}
}

func newContactAddCmd(app *App) *cobra.Command {
	var f contactFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a contact",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			in := service.ContactSave{Contact: &domain.Contact{}}
			if err := f.apply(ctx, cmd, app, &in); err != nil {
				return err
			}

			var res *service.ContactSaveResult
			saved, err := saveGuarded(cmd, app, f.force, func(opts service.SaveOptions) error {
				return withSpinner(cmd, app, "Saving contact…", func() error {
					var err error
					res, err = app.Contacts.Create(ctx, in, opts)
					return err
				})
			})
			if err != nil || !saved {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Created contact %s %s\n", formatter.Bold(in.Contact.Name), formatter.TruncID(in.Contact.ID))
			printCompanyLink(out, res)
			return nil
		},
	}

	f.register(cmd)
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newContactEditCmd(app *App) *cobra.Command {
	var f contactFlags

	cmd := &cobra.Command{
		Use:   "edit CONTACT",
		Short: "Change a contact's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveContactID(ctx, app, args[0])
			if err != nil {
				return err
			}
			c, err := app.Contacts.GetByID(ctx, id)
			if err != nil {
				return err
			}
			previousCompany := c.CompanyID
			in := service.ContactSave{Contact: c}
			if err := f.apply(ctx, cmd, app, &in); err != nil {
				return err
			}

			var res *service.ContactSaveResult
			saved, err := saveGuarded(cmd, app, f.force, func(opts service.SaveOptions) error {
				return withSpinner(cmd, app, "Saving contact…", func() error {
					var err error
					res, err = app.Contacts.Update(ctx, in, opts)
					return err
				})
			})
			if err != nil || !saved {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Updated contact %s\n", formatter.Bold(c.Name))
			if c.CompanyID != previousCompany {
				printCompanyLink(out, res)
			}
			return nil
		},
	}

	f.register(cmd)

	return cmd
}

func newContactListCmd(app *App) *cobra.Command {
	var company, tag, search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List contacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var contacts []*domain.Contact
			var companies []*domain.Company
			err := withSpinner(cmd, app, "Loading contacts…", func() error {
				var err error
				if companies, err = app.Companies.List(ctx); err != nil {
					return err
				}
				if company == "" {
					contacts, err = app.Contacts.List(ctx)
					return err
				}
				companyID, err := resolveCompanyID(ctx, app, company)
				if err != nil {
					return err
				}
				contacts, err = app.Contacts.ListByCompany(ctx, companyID)
				return err
			})
			if err != nil {
				return err
			}

			byID := make(map[string]*domain.Company, len(companies))
			for _, c := range companies {
				byID[c.ID] = c
			}

			if search != "" {
				filtered := contacts[:0]
				for _, c := range contacts {
					if c.MatchesSearch(search, byID[c.CompanyID]) {
						filtered = append(filtered, c)
					}
				}
				contacts = filtered
			}

			if tag != "" {
				keep, err := taggedIDs(ctx, app, domain.KindContact, tag)
				if err != nil {
					return err
				}
				filtered := contacts[:0]
				for _, c := range contacts {
					if keep[c.ID] {
						filtered = append(filtered, c)
					}
				}
				contacts = filtered
			}

			if len(contacts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No contacts found.")
				return nil
			}
			names := make(map[string]string, len(byID))
			for id, c := range byID {
				names[id] = c.Name
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatContactList(contacts, names))
			return nil
		},
	}

	cmd.Flags().StringVar(&company, "company", "", "Only contacts of this company")
	cmd.Flags().StringVar(&tag, "tag", "", "Only contacts carrying this tag")
	cmd.Flags().StringVar(&search, "search", "", "Only contacts whose details, or their company's name, industry, city or country, contain this text")

	return cmd
}

func newContactShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show CONTACT",
		Short: "Show a contact with its company and tags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveContactID(ctx, app, args[0])
			if err != nil {
				return err
			}

			var d formatter.ContactDetail
			err = withSpinner(cmd, app, "Loading contact…", func() error {
				var err error
				if d.Contact, err = app.Contacts.GetByID(ctx, id); err != nil {
					return err
				}
				if d.Tags, err = app.Tags.TagsOf(ctx, domain.ContactRef(id)); err != nil {
					return err
				}
				if d.Contact.CompanyID != "" {
					// A dangling link is shown as no company.
					d.Company, _ = app.Companies.GetByID(ctx, d.Contact.CompanyID)
				}
				return nil
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatContactDetail(d))
			return nil
		},
	}
}

func newContactDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete CONTACT",
		Short: "Delete a contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveContactID(ctx, app, args[0])
			if err != nil {
				return err
			}
			c, err := app.Contacts.GetByID(ctx, id)
			if err != nil {
				return err
			}

			ok, err := confirmDelete(cmd, app, fmt.Sprintf("contact %q", c.Name), yes)
			if err != nil || !ok {
				return err
			}

			if err := withSpinner(cmd, app, "Deleting contact…", func() error {
				return app.Contacts.Delete(ctx, id)
			}); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted contact %s\n", formatter.Bold(c.Name))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")

	return cmd
}
