package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/crmsheet/internal/cli/formatter"
	"github.com/alexanderramin/crmsheet/internal/domain"
	"github.com/spf13/cobra"
)

func newActivityCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "activity",
		Aliases: []string{"activities"},
		Short:   "Plan and track emails, calls, meetings and tasks",
	}

	cmd.AddCommand(
		newActivityAddCmd(app),
		newActivityCompleteCmd(app),
		newActivityCancelCmd(app),
		newActivityDeleteCmd(app),
		newActivityListCmd(app),
	)

	return cmd
}

func newActivityAddCmd(app *App) *cobra.Command {
	var (
		typ                        activityTypeValue
		title, date, notes         string
		companyInput, contactInput string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Plan an activity for a company or contact",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if companyInput == "" && contactInput == "" {
				return fmt.Errorf("--company or --contact is required")
			}

			a := &domain.Activity{
				Type:  domain.ActivityType(typ),
				Title: title,
				Date:  date,
				Notes: notes,
			}
			if companyInput != "" {
				id, err := resolveCompanyID(ctx, app, companyInput)
				if err != nil {
					return err
				}
				a.CompanyID = id
			}
			if contactInput != "" {
				id, err := resolveContactID(ctx, app, contactInput)
				if err != nil {
					return err
				}
				a.ContactID = id
			}

			if err := withSpinner(cmd, app, "Saving activity…", func() error {
				return app.Activities.Create(ctx, a)
			}); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Planned %s %s on %s %s\n",
				formatter.ActivityTypeBadge(a.Type), formatter.Bold(a.Title),
				formatter.Stamp(a.Date, app.now().Location()), formatter.TruncID(a.ID))
			return nil
		},
	}

	cmd.Flags().Var(&typ, "type", "Activity type: email, phone, meeting or task")
	cmd.Flags().StringVar(&title, "title", "", "Short description")
	cmd.Flags().StringVar(&date, "date", "", "When it happens: 2006-01-02, 2006-01-02T15:04 or RFC 3339")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	cmd.Flags().StringVar(&companyInput, "company", "", "Company (id, id prefix or name)")
	cmd.Flags().StringVar(&contactInput, "contact", "", "Contact (id, id prefix or name); its company is linked too")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func newActivityCompleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "complete ACTIVITY",
		Short: "Mark a planned activity as done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveActivityID(ctx, app, args[0])
			if err != nil {
				return err
			}
			var a *domain.Activity
			if err := withSpinner(cmd, app, "Completing activity…", func() error {
				var err error
				a, err = app.Activities.Complete(ctx, id)
				return err
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Completed %s %s\n", formatter.ActivityTypeBadge(a.Type), formatter.Bold(a.Title))
			return nil
		},
	}
}

func newActivityCancelCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel ACTIVITY",
		Short: "Cancel a planned activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveActivityID(ctx, app, args[0])
			if err != nil {
				return err
			}
			var a *domain.Activity
			if err := withSpinner(cmd, app, "Cancelling activity…", func() error {
				var err error
				a, err = app.Activities.Cancel(ctx, id)
				return err
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cancelled %s %s\n", formatter.ActivityTypeBadge(a.Type), formatter.Bold(a.Title))
			return nil
		},
	}
}

func newActivityDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete ACTIVITY",
		Short: "Delete an activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveActivityID(ctx, app, args[0])
			if err != nil {
				return err
			}
			a, err := app.Activities.GetByID(ctx, id)
			if err != nil {
				return err
			}

			ok, err := confirmDelete(cmd, app, fmt.Sprintf("activity %q", a.Title), yes)
			if err != nil || !ok {
				return err
			}
			if err := withSpinner(cmd, app, "Deleting activity…", func() error {
				return app.Activities.Delete(ctx, id)
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted activity %s\n", formatter.Bold(a.Title))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")

	return cmd
}

func newActivityListCmd(app *App) *cobra.Command {
	var (
		entity entityFlags
		status activityStatusValue
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List activities, optionally of one company or contact",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var activities []*domain.Activity
			err := withSpinner(cmd, app, "Loading activities…", func() error {
				var err error
				if entity.empty() {
					activities, err = app.Activities.List(ctx)
					return err
				}
				ref, err := resolveEntity(ctx, app, entity)
				if err != nil {
					return err
				}
				activities, err = app.Activities.ListByEntity(ctx, ref)
				return err
			})
			if err != nil {
				return err
			}

			if status != "" {
				filtered := activities[:0]
				for _, a := range activities {
					if a.Status == domain.ActivityStatus(status) {
						filtered = append(filtered, a)
					}
				}
				activities = filtered
			}

			if len(activities) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No activities found.")
				return nil
			}
			subjects, err := activitySubjects(ctx, app, activities)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatActivityList(activities, subjects, app.now()))
			return nil
		},
	}

	entity.register(cmd.Flags(), "list activities of")
	cmd.Flags().Var(&status, "status", "Only activities in this status: planned, completed or cancelled")

	return cmd
}

// activitySubjects maps each activity id to the contact it is for, or
// its company when it has no contact.
func activitySubjects(ctx context.Context, app *App, activities []*domain.Activity) (map[string]string, error) {
	companies, err := app.Companies.List(ctx)
	if err != nil {
		return nil, err
	}
	contacts, err := app.Contacts.List(ctx)
	if err != nil {
		return nil, err
	}
	companyNames := make(map[string]string, len(companies))
	for _, c := range companies {
		companyNames[c.ID] = c.Name
	}
	contactNames := make(map[string]string, len(contacts))
	for _, c := range contacts {
		contactNames[c.ID] = c.Name
	}

	subjects := make(map[string]string, len(activities))
	for _, a := range activities {
		switch {
		case a.ContactID != "" && contactNames[a.ContactID] != "":
			name := contactNames[a.ContactID]
			if company := companyNames[a.CompanyID]; company != "" {
				name += " (" + company + ")"
			}
			subjects[a.ID] = name
		case a.CompanyID != "":
			subjects[a.ID] = companyNames[a.CompanyID]
		}
	}
	return subjects, nil
}
