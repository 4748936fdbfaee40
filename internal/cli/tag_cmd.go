package cli

import (
	"fmt"

	"github.com/alexanderramin/crmsheet/internal/cli/formatter"
	"github.com/alexanderramin/crmsheet/internal/domain"
	"github.com/spf13/cobra"
)

func newTagCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tag",
		Aliases: []string{"tags"},
		Short:   "Manage company and contact tags",
	}

	cmd.AddCommand(
		newTagCreateCmd(app),
		newTagEditCmd(app),
		newTagListCmd(app),
		newTagDeleteCmd(app),
		newTagAssignCmd(app),
		newTagUnassignCmd(app),
	)

	return cmd
}

func newTagCreateCmd(app *App) *cobra.Command {
	var (
		kind                     kindValue
		name, color, description string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a tag for companies or contacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			t := &domain.Tag{
				Kind:        domain.EntityKind(kind),
				Name:        name,
				Color:       color,
				Description: description,
			}
			if err := withSpinner(cmd, app, "Saving tag…", func() error {
				return app.Tags.Create(cmd.Context(), t)
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s tag %s %s\n", t.Kind, formatter.TagChip(t), formatter.TruncID(t.ID))
			return nil
		},
	}

	cmd.Flags().Var(&kind, "kind", "Entity kind: company or contact")
	cmd.Flags().StringVar(&name, "name", "", "Tag name")
	cmd.Flags().StringVar(&color, "color", "", "Hex color; defaults to the next palette color")
	cmd.Flags().StringVar(&description, "description", "", "What the tag means")
	_ = cmd.MarkFlagRequired("kind")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newTagEditCmd(app *App) *cobra.Command {
	var (
		kind                     kindValue
		name, color, description string
	)

	cmd := &cobra.Command{
		Use:   "edit TAG",
		Short: "Rename, recolor or describe a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveTagID(ctx, app, domain.EntityKind(kind), args[0])
			if err != nil {
				return err
			}
			t, err := app.Tags.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("name") {
				t.Name = name
			}
			if cmd.Flags().Changed("color") {
				t.Color = color
			}
			if cmd.Flags().Changed("description") {
				t.Description = description
			}
			if err := app.Tags.Update(ctx, t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s tag %s\n", t.Kind, formatter.TagChip(t))
			return nil
		},
	}

	cmd.Flags().Var(&kind, "kind", "Look the tag up among company or contact tags only")
	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&color, "color", "", "New hex color")
	cmd.Flags().StringVar(&description, "description", "", "New description")

	return cmd
}

func newTagListCmd(app *App) *cobra.Command {
	var kind kindValue

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			kinds := []domain.EntityKind{domain.KindCompany, domain.KindContact}
			if kind != "" {
				kinds = []domain.EntityKind{domain.EntityKind(kind)}
			}

			out := cmd.OutOrStdout()
			for _, k := range kinds {
				tags, err := app.Tags.ListByKind(ctx, k)
				if err != nil {
					return err
				}
				if len(tags) == 0 {
					fmt.Fprintf(out, "No %s tags.\n", k)
					continue
				}
				fmt.Fprintln(out, formatter.FormatTagList(k, tags))
			}
			return nil
		},
	}

	cmd.Flags().Var(&kind, "kind", "Only tags of this kind: company or contact")

	return cmd
}

func newTagDeleteCmd(app *App) *cobra.Command {
	var (
		kind kindValue
		yes  bool
	)

	cmd := &cobra.Command{
		Use:   "delete TAG",
		Short: "Delete a tag and remove it from every entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveTagID(ctx, app, domain.EntityKind(kind), args[0])
			if err != nil {
				return err
			}
			t, err := app.Tags.GetByID(ctx, id)
			if err != nil {
				return err
			}
			tagged, err := app.Tags.EntitiesWithTag(ctx, id)
			if err != nil {
				return err
			}

			what := fmt.Sprintf("%s tag %q", t.Kind, t.Name)
			if len(tagged) > 0 {
				what += fmt.Sprintf(" (on %d records)", len(tagged))
			}
			ok, err := confirmDelete(cmd, app, what, yes)
			if err != nil || !ok {
				return err
			}
			if err := app.Tags.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s tag %s\n", t.Kind, formatter.Bold(t.Name))
			return nil
		},
	}

	cmd.Flags().Var(&kind, "kind", "Look the tag up among company or contact tags only")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")

	return cmd
}

func newTagAssignCmd(app *App) *cobra.Command {
	var entity entityFlags

	cmd := &cobra.Command{
		Use:   "assign TAG",
		Short: "Put a tag on a company or contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ref, err := resolveEntity(ctx, app, entity)
			if err != nil {
				return err
			}
			tagID, err := resolveTagID(ctx, app, ref.Kind, args[0])
			if err != nil {
				return err
			}
			if err := app.Tags.Assign(ctx, ref, tagID); err != nil {
				return err
			}
			t, err := app.Tags.GetByID(ctx, tagID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Tagged %s %s\n", formatter.Bold(entityName(ctx, app, ref)), formatter.TagChip(t))
			return nil
		},
	}

	entity.register(cmd.Flags(), "tag")

	return cmd
}

func newTagUnassignCmd(app *App) *cobra.Command {
	var entity entityFlags

	cmd := &cobra.Command{
		Use:   "unassign TAG",
		Short: "Take a tag off a company or contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ref, err := resolveEntity(ctx, app, entity)
			if err != nil {
				return err
			}
			tagID, err := resolveTagID(ctx, app, ref.Kind, args[0])
			if err != nil {
				return err
			}
			if err := app.Tags.Unassign(ctx, ref, tagID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed tag from %s\n", formatter.Bold(entityName(ctx, app, ref)))
			return nil
		},
	}

	entity.register(cmd.Flags(), "untag")

	return cmd
}
