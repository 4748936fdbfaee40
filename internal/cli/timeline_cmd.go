package cli

import (
	"fmt"

	"github.com/alexanderramin/crmsheet/internal/cli/formatter"
	"github.com/alexanderramin/crmsheet/internal/timeline"
	"github.com/spf13/cobra"
)

func newTimelineCmd(app *App) *cobra.Command {
	var entity entityFlags
	scope := scopeValue(timeline.ScopeAll)

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Show the activities and notes of a company or contact, newest first",
		Long: `Show the timeline of one company or contact.

Scopes:
  all         activities and notes (default)
  activities  activities only
  notes       notes only
  full        the audit history: notes and system events`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ref, err := resolveEntity(ctx, app, entity)
			if err != nil {
				return err
			}

			var items []timeline.Item
			names := map[string]string{}
			err = withSpinner(cmd, app, "Loading timeline…", func() error {
				var err error
				if items, err = app.Timeline.Timeline(ctx, ref, timeline.Scope(scope)); err != nil {
					return err
				}
				if p, err := app.Profile.Current(ctx); err == nil {
					names[p.Email] = p.DisplayText()
				}
				return nil
			})
			if err != nil {
				return err
			}

			title := fmt.Sprintf("%s · %s", entityName(ctx, app, ref), scope)
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTimeline(title, items, names, app.now().Location()))
			return nil
		},
	}

	entity.register(cmd.Flags(), "show")
	cmd.Flags().Var(&scope, "scope", "What to show: all, activities, notes or full")

	return cmd
}
