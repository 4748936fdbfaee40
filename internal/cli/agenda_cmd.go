package cli

import (
	"fmt"

	"github.com/alexanderramin/crmsheet/internal/agenda"
	"github.com/alexanderramin/crmsheet/internal/cli/formatter"
	"github.com/alexanderramin/crmsheet/internal/domain"
	"github.com/spf13/cobra"
)

func newAgendaCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "agenda",
		Short: "Show planned activities that are overdue or due this week",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var b agenda.Buckets
			if err := withSpinner(cmd, app, "Loading agenda…", func() error {
				var err error
				b, err = app.Agenda.Agenda(ctx)
				return err
			}); err != nil {
				return err
			}

			var all []*domain.Activity
			for _, list := range [][]*domain.Activity{b.Overdue, b.Today, b.Tomorrow, b.ThisWeek} {
				all = append(all, list...)
			}
			subjects, err := activitySubjects(ctx, app, all)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatAgenda(b, subjects, app.now()))
			return nil
		},
	}
}
