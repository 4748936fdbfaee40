package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/crmsheet/internal/cli/formatter"
	"github.com/alexanderramin/crmsheet/internal/domain"
	"github.com/spf13/cobra"
)

func newNoteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "note",
		Aliases: []string{"notes"},
		Short:   "Write notes on companies and contacts",
	}

	cmd.AddCommand(newNoteAddCmd(app))

	return cmd
}

func newNoteAddCmd(app *App) *cobra.Command {
	var entity entityFlags

	cmd := &cobra.Command{
		Use:   "add TEXT...",
		Short: "Add a note to a company or contact",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ref, err := resolveEntity(ctx, app, entity)
			if err != nil {
				return err
			}

			var e *domain.HistoryEntry
			if err := withSpinner(cmd, app, "Saving note…", func() error {
				var err error
				e, err = app.History.AddNote(ctx, ref, strings.Join(args, " "))
				return err
			}); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Noted on %s %s: %s\n", ref.Kind, formatter.Bold(entityName(ctx, app, ref)), e.Content)
			return nil
		},
	}

	entity.register(cmd.Flags(), "write on")

	return cmd
}
