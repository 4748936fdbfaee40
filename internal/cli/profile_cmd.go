package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/crmsheet/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or change how you appear in history entries",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the current user profile",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				p, err := app.Profile.Current(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.RenderFields([][2]string{
					{"name", formatter.Bold(p.DisplayText())},
					{"email", p.Email},
					{"since", formatter.Stamp(p.CreatedAt, app.now().Location())},
				}))
				return nil
			},
		},
		&cobra.Command{
			Use:   "set-name NAME...",
			Short: "Set your display name",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				p, err := app.Profile.SetDisplayName(cmd.Context(), strings.Join(args, " "))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Display name set to %s\n", formatter.Bold(p.DisplayText()))
				return nil
			},
		},
	)

	return cmd
}
