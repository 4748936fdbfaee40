package cli

import (
	"time"

	"github.com/alexanderramin/crmsheet/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Companies  service.CompanyService
	Contacts   service.ContactService
	Activities service.ActivityService
	History    service.HistoryService
	Timeline   service.TimelineService
	Tags       service.TagService
	Agenda     service.AgendaService
	Profile    service.ProfileService

	// IsInteractive reports whether prompts may be shown. Nil means never.
	IsInteractive func() bool
	// Remote is set when the record store is reached over the network; a
	// spinner is shown while interactive commands wait on it.
	Remote bool

	// Confirm asks a yes/no question. Nil uses a huh confirm form.
	Confirm func(title, affirmative, negative string) (bool, error)
	// Now is the clock used for relative dates. Nil means time.Now.
	Now func() time.Time
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) confirm(title, affirmative, negative string) (bool, error) {
	if a.Confirm != nil {
		return a.Confirm(title, affirmative, negative)
	}
	return runConfirmForm(title, affirmative, negative)
}

// NewRootCmd creates the top-level "crmsheet" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "crmsheet",
		Short: "Companies, contacts and activities in a spreadsheet-backed CRM",
		// main prints the error once.
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.AddCommand(
		newCompanyCmd(app),
		newContactCmd(app),
		newActivityCmd(app),
		newNoteCmd(app),
		newTimelineCmd(app),
		newTagCmd(app),
		newAgendaCmd(app),
		newProfileCmd(app),
	)

	return root
}
