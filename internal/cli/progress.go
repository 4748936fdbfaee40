package cli

import (
	"fmt"

	"github.com/alexanderramin/crmsheet/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

type workDoneMsg struct{}

// spinnerModel shows a spinner until workDoneMsg arrives, then clears
// its line.
type spinnerModel struct {
	spinner spinner.Model
	label   string
	done    bool
}

func newSpinnerModel(label string) spinnerModel {
	return spinnerModel{
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(formatter.StylePurple)),
		label:   label,
	}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case workDoneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("  %s %s", m.spinner.View(), formatter.Dim(m.label))
}

// withSpinner runs fn behind a spinner on stderr when the store is remote
// and the session is interactive; otherwise it just runs fn.
func withSpinner(cmd *cobra.Command, app *App, label string, fn func() error) error {
	if !app.Remote || !app.interactive() {
		return fn()
	}

	p := tea.NewProgram(newSpinnerModel(label), tea.WithOutput(cmd.ErrOrStderr()), tea.WithInput(nil))
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		_, _ = p.Run()
	}()

	err := fn()
	p.Send(workDoneMsg{})
	<-finished
	return err
}
