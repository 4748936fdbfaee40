package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/crmsheet/internal/cli/formatter"
	"github.com/alexanderramin/crmsheet/internal/service"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// crmHuhTheme returns a huh theme matching the formatter palette.
func crmHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func confirmForm(title, affirmative, negative string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative(affirmative).
				Negative(negative).
				Value(result),
		),
	).WithTheme(crmHuhTheme()).WithShowHelp(false)
}

func runConfirmForm(title, affirmative, negative string) (bool, error) {
	var ok bool
	if err := confirmForm(title, affirmative, negative, &ok).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}

// saveGuarded runs save and, when it is rejected as a probable duplicate,
// shows the existing record and asks whether to save anyway. Declining is
// not an error: saved is false and nothing was written.
func saveGuarded(cmd *cobra.Command, app *App, force bool, save func(service.SaveOptions) error) (saved bool, err error) {
	err = save(service.SaveOptions{ForceBypassDuplicateCheck: force})
	var dup *service.DuplicateError
	if !errors.As(err, &dup) {
		return err == nil, err
	}

	printDuplicate(cmd.ErrOrStderr(), dup)
	if !app.interactive() {
		return false, fmt.Errorf("%w; re-run with --force to save anyway", dup)
	}

	ok, err := app.confirm("Save anyway?", "Save anyway", "Go back")
	if err != nil {
		return false, err
	}
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Nothing saved."))
		return false, nil
	}
	if err := save(service.SaveOptions{ForceBypassDuplicateCheck: true}); err != nil {
		return false, err
	}
	return true, nil
}

func printDuplicate(w io.Writer, dup *service.DuplicateError) {
	reasons := make([]string, len(dup.Reasons))
	for i, r := range dup.Reasons {
		reasons[i] = string(r)
	}
	body := fmt.Sprintf("%s\n%s %s\n%s %s",
		formatter.Bold(dup.Summary),
		formatter.Dim("matching:"), formatter.StyleYellow.Render(strings.Join(reasons, ", ")),
		formatter.Dim("id:"), formatter.Dim(dup.ExistingID),
	)
	fmt.Fprintln(w, formatter.RenderBox(fmt.Sprintf("Possible duplicate %s", dup.Kind), body))
}

// confirmDelete asks before a destructive command. Non-interactive runs
// must pass --yes.
func confirmDelete(cmd *cobra.Command, app *App, what string, yes bool) (bool, error) {
	if yes {
		return true, nil
	}
	if !app.interactive() {
		return false, fmt.Errorf("refusing to delete %s without --yes", what)
	}
	ok, err := app.confirm(fmt.Sprintf("Delete %s?", what), "Delete", "Keep")
	if err != nil {
		return false, err
	}
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Nothing deleted."))
	}
	return ok, nil
}
