package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/crmsheet/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// ActivityStatusPill returns a colored indicator such as "● Planned".
func ActivityStatusPill(status domain.ActivityStatus) string {
	switch status {
	case domain.ActivityPlanned:
		return StyleBlue.Render("○ Planned")
	case domain.ActivityCompleted:
		return StyleGreen.Render("✔ Completed")
	case domain.ActivityCancelled:
		return StyleDim.Render("✖ Cancelled")
	default:
		return StyleDim.Render(string(status))
	}
}

// ActivityTypeBadge renders the activity type in its own color.
func ActivityTypeBadge(t domain.ActivityType) string {
	label := string(t)
	switch t {
	case domain.ActivityMeeting:
		return StylePurple.Render(label)
	case domain.ActivityPhone:
		return StyleYellow.Render(label)
	case domain.ActivityEmail:
		return StyleBlue.Render(label)
	case domain.ActivityTask:
		return StyleGreen.Render(label)
	default:
		return StyleDim.Render(strings.ToUpper(label))
	}
}

// TagChip renders a tag name in the tag's own color.
func TagChip(t *domain.Tag) string {
	if t == nil {
		return ""
	}
	color := t.Color
	if color == "" {
		color = domain.DefaultTagColor
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("#" + t.Name)
}

// TagChips joins the chips of tags with a space, or "--" when there are none.
func TagChips(tags []*domain.Tag) string {
	if len(tags) == 0 {
		return Dim("--")
	}
	chips := make([]string, 0, len(tags))
	for _, t := range tags {
		chips = append(chips, TagChip(t))
	}
	return strings.Join(chips, " ")
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
