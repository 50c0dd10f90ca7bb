package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/bfmp/internal/domain"
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

// Predefined lipgloss styles.
var (
	StyleGreen       = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow      = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed         = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue        = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple      = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim         = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg          = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader      = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold        = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
	StylePlaceholder = lipgloss.NewStyle().Foreground(ColorDim).Italic(true)
)

// StatusPill returns a colored indicator for a ledger status.
func StatusPill(status domain.RenderStatus) string {
	switch status {
	case domain.RenderCompleted:
		return StyleGreen.Render("● Completed")
	case domain.RenderAborted:
		return StyleYellow.Render("○ Aborted")
	case domain.RenderFailed:
		return StyleRed.Render("✖ Failed")
	default:
		return StyleDim.Render(string(status))
	}
}

// TargetBadge returns the upper-cased, purple output target.
func TargetBadge(target domain.RenderTarget) string {
	if target == "" {
		return StyleDim.Render("--")
	}
	return StylePurple.Render(strings.ToUpper(string(target)))
}

// SectionStatus renders the validate status column.
func SectionStatus(complete bool) string {
	if complete {
		return StyleGreen.Render("✔ Complete")
	}
	return StyleRed.Render("✖ Incomplete")
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

func Success(text string) string { return StyleGreen.Render("✔ " + text) }

func Warning(text string) string { return StyleYellow.Render("! " + text) }
