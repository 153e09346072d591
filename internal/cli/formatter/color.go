package formatter

import (
	"fmt"
	"strings"

	"github.com/Ehphp/RequestEstimator-sub000/internal/domain"
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
	StyleGreen      = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow     = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleYellowBold = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	StyleRed        = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue       = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple     = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim        = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg         = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader     = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold       = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// PriorityColor returns the style used for a requirement priority.
func PriorityColor(p domain.Priority) lipgloss.Style {
	switch p {
	case domain.PriorityHigh:
		return StyleRed
	case domain.PriorityMed:
		return StyleYellow
	case domain.PriorityLow:
		return StyleGreen
	default:
		return StyleDim
	}
}

// AlertColor returns the style for an alert severity.
func AlertColor(t domain.AlertType) lipgloss.Style {
	switch t {
	case domain.AlertCritical:
		return StyleRed
	case domain.AlertWarning:
		return StyleYellow
	default:
		return StyleBlue
	}
}

// ConfidenceIndicator returns a colored label such as "● HIGH".
func ConfidenceIndicator(level domain.ConfidenceLevel) string {
	switch level {
	case domain.ConfidenceHigh:
		return StyleGreen.Render("● HIGH")
	case domain.ConfidenceMedium:
		return StyleYellow.Render("● MEDIUM")
	case domain.ConfidenceLow:
		return StyleRed.Render("● LOW")
	default:
		return StyleDim.Render("● UNKNOWN")
	}
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
