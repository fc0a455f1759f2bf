package tryui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains the pre-configured lipgloss styles for the tester.
type Styles struct {
	// Title style for the header line.
	Title lipgloss.Style

	// Label style for input labels.
	Label lipgloss.Style

	// InputField style for input areas.
	InputField lipgloss.Style

	// Match style for highlighted match spans.
	Match lipgloss.Style

	// Count style for the occurrence summary.
	Count lipgloss.Style

	// Error style for compilation errors.
	Error lipgloss.Style

	// Help style for the key hint line.
	Help lipgloss.Style
}

// DefaultStyles returns the default styling.
func DefaultStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")),

		Label: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#06B6D4")),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#45475A")).
			Padding(0, 1),

		Match: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#1E1E2E")).
			Background(lipgloss.Color("#A6E3A1")),

		Count: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6E3A1")),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F38BA8")),

		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C7086")),
	}
}
