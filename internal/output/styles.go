package output

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. Never use inline lipgloss.Color literals elsewhere.
var (
	ColorCyan   = lipgloss.Color("14")
	ColorGreen  = lipgloss.Color("82")
	ColorYellow = lipgloss.Color("220")
	ColorRed    = lipgloss.Color("204")
	ColorCheck  = lipgloss.Color("10")
)

// Semantic styles.
var (
	// StyleNoun styles paths, datapack names and namespaces.
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	StyleDim     = lipgloss.NewStyle().Faint(true)
	StyleSummary = lipgloss.NewStyle().Bold(true)
	StyleError   = lipgloss.NewStyle().Bold(true).Foreground(ColorRed)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorYellow)
)

// Materialization statuses.
const (
	StatusCreated = "created"
	StatusSkipped = "skipped"
	StatusFolder  = "folder"
	StatusMerged  = "merged"
)

// StatusStyle returns the style for a status. Unknown statuses are unstyled.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case StatusCreated:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case StatusSkipped:
		return lipgloss.NewStyle().Faint(true)
	case StatusMerged:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	default:
		return lipgloss.NewStyle()
	}
}

// FormatStatusLine renders "<path> <status>" with the status styled.
func FormatStatusLine(path, status string) string {
	return fmt.Sprintf("  %s %s", StyleNoun.Render(path), StatusStyle(status).Render(status))
}

// FormatCheckmark renders a green check followed by msg.
func FormatCheckmark(msg string) string {
	return lipgloss.NewStyle().Foreground(ColorCheck).Render("✔") + " " + StyleSummary.Render(msg)
}

// FormatError renders an error line.
func FormatError(msg string) string {
	return StyleError.Render("✘") + " " + msg
}
