package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. Never use inline lipgloss.Color literals elsewhere.
var (
	// ColorCyan is used for identifiable nouns: paths, project names, tools.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen is used for the "created" status.
	ColorGreen = lipgloss.Color("82")

	// ColorYellow is used for the "skipped" status and prompt warnings.
	ColorYellow = lipgloss.Color("220")

	// ColorBoldRed is used for the "failed" status.
	ColorBoldRed = lipgloss.Color("204")

	// ColorGreenCheck is used for the completion checkmark.
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and muted text.
	ColorDimGray = lipgloss.Color("240")

	// ColorBlue is used for table headers.
	ColorBlue = lipgloss.Color("12")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns.
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleAction styles action verbs.
	StyleAction = lipgloss.NewStyle().Bold(true)

	// StyleDim styles structural chrome.
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleMuted styles descriptions in trees and tables.
	StyleMuted = lipgloss.NewStyle().Foreground(ColorDimGray)

	// StyleWarning styles prompt retry warnings.
	StyleWarning = lipgloss.NewStyle().Foreground(ColorYellow)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// File status constants.
const (
	StatusCreated   = "created"
	StatusRewritten = "rewritten"
	StatusSkipped   = "skipped"
	StatusFailed    = "failed"
)

// StatusStyle returns the lipgloss style for a given file status string.
// Unknown statuses return an unstyled default.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case StatusCreated:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case StatusRewritten:
		return lipgloss.NewStyle().Foreground(ColorCyan)
	case StatusSkipped:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case StatusFailed:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorBoldRed)
	default:
		return lipgloss.NewStyle()
	}
}

// minPathColumnWidth is the minimum width of the path column so status
// words line up.
const minPathColumnWidth = 48

// FormatFileLine renders a path with a right-aligned, color-coded status.
//
// Format: f:<path>  <status>
func FormatFileLine(path, status string) string {
	padding := minPathColumnWidth - len(path)
	if padding < 2 {
		padding = 2
	}

	return StyleDim.Render("f:") +
		StyleNoun.Render(path) +
		strings.Repeat(" ", padding) +
		StatusStyle(status).Render(status)
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}
