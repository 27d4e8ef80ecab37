// Package style holds the lipgloss styles and the table component shared by
// terminal reports and the interactive review.
package style

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/joshsymonds/tokubetsu/internal/models"
)

// Style definitions using lipgloss.
var (
	Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("86")) // Cyan

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("86"))

	// Impact colors.
	High   = lipgloss.NewStyle().Foreground(lipgloss.Color("208")) // Orange
	Medium = lipgloss.NewStyle().Foreground(lipgloss.Color("226")) // Yellow
	Low    = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))  // Green

	// Diff colors.
	Removed = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	Added   = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))

	// Status icons.
	SuccessIcon = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Render("✓")
	FailIcon    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("✗")
	PendingIcon = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render("○")

	// Text styles.
	Bold  = lipgloss.NewStyle().Bold(true)
	Gray  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	Error = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// ForImpact returns the color style for an impact level.
func ForImpact(impact models.Impact) lipgloss.Style {
	switch impact {
	case models.ImpactHigh:
		return High
	case models.ImpactMedium:
		return Medium
	case models.ImpactLow:
		return Low
	default:
		return Gray
	}
}

// RenderBox renders lines in a rounded box under a title.
func RenderBox(title string, width int, lines ...string) string {
	content := ""
	for i, line := range lines {
		if i > 0 {
			content += "\n"
		}
		content += line
	}

	box := Box
	if width > 0 {
		box = box.Width(width)
	}
	return box.Render(Title.Render(title) + "\n\n" + content)
}
