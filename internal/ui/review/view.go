package review

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/joshsymonds/tokubetsu/internal/models"
	"github.com/joshsymonds/tokubetsu/internal/ui/style"
)

// View renders the review screen.
func (m Model) View() string {
	width := m.width
	if width <= 0 {
		width = 100
	}

	sections := []string{m.renderHeader()}
	if s, ok := m.Current(); ok {
		body := m.viewport.View()
		if !m.sized() {
			body = renderSuggestion(s, width-4)
		}
		sections = append(sections, body, m.renderHelp())
	} else {
		sections = append(sections, m.renderSummary())
	}

	return strings.Join(sections, "\n\n") + "\n"
}

func (m Model) renderHeader() string {
	title := "Review fixes"
	if m.document != "" {
		title += " for " + m.document
	}

	position := fmt.Sprintf("%d/%d", min(m.cursor+1, len(m.suggestions)), len(m.suggestions))
	accepted, skipped := m.counts()
	stats := fmt.Sprintf("%s accepted %d  %s skipped %d", style.SuccessIcon, accepted, style.FailIcon, skipped)

	return style.Title.Render(title) + "  " + style.Gray.Render(position) + "\n" + stats
}

func (m Model) renderHelp() string {
	return m.help.View(m.keys)
}

func renderSuggestion(s models.FixSuggestion, width int) string {
	mode := "manual review"
	if s.Automated {
		mode = "automated"
	}

	wrap := lipgloss.NewStyle().Width(max(width-4, 20))
	lines := []string{
		style.Bold.Render(s.Description),
		fmt.Sprintf("%s  impact %s  effort %s  %s",
			style.Gray.Render(s.ID), style.ForImpact(s.Impact).Render(string(s.Impact)), s.Effort, mode),
		"",
		style.Removed.Render(wrap.Render("- " + s.Before)),
		style.Added.Render(wrap.Render("+ " + s.After)),
	}
	return style.RenderBox("Suggestion", width, lines...)
}

func (m Model) renderSummary() string {
	accepted, skipped := m.counts()
	lines := []string{
		fmt.Sprintf("%s %d accepted", style.SuccessIcon, accepted),
		fmt.Sprintf("%s %d skipped", style.FailIcon, skipped),
	}
	if pending := len(m.suggestions) - accepted - skipped; pending > 0 {
		lines = append(lines, fmt.Sprintf("%s %d not reviewed", style.PendingIcon, pending))
	}
	return style.RenderBox("Review complete", 0, lines...)
}
