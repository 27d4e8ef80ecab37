package style

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table is a reusable table component using lipgloss.
type Table struct {
	Headers []string
	Rows    [][]string
	// Width is the total width available. Zero sizes columns to their content.
	Width int
}

// Render renders the table.
func (t Table) Render() string {
	if len(t.Headers) == 0 {
		return ""
	}

	widths := t.calculateColumnWidths()

	renderedRows := []string{
		t.renderRow(t.Headers, widths, Title),
		t.renderSeparator(widths),
	}
	for _, row := range t.Rows {
		renderedRows = append(renderedRows, t.renderRow(row, widths, lipgloss.NewStyle()))
	}

	return strings.Join(renderedRows, "\n")
}

// calculateColumnWidths sizes each column to its widest cell. When the
// natural width exceeds Width, the widest column gives up the difference.
func (t Table) calculateColumnWidths() []int {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}

	if t.Width <= 0 {
		return widths
	}

	// Each column separator is " │ " (3 chars)
	available := t.Width - (len(widths)-1)*3
	total := 0
	widest := 0
	for i, w := range widths {
		total += w
		if w > widths[widest] {
			widest = i
		}
	}
	if over := total - available; over > 0 {
		widths[widest] = max(widths[widest]-over, 3)
	}
	return widths
}

// renderRow renders a single row with the given widths and style.
func (t Table) renderRow(cells []string, widths []int, style lipgloss.Style) string {
	formattedCells := make([]string, len(widths))
	for i := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		formattedCells[i] = padOrTruncate(cell, widths[i])
	}

	return style.Render(strings.Join(formattedCells, " │ "))
}

// renderSeparator renders a separator line.
func (t Table) renderSeparator(widths []int) string {
	parts := make([]string, len(widths))
	for i, width := range widths {
		parts[i] = strings.Repeat("─", width)
	}
	return Gray.Render(strings.Join(parts, "─┼─"))
}

// padOrTruncate ensures s is exactly width cells wide. Multi-line cells are
// flattened first.
func padOrTruncate(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	visualLen := lipgloss.Width(s)

	switch {
	case visualLen == width:
		return s
	case visualLen < width:
		return s + strings.Repeat(" ", width-visualLen)
	case width <= 1:
		return strings.Repeat(".", max(width, 0))
	default:
		runes := []rune(s)
		if len(runes) > width-1 {
			runes = runes[:width-1]
		}
		return string(runes) + "…"
	}
}
