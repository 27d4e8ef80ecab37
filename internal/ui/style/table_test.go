package style

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/joshsymonds/tokubetsu/internal/models"
)

func TestTable_Render_Empty(t *testing.T) {
	assert.Equal(t, "", Table{}.Render())

	result := Table{Headers: []string{"Rule", "Impact"}}.Render()
	assert.Contains(t, result, "Rule")
	assert.Contains(t, result, "Impact")
	assert.Contains(t, result, "─")
}

func TestTable_Render_Basic(t *testing.T) {
	table := Table{
		Headers: []string{"Rule", "Impact", "Automated"},
		Rows: [][]string{
			{"text-alternatives", "high", "yes"},
			{"distinguishable", "high", "no"},
		},
	}

	lines := strings.Split(table.Render(), "\n")
	assert.Len(t, lines, 4) // header + separator + 2 rows

	assert.Contains(t, lines[0], "Rule")
	assert.Contains(t, lines[1], "┼")
	assert.Contains(t, lines[2], "text-alternatives")
	assert.Contains(t, lines[3], "distinguishable")

	for _, line := range lines[2:] {
		assert.Equal(t, lipgloss.Width(lines[2]), lipgloss.Width(line), "rows are aligned")
	}
}

func TestTable_Render_Truncates(t *testing.T) {
	table := Table{
		Headers: []string{"ID", "Before"},
		Rows: [][]string{
			{"adaptable-0", strings.Repeat("<table class=\"x\">", 10)},
		},
		Width: 40,
	}

	for _, line := range strings.Split(table.Render(), "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 40)
	}
	assert.Contains(t, table.Render(), "…")
}

func TestPadOrTruncate(t *testing.T) {
	assert.Equal(t, "abc  ", padOrTruncate("abc", 5))
	assert.Equal(t, "abc", padOrTruncate("abc", 3))
	assert.Equal(t, "ab…", padOrTruncate("abcdef", 3))
	assert.Equal(t, "a b", padOrTruncate("a\n  b", 3))
	assert.Equal(t, "", padOrTruncate("abc", 0))
}

func TestForImpact(t *testing.T) {
	assert.Equal(t, High, ForImpact(models.ImpactHigh))
	assert.Equal(t, Low, ForImpact(models.ImpactLow))
	assert.Equal(t, Gray, ForImpact("unknown"))
}

func TestRenderBox(t *testing.T) {
	box := RenderBox("Summary", 0, "one", "two")
	assert.Contains(t, box, "Summary")
	assert.Contains(t, box, "one")
	assert.Contains(t, box, "two")
}
