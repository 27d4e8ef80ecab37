package report

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/joshsymonds/tokubetsu/internal/models"
	"github.com/joshsymonds/tokubetsu/internal/ui/style"
	"github.com/joshsymonds/tokubetsu/pkg/logger"
)

// textFormat renders a terminal summary with lipgloss.
type textFormat struct {
	logger logger.Logger
}

const textWidth = 110

func (f *textFormat) Generate(data *Data, w io.Writer) error {
	f.logger.Debug("Rendering text report", "suggestions", len(data.Suggestions), "outcomes", len(data.Outcomes))

	sections := []string{f.renderHeader(data)}

	if data.Compliance != nil {
		sections = append(sections, f.renderCompliance(data.Compliance))
	}
	sections = append(sections, f.renderSuggestions(data))
	if len(data.Outcomes) > 0 {
		sections = append(sections, f.renderOutcomes(data))
	}

	_, err := fmt.Fprintln(w, strings.Join(sections, "\n\n"))
	return err
}

func (f *textFormat) renderHeader(data *Data) string {
	lines := []string{
		fmt.Sprintf("Run: %s", data.RunID),
		fmt.Sprintf("Generated: %s", data.GeneratedAt.Format("2006-01-02 15:04:05")),
	}
	if data.Project != "" {
		lines = append(lines, fmt.Sprintf("Project: %s", data.Project))
	}
	if data.Document != "" {
		lines = append(lines, fmt.Sprintf("Document: %s", data.Document))
	}

	counts := []string{
		style.Bold.Render(fmt.Sprintf("Violations: %d", len(data.Violations))),
		fmt.Sprintf("Suggestions: %d", len(data.Suggestions)),
		fmt.Sprintf("Automated: %d", data.AutomatedCount()),
	}
	if data.Suppressed > 0 {
		counts = append(counts, style.Gray.Render(fmt.Sprintf("Suppressed: %d", data.Suppressed)))
	}
	lines = append(lines, strings.Join(counts, "  "))

	return style.RenderBox("Accessibility Fix Report", 0, lines...)
}

func (f *textFormat) renderCompliance(c *models.ComplianceReport) string {
	titleCase := cases.Title(language.English)
	table := style.Table{
		Headers: []string{"Category", "Score"},
		Rows: [][]string{
			{"Overall", formatScore(c.OverallScore)},
			{"Level A", formatScore(c.LevelAScore)},
			{"Level AA", formatScore(c.LevelAAScore)},
			{"Level AAA", formatScore(c.LevelAAAScore)},
			{titleCase.String(models.PrinciplePerceivable), formatScore(c.PerceivableScore)},
			{titleCase.String(models.PrincipleOperable), formatScore(c.OperableScore)},
			{titleCase.String(models.PrincipleUnderstandable), formatScore(c.UnderstandableScore)},
			{titleCase.String(models.PrincipleRobust), formatScore(c.RobustScore)},
		},
	}
	return style.RenderBox("WCAG Compliance", 0, c.URL, "", table.Render())
}

func (f *textFormat) renderSuggestions(data *Data) string {
	if len(data.Suggestions) == 0 {
		return style.RenderBox("Suggestions", 0, style.Gray.Render("No fixes suggested"))
	}

	rows := make([][]string, 0, len(data.Suggestions))
	for _, s := range data.Suggestions {
		automated := "manual"
		if s.Automated {
			automated = "auto"
		}
		rows = append(rows, []string{
			s.ID,
			style.ForImpact(s.Impact).Render(string(s.Impact)),
			string(s.Effort),
			automated,
			s.Description,
			s.After,
		})
	}

	table := style.Table{
		Headers: []string{"ID", "Impact", "Effort", "Mode", "Description", "After"},
		Rows:    rows,
		Width:   textWidth,
	}
	return style.RenderBox("Suggestions", 0, table.Render())
}

func (f *textFormat) renderOutcomes(data *Data) string {
	lines := make([]string, 0, len(data.Outcomes)+1)
	for _, o := range data.Outcomes {
		icon := style.SuccessIcon
		if !o.Applied {
			icon = style.PendingIcon
		}
		lines = append(lines, fmt.Sprintf("%s %s: %s", icon, o.SuggestionID, o.Reason))
	}
	lines = append(lines, "", style.Bold.Render(fmt.Sprintf("Applied %d of %d", data.AppliedCount(), len(data.Outcomes))))
	return style.RenderBox("Apply Results", 0, lines...)
}

func (f *textFormat) Name() string {
	return "text"
}

func (f *textFormat) Description() string {
	return "Terminal summary with suggestion table"
}

func formatScore(score float64) string {
	return fmt.Sprintf("%.1f%%", score)
}
