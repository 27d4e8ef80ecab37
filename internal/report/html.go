package report

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"sort"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/joshsymonds/tokubetsu/internal/models"
	"github.com/joshsymonds/tokubetsu/pkg/logger"
)

//go:embed templates/*
var templateFS embed.FS

// HTMLGenerator renders a standalone HTML report.
type HTMLGenerator struct {
	logger logger.Logger
	tmpl   *template.Template
}

// NewHTMLGenerator parses the embedded report template.
func NewHTMLGenerator(log logger.Logger) (*HTMLGenerator, error) {
	tmpl, err := template.New("report").Funcs(templateFuncs()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &HTMLGenerator{logger: log, tmpl: tmpl}, nil
}

// TemplateData holds all data for the report template.
type TemplateData struct {
	*Data
	ByImpact  map[models.Impact][]models.FixSuggestion
	Impacts   []models.Impact
	Automated int
	Applied   int
}

// Generate renders the HTML report to w.
func (g *HTMLGenerator) Generate(data *Data, w io.Writer) error {
	if err := g.tmpl.ExecuteTemplate(w, "report.html", g.prepareTemplateData(data)); err != nil {
		return fmt.Errorf("executing template: %w", err)
	}
	g.logger.Debug("Rendered HTML report", "suggestions", len(data.Suggestions))
	return nil
}

// Name returns the format identifier.
func (g *HTMLGenerator) Name() string {
	return "html"
}

// Description returns a human-readable description.
func (g *HTMLGenerator) Description() string {
	return "Standalone HTML report with before/after snippets"
}

func (g *HTMLGenerator) prepareTemplateData(data *Data) *TemplateData {
	td := &TemplateData{
		Data:      data,
		ByImpact:  make(map[models.Impact][]models.FixSuggestion),
		Automated: data.AutomatedCount(),
		Applied:   data.AppliedCount(),
	}

	for _, s := range data.Suggestions {
		td.ByImpact[s.Impact] = append(td.ByImpact[s.Impact], s)
	}
	for impact := range td.ByImpact {
		td.Impacts = append(td.Impacts, impact)
	}
	sort.Slice(td.Impacts, func(i, j int) bool {
		return models.ImpactRank(td.Impacts[i]) < models.ImpactRank(td.Impacts[j])
	})
	return td
}

// templateFuncs returns custom template functions.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"impactClass": func(impact models.Impact) string {
			return fmt.Sprintf("impact-%s", impact)
		},
		"formatTime": func(t time.Time) string {
			return t.Format("2006-01-02 15:04:05")
		},
		"formatScore": formatScore,
		"title": func(s string) string {
			return cases.Title(language.English).String(s)
		},
		"impactTitle": func(i models.Impact) string {
			return cases.Title(language.English).String(string(i))
		},
	}
}
