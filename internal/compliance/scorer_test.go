package compliance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshsymonds/tokubetsu/internal/axe"
	"github.com/joshsymonds/tokubetsu/pkg/logger"
)

func nodes(html ...string) []axe.Node {
	out := make([]axe.Node, len(html))
	for i, h := range html {
		out[i] = axe.Node{HTML: h}
	}
	return out
}

func fixedScorer(t *testing.T) (*Scorer, *logger.MockLogger) {
	t.Helper()
	log := logger.NewMockLogger()
	s := NewScorerWithLogger(nil, log)
	s.now = func() time.Time { return time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC) }
	s.newID = func() string { return "report-1" }
	return s, log
}

func TestScorer_Score(t *testing.T) {
	scorer, log := fixedScorer(t)

	results := &axe.Results{
		Violations: []axe.Rule{
			{ID: "image-alt", Impact: "critical", Nodes: nodes(`<img src="hero.jpg">`, `<img src="cart.svg">`)},
			{ID: "color-contrast", Impact: "serious", Nodes: nodes(`<p style="color: #999999">x</p>`)},
			{ID: "heading-order", Impact: "moderate", Nodes: nodes(`<h3>Deals</h3>`)},
		},
		Passes: []axe.Rule{
			{ID: "image-alt", Nodes: nodes(`<img alt="a">`, `<img alt="b">`)},
			{ID: "link-name", Nodes: nodes(`<a href="/">Home</a>`)},
			{ID: "html-has-lang", Nodes: nodes(`<html lang="en">`)},
		},
	}

	report := scorer.Score("https://shop.example.com/", results)

	assert.Equal(t, "report-1", report.ID)
	assert.Equal(t, "https://shop.example.com/", report.URL)
	assert.Equal(t, 2026, report.GeneratedAt.Year())

	assert.InDelta(t, 60.0, report.LevelAScore, 0.001)
	assert.InDelta(t, 0.0, report.LevelAAScore, 0.001)
	assert.InDelta(t, 0.0, report.LevelAAAScore, 0.001)

	assert.InDelta(t, 40.0, report.PerceivableScore, 0.001)
	assert.InDelta(t, 100.0, report.OperableScore, 0.001)
	assert.InDelta(t, 100.0, report.UnderstandableScore, 0.001)
	assert.InDelta(t, 100.0, report.RobustScore, 0.001)
	assert.InDelta(t, 85.0, report.OverallScore, 0.001)

	assert.Equal(t, 4, report.TotalPasses)
	require.Len(t, report.Violations, 4)
	assert.Equal(t, "text-alternatives", report.Violations[0].RuleID)
	assert.Equal(t, "A", report.Violations[0].WCAGLevel)
	assert.Equal(t, "navigable", report.Violations[3].RuleID)

	assert.True(t, log.HasMessage("INFO", "Compliance scored"))
}

func TestScorer_Score_Defaults(t *testing.T) {
	scorer, _ := fixedScorer(t)

	tests := []struct {
		name    string
		results *axe.Results
		overall float64
		levelA  float64
	}{
		{
			name:    "nil results",
			results: nil,
			overall: 100,
		},
		{
			name:    "only unknown rules",
			results: &axe.Results{Violations: []axe.Rule{{ID: "region", Nodes: nodes("<div>")}}},
			overall: 100,
		},
		{
			name: "everything failing",
			results: &axe.Results{Violations: []axe.Rule{
				{ID: "image-alt", Nodes: nodes("<img>")},
				{ID: "button-name", Nodes: nodes("<button></button>")},
				{ID: "label", Nodes: nodes("<input>")},
				{ID: "aria-valid", Nodes: nodes(`<div aria-x="1">`)},
			}},
			overall: 0,
		},
		{
			name:    "rule without nodes counts once",
			results: &axe.Results{Passes: []axe.Rule{{ID: "label"}}},
			overall: 100,
			levelA:  100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := scorer.Score("https://example.com", tt.results)
			assert.InDelta(t, tt.overall, report.OverallScore, 0.001)
			assert.InDelta(t, tt.levelA, report.LevelAScore, 0.001)
		})
	}
}

func TestCatalog(t *testing.T) {
	catalog := DefaultCatalog()

	rule, ok := catalog.Rule("color-contrast")
	require.True(t, ok)
	assert.Equal(t, "distinguishable", rule.Guideline)
	assert.Equal(t, "AA", rule.Level)

	mapping, ok := catalog.Lookup("image-alt")
	require.True(t, ok)
	assert.Equal(t, axe.Mapping{Guideline: "text-alternatives", Level: "A", Criterion: "1.1.1"}, mapping)

	_, ok = catalog.Lookup("not-a-rule")
	assert.False(t, ok)

	rules := catalog.Rules()
	for i := 1; i < len(rules); i++ {
		assert.Less(t, rules[i-1].ID, rules[i].ID)
	}
}

func TestCatalog_WithAliases(t *testing.T) {
	base := DefaultCatalog()
	aliased := base.WithAliases(map[string]string{
		"image-alt":   "custom-images",
		"region-card": "adaptable",
	})

	rule, _ := aliased.Rule("image-alt")
	assert.Equal(t, "custom-images", rule.Guideline)
	assert.Equal(t, "A", rule.Level, "level is kept")

	rule, ok := aliased.Rule("region-card")
	require.True(t, ok)
	assert.Equal(t, "adaptable", rule.Guideline)
	assert.Empty(t, rule.Principle)

	original, _ := base.Rule("image-alt")
	assert.Equal(t, "text-alternatives", original.Guideline, "base catalog is unchanged")
}
