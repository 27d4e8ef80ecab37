package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshsymonds/tokubetsu/internal/models"
	"github.com/joshsymonds/tokubetsu/internal/report"
)

const testPage = `<html><body><img src="img/hero.jpg"><div onclick="openMenu()">Menu</div></body></html>`

const testViolations = `- rule_id: text-alternatives
  code: <img src="img/hero.jpg">
- rule_id: keyboard-accessible
  code: <div onclick="openMenu()">Menu</div>
`

const testAxeResults = `{
  "url": "https://shop.example.com",
  "violations": [
    {"id": "image-alt", "impact": "critical", "nodes": [{"html": "<img src=\"img/hero.jpg\">", "target": ["img"]}]}
  ],
  "passes": [
    {"id": "html-has-lang", "nodes": [{"html": "<html lang=\"en\">"}]}
  ]
}`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func readJSONReport(t *testing.T, path string) *report.Data {
	t.Helper()
	data, err := report.LoadData(path)
	require.NoError(t, err)
	return data
}

func TestVersion(t *testing.T) {
	out, err := run(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "dev (built unknown)")
}

func TestRulesCommand(t *testing.T) {
	out, err := run(t, "rules")
	require.NoError(t, err)
	assert.Contains(t, out, "text-alternatives")
	assert.Contains(t, out, "Add descriptive alt text to images")

	out, err = run(t, "rules", "--catalog")
	require.NoError(t, err)
	assert.Contains(t, out, "image-alt")
	assert.Contains(t, out, "1.1.1")
}

func TestConfigValidateCommand(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "tokubetsu.yaml", `project:
  name: shop
suppressions:
  - heading-order
`)

	out, err := run(t, "config", "validate", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Name: shop")
	assert.Contains(t, out, "heading-order")
	assert.Contains(t, out, "Configuration is valid!")

	_, err = run(t, "config", "validate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--config flag is required")

	bad := writeFile(t, dir, "bad.yaml", "project:\n  name: \"\"\n")
	_, err = run(t, "config", "validate", "--config", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration is invalid")
}

func TestSuggestCommand(t *testing.T) {
	dir := t.TempDir()
	violations := writeFile(t, dir, "violations.yaml", testViolations)
	output := filepath.Join(dir, "fixes.json")

	_, err := run(t, "suggest", violations, "--format", "json", "--output", output, "--document", "index.html")
	require.NoError(t, err)

	data := readJSONReport(t, output)
	assert.Equal(t, "index.html", data.Document)
	require.Len(t, data.Suggestions, 2)
	assert.Equal(t, "text-alternatives-0", data.Suggestions[0].ID)
	assert.Equal(t, "keyboard-accessible-1", data.Suggestions[1].ID)
}

func TestApplyCommand_DryRun(t *testing.T) {
	dir := t.TempDir()
	violations := writeFile(t, dir, "violations.yaml", testViolations)
	doc := writeFile(t, dir, "index.html", testPage)
	reportPath := filepath.Join(dir, "apply.json")

	out, err := run(t, "apply", violations, doc, "--dry-run", "--format", "json", "--report", reportPath)
	require.NoError(t, err)
	assert.Contains(t, out, "2 change(s) would be made")
	assert.Contains(t, out, `+ <img alt="hero" src="img/hero.jpg">`)

	content, err := os.ReadFile(doc)
	require.NoError(t, err)
	assert.Equal(t, testPage, string(content))

	data := readJSONReport(t, reportPath)
	require.Len(t, data.Outcomes, 2)
	assert.True(t, data.Outcomes[0].Applied)
}

func TestApplyCommand_WritesDocument(t *testing.T) {
	dir := t.TempDir()
	violations := writeFile(t, dir, "violations.yaml", testViolations)
	doc := writeFile(t, dir, "index.html", testPage)
	fixed := filepath.Join(dir, "fixed.html")

	_, err := run(t, "apply", violations, doc, "--output", fixed, "--format", "json", "--report", filepath.Join(dir, "r.json"))
	require.NoError(t, err)

	content, err := os.ReadFile(fixed)
	require.NoError(t, err)
	assert.Contains(t, string(content), `<img alt="hero" src="img/hero.jpg">`)
	assert.Contains(t, string(content), `<button type="button" onClick="openMenu()">Menu</button> tabIndex={0}`)

	original, err := os.ReadFile(doc)
	require.NoError(t, err)
	assert.Equal(t, testPage, string(original))
}

func TestDecisionsThenApply(t *testing.T) {
	dir := t.TempDir()
	violations := writeFile(t, dir, "violations.yaml", testViolations)
	doc := writeFile(t, dir, "index.html", testPage)
	decisionsPath := filepath.Join(dir, "decisions.yaml")

	out, err := run(t, "decisions", violations, "--output", decisionsPath)
	require.NoError(t, err)
	assert.Contains(t, out, "2 suggestion(s) accepted, 0 awaiting review")

	// Reject the keyboard fix by hand.
	d, err := report.LoadDecisions(decisionsPath)
	require.NoError(t, err)
	d.Rejected = append(d.Rejected, d.Accepted[1])
	d.Accepted = d.Accepted[:1]
	require.NoError(t, report.SaveDecisions(decisionsPath, d))

	reportPath := filepath.Join(dir, "apply.json")
	_, err = run(t, "apply", violations, doc, "--decisions", decisionsPath, "--format", "json", "--report", reportPath)
	require.NoError(t, err)

	content, err := os.ReadFile(doc)
	require.NoError(t, err)
	assert.Contains(t, string(content), `alt="hero"`)
	assert.Contains(t, string(content), `<div onclick="openMenu()">`)

	data := readJSONReport(t, reportPath)
	require.Len(t, data.Outcomes, 2)
	assert.Equal(t, models.ApplyOutcome{SuggestionID: "text-alternatives-0", Reason: models.ReasonApplied, Applied: true}, data.Outcomes[0])
	assert.Equal(t, models.ReasonRejected, data.Outcomes[1].Reason)
}

func TestApplyIgnoresDecisionsForReorderedViolations(t *testing.T) {
	dir := t.TempDir()
	const page = `<p><img src="logo.png"><img src="tracking-pixel.gif"></p>`
	reviewed := writeFile(t, dir, "reviewed.yaml", `- rule_id: text-alternatives
  code: <img src="logo.png">
- rule_id: text-alternatives
  code: <img src="tracking-pixel.gif">
`)
	rescanned := writeFile(t, dir, "rescanned.yaml", `- rule_id: text-alternatives
  code: <img src="tracking-pixel.gif">
- rule_id: text-alternatives
  code: <img src="logo.png">
`)
	doc := writeFile(t, dir, "index.html", page)
	decisionsPath := filepath.Join(dir, "decisions.yaml")

	_, err := run(t, "decisions", reviewed, "--output", decisionsPath)
	require.NoError(t, err)

	// Keep the logo fix, reject the tracking pixel.
	d, err := report.LoadDecisions(decisionsPath)
	require.NoError(t, err)
	require.Len(t, d.Accepted, 2)
	d.Rejected = append(d.Rejected, d.Accepted[1])
	d.Accepted = d.Accepted[:1]
	require.NoError(t, report.SaveDecisions(decisionsPath, d))

	_, err = run(t, "apply", rescanned, doc, "--decisions", decisionsPath)
	require.NoError(t, err)

	content, err := os.ReadFile(doc)
	require.NoError(t, err)
	assert.Equal(t, page, string(content))
}

func TestScoreAndReportCommands(t *testing.T) {
	dir := t.TempDir()
	results := writeFile(t, dir, "results.json", testAxeResults)
	scorePath := filepath.Join(dir, "score.json")

	_, err := run(t, "score", results, "--format", "json", "--output", scorePath)
	require.NoError(t, err)

	raw, err := os.ReadFile(scorePath)
	require.NoError(t, err)
	var data report.Data
	require.NoError(t, json.Unmarshal(raw, &data))
	require.NotNil(t, data.Compliance)
	assert.Equal(t, "https://shop.example.com", data.Compliance.URL)
	assert.InDelta(t, 0.0, data.Compliance.PerceivableScore, 0.001)
	assert.InDelta(t, 100.0, data.Compliance.RobustScore, 0.001)
	require.Len(t, data.Violations, 1)
	assert.Equal(t, "text-alternatives", data.Violations[0].RuleID)

	htmlPath := filepath.Join(dir, "score.html")
	_, err = run(t, "report", scorePath, "--format", "html", "--output", htmlPath)
	require.NoError(t, err)
	html, err := os.ReadFile(htmlPath)
	require.NoError(t, err)
	assert.Contains(t, string(html), "WCAG Compliance")
}

func TestUnknownCommandFails(t *testing.T) {
	_, err := run(t, "scan")
	require.Error(t, err)
}
