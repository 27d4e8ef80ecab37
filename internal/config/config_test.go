package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshsymonds/tokubetsu/internal/fixes"
	"github.com/joshsymonds/tokubetsu/internal/models"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tokubetsu.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		errMsg  string
		wantErr bool
	}{
		{
			name: "valid complete config",
			yaml: `project:
  name: acme-storefront
  url: https://shop.example.com

fixes:
  disabled_rules: [distinguishable]
  automated_only: true
  templates:
    - rule_id: navigable
      pattern: '<a\s+href="#"'
      replacement: '<a href="#" role="button"'
      description: Mark placeholder anchors as buttons
      impact: medium
      effort: easy

rule_aliases:
  image-alt: text-alternatives
  region: adaptable

impact_overrides:
  adaptable: low

suppressions:
  - heading-order

output:
  formats: [text, json]
  path: reports/latest

aws:
  region: us-east-1
  endpoint: http://localhost:4566
  use_path_style: true
`,
		},
		{
			name: "minimal config",
			yaml: `project:
  name: site
`,
		},
		{
			name:    "missing project name",
			yaml:    "project:\n  name: \"\"\n",
			wantErr: true,
			errMsg:  "project.name is required",
		},
		{
			name: "template without rule id",
			yaml: `project: {name: site}
fixes:
  templates:
    - pattern: x
      replacement: y
      description: d
      impact: low
      effort: easy
`,
			wantErr: true,
			errMsg:  "fixes.templates[0].rule_id is required",
		},
		{
			name: "template with bad pattern",
			yaml: `project: {name: site}
fixes:
  templates:
    - rule_id: navigable
      pattern: '(<a'
      replacement: y
      description: d
      impact: low
      effort: easy
`,
			wantErr: true,
			errMsg:  "compiling pattern",
		},
		{
			name: "template with bad effort",
			yaml: `project: {name: site}
fixes:
  templates:
    - rule_id: navigable
      pattern: '<a'
      replacement: y
      description: d
      impact: low
      effort: huge
`,
			wantErr: true,
			errMsg:  `invalid effort "huge"`,
		},
		{
			name: "bad impact override",
			yaml: `project: {name: site}
impact_overrides:
  adaptable: critical
`,
			wantErr: true,
			errMsg:  "impact_overrides.adaptable",
		},
		{
			name: "unknown format",
			yaml: `project: {name: site}
output:
  formats: [pdf]
`,
			wantErr: true,
			errMsg:  `unknown format "pdf"`,
		},
		{
			name: "relative endpoint",
			yaml: `project: {name: site}
aws:
  endpoint: localhost:4566
`,
			wantErr: true,
			errMsg:  "aws.endpoint must be an absolute URL",
		},
		{
			name:    "invalid yaml",
			yaml:    "project: [",
			wantErr: true,
			errMsg:  "parsing config YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(writeConfig(t, tt.yaml))

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, cfg)
		})
	}
}

func TestLoadConfig_Paths(t *testing.T) {
	_, err := LoadConfig("config.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config path")

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "project:\n  name: site\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"text"}, cfg.Output.Formats)
	assert.Nil(t, cfg.AWS)
	assert.False(t, cfg.Fixes.AutomatedOnly)

	cfg, err = LoadConfig(writeConfig(t, "project:\n  name: site\noutput:\n  formats: [html]\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"html"}, cfg.Output.Formats)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	registry, err := cfg.BuildRegistry()
	require.NoError(t, err)
	assert.Equal(t, fixes.DefaultRegistry().RuleIDs(), registry.RuleIDs())
}

func TestConfig_BuildRegistry(t *testing.T) {
	cfg := &Config{
		Project: ProjectConfig{Name: "site"},
		Fixes: FixesConfig{
			DisabledRules: []string{fixes.RuleDistinguishable},
			Templates: []TemplateConfig{
				{
					RuleID:      "navigable",
					Pattern:     `<a\s+href="#"`,
					Replacement: `<a href="#" role="button"`,
					Description: "Mark placeholder anchors as buttons",
					Impact:      "medium",
					Effort:      "easy",
				},
				{
					RuleID:      fixes.RuleAdaptable,
					Pattern:     `(?i)<td\b`,
					Replacement: `<td role="cell"`,
					Description: "Add cell roles",
					Impact:      "low",
					Effort:      "easy",
					Automated:   true,
				},
			},
		},
	}

	registry, err := cfg.BuildRegistry()
	require.NoError(t, err)

	assert.Equal(t, []string{fixes.RuleAdaptable, fixes.RuleKeyboardAccessible, "navigable", fixes.RuleTextAlternatives}, registry.RuleIDs())
	require.Len(t, registry.Templates(fixes.RuleAdaptable), 2)
	assert.Equal(t, "Add semantic table roles", registry.Templates(fixes.RuleAdaptable)[0].Description)

	engine := fixes.NewEngine(registry)
	suggestions := engine.GenerateSuggestions([]models.Violation{
		{RuleID: "navigable", Code: `<a href="#">Details</a>`},
		{RuleID: fixes.RuleDistinguishable, Code: `<p style="color: #777777">x</p>`},
	})
	require.Len(t, suggestions, 1)
	assert.Equal(t, `<a href="#" role="button">Details</a>`, suggestions[0].After)
	assert.False(t, suggestions[0].Automated)
}

func TestConfig_Suppressions(t *testing.T) {
	cfg := &Config{Suppressions: []string{"heading-order", "distinguishable"}}

	violations := []models.Violation{
		{RuleID: "navigable", SourceRule: "heading-order", Code: "<h3>"},
		{RuleID: "distinguishable", SourceRule: "color-contrast", Code: "<p>"},
		{RuleID: "text-alternatives", SourceRule: "image-alt", Code: "<img>"},
	}

	suppressed, reason := cfg.IsSuppressed(violations[0])
	assert.True(t, suppressed)
	assert.Equal(t, "Scanner rule heading-order is suppressed", reason)

	suppressed, reason = cfg.IsSuppressed(violations[1])
	assert.True(t, suppressed)
	assert.Equal(t, "Rule distinguishable is suppressed", reason)

	suppressed, _ = cfg.IsSuppressed(violations[2])
	assert.False(t, suppressed)

	kept, dropped := cfg.FilterViolations(violations)
	assert.Equal(t, 2, dropped)
	require.Len(t, kept, 1)
	assert.Equal(t, "text-alternatives", kept[0].RuleID)
}

func TestConfig_Catalog(t *testing.T) {
	cfg := &Config{RuleAliases: map[string]string{"image-alt": "custom"}}

	mapping, ok := cfg.Catalog().Lookup("image-alt")
	require.True(t, ok)
	assert.Equal(t, "custom", mapping.Guideline)

	mapping, _ = Default().Catalog().Lookup("image-alt")
	assert.Equal(t, "text-alternatives", mapping.Guideline)
}

func TestConfig_ImpactOverrides(t *testing.T) {
	cfg := &Config{ImpactOverrides: map[string]string{"adaptable": "low"}}

	impact, ok := cfg.GetImpactOverride("adaptable")
	assert.True(t, ok)
	assert.Equal(t, models.ImpactLow, impact)

	_, ok = Default().GetImpactOverride("adaptable")
	assert.False(t, ok)

	in := []models.FixSuggestion{
		{ID: "adaptable-0", ViolationID: "adaptable", Impact: models.ImpactMedium},
		{ID: "text-alternatives-1", ViolationID: "text-alternatives", Impact: models.ImpactHigh},
	}
	out := cfg.ApplyImpactOverrides(in)
	assert.Equal(t, models.ImpactLow, out[0].Impact)
	assert.Equal(t, models.ImpactHigh, out[1].Impact)
	assert.Equal(t, models.ImpactMedium, in[0].Impact, "input is not modified")
}
