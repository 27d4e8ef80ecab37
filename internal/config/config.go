// Package config provides configuration loading and validation for tokubetsu.
package config

import (
	"fmt"
	"net/url"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/joshsymonds/tokubetsu/internal/compliance"
	"github.com/joshsymonds/tokubetsu/internal/fixes"
	"github.com/joshsymonds/tokubetsu/internal/models"
	"github.com/joshsymonds/tokubetsu/internal/report"
	"github.com/joshsymonds/tokubetsu/pkg/pathutil"
)

// Config represents the complete configuration for a project.
type Config struct {
	RuleAliases     map[string]string `yaml:"rule_aliases,omitempty"`
	ImpactOverrides map[string]string `yaml:"impact_overrides,omitempty"`
	AWS             *AWSConfig        `yaml:"aws,omitempty"`
	Project         ProjectConfig     `yaml:"project"`
	Output          OutputConfig      `yaml:"output,omitempty"`
	Suppressions    []string          `yaml:"suppressions,omitempty"`
	Fixes           FixesConfig       `yaml:"fixes,omitempty"`
}

// ProjectConfig identifies the site being remediated.
type ProjectConfig struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url,omitempty"`
}

// FixesConfig tunes the fix template registry.
type FixesConfig struct {
	DisabledRules []string         `yaml:"disabled_rules,omitempty"`
	Templates     []TemplateConfig `yaml:"templates,omitempty"`
	AutomatedOnly bool             `yaml:"automated_only,omitempty"`
}

// TemplateConfig declares an extra regexp template for a guideline.
type TemplateConfig struct {
	RuleID      string `yaml:"rule_id"`
	Pattern     string `yaml:"pattern"`
	Replacement string `yaml:"replacement"`
	Description string `yaml:"description"`
	Impact      string `yaml:"impact"`
	Effort      string `yaml:"effort"`
	Automated   bool   `yaml:"automated,omitempty"`
}

// OutputConfig selects report formats and where they are written.
type OutputConfig struct {
	Formats []string `yaml:"formats,omitempty"`
	Path    string   `yaml:"path,omitempty"`
}

// AWSConfig configures access to S3-hosted documents.
type AWSConfig struct {
	Region       string `yaml:"region,omitempty"`
	Profile      string `yaml:"profile,omitempty"`
	Endpoint     string `yaml:"endpoint,omitempty"` // S3-compatible endpoint, e.g. LocalStack or MinIO
	UsePathStyle bool   `yaml:"use_path_style,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Project: ProjectConfig{Name: "default"},
		Output:  OutputConfig{Formats: []string{"text"}},
	}
}

// LoadConfig reads and parses a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	validPath, err := pathutil.ValidateConfigPath(path)
	if err != nil {
		return nil, fmt.Errorf("invalid config path: %w", err)
	}

	data, err := os.ReadFile(validPath) //nolint:gosec // Path is validated above
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Validate ensures the configuration is valid.
func (c *Config) Validate() error {
	if c.Project.Name == "" {
		return fmt.Errorf("project.name is required")
	}

	for i, t := range c.Fixes.Templates {
		if t.RuleID == "" {
			return fmt.Errorf("fixes.templates[%d].rule_id is required", i)
		}
		if _, err := t.template(); err != nil {
			return fmt.Errorf("fixes.templates[%d]: %w", i, err)
		}
	}

	for ruleID, impact := range c.ImpactOverrides {
		if !models.IsValidImpact(models.Impact(impact)) {
			return fmt.Errorf("impact_overrides.%s: invalid impact %q", ruleID, impact)
		}
	}

	for _, format := range c.Output.Formats {
		if !slices.Contains(report.ListFormats(), format) {
			return fmt.Errorf("output.formats: unknown format %q", format)
		}
	}

	if c.AWS != nil && c.AWS.Endpoint != "" {
		u, err := url.Parse(c.AWS.Endpoint)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("aws.endpoint must be an absolute URL, got %q", c.AWS.Endpoint)
		}
	}

	return nil
}

func (t TemplateConfig) template() (fixes.Template, error) {
	tmpl, err := fixes.NewReplacementTemplate(t.Pattern, t.Replacement, t.Description,
		models.Impact(t.Impact), models.Effort(t.Effort), t.Automated)
	if err != nil {
		return fixes.Template{}, err
	}
	if err := tmpl.Validate(); err != nil {
		return fixes.Template{}, err
	}
	return tmpl, nil
}

// BuildRegistry returns the built-in templates minus disabled rules, followed
// by the templates declared in configuration.
func (c *Config) BuildRegistry() (*fixes.Registry, error) {
	registry := fixes.DefaultRegistry()
	registry.Remove(c.Fixes.DisabledRules...)

	for i, t := range c.Fixes.Templates {
		tmpl, err := t.template()
		if err != nil {
			return nil, fmt.Errorf("fixes.templates[%d]: %w", i, err)
		}
		if err := registry.Register(t.RuleID, tmpl); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// Catalog returns the scanner rule catalog with configured aliases applied.
func (c *Config) Catalog() *compliance.Catalog {
	catalog := compliance.DefaultCatalog()
	if len(c.RuleAliases) == 0 {
		return catalog
	}
	return catalog.WithAliases(c.RuleAliases)
}

// IsSuppressed checks if a violation should be ignored. Suppressions match
// either the guideline slug or the scanner rule id.
func (c *Config) IsSuppressed(v models.Violation) (bool, string) {
	for _, s := range c.Suppressions {
		switch s {
		case v.RuleID:
			return true, fmt.Sprintf("Rule %s is suppressed", v.RuleID)
		case v.SourceRule:
			return true, fmt.Sprintf("Scanner rule %s is suppressed", v.SourceRule)
		}
	}
	return false, ""
}

// FilterViolations drops suppressed violations and reports how many were dropped.
func (c *Config) FilterViolations(violations []models.Violation) ([]models.Violation, int) {
	kept := make([]models.Violation, 0, len(violations))
	for _, v := range violations {
		if suppressed, _ := c.IsSuppressed(v); suppressed {
			continue
		}
		kept = append(kept, v)
	}
	return kept, len(violations) - len(kept)
}

// GetImpactOverride returns the overridden impact for a guideline, if any.
func (c *Config) GetImpactOverride(ruleID string) (models.Impact, bool) {
	if c.ImpactOverrides == nil {
		return "", false
	}
	impact, ok := c.ImpactOverrides[ruleID]
	return models.Impact(impact), ok
}

// ApplyImpactOverrides returns suggestions with configured impacts applied.
func (c *Config) ApplyImpactOverrides(suggestions []models.FixSuggestion) []models.FixSuggestion {
	out := make([]models.FixSuggestion, len(suggestions))
	for i, s := range suggestions {
		if impact, ok := c.GetImpactOverride(s.ViolationID); ok {
			s.Impact = impact
		}
		out[i] = s
	}
	return out
}
