// Package config implements the config command.
package config

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshsymonds/tokubetsu/internal/app"
	"github.com/joshsymonds/tokubetsu/internal/config"
	"github.com/joshsymonds/tokubetsu/pkg/logger"
)

// NewConfigCommand creates the config command.
func NewConfigCommand(opts *app.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration commands",
	}
	cmd.AddCommand(newValidateCommand(opts))
	return cmd
}

func newValidateCommand(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:     "validate",
		Short:   "Validate a configuration file",
		Example: `  tokubetsu config validate --config tokubetsu.yaml`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.ConfigFile == "" {
				return fmt.Errorf("--config flag is required")
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "🔍 Validating configuration: %s\n\n", opts.ConfigFile)

			cfg, err := config.LoadConfig(opts.ConfigFile)
			if err != nil {
				return fmt.Errorf("configuration is invalid: %w", err)
			}

			// Templates only compile once the registry is built.
			if _, err := cfg.BuildRegistry(); err != nil {
				return fmt.Errorf("configuration is invalid: %w", err)
			}

			printValidationResults(w, cfg)

			fmt.Fprintln(w, "\n✅ Configuration is valid!")
			return nil
		},
	}
}

func printValidationResults(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, "📋 Project:")
	fmt.Fprintf(w, "   Name: %s\n", cfg.Project.Name)
	if cfg.Project.URL != "" {
		fmt.Fprintf(w, "   URL: %s\n", cfg.Project.URL)
	}

	if cfg.AWS != nil {
		fmt.Fprintln(w, "\n☁️  AWS Configuration:")
		if cfg.AWS.Region != "" {
			fmt.Fprintf(w, "   Region: %s\n", cfg.AWS.Region)
		}
		if cfg.AWS.Profile != "" {
			fmt.Fprintf(w, "   Profile: %s\n", cfg.AWS.Profile)
		}
		if cfg.AWS.Endpoint != "" {
			fmt.Fprintf(w, "   Endpoint: %s\n", cfg.AWS.Endpoint)
		}
	}

	if len(cfg.Fixes.Templates) > 0 || len(cfg.Fixes.DisabledRules) > 0 {
		fmt.Fprintln(w, "\n🔧 Fix Templates:")
		if len(cfg.Fixes.DisabledRules) > 0 {
			fmt.Fprintf(w, "   Disabled rules: %s\n", strings.Join(cfg.Fixes.DisabledRules, ", "))
		}
		for _, t := range cfg.Fixes.Templates {
			fmt.Fprintf(w, "   %s: %s\n", t.RuleID, t.Description)
		}
	}
	if cfg.Fixes.AutomatedOnly {
		fmt.Fprintln(w, "   Only automated fixes are suggested")
	}

	if len(cfg.RuleAliases) > 0 {
		fmt.Fprintf(w, "\n🔀 Rule Aliases: %d configured\n", len(cfg.RuleAliases))
		for _, rule := range sortedKeys(cfg.RuleAliases) {
			fmt.Fprintf(w, "   %s → %s\n", rule, cfg.RuleAliases[rule])
		}
	}

	if len(cfg.Suppressions) > 0 {
		fmt.Fprintf(w, "\n🔇 Suppressions: %d configured\n", len(cfg.Suppressions))
		for _, s := range cfg.Suppressions {
			logger.Debug("Suppressed rule", "rule", s)
			fmt.Fprintf(w, "   - %s\n", s)
		}
	}

	if len(cfg.ImpactOverrides) > 0 {
		fmt.Fprintf(w, "\n⚖️  Impact Overrides: %d configured\n", len(cfg.ImpactOverrides))
		for _, rule := range sortedKeys(cfg.ImpactOverrides) {
			fmt.Fprintf(w, "   %s → %s\n", rule, cfg.ImpactOverrides[rule])
		}
	}

	fmt.Fprintf(w, "\n📄 Report Formats: %s\n", strings.Join(cfg.Output.Formats, ", "))
	if cfg.Output.Path != "" {
		fmt.Fprintf(w, "   Output: %s\n", cfg.Output.Path)
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
