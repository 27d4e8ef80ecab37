// Package rules implements the rules command.
package rules

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshsymonds/tokubetsu/internal/app"
	"github.com/joshsymonds/tokubetsu/internal/ui/style"
	"github.com/joshsymonds/tokubetsu/pkg/logger"
)

// NewRulesCommand creates the rules command.
func NewRulesCommand(opts *app.Options) *cobra.Command {
	var catalog bool

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List fix templates or the scanner rule catalog",
		Example: `  tokubetsu rules
  tokubetsu rules --catalog`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := app.Load(*opts, logger.GetGlobalLogger())
			if err != nil {
				return err
			}

			var table style.Table
			if catalog {
				table = catalogTable(a)
			} else {
				table = templateTable(a)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), table.Render())
			return err
		},
	}

	cmd.Flags().BoolVar(&catalog, "catalog", false, "List scanner rules with their WCAG mapping instead of fix templates")

	return cmd
}

func templateTable(a *app.App) style.Table {
	table := style.Table{
		Headers: []string{"Rule", "Description", "Impact", "Effort", "Mode"},
		Width:   120,
	}
	for _, id := range a.Engine.RuleIDs() {
		for _, t := range a.Engine.Templates(id) {
			mode := "manual"
			if t.Automated {
				mode = "auto"
			}
			table.Rows = append(table.Rows, []string{
				id,
				t.Description,
				style.ForImpact(t.Impact).Render(string(t.Impact)),
				string(t.Effort),
				mode,
			})
		}
	}
	return table
}

func catalogTable(a *app.App) style.Table {
	table := style.Table{
		Headers: []string{"Scanner rule", "Guideline", "Level", "Criterion", "Principle"},
		Width:   120,
	}
	for _, r := range a.Catalog.Rules() {
		table.Rows = append(table.Rows, []string{r.ID, r.Guideline, r.Level, r.Criterion, r.Principle})
	}
	return table
}
