// Package suggest implements the suggest command.
package suggest

import (
	"github.com/spf13/cobra"

	"github.com/joshsymonds/tokubetsu/internal/app"
	"github.com/joshsymonds/tokubetsu/pkg/logger"
)

// NewSuggestCommand creates the suggest command.
func NewSuggestCommand(opts *app.Options) *cobra.Command {
	var (
		formats       []string
		output        string
		document      string
		automatedOnly bool
	)

	cmd := &cobra.Command{
		Use:   "suggest <violations>",
		Short: "Suggest fixes for accessibility violations",
		Long: `Generate fix suggestions for the violations in an axe-core results file or
a YAML/JSON list of violations keyed by WCAG guideline.

Suppressed rules from the configuration are skipped. The report is written in
every requested format; with several formats and --output, each format is
written to the output path plus its extension.`,
		Example: `  tokubetsu suggest results.json
  tokubetsu suggest violations.yaml --format json --format yaml --output reports/fixes
  tokubetsu suggest results.json --automated-only`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			a, err := app.Load(*opts, logger.GetGlobalLogger())
			if err != nil {
				return err
			}

			violations, suppressed, err := a.LoadViolations(args[0])
			if err != nil {
				return err
			}

			data := a.NewReport()
			data.Document = document
			data.Violations = violations
			data.Suppressed = suppressed
			data.Suggestions = a.Suggest(violations, automatedOnly)

			return a.WriteReports(data, a.Formats(formats), output)
		},
	}

	cmd.Flags().StringSliceVarP(&formats, "format", "f", nil, "Report format (text, json, yaml, html); repeatable")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path (default: stdout)")
	cmd.Flags().StringVar(&document, "document", "", "Document the violations were found in, shown in reports")
	cmd.Flags().BoolVar(&automatedOnly, "automated-only", false, "Only suggest fixes that are safe to apply without review")

	return cmd
}
