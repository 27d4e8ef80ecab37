// Package report implements the report command, which re-renders a saved
// JSON report in other formats.
package report

import (
	"github.com/spf13/cobra"

	"github.com/joshsymonds/tokubetsu/internal/app"
	"github.com/joshsymonds/tokubetsu/internal/report"
	"github.com/joshsymonds/tokubetsu/pkg/logger"
)

// NewReportCommand creates the report command.
func NewReportCommand(opts *app.Options) *cobra.Command {
	var (
		formats       []string
		output        string
		decisionsFile string
	)

	cmd := &cobra.Command{
		Use:   "report <report.json>",
		Short: "Render a saved JSON report in other formats",
		Example: `  tokubetsu suggest results.json --format json --output reports/run.json
  tokubetsu report reports/run.json --format html --output reports/run.html
  tokubetsu report reports/run.json --decisions review.yaml --format yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			log := logger.GetGlobalLogger()
			a, err := app.Load(*opts, log)
			if err != nil {
				return err
			}

			data, err := report.LoadData(args[0])
			if err != nil {
				return err
			}

			if decisionsFile != "" {
				decisions, err := report.LoadDecisions(decisionsFile)
				if err != nil {
					return err
				}
				data.Suggestions, _ = decisions.Apply(data.Suggestions, log)
			}

			return a.WriteReports(data, a.Formats(formats), output)
		},
	}

	cmd.Flags().StringSliceVarP(&formats, "format", "f", nil, "Report format (text, json, yaml, html); repeatable")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path (default: stdout)")
	cmd.Flags().StringVar(&decisionsFile, "decisions", "", "Only keep suggestions accepted in this decisions file")

	return cmd
}
