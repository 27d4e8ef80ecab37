// Package score implements the score command.
package score

import (
	"github.com/spf13/cobra"

	"github.com/joshsymonds/tokubetsu/internal/app"
	"github.com/joshsymonds/tokubetsu/internal/axe"
	"github.com/joshsymonds/tokubetsu/internal/compliance"
	"github.com/joshsymonds/tokubetsu/pkg/logger"
)

// NewScoreCommand creates the score command.
func NewScoreCommand(opts *app.Options) *cobra.Command {
	var (
		url     string
		formats []string
		output  string
	)

	cmd := &cobra.Command{
		Use:   "score <axe-results>",
		Short: "Score WCAG compliance from axe-core results",
		Long: `Compute WCAG compliance scores from an axe-core results file.

Each checked element counts once: scores are passes / (passes + violations)
per conformance level and per principle. The overall score is the mean of the
four principle scores.`,
		Example: `  tokubetsu score results.json
  tokubetsu score results.json --url https://example.com --format html --output reports/score.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			log := logger.GetGlobalLogger()
			a, err := app.Load(*opts, log)
			if err != nil {
				return err
			}

			results, err := axe.ParseFile(args[0])
			if err != nil {
				return err
			}

			target := url
			if target == "" {
				target = results.URL
			}
			if target == "" {
				target = a.Config.Project.URL
			}

			scores := compliance.NewScorerWithLogger(a.Catalog, log).Score(target, results)

			data := a.NewReport()
			data.Compliance = scores
			data.Violations, data.Suppressed = a.Config.FilterViolations(scores.Violations)

			return a.WriteReports(data, a.Formats(formats), output)
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "URL of the scanned page (default: from results or config)")
	cmd.Flags().StringSliceVarP(&formats, "format", "f", nil, "Report format (text, json, yaml, html); repeatable")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path (default: stdout)")

	return cmd
}
