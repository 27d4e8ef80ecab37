// Package review implements the interactive review command.
package review

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshsymonds/tokubetsu/internal/app"
	"github.com/joshsymonds/tokubetsu/internal/models"
	"github.com/joshsymonds/tokubetsu/internal/report"
	reviewui "github.com/joshsymonds/tokubetsu/internal/ui/review"
	"github.com/joshsymonds/tokubetsu/pkg/logger"
)

// NewReviewCommand creates the review command.
func NewReviewCommand(opts *app.Options) *cobra.Command {
	var (
		output        string
		saveDecisions string
		formats       []string
		reportOutput  string
		dryRun        bool
		automatedOnly bool
		historySize   int
	)

	cmd := &cobra.Command{
		Use:   "review <violations> <document>",
		Short: "Interactively review suggestions before applying them",
		Long: `Walk through each fix suggestion in the terminal and accept or skip it.

Keys: a/y accept, s/n skip, u undo, q quit. Accepted suggestions are applied
to the document when the review ends, including ones that need manual
review. Quitting early applies what was accepted so far.`,
		Example: `  tokubetsu review results.json site/index.html
  tokubetsu review results.json index.html --save-decisions review.yaml --dry-run`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.GetGlobalLogger()
			a, err := app.Load(*opts, log)
			if err != nil {
				return err
			}

			violations, suppressed, err := a.LoadViolations(args[0])
			if err != nil {
				return err
			}
			suggestions := a.Suggest(violations, automatedOnly)
			if len(suggestions) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No fixes suggested")
				return nil
			}

			model, err := reviewui.Run(cmd.Context(), suggestions, reviewui.Options{
				Document:    args[1],
				HistorySize: historySize,
				AltScreen:   true,
			})
			if err != nil {
				return err
			}

			accepted := model.Accepted()
			skipped := model.Skipped()
			log.Info("Review finished",
				"accepted", len(accepted),
				"skipped", len(skipped),
				"stopped", model.Stopped())

			if saveDecisions != "" {
				if err := report.SaveDecisions(saveDecisions, report.NewDecisions(args[1], accepted, skipped)); err != nil {
					return err
				}
				log.Info("Saved review decisions", "path", saveDecisions)
			}

			result, err := a.Apply(cmd.Context(), args[1], accepted, app.ApplyOptions{
				Output:        output,
				DryRun:        dryRun,
				IncludeManual: true,
			})
			if err != nil {
				return err
			}

			rejected := make([]models.ApplyOutcome, 0, len(skipped))
			for _, s := range skipped {
				rejected = append(rejected, models.ApplyOutcome{SuggestionID: s.ID, Reason: models.ReasonRejected})
			}

			data := a.NewReport()
			data.Document = args[1]
			data.Violations = violations
			data.Suppressed = suppressed
			data.Suggestions = suggestions
			data.Outcomes = app.OrderOutcomes(suggestions, result.Outcomes, rejected)

			return a.WriteReports(data, a.Formats(formats), reportOutput)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Where to write the fixed document (default: in place)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Review without writing the document")
	cmd.Flags().BoolVar(&automatedOnly, "automated-only", false, "Only review suggestions that are safe to apply without review")
	cmd.Flags().StringVar(&saveDecisions, "save-decisions", "", "Save accepted and skipped suggestions to a YAML file")
	cmd.Flags().IntVar(&historySize, "history", reviewui.DefaultHistorySize, "How many decisions can be undone")
	cmd.Flags().StringSliceVarP(&formats, "format", "f", nil, "Report format (text, json, yaml, html); repeatable")
	cmd.Flags().StringVar(&reportOutput, "report", "", "Report output path (default: stdout)")

	return cmd
}
