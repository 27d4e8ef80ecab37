// Package apply implements the apply command.
package apply

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/joshsymonds/tokubetsu/internal/app"
	"github.com/joshsymonds/tokubetsu/internal/models"
	"github.com/joshsymonds/tokubetsu/internal/report"
	"github.com/joshsymonds/tokubetsu/internal/ui/style"
	"github.com/joshsymonds/tokubetsu/pkg/logger"
)

// NewApplyCommand creates the apply command.
func NewApplyCommand(opts *app.Options) *cobra.Command {
	var (
		output        string
		decisionsFile string
		formats       []string
		reportOutput  string
		dryRun        bool
		includeManual bool
	)

	cmd := &cobra.Command{
		Use:   "apply <violations> <document>",
		Short: "Apply suggested fixes to a document",
		Long: `Generate fix suggestions for the violations and apply them, in order, to a
document on disk or in S3 (s3://bucket/key).

Only automated suggestions are applied unless --include-manual is set. With
--decisions, exactly the suggestions accepted in a saved review are applied.
The document is rewritten in place unless --output is given.`,
		Example: `  tokubetsu apply results.json site/index.html --dry-run
  tokubetsu apply results.json s3://site-bucket/index.html
  tokubetsu apply violations.yaml index.html --decisions review.yaml --output fixed.html`,
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
			suggestions := a.Suggest(violations, false)

			selected := suggestions
			var rejected []models.ApplyOutcome
			manual := includeManual
			if decisionsFile != "" {
				decisions, err := report.LoadDecisions(decisionsFile)
				if err != nil {
					return err
				}
				selected, rejected = decisions.Apply(suggestions, log)
				manual = true
			}

			result, err := a.Apply(cmd.Context(), args[1], selected, app.ApplyOptions{
				Output:        output,
				DryRun:        dryRun,
				IncludeManual: manual,
			})
			if err != nil {
				return err
			}

			if dryRun {
				PrintChanges(cmd.OutOrStdout(), suggestions, result.Outcomes)
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
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would change without writing the document")
	cmd.Flags().BoolVar(&includeManual, "include-manual", false, "Also apply suggestions that need manual review")
	cmd.Flags().StringVar(&decisionsFile, "decisions", "", "Review decisions file; apply only accepted suggestions")
	cmd.Flags().StringSliceVarP(&formats, "format", "f", nil, "Report format (text, json, yaml, html); repeatable")
	cmd.Flags().StringVar(&reportOutput, "report", "", "Report output path (default: stdout)")

	return cmd
}

// PrintChanges writes a before/after summary of applied suggestions.
func PrintChanges(w io.Writer, suggestions []models.FixSuggestion, outcomes []models.ApplyOutcome) {
	applied := make(map[string]bool, len(outcomes))
	for _, o := range outcomes {
		applied[o.SuggestionID] = o.Applied
	}

	count := 0
	for _, s := range suggestions {
		if !applied[s.ID] {
			continue
		}
		count++
		fmt.Fprintf(w, "%s %s\n", style.Bold.Render(s.ID), s.Description)
		fmt.Fprintln(w, style.Removed.Render("- "+s.Before))
		fmt.Fprintln(w, style.Added.Render("+ "+s.After))
		fmt.Fprintln(w)
	}

	if count == 0 {
		fmt.Fprintln(w, style.Gray.Render("No changes would be made"))
		return
	}
	fmt.Fprintf(w, "%d change(s) would be made\n", count)
}
