// Package decisions implements the decisions command.
package decisions

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/joshsymonds/tokubetsu/internal/app"
	"github.com/joshsymonds/tokubetsu/internal/fixes"
	"github.com/joshsymonds/tokubetsu/internal/models"
	"github.com/joshsymonds/tokubetsu/internal/report"
	"github.com/joshsymonds/tokubetsu/pkg/logger"
)

// NewDecisionsCommand creates the decisions command.
func NewDecisionsCommand(opts *app.Options) *cobra.Command {
	var (
		output   string
		document string
	)

	cmd := &cobra.Command{
		Use:   "decisions <violations>",
		Short: "Generate a review decisions file to edit by hand",
		Long: `Generate a review decisions file for the suggestions of a violations file.

Automated suggestions start out accepted. Suggestions that need manual review
are listed as pending with a comment describing the change; move them to the
accepted or rejected list, then pass the file to apply --decisions.

A decision only applies to a suggestion with the same id and the same
before/after rewrite. Regenerate the file when the violations change.`,
		Example: `  tokubetsu decisions results.json
  tokubetsu decisions results.json --output review/index.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.GetGlobalLogger()
			a, err := app.Load(*opts, log)
			if err != nil {
				return err
			}

			violations, _, err := a.LoadViolations(args[0])
			if err != nil {
				return err
			}
			suggestions := a.Suggest(violations, false)

			d := report.NewDecisions(document, fixes.FilterAutomated(suggestions), nil)
			d.Pending, d.Comments = pendingDecisions(suggestions)

			if err := report.SaveDecisions(output, d); err != nil {
				return fmt.Errorf("saving decisions: %w", err)
			}

			log.Info("Generated decisions file", "path", output)
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "✅ Decisions file created: %s\n\n", output)
			fmt.Fprintf(w, "%d suggestion(s) accepted, %d awaiting review\n", len(d.Accepted), len(d.Pending))
			fmt.Fprintln(w, "\nThen use with: tokubetsu apply", args[0], "<document> --decisions", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "decisions.yaml", "Output path for the decisions file")
	cmd.Flags().StringVar(&document, "document", "", "Document the decisions apply to")

	return cmd
}

func pendingDecisions(suggestions []models.FixSuggestion) ([]report.Decision, map[string]string) {
	var pending []report.Decision
	comments := make(map[string]string)
	now := time.Now()
	for _, s := range suggestions {
		if s.Automated {
			continue
		}
		pending = append(pending, report.NewDecision(s, now))
		comments[s.ID] = s.Description
	}
	return pending, comments
}
