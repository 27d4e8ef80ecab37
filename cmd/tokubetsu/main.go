// Package main is the entry point for the tokubetsu CLI. tokubetsu turns
// accessibility violations reported by scanners such as axe-core into
// concrete HTML fixes, applies them to documents and scores WCAG compliance.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/joshsymonds/tokubetsu/cmd/apply"
	"github.com/joshsymonds/tokubetsu/cmd/config"
	"github.com/joshsymonds/tokubetsu/cmd/decisions"
	"github.com/joshsymonds/tokubetsu/cmd/mcp"
	"github.com/joshsymonds/tokubetsu/cmd/report"
	"github.com/joshsymonds/tokubetsu/cmd/review"
	"github.com/joshsymonds/tokubetsu/cmd/rules"
	"github.com/joshsymonds/tokubetsu/cmd/score"
	"github.com/joshsymonds/tokubetsu/cmd/suggest"
	"github.com/joshsymonds/tokubetsu/internal/app"
	"github.com/joshsymonds/tokubetsu/pkg/logger"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &app.Options{}

	root := &cobra.Command{
		Use:   "tokubetsu",
		Short: "Accessibility fix suggestion engine",
		Long: `tokubetsu turns accessibility violations into concrete HTML fixes.

It reads axe-core results (or a list of violations keyed by WCAG guideline),
suggests rewrites for the offending markup, applies the safe ones to local
or S3-hosted documents and reports WCAG compliance scores.`,
		Example: `  tokubetsu suggest results.json --format html --output reports/fixes.html
  tokubetsu apply results.json site/index.html --dry-run
  tokubetsu review results.json s3://site-bucket/index.html
  tokubetsu score results.json --url https://example.com
  tokubetsu config validate --config tokubetsu.yaml`,
		Version:       fmt.Sprintf("%s (built %s)", version, buildTime),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logger.SetupLogger(opts.Debug, opts.LogFormat)
		},
	}

	root.PersistentFlags().StringVarP(&opts.ConfigFile, "config", "c", "", "Path to config file")
	root.PersistentFlags().BoolVar(&opts.Debug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&opts.LogFormat, "log-format", "text", "Log format (text or json)")

	root.AddCommand(
		suggest.NewSuggestCommand(opts),
		apply.NewApplyCommand(opts),
		review.NewReviewCommand(opts),
		decisions.NewDecisionsCommand(opts),
		report.NewReportCommand(opts),
		score.NewScoreCommand(opts),
		rules.NewRulesCommand(opts),
		config.NewConfigCommand(opts),
		mcp.NewMCPCommand(opts, version),
	)

	return root
}
