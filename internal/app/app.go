// Package app wires configuration, the fix engine and document storage
// together for the command line and MCP entry points.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/joshsymonds/tokubetsu/internal/axe"
	"github.com/joshsymonds/tokubetsu/internal/compliance"
	"github.com/joshsymonds/tokubetsu/internal/config"
	"github.com/joshsymonds/tokubetsu/internal/document"
	"github.com/joshsymonds/tokubetsu/internal/fixes"
	"github.com/joshsymonds/tokubetsu/internal/models"
	"github.com/joshsymonds/tokubetsu/internal/report"
	"github.com/joshsymonds/tokubetsu/pkg/logger"
)

// Options are the global command line options.
type Options struct {
	ConfigFile string
	LogFormat  string
	Debug      bool
}

// App holds everything a command needs.
type App struct {
	Config  *config.Config
	Engine  *fixes.Engine
	Catalog *compliance.Catalog
	Logger  logger.Logger

	// documentOptions are passed to document.Open.
	documentOptions []document.Option
	retryDelay      time.Duration
}

// Load builds an App from the configuration file in opts, or from the
// default configuration when no file is given.
func Load(opts Options, log logger.Logger) (*App, error) {
	if log == nil {
		log = logger.GetGlobalLogger()
	}

	cfg := config.Default()
	if opts.ConfigFile != "" {
		var err error
		cfg, err = config.LoadConfig(opts.ConfigFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		log.Info("Loaded configuration", "config", opts.ConfigFile, "project", cfg.Project.Name)
	}

	return New(cfg, log)
}

// New builds an App from cfg.
func New(cfg *config.Config, log logger.Logger, docOpts ...document.Option) (*App, error) {
	registry, err := cfg.BuildRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to build fix templates: %w", err)
	}

	a := &App{
		Config:     cfg,
		Engine:     fixes.NewEngine(registry),
		Catalog:    cfg.Catalog(),
		Logger:     log,
		retryDelay: 500 * time.Millisecond,
	}

	if cfg.AWS != nil {
		a.documentOptions = append(a.documentOptions, document.WithS3Options(document.S3Options{
			Region:       cfg.AWS.Region,
			Profile:      cfg.AWS.Profile,
			Endpoint:     cfg.AWS.Endpoint,
			UsePathStyle: cfg.AWS.UsePathStyle,
		}))
	}
	a.documentOptions = append(a.documentOptions, docOpts...)

	return a, nil
}

// LoadViolations reads violations from an axe results file or a violation
// list and drops suppressed ones.
func (a *App) LoadViolations(path string) (kept []models.Violation, suppressed int, err error) {
	violations, err := axe.LoadViolations(path, a.Catalog)
	if err != nil {
		return nil, 0, err
	}

	kept, suppressed = a.Config.FilterViolations(violations)
	a.Logger.Info("Loaded violations",
		"path", path,
		"violations", len(violations),
		"suppressed", suppressed)
	return kept, suppressed, nil
}

// Suggest generates suggestions for violations with configured impact
// overrides applied. automatedOnly, or the matching config option, drops
// suggestions that need manual review.
func (a *App) Suggest(violations []models.Violation, automatedOnly bool) []models.FixSuggestion {
	suggestions := a.Config.ApplyImpactOverrides(a.Engine.GenerateSuggestions(violations))
	if automatedOnly || a.Config.Fixes.AutomatedOnly {
		suggestions = fixes.FilterAutomated(suggestions)
	}

	a.Logger.Info("Generated suggestions",
		"violations", len(violations),
		"suggestions", len(suggestions),
		"automated", len(fixes.FilterAutomated(suggestions)))
	return suggestions
}

// OpenDocument resolves a document URI using the configured S3 settings.
func (a *App) OpenDocument(ctx context.Context, uri string) (document.Source, error) {
	src, err := document.Open(ctx, uri, a.documentOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	return src, nil
}

// NewReport starts report data for the configured project.
func (a *App) NewReport() *report.Data {
	return report.NewData(a.Config.Project.Name)
}

// Formats returns the requested report formats, falling back to the
// configured ones.
func (a *App) Formats(requested []string) []string {
	if len(requested) > 0 {
		return requested
	}
	if len(a.Config.Output.Formats) > 0 {
		return a.Config.Output.Formats
	}
	return []string{"text"}
}

// WriteReports renders data in every format. With more than one format and
// an output path, each format is written to output plus its extension.
func (a *App) WriteReports(data *report.Data, formats []string, output string) error {
	if output == "" {
		output = a.Config.Output.Path
	}

	for _, format := range formats {
		path := output
		if path != "" && path != "-" && len(formats) > 1 {
			path = output + "." + extension(format)
		}
		if err := report.Write(format, data, path, a.Logger); err != nil {
			return err
		}
	}
	return nil
}

func extension(format string) string {
	if format == "text" {
		return "txt"
	}
	return format
}
