package app

import (
	"context"
	"fmt"
	"time"

	"github.com/joshsymonds/tokubetsu/internal/document"
	"github.com/joshsymonds/tokubetsu/internal/models"
)

const maxAttempts = 3

// ApplyOptions controls Apply.
type ApplyOptions struct {
	// Output is where the fixed document is written. Empty means in place.
	Output string
	// DryRun computes the result without writing it.
	DryRun bool
	// IncludeManual applies suggestions that need review as well.
	IncludeManual bool
}

// ApplyResult describes one apply run.
type ApplyResult struct {
	Original string
	Fixed    string
	Written  string
	Outcomes []models.ApplyOutcome
}

// Changed reports whether any suggestion altered the document.
func (r *ApplyResult) Changed() bool {
	return r.Original != r.Fixed
}

// Apply reads the document at uri, applies suggestions in order and writes
// the result. Suggestions that need manual review are skipped unless
// opts.IncludeManual is set. Outcomes follow the order of suggestions.
func (a *App) Apply(ctx context.Context, uri string, suggestions []models.FixSuggestion, opts ApplyOptions) (*ApplyResult, error) {
	src, err := a.OpenDocument(ctx, uri)
	if err != nil {
		return nil, err
	}

	log := a.Logger.With("document", src.Location())

	var original string
	err = a.retry(ctx, func() error {
		var readErr error
		original, readErr = src.Read(ctx)
		return readErr
	})
	if err != nil {
		return nil, err
	}

	var selected []models.FixSuggestion
	var skipped []models.ApplyOutcome
	for _, s := range suggestions {
		if !s.Automated && !opts.IncludeManual {
			skipped = append(skipped, models.ApplyOutcome{SuggestionID: s.ID, Reason: models.ReasonNotAutomated})
			continue
		}
		selected = append(selected, s)
	}

	fixed, applied, err := a.Engine.ApplySuggestions(ctx, selected, original)
	if err != nil {
		return nil, err
	}

	result := &ApplyResult{
		Original: original,
		Fixed:    fixed,
		Outcomes: OrderOutcomes(suggestions, applied, skipped),
	}

	if opts.DryRun {
		log.Info("Dry run, document not written", "suggestions", len(suggestions), "selected", len(selected))
		return result, nil
	}
	if !result.Changed() {
		log.Info("No changes to write")
		return result, nil
	}

	dst := src
	if opts.Output != "" {
		dst, err = a.OpenDocument(ctx, opts.Output)
		if err != nil {
			return nil, err
		}
	}

	if err := a.retry(ctx, func() error { return dst.Write(ctx, fixed) }); err != nil {
		return nil, err
	}
	result.Written = dst.Location()

	log.Info("Wrote fixed document", "output", result.Written, "selected", len(selected))
	return result, nil
}

// retry runs fn until it succeeds, fails with a non-retryable error, or
// maxAttempts is reached.
func (a *App) retry(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err = fn(); err == nil || !document.IsRetryable(err) {
			return err
		}
		if attempt == maxAttempts {
			break
		}

		a.Logger.Warn("Retrying document operation", "attempt", attempt, "delay", a.retryDelay, "error", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(a.retryDelay):
		}
	}
	return fmt.Errorf("giving up after %d attempts: %w", maxAttempts, err)
}

// OrderOutcomes merges outcome lists into the order of suggestions.
// Suggestions without an outcome are left out.
func OrderOutcomes(suggestions []models.FixSuggestion, lists ...[]models.ApplyOutcome) []models.ApplyOutcome {
	byID := make(map[string]models.ApplyOutcome)
	for _, list := range lists {
		for _, o := range list {
			byID[o.SuggestionID] = o
		}
	}

	ordered := make([]models.ApplyOutcome, 0, len(byID))
	for _, s := range suggestions {
		if o, ok := byID[s.ID]; ok {
			ordered = append(ordered, o)
		}
	}
	return ordered
}
