package fixes

import (
	"context"
	"fmt"
	"strings"

	"github.com/joshsymonds/tokubetsu/internal/models"
)

// Engine generates and applies fix suggestions.
// It is safe for concurrent use; it holds no mutable state.
type Engine struct {
	registry *Registry
}

// NewEngine creates an engine over a snapshot of registry.
// A nil registry selects DefaultRegistry.
func NewEngine(registry *Registry) *Engine {
	if registry == nil {
		return &Engine{registry: DefaultRegistry()}
	}
	return &Engine{registry: registry.clone()}
}

// RuleIDs returns the rule ids the engine has templates for.
func (e *Engine) RuleIDs() []string {
	return e.registry.RuleIDs()
}

// Templates returns the templates the engine uses for ruleID.
func (e *Engine) Templates(ruleID string) []Template {
	return e.registry.Templates(ruleID)
}

// GenerateSuggestions maps violations to candidate fixes, in violation order
// then template order. Violations without templates, and templates whose fix
// would not change the snippet, contribute nothing. Suggestion ids are
// "{ruleId}-{n}" where n is the suggestion's position in the result.
func (e *Engine) GenerateSuggestions(violations []models.Violation) []models.FixSuggestion {
	var suggestions []models.FixSuggestion

	for _, violation := range violations {
		for _, template := range e.registry.rules[violation.RuleID] {
			after, matched := template.rewrite(violation.Code)
			if !matched || after == violation.Code {
				continue
			}

			suggestions = append(suggestions, models.FixSuggestion{
				ID:          fmt.Sprintf("%s-%d", violation.RuleID, len(suggestions)),
				ViolationID: violation.RuleID,
				Description: template.Description,
				Before:      violation.Code,
				After:       after,
				Impact:      template.Impact,
				Effort:      template.Effort,
				Automated:   template.Automated,
			})
		}
	}

	return suggestions
}

// ApplyFix replaces the first occurrence of the suggestion's Before snippet in
// document with its After snippet. When Before does not occur verbatim the
// document is returned unchanged without error.
func (e *Engine) ApplyFix(ctx context.Context, suggestion models.FixSuggestion, document string) (fixed string, err error) {
	defer func() {
		if r := recover(); r != nil {
			fixed = ""
			err = &ApplyFixError{SuggestionID: suggestion.ID, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", &ApplyFixError{SuggestionID: suggestion.ID, Err: ctxErr}
	}
	if suggestion.Before == "" {
		return "", &ApplyFixError{SuggestionID: suggestion.ID, Err: ErrEmptyBefore}
	}

	return strings.Replace(document, suggestion.Before, suggestion.After, 1), nil
}

// PreviewFix returns what document would look like with the suggestion
// applied. The caller's document is never modified.
func (e *Engine) PreviewFix(ctx context.Context, suggestion models.FixSuggestion, document string) (string, error) {
	preview, err := e.ApplyFix(ctx, suggestion, strings.Clone(document))
	if err != nil {
		return "", &PreviewFixError{SuggestionID: suggestion.ID, Err: err}
	}
	return preview, nil
}

// ApplySuggestions applies suggestions one after another, each against the
// result of the previous one. On error the original document is returned
// together with the outcomes recorded so far.
func (e *Engine) ApplySuggestions(ctx context.Context, suggestions []models.FixSuggestion, document string) (string, []models.ApplyOutcome, error) {
	outcomes := make([]models.ApplyOutcome, 0, len(suggestions))
	current := document

	for _, s := range suggestions {
		if s.Before != "" && !strings.Contains(current, s.Before) {
			outcomes = append(outcomes, models.ApplyOutcome{
				SuggestionID: s.ID,
				Reason:       models.ReasonNotFound,
			})
			continue
		}

		fixed, err := e.ApplyFix(ctx, s, current)
		if err != nil {
			return document, outcomes, err
		}
		current = fixed
		outcomes = append(outcomes, models.ApplyOutcome{
			SuggestionID: s.ID,
			Reason:       models.ReasonApplied,
			Applied:      true,
		})
	}

	return current, outcomes, nil
}

// FilterAutomated returns the suggestions that are safe to apply without review.
func FilterAutomated(suggestions []models.FixSuggestion) []models.FixSuggestion {
	var out []models.FixSuggestion
	for _, s := range suggestions {
		if s.Automated {
			out = append(out, s)
		}
	}
	return out
}
