package fixes

import (
	"errors"
	"fmt"
)

// ErrEmptyBefore is returned for suggestions with no original snippet.
// Replacing an empty string would insert text at the start of the document.
var ErrEmptyBefore = errors.New("suggestion has an empty before snippet")

var errRuleIDRequired = errors.New("rule id is required")

// TemplateError reports a template that could not be registered.
type TemplateError struct {
	Err    error
	RuleID string
	Index  int
}

// Error implements the error interface.
func (e *TemplateError) Error() string {
	return fmt.Sprintf("template %d for rule %q: %v", e.Index, e.RuleID, e.Err)
}

// Unwrap returns the underlying error.
func (e *TemplateError) Unwrap() error {
	return e.Err
}

// ApplyFixError reports an unexpected failure while applying a suggestion.
// A snippet that is missing from the document is not an error.
type ApplyFixError struct {
	Err          error
	SuggestionID string
}

// Error implements the error interface.
func (e *ApplyFixError) Error() string {
	return fmt.Sprintf("failed to apply fix %s: %v", e.SuggestionID, e.Err)
}

// Unwrap returns the underlying error.
func (e *ApplyFixError) Unwrap() error {
	return e.Err
}

// PreviewFixError reports a failure while previewing a suggestion.
type PreviewFixError struct {
	Err          error
	SuggestionID string
}

// Error implements the error interface.
func (e *PreviewFixError) Error() string {
	return fmt.Sprintf("failed to preview fix %s: %v", e.SuggestionID, e.Err)
}

// Unwrap returns the underlying error.
func (e *PreviewFixError) Unwrap() error {
	return e.Err
}

// IsApplyError checks if err is or wraps an ApplyFixError.
func IsApplyError(err error) bool {
	var target *ApplyFixError
	return errors.As(err, &target)
}

// IsPreviewError checks if err is or wraps a PreviewFixError.
func IsPreviewError(err error) bool {
	var target *PreviewFixError
	return errors.As(err, &target)
}
