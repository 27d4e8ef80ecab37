// Package fixes turns accessibility violations into concrete HTML rewrites.
//
// A Registry maps rule identifiers to ordered Templates. Each Template pairs a
// regular expression, used to find the offending construct inside a
// violation's snippet, with a pure function that produces the replacement for
// the matched span. An Engine runs a registry snapshot over violations to
// produce FixSuggestions and applies accepted suggestions to documents.
package fixes

import (
	"fmt"
	"regexp"

	"github.com/joshsymonds/tokubetsu/internal/models"
)

// Match is a single pattern match inside a violation snippet.
type Match struct {
	// Text is the matched span.
	Text string
	// Snippet is the complete violation snippet the match was found in.
	Snippet string
	// Groups holds the submatches; Groups[0] == Text.
	Groups []string
	// Index holds submatch byte offsets into Snippet, as returned by
	// regexp.FindStringSubmatchIndex.
	Index []int
}

// FixFunc computes the replacement for a matched span. It must be pure:
// returning m.Text unchanged means the template has nothing to fix.
type FixFunc func(m Match) string

// Template describes how to remediate one class of violation.
type Template struct {
	Pattern     *regexp.Regexp
	Fix         FixFunc
	Description string
	Impact      models.Impact
	Effort      models.Effort
	Automated   bool
}

// Validate reports whether the template can be registered.
func (t Template) Validate() error {
	if t.Pattern == nil {
		return fmt.Errorf("pattern is required")
	}
	if t.Fix == nil {
		return fmt.Errorf("fix function is required")
	}
	if t.Description == "" {
		return fmt.Errorf("description is required")
	}
	if !models.IsValidImpact(t.Impact) {
		return fmt.Errorf("invalid impact %q", t.Impact)
	}
	if !models.IsValidEffort(t.Effort) {
		return fmt.Errorf("invalid effort %q", t.Effort)
	}
	return nil
}

// rewrite replaces the first match of the template pattern in snippet with
// the fix output. ok is false when the pattern does not match.
func (t Template) rewrite(snippet string) (after string, ok bool) {
	loc := t.Pattern.FindStringSubmatchIndex(snippet)
	if loc == nil {
		return snippet, false
	}

	groups := make([]string, len(loc)/2)
	for i := range groups {
		if start, end := loc[2*i], loc[2*i+1]; start >= 0 {
			groups[i] = snippet[start:end]
		}
	}

	replacement := t.Fix(Match{
		Text:    groups[0],
		Snippet: snippet,
		Groups:  groups,
		Index:   loc,
	})
	return snippet[:loc[0]] + replacement + snippet[loc[1]:], true
}

// NewReplacementTemplate builds a template from a pattern and a regexp
// replacement string ($1, ${name}), for rules declared in configuration.
func NewReplacementTemplate(pattern, replacement, description string, impact models.Impact, effort models.Effort, automated bool) (Template, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Template{}, fmt.Errorf("compiling pattern %q: %w", pattern, err)
	}

	return Template{
		Pattern: re,
		Fix: func(m Match) string {
			return string(re.ExpandString(nil, replacement, m.Snippet, m.Index))
		},
		Description: description,
		Impact:      impact,
		Effort:      effort,
		Automated:   automated,
	}, nil
}
