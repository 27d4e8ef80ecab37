package report

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/joshsymonds/tokubetsu/internal/remediation"
	"github.com/joshsymonds/tokubetsu/pkg/logger"
)

// RemediationReporter generates YAML remediation manifests.
type RemediationReporter struct {
	logger  logger.Logger
	grouper *remediation.SuggestionGrouper
}

// NewRemediationReporter creates a new remediation reporter.
func NewRemediationReporter(log logger.Logger) *RemediationReporter {
	return &RemediationReporter{
		logger:  log,
		grouper: remediation.NewSuggestionGrouper(log),
	}
}

// Generate writes the remediation manifest for data's suggestions.
func (r *RemediationReporter) Generate(data *Data, w io.Writer) error {
	if len(data.Suggestions) == 0 {
		r.logger.Warn("No suggestions to remediate")
	}

	manifest := r.grouper.BuildManifest(data.RunID, data.Project, data.Suggestions)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(manifest); err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	return enc.Close()
}

// Name returns the format identifier.
func (r *RemediationReporter) Name() string {
	return "yaml"
}

// Description returns a human-readable description.
func (r *RemediationReporter) Description() string {
	return "YAML remediation manifest grouped by guideline"
}
