// Package remediation groups fix suggestions into prioritised remediation
// manifests that can be handed to developers or tooling.
package remediation

import (
	"fmt"
	"math"
	"time"

	"github.com/joshsymonds/tokubetsu/internal/models"
)

// ManifestVersion is the schema version written to manifests.
const ManifestVersion = "1.0"

// Manifest represents a complete remediation manifest.
type Manifest struct {
	GeneratedAt     time.Time        `yaml:"generated_at" json:"generated_at"`
	ManifestVersion string           `yaml:"manifest_version" json:"manifest_version"`
	RunID           string           `yaml:"run_id" json:"run_id"`
	Project         string           `yaml:"project,omitempty" json:"project,omitempty"`
	Remediations    []Remediation    `yaml:"remediations" json:"remediations"`
	Metadata        ManifestMetadata `yaml:"metadata" json:"metadata"`
}

// ManifestMetadata contains summary information about the manifest.
type ManifestMetadata struct {
	EstimatedTotalEffort   string  `yaml:"estimated_total_effort" json:"estimated_total_effort"`
	TotalSuggestions       int     `yaml:"total_suggestions" json:"total_suggestions"`
	AutomatedSuggestions   int     `yaml:"automated_suggestions" json:"automated_suggestions"`
	ActionableRemediations int     `yaml:"actionable_remediations" json:"actionable_remediations"`
	PriorityScore          float64 `yaml:"priority_score" json:"priority_score"`
}

// Remediation is every suggestion for one guideline, fixed together.
type Remediation struct {
	ID              string        `yaml:"id" json:"id"`
	RuleID          string        `yaml:"rule_id" json:"rule_id"`
	Title           string        `yaml:"title" json:"title"`
	Impact          models.Impact `yaml:"impact" json:"impact"`
	Effort          models.Effort `yaml:"effort" json:"effort"`
	EstimatedEffort string        `yaml:"estimated_effort" json:"estimated_effort"`
	SuggestionRefs  []string      `yaml:"suggestion_refs" json:"suggestion_refs"`
	Changes         []Change      `yaml:"changes" json:"changes"`
	Priority        int           `yaml:"priority" json:"priority"`
	Automated       bool          `yaml:"automated" json:"automated"`
}

// Change is a single before/after rewrite.
type Change struct {
	SuggestionID string `yaml:"suggestion_id" json:"suggestion_id"`
	Description  string `yaml:"description" json:"description"`
	Before       string `yaml:"before" json:"before"`
	After        string `yaml:"after" json:"after"`
}

// Group represents suggestions that can be fixed together.
type Group struct {
	RuleID          string
	Suggestions     []models.FixSuggestion
	Priority        int
	EstimatedEffort time.Duration
}

// Priority levels for remediations.
const (
	PriorityUrgent   = 1
	PriorityHigh     = 2
	PriorityMedium   = 3
	PriorityLow      = 4
	PriorityDeferred = 5
)

// EstimateEffort converts a duration to a human-readable effort string.
func EstimateEffort(d time.Duration) string {
	switch {
	case d < 15*time.Minute:
		return "under 15 minutes"
	case d < 30*time.Minute:
		return "15-30 minutes"
	case d < time.Hour:
		return "30-60 minutes"
	case d < 2*time.Hour:
		return "1-2 hours"
	case d < 4*time.Hour:
		return "2-4 hours"
	case d < 8*time.Hour:
		return "4-8 hours"
	default:
		days := int(d.Hours() / 8)
		return fmt.Sprintf("%d+ days", days)
	}
}

// CalculatePriorityScore scores a set of remediations from 0 to 10, weighing
// impact and the number of suggestions each addresses.
func CalculatePriorityScore(remediations []Remediation) float64 {
	if len(remediations) == 0 {
		return 0.0
	}

	var totalScore float64
	for _, rem := range remediations {
		score := impactScore(rem.Impact) * (1 + float64(len(rem.SuggestionRefs))*0.1)
		totalScore += score
	}

	avgScore := totalScore / float64(len(remediations))
	return math.Min(avgScore, 10.0)
}

func impactScore(impact models.Impact) float64 {
	switch impact {
	case models.ImpactHigh:
		return 7.5
	case models.ImpactMedium:
		return 5.0
	case models.ImpactLow:
		return 2.5
	default:
		return 0.0
	}
}
