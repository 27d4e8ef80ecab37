package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/joshsymonds/tokubetsu/internal/models"
	"github.com/joshsymonds/tokubetsu/pkg/logger"
	"github.com/joshsymonds/tokubetsu/pkg/pathutil"
)

// DecisionsVersion is the only decisions file version understood.
const DecisionsVersion = "1.0"

// Decisions records which suggestions a reviewer accepted or rejected.
type Decisions struct {
	LastModified time.Time         `yaml:"last_modified"`
	Comments     map[string]string `yaml:"comments,omitempty"`
	Version      string            `yaml:"version"`
	Reviewer     string            `yaml:"reviewer,omitempty"`
	Document     string            `yaml:"document,omitempty"`
	Accepted     []Decision        `yaml:"accepted"`
	Rejected     []Decision        `yaml:"rejected"`
	Pending      []Decision        `yaml:"pending,omitempty"`
}

// Decision is a single review verdict. Suggestion ids follow generation
// order, so a verdict only holds for a suggestion with the same id and the
// same Before/After rewrite.
type Decision struct {
	DecidedAt    time.Time `yaml:"decided_at"`
	SuggestionID string    `yaml:"suggestion_id"`
	Before       string    `yaml:"before"`
	After        string    `yaml:"after"`
	Reason       string    `yaml:"reason,omitempty"`
}

// NewDecision records a verdict on s.
func NewDecision(s models.FixSuggestion, decidedAt time.Time) Decision {
	return Decision{
		DecidedAt:    decidedAt,
		SuggestionID: s.ID,
		Before:       s.Before,
		After:        s.After,
	}
}

// Matches reports whether the decision was made on this exact suggestion.
func (dec Decision) Matches(s models.FixSuggestion) bool {
	return dec.SuggestionID == s.ID && dec.Before == s.Before && dec.After == s.After
}

// NewDecisions builds a decisions record from a finished review. Suggestions
// in neither list are left undecided.
func NewDecisions(document string, accepted, rejected []models.FixSuggestion) *Decisions {
	now := time.Now()
	d := &Decisions{
		Version:  DecisionsVersion,
		Document: document,
		Reviewer: os.Getenv("USER"),
	}
	for _, s := range accepted {
		d.Accepted = append(d.Accepted, NewDecision(s, now))
	}
	for _, s := range rejected {
		d.Rejected = append(d.Rejected, NewDecision(s, now))
	}
	return d
}

// LoadDecisions loads review decisions from a YAML file.
func LoadDecisions(path string) (*Decisions, error) {
	validPath, err := pathutil.ValidatePath(path, ".yaml", ".yml")
	if err != nil {
		return nil, fmt.Errorf("invalid decisions path: %w", err)
	}

	data, err := os.ReadFile(validPath) // #nosec G304 - path is validated
	if err != nil {
		return nil, fmt.Errorf("reading decisions file: %w", err)
	}

	var d Decisions
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parsing decisions YAML: %w", err)
	}

	if d.Version != DecisionsVersion {
		return nil, fmt.Errorf("unsupported decisions version: %s", d.Version)
	}

	seen := make(map[string]bool)
	for _, dec := range append(append([]Decision{}, d.Accepted...), d.Rejected...) {
		if dec.SuggestionID == "" {
			return nil, fmt.Errorf("decision missing suggestion_id")
		}
		if dec.Before == "" {
			return nil, fmt.Errorf("decision for suggestion %s missing before", dec.SuggestionID)
		}
		if seen[dec.SuggestionID] {
			return nil, fmt.Errorf("conflicting decisions for suggestion %s", dec.SuggestionID)
		}
		seen[dec.SuggestionID] = true
	}

	return &d, nil
}

// SaveDecisions writes decisions to a YAML file.
func SaveDecisions(path string, d *Decisions) error {
	d.LastModified = time.Now()
	if d.Version == "" {
		d.Version = DecisionsVersion
	}

	data, err := yaml.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshaling decisions: %w", err)
	}

	validPath, err := pathutil.ValidatePath(path, ".yaml", ".yml")
	if err != nil {
		return fmt.Errorf("invalid decisions path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(validPath), 0o750); err != nil {
		return fmt.Errorf("creating decisions directory: %w", err)
	}
	if err := os.WriteFile(validPath, data, 0o600); err != nil {
		return fmt.Errorf("writing decisions file: %w", err)
	}

	return nil
}

// Apply splits suggestions by verdict, preserving their order. Accepted
// suggestions are returned for application; rejected ones become outcomes.
// Undecided suggestions, and suggestions whose decision was made on a
// different rewrite, are returned in neither list.
func (d *Decisions) Apply(suggestions []models.FixSuggestion, log logger.Logger) ([]models.FixSuggestion, []models.ApplyOutcome) {
	accepted := make(map[string]Decision, len(d.Accepted))
	for _, dec := range d.Accepted {
		accepted[dec.SuggestionID] = dec
	}
	rejected := make(map[string]Decision, len(d.Rejected))
	for _, dec := range d.Rejected {
		rejected[dec.SuggestionID] = dec
	}

	var keep []models.FixSuggestion
	var outcomes []models.ApplyOutcome
	undecided, stale := 0, 0

	for _, s := range suggestions {
		dec, isAccepted := accepted[s.ID]
		decided := isAccepted
		if !decided {
			dec, decided = rejected[s.ID]
		}

		switch {
		case !decided:
			undecided++
			log.Debug("Suggestion has no review decision", "suggestion_id", s.ID)
		case !dec.Matches(s):
			stale++
			log.Warn("Review decision is stale, suggestion not applied",
				"suggestion_id", s.ID,
				"decided_before", dec.Before,
				"before", s.Before)
		case isAccepted:
			keep = append(keep, s)
		default:
			reason := models.ReasonRejected
			if dec.Reason != "" {
				reason = reason + ": " + dec.Reason
			}
			outcomes = append(outcomes, models.ApplyOutcome{SuggestionID: s.ID, Reason: reason})
		}
	}

	log.Info("Applied review decisions",
		"total_suggestions", len(suggestions),
		"accepted", len(keep),
		"rejected", len(outcomes),
		"stale", stale,
		"undecided", undecided)

	return keep, outcomes
}
