package remediation

import (
	"sort"
	"time"

	"github.com/joshsymonds/tokubetsu/internal/models"
	"github.com/joshsymonds/tokubetsu/pkg/logger"
)

// SuggestionGrouper groups fix suggestions by guideline.
type SuggestionGrouper struct {
	logger logger.Logger
	now    func() time.Time
}

// NewSuggestionGrouper creates a new suggestion grouper.
func NewSuggestionGrouper(log logger.Logger) *SuggestionGrouper {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &SuggestionGrouper{
		logger: log,
		now:    time.Now,
	}
}

// GroupByRule groups suggestions by the guideline they fix, most urgent
// first. Suggestions keep their input order within a group.
func (g *SuggestionGrouper) GroupByRule(suggestions []models.FixSuggestion) []Group {
	var order []string
	byRule := make(map[string][]models.FixSuggestion)
	for _, s := range suggestions {
		if _, seen := byRule[s.ViolationID]; !seen {
			order = append(order, s.ViolationID)
		}
		byRule[s.ViolationID] = append(byRule[s.ViolationID], s)
	}

	groups := make([]Group, 0, len(order))
	for _, ruleID := range order {
		members := byRule[ruleID]
		groups = append(groups, Group{
			RuleID:          ruleID,
			Suggestions:     members,
			Priority:        g.calculatePriority(members),
			EstimatedEffort: g.estimateEffort(members),
		})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Priority != groups[j].Priority {
			return groups[i].Priority < groups[j].Priority
		}
		return groups[i].RuleID < groups[j].RuleID
	})

	g.logger.Debug("Grouped suggestions", "suggestions", len(suggestions), "groups", len(groups))
	return groups
}

// BuildManifest turns suggestions into a remediation manifest.
func (g *SuggestionGrouper) BuildManifest(runID, project string, suggestions []models.FixSuggestion) *Manifest {
	groups := g.GroupByRule(suggestions)

	manifest := &Manifest{
		GeneratedAt:     g.now(),
		ManifestVersion: ManifestVersion,
		RunID:           runID,
		Project:         project,
		Remediations:    make([]Remediation, 0, len(groups)),
	}

	var total time.Duration
	automated := 0
	for _, group := range groups {
		rem := g.remediationFromGroup(group)
		manifest.Remediations = append(manifest.Remediations, rem)
		total += group.EstimatedEffort
		for _, s := range group.Suggestions {
			if s.Automated {
				automated++
			}
		}
	}

	manifest.Metadata = ManifestMetadata{
		EstimatedTotalEffort:   EstimateEffort(total),
		TotalSuggestions:       len(suggestions),
		AutomatedSuggestions:   automated,
		ActionableRemediations: len(manifest.Remediations),
		PriorityScore:          CalculatePriorityScore(manifest.Remediations),
	}
	return manifest
}

func (g *SuggestionGrouper) remediationFromGroup(group Group) Remediation {
	first := group.Suggestions[0]
	rem := Remediation{
		ID:              "rem-" + group.RuleID,
		RuleID:          group.RuleID,
		Title:           first.Description,
		Impact:          first.Impact,
		Effort:          first.Effort,
		Priority:        group.Priority,
		EstimatedEffort: EstimateEffort(group.EstimatedEffort),
		Automated:       true,
	}

	for _, s := range group.Suggestions {
		if models.ImpactRank(s.Impact) < models.ImpactRank(rem.Impact) {
			rem.Impact = s.Impact
		}
		if effortRank(s.Effort) > effortRank(rem.Effort) {
			rem.Effort = s.Effort
		}
		rem.Automated = rem.Automated && s.Automated
		rem.SuggestionRefs = append(rem.SuggestionRefs, s.ID)
		rem.Changes = append(rem.Changes, Change{
			SuggestionID: s.ID,
			Description:  s.Description,
			Before:       s.Before,
			After:        s.After,
		})
	}
	return rem
}

// calculatePriority determines the priority of a remediation group.
func (g *SuggestionGrouper) calculatePriority(suggestions []models.FixSuggestion) int {
	counts := make(map[models.Impact]int)
	manual := 0
	for _, s := range suggestions {
		counts[s.Impact]++
		if !s.Automated {
			manual++
		}
	}

	switch {
	case counts[models.ImpactHigh] > 2:
		return PriorityUrgent
	case counts[models.ImpactHigh] > 0:
		return PriorityHigh
	case counts[models.ImpactMedium] > 0:
		return PriorityMedium
	case manual == len(suggestions):
		return PriorityDeferred
	default:
		return PriorityLow
	}
}

// estimateEffort estimates the time required to work through a group.
func (g *SuggestionGrouper) estimateEffort(suggestions []models.FixSuggestion) time.Duration {
	var effort time.Duration
	for _, s := range suggestions {
		effort += baseEffort(s)
	}

	scaleFactor := 1.0
	switch n := len(suggestions); {
	case n > 50:
		scaleFactor = 0.5
	case n > 10:
		scaleFactor = 0.75
	}
	return time.Duration(float64(effort) * scaleFactor)
}

// baseEffort returns the review time for one suggestion.
func baseEffort(s models.FixSuggestion) time.Duration {
	var d time.Duration
	switch s.Effort {
	case models.EffortEasy:
		d = 10 * time.Minute
	case models.EffortMedium:
		d = 45 * time.Minute
	case models.EffortComplex:
		d = 3 * time.Hour
	default:
		d = 30 * time.Minute
	}
	if s.Automated {
		d /= 5
	}
	return d
}

func effortRank(e models.Effort) int {
	switch e {
	case models.EffortEasy:
		return 0
	case models.EffortMedium:
		return 1
	case models.EffortComplex:
		return 2
	default:
		return -1
	}
}
