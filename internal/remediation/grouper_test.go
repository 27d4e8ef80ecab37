package remediation

import (
	"testing"
	"time"

	"github.com/joshsymonds/tokubetsu/internal/models"
	"github.com/joshsymonds/tokubetsu/pkg/logger"
)

func testSuggestions() []models.FixSuggestion {
	return []models.FixSuggestion{
		{ID: "text-alternatives-0", ViolationID: "text-alternatives", Description: "Add descriptive alt text to images", Before: `<img src="a.png">`, After: `<img alt="a" src="a.png">`, Impact: models.ImpactHigh, Effort: models.EffortEasy, Automated: true},
		{ID: "adaptable-1", ViolationID: "adaptable", Description: "Add semantic table roles", Before: `<table>`, After: `<table role="table">`, Impact: models.ImpactMedium, Effort: models.EffortEasy, Automated: true},
		{ID: "text-alternatives-2", ViolationID: "text-alternatives", Description: "Add descriptive alt text to images", Before: `<img src="b.png">`, After: `<img alt="b" src="b.png">`, Impact: models.ImpactHigh, Effort: models.EffortEasy, Automated: true},
		{ID: "navigable-3", ViolationID: "navigable", Description: "Mark placeholder anchors as buttons", Before: `<a href="#">`, After: `<a href="#" role="button">`, Impact: models.ImpactLow, Effort: models.EffortMedium, Automated: false},
	}
}

func TestSuggestionGrouper_GroupByRule(t *testing.T) {
	grouper := NewSuggestionGrouper(logger.NewMockLogger())

	groups := grouper.GroupByRule(testSuggestions())

	if len(groups) != 3 {
		t.Fatalf("Expected 3 groups, got %d", len(groups))
	}

	wantOrder := []string{"text-alternatives", "adaptable", "navigable"}
	for i, want := range wantOrder {
		if groups[i].RuleID != want {
			t.Errorf("Group %d: expected rule %s, got %s", i, want, groups[i].RuleID)
		}
	}

	alt := groups[0]
	if len(alt.Suggestions) != 2 {
		t.Fatalf("Expected 2 alt suggestions, got %d", len(alt.Suggestions))
	}
	if alt.Suggestions[0].ID != "text-alternatives-0" || alt.Suggestions[1].ID != "text-alternatives-2" {
		t.Errorf("Suggestions out of order: %s, %s", alt.Suggestions[0].ID, alt.Suggestions[1].ID)
	}
	if alt.Priority != PriorityHigh {
		t.Errorf("Expected alt priority %d, got %d", PriorityHigh, alt.Priority)
	}
	if alt.EstimatedEffort != 4*time.Minute {
		t.Errorf("Expected 4m effort for two automated easy fixes, got %v", alt.EstimatedEffort)
	}

	if groups[1].Priority != PriorityMedium {
		t.Errorf("Expected adaptable priority %d, got %d", PriorityMedium, groups[1].Priority)
	}
	if groups[2].Priority != PriorityDeferred {
		t.Errorf("Expected manual low-impact group to be deferred, got %d", groups[2].Priority)
	}
}

func TestSuggestionGrouper_CalculatePriority(t *testing.T) {
	grouper := NewSuggestionGrouper(logger.NewMockLogger())

	high := models.FixSuggestion{Impact: models.ImpactHigh, Automated: true}
	low := models.FixSuggestion{Impact: models.ImpactLow, Automated: true}

	tests := []struct {
		name        string
		suggestions []models.FixSuggestion
		want        int
	}{
		{"many high", []models.FixSuggestion{high, high, high}, PriorityUrgent},
		{"one high", []models.FixSuggestion{high, low}, PriorityHigh},
		{"automated low", []models.FixSuggestion{low}, PriorityLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := grouper.calculatePriority(tt.suggestions); got != tt.want {
				t.Errorf("calculatePriority() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSuggestionGrouper_BuildManifest(t *testing.T) {
	grouper := NewSuggestionGrouper(logger.NewMockLogger())
	grouper.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	manifest := grouper.BuildManifest("run-1", "acme", testSuggestions())

	if manifest.RunID != "run-1" || manifest.Project != "acme" {
		t.Errorf("Unexpected manifest identity: %s/%s", manifest.RunID, manifest.Project)
	}
	if manifest.ManifestVersion != ManifestVersion {
		t.Errorf("Expected version %s, got %s", ManifestVersion, manifest.ManifestVersion)
	}
	if manifest.Metadata.TotalSuggestions != 4 {
		t.Errorf("Expected 4 suggestions, got %d", manifest.Metadata.TotalSuggestions)
	}
	if manifest.Metadata.AutomatedSuggestions != 3 {
		t.Errorf("Expected 3 automated suggestions, got %d", manifest.Metadata.AutomatedSuggestions)
	}
	if manifest.Metadata.ActionableRemediations != 3 {
		t.Errorf("Expected 3 remediations, got %d", manifest.Metadata.ActionableRemediations)
	}

	rem := manifest.Remediations[0]
	if rem.ID != "rem-text-alternatives" {
		t.Errorf("Unexpected remediation id %s", rem.ID)
	}
	if len(rem.Changes) != 2 || rem.Changes[1].After != `<img alt="b" src="b.png">` {
		t.Errorf("Unexpected changes: %+v", rem.Changes)
	}
	if !rem.Automated {
		t.Error("Expected alt remediation to be automated")
	}
	if manifest.Remediations[2].Automated {
		t.Error("Expected navigable remediation to need manual work")
	}
	if manifest.Remediations[2].Effort != models.EffortMedium {
		t.Errorf("Expected medium effort, got %s", manifest.Remediations[2].Effort)
	}

	empty := grouper.BuildManifest("run-2", "", nil)
	if len(empty.Remediations) != 0 || empty.Metadata.PriorityScore != 0 {
		t.Errorf("Expected empty manifest, got %+v", empty)
	}
}

func TestEstimateEffort(t *testing.T) {
	tests := []struct {
		duration time.Duration
		want     string
	}{
		{4 * time.Minute, "under 15 minutes"},
		{20 * time.Minute, "15-30 minutes"},
		{45 * time.Minute, "30-60 minutes"},
		{90 * time.Minute, "1-2 hours"},
		{3 * time.Hour, "2-4 hours"},
		{6 * time.Hour, "4-8 hours"},
		{24 * time.Hour, "3+ days"},
	}

	for _, tt := range tests {
		if got := EstimateEffort(tt.duration); got != tt.want {
			t.Errorf("EstimateEffort(%v) = %s, want %s", tt.duration, got, tt.want)
		}
	}
}

func TestCalculatePriorityScore(t *testing.T) {
	if got := CalculatePriorityScore(nil); got != 0 {
		t.Errorf("Expected 0 for no remediations, got %f", got)
	}

	rems := []Remediation{
		{Impact: models.ImpactHigh, SuggestionRefs: []string{"a", "b"}},
		{Impact: models.ImpactLow, SuggestionRefs: []string{"c"}},
	}
	// (7.5*1.2 + 2.5*1.1) / 2
	want := 5.875
	if got := CalculatePriorityScore(rems); got < want-0.001 || got > want+0.001 {
		t.Errorf("CalculatePriorityScore() = %f, want %f", got, want)
	}
}
