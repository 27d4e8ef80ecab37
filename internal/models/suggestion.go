package models

// FixSuggestion is a candidate rewrite of one violation's snippet.
type FixSuggestion struct {
	ID          string `json:"id" yaml:"id"`
	ViolationID string `json:"violation_id" yaml:"violation_id"`
	Description string `json:"description" yaml:"description"`
	Before      string `json:"before" yaml:"before"`
	After       string `json:"after" yaml:"after"`
	Impact      Impact `json:"impact" yaml:"impact"`
	Effort      Effort `json:"effort" yaml:"effort"`
	Automated   bool   `json:"automated" yaml:"automated"`
}

// ApplyOutcome records what happened when a suggestion was applied to a document.
type ApplyOutcome struct {
	SuggestionID string `json:"suggestion_id" yaml:"suggestion_id"`
	Reason       string `json:"reason,omitempty" yaml:"reason,omitempty"`
	Applied      bool   `json:"applied" yaml:"applied"`
}

// Outcome reasons.
const (
	ReasonApplied      = "applied"
	ReasonNotFound     = "snippet not found in document"
	ReasonNotAutomated = "requires manual review"
	ReasonRejected     = "rejected during review"
)
