package models

import "time"

// WCAG conformance levels.
const (
	LevelA   = "A"
	LevelAA  = "AA"
	LevelAAA = "AAA"
)

// WCAG principles.
const (
	PrinciplePerceivable    = "perceivable"
	PrincipleOperable       = "operable"
	PrincipleUnderstandable = "understandable"
	PrincipleRobust         = "robust"
)

// ComplianceReport summarizes WCAG conformance for one scanned page.
type ComplianceReport struct {
	GeneratedAt         time.Time   `json:"generated_at" yaml:"generated_at"`
	ID                  string      `json:"id" yaml:"id"`
	URL                 string      `json:"url" yaml:"url"`
	Violations          []Violation `json:"violations" yaml:"violations"`
	OverallScore        float64     `json:"overall_score" yaml:"overall_score"`
	LevelAScore         float64     `json:"level_a_score" yaml:"level_a_score"`
	LevelAAScore        float64     `json:"level_aa_score" yaml:"level_aa_score"`
	LevelAAAScore       float64     `json:"level_aaa_score" yaml:"level_aaa_score"`
	PerceivableScore    float64     `json:"perceivable_score" yaml:"perceivable_score"`
	OperableScore       float64     `json:"operable_score" yaml:"operable_score"`
	UnderstandableScore float64     `json:"understandable_score" yaml:"understandable_score"`
	RobustScore         float64     `json:"robust_score" yaml:"robust_score"`
	TotalPasses         int         `json:"total_passes" yaml:"total_passes"`
}
