// Package models contains the data structures shared by the fix engine,
// the scanner adapters and the report formats.
package models

import "fmt"

// Violation is a detected accessibility rule failure. The fix engine reads
// only RuleID and Code; the remaining fields are carried through for reports.
type Violation struct {
	RuleID      string `json:"rule_id" yaml:"rule_id"`
	Code        string `json:"code" yaml:"code"`
	Impact      string `json:"impact,omitempty" yaml:"impact,omitempty"`
	WCAGLevel   string `json:"wcag_level,omitempty" yaml:"wcag_level,omitempty"`
	Criterion   string `json:"criterion,omitempty" yaml:"criterion,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Help        string `json:"help,omitempty" yaml:"help,omitempty"`
	HelpURL     string `json:"help_url,omitempty" yaml:"help_url,omitempty"`
	Target      string `json:"target,omitempty" yaml:"target,omitempty"`
	SourceRule  string `json:"source_rule,omitempty" yaml:"source_rule,omitempty"`
}

// IsValid checks if a violation has the fields the engine needs.
func (v *Violation) IsValid() error {
	if v.RuleID == "" {
		return fmt.Errorf("violation missing required field: rule_id")
	}
	if v.Code == "" {
		return fmt.Errorf("violation missing required field: code")
	}
	return nil
}
