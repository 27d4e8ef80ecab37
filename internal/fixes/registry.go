package fixes

import (
	"sort"
	"strings"
)

// Registry maps rule identifiers to ordered fix templates.
//
// A Registry is populated at startup and handed to NewEngine, which takes a
// snapshot; later changes to the registry do not affect existing engines.
type Registry struct {
	rules map[string][]Template
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[string][]Template)}
}

// Register appends templates for ruleID, after any already registered.
func (r *Registry) Register(ruleID string, templates ...Template) error {
	ruleID = strings.TrimSpace(ruleID)
	if ruleID == "" {
		return &TemplateError{RuleID: ruleID, Err: errRuleIDRequired}
	}

	existing := len(r.rules[ruleID])
	for i, t := range templates {
		if err := t.Validate(); err != nil {
			return &TemplateError{RuleID: ruleID, Index: existing + i, Err: err}
		}
	}

	r.rules[ruleID] = append(r.rules[ruleID], templates...)
	return nil
}

// Remove drops every template registered for the given rule ids.
func (r *Registry) Remove(ruleIDs ...string) {
	for _, id := range ruleIDs {
		delete(r.rules, id)
	}
}

// Templates returns a copy of the templates registered for ruleID.
func (r *Registry) Templates(ruleID string) []Template {
	templates := r.rules[ruleID]
	if len(templates) == 0 {
		return nil
	}
	out := make([]Template, len(templates))
	copy(out, templates)
	return out
}

// RuleIDs returns the registered rule ids in lexical order.
func (r *Registry) RuleIDs() []string {
	ids := make([]string, 0, len(r.rules))
	for id := range r.rules {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the total number of registered templates.
func (r *Registry) Len() int {
	n := 0
	for _, templates := range r.rules {
		n += len(templates)
	}
	return n
}

func (r *Registry) clone() *Registry {
	c := NewRegistry()
	for id, templates := range r.rules {
		c.rules[id] = append([]Template(nil), templates...)
	}
	return c
}
