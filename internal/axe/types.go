// Package axe reads accessibility scanner results in the axe-core result
// shape and flattens them into violations the fix engine understands.
package axe

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Results is the top-level document produced by an axe-core style scanner.
type Results struct {
	URL        string `json:"url,omitempty"`
	Timestamp  string `json:"timestamp,omitempty"`
	Violations []Rule `json:"violations"`
	Passes     []Rule `json:"passes"`
	Incomplete []Rule `json:"incomplete,omitempty"`
}

// Rule is one checked rule and the nodes it applied to.
type Rule struct {
	ID          string   `json:"id"`
	Impact      string   `json:"impact,omitempty"`
	Description string   `json:"description,omitempty"`
	Help        string   `json:"help,omitempty"`
	HelpURL     string   `json:"helpUrl,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Nodes       []Node   `json:"nodes"`
}

// Node is a DOM node a rule was evaluated against.
//
// Scanners emit nodes either as a bare HTML string or as an object carrying
// the HTML, the CSS selector path and a failure summary; both decode into Node.
type Node struct {
	HTML           string   `json:"html"`
	Impact         string   `json:"impact,omitempty"`
	Target         []string `json:"target,omitempty"`
	FailureSummary string   `json:"failureSummary,omitempty"`
}

type nodeObject struct {
	HTML           string            `json:"html"`
	Impact         string            `json:"impact"`
	Target         []json.RawMessage `json:"target"`
	FailureSummary string            `json:"failureSummary"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Node) UnmarshalJSON(data []byte) error {
	var html string
	if err := json.Unmarshal(data, &html); err == nil {
		*n = Node{HTML: html}
		return nil
	}

	var obj nodeObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("node must be an HTML string or an object: %w", err)
	}

	targets := make([]string, 0, len(obj.Target))
	for _, raw := range obj.Target {
		selector, err := decodeSelector(raw)
		if err != nil {
			return err
		}
		targets = append(targets, selector)
	}

	*n = Node{
		HTML:           obj.HTML,
		Impact:         obj.Impact,
		Target:         targets,
		FailureSummary: obj.FailureSummary,
	}
	return nil
}

// decodeSelector reads a target entry. Nodes inside shadow roots or frames
// have a list of selectors, one per boundary, which is joined with " >>> ".
func decodeSelector(raw json.RawMessage) (string, error) {
	var selector string
	if err := json.Unmarshal(raw, &selector); err == nil {
		return selector, nil
	}

	var path []string
	if err := json.Unmarshal(raw, &path); err != nil {
		return "", fmt.Errorf("invalid node target %s: %w", string(raw), err)
	}
	return strings.Join(path, " >>> "), nil
}

// Selector returns the node's target as a single string.
func (n Node) Selector() string {
	return strings.Join(n.Target, ", ")
}

// NodeCount returns the number of nodes across rules.
func NodeCount(rules []Rule) int {
	count := 0
	for _, r := range rules {
		count += len(r.Nodes)
	}
	return count
}
