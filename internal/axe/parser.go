package axe

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/joshsymonds/tokubetsu/internal/models"
	"github.com/joshsymonds/tokubetsu/pkg/pathutil"
)

// Mapping is the guideline classification of a scanner rule.
type Mapping struct {
	Guideline string
	Level     string
	Criterion string
}

// Mapper resolves scanner rule ids (such as "image-alt") to guidelines.
type Mapper interface {
	Lookup(ruleID string) (Mapping, bool)
}

// Parse decodes axe results from r.
func Parse(r io.Reader) (*Results, error) {
	var results Results
	dec := json.NewDecoder(r)
	if err := dec.Decode(&results); err != nil {
		return nil, fmt.Errorf("axe: failed to parse results: %w", err)
	}
	for i, rule := range results.Violations {
		if rule.ID == "" {
			return nil, fmt.Errorf("axe: violation %d has no rule id", i)
		}
	}
	return &results, nil
}

// ParseFile decodes axe results from a JSON file.
func ParseFile(path string) (*Results, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(bytes.NewReader(data))
}

// ToViolations flattens every node of every violated rule into a Violation.
// Rules the mapper does not know keep their scanner rule id, so they are
// reported but never matched by a fix template. A nil mapper keeps all ids.
func ToViolations(results *Results, mapper Mapper) []models.Violation {
	if results == nil {
		return nil
	}

	var violations []models.Violation
	for _, rule := range results.Violations {
		mapping := Mapping{Guideline: rule.ID}
		if mapper != nil {
			if m, ok := mapper.Lookup(rule.ID); ok {
				mapping = m
			}
		}

		for _, node := range rule.Nodes {
			if node.HTML == "" {
				continue
			}

			impact := rule.Impact
			if node.Impact != "" {
				impact = node.Impact
			}

			violations = append(violations, models.Violation{
				RuleID:      mapping.Guideline,
				Code:        node.HTML,
				Impact:      impact,
				WCAGLevel:   mapping.Level,
				Criterion:   mapping.Criterion,
				Description: rule.Description,
				Help:        rule.Help,
				HelpURL:     rule.HelpURL,
				Target:      node.Selector(),
				SourceRule:  rule.ID,
			})
		}
	}
	return violations
}

// LoadViolations reads violations from path. The file is either axe results
// (a JSON object with a "violations" array), which are flattened with
// mapper, or a YAML or JSON list of violations already keyed by guideline.
func LoadViolations(path string, mapper Mapper) ([]models.Violation, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeViolations(data, mapper)
}

// DecodeViolations is LoadViolations for in-memory data.
func DecodeViolations(data []byte, mapper Mapper) ([]models.Violation, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '{' {
		results, err := Parse(bytes.NewReader(trimmed))
		if err != nil {
			return nil, err
		}
		return ToViolations(results, mapper), nil
	}

	var violations []models.Violation
	if err := yaml.Unmarshal(trimmed, &violations); err != nil {
		return nil, fmt.Errorf("axe: failed to parse violation list: %w", err)
	}
	for i := range violations {
		if err := violations[i].IsValid(); err != nil {
			return nil, fmt.Errorf("axe: violation %d: %w", i, err)
		}
	}
	return violations, nil
}

func readFile(path string) ([]byte, error) {
	validPath, err := pathutil.ValidatePath(path, ".json", ".yaml", ".yml")
	if err != nil {
		return nil, fmt.Errorf("axe: invalid results path: %w", err)
	}

	data, err := os.ReadFile(validPath) // #nosec G304 - path is validated
	if err != nil {
		return nil, fmt.Errorf("axe: failed to read %s: %w", validPath, err)
	}
	return data, nil
}
