// Package compliance classifies scanner rules by WCAG guideline, level and
// principle, and scores scan results against them.
package compliance

import (
	"sort"

	"github.com/joshsymonds/tokubetsu/internal/axe"
	"github.com/joshsymonds/tokubetsu/internal/models"
)

// Rule describes how a scanner rule maps onto WCAG.
type Rule struct {
	ID        string
	Guideline string
	Level     string
	Criterion string
	Principle string
}

// Catalog is a lookup table of scanner rules. It implements axe.Mapper.
type Catalog struct {
	rules map[string]Rule
}

var defaultRules = []Rule{
	{ID: "image-alt", Guideline: "text-alternatives", Level: models.LevelA, Criterion: "1.1.1", Principle: models.PrinciplePerceivable},
	{ID: "button-name", Guideline: "compatible", Level: models.LevelA, Criterion: "4.1.2", Principle: models.PrincipleOperable},
	{ID: "label", Guideline: "input-assistance", Level: models.LevelA, Criterion: "3.3.2", Principle: models.PrincipleUnderstandable},
	{ID: "link-name", Guideline: "navigable", Level: models.LevelA, Criterion: "2.4.4", Principle: models.PrincipleOperable},
	{ID: "color-contrast", Guideline: "distinguishable", Level: models.LevelAA, Criterion: "1.4.3", Principle: models.PrinciplePerceivable},
	{ID: "frame-title", Guideline: "compatible", Level: models.LevelAA, Criterion: "4.1.2"},
	{ID: "landmark-complementary-is-top-level", Guideline: "adaptable", Level: models.LevelAA, Criterion: "1.3.1"},
	{ID: "target-size", Guideline: "input-modalities", Level: models.LevelAAA, Criterion: "2.5.5", Principle: models.PrincipleOperable},
	{ID: "timing-adjustable", Guideline: "enough-time", Level: models.LevelAAA, Criterion: "2.2.1"},
	{ID: "video-caption", Guideline: "time-based-media", Criterion: "1.2.2", Principle: models.PrinciplePerceivable},
	{ID: "language-valid", Guideline: "readable", Criterion: "3.1.1", Principle: models.PrincipleUnderstandable},
	{ID: "aria-valid", Guideline: "compatible", Criterion: "4.1.2", Principle: models.PrincipleRobust},
	{ID: "html-has-lang", Guideline: "readable", Criterion: "3.1.1", Principle: models.PrincipleRobust},

	// Rules the scorer does not weigh but whose violations have fixes.
	{ID: "heading-order", Guideline: "navigable", Criterion: "2.4.6"},
	{ID: "landmark", Guideline: "adaptable", Criterion: "1.3.1"},
	{ID: "td-has-header", Guideline: "adaptable", Criterion: "1.3.1"},
	{ID: "layout-table", Guideline: "adaptable", Criterion: "1.3.1"},
	{ID: "click-events-have-key-events", Guideline: "keyboard-accessible", Criterion: "2.1.1"},
	{ID: "focus-order-semantics", Guideline: "keyboard-accessible", Criterion: "2.1.1"},
}

// DefaultCatalog returns the built-in rule catalog.
func DefaultCatalog() *Catalog {
	c := &Catalog{rules: make(map[string]Rule, len(defaultRules))}
	for _, r := range defaultRules {
		c.rules[r.ID] = r
	}
	return c
}

// Rule returns the catalog entry for a scanner rule id.
func (c *Catalog) Rule(id string) (Rule, bool) {
	r, ok := c.rules[id]
	return r, ok
}

// Lookup implements axe.Mapper.
func (c *Catalog) Lookup(id string) (axe.Mapping, bool) {
	r, ok := c.rules[id]
	if !ok {
		return axe.Mapping{}, false
	}
	return axe.Mapping{Guideline: r.Guideline, Level: r.Level, Criterion: r.Criterion}, true
}

// WithAliases returns a copy of the catalog in which each scanner rule id in
// aliases maps to the given guideline. Unknown ids are added with no level
// or principle, so they never affect scores.
func (c *Catalog) WithAliases(aliases map[string]string) *Catalog {
	out := &Catalog{rules: make(map[string]Rule, len(c.rules)+len(aliases))}
	for id, r := range c.rules {
		out.rules[id] = r
	}
	for id, guideline := range aliases {
		r, ok := out.rules[id]
		if !ok {
			r = Rule{ID: id}
		}
		r.Guideline = guideline
		out.rules[id] = r
	}
	return out
}

// Rules returns all catalog entries ordered by id.
func (c *Catalog) Rules() []Rule {
	rules := make([]Rule, 0, len(c.rules))
	for _, r := range c.rules {
		rules = append(rules, r)
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].ID < rules[j].ID })
	return rules
}
