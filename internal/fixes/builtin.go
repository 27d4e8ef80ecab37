package fixes

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/joshsymonds/tokubetsu/internal/models"
)

// Guideline rule ids with built-in templates.
const (
	RuleTextAlternatives   = "text-alternatives"
	RuleKeyboardAccessible = "keyboard-accessible"
	RuleDistinguishable    = "distinguishable"
	RuleAdaptable          = "adaptable"
)

var (
	imgTagPattern       = regexp.MustCompile(`(?i)<img\b[^>]*>`)
	clickableDivPattern = regexp.MustCompile(`(?is)<div\b[^>]*?\sonclick\b[^>]*>(?:.*?</div>)?`)
	inlineColorPattern  = regexp.MustCompile(`(?i)color:\s*#([0-9a-f]{6})`)
	tableTagPattern     = regexp.MustCompile(`(?i)<table\b[^>]*>`)

	onclickAttr = regexp.MustCompile(`(?i)\bonclick\b`)
	buttonRole  = regexp.MustCompile(`(?i)\s+role\s*=\s*["']button["']`)
)

// DefaultRegistry returns a registry holding the built-in templates.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, b := range builtinTemplates() {
		if err := r.Register(b.ruleID, b.template); err != nil {
			// Built-ins are static; a failure here is a programming error.
			panic(err)
		}
	}
	return r
}

type builtin struct {
	ruleID   string
	template Template
}

func builtinTemplates() []builtin {
	return []builtin{
		{
			ruleID: RuleTextAlternatives,
			template: Template{
				Pattern:     imgTagPattern,
				Fix:         addImageAlt,
				Description: "Add descriptive alt text to images",
				Impact:      models.ImpactHigh,
				Effort:      models.EffortEasy,
				Automated:   true,
			},
		},
		{
			ruleID: RuleKeyboardAccessible,
			template: Template{
				Pattern:     clickableDivPattern,
				Fix:         convertClickableDiv,
				Description: "Convert div with click handler to button element",
				Impact:      models.ImpactHigh,
				Effort:      models.EffortEasy,
				Automated:   true,
			},
		},
		{
			ruleID: RuleDistinguishable,
			template: Template{
				Pattern:     inlineColorPattern,
				Fix:         keepColor,
				Description: "Improve color contrast ratio",
				Impact:      models.ImpactHigh,
				Effort:      models.EffortMedium,
				Automated:   false,
			},
		},
		{
			ruleID: RuleAdaptable,
			template: Template{
				Pattern:     tableTagPattern,
				Fix:         addTableRole,
				Description: "Add semantic table roles",
				Impact:      models.ImpactMedium,
				Effort:      models.EffortEasy,
				Automated:   true,
			},
		},
	}
}

// addImageAlt derives alt text from the image file name when the tag has no
// alt attribute. A missing src yields alt="".
func addImageAlt(m Match) string {
	attrs := tagAttributes(m.Text)
	if _, ok := attrs["alt"]; ok {
		return m.Text
	}
	alt := html.EscapeString(fileStem(attrs["src"]))
	return insertAttribute(m.Text, len("<img"), `alt="`+alt+`"`)
}

// convertClickableDiv rewrites a clickable div into a button. Only the
// opening tag's attributes are touched; the match ends at the first </div>,
// so nested divs are not supported.
func convertClickableDiv(m Match) string {
	end := strings.IndexByte(m.Text, '>')
	open, rest := m.Text[:end], m.Text[end:]

	open = `<button type="button"` + open[len("<div"):]
	open = replaceFirst(onclickAttr, open, "onClick")
	open = replaceFirst(buttonRole, open, "")

	const closeDiv = "</div>"
	if n := len(rest) - len(closeDiv); n >= 0 && strings.EqualFold(rest[n:], closeDiv) {
		rest = rest[:n] + "</button>"
	}

	return open + rest + " tabIndex={0}"
}

// keepColor leaves inline colors alone. Contrast remediation needs the
// background color, which a snippet does not carry.
func keepColor(m Match) string {
	return m.Text
}

// addTableRole inserts role="table" unless the table already declares it.
func addTableRole(m Match) string {
	if strings.EqualFold(tagAttributes(m.Text)["role"], "table") {
		return m.Text
	}
	return insertAttribute(m.Text, len("<table"), `role="table"`)
}
