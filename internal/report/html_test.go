package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshsymonds/tokubetsu/internal/models"
	"github.com/joshsymonds/tokubetsu/pkg/logger"
)

func TestHTMLGenerator_Generate(t *testing.T) {
	gen, err := NewHTMLGenerator(logger.NewMockLogger())
	require.NoError(t, err)
	assert.Equal(t, "html", gen.Name())

	var buf bytes.Buffer
	require.NoError(t, gen.Generate(testData(), &buf))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "Accessibility fixes for storefront")
	assert.Contains(t, out, "2026-03-01 12:00:00")
	assert.Contains(t, out, "85.0%")
	assert.Contains(t, out, `id="text-alternatives-0"`)
	assert.Contains(t, out, `class="suggestion impact-high"`)
	assert.Contains(t, out, "&lt;img alt=&#34;logo&#34; src=&#34;logo.png&#34;&gt;")
	assert.Contains(t, out, "1 applied")

	// High impact sections come first.
	assert.Less(t, strings.Index(out, "High impact"), strings.Index(out, "Medium impact"))
}

func TestHTMLGenerator_Empty(t *testing.T) {
	gen, err := NewHTMLGenerator(logger.NewMockLogger())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, gen.Generate(NewData(""), &buf))
	out := buf.String()

	assert.Contains(t, out, "No fixes suggested.")
	assert.NotContains(t, out, "WCAG Compliance")
	assert.NotContains(t, out, " for ")
}

func TestPrepareTemplateData(t *testing.T) {
	gen, err := NewHTMLGenerator(logger.NewMockLogger())
	require.NoError(t, err)

	data := testData()
	data.Suggestions = append(data.Suggestions, models.FixSuggestion{ID: "x-2", Impact: models.ImpactLow})

	td := gen.prepareTemplateData(data)
	assert.Equal(t, []models.Impact{models.ImpactHigh, models.ImpactMedium, models.ImpactLow}, td.Impacts)
	assert.Len(t, td.ByImpact[models.ImpactHigh], 1)
	assert.Equal(t, 2, td.Automated)
	assert.Equal(t, 1, td.Applied)
}

func TestTemplateFuncs(t *testing.T) {
	funcs := templateFuncs()

	impactClass := funcs["impactClass"].(func(models.Impact) string)
	assert.Equal(t, "impact-medium", impactClass(models.ImpactMedium))

	title := funcs["title"].(func(string) string)
	assert.Equal(t, "Understandable", title("understandable"))
}
