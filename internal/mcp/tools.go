package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/joshsymonds/tokubetsu/internal/axe"
	"github.com/joshsymonds/tokubetsu/internal/fixes"
	"github.com/joshsymonds/tokubetsu/internal/models"
)

// registerTools registers every tool on s.
func (h *Server) registerTools(s *server.MCPServer) {
	s.AddTool(
		mcplib.NewTool("tokubetsu_suggest",
			mcplib.WithDescription("Generate fix suggestions for accessibility violations. Accepts axe-core results JSON or a list of violations keyed by guideline."),
			mcplib.WithString("violations",
				mcplib.Required(),
				mcplib.Description("axe-core results object, or an array of {rule_id, code} violations"),
			),
			mcplib.WithBoolean("automated_only", mcplib.Description("Only return suggestions that are safe to apply without review")),
		),
		h.handleSuggest,
	)

	s.AddTool(
		mcplib.NewTool("tokubetsu_apply",
			mcplib.WithDescription("Apply fix suggestions to an HTML document in order and return the fixed document with per-suggestion outcomes"),
			mcplib.WithString("suggestions",
				mcplib.Required(),
				mcplib.Description("A suggestion object or an array of suggestions, as returned by tokubetsu_suggest"),
			),
			mcplib.WithString("document", mcplib.Required(), mcplib.Description("The HTML document to fix")),
		),
		h.handleApply,
	)

	s.AddTool(
		mcplib.NewTool("tokubetsu_preview",
			mcplib.WithDescription("Show what a document would look like with one suggestion applied"),
			mcplib.WithString("suggestion", mcplib.Required(), mcplib.Description("A single suggestion object")),
			mcplib.WithString("document", mcplib.Required(), mcplib.Description("The HTML document to preview against")),
		),
		h.handlePreview,
	)

	s.AddTool(
		mcplib.NewTool("tokubetsu_rules",
			mcplib.WithDescription("List the guideline rules that have fix templates"),
		),
		h.handleRules,
	)
}

func (h *Server) handleSuggest(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	raw, err := request.RequireString("violations")
	if err != nil {
		return errorResult(err.Error()), nil
	}

	violations, err := axe.DecodeViolations([]byte(raw), h.catalog)
	if err != nil {
		return errorResult(fmt.Sprintf("decoding violations failed: %v", err)), nil
	}

	suggestions := h.engine.GenerateSuggestions(violations)
	if request.GetBool("automated_only", false) {
		suggestions = fixes.FilterAutomated(suggestions)
	}
	if suggestions == nil {
		suggestions = []models.FixSuggestion{}
	}

	h.logger.Debug("Generated suggestions over MCP", "violations", len(violations), "suggestions", len(suggestions))
	return jsonResult(suggestions)
}

type applyResult struct {
	Document string                `json:"document"`
	Outcomes []models.ApplyOutcome `json:"outcomes"`
}

func (h *Server) handleApply(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	raw, err := request.RequireString("suggestions")
	if err != nil {
		return errorResult(err.Error()), nil
	}
	document, err := request.RequireString("document")
	if err != nil {
		return errorResult(err.Error()), nil
	}

	suggestions, err := decodeSuggestions(raw)
	if err != nil {
		return errorResult(err.Error()), nil
	}

	fixed, outcomes, err := h.engine.ApplySuggestions(ctx, suggestions, document)
	if err != nil {
		return errorResult(fmt.Sprintf("apply failed: %v", err)), nil
	}
	return jsonResult(applyResult{Document: fixed, Outcomes: outcomes})
}

func (h *Server) handlePreview(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	raw, err := request.RequireString("suggestion")
	if err != nil {
		return errorResult(err.Error()), nil
	}
	document, err := request.RequireString("document")
	if err != nil {
		return errorResult(err.Error()), nil
	}

	var suggestion models.FixSuggestion
	if err := json.Unmarshal([]byte(raw), &suggestion); err != nil {
		return errorResult(fmt.Sprintf("decoding suggestion failed: %v", err)), nil
	}

	preview, err := h.engine.PreviewFix(ctx, suggestion, document)
	if err != nil {
		return errorResult(err.Error()), nil
	}
	return textResult(preview), nil
}

type ruleInfo struct {
	RuleID      string        `json:"rule_id"`
	Description string        `json:"description"`
	Pattern     string        `json:"pattern"`
	Impact      models.Impact `json:"impact"`
	Effort      models.Effort `json:"effort"`
	Automated   bool          `json:"automated"`
}

func (h *Server) handleRules(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	var rules []ruleInfo
	for _, id := range h.engine.RuleIDs() {
		for _, t := range h.engine.Templates(id) {
			rules = append(rules, ruleInfo{
				RuleID:      id,
				Description: t.Description,
				Pattern:     t.Pattern.String(),
				Impact:      t.Impact,
				Effort:      t.Effort,
				Automated:   t.Automated,
			})
		}
	}
	return jsonResult(rules)
}

// decodeSuggestions accepts a single suggestion object or an array.
func decodeSuggestions(raw string) ([]models.FixSuggestion, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "{") {
		var s models.FixSuggestion
		if err := json.Unmarshal([]byte(raw), &s); err != nil {
			return nil, fmt.Errorf("decoding suggestion failed: %w", err)
		}
		return []models.FixSuggestion{s}, nil
	}

	var suggestions []models.FixSuggestion
	if err := json.Unmarshal([]byte(raw), &suggestions); err != nil {
		return nil, fmt.Errorf("decoding suggestions failed: %w", err)
	}
	return suggestions, nil
}

// jsonResult marshals v into a text content result.
func jsonResult(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// textResult returns a plain text content result.
func textResult(text string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(text)},
	}
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
