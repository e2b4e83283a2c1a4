// Package mcpadapter exposes occupation scoring as MCP tools over stdio.
//
// Each tool is a struct holding its dependencies, with Definition returning
// the mcp.Tool schema and Handle serving calls.
package mcpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/BenLYNC/AI-Automation-Alert/internal/core/domain"
	"github.com/BenLYNC/AI-Automation-Alert/internal/core/ports"
	"github.com/BenLYNC/AI-Automation-Alert/internal/core/usecase"
	"github.com/BenLYNC/AI-Automation-Alert/internal/infrastructure/report"
)

var textFormats = []string{string(report.FormatMarkdown), string(report.FormatJSON)}

// ScoreTool handles score_occupation.
type ScoreTool struct {
	scorer ports.OccupationScorer
}

func NewScoreTool(scorer ports.OccupationScorer) *ScoreTool {
	return &ScoreTool{scorer: scorer}
}

func (t *ScoreTool) Definition() mcp.Tool {
	categories := make([]string, 0, len(domain.OnetCategories))
	for _, c := range domain.OnetCategories {
		categories = append(categories, string(c))
	}
	return mcp.NewTool("score_occupation",
		mcp.WithDescription(
			"Score an O*NET occupation for AI automation exposure. Fetches the occupation's "+
				"tasks, skills and other descriptors, asks the model for subtask-level exposure "+
				"and returns the alert report.",
		),
		mcp.WithString("soc_code",
			mcp.Required(),
			mcp.Description("O*NET-SOC code, e.g. 41-9022.00"),
		),
		mcp.WithString("title",
			mcp.Description("Occupation title. Looked up on O*NET when omitted."),
		),
		mcp.WithArray("categories",
			mcp.Description("Categories to score. Defaults to every scorable category."),
			mcp.WithStringEnumItems(categories),
		),
		mcp.WithBoolean("include_agentic",
			mcp.Description("Also score agentic workflow impact (W1-W7)."),
			mcp.DefaultBool(true),
		),
		mcp.WithString("format",
			mcp.Description("Report format."),
			mcp.Enum(textFormats...),
		),
	)
}

func (t *ScoreTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	soc := strings.TrimSpace(req.GetString("soc_code", ""))
	if soc == "" {
		return mcp.NewToolResultError("soc_code is required"), nil
	}
	format, err := textFormat(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	scoreReq := domain.ScoreRequest{
		SOCCode:        soc,
		Title:          strings.TrimSpace(req.GetString("title", "")),
		IncludeAgentic: req.GetBool("include_agentic", true),
	}
	for _, raw := range req.GetStringSlice("categories", nil) {
		scoreReq.Categories = append(scoreReq.Categories, domain.OnetCategory(strings.TrimSpace(raw)))
	}

	rep, err := t.scorer.ScoreOccupation(ctx, scoreReq)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scoring failed: %v", err)), nil
	}
	return renderResult(format, rep)
}

// SampleTool handles sample_report.
type SampleTool struct {
	sampler ports.SampleReporter
}

func NewSampleTool(sampler ports.SampleReporter) *SampleTool {
	return &SampleTool{sampler: sampler}
}

func (t *SampleTool) Definition() mcp.Tool {
	return mcp.NewTool("sample_report",
		mcp.WithDescription("Render the built-in demonstration report (Real Estate Sales Agents) without calling any model."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("format",
			mcp.Description("Report format."),
			mcp.Enum(textFormats...),
		),
	)
}

func (t *SampleTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	format, err := textFormat(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	rep, err := t.sampler.SampleReport(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("sample report failed: %v", err)), nil
	}
	return renderResult(format, rep)
}

// TaxonomyTool handles list_categories.
type TaxonomyTool struct{}

func NewTaxonomyTool() *TaxonomyTool {
	return &TaxonomyTool{}
}

func (t *TaxonomyTool) Definition() mcp.Tool {
	return mcp.NewTool("list_categories",
		mcp.WithDescription("List O*NET categories with their composite weights, exposure levels, ceilings and agentic vocabulary."),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func (t *TaxonomyTool) Handle(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	view := usecase.Taxonomy()
	raw, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode taxonomy: %v", err)), nil
	}
	return mcp.NewToolResultText(string(raw)), nil
}

func textFormat(req mcp.CallToolRequest) (report.Format, error) {
	format, err := report.ParseFormat(req.GetString("format", ""))
	if err != nil {
		return "", err
	}
	if format == report.FormatXLSX {
		return "", fmt.Errorf("format %q is not available over MCP", format)
	}
	return format, nil
}

func renderResult(format report.Format, rep *domain.Report) (*mcp.CallToolResult, error) {
	var buf bytes.Buffer
	if err := report.Render(&buf, format, rep); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("render report: %v", err)), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}
