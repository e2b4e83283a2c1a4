package mcpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/BenLYNC/AI-Automation-Alert/internal/core/domain"
	"github.com/BenLYNC/AI-Automation-Alert/internal/core/usecase"
)

type scorerFake struct {
	err error
	got []domain.ScoreRequest
}

func (f *scorerFake) ScoreOccupation(_ context.Context, req domain.ScoreRequest) (*domain.Report, error) {
	f.got = append(f.got, req)
	if f.err != nil {
		return nil, f.err
	}
	return usecase.BuildSampleReport(time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC))
}

func (f *scorerFake) SampleReport(context.Context) (*domain.Report, error) {
	return usecase.BuildSampleReport(time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC))
}

func makeReq(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(r *mcp.CallToolResult) string {
	if r == nil {
		return ""
	}
	for _, c := range r.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestScoreToolDefinition(t *testing.T) {
	def := NewScoreTool(&scorerFake{}).Definition()
	if def.Name != "score_occupation" {
		t.Fatalf("tool name = %q", def.Name)
	}
	for _, prop := range []string{"soc_code", "title", "categories", "include_agentic", "format"} {
		if _, ok := def.InputSchema.Properties[prop]; !ok {
			t.Fatalf("missing %q property", prop)
		}
	}
	if len(def.InputSchema.Required) != 1 || def.InputSchema.Required[0] != "soc_code" {
		t.Fatalf("expected only soc_code required, got %v", def.InputSchema.Required)
	}
}

func TestScoreToolBuildsRequest(t *testing.T) {
	scorer := &scorerFake{}
	tool := NewScoreTool(scorer)

	res, err := tool.Handle(context.Background(), makeReq(map[string]any{
		"soc_code":        " 41-9022.00 ",
		"categories":      []any{"tasks", "skills"},
		"include_agentic": false,
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(res))
	}
	got := scorer.got[0]
	if got.SOCCode != "41-9022.00" || got.IncludeAgentic {
		t.Fatalf("unexpected request: %+v", got)
	}
	if len(got.Categories) != 2 || got.Categories[0] != domain.CategoryTasks {
		t.Fatalf("unexpected categories: %v", got.Categories)
	}
	if !strings.HasPrefix(resultText(res), "# 41-9022.00") {
		t.Fatalf("expected markdown report, got %.60s", resultText(res))
	}
}

func TestScoreToolDefaultsAgenticOn(t *testing.T) {
	scorer := &scorerFake{}
	if _, err := NewScoreTool(scorer).Handle(context.Background(), makeReq(map[string]any{"soc_code": "41-9022.00"})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !scorer.got[0].IncludeAgentic {
		t.Fatalf("expected agentic scoring by default")
	}
}

func TestScoreToolErrors(t *testing.T) {
	cases := []struct {
		name string
		args map[string]any
		err  error
		want string
	}{
		{"missing soc", map[string]any{}, nil, "soc_code is required"},
		{"xlsx", map[string]any{"soc_code": "41-9022.00", "format": "xlsx"}, nil, "not available over MCP"},
		{"unknown format", map[string]any{"soc_code": "41-9022.00", "format": "pdf"}, nil, "unknown format"},
		{"scorer failure", map[string]any{"soc_code": "41-9022.00"}, errors.New("model down"), "scoring failed: model down"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := NewScoreTool(&scorerFake{err: tc.err}).Handle(context.Background(), makeReq(tc.args))
			if err != nil {
				t.Fatalf("handler must report failures as tool errors, got %v", err)
			}
			if !res.IsError || !strings.Contains(resultText(res), tc.want) {
				t.Fatalf("expected tool error containing %q, got %q", tc.want, resultText(res))
			}
		})
	}
}

func TestSampleToolJSON(t *testing.T) {
	res, err := NewSampleTool(&scorerFake{}).Handle(context.Background(), makeReq(map[string]any{"format": "json"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var rep domain.Report
	if err := json.Unmarshal([]byte(resultText(res)), &rep); err != nil {
		t.Fatalf("decode sample report: %v", err)
	}
	if rep.Alert.OccupationTitle != usecase.SampleTitle {
		t.Fatalf("unexpected title %q", rep.Alert.OccupationTitle)
	}
}

func TestTaxonomyTool(t *testing.T) {
	res, err := NewTaxonomyTool().Handle(context.Background(), makeReq(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var view usecase.TaxonomyView
	if err := json.Unmarshal([]byte(resultText(res)), &view); err != nil {
		t.Fatalf("decode taxonomy: %v", err)
	}
	if len(view.Categories) != len(domain.OnetCategories) {
		t.Fatalf("expected %d categories, got %d", len(domain.OnetCategories), len(view.Categories))
	}
}

func TestNewServerRegistersTools(t *testing.T) {
	s := NewServer("test", &scorerFake{}, &scorerFake{})
	tools := s.ListTools()
	for _, name := range []string{"score_occupation", "sample_report", "list_categories"} {
		if _, ok := tools[name]; !ok {
			t.Fatalf("tool %q not registered", name)
		}
	}
}
