package mcpadapter

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/BenLYNC/AI-Automation-Alert/internal/core/ports"
)

const serverName = "automation-alert"

const instructions = `Scores O*NET occupations for AI automation exposure.
Use list_categories to see the taxonomy, sample_report for a worked example
that needs no model, and score_occupation to assess a real SOC code.
Exposure ranges are time-saved percentages, not job-loss estimates.`

// NewServer registers every tool on a fresh MCP server.
func NewServer(version string, scorer ports.OccupationScorer, sampler ports.SampleReporter) *server.MCPServer {
	s := server.NewMCPServer(
		serverName,
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	scoreTool := NewScoreTool(scorer)
	s.AddTool(scoreTool.Definition(), scoreTool.Handle)

	sampleTool := NewSampleTool(sampler)
	s.AddTool(sampleTool.Definition(), sampleTool.Handle)

	taxonomyTool := NewTaxonomyTool()
	s.AddTool(taxonomyTool.Definition(), taxonomyTool.Handle)

	return s
}

// ServeStdio blocks serving s on stdin/stdout.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}
