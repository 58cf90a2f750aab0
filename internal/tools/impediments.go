package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Matfejbat/jira-scrum-master-agent/internal/report"
	"github.com/Matfejbat/jira-scrum-master-agent/internal/scrum"
)

// ImpedimentsTool handles the impediment_report MCP tool.
type ImpedimentsTool struct {
	analyzer *scrum.Analyzer
}

// NewImpedimentsTool creates an ImpedimentsTool backed by the analyzer.
func NewImpedimentsTool(analyzer *scrum.Analyzer) *ImpedimentsTool {
	return &ImpedimentsTool{analyzer: analyzer}
}

// Definition returns the MCP tool definition for registration.
func (t *ImpedimentsTool) Definition() mcp.Tool {
	return mcp.NewTool("impediment_report",
		mcp.WithDescription(
			"List blocked issues in the open sprint, categorized as "+
				"technical, external, process, or resource impediments, "+
				"with resolution strategies per category.",
		),
	)
}

// Handle processes the impediment_report tool call.
func (t *ImpedimentsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rep, err := t.analyzer.Impediments(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Impediment analysis failed: %v", err)), nil
	}
	return mcp.NewToolResultText(report.Impediments(rep)), nil
}
