package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Matfejbat/jira-scrum-master-agent/internal/report"
	"github.com/Matfejbat/jira-scrum-master-agent/internal/scrum"
)

// StandupTool handles the standup_report MCP tool.
type StandupTool struct {
	analyzer *scrum.Analyzer
}

// NewStandupTool creates a StandupTool backed by the analyzer.
func NewStandupTool(analyzer *scrum.Analyzer) *StandupTool {
	return &StandupTool{analyzer: analyzer}
}

// Definition returns the MCP tool definition for registration.
func (t *StandupTool) Definition() mcp.Tool {
	return mcp.NewTool("standup_report",
		mcp.WithDescription(
			"Generate a daily standup digest from the open sprint: per "+
				"member, what was completed yesterday and what is in "+
				"progress today.",
		),
	)
}

// Handle processes the standup_report tool call.
func (t *StandupTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	digest, err := t.analyzer.Standup(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Standup report failed: %v", err)), nil
	}
	return mcp.NewToolResultText(report.Standup(digest)), nil
}
