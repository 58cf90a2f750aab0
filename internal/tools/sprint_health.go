package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Matfejbat/jira-scrum-master-agent/internal/report"
	"github.com/Matfejbat/jira-scrum-master-agent/internal/scrum"
)

// SprintHealthTool handles the sprint_health MCP tool.
type SprintHealthTool struct {
	analyzer *scrum.Analyzer
}

// NewSprintHealthTool creates a SprintHealthTool backed by the analyzer.
func NewSprintHealthTool(analyzer *scrum.Analyzer) *SprintHealthTool {
	return &SprintHealthTool{analyzer: analyzer}
}

// Definition returns the MCP tool definition for registration.
func (t *SprintHealthTool) Definition() mcp.Tool {
	return mcp.NewTool("sprint_health",
		mcp.WithDescription(
			"Analyze the health of a sprint: completion progress by issue "+
				"count and story points, blocked work, a 0-100 health score, "+
				"and recommendations. Uses the board's active sprint when "+
				"`sprint_id` is omitted.",
		),
		mcp.WithString("sprint_id",
			mcp.Description("Sprint to analyze. Omit to use the active sprint."),
		),
	)
}

// Handle processes the sprint_health tool call.
func (t *SprintHealthTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sprintID := req.GetString("sprint_id", "")
	if sprintID == "" {
		id, err := t.analyzer.ActiveSprintID(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Could not resolve the active sprint: %v", err)), nil
		}
		sprintID = id
	}

	res, err := t.analyzer.SprintHealth(ctx, sprintID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Sprint health analysis failed: %v", err)), nil
	}
	return mcp.NewToolResultText(report.SprintHealth(res)), nil
}
