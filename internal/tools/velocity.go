package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Matfejbat/jira-scrum-master-agent/internal/config"
	"github.com/Matfejbat/jira-scrum-master-agent/internal/intent"
	"github.com/Matfejbat/jira-scrum-master-agent/internal/report"
	"github.com/Matfejbat/jira-scrum-master-agent/internal/scrum"
)

// VelocityTool handles the velocity_report MCP tool.
type VelocityTool struct {
	analyzer *scrum.Analyzer
	cfg      *config.Config
}

// NewVelocityTool creates a VelocityTool backed by the analyzer.
func NewVelocityTool(analyzer *scrum.Analyzer, cfg *config.Config) *VelocityTool {
	return &VelocityTool{analyzer: analyzer, cfg: cfg}
}

// Definition returns the MCP tool definition for registration.
func (t *VelocityTool) Definition() mcp.Tool {
	return mcp.NewTool("velocity_report",
		mcp.WithDescription(
			"Report completed story points per closed sprint and predict "+
				"next-sprint capacity with conservative, realistic, and "+
				"optimistic estimates.",
		),
		mcp.WithString("board_id",
			mcp.Description("Board whose sprints to analyze. Defaults to the configured board."),
		),
		mcp.WithNumber("sprints",
			mcp.Description("How many recent closed sprints to include. Defaults to 5."),
		),
	)
}

// Handle processes the velocity_report tool call.
func (t *VelocityTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	boardID := req.GetString("board_id", t.cfg.Jira.BoardID)
	count := req.GetInt("sprints", intent.DefaultSprintCount)
	if count <= 0 {
		return mcp.NewToolResultError("`sprints` must be a positive number."), nil
	}

	rep, err := t.analyzer.Velocity(ctx, boardID, count)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Velocity analysis failed: %v", err)), nil
	}
	return mcp.NewToolResultText(report.Velocity(rep.Points, rep.Prediction, rep.HasPrediction)), nil
}
