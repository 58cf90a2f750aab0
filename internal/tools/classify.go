package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Matfejbat/jira-scrum-master-agent/internal/intent"
)

// ClassifyTool handles the classify_intent MCP tool. It exposes the
// routing decision without running any analysis, so callers can see
// how a question would be dispatched.
type ClassifyTool struct{}

// NewClassifyTool creates a ClassifyTool.
func NewClassifyTool() *ClassifyTool {
	return &ClassifyTool{}
}

// Definition returns the MCP tool definition for registration.
func (t *ClassifyTool) Definition() mcp.Tool {
	return mcp.NewTool("classify_intent",
		mcp.WithDescription(
			"Classify a question into one of the agent's intents "+
				"(sprint-health, velocity, standup, impediments, or "+
				"general-help) and show any sprint id or sprint count "+
				"extracted from it. No Jira calls are made.",
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The question to classify."),
		),
	)
}

// Handle processes the classify_intent tool call.
func (t *ClassifyTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := req.GetString("text", "")
	if text == "" {
		return mcp.NewToolResultError("`text` is required."), nil
	}

	in := intent.Classify(text)

	var b strings.Builder
	fmt.Fprintf(&b, "**Intent**: %s\n", in)
	if id, ok := intent.SprintID(text); ok {
		fmt.Fprintf(&b, "**Sprint**: %s\n", id)
	}
	if in == intent.Velocity {
		fmt.Fprintf(&b, "**Sprint count**: %d\n", intent.SprintCount(text))
	}
	return mcp.NewToolResultText(b.String()), nil
}
