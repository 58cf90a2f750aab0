package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// ReviewPrompt handles the sprint-review MCP prompt.
// It guides the AI through preparing a sprint review.
type ReviewPrompt struct{}

// NewReviewPrompt creates a ReviewPrompt.
func NewReviewPrompt() *ReviewPrompt {
	return &ReviewPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *ReviewPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("sprint-review",
		mcp.WithPromptDescription(
			"Prepare a sprint review: assess sprint health, compare the "+
				"outcome against historical velocity, and draft talking "+
				"points for the review meeting.",
		),
		mcp.WithArgument("sprint_id",
			mcp.ArgumentDescription("Sprint to review. Defaults to the active sprint."),
		),
	)
}

// Handle processes the sprint-review prompt request.
func (p *ReviewPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	sprintRef := "the active sprint"
	healthStep := "1. Run `sprint_health` to get completion progress and the health score\n"
	if args := req.Params.Arguments; args != nil {
		if id, ok := args["sprint_id"]; ok && id != "" {
			sprintRef = fmt.Sprintf("sprint %s", id)
			healthStep = fmt.Sprintf("1. Run `sprint_health` with sprint_id='%s'\n", id)
		}
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Prepare the review for %s", sprintRef),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"Please prepare a sprint review for %s.\n\n"+
						"%s"+
						"2. Run `velocity_report` to compare this sprint against recent history\n"+
						"3. Run `impediment_report` to list what blocked the team\n"+
						"4. Draft review talking points: what was delivered, what slipped and why, "+
						"how the velocity compares to the trend, and what the capacity outlook "+
						"for the next sprint is",
					sprintRef, healthStep,
				)),
			},
		},
	}, nil
}
