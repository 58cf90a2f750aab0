// Package prompts implements MCP prompt handlers for scrum ceremonies.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// StandupPrompt handles the daily-standup MCP prompt.
// It guides the AI through facilitating the daily standup.
type StandupPrompt struct{}

// NewStandupPrompt creates a StandupPrompt.
func NewStandupPrompt() *StandupPrompt {
	return &StandupPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *StandupPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("daily-standup",
		mcp.WithPromptDescription(
			"Facilitate the daily standup: gather what each team member "+
				"completed yesterday and is working on today, surface "+
				"blockers, and flag anything that needs follow-up.",
		),
	)
}

// Handle processes the daily-standup prompt request.
func (p *StandupPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return &mcp.GetPromptResult{
		Description: "Facilitate today's daily standup",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Please facilitate today's daily standup.\n\n" +
						"1. Run `standup_report` to get per-member updates from the open sprint\n" +
						"2. Run `impediment_report` to check for blocked work\n" +
						"3. Summarize the standup: who did what yesterday, who is working on what today\n" +
						"4. Call out anyone with no in-progress work or with blocked items\n" +
						"5. If there are impediments, suggest who should follow up on each one",
				),
			},
		},
	}, nil
}
