// Package resources implements MCP resource handlers for the agent.
//
// Resources provide read-only data that the host can consume for context.
// They use URI-based addressing (scrum://...) following MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Matfejbat/jira-scrum-master-agent/internal/config"
)

// Handler manages the agent's resource endpoints.
type Handler struct {
	cfg *config.Config
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(cfg *config.Config) *Handler {
	return &Handler{cfg: cfg}
}

// boardConfig is the exposed view of the board setup. Credentials are
// deliberately not part of it.
type boardConfig struct {
	JiraURL          string `json:"jira_url,omitempty"`
	BoardID          string `json:"board_id"`
	StoryPointsField string `json:"story_points_field"`
	JiraConfigured   bool   `json:"jira_configured"`
	LLMConfigured    bool   `json:"llm_configured"`
}

// BoardConfigResource returns the MCP resource definition for the
// board configuration.
func (h *Handler) BoardConfigResource() mcp.Resource {
	return mcp.NewResource(
		"scrum://board/config",
		"Scrum Board Configuration",
		mcp.WithResourceDescription("The Jira board the agent is operating against and which subsystems are configured"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleBoardConfig returns the board configuration as JSON.
func (h *Handler) HandleBoardConfig(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	view := boardConfig{
		JiraURL:          h.cfg.Jira.URL,
		BoardID:          h.cfg.Jira.BoardID,
		StoryPointsField: h.cfg.Jira.StoryPointsField,
		JiraConfigured:   h.cfg.Jira.URL != "" && h.cfg.Jira.Token != "",
		LLMConfigured:    h.cfg.OpenAI.APIKey != "",
	}

	data, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling board config: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
