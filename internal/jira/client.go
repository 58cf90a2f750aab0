package jira

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/Matfejbat/jira-scrum-master-agent/internal/config"
)

// Standard mcp-atlassian tool names.
const (
	toolSearchIssues = "search_issues"
	toolBoardSprints = "get_board_sprints"
)

// Client is the concrete Gateway backed by an mcp-atlassian subprocess
// over MCP stdio. It is a lifecycle-scoped handle: created once at process
// start, injected into every request's analyzer calls, and closed at
// shutdown. There is no package-level session state.
type Client struct {
	mcp    *client.Client
	parser Parser
	log    *zap.Logger
}

// Connect spawns the mcp-atlassian server and performs the MCP handshake.
// On failure it returns a non-nil Client whose calls report ErrUnavailable,
// so the agent can keep serving with a degraded gateway.
func Connect(ctx context.Context, cfg config.Jira, version string, log *zap.Logger) (*Client, error) {
	c := &Client{
		parser: Parser{PointsField: cfg.StoryPointsField},
		log:    log,
	}

	mc, err := client.NewStdioMCPClient(cfg.MCPCommand, nil,
		"mcp-atlassian",
		"--jira-url="+cfg.URL,
		"--jira-username="+cfg.Username,
		"--jira-token="+cfg.Token,
	)
	if err != nil {
		return c, fmt.Errorf("jira: spawning %s: %w", cfg.MCPCommand, err)
	}

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{
		Name:    "scrum-agent",
		Version: version,
	}
	if _, err := mc.Initialize(ctx, initReq); err != nil {
		_ = mc.Close()
		return c, fmt.Errorf("jira: MCP handshake: %w", err)
	}

	log.Info("connected to Jira MCP server", zap.String("url", cfg.URL))
	c.mcp = mc
	return c, nil
}

// Close stops the gateway subprocess. Safe to call on a never-connected
// client.
func (c *Client) Close() error {
	if c.mcp == nil {
		return nil
	}
	return c.mcp.Close()
}

// SearchIssues implements Gateway.
func (c *Client) SearchIssues(ctx context.Context, jql string, fields []string) ([]Ticket, error) {
	data, err := c.call(ctx, toolSearchIssues, map[string]any{
		"jql":    jql,
		"fields": fields,
	})
	if err != nil {
		return nil, err
	}
	return c.parser.Tickets(data)
}

// BoardSprints implements Gateway.
func (c *Client) BoardSprints(ctx context.Context, boardID, state string) ([]Sprint, error) {
	data, err := c.call(ctx, toolBoardSprints, map[string]any{
		"board_id": boardID,
		"state":    state,
	})
	if err != nil {
		return nil, err
	}
	return c.parser.Sprints(data)
}

// call invokes a gateway tool and returns the raw text payload from the
// first content block. Tool-level errors become GatewayError; transport
// errors are wrapped as-is. Cancellation of ctx abandons the in-flight
// call without side effects — the gateway is read-only.
func (c *Client) call(ctx context.Context, tool string, args map[string]any) ([]byte, error) {
	if c.mcp == nil {
		return nil, ErrUnavailable
	}

	req := mcp.CallToolRequest{}
	req.Params.Name = tool
	req.Params.Arguments = args

	res, err := c.mcp.CallTool(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("jira: calling %s: %w", tool, err)
	}

	text := firstText(res)
	if res.IsError {
		c.log.Warn("gateway tool returned error", zap.String("tool", tool), zap.String("message", text))
		return nil, &GatewayError{Message: text}
	}
	if text == "" {
		return nil, &GatewayError{Message: "no content returned from " + tool}
	}
	return []byte(text), nil
}

func firstText(res *mcp.CallToolResult) string {
	if res == nil {
		return ""
	}
	for _, content := range res.Content {
		if tc, ok := content.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}
