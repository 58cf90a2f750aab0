package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Matfejbat/jira-scrum-master-agent/internal/memory"
)

// HistoryTool handles the conversation_history MCP tool over the
// conversation store.
type HistoryTool struct {
	store *memory.Store
}

// NewHistoryTool creates a HistoryTool. store may be nil when
// conversation memory is unavailable.
func NewHistoryTool(store *memory.Store) *HistoryTool {
	return &HistoryTool{store: store}
}

// Definition returns the MCP tool definition for registration.
func (t *HistoryTool) Definition() mcp.Tool {
	return mcp.NewTool("conversation_history",
		mcp.WithDescription(
			"Browse recorded conversations. With `session_id`, lists that "+
				"session's exchanges oldest first. With `query`, full-text "+
				"searches all exchanges. With neither, shows aggregate "+
				"statistics.",
		),
		mcp.WithString("session_id",
			mcp.Description("Session whose exchanges to list."),
		),
		mcp.WithString("query",
			mcp.Description("Full-text search over questions and answers."),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of exchanges to return."),
		),
	)
}

// Handle processes the conversation_history tool call.
func (t *HistoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.store == nil {
		return mcp.NewToolResultError("Conversation memory is not available."), nil
	}

	sessionID := req.GetString("session_id", "")
	query := req.GetString("query", "")
	limit := req.GetInt("limit", 0)

	switch {
	case query != "":
		exchanges, err := t.store.Search(query, limit)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Search failed: %v", err)), nil
		}
		if len(exchanges) == 0 {
			return mcp.NewToolResultText(fmt.Sprintf("No exchanges match %q.", query)), nil
		}
		return mcp.NewToolResultText(renderExchanges(
			fmt.Sprintf("## Matches for %q", query), exchanges, true)), nil

	case sessionID != "":
		exchanges, err := t.store.History(sessionID, limit)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Loading history failed: %v", err)), nil
		}
		if len(exchanges) == 0 {
			return mcp.NewToolResultText(fmt.Sprintf("No exchanges recorded for session `%s`.", sessionID)), nil
		}
		return mcp.NewToolResultText(renderExchanges(
			fmt.Sprintf("## Session `%s`", sessionID), exchanges, false)), nil

	default:
		stats, err := t.store.Stats()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Loading statistics failed: %v", err)), nil
		}
		var b strings.Builder
		b.WriteString("## Conversation Statistics\n\n")
		fmt.Fprintf(&b, "- **Sessions**: %d\n", stats.TotalSessions)
		fmt.Fprintf(&b, "- **Exchanges**: %d\n", stats.TotalExchanges)
		if len(stats.ByIntent) > 0 {
			b.WriteString("\n### By Intent\n")
			for _, in := range sortedKeys(stats.ByIntent) {
				fmt.Fprintf(&b, "- %s: %d\n", in, stats.ByIntent[in])
			}
		}
		return mcp.NewToolResultText(b.String()), nil
	}
}

func renderExchanges(header string, exchanges []memory.Exchange, showSession bool) string {
	var b strings.Builder
	b.WriteString(header + "\n")
	for _, ex := range exchanges {
		fmt.Fprintf(&b, "\n**%s** [%s]", ex.CreatedAt, ex.Intent)
		if showSession {
			fmt.Fprintf(&b, " (session `%s`)", ex.SessionID)
		}
		fmt.Fprintf(&b, "\n> %s\n\n%s\n", ex.UserText, truncateResponse(ex.Response))
	}
	return b.String()
}

const maxResponsePreview = 200

func truncateResponse(s string) string {
	if len(s) <= maxResponsePreview {
		return s
	}
	return s[:maxResponsePreview] + "..."
}
