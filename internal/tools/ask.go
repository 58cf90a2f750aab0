// Package tools implements the MCP tool surface of the scrum master
// agent. Each tool is a small struct holding its dependencies, with a
// Definition for registration and a Handle for calls.
package tools

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/Matfejbat/jira-scrum-master-agent/internal/memory"
	"github.com/Matfejbat/jira-scrum-master-agent/internal/scrum"
)

// AskTool handles the scrum_ask MCP tool, the conversational entry
// point. It routes the question to the matching analysis and records
// the exchange in conversation memory when available.
type AskTool struct {
	analyzer *scrum.Analyzer
	store    *memory.Store
	log      *zap.Logger
}

// NewAskTool creates an AskTool. store may be nil when conversation
// memory is unavailable; exchanges are simply not recorded.
func NewAskTool(analyzer *scrum.Analyzer, store *memory.Store, log *zap.Logger) *AskTool {
	return &AskTool{analyzer: analyzer, store: store, log: log}
}

// Definition returns the MCP tool definition for registration.
func (t *AskTool) Definition() mcp.Tool {
	return mcp.NewTool("scrum_ask",
		mcp.WithDescription(
			"Ask the scrum master agent a question in natural language. "+
				"Routes to sprint health, velocity, standup, or impediment "+
				"analysis based on the question, or answers general scrum "+
				"questions. Pass `session_id` to keep conversation history "+
				"across calls; a new session is started when omitted.",
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The question or request, e.g. \"What's our sprint status?\""),
		),
		mcp.WithString("session_id",
			mcp.Description("Conversation session to record this exchange under. Omit to start a new session."),
		),
	)
}

// Handle processes the scrum_ask tool call.
func (t *AskTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := req.GetString("text", "")
	if text == "" {
		return mcp.NewToolResultError("`text` is required."), nil
	}

	sessionID := req.GetString("session_id", "")
	newSession := sessionID == ""
	if newSession {
		sessionID = uuid.NewString()
	}

	in, response := t.analyzer.Ask(ctx, text)

	if t.store != nil {
		_, err := t.store.AddExchange(memory.AddExchangeParams{
			SessionID: sessionID,
			UserText:  text,
			Intent:    string(in),
			Response:  response,
		})
		if err != nil {
			// Memory is best effort, the answer still goes out.
			t.log.Warn("recording exchange failed", zap.Error(err))
		}
	}

	if newSession {
		response += fmt.Sprintf("\n\n---\n*Session: `%s`*", sessionID)
	}
	return mcp.NewToolResultText(response), nil
}
