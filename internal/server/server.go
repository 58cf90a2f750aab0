// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it creates concrete implementations
// and injects them into the tools/prompts/resources that depend on them.
// No business logic lives here — only wiring.
package server

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/Matfejbat/jira-scrum-master-agent/internal/config"
	"github.com/Matfejbat/jira-scrum-master-agent/internal/jira"
	"github.com/Matfejbat/jira-scrum-master-agent/internal/llm"
	"github.com/Matfejbat/jira-scrum-master-agent/internal/memory"
	"github.com/Matfejbat/jira-scrum-master-agent/internal/prompts"
	"github.com/Matfejbat/jira-scrum-master-agent/internal/resources"
	"github.com/Matfejbat/jira-scrum-master-agent/internal/scrum"
	"github.com/Matfejbat/jira-scrum-master-agent/internal/tools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all tools, prompts,
// and resources registered. This is the single place where all
// dependencies are resolved.
//
// The returned cleanup function closes the Jira connection and the
// conversation store and must be called on shutdown (typically via
// defer). It is always non-nil and safe to call even if a subsystem
// failed to initialize.
func New(ctx context.Context) (*server.MCPServer, func(), error) {
	// --- Create shared dependencies ---

	cfg, err := config.Load()
	if err != nil {
		return nil, noop, fmt.Errorf("loading configuration: %w", err)
	}

	// zap's production config already writes to stderr, which matters
	// here: stdout carries the MCP stdio protocol.
	log, err := zap.NewProduction()
	if err != nil {
		return nil, noop, fmt.Errorf("creating logger: %w", err)
	}

	// --- Connect the Jira gateway ---
	//
	// The gateway is an independent subsystem: when the mcp-atlassian
	// subprocess cannot be started, the client still serves calls and
	// reports the outage per call. The agent stays up so classification
	// and conversation tools keep working.

	gateway, err := jira.Connect(ctx, cfg.Jira, Version, log)
	if err != nil {
		log.Warn("jira gateway unavailable, analyses will report the outage", zap.Error(err))
	}

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		"jira-scrum-master",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Conversation memory ---
	//
	// Memory is also independent: if the store fails to open, analyses
	// still run, exchanges are simply not recorded and the history tool
	// reports memory as unavailable.

	memStore, memErr := memory.New(memory.DefaultConfig(cfg.DataDir))
	if memErr != nil {
		log.Warn("conversation memory disabled", zap.Error(memErr))
		memStore = nil
	}

	cleanup := func() {
		if memStore != nil {
			if err := memStore.Close(); err != nil {
				log.Warn("closing conversation store", zap.Error(err))
			}
		}
		if err := gateway.Close(); err != nil {
			log.Warn("closing jira gateway", zap.Error(err))
		}
		_ = log.Sync()
	}

	// --- Build the analyzer ---

	analyzer := scrum.New(gateway, cfg, llm.New(cfg.OpenAI), log)

	// --- Register tools ---

	askTool := tools.NewAskTool(analyzer, memStore, log)
	s.AddTool(askTool.Definition(), askTool.Handle)

	healthTool := tools.NewSprintHealthTool(analyzer)
	s.AddTool(healthTool.Definition(), healthTool.Handle)

	velocityTool := tools.NewVelocityTool(analyzer, cfg)
	s.AddTool(velocityTool.Definition(), velocityTool.Handle)

	standupTool := tools.NewStandupTool(analyzer)
	s.AddTool(standupTool.Definition(), standupTool.Handle)

	impedimentsTool := tools.NewImpedimentsTool(analyzer)
	s.AddTool(impedimentsTool.Definition(), impedimentsTool.Handle)

	classifyTool := tools.NewClassifyTool()
	s.AddTool(classifyTool.Definition(), classifyTool.Handle)

	historyTool := tools.NewHistoryTool(memStore)
	s.AddTool(historyTool.Definition(), historyTool.Handle)

	// --- Register prompts ---

	standupPrompt := prompts.NewStandupPrompt()
	s.AddPrompt(standupPrompt.Definition(), standupPrompt.Handle)

	reviewPrompt := prompts.NewReviewPrompt()
	s.AddPrompt(reviewPrompt.Definition(), reviewPrompt.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(cfg)
	s.AddResource(resourceHandler.BoardConfigResource(), resourceHandler.HandleBoardConfig)

	return s, cleanup, nil
}

// noop is a no-op cleanup function used as the default before the
// subsystems are up.
func noop() {}

// serverInstructions returns the system instructions that tell the AI
// how to use the scrum master agent effectively.
func serverInstructions() string {
	return `You have access to a Jira scrum master agent.

## WHAT IT DOES

The agent reads the team's Jira board and answers scrum questions:
- Sprint health: completion progress, blocked work, a 0-100 health
  score, and recommendations
- Velocity: completed story points per closed sprint and capacity
  predictions for the next sprint
- Daily standup: per-member digest of yesterday's completions and
  today's in-progress work
- Impediments: blocked issues categorized as technical, external,
  process, or resource, with resolution strategies

## HOW TO USE IT

Prefer the specific tools when the user's request is unambiguous:
- sprint_health for "how is the sprint going", "are we on track"
- velocity_report for capacity and planning questions
- standup_report when facilitating the daily standup
- impediment_report for blockers and escalation questions

Use scrum_ask for free-form questions; it routes to the right analysis
itself. Pass the session_id it returns on follow-up calls so the
conversation is recorded as one session, and use conversation_history
to recall earlier exchanges.

classify_intent shows the routing decision without touching Jira. Use
it when the user asks why a question was answered a particular way.

## CEREMONY PROMPTS

- daily-standup walks through facilitating the standup
- sprint-review prepares talking points for the review meeting

## LIMITS

The agent reads Jira, it never writes to it. When Jira credentials are
missing or the board is unreachable, analyses return an error message
saying so; the conversation tools keep working.`
}
