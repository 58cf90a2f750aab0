// Jira Scrum Master Agent: a conversational MCP server over a Jira board.
//
// It answers sprint health, velocity, standup, and impediment questions
// by querying Jira through the mcp-atlassian gateway, and integrates
// with any MCP-capable AI tool over stdio.
//
// Usage:
//
//	scrum-agent serve    # Start MCP server (stdio transport)
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	agentserver "github.com/Matfejbat/jira-scrum-master-agent/internal/server"
	"github.com/mark3labs/mcp-go/server"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("scrum-agent v%s\n", agentserver.Version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func run() error {
	// Graceful shutdown on interrupt. The context bounds the gateway
	// subprocess handshake and is cancelled on SIGINT/SIGTERM.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		cancel()
	}()

	s, cleanup, err := agentserver.New(ctx)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	return server.ServeStdio(s)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Jira Scrum Master Agent v%s

Usage:
  scrum-agent serve    Start the MCP server (stdio transport)

Configuration (environment, .env supported):
  JIRA_URL                  Jira instance URL
  JIRA_USERNAME             Jira account email
  JIRA_TOKEN                Jira API token
  JIRA_BOARD_ID             Board to operate on (default: 1)
  JIRA_STORY_POINTS_FIELD   Story points custom field (default: customfield_10016)
  OPENAI_API_KEY            Optional, enables free-form answers

  Add to your AI tool's MCP config:

  {
    "mcpServers": {
      "scrum-agent": {
        "command": "scrum-agent",
        "args": ["serve"]
      }
    }
  }
`, agentserver.Version)
}
