// Package config loads agent configuration from the environment.
//
// A .env file in the working directory is honored when present (godotenv),
// matching how the agent is typically launched from an MCP host config.
// Missing Jira credentials are not a startup error — the gateway simply
// reports itself unavailable until they are provided.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Jira holds everything needed to spawn and query the mcp-atlassian gateway.
type Jira struct {
	URL      string
	Username string
	Token    string

	// BoardID is the default board for velocity queries when the user
	// doesn't name one.
	BoardID string

	// StoryPointsField is the Jira custom field carrying story point
	// estimates. Varies per Jira instance; customfield_10016 is the
	// common cloud default.
	StoryPointsField string

	// MCPCommand is the launcher for the mcp-atlassian server process.
	MCPCommand string
}

// OpenAI holds the optional LLM augmentation settings.
// An empty APIKey disables the LLM entirely.
type OpenAI struct {
	APIKey  string
	BaseURL string
	Model   string
}

// Config is the full agent configuration, resolved once at startup and
// injected into the components that need it.
type Config struct {
	Jira    Jira
	OpenAI  OpenAI
	DataDir string
}

// Load reads configuration from the environment, applying defaults.
// It never fails on missing optional values; the only error source is
// resolving the user home directory for the default data dir.
func Load() (*Config, error) {
	// Best-effort: a missing .env file is the normal case.
	_ = godotenv.Load()

	dataDir := os.Getenv("SCRUM_AGENT_DATA_DIR")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dataDir = filepath.Join(home, ".scrum-agent")
	}

	return &Config{
		Jira: Jira{
			URL:              os.Getenv("JIRA_URL"),
			Username:         os.Getenv("JIRA_USERNAME"),
			Token:            os.Getenv("JIRA_TOKEN"),
			BoardID:          envOr("JIRA_BOARD_ID", "1"),
			StoryPointsField: envOr("JIRA_STORY_POINTS_FIELD", "customfield_10016"),
			MCPCommand:       envOr("JIRA_MCP_COMMAND", "uvx"),
		},
		OpenAI: OpenAI{
			APIKey:  os.Getenv("OPENAI_API_KEY"),
			BaseURL: envOr("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Model:   envOr("OPENAI_MODEL", "gpt-4o-mini"),
		},
		DataDir: dataDir,
	}, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
