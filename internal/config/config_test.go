package config

import (
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JIRA_URL", "")
	t.Setenv("JIRA_USERNAME", "")
	t.Setenv("JIRA_TOKEN", "")
	t.Setenv("JIRA_BOARD_ID", "")
	t.Setenv("JIRA_STORY_POINTS_FIELD", "")
	t.Setenv("JIRA_MCP_COMMAND", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("OPENAI_BASE_URL", "")
	t.Setenv("OPENAI_MODEL", "")
	t.Setenv("SCRUM_AGENT_DATA_DIR", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Jira.BoardID != "1" {
		t.Errorf("BoardID = %q, want %q", cfg.Jira.BoardID, "1")
	}
	if cfg.Jira.StoryPointsField != "customfield_10016" {
		t.Errorf("StoryPointsField = %q, want %q", cfg.Jira.StoryPointsField, "customfield_10016")
	}
	if cfg.Jira.MCPCommand != "uvx" {
		t.Errorf("MCPCommand = %q, want %q", cfg.Jira.MCPCommand, "uvx")
	}
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Errorf("Model = %q, want %q", cfg.OpenAI.Model, "gpt-4o-mini")
	}
	if cfg.OpenAI.BaseURL != "https://api.openai.com/v1" {
		t.Errorf("BaseURL = %q", cfg.OpenAI.BaseURL)
	}
	if filepath.Base(cfg.DataDir) != ".scrum-agent" {
		t.Errorf("DataDir = %q, want a .scrum-agent dir", cfg.DataDir)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("JIRA_URL", "https://acme.atlassian.net")
	t.Setenv("JIRA_USERNAME", "dev@acme.com")
	t.Setenv("JIRA_TOKEN", "tok")
	t.Setenv("JIRA_BOARD_ID", "42")
	t.Setenv("JIRA_STORY_POINTS_FIELD", "customfield_20001")
	t.Setenv("SCRUM_AGENT_DATA_DIR", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Jira.URL != "https://acme.atlassian.net" {
		t.Errorf("URL = %q", cfg.Jira.URL)
	}
	if cfg.Jira.BoardID != "42" {
		t.Errorf("BoardID = %q, want 42", cfg.Jira.BoardID)
	}
	if cfg.Jira.StoryPointsField != "customfield_20001" {
		t.Errorf("StoryPointsField = %q", cfg.Jira.StoryPointsField)
	}
}
