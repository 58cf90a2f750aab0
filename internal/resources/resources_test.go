package resources

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Matfejbat/jira-scrum-master-agent/internal/config"
)

func readBoardConfig(t *testing.T, cfg *config.Config) boardConfig {
	t.Helper()
	h := NewHandler(cfg)

	req := mcp.ReadResourceRequest{}
	req.Params.URI = "scrum://board/config"

	contents, err := h.HandleBoardConfig(context.Background(), req)
	if err != nil {
		t.Fatalf("HandleBoardConfig: %v", err)
	}
	if len(contents) != 1 {
		t.Fatalf("got %d contents, want 1", len(contents))
	}
	text, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("contents[0] is %T, want TextResourceContents", contents[0])
	}

	var view boardConfig
	if err := json.Unmarshal([]byte(text.Text), &view); err != nil {
		t.Fatalf("unmarshal board config: %v", err)
	}
	return view
}

func TestHandleBoardConfig(t *testing.T) {
	view := readBoardConfig(t, &config.Config{
		Jira: config.Jira{
			URL:              "https://example.atlassian.net",
			Token:            "secret",
			BoardID:          "9",
			StoryPointsField: "customfield_10016",
		},
		OpenAI: config.OpenAI{APIKey: "key"},
	})

	if view.BoardID != "9" || view.StoryPointsField != "customfield_10016" {
		t.Errorf("view = %+v", view)
	}
	if !view.JiraConfigured || !view.LLMConfigured {
		t.Errorf("configured flags = %+v", view)
	}
}

func TestHandleBoardConfig_Unconfigured(t *testing.T) {
	view := readBoardConfig(t, &config.Config{
		Jira: config.Jira{BoardID: "1", StoryPointsField: "customfield_10016"},
	})

	if view.JiraConfigured || view.LLMConfigured {
		t.Errorf("nothing is configured, got %+v", view)
	}
}

func TestHandleBoardConfig_NoSecrets(t *testing.T) {
	cfg := &config.Config{
		Jira: config.Jira{
			URL:     "https://example.atlassian.net",
			Token:   "super-secret-token",
			BoardID: "1",
		},
		OpenAI: config.OpenAI{APIKey: "sk-secret"},
	}
	h := NewHandler(cfg)

	req := mcp.ReadResourceRequest{}
	req.Params.URI = "scrum://board/config"

	contents, err := h.HandleBoardConfig(context.Background(), req)
	if err != nil {
		t.Fatalf("HandleBoardConfig: %v", err)
	}
	text := contents[0].(mcp.TextResourceContents).Text
	if strings.Contains(text, "super-secret-token") || strings.Contains(text, "sk-secret") {
		t.Error("credentials leaked into the resource payload")
	}
}
