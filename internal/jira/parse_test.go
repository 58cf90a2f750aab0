package jira

import (
	"errors"
	"testing"
)

var testParser = Parser{PointsField: "customfield_10016"}

func TestTicketsParsesTypedFields(t *testing.T) {
	payload := `{
		"issues": [
			{
				"key": "PROJ-12",
				"fields": {
					"summary": "Implement login flow",
					"status": {"name": "In Progress", "statusCategory": {"key": "indeterminate"}},
					"assignee": {"displayName": "Dana Torres"},
					"priority": {"name": "High"},
					"labels": ["auth", "blocked-by-infra"],
					"customfield_10016": 5,
					"updated": "2026-08-29T14:05:00.000+0000"
				}
			},
			{
				"key": "PROJ-13",
				"fields": {
					"summary": "Write docs",
					"status": {"name": "Done", "statusCategory": {"key": "done"}},
					"assignee": null,
					"labels": [],
					"customfield_10016": null
				}
			}
		]
	}`

	tickets, err := testParser.Tickets([]byte(payload))
	if err != nil {
		t.Fatalf("Tickets() error: %v", err)
	}
	if len(tickets) != 2 {
		t.Fatalf("got %d tickets, want 2", len(tickets))
	}

	first := tickets[0]
	if first.Key != "PROJ-12" {
		t.Errorf("Key = %q", first.Key)
	}
	if first.StatusCategory != CategoryInProgress {
		t.Errorf("StatusCategory = %q, want in-progress", first.StatusCategory)
	}
	if first.Assignee != "Dana Torres" {
		t.Errorf("Assignee = %q", first.Assignee)
	}
	if first.Priority != "High" {
		t.Errorf("Priority = %q", first.Priority)
	}
	if first.StoryPoints != 5 {
		t.Errorf("StoryPoints = %v, want 5", first.StoryPoints)
	}
	if first.Updated.IsZero() {
		t.Error("Updated should be parsed")
	}
	if got := first.Updated.UTC().Format("2006-01-02"); got != "2026-08-29" {
		t.Errorf("Updated date = %s", got)
	}

	second := tickets[1]
	if second.Assignee != Unassigned {
		t.Errorf("nil assignee should map to %q, got %q", Unassigned, second.Assignee)
	}
	if second.StoryPoints != 0 {
		t.Errorf("null estimate should be 0, got %v", second.StoryPoints)
	}
	if second.StatusCategory != CategoryDone {
		t.Errorf("StatusCategory = %q, want done", second.StatusCategory)
	}
}

func TestTicketsErrorPayload(t *testing.T) {
	_, err := testParser.Tickets([]byte(`{"error": "board not found"}`))
	if err == nil {
		t.Fatal("expected error for error payload")
	}
	msg, ok := IsGatewayError(err)
	if !ok {
		t.Fatalf("expected GatewayError, got %v", err)
	}
	if msg != "board not found" {
		t.Errorf("message = %q", msg)
	}
}

func TestTicketsMalformed(t *testing.T) {
	cases := map[string]string{
		"not json":    `{"issues": [`,
		"missing key": `{"issues": [{"fields": {"summary": "x"}}]}`,
		"bad updated": `{"issues": [{"key": "A-1", "fields": {"updated": "yesterday"}}]}`,
	}
	for name, payload := range cases {
		if _, err := testParser.Tickets([]byte(payload)); err == nil {
			t.Errorf("%s: expected parse error", name)
		}
	}
}

func TestTicketsEmpty(t *testing.T) {
	tickets, err := testParser.Tickets([]byte(`{"issues": []}`))
	if err != nil {
		t.Fatalf("Tickets() error: %v", err)
	}
	if len(tickets) != 0 {
		t.Errorf("got %d tickets, want 0", len(tickets))
	}
}

func TestSprintsParsesOrdered(t *testing.T) {
	payload := `{
		"values": [
			{"id": 41, "name": "Sprint 41", "state": "closed", "startDate": "2026-06-01T09:00:00.000Z", "endDate": "2026-06-14T17:00:00.000Z"},
			{"id": 42, "name": "Sprint 42", "state": "closed", "startDate": "2026-06-15T09:00:00.000Z", "endDate": "2026-06-28T17:00:00.000Z"}
		]
	}`

	sprints, err := testParser.Sprints([]byte(payload))
	if err != nil {
		t.Fatalf("Sprints() error: %v", err)
	}
	if len(sprints) != 2 {
		t.Fatalf("got %d sprints, want 2", len(sprints))
	}
	if sprints[0].ID != "41" || sprints[1].ID != "42" {
		t.Errorf("ordering not preserved: %s, %s", sprints[0].ID, sprints[1].ID)
	}
	if sprints[0].StartDate.After(sprints[0].EndDate) {
		t.Error("start date should precede end date")
	}
}

func TestSprintsErrorPayload(t *testing.T) {
	_, err := testParser.Sprints([]byte(`{"error": "session expired"}`))
	var ge *GatewayError
	if !errors.As(err, &ge) {
		t.Fatalf("expected GatewayError, got %v", err)
	}
}

func TestParseTimeLayouts(t *testing.T) {
	for _, value := range []string{
		"2026-08-29T14:05:00.000+0000",
		"2026-08-29T14:05:00.000Z",
		"2026-08-29T14:05:00Z",
		"2026-08-29",
	} {
		ts, err := parseTime(value)
		if err != nil {
			t.Errorf("parseTime(%q) error: %v", value, err)
			continue
		}
		if ts.Year() != 2026 {
			t.Errorf("parseTime(%q) = %v", value, ts)
		}
	}
	if _, err := parseTime("29/08/2026"); err == nil {
		t.Error("expected error for unsupported layout")
	}
}

func TestCategoryFromKey(t *testing.T) {
	cases := []struct {
		key  string
		want StatusCategory
	}{
		{"done", CategoryDone},
		{"indeterminate", CategoryInProgress},
		{"new", CategoryTodo},
		{"", CategoryTodo},
		{"mystery", CategoryTodo},
	}
	for _, tc := range cases {
		if got := categoryFromKey(tc.key); got != tc.want {
			t.Errorf("categoryFromKey(%q) = %q, want %q", tc.key, got, tc.want)
		}
	}
}

func TestStoryPointsNegativeClamped(t *testing.T) {
	payload := `{"issues": [{"key": "A-1", "fields": {"customfield_10016": -3}}]}`
	tickets, err := testParser.Tickets([]byte(payload))
	if err != nil {
		t.Fatalf("Tickets() error: %v", err)
	}
	if tickets[0].StoryPoints != 0 {
		t.Errorf("negative estimate should clamp to 0, got %v", tickets[0].StoryPoints)
	}
}
