package metrics

import (
	"strings"
	"testing"

	"github.com/Matfejbat/jira-scrum-master-agent/internal/jira"
)

func TestCategorize(t *testing.T) {
	cases := []struct {
		summary string
		want    Category
	}{
		{"waiting on external API dependency", CategoryExternal},
		{"needs manager approval", CategoryProcess},
		{"team at capacity", CategoryResource},
		{"database connection bug", CategoryTechnical},
		{"Waiting for security REVIEW", CategoryExternal}, // external precedes process
		{"", CategoryTechnical},
	}
	for _, tc := range cases {
		if got := Categorize(tc.summary); got != tc.want {
			t.Errorf("Categorize(%q) = %q, want %q", tc.summary, got, tc.want)
		}
	}
}

func TestImpedimentsReport(t *testing.T) {
	tickets := []jira.Ticket{
		{Key: "A-1", Summary: "waiting on vendor fix", Assignee: "Dana", Priority: "High"},
		{Key: "A-2", Summary: "stuck in code review", Assignee: "Lee"},
		{Key: "A-3", Summary: "flaky integration test"},
	}

	report := Impediments(tickets)

	if report.Total != 3 {
		t.Errorf("Total = %d, want 3", report.Total)
	}
	if report.Categories[CategoryExternal] != 1 ||
		report.Categories[CategoryProcess] != 1 ||
		report.Categories[CategoryTechnical] != 1 ||
		report.Categories[CategoryResource] != 0 {
		t.Errorf("Categories = %v", report.Categories)
	}

	// Defaults for missing assignee/priority.
	third := report.Impediments[2]
	if third.Assignee != jira.Unassigned {
		t.Errorf("Assignee = %q, want Unassigned", third.Assignee)
	}
	if third.Priority != "Medium" {
		t.Errorf("Priority = %q, want Medium", third.Priority)
	}

	// One strategy per present category, in category order.
	if len(report.Strategies) != 3 {
		t.Fatalf("got %d strategies, want 3: %v", len(report.Strategies), report.Strategies)
	}
	if !strings.HasPrefix(report.Strategies[0], "Technical impediments") {
		t.Errorf("first strategy = %q, want the technical advisory", report.Strategies[0])
	}
	if !strings.HasPrefix(report.Strategies[1], "External dependencies") {
		t.Errorf("second strategy = %q", report.Strategies[1])
	}
	if !strings.HasPrefix(report.Strategies[2], "Process blockers") {
		t.Errorf("third strategy = %q", report.Strategies[2])
	}
}

func TestImpedimentsEmpty(t *testing.T) {
	report := Impediments(nil)
	if report.Total != 0 || len(report.Strategies) != 0 {
		t.Errorf("empty input should produce an empty report: %+v", report)
	}
}
