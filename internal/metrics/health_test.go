package metrics

import (
	"strings"
	"testing"

	"github.com/Matfejbat/jira-scrum-master-agent/internal/jira"
)

func ticket(key string, cat jira.StatusCategory, points float64) jira.Ticket {
	return jira.Ticket{Key: key, StatusCategory: cat, StoryPoints: points}
}

func blockedTicket(key string) jira.Ticket {
	return jira.Ticket{Key: key, StatusName: "Blocked", StatusCategory: jira.CategoryInProgress}
}

func TestSprintHealthEmpty(t *testing.T) {
	res := SprintHealth(nil)
	if !res.NoIssues {
		t.Error("empty snapshot should flag NoIssues")
	}
	if res.TotalIssues != 0 || res.HealthScore != 0 || len(res.Recommendations) != 0 {
		t.Errorf("derived fields should be zero: %+v", res)
	}
}

func TestSprintHealthCounts(t *testing.T) {
	tickets := []jira.Ticket{
		ticket("A-1", jira.CategoryDone, 3),
		ticket("A-2", jira.CategoryDone, 5),
		ticket("A-3", jira.CategoryInProgress, 8),
		ticket("A-4", jira.CategoryTodo, 0),
	}
	res := SprintHealth(tickets)

	if res.TotalIssues != 4 || res.CompletedIssues != 2 {
		t.Errorf("issues = %d/%d, want 2/4", res.CompletedIssues, res.TotalIssues)
	}
	if res.TotalPoints != 16 || res.CompletedPoints != 8 {
		t.Errorf("points = %v/%v, want 8/16", res.CompletedPoints, res.TotalPoints)
	}
	if res.ProgressPct != 50.0 {
		t.Errorf("ProgressPct = %v, want 50.0", res.ProgressPct)
	}
	if res.PointProgressPct != 50.0 {
		t.Errorf("PointProgressPct = %v, want 50.0", res.PointProgressPct)
	}
	if res.CompletedIssues < 0 || res.CompletedIssues > res.TotalIssues {
		t.Error("completed/total invariant violated")
	}
}

func TestSprintHealthZeroPoints(t *testing.T) {
	res := SprintHealth([]jira.Ticket{ticket("A-1", jira.CategoryDone, 0)})
	if res.PointProgressPct != 0 {
		t.Errorf("PointProgressPct with no points = %v, want 0", res.PointProgressPct)
	}
}

func TestBlockerDetection(t *testing.T) {
	tickets := []jira.Ticket{
		{Key: "A-1", StatusName: "Blocked"},
		{Key: "A-2", StatusName: "In Progress", Labels: []string{"blocked-by-infra"}},
		{Key: "A-3", StatusName: "In Progress", Labels: []string{"frontend"}},
		{Key: "A-4", StatusName: "BLOCKED externally"},
	}
	res := SprintHealth(tickets)
	if len(res.Blockers) != 3 {
		t.Fatalf("got %d blockers, want 3", len(res.Blockers))
	}
	for _, b := range res.Blockers {
		if b.Key == "A-3" {
			t.Error("A-3 should not be a blocker")
		}
	}
}

func TestHealthScoreAnchors(t *testing.T) {
	cases := []struct {
		progress float64
		blockers int
		check    func(float64) bool
		desc     string
	}{
		{80, 0, func(s float64) bool { return s >= 60 }, "progress 80, no blockers >= 60"},
		{100, 0, func(s float64) bool { return s > 75 }, "progress 100, no blockers > 75"},
		{20, 3, func(s float64) bool { return s < 50 }, "progress 20, 3 blockers < 50"},
		{100, 10, func(s float64) bool { return s == 50 }, "penalty capped at 30"},
		{0, 5, func(s float64) bool { return s == 0 }, "clamped at 0"},
	}
	for _, tc := range cases {
		got := healthScore(tc.progress, tc.blockers)
		if !tc.check(got) {
			t.Errorf("%s: score = %v", tc.desc, got)
		}
		if got < 0 || got > 100 {
			t.Errorf("%s: score %v outside [0,100]", tc.desc, got)
		}
	}
}

func TestHealthScoreBoundsOverSnapshot(t *testing.T) {
	tickets := []jira.Ticket{
		ticket("A-1", jira.CategoryDone, 5),
		blockedTicket("A-2"),
		blockedTicket("A-3"),
		blockedTicket("A-4"),
		blockedTicket("A-5"),
	}
	res := SprintHealth(tickets)
	if res.HealthScore < 0 || res.HealthScore > 100 {
		t.Errorf("HealthScore = %v outside [0,100]", res.HealthScore)
	}
}

func TestRecommendations(t *testing.T) {
	cases := []struct {
		progress float64
		blockers int
		contains string
	}{
		{30, 0, "behind"},
		{70, 2, "blockers need immediate attention"},
		{85, 0, "on track"},
	}
	for _, tc := range cases {
		recs := recommendations(tc.progress, tc.blockers)
		found := false
		for _, r := range recs {
			if strings.Contains(r, tc.contains) {
				found = true
			}
		}
		if !found {
			t.Errorf("recommendations(%v, %d) = %v, want one containing %q",
				tc.progress, tc.blockers, recs, tc.contains)
		}
	}
}

func TestRecommendationsEscalation(t *testing.T) {
	recs := recommendations(40, 4)
	if len(recs) != 3 {
		t.Fatalf("got %d recommendations, want 3: %v", len(recs), recs)
	}
	if !strings.Contains(recs[2], "impediment removal session") {
		t.Errorf("expected escalation advisory, got %v", recs)
	}
}

func TestSprintHealthDoesNotMutateInput(t *testing.T) {
	tickets := []jira.Ticket{ticket("A-1", jira.CategoryDone, 3)}
	_ = SprintHealth(tickets)
	if tickets[0].Key != "A-1" || tickets[0].StoryPoints != 3 || tickets[0].StatusCategory != jira.CategoryDone {
		t.Error("input ticket was mutated")
	}
}
