// Package metrics computes sprint aggregates from ticket snapshots.
//
// Every function here is pure: tickets are read-only input owned by the
// caller, results are built fresh per call, and there is no I/O. Fetch
// failures are the caller's problem — by the time an aggregator runs, a
// ticket list (possibly empty) is already in hand.
package metrics

import (
	"fmt"
	"math"
	"strings"

	"github.com/Matfejbat/jira-scrum-master-agent/internal/jira"
)

// Health-score weights: progress dominates, each blocker costs a fixed
// penalty capped so blockers alone can't zero out a mostly-done sprint.
const (
	progressWeight    = 0.8
	blockerPenalty    = 10.0
	maxBlockerPenalty = 30.0
)

// HealthResult summarizes one sprint's progress and risk.
// Invariants: 0 <= CompletedIssues <= TotalIssues, HealthScore in [0,100].
type HealthResult struct {
	NoIssues bool

	TotalIssues     int
	CompletedIssues int
	TotalPoints     float64
	CompletedPoints float64

	// Percentages rounded to one decimal.
	ProgressPct      float64
	PointProgressPct float64

	Blockers        []jira.Ticket
	HealthScore     float64
	Recommendations []string
}

// SprintHealth aggregates a sprint's ticket snapshot. An empty snapshot
// short-circuits to a NoIssues result with all derived fields zero.
func SprintHealth(tickets []jira.Ticket) HealthResult {
	total := len(tickets)
	if total == 0 {
		return HealthResult{NoIssues: true}
	}

	var res HealthResult
	res.TotalIssues = total

	for _, t := range tickets {
		res.TotalPoints += t.StoryPoints
		if t.StatusCategory == jira.CategoryDone {
			res.CompletedIssues++
			res.CompletedPoints += t.StoryPoints
		}
		if isBlocked(t) {
			res.Blockers = append(res.Blockers, t)
		}
	}

	progress := float64(res.CompletedIssues) / float64(total) * 100
	res.ProgressPct = round1(progress)
	if res.TotalPoints > 0 {
		res.PointProgressPct = round1(res.CompletedPoints / res.TotalPoints * 100)
	}

	res.HealthScore = healthScore(progress, len(res.Blockers))
	res.Recommendations = recommendations(progress, len(res.Blockers))
	return res
}

// isBlocked reports whether a ticket counts toward the blocker set:
// a status name containing "blocked" or any label containing "blocked",
// case-insensitive.
func isBlocked(t jira.Ticket) bool {
	if strings.Contains(strings.ToLower(t.StatusName), "blocked") {
		return true
	}
	for _, label := range t.Labels {
		if strings.Contains(strings.ToLower(label), "blocked") {
			return true
		}
	}
	return false
}

// healthScore derives the 0-100 scalar: weighted progress minus a capped
// blocker penalty, rounded to one decimal, then clamped.
func healthScore(progress float64, blockerCount int) float64 {
	base := progress * progressWeight
	penalty := math.Min(float64(blockerCount)*blockerPenalty, maxBlockerPenalty)
	return math.Max(0, math.Min(100, round1(base-penalty)))
}

// recommendations emits every applicable advisory, in fixed order.
func recommendations(progress float64, blockerCount int) []string {
	var recs []string
	if progress < 50 {
		recs = append(recs, "Sprint progress is behind - consider daily check-ins and scope review")
	}
	if blockerCount > 0 {
		recs = append(recs, fmt.Sprintf("%d blockers need immediate attention", blockerCount))
	}
	if blockerCount > 3 {
		recs = append(recs, "High number of blockers - schedule impediment removal session")
	}
	if progress > 80 {
		recs = append(recs, "Sprint is on track - maintain current momentum")
	}
	return recs
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
