// Package report renders analysis results as markdown for the chat
// surface. Layout follows the reports the team already reads: headers,
// bold metrics, traffic-light health emoji, short ticket lists.
package report

import (
	"fmt"
	"strings"

	"github.com/Matfejbat/jira-scrum-master-agent/internal/metrics"
)

const maxBlockersShown = 3

// SprintHealth renders a HealthResult.
func SprintHealth(res metrics.HealthResult) string {
	if res.NoIssues {
		return "## Sprint Health Analysis\n\nNo issues found in this sprint."
	}

	var b strings.Builder
	b.WriteString("## Sprint Health Analysis\n\n")
	fmt.Fprintf(&b, "**Health Score: %.1f/100** %s\n\n", res.HealthScore, healthEmoji(res.HealthScore))

	b.WriteString("### Progress Metrics\n")
	fmt.Fprintf(&b, "- **Issues**: %d/%d (%.1f%%)\n", res.CompletedIssues, res.TotalIssues, res.ProgressPct)
	fmt.Fprintf(&b, "- **Story Points**: %.0f/%.0f (%.1f%%)\n\n", res.CompletedPoints, res.TotalPoints, res.PointProgressPct)

	b.WriteString("### Blockers\n")
	if len(res.Blockers) == 0 {
		b.WriteString("✅ No active blockers\n")
	} else {
		fmt.Fprintf(&b, "**%d Active Blockers**\n", len(res.Blockers))
		for i, blocker := range res.Blockers {
			if i == maxBlockersShown {
				break
			}
			fmt.Fprintf(&b, "- %s: %s\n", blocker.Key, blocker.Summary)
		}
	}

	if len(res.Recommendations) > 0 {
		b.WriteString("\n### Recommendations\n")
		for _, rec := range res.Recommendations {
			fmt.Fprintf(&b, "- %s\n", rec)
		}
	}
	return b.String()
}

func healthEmoji(score float64) string {
	switch {
	case score > 70:
		return "🟢"
	case score > 40:
		return "🟡"
	default:
		return "🔴"
	}
}

const maxVelocitySprintsShown = 5

// Velocity renders the velocity history and, when available, the
// next-sprint prediction. hasPrediction=false renders the no-data notice.
func Velocity(points []metrics.VelocityPoint, pred metrics.VelocityPrediction, hasPrediction bool) string {
	var b strings.Builder
	b.WriteString("## Velocity Analysis\n\n")

	b.WriteString("### Recent Sprint Velocities\n")
	shown := points
	if len(shown) > maxVelocitySprintsShown {
		shown = shown[len(shown)-maxVelocitySprintsShown:]
	}
	for _, p := range shown {
		fmt.Fprintf(&b, "- **%s**: %.0f story points\n", p.SprintName, p.Velocity)
	}

	if !hasPrediction {
		b.WriteString("\nNo velocity data available. Completed sprints have no measured story points.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "\n**Average Velocity**: %.1f story points\n", pred.Average)
	b.WriteString("\n### Next Sprint Predictions\n")
	fmt.Fprintf(&b, "- **Conservative**: %d story points\n", pred.Conservative)
	fmt.Fprintf(&b, "- **Realistic**: %d story points\n", pred.Realistic)
	fmt.Fprintf(&b, "- **Optimistic**: %d story points\n\n", pred.Optimistic)
	fmt.Fprintf(&b, "**Confidence Level**: %s\n", pred.Confidence)
	return b.String()
}

const maxSummaryLen = 50

// Standup renders the daily standup digest, one section per named team
// member. The Unassigned bucket is counted in the summary but not listed.
func Standup(digest metrics.StandupDigest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Daily Standup Report - %s\n\n", digest.Date)

	b.WriteString("### Team Summary\n")
	fmt.Fprintf(&b, "- **Active Members**: %d\n", digest.ActiveMembers)
	fmt.Fprintf(&b, "- **Work in Progress**: %d items\n\n", digest.TotalInProgress)

	b.WriteString("### Team Updates\n")
	for _, member := range digest.Members() {
		update := digest.Updates[member]
		fmt.Fprintf(&b, "\n**%s**:\n", member)

		if len(update.CompletedYesterday) > 0 {
			b.WriteString("  ✅ *Completed yesterday*:\n")
			for _, ref := range update.CompletedYesterday {
				fmt.Fprintf(&b, "    - %s: %s\n", ref.Key, truncate(ref.Summary, maxSummaryLen))
			}
		}
		if len(update.InProgress) > 0 {
			b.WriteString("  🔄 *Working on today*:\n")
			for _, ref := range update.InProgress {
				fmt.Fprintf(&b, "    - %s: %s\n", ref.Key, truncate(ref.Summary, maxSummaryLen))
			}
		}
	}
	return b.String()
}

// Impediments renders the triage report with per-category tallies and
// resolution strategies.
func Impediments(rep metrics.ImpedimentReport) string {
	var b strings.Builder
	b.WriteString("## Impediment Analysis\n\n")

	b.WriteString("### Summary\n")
	fmt.Fprintf(&b, "- **Total Impediments**: %d\n", rep.Total)
	fmt.Fprintf(&b, "- **By Category**: Technical (%d), External (%d), Process (%d), Resource (%d)\n\n",
		rep.Categories[metrics.CategoryTechnical],
		rep.Categories[metrics.CategoryExternal],
		rep.Categories[metrics.CategoryProcess],
		rep.Categories[metrics.CategoryResource],
	)

	if rep.Total == 0 {
		b.WriteString("✅ No active impediments\n")
		return b.String()
	}

	b.WriteString("### Active Impediments\n")
	for _, imp := range rep.Impediments {
		fmt.Fprintf(&b, "- **%s** (%s): %s\n", imp.Key, imp.Category, truncate(imp.Summary, 60))
		fmt.Fprintf(&b, "  *Assigned to: %s | Priority: %s*\n", imp.Assignee, imp.Priority)
	}

	if len(rep.Strategies) > 0 {
		b.WriteString("\n### Resolution Strategies\n")
		for _, s := range rep.Strategies {
			fmt.Fprintf(&b, "- %s\n", s)
		}
	}
	return b.String()
}

// Overview is the general-help capability summary returned when no
// analysis intent matches.
func Overview() string {
	return `## Jira Scrum Master - How can I help?

I can assist you with:

**Sprint Analysis** - Check sprint health, progress, and get recommendations
*Try: "What's our sprint status?" or "How is our current sprint doing?"*

**Velocity Tracking** - Analyze team velocity trends and capacity planning
*Try: "Show me our velocity trends" or "What's our capacity for next sprint?"*

**Standup Facilitation** - Generate daily standup reports and team coordination
*Try: "Generate today's standup report" or "What's the team working on?"*

**Impediment Management** - Identify blockers and resolution strategies
*Try: "What blockers do we have?" or "Show me current impediments"*

What would you like to explore?`
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
