package metrics

import (
	"strings"

	"github.com/Matfejbat/jira-scrum-master-agent/internal/jira"
)

// Category is an impediment's root-cause bucket.
type Category string

const (
	CategoryTechnical Category = "technical"
	CategoryExternal  Category = "external"
	CategoryProcess   Category = "process"
	CategoryResource  Category = "resource"
)

// categoryOrder fixes the reporting order for tallies and strategies.
var categoryOrder = []Category{CategoryTechnical, CategoryExternal, CategoryProcess, CategoryResource}

// categoryRules is the ordered keyword table for summary-text
// categorization; first match wins, technical is the fallback.
var categoryRules = []struct {
	category Category
	keywords []string
}{
	{CategoryExternal, []string{"waiting", "dependency", "external"}},
	{CategoryProcess, []string{"approval", "process", "review"}},
	{CategoryResource, []string{"resource", "capacity", "availability"}},
}

// resolutionStrategies maps each category to its fixed advisory.
var resolutionStrategies = map[Category]string{
	CategoryTechnical: "Technical impediments: Assign senior developers or create technical spikes",
	CategoryExternal:  "External dependencies: Follow up with external teams and escalate if needed",
	CategoryProcess:   "Process blockers: Review approval workflows and expedite where possible",
	CategoryResource:  "Resource constraints: Reassign work or bring in additional capacity",
}

// Impediment is one categorized blocked ticket.
type Impediment struct {
	Key      string
	Summary  string
	Category Category
	Assignee string
	Priority string
}

// ImpedimentReport tallies a sprint's blocked work by root cause.
type ImpedimentReport struct {
	Total       int
	Impediments []Impediment
	Categories  map[Category]int
	Strategies  []string
}

// Impediments categorizes the given blocked tickets and attaches one
// resolution strategy per category present.
func Impediments(tickets []jira.Ticket) ImpedimentReport {
	report := ImpedimentReport{
		Categories: map[Category]int{
			CategoryTechnical: 0,
			CategoryExternal:  0,
			CategoryProcess:   0,
			CategoryResource:  0,
		},
	}

	for _, t := range tickets {
		cat := Categorize(t.Summary)
		report.Categories[cat]++

		imp := Impediment{
			Key:      t.Key,
			Summary:  t.Summary,
			Category: cat,
			Assignee: t.Assignee,
			Priority: t.Priority,
		}
		if imp.Assignee == "" {
			imp.Assignee = jira.Unassigned
		}
		if imp.Priority == "" {
			imp.Priority = "Medium"
		}
		report.Impediments = append(report.Impediments, imp)
	}
	report.Total = len(report.Impediments)

	for _, cat := range categoryOrder {
		if report.Categories[cat] > 0 {
			report.Strategies = append(report.Strategies, resolutionStrategies[cat])
		}
	}
	return report
}

// Categorize scans a ticket summary (case-insensitive) against the rule
// table. Technical is the default, not a keyword match.
func Categorize(summary string) Category {
	lower := strings.ToLower(summary)
	for _, r := range categoryRules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.category
			}
		}
	}
	return CategoryTechnical
}
