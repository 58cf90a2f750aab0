// Package intent classifies free-text user requests and extracts query
// parameters from them.
//
// Classification is a fixed, ordered rule table evaluated top to bottom:
// the precedence is data, not control flow, so it can be inspected and
// tested on its own. Classify is a total function — it always returns an
// intent and has no failure mode.
package intent

import (
	"regexp"
	"strconv"
	"strings"
)

// Intent is the analysis routine a request routes to.
type Intent string

const (
	SprintHealth Intent = "sprint-health"
	Velocity     Intent = "velocity"
	Standup      Intent = "standup"
	Impediments  Intent = "impediments"
	GeneralHelp  Intent = "general-help"
)

type rule struct {
	intent   Intent
	keywords []string
}

// rules is evaluated in order; the first matching category wins.
var rules = []rule{
	{SprintHealth, []string{"sprint", "health", "progress", "status"}},
	{Velocity, []string{"velocity", "capacity", "prediction", "planning"}},
	{Standup, []string{"standup", "daily", "meeting", "coordination"}},
	{Impediments, []string{"blocker", "impediment", "blocked", "stuck"}},
}

// Classify maps user text to an intent. Matching is case-insensitive
// substring search; no match falls through to GeneralHelp.
func Classify(text string) Intent {
	lower := strings.ToLower(text)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.intent
			}
		}
	}
	return GeneralHelp
}

var (
	digitRun = regexp.MustCompile(`\d+`)
	countRe  = regexp.MustCompile(`(\d+)\s*sprints?`)
)

// SprintID extracts an explicit sprint id from the text: the first
// maximal digit run, but only when the text actually talks about a
// sprint. When ok is false the caller must resolve the active sprint
// itself — there is deliberately no placeholder fallback here.
func SprintID(text string) (string, bool) {
	if !strings.Contains(strings.ToLower(text), "sprint") {
		return "", false
	}
	id := digitRun.FindString(text)
	if id == "" {
		return "", false
	}
	return id, true
}

// DefaultSprintCount is how many sprints velocity analysis covers when
// the user doesn't ask for a specific window.
const DefaultSprintCount = 5

// SprintCount extracts "<N> sprint(s)" from the text, defaulting to
// DefaultSprintCount when absent.
func SprintCount(text string) int {
	m := countRe.FindStringSubmatch(strings.ToLower(text))
	if m == nil {
		return DefaultSprintCount
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return DefaultSprintCount
	}
	return n
}
