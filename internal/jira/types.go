// Package jira is the boundary to the ticket-tracking backend.
//
// All Jira access goes through an MCP stdio client spawning the
// mcp-atlassian server, the same bridge the rest of the agent ecosystem
// uses. Responses cross this boundary exactly once, through a fallible
// parse-and-validate step that produces the typed records below — the
// aggregation core never digs through raw JSON payloads.
package jira

import (
	"context"
	"time"
)

// StatusCategory is the coarse Jira status bucket every workflow status
// maps into.
type StatusCategory string

const (
	CategoryTodo       StatusCategory = "todo"
	CategoryInProgress StatusCategory = "in-progress"
	CategoryDone       StatusCategory = "done"
)

// Unassigned is the bucket name used when a ticket has no assignee.
const Unassigned = "Unassigned"

// Ticket is an immutable snapshot of a Jira issue, fetched per request.
// The aggregators never mutate it.
type Ticket struct {
	Key            string
	Summary        string
	StatusName     string
	StatusCategory StatusCategory
	Assignee       string
	Priority       string
	Labels         []string
	StoryPoints    float64
	Updated        time.Time
}

// Sprint is read-only reference data about a work iteration.
type Sprint struct {
	ID        string
	Name      string
	State     string
	StartDate time.Time
	EndDate   time.Time
}

// Gateway is the query interface the analyzer depends on. The concrete
// implementation is Client; tests substitute fakes.
type Gateway interface {
	// SearchIssues runs a JQL query requesting the given fields and
	// returns the parsed tickets.
	SearchIssues(ctx context.Context, jql string, fields []string) ([]Ticket, error)

	// BoardSprints lists a board's sprints in the given state
	// ("active" or "closed"), oldest first.
	BoardSprints(ctx context.Context, boardID, state string) ([]Sprint, error)
}
