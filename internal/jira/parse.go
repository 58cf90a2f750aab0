package jira

import (
	"encoding/json"
	"fmt"
	"time"
)

// Parser converts raw mcp-atlassian tool payloads into typed records.
// PointsField names the per-instance story point custom field.
type Parser struct {
	PointsField string
}

// Raw wire shapes. The issue fields object is kept as a RawMessage so the
// configurable story point field can be extracted alongside the fixed ones.
type searchPayload struct {
	Error  string     `json:"error"`
	Issues []rawIssue `json:"issues"`
}

type rawIssue struct {
	Key    string          `json:"key"`
	Fields json.RawMessage `json:"fields"`
}

type rawFields struct {
	Summary  string    `json:"summary"`
	Status   rawStatus `json:"status"`
	Assignee *rawUser  `json:"assignee"`
	Priority *rawNamed `json:"priority"`
	Labels   []string  `json:"labels"`
	Updated  string    `json:"updated"`
}

type rawStatus struct {
	Name     string   `json:"name"`
	Category rawNamed `json:"statusCategory"`
}

type rawNamed struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

type rawUser struct {
	DisplayName string `json:"displayName"`
}

type sprintsPayload struct {
	Error  string      `json:"error"`
	Values []rawSprint `json:"values"`
}

type rawSprint struct {
	ID        json.Number `json:"id"`
	Name      string      `json:"name"`
	State     string      `json:"state"`
	StartDate string      `json:"startDate"`
	EndDate   string      `json:"endDate"`
}

// Tickets parses a search_issues payload. An explicit error key in the
// payload is a hard failure for the whole fetch.
func (p Parser) Tickets(data []byte) ([]Ticket, error) {
	var payload searchPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("jira: decoding search response: %w", err)
	}
	if payload.Error != "" {
		return nil, &GatewayError{Message: payload.Error}
	}

	tickets := make([]Ticket, 0, len(payload.Issues))
	for _, issue := range payload.Issues {
		t, err := p.ticket(issue)
		if err != nil {
			return nil, fmt.Errorf("jira: issue %s: %w", issue.Key, err)
		}
		tickets = append(tickets, t)
	}
	return tickets, nil
}

func (p Parser) ticket(issue rawIssue) (Ticket, error) {
	if issue.Key == "" {
		return Ticket{}, fmt.Errorf("missing issue key")
	}

	var fields rawFields
	if len(issue.Fields) > 0 {
		if err := json.Unmarshal(issue.Fields, &fields); err != nil {
			return Ticket{}, fmt.Errorf("decoding fields: %w", err)
		}
	}

	t := Ticket{
		Key:            issue.Key,
		Summary:        fields.Summary,
		StatusName:     fields.Status.Name,
		StatusCategory: categoryFromKey(fields.Status.Category.Key),
		Assignee:       Unassigned,
		Labels:         fields.Labels,
		StoryPoints:    p.storyPoints(issue.Fields),
	}
	if fields.Assignee != nil && fields.Assignee.DisplayName != "" {
		t.Assignee = fields.Assignee.DisplayName
	}
	if fields.Priority != nil {
		t.Priority = fields.Priority.Name
	}
	if fields.Updated != "" {
		ts, err := parseTime(fields.Updated)
		if err != nil {
			return Ticket{}, fmt.Errorf("updated timestamp %q: %w", fields.Updated, err)
		}
		t.Updated = ts
	}
	return t, nil
}

// storyPoints pulls the configured custom field out of the raw fields
// object. Absent or null estimates are zero, per the backend's own
// convention for unestimated tickets.
func (p Parser) storyPoints(fields json.RawMessage) float64 {
	if len(fields) == 0 || p.PointsField == "" {
		return 0
	}
	var generic map[string]json.RawMessage
	if err := json.Unmarshal(fields, &generic); err != nil {
		return 0
	}
	raw, ok := generic[p.PointsField]
	if !ok {
		return 0
	}
	var points float64
	if err := json.Unmarshal(raw, &points); err != nil {
		return 0
	}
	if points < 0 {
		return 0
	}
	return points
}

// Sprints parses a get_board_sprints payload, preserving the backend's
// oldest-first ordering.
func (p Parser) Sprints(data []byte) ([]Sprint, error) {
	var payload sprintsPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("jira: decoding sprints response: %w", err)
	}
	if payload.Error != "" {
		return nil, &GatewayError{Message: payload.Error}
	}

	sprints := make([]Sprint, 0, len(payload.Values))
	for _, rs := range payload.Values {
		if rs.ID.String() == "" {
			return nil, fmt.Errorf("jira: sprint %q: missing id", rs.Name)
		}
		s := Sprint{
			ID:    rs.ID.String(),
			Name:  rs.Name,
			State: rs.State,
		}
		if rs.StartDate != "" {
			ts, err := parseTime(rs.StartDate)
			if err != nil {
				return nil, fmt.Errorf("jira: sprint %s start date: %w", s.ID, err)
			}
			s.StartDate = ts
		}
		if rs.EndDate != "" {
			ts, err := parseTime(rs.EndDate)
			if err != nil {
				return nil, fmt.Errorf("jira: sprint %s end date: %w", s.ID, err)
			}
			s.EndDate = ts
		}
		sprints = append(sprints, s)
	}
	return sprints, nil
}

func categoryFromKey(key string) StatusCategory {
	switch key {
	case "done":
		return CategoryDone
	case "indeterminate":
		return CategoryInProgress
	default:
		// "new", "undefined" and anything unknown count as not started.
		return CategoryTodo
	}
}

// timeLayouts covers Jira cloud's issue timestamps ("+0000" offsets) and
// the ISO dates sprint records use.
var timeLayouts = []string{
	"2006-01-02T15:04:05.999Z0700",
	"2006-01-02T15:04:05.999Z07:00",
	time.RFC3339,
	"2006-01-02",
}

func parseTime(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range timeLayouts {
		ts, err := time.Parse(layout, value)
		if err == nil {
			return ts, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
