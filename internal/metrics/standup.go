package metrics

import (
	"sort"
	"time"

	"github.com/Matfejbat/jira-scrum-master-agent/internal/jira"
)

// TicketRef is the compact key+summary pair standup reports list.
type TicketRef struct {
	Key     string
	Summary string
}

// MemberUpdate is one assignee's standup buckets.
type MemberUpdate struct {
	CompletedYesterday []TicketRef
	InProgress         []TicketRef
}

// StandupDigest groups an open sprint's assigned tickets per team member.
// The Unassigned bucket is kept for the aggregate counts but excluded
// from the rendered per-person breakdown.
type StandupDigest struct {
	Date    string
	Updates map[string]*MemberUpdate

	ActiveMembers   int
	TotalInProgress int
}

// Standup builds the digest for the caller's current date. The two bucket
// conditions are independent, non-exclusive filters:
//
//   - completed-yesterday: last update falls on the calendar day before
//     now AND the status category is done;
//   - in-progress-today: the status category is in-progress, regardless
//     of update date.
func Standup(tickets []jira.Ticket, now time.Time) StandupDigest {
	digest := StandupDigest{
		Date:    now.Format("2006-01-02"),
		Updates: make(map[string]*MemberUpdate),
	}
	yesterday := now.AddDate(0, 0, -1).Format("2006-01-02")

	for _, t := range tickets {
		assignee := t.Assignee
		if assignee == "" {
			assignee = jira.Unassigned
		}
		ref := TicketRef{Key: t.Key, Summary: t.Summary}

		if t.StatusCategory == jira.CategoryDone && !t.Updated.IsZero() &&
			t.Updated.Format("2006-01-02") == yesterday {
			bucket(digest.Updates, assignee).CompletedYesterday = append(
				bucket(digest.Updates, assignee).CompletedYesterday, ref)
		}
		if t.StatusCategory == jira.CategoryInProgress {
			bucket(digest.Updates, assignee).InProgress = append(
				bucket(digest.Updates, assignee).InProgress, ref)
		}
	}

	for _, u := range digest.Updates {
		if len(u.CompletedYesterday) > 0 || len(u.InProgress) > 0 {
			digest.ActiveMembers++
		}
		digest.TotalInProgress += len(u.InProgress)
	}
	return digest
}

// Members returns the named assignees in stable order, excluding the
// Unassigned bucket.
func (d StandupDigest) Members() []string {
	names := make([]string, 0, len(d.Updates))
	for name := range d.Updates {
		if name == jira.Unassigned {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func bucket(updates map[string]*MemberUpdate, assignee string) *MemberUpdate {
	u, ok := updates[assignee]
	if !ok {
		u = &MemberUpdate{}
		updates[assignee] = u
	}
	return u
}
