// Package scrum implements the analysis entry points the agent exposes:
// sprint health, velocity trend, daily standup, and impediment triage,
// plus the free-text Ask path that routes between them.
//
// The Analyzer owns no state beyond its injected dependencies. Every
// call fetches a fresh ticket snapshot through the gateway, aggregates
// it with the pure metrics functions, and hands back a structured
// result. Gateway failures surface as error values — nothing here
// retries; that's the orchestrator's decision.
package scrum

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Matfejbat/jira-scrum-master-agent/internal/config"
	"github.com/Matfejbat/jira-scrum-master-agent/internal/intent"
	"github.com/Matfejbat/jira-scrum-master-agent/internal/jira"
	"github.com/Matfejbat/jira-scrum-master-agent/internal/llm"
	"github.com/Matfejbat/jira-scrum-master-agent/internal/metrics"
	"github.com/Matfejbat/jira-scrum-master-agent/internal/report"
)

// Field lists for the gateway queries, one per analysis.
var (
	healthFields      = []string{"status", "summary", "assignee", "labels", "priority"}
	standupFields     = []string{"summary", "status", "assignee", "updated", "priority"}
	impedimentFields  = []string{"summary", "assignee", "status", "priority", "updated", "labels"}
	openSprintJQL     = "sprint in openSprints() AND assignee is not EMPTY"
	blockedSprintJQL  = "sprint in openSprints() AND (status = 'Blocked' OR labels = 'blocked')"
	sprintIssuesJQL   = "sprint = %s"
	sprintVelocityJQL = "sprint = %s AND status = Done"
)

// Analyzer runs the four analyses against a gateway snapshot.
type Analyzer struct {
	gw  jira.Gateway
	cfg *config.Config
	llm *llm.Client
	log *zap.Logger

	// now is injectable for standup tests.
	now func() time.Time
}

// New creates an Analyzer. llmClient may be nil (no augmentation).
func New(gw jira.Gateway, cfg *config.Config, llmClient *llm.Client, log *zap.Logger) *Analyzer {
	return &Analyzer{gw: gw, cfg: cfg, llm: llmClient, log: log, now: time.Now}
}

// SprintHealth fetches a sprint's tickets and aggregates its health.
func (a *Analyzer) SprintHealth(ctx context.Context, sprintID string) (metrics.HealthResult, error) {
	fields := append([]string{}, healthFields...)
	fields = append(fields, a.cfg.Jira.StoryPointsField)

	tickets, err := a.gw.SearchIssues(ctx, fmt.Sprintf(sprintIssuesJQL, sprintID), fields)
	if err != nil {
		return metrics.HealthResult{}, fmt.Errorf("fetching sprint %s issues: %w", sprintID, err)
	}
	return metrics.SprintHealth(tickets), nil
}

// VelocityReport bundles the history with the (possibly absent)
// prediction. HasPrediction=false is the "no velocity data" terminal
// result, not an error.
type VelocityReport struct {
	Points        []metrics.VelocityPoint
	Prediction    metrics.VelocityPrediction
	HasPrediction bool
}

// Velocity computes per-sprint velocities for the board's most recent
// count closed sprints. The per-sprint queries run concurrently; the
// collected points are re-sorted chronologically afterwards, so nothing
// depends on arrival order.
func (a *Analyzer) Velocity(ctx context.Context, boardID string, count int) (VelocityReport, error) {
	if count <= 0 {
		count = intent.DefaultSprintCount
	}

	sprints, err := a.gw.BoardSprints(ctx, boardID, "closed")
	if err != nil {
		return VelocityReport{}, fmt.Errorf("fetching closed sprints for board %s: %w", boardID, err)
	}
	if len(sprints) > count {
		sprints = sprints[len(sprints)-count:]
	}

	points := make([]metrics.VelocityPoint, len(sprints))
	g, gctx := errgroup.WithContext(ctx)
	for i, sprint := range sprints {
		g.Go(func() error {
			jql := fmt.Sprintf(sprintVelocityJQL, sprint.ID)
			done, err := a.gw.SearchIssues(gctx, jql, []string{a.cfg.Jira.StoryPointsField})
			if err != nil {
				return fmt.Errorf("fetching sprint %s velocity: %w", sprint.ID, err)
			}
			var velocity float64
			for _, t := range done {
				velocity += t.StoryPoints
			}
			points[i] = metrics.VelocityPoint{
				SprintID:   sprint.ID,
				SprintName: sprint.Name,
				Velocity:   velocity,
				StartDate:  sprint.StartDate,
				EndDate:    sprint.EndDate,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return VelocityReport{}, err
	}

	metrics.SortVelocityPoints(points)

	rep := VelocityReport{Points: points}
	rep.Prediction, rep.HasPrediction = metrics.PredictVelocity(points)
	return rep, nil
}

// Standup builds today's standup digest from the open sprint's assigned
// tickets.
func (a *Analyzer) Standup(ctx context.Context) (metrics.StandupDigest, error) {
	tickets, err := a.gw.SearchIssues(ctx, openSprintJQL, standupFields)
	if err != nil {
		return metrics.StandupDigest{}, fmt.Errorf("fetching active issues: %w", err)
	}
	return metrics.Standup(tickets, a.now()), nil
}

// Impediments triages the open sprint's blocked tickets.
func (a *Analyzer) Impediments(ctx context.Context) (metrics.ImpedimentReport, error) {
	tickets, err := a.gw.SearchIssues(ctx, blockedSprintJQL, impedimentFields)
	if err != nil {
		return metrics.ImpedimentReport{}, fmt.Errorf("fetching blocked issues: %w", err)
	}
	return metrics.Impediments(tickets), nil
}

// ActiveSprintID resolves the configured board's currently open sprint.
// When the board has several, the most recently started wins.
func (a *Analyzer) ActiveSprintID(ctx context.Context) (string, error) {
	sprints, err := a.gw.BoardSprints(ctx, a.cfg.Jira.BoardID, "active")
	if err != nil {
		return "", fmt.Errorf("fetching active sprints: %w", err)
	}
	if len(sprints) == 0 {
		return "", fmt.Errorf("board %s has no active sprint", a.cfg.Jira.BoardID)
	}
	return sprints[len(sprints)-1].ID, nil
}

// Ask routes free text to an analysis and renders the result. It never
// fails the request: gateway errors become a readable failure message
// carrying the original error text.
func (a *Analyzer) Ask(ctx context.Context, text string) (intent.Intent, string) {
	in := intent.Classify(text)

	switch in {
	case intent.SprintHealth:
		sprintID, ok := intent.SprintID(text)
		if !ok {
			id, err := a.ActiveSprintID(ctx)
			if err != nil {
				return in, failure("resolving the active sprint", err)
			}
			sprintID = id
		}
		res, err := a.SprintHealth(ctx, sprintID)
		if err != nil {
			return in, failure("getting sprint issues", err)
		}
		return in, report.SprintHealth(res)

	case intent.Velocity:
		rep, err := a.Velocity(ctx, a.cfg.Jira.BoardID, intent.SprintCount(text))
		if err != nil {
			return in, failure("getting sprints", err)
		}
		return in, report.Velocity(rep.Points, rep.Prediction, rep.HasPrediction)

	case intent.Standup:
		digest, err := a.Standup(ctx)
		if err != nil {
			return in, failure("getting active issues", err)
		}
		return in, report.Standup(digest)

	case intent.Impediments:
		rep, err := a.Impediments(ctx)
		if err != nil {
			return in, failure("getting blocked issues", err)
		}
		return in, report.Impediments(rep)

	default:
		return in, a.generalHelp(ctx, text)
	}
}

// generalHelp answers unrouted questions. With an LLM configured it
// reasons freely over the agent's capabilities; otherwise the static
// overview is served.
func (a *Analyzer) generalHelp(ctx context.Context, text string) string {
	if a.llm == nil || text == "" {
		return report.Overview()
	}

	answer, err := a.llm.Complete(ctx,
		"You are an AI Scrum Master assistant for a software team. "+
			"You can analyze sprint health, velocity trends, daily standups, and impediments "+
			"from the team's Jira board. Answer the user's question helpfully and concisely; "+
			"when a question needs live sprint data, point them at the matching analysis.",
		text,
	)
	if err != nil {
		a.log.Warn("llm augmentation failed, serving overview", zap.Error(err))
		return report.Overview()
	}
	return answer
}

// failure renders a gateway failure as a user-visible message,
// preserving the backend's original error text.
func failure(what string, err error) string {
	if msg, ok := jira.IsGatewayError(err); ok {
		return fmt.Sprintf("Error %s: %s", what, msg)
	}
	return fmt.Sprintf("Error %s: %v", what, err)
}
