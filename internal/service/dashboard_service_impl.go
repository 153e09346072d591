package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Ehphp/RequestEstimator-sub000/internal/app"
	"github.com/Ehphp/RequestEstimator-sub000/internal/domain"
	"github.com/Ehphp/RequestEstimator-sub000/internal/hierarchy"
	"github.com/Ehphp/RequestEstimator-sub000/internal/portfolio"
	"github.com/Ehphp/RequestEstimator-sub000/internal/repository"
	"github.com/Ehphp/RequestEstimator-sub000/internal/scheduler"
)

type dashboardService struct {
	requirements repository.RequirementRepo
	estimates    repository.EstimateRepo
	observer     UseCaseObserver
}

func NewDashboardService(
	requirements repository.RequirementRepo,
	estimates repository.EstimateRepo,
	observers ...UseCaseObserver,
) DashboardService {
	return &dashboardService{
		requirements: requirements,
		estimates:    estimates,
		observer:     useCaseObserverOrNoop(observers),
	}
}

// Build loads a snapshot of every requirement with its latest estimate and
// runs the projection pipeline over it: filter, aggregate, critical path,
// calendar projection, confidence and deviation alerts.
func (s *dashboardService) Build(ctx context.Context, req app.DashboardRequest) (resp *app.DashboardResponse, err error) {
	fields := map[string]any{
		"policy":     string(req.Policy),
		"developers": req.Developers,
	}
	done := trackUseCase(ctx, s.observer, "dashboard", fields)
	defer func() { done(err) }()

	if req.SortKey == "" {
		req.SortKey = domain.SortCreatedAsc
	}
	if !domain.ValidSortKeys[string(req.SortKey)] {
		return nil, &app.DashboardError{
			Code:    app.DashboardErrInvalidSort,
			Message: fmt.Sprintf("unknown sort key %q", req.SortKey),
		}
	}
	if req.Policy == "" {
		req.Policy = domain.PolicyNeutral
	}
	cfg := req.CalendarConfig()
	if err = cfg.Validate(); err != nil {
		return nil, &app.DashboardError{Code: app.DashboardErrInvalidConfig, Message: err.Error()}
	}

	var reqs []*domain.Requirement
	reqs, err = s.requirements.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading requirements: %w", err)
	}
	var latest map[string]*domain.Estimate
	latest, err = s.estimates.LatestAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading estimates: %w", err)
	}

	entries := make([]portfolio.Entry, 0, len(reqs))
	for _, r := range reqs {
		entries = append(entries, portfolio.Entry{Requirement: *r, Estimate: latest[r.ID]})
	}

	forest := portfolio.NewForest(entries)
	rows := portfolio.Filter(forest, req.Criteria(), req.SortKey)
	matched := portfolio.MatchedEntries(rows)
	kpi := portfolio.Aggregate(matched)
	cpDays, cpPath := portfolio.CriticalPathDays(rows)

	effort := scheduler.EffortInput(matched, cpDays)
	projection := scheduler.Project(effort, cfg)

	resp = &app.DashboardResponse{
		GeneratedAt:      time.Now().UTC(),
		Rows:             rows,
		KPI:              kpi,
		CriticalPathDays: cpDays,
		CriticalPath:     cpPath,
		Projection:       projection,
		Confidence:       scheduler.ScoreConfidence(kpi),
		Alerts: scheduler.DeviationAlerts(scheduler.DeviationInput{
			TotalDays:  effort.TotalDays,
			Projection: projection,
			Developers: projection.Developers,
			TargetDate: req.TargetDate,
		}),
		Warnings: integrityWarnings(entries),
	}
	fields["rows"] = len(rows)
	fields["total_days"] = effort.TotalDays
	fields["workdays"] = projection.TotalWorkdays
	return resp, nil
}

// integrityWarnings reports stored parent links that loop. The forest cuts
// such loops so the dashboard still renders.
func integrityWarnings(entries []portfolio.Entry) []string {
	cycles := hierarchy.FindCycles(entries,
		func(e portfolio.Entry) string { return e.Requirement.ID },
		func(e portfolio.Entry) string { return e.Requirement.ParentIDOrEmpty() },
	)
	if len(cycles) == 0 {
		return nil
	}
	seq := make(map[string]int, len(entries))
	for _, e := range entries {
		seq[e.Requirement.ID] = e.Requirement.Seq
	}
	out := make([]string, 0, len(cycles))
	for _, group := range cycles {
		seqs := make([]int, len(group))
		for i, id := range group {
			seqs[i] = seq[id]
		}
		sort.Ints(seqs)
		labels := make([]string, len(seqs))
		for i, n := range seqs {
			labels[i] = fmt.Sprintf("#%d", n)
		}
		out = append(out, "parent links loop between "+strings.Join(labels, ", ")+"; the loop was cut for display")
	}
	return out
}
