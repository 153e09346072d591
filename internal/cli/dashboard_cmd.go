package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Ehphp/RequestEstimator-sub000/internal/app"
	"github.com/Ehphp/RequestEstimator-sub000/internal/cli/formatter"
	"github.com/Ehphp/RequestEstimator-sub000/internal/domain"
	"github.com/Ehphp/RequestEstimator-sub000/internal/scheduler"
)

// dashboardFilters are the per-command filter flags. Scheduling settings
// come from the root flags through the resolved config.
type dashboardFilters struct {
	priorities []string
	tags       []string
	states     []string
	search     string
	start      string
	target     string
}

func (f *dashboardFilters) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.priorities, "priority", nil, "Only these priorities (repeatable)")
	cmd.Flags().StringSliceVar(&f.tags, "tag", nil, "Only requirements carrying any of these tags")
	cmd.Flags().StringSliceVar(&f.states, "state", nil, "Only these states (repeatable)")
	cmd.Flags().StringVar(&f.search, "search", "", "Case-insensitive title search")
}

func (f *dashboardFilters) registerSchedule(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.start, "start", "", "Projection start date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&f.target, "target", "", "Target delivery date (YYYY-MM-DD)")
}

func parseDate(flag, value string) (time.Time, error) {
	d, err := time.Parse(scheduler.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s date %q (expected YYYY-MM-DD)", flag, value)
	}
	return d, nil
}

func buildDashboardRequest(a *App, f dashboardFilters) (app.DashboardRequest, error) {
	cfg := a.settings()
	req := app.NewDashboardRequest(a.now())

	for _, p := range f.priorities {
		pr, err := parsePriorityFlag(p)
		if err != nil {
			return req, err
		}
		req.Priorities = append(req.Priorities, pr)
	}
	for _, s := range f.states {
		st, err := parseStateFlag(s)
		if err != nil {
			return req, err
		}
		req.States = append(req.States, st)
	}
	req.Tags = f.tags
	req.Search = f.search

	req.SortKey = domain.SortKey(cfg.SortKey)
	req.Developers = cfg.Developers
	req.ExcludeWeekends = cfg.ExcludeWeekends
	policy, err := cfg.SchedulingPolicy()
	if err != nil {
		return req, err
	}
	req.Policy = policy
	if req.Holidays, err = cfg.HolidayDates(); err != nil {
		return req, err
	}

	if f.start != "" {
		if req.StartDate, err = parseDate("start", f.start); err != nil {
			return req, err
		}
	}
	if f.target != "" {
		t, err := parseDate("target", f.target)
		if err != nil {
			return req, err
		}
		req.TargetDate = &t
	}
	return req, nil
}

func newDashboardCmd(a *App) *cobra.Command {
	var f dashboardFilters

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Portfolio KPIs, delivery projection and deviation alerts",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := buildDashboardRequest(a, f)
			if err != nil {
				return err
			}
			resp, err := a.Dashboard.Build(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatDashboard(resp))
			return nil
		},
	}
	f.register(cmd)
	f.registerSchedule(cmd)
	return cmd
}
