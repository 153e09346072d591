package app

import (
	"time"

	"github.com/Ehphp/RequestEstimator-sub000/internal/domain"
	"github.com/Ehphp/RequestEstimator-sub000/internal/portfolio"
	"github.com/Ehphp/RequestEstimator-sub000/internal/scheduler"
)

type DashboardRequest struct {
	Priorities      []domain.Priority
	Tags            []string
	States          []domain.RequirementState
	Search          string
	SortKey         domain.SortKey
	StartDate       time.Time
	Developers      int
	ExcludeWeekends bool
	Holidays        []time.Time
	TargetDate      *time.Time
	Policy          domain.SchedulingPolicy
}

// NewDashboardRequest returns a request with the default scheduling
// settings: one developer, weekends excluded, neutral policy, starting on
// the given day.
func NewDashboardRequest(start time.Time) DashboardRequest {
	return DashboardRequest{
		SortKey:         domain.SortCreatedAsc,
		StartDate:       start,
		Developers:      1,
		ExcludeWeekends: true,
		Policy:          domain.PolicyNeutral,
	}
}

// CalendarConfig returns the scheduling part of the request.
func (r DashboardRequest) CalendarConfig() scheduler.CalendarConfig {
	return scheduler.CalendarConfig{
		StartDate:       r.StartDate,
		Developers:      r.Developers,
		ExcludeWeekends: r.ExcludeWeekends,
		Holidays:        r.Holidays,
		TargetDate:      r.TargetDate,
		Policy:          r.Policy,
	}
}

// Criteria returns the filtering part of the request.
func (r DashboardRequest) Criteria() portfolio.Criteria {
	return portfolio.Criteria{
		Priorities: r.Priorities,
		Tags:       r.Tags,
		States:     r.States,
		Search:     r.Search,
	}
}

type DashboardResponse struct {
	GeneratedAt      time.Time
	Rows             []portfolio.Row
	KPI              portfolio.KPI
	CriticalPathDays float64
	CriticalPath     []string
	Projection       scheduler.Projection
	Confidence       scheduler.Confidence
	Alerts           []scheduler.Alert
	Warnings         []string
}

type DashboardErrorCode string

const (
	DashboardErrInvalidConfig DashboardErrorCode = "INVALID_CONFIG"
	DashboardErrInvalidSort   DashboardErrorCode = "INVALID_SORT"
)

type DashboardError struct {
	Code    DashboardErrorCode
	Message string
}

func (e *DashboardError) Error() string {
	return string(e.Code) + ": " + e.Message
}
