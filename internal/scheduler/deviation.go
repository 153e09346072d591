package scheduler

import (
	"fmt"
	"sort"
	"time"

	"github.com/Ehphp/RequestEstimator-sub000/internal/domain"
	"github.com/Ehphp/RequestEstimator-sub000/internal/estimator"
)

// Effort size thresholds in days.
const (
	LargeProjectDays     = 100.0
	VeryLargeProjectDays = 200.0
)

// Velocity delta thresholds in percent. Deltas within ±HealthyVelocityPct
// raise no alert.
const (
	HealthyVelocityPct  = 20.0
	CriticalVelocityPct = 50.0
)

// Alert codes.
const (
	AlertVeryLargeProject = "very_large_project"
	AlertLargeProject     = "large_project"
	AlertOverload         = "velocity_overload"
	AlertUnderutilized    = "velocity_underutilized"
	AlertBehindSchedule   = "behind_schedule"
	AlertOnTrack          = "on_track"
	AlertAheadOfSchedule  = "ahead_of_schedule"
)

var alertIcons = map[domain.AlertType]string{
	domain.AlertCritical: "✖",
	domain.AlertWarning:  "▲",
	domain.AlertInfo:     "●",
}

// Alert is a transient deviation signal.
type Alert struct {
	Code    string
	Type    domain.AlertType
	Icon    string
	Message string
	Tooltip string
}

func newAlert(code string, typ domain.AlertType, msg, tooltip string) Alert {
	return Alert{Code: code, Type: typ, Icon: alertIcons[typ], Message: msg, Tooltip: tooltip}
}

// DeviationInput is what the alert rules look at.
type DeviationInput struct {
	TotalDays  float64
	Projection Projection
	Developers int
	TargetDate *time.Time
}

// Velocity returns total / (workdays * developers) and whether it is
// defined.
func Velocity(totalDays float64, workdays, developers int) (float64, bool) {
	if developers < 1 || workdays == 0 {
		return 0, false
	}
	return totalDays / float64(workdays*developers), true
}

// DeviationAlerts evaluates the projection against the fixed thresholds.
// Alerts are ordered critical, warning, info; within a severity they keep
// rule order (size, velocity, target date).
func DeviationAlerts(in DeviationInput) []Alert {
	var alerts []Alert

	switch {
	case in.TotalDays > VeryLargeProjectDays:
		alerts = append(alerts, newAlert(AlertVeryLargeProject, domain.AlertCritical,
			fmt.Sprintf("Very large project: %s days", fmtDays(in.TotalDays)),
			fmt.Sprintf("Total effort exceeds %s days. Consider splitting it into smaller releases.", fmtDays(VeryLargeProjectDays))))
	case in.TotalDays >= LargeProjectDays:
		alerts = append(alerts, newAlert(AlertLargeProject, domain.AlertWarning,
			fmt.Sprintf("Large project: %s days", fmtDays(in.TotalDays)),
			fmt.Sprintf("Total effort is between %s and %s days. Review scope and milestones.", fmtDays(LargeProjectDays), fmtDays(VeryLargeProjectDays))))
	}

	if v, ok := Velocity(in.TotalDays, in.Projection.TotalWorkdays, in.Developers); ok {
		if a, raised := velocityAlert(v); raised {
			alerts = append(alerts, a)
		}
	}

	if in.TargetDate != nil {
		alerts = append(alerts, targetAlert(in.Projection.FinishDate, *in.TargetDate))
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Type.Severity() < alerts[j].Type.Severity()
	})
	return alerts
}

func velocityAlert(velocity float64) (Alert, bool) {
	delta := estimator.RoundHalfUp((velocity-1)*100, 6)
	shown := estimator.RoundHalfUp(delta, 1)

	switch {
	case delta > CriticalVelocityPct:
		return newAlert(AlertOverload, domain.AlertCritical,
			fmt.Sprintf("Team overloaded: velocity %+.1f%%", shown),
			"Required effort far exceeds available capacity. Add people or move the dates."), true
	case delta > HealthyVelocityPct:
		return newAlert(AlertOverload, domain.AlertWarning,
			fmt.Sprintf("Team under pressure: velocity %+.1f%%", shown),
			"Required effort exceeds available capacity. Plan for extra time or people."), true
	case delta < -CriticalVelocityPct:
		return newAlert(AlertUnderutilized, domain.AlertWarning,
			fmt.Sprintf("Team underutilized: velocity %+.1f%%", shown),
			"Capacity is far above required effort, usually because the critical path forces sequential work."), true
	case delta < -HealthyVelocityPct:
		return newAlert(AlertUnderutilized, domain.AlertInfo,
			fmt.Sprintf("Spare capacity: velocity %+.1f%%", shown),
			"Capacity exceeds required effort. There is room for more scope."), true
	}
	return Alert{}, false
}

func targetAlert(finish, target time.Time) Alert {
	diff := DaysBetween(finish, target)
	switch {
	case diff < 0:
		return newAlert(AlertBehindSchedule, domain.AlertCritical,
			fmt.Sprintf("Behind schedule by %d days", -diff),
			fmt.Sprintf("Projected finish %s is after the target date %s.", finish.Format(DateLayout), target.Format(DateLayout)))
	case diff == 0:
		return newAlert(AlertOnTrack, domain.AlertInfo,
			"On track for the target date",
			fmt.Sprintf("Projected finish matches the target date %s.", target.Format(DateLayout)))
	default:
		return newAlert(AlertAheadOfSchedule, domain.AlertInfo,
			fmt.Sprintf("Ahead of schedule by %d days", diff),
			fmt.Sprintf("Projected finish %s leaves %d days before the target date %s.", finish.Format(DateLayout), diff, target.Format(DateLayout)))
	}
}

// DaysBetween returns the number of calendar days from a to b on civil
// dates; negative when b is before a.
func DaysBetween(a, b time.Time) int {
	return int(CivilDate(b).Sub(CivilDate(a)).Hours() / 24)
}

func fmtDays(d float64) string {
	return fmt.Sprintf("%g", estimator.RoundHalfUp(d, 2))
}
