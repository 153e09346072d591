// Package scheduler projects aggregated effort onto a work calendar and
// derives the confidence and deviation signals shown next to the projection.
package scheduler

import (
	"fmt"
	"time"

	"github.com/Ehphp/RequestEstimator-sub000/internal/domain"
)

// DateLayout is the civil date format used for holiday keys and display.
const DateLayout = "2006-01-02"

// Calendar decides which days count as workdays.
type Calendar struct {
	ExcludeWeekends bool
	holidays        map[string]bool
}

// NewCalendar builds a calendar from a weekend flag and a holiday set.
// Holidays are compared by civil date; their time of day is ignored.
func NewCalendar(excludeWeekends bool, holidays []time.Time) Calendar {
	c := Calendar{ExcludeWeekends: excludeWeekends, holidays: make(map[string]bool, len(holidays))}
	for _, h := range holidays {
		c.holidays[h.Format(DateLayout)] = true
	}
	return c
}

// IsWorkday reports whether d counts toward the schedule.
func (c Calendar) IsWorkday(d time.Time) bool {
	if c.ExcludeWeekends {
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			return false
		}
	}
	return !c.holidays[d.Format(DateLayout)]
}

// CivilDate truncates t to midnight UTC of its calendar date.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WalkWorkdays advances day by day from start until n workdays have been
// counted and returns the day on which the count is reached. The start day
// is day 1 when it is a workday. n <= 0 returns start.
func WalkWorkdays(start time.Time, n int, cal Calendar) time.Time {
	day := CivilDate(start)
	if n <= 0 {
		return day
	}
	counted := 0
	for {
		if cal.IsWorkday(day) {
			counted++
			if counted == n {
				return day
			}
		}
		day = day.AddDate(0, 0, 1)
	}
}

// CalendarConfig is the scheduling configuration of a projection.
type CalendarConfig struct {
	StartDate       time.Time
	Developers      int
	ExcludeWeekends bool
	Holidays        []time.Time
	TargetDate      *time.Time
	Policy          domain.SchedulingPolicy
}

// Validate rejects configurations the projector cannot honor.
func (c CalendarConfig) Validate() error {
	if c.Developers < 1 {
		return fmt.Errorf("developers must be at least 1, got %d", c.Developers)
	}
	switch c.Policy {
	case domain.PolicyNeutral, domain.PolicyPriorityFirst:
	default:
		return fmt.Errorf("unknown scheduling policy %q", c.Policy)
	}
	if c.StartDate.IsZero() {
		return fmt.Errorf("start date is required")
	}
	return nil
}

// Calendar returns the workday calendar described by the config.
func (c CalendarConfig) Calendar() Calendar {
	return NewCalendar(c.ExcludeWeekends, c.Holidays)
}
