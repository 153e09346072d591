package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ehphp/RequestEstimator-sub000/internal/domain"
)

func codes(alerts []Alert) []string {
	out := make([]string, len(alerts))
	for i, a := range alerts {
		out[i] = a.Code
	}
	return out
}

func healthy(total float64, workdays, devs int) DeviationInput {
	return DeviationInput{
		TotalDays:  total,
		Developers: devs,
		Projection: Projection{TotalWorkdays: workdays, FinishDate: monday},
	}
}

func TestDeviationAlerts_Size(t *testing.T) {
	assert.Empty(t, DeviationAlerts(healthy(99.99, 100, 1)))
	assert.Equal(t, []string{AlertLargeProject}, codes(DeviationAlerts(healthy(100, 100, 1))))
	assert.Equal(t, []string{AlertLargeProject}, codes(DeviationAlerts(healthy(200, 200, 1))))

	alerts := DeviationAlerts(healthy(200.5, 201, 1))
	require.Len(t, alerts, 1)
	assert.Equal(t, AlertVeryLargeProject, alerts[0].Code)
	assert.Equal(t, domain.AlertCritical, alerts[0].Type)
	assert.NotEmpty(t, alerts[0].Tooltip)
	assert.Equal(t, "✖", alerts[0].Icon)
}

func TestDeviationAlerts_VelocityBands(t *testing.T) {
	cases := []struct {
		name     string
		total    float64
		workdays int
		want     []string
		typ      domain.AlertType
	}{
		{"healthy upper edge", 12, 10, nil, ""},
		{"healthy lower edge", 8, 10, nil, ""},
		{"overload warning", 13, 10, []string{AlertOverload}, domain.AlertWarning},
		{"overload warning edge", 15, 10, []string{AlertOverload}, domain.AlertWarning},
		{"overload critical", 16, 10, []string{AlertOverload}, domain.AlertCritical},
		{"spare capacity", 7, 10, []string{AlertUnderutilized}, domain.AlertInfo},
		{"spare capacity edge", 5, 10, []string{AlertUnderutilized}, domain.AlertInfo},
		{"underutilized", 4, 10, []string{AlertUnderutilized}, domain.AlertWarning},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			alerts := DeviationAlerts(healthy(tc.total, tc.workdays, 1))
			if tc.want == nil {
				assert.Empty(t, alerts)
				return
			}
			assert.Equal(t, tc.want, codes(alerts))
			assert.Equal(t, tc.typ, alerts[0].Type)
		})
	}
}

func TestDeviationAlerts_VelocitySkippedWithoutCapacity(t *testing.T) {
	assert.Empty(t, DeviationAlerts(healthy(50, 0, 2)))
	assert.Empty(t, DeviationAlerts(healthy(50, 10, 0)))
	_, ok := Velocity(50, 10, 0)
	assert.False(t, ok)
}

func TestDeviationAlerts_TargetDate(t *testing.T) {
	friday := date(2025, 3, 7)
	cases := []struct {
		target time.Time
		code   string
		typ    domain.AlertType
	}{
		{date(2025, 3, 5), AlertBehindSchedule, domain.AlertCritical},
		{friday, AlertOnTrack, domain.AlertInfo},
		{date(2025, 3, 14), AlertAheadOfSchedule, domain.AlertInfo},
	}
	for _, tc := range cases {
		in := healthy(10, 5, 2)
		in.Projection.FinishDate = friday
		target := tc.target
		in.TargetDate = &target

		alerts := DeviationAlerts(in)
		require.Len(t, alerts, 1)
		assert.Equal(t, tc.code, alerts[0].Code)
		assert.Equal(t, tc.typ, alerts[0].Type)
	}
}

func TestDeviationAlerts_SortedBySeverity(t *testing.T) {
	target := date(2025, 3, 20)
	in := DeviationInput{
		TotalDays:  150,
		Developers: 1,
		Projection: Projection{TotalWorkdays: 100, FinishDate: date(2025, 3, 10)},
		TargetDate: &target,
	}
	// large project (warning), overload +50% (warning), ahead (info)
	assert.Equal(t, []string{AlertLargeProject, AlertOverload, AlertAheadOfSchedule}, codes(DeviationAlerts(in)))

	in.TotalDays = 250
	in.Projection.TotalWorkdays = 250
	in.Projection.FinishDate = date(2025, 3, 25)
	// very large (critical), behind (critical), no velocity alert
	assert.Equal(t, []string{AlertVeryLargeProject, AlertBehindSchedule}, codes(DeviationAlerts(in)))

	in.Projection.TotalWorkdays = 100
	alerts := DeviationAlerts(in)
	assert.Equal(t, []string{AlertVeryLargeProject, AlertOverload, AlertBehindSchedule}, codes(alerts))
	for i := 1; i < len(alerts); i++ {
		assert.LessOrEqual(t, alerts[i-1].Type.Severity(), alerts[i].Type.Severity())
	}
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 4, DaysBetween(monday, date(2025, 3, 7)))
	assert.Equal(t, -2, DaysBetween(monday, date(2025, 3, 1)))
	assert.Equal(t, 0, DaysBetween(monday.Add(23*time.Hour), monday))
}
