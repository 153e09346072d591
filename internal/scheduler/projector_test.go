package scheduler

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ehphp/RequestEstimator-sub000/internal/domain"
	"github.com/Ehphp/RequestEstimator-sub000/internal/portfolio"
)

func buckets(high, med, low float64) map[domain.Priority]float64 {
	return map[domain.Priority]float64{
		domain.PriorityHigh: high,
		domain.PriorityMed:  med,
		domain.PriorityLow:  low,
	}
}

func TestProject_MondayTenDaysTwoDevelopersFinishesFriday(t *testing.T) {
	in := ProjectionInput{TotalDays: 10, EffortByPriority: buckets(10, 0, 0)}
	cfg := CalendarConfig{StartDate: monday, Developers: 2, ExcludeWeekends: true, Policy: domain.PolicyNeutral}

	p := Project(in, cfg)
	assert.Equal(t, 5, p.TotalWorkdays)
	assert.Equal(t, date(2025, 3, 7), p.FinishDate)
	assert.Equal(t, 10.0, p.EffectiveEffortDays)
	assert.Equal(t, domain.PolicyNeutral, p.Policy)
}

func TestEffectiveEffortDays_CriticalPathFloor(t *testing.T) {
	assert.Equal(t, 10.0, EffectiveEffortDays(10, 4, 2))
	assert.Equal(t, 16.0, EffectiveEffortDays(10, 8, 2))
}

func TestRequiredWorkdays_Policies(t *testing.T) {
	cases := []struct {
		name    string
		in      ProjectionInput
		devs    int
		neutral int
		prio    int
	}{
		{"even split", ProjectionInput{TotalDays: 10, EffortByPriority: buckets(4, 4, 2)}, 2, 5, 5},
		{"per-bucket ceilings", ProjectionInput{TotalDays: 10, EffortByPriority: buckets(3, 3, 4)}, 2, 5, 6},
		{"critical path scaling", ProjectionInput{TotalDays: 10, CriticalPathDays: 8, EffortByPriority: buckets(3, 3, 4)}, 2, 8, 10},
		{"no effort", ProjectionInput{}, 3, 0, 0},
		{"clamped developers", ProjectionInput{TotalDays: 3, EffortByPriority: buckets(3, 0, 0)}, 0, 3, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.neutral, RequiredWorkdays(tc.in, tc.devs, domain.PolicyNeutral))
			assert.Equal(t, tc.prio, RequiredWorkdays(tc.in, tc.devs, domain.PolicyPriorityFirst))
		})
	}
}

func TestRequiredWorkdays_UnbucketedEffortStillCounts(t *testing.T) {
	in := ProjectionInput{TotalDays: 6, EffortByPriority: buckets(2, 0, 0)}
	assert.Equal(t, 6, RequiredWorkdays(in, 1, domain.PolicyPriorityFirst))
}

func TestRequiredWorkdays_PriorityFirstNeverBeatsNeutral(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 300; trial++ {
		h := float64(rng.Intn(4000)) / 100
		m := float64(rng.Intn(4000)) / 100
		l := float64(rng.Intn(4000)) / 100
		in := ProjectionInput{
			TotalDays:        h + m + l,
			CriticalPathDays: float64(rng.Intn(2000)) / 100,
			EffortByPriority: buckets(h, m, l),
		}
		devs := rng.Intn(6) + 1
		neutral := RequiredWorkdays(in, devs, domain.PolicyNeutral)
		prio := RequiredWorkdays(in, devs, domain.PolicyPriorityFirst)
		assert.GreaterOrEqual(t, prio, neutral, "trial %d: %+v devs=%d", trial, in, devs)
		assert.LessOrEqual(t, prio, neutral+3, "trial %d: at most one extra day per bucket", trial)
	}
}

func TestProject_EmptyPolicyIsNeutral(t *testing.T) {
	p := Project(ProjectionInput{TotalDays: 1}, CalendarConfig{StartDate: monday, Developers: 1})
	assert.Equal(t, domain.PolicyNeutral, p.Policy)
	assert.Equal(t, monday, p.FinishDate)
}

func TestRequiredWorkdays_ThirdDecimalCostsAWorkday(t *testing.T) {
	in := ProjectionInput{TotalDays: 4.004, CriticalPathDays: 2.004, EffortByPriority: buckets(2.004, 2.0, 0)}
	assert.Equal(t, 5, RequiredWorkdays(in, 1, domain.PolicyNeutral))
	assert.Equal(t, 5, RequiredWorkdays(in, 1, domain.PolicyPriorityFirst))
}

func TestCeilDays_DropsOnlyFloatNoise(t *testing.T) {
	assert.Equal(t, 0, ceilDays(0))
	assert.Equal(t, 2, ceilDays(2))
	assert.Equal(t, 2, ceilDays(2.0000000000004))
	assert.Equal(t, 3, ceilDays(2.0000004))
	assert.Equal(t, 3, ceilDays(2.001))
}

func TestEffortInput_SumsAtEstimatePrecision(t *testing.T) {
	est := func(days float64) *domain.Estimate { return &domain.Estimate{TotalDays: days} }
	entries := []portfolio.Entry{
		{Requirement: domain.Requirement{ID: "a", Priority: domain.PriorityHigh}, Estimate: est(2.004)},
		{Requirement: domain.Requirement{ID: "b", Priority: domain.PriorityHigh}, Estimate: est(0.001)},
		{Requirement: domain.Requirement{ID: "c", Priority: domain.PriorityLow}, Estimate: est(1.333)},
		{Requirement: domain.Requirement{ID: "d", Priority: domain.PriorityMed}},
	}

	in := EffortInput(entries, 2.0049)
	assert.Equal(t, 3.338, in.TotalDays)
	assert.Equal(t, 2.005, in.CriticalPathDays)
	assert.Equal(t, 2.005, in.EffortByPriority[domain.PriorityHigh])
	assert.Equal(t, 0.0, in.EffortByPriority[domain.PriorityMed])
	assert.Equal(t, 1.333, in.EffortByPriority[domain.PriorityLow])
	assert.Equal(t, 4, RequiredWorkdays(in, 1, domain.PolicyNeutral))
	// ceil(2.005) + ceil(1.333); the buckets cover the total, so no residue day.
	assert.Equal(t, 5, RequiredWorkdays(in, 1, domain.PolicyPriorityFirst))
}
