package scheduler

import (
	"math"
	"time"

	"github.com/Ehphp/RequestEstimator-sub000/internal/domain"
	"github.com/Ehphp/RequestEstimator-sub000/internal/estimator"
	"github.com/Ehphp/RequestEstimator-sub000/internal/portfolio"
)

// EffortPrecision is the number of decimals estimates carry. Projection
// inputs are summed at this precision; KPI values are rounded further for
// display and never feed a projection.
const EffortPrecision = 3

// ProjectionInput is the aggregated effort a projection is computed from.
type ProjectionInput struct {
	TotalDays        float64
	CriticalPathDays float64
	EffortByPriority map[domain.Priority]float64
}

// EffortInput sums the effort of entries per priority at estimate
// precision. TotalDays is the sum of the buckets.
func EffortInput(entries []portfolio.Entry, criticalPathDays float64) ProjectionInput {
	in := ProjectionInput{
		CriticalPathDays: estimator.RoundHalfUp(criticalPathDays, EffortPrecision),
		EffortByPriority: make(map[domain.Priority]float64, len(domain.Priorities)),
	}
	for _, e := range entries {
		in.EffortByPriority[e.Requirement.Priority] += e.Days()
	}
	for p, v := range in.EffortByPriority {
		v = estimator.RoundHalfUp(v, EffortPrecision)
		in.EffortByPriority[p] = v
		in.TotalDays += v
	}
	in.TotalDays = estimator.RoundHalfUp(in.TotalDays, EffortPrecision)
	return in
}

// Projection is the projected delivery of a portfolio.
type Projection struct {
	FinishDate          time.Time
	TotalWorkdays       int
	TotalDays           float64
	EffectiveEffortDays float64
	Policy              domain.SchedulingPolicy
	Developers          int
}

// EffectiveEffortDays floors total effort at the length of the critical
// path times team size: a dependency chain cannot be parallelized.
func EffectiveEffortDays(totalDays, criticalPathDays float64, developers int) float64 {
	return math.Max(totalDays, criticalPathDays*float64(developers))
}

// RequiredWorkdays returns the number of workdays the policy needs for in.
// developers below 1 are treated as 1.
func RequiredWorkdays(in ProjectionInput, developers int, policy domain.SchedulingPolicy) int {
	if developers < 1 {
		developers = 1
	}
	effective := EffectiveEffortDays(in.TotalDays, in.CriticalPathDays, developers)
	if policy != domain.PolicyPriorityFirst || in.TotalDays <= 0 {
		return ceilDays(effective / float64(developers))
	}

	// Each bucket is rounded up on its own, so PriorityFirst never needs
	// fewer days than Neutral.
	scale := effective / in.TotalDays
	var assigned float64
	workdays := 0
	for _, p := range domain.Priorities {
		bucket := in.EffortByPriority[p]
		assigned += bucket
		workdays += ceilDays(bucket * scale / float64(developers))
	}
	// Effort outside the three buckets is scheduled last.
	if rest := estimator.RoundHalfUp(in.TotalDays-assigned, EffortPrecision); rest > 0 {
		workdays += ceilDays(rest * scale / float64(developers))
	}
	return workdays
}

// ceilDays rounds up after discarding float noise below 5e-10, so
// 2.0000000000004 stays 2 workdays while 2.0000004 becomes 3.
func ceilDays(v float64) int {
	if v <= 0 {
		return 0
	}
	return int(math.Ceil(estimator.RoundHalfUp(v, 9)))
}

// Project computes the finish date and workday count of in under cfg.
// cfg is expected to have passed Validate; an empty policy means Neutral.
func Project(in ProjectionInput, cfg CalendarConfig) Projection {
	developers := cfg.Developers
	if developers < 1 {
		developers = 1
	}
	policy := cfg.Policy
	if policy == "" {
		policy = domain.PolicyNeutral
	}

	workdays := RequiredWorkdays(in, developers, policy)
	return Projection{
		FinishDate:          WalkWorkdays(cfg.StartDate, workdays, cfg.Calendar()),
		TotalWorkdays:       workdays,
		TotalDays:           estimator.RoundHalfUp(in.TotalDays, EffortPrecision),
		EffectiveEffortDays: estimator.RoundHalfUp(EffectiveEffortDays(in.TotalDays, in.CriticalPathDays, developers), 2),
		Policy:              policy,
		Developers:          developers,
	}
}
