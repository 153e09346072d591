// Package portfolio rolls per-requirement estimates up into dashboard KPIs
// and produces the filtered, hierarchy-annotated requirement list.
package portfolio

import (
	"math"
	"sort"

	"github.com/Ehphp/RequestEstimator-sub000/internal/domain"
	"github.com/Ehphp/RequestEstimator-sub000/internal/estimator"
)

// Difficulty thresholds applied when a requirement has no explicit difficulty.
const (
	LowDifficultyMaxDays    = 5.0
	MediumDifficultyMaxDays = 15.0
)

// Entry pairs a requirement with its most recent estimate, if any.
type Entry struct {
	Requirement domain.Requirement
	Estimate    *domain.Estimate
}

// Days returns the estimate total, 0 when unestimated.
func (e Entry) Days() float64 { return e.Estimate.Days() }

// Estimated reports whether the entry carries a non-zero estimate.
func (e Entry) Estimated() bool { return e.Days() > 0 }

// KPI is the derived dashboard summary. Day values are rounded to two
// decimals and percentages to whole numbers.
type KPI struct {
	Count          int
	EstimatedCount int
	TaggedCount    int

	TotalDays  float64
	AvgDays    float64
	MedianDays float64
	P80Days    float64
	StdDevDays float64

	EffortByPriority    map[domain.Priority]float64
	EffortByPriorityPct map[domain.Priority]float64
	PriorityMix         map[domain.Priority]int
	DifficultyMix       map[domain.Difficulty]int

	TopTagByEffort string
}

// Aggregate computes the KPI over entries. Averages and percentiles only
// consider estimated entries; totals and mixes consider every entry.
func Aggregate(entries []Entry) KPI {
	kpi := KPI{
		Count:               len(entries),
		EffortByPriority:    make(map[domain.Priority]float64, len(domain.Priorities)),
		EffortByPriorityPct: make(map[domain.Priority]float64, len(domain.Priorities)),
		PriorityMix:         make(map[domain.Priority]int, len(domain.Priorities)),
		DifficultyMix:       make(map[domain.Difficulty]int, 3),
	}
	for _, p := range domain.Priorities {
		kpi.EffortByPriority[p] = 0
		kpi.EffortByPriorityPct[p] = 0
		kpi.PriorityMix[p] = 0
	}
	for _, d := range []domain.Difficulty{domain.DifficultyLow, domain.DifficultyMedium, domain.DifficultyHigh} {
		kpi.DifficultyMix[d] = 0
	}

	var total float64
	var days []float64
	tagEffort := make(map[string]float64)
	var tagOrder []string

	for _, e := range entries {
		d := e.Days()
		total += d
		if e.Estimated() {
			days = append(days, d)
		}
		if len(e.Requirement.Tags) > 0 {
			kpi.TaggedCount++
		}

		kpi.EffortByPriority[e.Requirement.Priority] += d
		kpi.PriorityMix[e.Requirement.Priority]++

		if diff, ok := difficultyOf(e); ok {
			kpi.DifficultyMix[diff]++
		}

		for _, tag := range e.Requirement.Tags {
			if _, seen := tagEffort[tag]; !seen {
				tagOrder = append(tagOrder, tag)
			}
			tagEffort[tag] += d
		}
	}

	kpi.EstimatedCount = len(days)
	kpi.TotalDays = round2(total)
	for p, v := range kpi.EffortByPriority {
		kpi.EffortByPriority[p] = round2(v)
		if total > 0 {
			kpi.EffortByPriorityPct[p] = estimator.RoundHalfUp(v/total*100, 0)
		}
	}

	if len(days) > 0 {
		sort.Float64s(days)
		mean := sum(days) / float64(len(days))
		kpi.AvgDays = round2(mean)
		kpi.MedianDays = round2(median(days))
		kpi.P80Days = round2(nearestRank(days, 80))
		kpi.StdDevDays = round2(stddev(days, mean))
	}

	// Ties, including an all-unestimated tag set, go to the first tag seen.
	for i, tag := range tagOrder {
		if i == 0 || tagEffort[tag] > tagEffort[kpi.TopTagByEffort] {
			kpi.TopTagByEffort = tag
		}
	}
	return kpi
}

// difficultyOf returns the explicit difficulty, or one derived from the
// estimate size. Unestimated entries without an explicit value are skipped.
func difficultyOf(e Entry) (domain.Difficulty, bool) {
	if e.Requirement.Difficulty != "" {
		return e.Requirement.Difficulty, true
	}
	if !e.Estimated() {
		return "", false
	}
	switch d := e.Days(); {
	case d <= LowDifficultyMaxDays:
		return domain.DifficultyLow, true
	case d <= MediumDifficultyMaxDays:
		return domain.DifficultyMedium, true
	default:
		return domain.DifficultyHigh, true
	}
}

func round2(v float64) float64 { return estimator.RoundHalfUp(v, 2) }

func sum(vs []float64) float64 {
	var s float64
	for _, v := range vs {
		s += v
	}
	return s
}

// median expects sorted input.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// nearestRank returns the pct-th percentile of sorted, non-empty input:
// the value at rank ceil(pct/100 * n).
func nearestRank(sorted []float64, pct int) float64 {
	rank := (pct*len(sorted) + 99) / 100
	if rank < 1 {
		rank = 1
	}
	return sorted[rank-1]
}

func stddev(vs []float64, mean float64) float64 {
	var sq float64
	for _, v := range vs {
		sq += (v - mean) * (v - mean)
	}
	return math.Sqrt(sq / float64(len(vs)))
}
