package scheduler

import (
	"math"

	"github.com/Ehphp/RequestEstimator-sub000/internal/domain"
	"github.com/Ehphp/RequestEstimator-sub000/internal/estimator"
	"github.com/Ehphp/RequestEstimator-sub000/internal/portfolio"
)

// Sub-score maxima. They sum to 100.
const (
	CompletenessWeight   = 40.0
	ConsistencyWeight    = 30.0
	VolumeWeight         = 20.0
	CategorizationWeight = 10.0
)

// Level thresholds on the 0-100 score.
const (
	HighConfidenceMin   = 80
	MediumConfidenceMin = 50
)

// VolumeSaturation is the item count at which the volume sub-score maxes out.
const VolumeSaturation = 10

// ConfidenceBreakdown holds the four sub-scores, each rounded to one decimal.
type ConfidenceBreakdown struct {
	Completeness   float64
	Consistency    float64
	Volume         float64
	Categorization float64
}

// Confidence is the reliability signal of a dashboard.
type Confidence struct {
	Score     int
	Level     domain.ConfidenceLevel
	Breakdown ConfidenceBreakdown
}

// ScoreConfidence rates how far the KPI can be trusted:
//
//	completeness   = 40 * estimated / count
//	consistency    = 30 * (1 - min(stddev/mean, 1)) over estimated items
//	volume         = 20 * min(count, 10) / 10
//	categorization = 10 * tagged / count
func ScoreConfidence(kpi portfolio.KPI) Confidence {
	if kpi.Count == 0 {
		return Confidence{Level: domain.ConfidenceLow}
	}
	n := float64(kpi.Count)

	var b ConfidenceBreakdown
	b.Completeness = round1(CompletenessWeight * float64(kpi.EstimatedCount) / n)
	if kpi.EstimatedCount > 0 && kpi.AvgDays > 0 {
		cv := math.Min(kpi.StdDevDays/kpi.AvgDays, 1)
		b.Consistency = round1(ConsistencyWeight * (1 - cv))
	}
	b.Volume = round1(VolumeWeight * math.Min(n, VolumeSaturation) / VolumeSaturation)
	b.Categorization = round1(CategorizationWeight * float64(kpi.TaggedCount) / n)

	score := int(estimator.RoundHalfUp(b.Completeness+b.Consistency+b.Volume+b.Categorization, 0))
	return Confidence{Score: score, Level: ConfidenceLevelFor(score), Breakdown: b}
}

// ConfidenceLevelFor buckets a score.
func ConfidenceLevelFor(score int) domain.ConfidenceLevel {
	switch {
	case score >= HighConfidenceMin:
		return domain.ConfidenceHigh
	case score >= MediumConfidenceMin:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceLow
	}
}

func round1(v float64) float64 { return estimator.RoundHalfUp(v, 1) }
