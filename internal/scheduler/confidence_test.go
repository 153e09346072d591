package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ehphp/RequestEstimator-sub000/internal/domain"
	"github.com/Ehphp/RequestEstimator-sub000/internal/portfolio"
)

func TestScoreConfidence_Empty(t *testing.T) {
	c := ScoreConfidence(portfolio.KPI{})
	assert.Equal(t, 0, c.Score)
	assert.Equal(t, domain.ConfidenceLow, c.Level)
}

func TestScoreConfidence_Perfect(t *testing.T) {
	c := ScoreConfidence(portfolio.KPI{
		Count: 12, EstimatedCount: 12, TaggedCount: 12, AvgDays: 5, StdDevDays: 0,
	})
	assert.Equal(t, ConfidenceBreakdown{Completeness: 40, Consistency: 30, Volume: 20, Categorization: 10}, c.Breakdown)
	assert.Equal(t, 100, c.Score)
	assert.Equal(t, domain.ConfidenceHigh, c.Level)
}

func TestScoreConfidence_Partial(t *testing.T) {
	c := ScoreConfidence(portfolio.KPI{
		Count: 5, EstimatedCount: 4, TaggedCount: 2, AvgDays: 9, StdDevDays: 7,
	})
	assert.Equal(t, 32.0, c.Breakdown.Completeness)
	assert.Equal(t, 6.7, c.Breakdown.Consistency)
	assert.Equal(t, 10.0, c.Breakdown.Volume)
	assert.Equal(t, 4.0, c.Breakdown.Categorization)
	assert.Equal(t, 53, c.Score)
	assert.Equal(t, domain.ConfidenceMedium, c.Level)
}

func TestScoreConfidence_HighSpreadZeroesConsistency(t *testing.T) {
	c := ScoreConfidence(portfolio.KPI{Count: 2, EstimatedCount: 2, AvgDays: 2, StdDevDays: 5})
	assert.Equal(t, 0.0, c.Breakdown.Consistency)
}

func TestScoreConfidence_NothingEstimated(t *testing.T) {
	c := ScoreConfidence(portfolio.KPI{Count: 3, TaggedCount: 3})
	assert.Equal(t, 0.0, c.Breakdown.Completeness)
	assert.Equal(t, 0.0, c.Breakdown.Consistency)
	assert.Equal(t, 16, c.Score)
	assert.Equal(t, domain.ConfidenceLow, c.Level)
}

func TestConfidenceLevelFor_Thresholds(t *testing.T) {
	assert.Equal(t, domain.ConfidenceHigh, ConfidenceLevelFor(80))
	assert.Equal(t, domain.ConfidenceMedium, ConfidenceLevelFor(79))
	assert.Equal(t, domain.ConfidenceMedium, ConfidenceLevelFor(50))
	assert.Equal(t, domain.ConfidenceLow, ConfidenceLevelFor(49))
}

func TestScoreConfidence_WithinBounds(t *testing.T) {
	for n := 1; n <= 30; n++ {
		for est := 0; est <= n; est++ {
			c := ScoreConfidence(portfolio.KPI{
				Count: n, EstimatedCount: est, TaggedCount: n - est, AvgDays: 3, StdDevDays: float64(est % 4),
			})
			assert.GreaterOrEqual(t, c.Score, 0)
			assert.LessOrEqual(t, c.Score, 100)
			assert.LessOrEqual(t, c.Breakdown.Completeness, CompletenessWeight)
			assert.LessOrEqual(t, c.Breakdown.Consistency, ConsistencyWeight)
			assert.LessOrEqual(t, c.Breakdown.Volume, VolumeWeight)
			assert.LessOrEqual(t, c.Breakdown.Categorization, CategorizationWeight)
		}
	}
}
