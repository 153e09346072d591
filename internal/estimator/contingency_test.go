package estimator

import (
	"math/rand"
	"testing"

	"github.com/Ehphp/RequestEstimator-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestContingencyPercentage_Bands(t *testing.T) {
	cases := []struct {
		score float64
		want  float64
	}{
		{-3, 0},
		{0, 0},
		{0.5, 0.10},
		{8, 0.10},
		{10, 0.10},
		{10.01, 0.20},
		{20, 0.20},
		{20.5, 0.35},
		{500, 0.35},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ContingencyPercentage(tc.score), "score=%v", tc.score)
	}
}

func TestContingencyPercentageFor_CapsAtMaximum(t *testing.T) {
	bands := []domain.ContingencyBand{
		{UpTo: upTo(5), Pct: 0.30},
		{UpTo: nil, Pct: 0.80},
	}
	assert.Equal(t, 0.30, ContingencyPercentageFor(bands, 4))
	assert.Equal(t, MaxContingencyPct, ContingencyPercentageFor(bands, 6))
}

func TestContingencyPercentageFor_NeverDropsBelowEarlierBand(t *testing.T) {
	// A misconfigured risk map whose later band undercuts an earlier one.
	bands := []domain.ContingencyBand{
		{UpTo: upTo(10), Pct: 0.25},
		{UpTo: nil, Pct: 0.15},
	}
	assert.Equal(t, 0.25, ContingencyPercentageFor(bands, 40))
}

func TestContingencyPercentageFor_NoBands(t *testing.T) {
	assert.Equal(t, 0.0, ContingencyPercentageFor(nil, 12))
}

// TestContingencyPercentage_Monotonic property-tests that contingency never
// decreases as the risk score grows and never exceeds the cap.
func TestContingencyPercentage_Monotonic(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 500; trial++ {
		a := rng.Float64() * 60
		b := a + rng.Float64()*30

		pa, pb := ContingencyPercentage(a), ContingencyPercentage(b)
		assert.LessOrEqual(t, pa, pb, "trial %d: pct(%v)=%v > pct(%v)=%v", trial, a, pa, b, pb)
		assert.LessOrEqual(t, pb, MaxContingencyPct, "trial %d", trial)
	}
}

func TestContingencyPercentageFor_RandomBandsStayMonotonic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 100; trial++ {
		var bands []domain.ContingencyBand
		limit := 0.0
		n := rng.Intn(4) + 1
		for i := 0; i < n; i++ {
			limit += rng.Float64()*10 + 1
			bands = append(bands, domain.ContingencyBand{UpTo: upTo(limit), Pct: rng.Float64()})
		}
		bands = append(bands, domain.ContingencyBand{Pct: rng.Float64()})

		prev := 0.0
		for score := 0.0; score < limit+10; score += 0.5 {
			pct := ContingencyPercentageFor(bands, score)
			assert.GreaterOrEqual(t, pct, prev, "trial %d score %v", trial, score)
			assert.LessOrEqual(t, pct, MaxContingencyPct)
			prev = pct
		}
	}
}
