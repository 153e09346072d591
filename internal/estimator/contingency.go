package estimator

import "github.com/Ehphp/RequestEstimator-sub000/internal/domain"

// MaxContingencyPct caps contingency regardless of where the bands come from.
const MaxContingencyPct = 0.50

func upTo(v float64) *float64 { return &v }

// DefaultBands is the stock risk map: (0,10] 10%, (10,20] 20%, above 20 35%.
var DefaultBands = []domain.ContingencyBand{
	{UpTo: upTo(10), Pct: 0.10},
	{UpTo: upTo(20), Pct: 0.20},
	{UpTo: nil, Pct: 0.35},
}

// ContingencyPercentage applies DefaultBands to a risk score.
func ContingencyPercentage(riskScore float64) float64 {
	return ContingencyPercentageFor(DefaultBands, riskScore)
}

// ContingencyPercentageFor maps a risk score onto bands. A score of zero or
// less carries no contingency. The percentage never decreases as the score
// grows (a band cannot undercut an earlier one) and never exceeds
// MaxContingencyPct.
func ContingencyPercentageFor(bands []domain.ContingencyBand, riskScore float64) float64 {
	if riskScore <= 0 {
		return 0
	}
	var pct float64
	for _, b := range bands {
		if b.Pct > pct {
			pct = b.Pct
		}
		if b.UpTo == nil || riskScore <= *b.UpTo {
			break
		}
	}
	if pct > MaxContingencyPct {
		return MaxContingencyPct
	}
	return pct
}
