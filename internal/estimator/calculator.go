package estimator

import (
	"fmt"
	"time"

	"github.com/Ehphp/RequestEstimator-sub000/internal/domain"
)

// Input is everything a single estimate is computed from. CreatedOn is
// supplied by the caller so the calculation stays deterministic.
type Input struct {
	ActivityCodes []string
	Drivers       domain.DriverSelection
	RiskIDs       []string
	CreatedOn     time.Time
}

// DriverMultiplier returns the product of the four driver multipliers.
// A missing mapping on any dimension is a *ConfigError.
func DriverMultiplier(cat *domain.Catalog, sel domain.DriverSelection) (float64, error) {
	mult := 1.0
	for _, dim := range domain.DriverDimensions {
		option := sel.Option(dim)
		d, ok := cat.Driver(dim, option)
		if !ok {
			return 0, &ConfigError{Dimension: dim, Option: option, Err: ErrMissingDriverMapping}
		}
		mult *= d.Multiplier
	}
	return mult, nil
}

// RiskScore sums the weights of the selected risks. Each id counts once;
// ids missing from the catalog contribute nothing.
func RiskScore(cat *domain.Catalog, riskIDs []string) float64 {
	var score float64
	for _, id := range dedupe(riskIDs) {
		if r, ok := cat.Risk(id); ok {
			score += r.Weight
		}
	}
	return score
}

// Calculate computes a day-based estimate with contingency against cat.
// Identical inputs always yield identical estimates, version stamps included.
func Calculate(cat *domain.Catalog, in Input) (domain.Estimate, error) {
	codes := dedupe(in.ActivityCodes)
	if len(codes) == 0 {
		return domain.Estimate{}, &ValidationError{Field: "activities", Err: ErrNoActivities}
	}

	var baseDays float64
	for _, code := range codes {
		a, ok := cat.Activity(code)
		if !ok {
			return domain.Estimate{}, &ValidationError{
				Field: "activities",
				Err:   fmt.Errorf("%w: %q", ErrUnknownActivity, code),
			}
		}
		baseDays += a.BaseDays
	}

	mult, err := DriverMultiplier(cat, in.Drivers)
	if err != nil {
		return domain.Estimate{}, err
	}

	bands := cat.Bands
	if len(bands) == 0 {
		bands = DefaultBands
	}

	riskIDs := dedupe(in.RiskIDs)
	score := RiskScore(cat, riskIDs)
	pct := ContingencyPercentageFor(bands, score)

	subtotal := RoundHalfUp(baseDays*mult, 3)
	contingency := RoundHalfUp(subtotal*pct, 3)

	return domain.Estimate{
		ActivityCodes:      codes,
		Drivers:            in.Drivers,
		RiskIDs:            riskIDs,
		ActivitiesBaseDays: RoundHalfUp(baseDays, 3),
		DriverMultiplier:   mult,
		SubtotalDays:       subtotal,
		RiskScore:          score,
		ContingencyPct:     pct,
		ContingencyDays:    contingency,
		TotalDays:          RoundHalfUp(subtotal+contingency, 3),
		CatalogVersion:     cat.CatalogVersion,
		DriversVersion:     cat.DriversVersion,
		RiskmapVersion:     cat.RiskmapVersion,
		CreatedOn:          in.CreatedOn,
	}, nil
}

// dedupe drops empty and repeated ids, keeping first-seen order.
func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
