package domain

import "time"

// DriverSelection holds the one option chosen per driver dimension.
type DriverSelection struct {
	Complexity   string
	Environments string
	Reuse        string
	Stakeholders string
}

// Option returns the chosen option for dim.
func (s DriverSelection) Option(dim DriverDimension) string {
	switch dim {
	case DimensionComplexity:
		return s.Complexity
	case DimensionEnvironments:
		return s.Environments
	case DimensionReuse:
		return s.Reuse
	case DimensionStakeholders:
		return s.Stakeholders
	}
	return ""
}

// With returns a copy with dim set to option.
func (s DriverSelection) With(dim DriverDimension, option string) DriverSelection {
	switch dim {
	case DimensionComplexity:
		s.Complexity = option
	case DimensionEnvironments:
		s.Environments = option
	case DimensionReuse:
		s.Reuse = option
	case DimensionStakeholders:
		s.Stakeholders = option
	}
	return s
}

// Estimate is an immutable, day-based estimate of one requirement scenario.
// Catalog versions are pinned at creation so later catalog edits never
// change a stored estimate.
type Estimate struct {
	ID            string
	RequirementID string
	Scenario      string

	ActivityCodes []string
	Drivers       DriverSelection
	DriverSources map[DriverDimension]DefaultSource
	RiskIDs       []string

	ActivitiesBaseDays float64
	DriverMultiplier   float64
	SubtotalDays       float64
	RiskScore          float64
	ContingencyPct     float64
	ContingencyDays    float64
	TotalDays          float64

	CatalogVersion string
	DriversVersion string
	RiskmapVersion string
	CreatedOn      time.Time
}

// Days returns the estimate's total days, treating a missing estimate as zero.
func (e *Estimate) Days() float64 {
	if e == nil {
		return 0
	}
	return e.TotalDays
}
