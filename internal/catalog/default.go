// Package catalog provides the activity, driver and risk reference data
// estimates are computed against: a built-in default and a YAML loader.
package catalog

import "github.com/Ehphp/RequestEstimator-sub000/internal/domain"

// DefaultVersion is the version stamp of the built-in catalog tables.
const DefaultVersion = "2025.1"

func upTo(v float64) *float64 { return &v }

// Default returns a fresh copy of the built-in catalog.
func Default() *domain.Catalog {
	return &domain.Catalog{
		CatalogVersion: DefaultVersion,
		DriversVersion: DefaultVersion,
		RiskmapVersion: DefaultVersion,
		Activities: []domain.Activity{
			{Code: "ANL_FUNC", Name: "Functional analysis", BaseDays: 2.0, DriverGroup: "analysis"},
			{Code: "ANL_TECH", Name: "Technical design", BaseDays: 1.5, DriverGroup: "analysis"},
			{Code: "DEV_BE", Name: "Backend development", BaseDays: 3.0, DriverGroup: "development"},
			{Code: "DEV_FE", Name: "Frontend development", BaseDays: 2.5, DriverGroup: "development"},
			{Code: "DEV_DB", Name: "Data model changes", BaseDays: 1.0, DriverGroup: "development"},
			{Code: "INT_API", Name: "Third-party integration", BaseDays: 2.0, DriverGroup: "integration"},
			{Code: "TST_UNIT", Name: "Unit testing", BaseDays: 1.0, DriverGroup: "testing"},
			{Code: "TST_E2E", Name: "End-to-end testing", BaseDays: 1.5, DriverGroup: "testing"},
			{Code: "DEP_REL", Name: "Release and deployment", BaseDays: 0.5, DriverGroup: "operations"},
			{Code: "DOC_USR", Name: "User documentation", BaseDays: 0.5, DriverGroup: "operations"},
		},
		Drivers: []domain.Driver{
			{Dimension: domain.DimensionComplexity, Option: "Low", Multiplier: 0.8},
			{Dimension: domain.DimensionComplexity, Option: "Medium", Multiplier: 1.0},
			{Dimension: domain.DimensionComplexity, Option: "High", Multiplier: 1.5},
			{Dimension: domain.DimensionEnvironments, Option: "1 env", Multiplier: 0.9},
			{Dimension: domain.DimensionEnvironments, Option: "2 env", Multiplier: 1.0},
			{Dimension: domain.DimensionEnvironments, Option: "3 env", Multiplier: 1.3},
			{Dimension: domain.DimensionReuse, Option: "High", Multiplier: 0.8},
			{Dimension: domain.DimensionReuse, Option: "Medium", Multiplier: 1.0},
			{Dimension: domain.DimensionReuse, Option: "Low", Multiplier: 1.2},
			{Dimension: domain.DimensionStakeholders, Option: "1 team", Multiplier: 0.9},
			{Dimension: domain.DimensionStakeholders, Option: "2-3 team", Multiplier: 1.0},
			{Dimension: domain.DimensionStakeholders, Option: "4+ team", Multiplier: 1.3},
		},
		Risks: []domain.Risk{
			{ID: "R_REQ_UNCLEAR", Name: "Unclear requirements", Weight: 5},
			{ID: "R_INTEGRATION", Name: "External integration", Weight: 5},
			{ID: "R_DATA_MIGRATION", Name: "Data migration", Weight: 3},
			{ID: "R_NEW_TECH", Name: "New technology", Weight: 4},
			{ID: "R_PERFORMANCE", Name: "Performance constraints", Weight: 3},
			{ID: "R_SECURITY", Name: "Security or compliance review", Weight: 8},
		},
		Bands: []domain.ContingencyBand{
			{UpTo: upTo(10), Pct: 0.10},
			{UpTo: upTo(20), Pct: 0.20},
			{Pct: 0.35},
		},
		Presets: map[string]domain.DriverSelection{
			"small-change": {Complexity: "Low", Environments: "1 env", Reuse: "High", Stakeholders: "1 team"},
			"backend-api":  {Complexity: "Medium", Environments: "2 env", Reuse: "Medium", Stakeholders: "2-3 team"},
			"enterprise":   {Complexity: "High", Environments: "3 env", Reuse: "Low", Stakeholders: "4+ team"},
		},
	}
}

// Baseline returns the neutral driver selection of cat: per dimension, the
// option whose multiplier is 1.0, or the first option when none is.
func Baseline(cat *domain.Catalog) domain.DriverSelection {
	var sel domain.DriverSelection
	for _, dim := range domain.DriverDimensions {
		opts := cat.DriverOptions(dim)
		if len(opts) == 0 {
			continue
		}
		choice := opts[0].Option
		for _, o := range opts {
			if o.Multiplier == 1.0 {
				choice = o.Option
				break
			}
		}
		sel = sel.With(dim, choice)
	}
	return sel
}
