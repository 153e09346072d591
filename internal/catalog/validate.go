package catalog

import (
	"errors"
	"fmt"

	"github.com/Ehphp/RequestEstimator-sub000/internal/domain"
)

// ErrInvalidCatalog is wrapped by every validation failure.
var ErrInvalidCatalog = errors.New("invalid catalog")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidCatalog, fmt.Sprintf(format, args...))
}

// Validate checks the structural consistency of cat. A catalog that passes
// can price any selection of its own activities, options and risks.
func Validate(cat *domain.Catalog) error {
	if cat.CatalogVersion == "" || cat.DriversVersion == "" || cat.RiskmapVersion == "" {
		return invalid("catalog, drivers and riskmap versions are required")
	}

	if len(cat.Activities) == 0 {
		return invalid("at least one activity is required")
	}
	codes := make(map[string]bool, len(cat.Activities))
	for _, a := range cat.Activities {
		if a.Code == "" {
			return invalid("activity code is required")
		}
		if codes[a.Code] {
			return invalid("duplicate activity %q", a.Code)
		}
		codes[a.Code] = true
		if a.BaseDays <= 0 {
			return invalid("activity %q: base_days must be positive", a.Code)
		}
	}

	options := make(map[domain.DriverDimension]map[string]bool, len(domain.DriverDimensions))
	for _, d := range cat.Drivers {
		if !domain.IsDriverDimension(d.Dimension) {
			return invalid("unknown driver dimension %q", d.Dimension)
		}
		if d.Option == "" {
			return invalid("driver %s: option is required", d.Dimension)
		}
		if d.Multiplier <= 0 {
			return invalid("driver %s=%q: multiplier must be positive", d.Dimension, d.Option)
		}
		if options[d.Dimension] == nil {
			options[d.Dimension] = make(map[string]bool)
		}
		if options[d.Dimension][d.Option] {
			return invalid("duplicate driver %s=%q", d.Dimension, d.Option)
		}
		options[d.Dimension][d.Option] = true
	}
	for _, dim := range domain.DriverDimensions {
		if len(options[dim]) == 0 {
			return invalid("driver dimension %s has no options", dim)
		}
	}

	risks := make(map[string]bool, len(cat.Risks))
	for _, r := range cat.Risks {
		if r.ID == "" {
			return invalid("risk id is required")
		}
		if risks[r.ID] {
			return invalid("duplicate risk %q", r.ID)
		}
		risks[r.ID] = true
		if r.Weight < 0 {
			return invalid("risk %q: weight must not be negative", r.ID)
		}
	}

	if err := validateBands(cat.Bands); err != nil {
		return err
	}

	for name, p := range cat.Presets {
		for _, dim := range domain.DriverDimensions {
			if !options[dim][p.Option(dim)] {
				return invalid("preset %q: unknown %s option %q", name, dim, p.Option(dim))
			}
		}
	}
	return nil
}

// validateBands accepts an empty table (the default bands apply) or bands
// with strictly increasing limits where only the last may be open.
func validateBands(bands []domain.ContingencyBand) error {
	prev := 0.0
	for i, b := range bands {
		if b.Pct < 0 || b.Pct > 1 {
			return invalid("contingency band %d: pct must be within [0, 1]", i+1)
		}
		if b.UpTo == nil {
			if i != len(bands)-1 {
				return invalid("contingency band %d: only the last band may omit up_to", i+1)
			}
			continue
		}
		if *b.UpTo <= prev {
			return invalid("contingency band %d: up_to must increase", i+1)
		}
		prev = *b.UpTo
	}
	return nil
}
