package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Ehphp/RequestEstimator-sub000/internal/app"
	"github.com/Ehphp/RequestEstimator-sub000/internal/catalog"
	"github.com/Ehphp/RequestEstimator-sub000/internal/domain"
	"github.com/Ehphp/RequestEstimator-sub000/internal/estimator"
	"github.com/Ehphp/RequestEstimator-sub000/internal/repository"
)

// resolveDrivers fills every dimension left empty in explicit. The first
// source that has an option wins: the previous estimate of the same
// requirement, then the named preset, then the catalog baseline. Explicit
// choices record no provenance.
func resolveDrivers(
	cat *domain.Catalog,
	explicit domain.DriverSelection,
	previous *domain.Estimate,
	presetName string,
) (domain.DriverSelection, map[domain.DriverDimension]domain.DefaultSource, error) {
	var preset domain.DriverSelection
	if presetName != "" {
		p, ok := cat.Preset(presetName)
		if !ok {
			return domain.DriverSelection{}, nil, &app.EstimateError{
				Code:    app.EstimateErrUnknownPreset,
				Message: fmt.Sprintf("preset %q is not in the catalog", presetName),
			}
		}
		preset = p
	}
	baseline := catalog.Baseline(cat)

	sel := explicit
	sources := make(map[domain.DriverDimension]domain.DefaultSource)
	for _, dim := range domain.DriverDimensions {
		if explicit.Option(dim) != "" {
			continue
		}
		switch {
		case previous != nil && previous.Drivers.Option(dim) != "":
			sel = sel.With(dim, previous.Drivers.Option(dim))
			sources[dim] = domain.StickyEstimator()
		case preset.Option(dim) != "":
			sel = sel.With(dim, preset.Option(dim))
			sources[dim] = domain.PresetSource(presetName)
		default:
			sel = sel.With(dim, baseline.Option(dim))
			sources[dim] = domain.SystemDefault()
		}
	}
	if len(sources) == 0 {
		sources = nil
	}
	return sel, sources, nil
}

// estimateError maps calculator failures onto use-case error codes.
func estimateError(err error) error {
	var cfgErr *estimator.ConfigError
	if errors.As(err, &cfgErr) {
		return &app.EstimateError{Code: app.EstimateErrConfig, Message: cfgErr.Error()}
	}
	var valErr *estimator.ValidationError
	if errors.As(err, &valErr) {
		return &app.EstimateError{Code: app.EstimateErrInvalidInput, Message: valErr.Error()}
	}
	return err
}

// unknownRiskWarnings lists risk ids the catalog does not know. They weigh
// nothing in the score; callers surface them so typos are noticed.
func unknownRiskWarnings(cat *domain.Catalog, riskIDs []string) []string {
	var out []string
	for _, id := range riskIDs {
		if _, ok := cat.Risk(id); !ok {
			out = append(out, fmt.Sprintf("risk %q is not in risk map %s and was ignored", id, cat.RiskmapVersion))
		}
	}
	return out
}

// parseSeqRef reads "12" or "#12" as a sequence number.
func parseSeqRef(ref string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(ref), "#"))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func latestOrNil(ctx context.Context, estimates repository.EstimateRepo, requirementID string) (*domain.Estimate, error) {
	prev, err := estimates.LatestByRequirement(ctx, requirementID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return prev, err
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
