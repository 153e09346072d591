package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Ehphp/RequestEstimator-sub000/internal/app"
	"github.com/Ehphp/RequestEstimator-sub000/internal/domain"
	"github.com/Ehphp/RequestEstimator-sub000/internal/estimator"
	"github.com/Ehphp/RequestEstimator-sub000/internal/repository"
)

type estimateService struct {
	catalog      *domain.Catalog
	requirements repository.RequirementRepo
	estimates    repository.EstimateRepo
	observer     UseCaseObserver
}

// NewEstimateService returns the estimate use cases, computing against cat.
func NewEstimateService(
	cat *domain.Catalog,
	requirements repository.RequirementRepo,
	estimates repository.EstimateRepo,
	observers ...UseCaseObserver,
) EstimateService {
	return &estimateService{
		catalog:      cat,
		requirements: requirements,
		estimates:    estimates,
		observer:     useCaseObserverOrNoop(observers),
	}
}

// Create calculates a new estimate scenario and appends it to the
// requirement's history unless req.DryRun is set. Nothing is stored when the
// catalog cannot price the chosen drivers.
func (s *estimateService) Create(ctx context.Context, req app.EstimateRequest) (result *app.EstimateResult, err error) {
	fields := map[string]any{
		"requirement_id": req.RequirementID,
		"dry_run":        req.DryRun,
	}
	done := trackUseCase(ctx, s.observer, "create-estimate", fields)
	defer func() { done(err) }()

	if err = s.requireRequirement(ctx, req.RequirementID); err != nil {
		return nil, err
	}

	var previous *domain.Estimate
	previous, err = latestOrNil(ctx, s.estimates, req.RequirementID)
	if err != nil {
		return nil, fmt.Errorf("loading previous estimate: %w", err)
	}

	drivers, sources, err := resolveDrivers(s.catalog, req.Drivers, previous, req.Preset)
	if err != nil {
		return nil, err
	}

	var est domain.Estimate
	est, err = estimator.Calculate(s.catalog, estimator.Input{
		ActivityCodes: req.ActivityCodes,
		Drivers:       drivers,
		RiskIDs:       req.RiskIDs,
		CreatedOn:     time.Now().UTC(),
	})
	if err != nil {
		err = estimateError(err)
		return nil, err
	}
	est.ID = uuid.New().String()
	est.RequirementID = req.RequirementID
	est.Scenario = domain.FirstNonBlank(req.Scenario, "base")
	est.DriverSources = sources
	fields["total_days"] = est.TotalDays

	result = &app.EstimateResult{
		Estimate: &est,
		Warnings: unknownRiskWarnings(s.catalog, est.RiskIDs),
	}
	if req.DryRun {
		return result, nil
	}
	if err = s.estimates.Create(ctx, &est); err != nil {
		return nil, fmt.Errorf("storing estimate: %w", err)
	}
	result.Stored = true
	return result, nil
}

func (s *estimateService) GetByID(ctx context.Context, id string) (*domain.Estimate, error) {
	return s.estimates.GetByID(ctx, id)
}

func (s *estimateService) Latest(ctx context.Context, requirementID string) (*domain.Estimate, error) {
	return s.estimates.LatestByRequirement(ctx, requirementID)
}

func (s *estimateService) History(ctx context.Context, requirementID string) ([]*domain.Estimate, error) {
	if err := s.requireRequirement(ctx, requirementID); err != nil {
		return nil, err
	}
	return s.estimates.ListByRequirement(ctx, requirementID)
}

func (s *estimateService) SuggestDrivers(ctx context.Context, requirementID, preset string) (domain.DriverSelection, map[domain.DriverDimension]domain.DefaultSource, error) {
	if err := s.requireRequirement(ctx, requirementID); err != nil {
		return domain.DriverSelection{}, nil, err
	}
	previous, err := latestOrNil(ctx, s.estimates, requirementID)
	if err != nil {
		return domain.DriverSelection{}, nil, fmt.Errorf("loading previous estimate: %w", err)
	}
	return resolveDrivers(s.catalog, domain.DriverSelection{}, previous, preset)
}

func (s *estimateService) requireRequirement(ctx context.Context, id string) error {
	_, err := s.requirements.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return &app.EstimateError{
			Code:    app.EstimateErrRequirementNotFound,
			Message: fmt.Sprintf("requirement %s does not exist", id),
		}
	}
	return err
}
