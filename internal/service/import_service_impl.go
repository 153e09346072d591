package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Ehphp/RequestEstimator-sub000/internal/app"
	"github.com/Ehphp/RequestEstimator-sub000/internal/db"
	"github.com/Ehphp/RequestEstimator-sub000/internal/domain"
	"github.com/Ehphp/RequestEstimator-sub000/internal/estimator"
	"github.com/Ehphp/RequestEstimator-sub000/internal/importer"
	"github.com/Ehphp/RequestEstimator-sub000/internal/repository"
)

type importService struct {
	catalog  *domain.Catalog
	uow      db.UnitOfWork
	observer UseCaseObserver
}

// NewImportService returns the requirement import use case. An import is
// all-or-nothing: requirements, sequence numbers and initial estimates are
// written in one transaction.
func NewImportService(cat *domain.Catalog, uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{
		catalog:  cat,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *importService) ImportFile(ctx context.Context, filePath string) (*app.ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportSchema(ctx, schema)
}

func (s *importService) ImportSchema(ctx context.Context, schema *importer.ImportSchema) (result *app.ImportResult, err error) {
	fields := map[string]any{"requirements": len(schema.Requirements)}
	done := trackUseCase(ctx, s.observer, "import-requirements", fields)
	defer func() { done(err) }()

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		err = formatValidationErrors(errs)
		return nil, err
	}

	now := time.Now().UTC()
	var generated *importer.GeneratedRequirements
	generated, err = importer.Convert(schema, now)
	if err != nil {
		return nil, fmt.Errorf("converting import schema: %w", err)
	}

	estimates := make([]domain.Estimate, 0, len(generated.Estimates))
	var warnings []string
	for _, draft := range generated.Estimates {
		var est domain.Estimate
		est, err = s.calculate(draft, now)
		if err != nil {
			return nil, err
		}
		warnings = append(warnings, unknownRiskWarnings(s.catalog, est.RiskIDs)...)
		estimates = append(estimates, est)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txReqs := repository.NewSQLiteRequirementRepo(tx)
		txSeqs := repository.NewSQLiteSequenceRepo(tx)
		txEsts := repository.NewSQLiteEstimateRepo(tx)

		for _, r := range generated.Requirements {
			seq, err := txSeqs.Next(ctx, repository.RequirementSequence)
			if err != nil {
				return err
			}
			r.Seq = seq
			if err := txReqs.Create(ctx, r); err != nil {
				return fmt.Errorf("creating requirement %q: %w", r.Title, err)
			}
		}
		for i := range estimates {
			if err := txEsts.Create(ctx, &estimates[i]); err != nil {
				return fmt.Errorf("creating estimate: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields["estimates"] = len(estimates)
	return &app.ImportResult{
		Requirements: generated.Requirements,
		Estimates:    len(estimates),
		Warnings:     warnings,
	}, nil
}

func (s *importService) calculate(draft importer.EstimateDraft, now time.Time) (domain.Estimate, error) {
	drivers, sources, err := resolveDrivers(s.catalog, draft.Drivers, nil, draft.Preset)
	if err != nil {
		return domain.Estimate{}, err
	}
	est, err := estimator.Calculate(s.catalog, estimator.Input{
		ActivityCodes: draft.ActivityCodes,
		Drivers:       drivers,
		RiskIDs:       draft.RiskIDs,
		CreatedOn:     now,
	})
	if err != nil {
		return domain.Estimate{}, estimateError(err)
	}
	est.ID = uuid.New().String()
	est.RequirementID = draft.RequirementID
	est.Scenario = draft.Scenario
	est.DriverSources = sources
	return est, nil
}
