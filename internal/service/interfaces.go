package service

import (
	"context"

	"github.com/Ehphp/RequestEstimator-sub000/internal/app"
	"github.com/Ehphp/RequestEstimator-sub000/internal/domain"
	"github.com/Ehphp/RequestEstimator-sub000/internal/importer"
)

type RequirementService interface {
	Create(ctx context.Context, r *domain.Requirement) error
	GetByID(ctx context.Context, id string) (*domain.Requirement, error)
	// Resolve accepts a requirement id or its sequence number ("12" or "#12").
	Resolve(ctx context.Context, ref string) (*domain.Requirement, error)
	List(ctx context.Context) ([]*domain.Requirement, error)
	Update(ctx context.Context, r *domain.Requirement) error
	Move(ctx context.Context, id string, parentID *string) error
	Delete(ctx context.Context, id string, cascade bool) error
}

type EstimateService interface {
	Create(ctx context.Context, req app.EstimateRequest) (*app.EstimateResult, error)
	GetByID(ctx context.Context, id string) (*domain.Estimate, error)
	Latest(ctx context.Context, requirementID string) (*domain.Estimate, error)
	History(ctx context.Context, requirementID string) ([]*domain.Estimate, error)
	// SuggestDrivers returns the pre-filled driver selection for a new
	// estimate of requirementID together with the provenance of each choice.
	SuggestDrivers(ctx context.Context, requirementID, preset string) (domain.DriverSelection, map[domain.DriverDimension]domain.DefaultSource, error)
}

type DashboardService interface {
	Build(ctx context.Context, req app.DashboardRequest) (*app.DashboardResponse, error)
}

type ImportService interface {
	ImportFile(ctx context.Context, filePath string) (*app.ImportResult, error)
	ImportSchema(ctx context.Context, schema *importer.ImportSchema) (*app.ImportResult, error)
}

var (
	_ app.DashboardUseCase          = DashboardService(nil)
	_ app.CreateEstimateUseCase     = EstimateService(nil)
	_ app.MoveRequirementUseCase    = RequirementService(nil)
	_ app.ImportRequirementsUseCase = ImportService(nil)
)
