package app

import (
	"context"

	"github.com/Ehphp/RequestEstimator-sub000/internal/domain"
	"github.com/Ehphp/RequestEstimator-sub000/internal/importer"
)

type DashboardUseCase interface {
	Build(ctx context.Context, req DashboardRequest) (*DashboardResponse, error)
}

type CreateEstimateUseCase interface {
	Create(ctx context.Context, req EstimateRequest) (*EstimateResult, error)
}

type MoveRequirementUseCase interface {
	Move(ctx context.Context, id string, parentID *string) error
}

type ImportResult struct {
	Requirements []*domain.Requirement
	Estimates    int
	Warnings     []string
}

type ImportRequirementsUseCase interface {
	ImportFile(ctx context.Context, filePath string) (*ImportResult, error)
	ImportSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error)
}
