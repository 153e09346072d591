package repository

import (
	"context"

	"github.com/Ehphp/RequestEstimator-sub000/internal/domain"
)

type RequirementRepo interface {
	Create(ctx context.Context, r *domain.Requirement) error
	GetByID(ctx context.Context, id string) (*domain.Requirement, error)
	GetBySeq(ctx context.Context, seq int) (*domain.Requirement, error)
	List(ctx context.Context) ([]*domain.Requirement, error)
	Update(ctx context.Context, r *domain.Requirement) error
	SetParent(ctx context.Context, id string, parentID *string) error
	Delete(ctx context.Context, id string) error
}

// EstimateRepo is append-only: estimates are never updated.
type EstimateRepo interface {
	Create(ctx context.Context, e *domain.Estimate) error
	GetByID(ctx context.Context, id string) (*domain.Estimate, error)
	LatestByRequirement(ctx context.Context, requirementID string) (*domain.Estimate, error)
	ListByRequirement(ctx context.Context, requirementID string) ([]*domain.Estimate, error)
	LatestAll(ctx context.Context) (map[string]*domain.Estimate, error)
}

type SequenceRepo interface {
	Next(ctx context.Context, name string) (int, error)
}
