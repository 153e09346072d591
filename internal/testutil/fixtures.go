package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/Ehphp/RequestEstimator-sub000/internal/domain"
)

// FixedNow is the reference clock used by fixtures.
var FixedNow = time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)

// Requirement options
type RequirementOption func(*domain.Requirement)

func WithParent(id string) RequirementOption {
	return func(r *domain.Requirement) {
		r.ParentID = &id
	}
}

func WithPriority(p domain.Priority) RequirementOption {
	return func(r *domain.Requirement) {
		r.Priority = p
	}
}

func WithState(s domain.RequirementState) RequirementOption {
	return func(r *domain.Requirement) {
		r.State = s
	}
}

func WithTags(tags ...string) RequirementOption {
	return func(r *domain.Requirement) {
		r.Tags = tags
	}
}

func WithDifficulty(d domain.Difficulty) RequirementOption {
	return func(r *domain.Requirement) {
		r.Difficulty = d
	}
}

func WithSeq(seq int) RequirementOption {
	return func(r *domain.Requirement) {
		r.Seq = seq
	}
}

func WithCreatedAt(t time.Time) RequirementOption {
	return func(r *domain.Requirement) {
		r.CreatedAt = t
		r.UpdatedAt = t
	}
}

func NewTestRequirement(title string, opts ...RequirementOption) *domain.Requirement {
	r := &domain.Requirement{
		ID:        uuid.New().String(),
		Title:     title,
		Priority:  domain.PriorityMed,
		State:     domain.StateProposed,
		CreatedAt: FixedNow,
		UpdatedAt: FixedNow,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Estimate options
type EstimateOption func(*domain.Estimate)

func WithTotalDays(d float64) EstimateOption {
	return func(e *domain.Estimate) {
		e.SubtotalDays = d
		e.TotalDays = d
		e.ActivitiesBaseDays = d
	}
}

func WithCreatedOn(t time.Time) EstimateOption {
	return func(e *domain.Estimate) {
		e.CreatedOn = t
	}
}

func WithScenario(name string) EstimateOption {
	return func(e *domain.Estimate) {
		e.Scenario = name
	}
}

// NewTestEstimate returns a baseline estimate of 5 days for requirementID.
func NewTestEstimate(requirementID string, opts ...EstimateOption) *domain.Estimate {
	e := &domain.Estimate{
		ID:            uuid.New().String(),
		RequirementID: requirementID,
		Scenario:      "base",
		ActivityCodes: []string{"ANL_FUNC", "DEV_BE"},
		Drivers: domain.DriverSelection{
			Complexity: "Medium", Environments: "2 env", Reuse: "Medium", Stakeholders: "2-3 team",
		},
		ActivitiesBaseDays: 5,
		DriverMultiplier:   1,
		SubtotalDays:       5,
		TotalDays:          5,
		CatalogVersion:     "test",
		DriversVersion:     "test",
		RiskmapVersion:     "test",
		CreatedOn:          FixedNow,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
