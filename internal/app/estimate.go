package app

import (
	"github.com/Ehphp/RequestEstimator-sub000/internal/domain"
)

// EstimateRequest describes one estimate scenario. Driver dimensions left
// empty are pre-filled: from the requirement's previous estimate, then from
// Preset, then from the catalog baseline.
type EstimateRequest struct {
	RequirementID string
	Scenario      string
	ActivityCodes []string
	Drivers       domain.DriverSelection
	RiskIDs       []string
	Preset        string
	DryRun        bool
}

type EstimateResult struct {
	Estimate *domain.Estimate
	Stored   bool
	Warnings []string
}

type EstimateErrorCode string

const (
	EstimateErrInvalidInput        EstimateErrorCode = "INVALID_INPUT"
	EstimateErrConfig              EstimateErrorCode = "CONFIG"
	EstimateErrRequirementNotFound EstimateErrorCode = "REQUIREMENT_NOT_FOUND"
	EstimateErrUnknownPreset       EstimateErrorCode = "UNKNOWN_PRESET"
)

type EstimateError struct {
	Code    EstimateErrorCode
	Message string
}

func (e *EstimateError) Error() string {
	return string(e.Code) + ": " + e.Message
}
