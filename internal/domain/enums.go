package domain

import "strings"

type Priority string

const (
	PriorityHigh Priority = "High"
	PriorityMed  Priority = "Med"
	PriorityLow  Priority = "Low"
)

// Priorities lists every priority in canonical order (most urgent first).
var Priorities = []Priority{PriorityHigh, PriorityMed, PriorityLow}

// Rank returns a sort priority (lower = more urgent). Unknown values sort last.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMed:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// ParsePriority accepts the canonical names plus common long forms
// ("high", "medium", "low"), case-insensitively.
func ParsePriority(s string) (Priority, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high", "h":
		return PriorityHigh, true
	case "med", "medium", "m":
		return PriorityMed, true
	case "low", "l":
		return PriorityLow, true
	}
	return "", false
}

type RequirementState string

const (
	StateProposed  RequirementState = "proposed"
	StateSelected  RequirementState = "selected"
	StateScheduled RequirementState = "scheduled"
	StateDone      RequirementState = "done"
)

// ValidStates is the canonical set of accepted requirement state strings.
var ValidStates = map[string]bool{
	"proposed": true, "selected": true, "scheduled": true, "done": true,
}

type Difficulty string

const (
	DifficultyLow    Difficulty = "low"
	DifficultyMedium Difficulty = "medium"
	DifficultyHigh   Difficulty = "high"
)

// ValidDifficulties is the canonical set of accepted difficulty strings.
var ValidDifficulties = map[string]bool{"low": true, "medium": true, "high": true}

type DriverDimension string

const (
	DimensionComplexity   DriverDimension = "complexity"
	DimensionEnvironments DriverDimension = "environments"
	DimensionReuse        DriverDimension = "reuse"
	DimensionStakeholders DriverDimension = "stakeholders"
)

// DriverDimensions lists the four dimensions every estimate must choose an option for.
var DriverDimensions = []DriverDimension{
	DimensionComplexity,
	DimensionEnvironments,
	DimensionReuse,
	DimensionStakeholders,
}

// IsDriverDimension reports whether d is one of DriverDimensions.
func IsDriverDimension(d DriverDimension) bool {
	for _, dim := range DriverDimensions {
		if dim == d {
			return true
		}
	}
	return false
}

type SchedulingPolicy string

const (
	PolicyNeutral       SchedulingPolicy = "neutral"
	PolicyPriorityFirst SchedulingPolicy = "priority_first"
)

// ParsePolicy maps user input to a SchedulingPolicy.
func ParsePolicy(s string) (SchedulingPolicy, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "neutral", "":
		return PolicyNeutral, true
	case "priority_first", "priority-first", "priorityfirst":
		return PolicyPriorityFirst, true
	}
	return "", false
}

type AlertType string

const (
	AlertInfo     AlertType = "info"
	AlertWarning  AlertType = "warning"
	AlertCritical AlertType = "critical"
)

// Severity returns a sort priority (lower = more severe).
func (a AlertType) Severity() int {
	switch a {
	case AlertCritical:
		return 0
	case AlertWarning:
		return 1
	default:
		return 2
	}
}

type ConfidenceLevel string

const (
	ConfidenceLow    ConfidenceLevel = "low"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceHigh   ConfidenceLevel = "high"
)

type SortKey string

const (
	SortCreatedAsc   SortKey = "created_asc"
	SortCreatedDesc  SortKey = "created_desc"
	SortPriority     SortKey = "priority"
	SortTitle        SortKey = "title"
	SortEstimateAsc  SortKey = "estimate_asc"
	SortEstimateDesc SortKey = "estimate_desc"
)

// ValidSortKeys is the canonical set of accepted sort keys.
var ValidSortKeys = map[string]bool{
	"created_asc": true, "created_desc": true, "priority": true,
	"title": true, "estimate_asc": true, "estimate_desc": true,
}
