package importer

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Ehphp/RequestEstimator-sub000/internal/domain"
	"github.com/Ehphp/RequestEstimator-sub000/internal/hierarchy"
)

// GeneratedRequirements is a converted import, ready for persistence.
// Requirements are ordered parents first.
type GeneratedRequirements struct {
	Requirements []*domain.Requirement
	Estimates    []EstimateDraft
}

// EstimateDraft is an imported estimate that still has to be calculated
// against the catalog.
type EstimateDraft struct {
	RequirementID string
	Scenario      string
	ActivityCodes []string
	Drivers       domain.DriverSelection
	RiskIDs       []string
	Preset        string
}

// Convert transforms a validated ImportSchema into domain objects ready for
// persistence. Call ValidateImportSchema first; Convert assumes the schema
// is valid.
func Convert(schema *ImportSchema, now time.Time) (*GeneratedRequirements, error) {
	refMap := make(map[string]string, len(schema.Requirements)) // ref -> UUID
	for _, r := range schema.Requirements {
		refMap[r.Ref] = uuid.New().String()
	}

	defaults := schema.Defaults
	if defaults == nil {
		defaults = &DefaultsImport{}
	}

	// Pre-order over the declared forest puts every parent before its children.
	forest := hierarchy.Build(schema.Requirements,
		func(r RequirementImport) string { return r.Ref },
		parentRef,
	)
	if cut := forest.CutLinks(); len(cut) > 0 {
		return nil, fmt.Errorf("circular parent_ref chain at %q", cut[0])
	}

	out := &GeneratedRequirements{}
	for _, row := range forest.Flatten(nil) {
		r := row.Item
		priority, _ := domain.ParsePriority(domain.FirstNonBlank(r.Priority, defaults.Priority, string(domain.PriorityMed)))

		req := &domain.Requirement{
			ID:          refMap[r.Ref],
			Title:       r.Title,
			Description: r.Description,
			Priority:    priority,
			State:       domain.RequirementState(domain.FirstNonBlank(r.State, defaults.State, string(domain.StateProposed))),
			Difficulty:  domain.Difficulty(r.Difficulty),
			Tags:        domain.NormalizeTags(r.Tags),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if len(req.Tags) == 0 {
			req.Tags = nil
		}
		if p := parentRef(r); p != "" {
			pid, ok := refMap[p]
			if !ok {
				return nil, fmt.Errorf("parent_ref %q not found for requirement %q", p, r.Ref)
			}
			req.ParentID = &pid
		}
		out.Requirements = append(out.Requirements, req)

		if r.Estimate != nil {
			out.Estimates = append(out.Estimates, convertEstimate(req.ID, r.Estimate, defaults))
		}
	}
	return out, nil
}

func convertEstimate(requirementID string, e *EstimateImport, defaults *DefaultsImport) EstimateDraft {
	var sel domain.DriverSelection
	for dim, option := range e.Drivers {
		sel = sel.With(domain.DriverDimension(dim), option)
	}
	return EstimateDraft{
		RequirementID: requirementID,
		Scenario:      domain.FirstNonBlank(e.Scenario, defaults.Scenario, "base"),
		ActivityCodes: e.Activities,
		Drivers:       sel,
		RiskIDs:       e.Risks,
		Preset:        domain.FirstNonBlank(e.Preset, defaults.Preset),
	}
}
