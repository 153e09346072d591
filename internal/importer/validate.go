package importer

import (
	"fmt"
	"strings"

	"github.com/Ehphp/RequestEstimator-sub000/internal/domain"
	"github.com/Ehphp/RequestEstimator-sub000/internal/hierarchy"
)

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	errs = append(errs, validateDefaults(schema.Defaults)...)

	if len(schema.Requirements) == 0 {
		errs = append(errs, fmt.Errorf("requirements: at least one requirement is required"))
	}

	refs := make(map[string]bool, len(schema.Requirements))
	for i, r := range schema.Requirements {
		prefix := fmt.Sprintf("requirements[%d]", i)
		if r.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		} else if refs[r.Ref] {
			errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", prefix, r.Ref))
		} else {
			refs[r.Ref] = true
		}
	}

	for i, r := range schema.Requirements {
		errs = append(errs, validateRequirement(fmt.Sprintf("requirements[%d]", i), r, refs)...)
	}

	errs = append(errs, detectCycles(schema.Requirements)...)

	return errs
}

func validateDefaults(d *DefaultsImport) []error {
	if d == nil {
		return nil
	}
	var errs []error
	if d.Priority != "" {
		if _, ok := domain.ParsePriority(d.Priority); !ok {
			errs = append(errs, fmt.Errorf("defaults.priority: invalid value %q", d.Priority))
		}
	}
	if d.State != "" && !domain.ValidStates[d.State] {
		errs = append(errs, fmt.Errorf("defaults.state: invalid value %q", d.State))
	}
	return errs
}

func validateRequirement(prefix string, r RequirementImport, refs map[string]bool) []error {
	var errs []error

	if strings.TrimSpace(r.Title) == "" {
		errs = append(errs, fmt.Errorf("%s.title is required", prefix))
	}
	if r.Priority != "" {
		if _, ok := domain.ParsePriority(r.Priority); !ok {
			errs = append(errs, fmt.Errorf("%s.priority: invalid value %q", prefix, r.Priority))
		}
	}
	if r.State != "" && !domain.ValidStates[r.State] {
		errs = append(errs, fmt.Errorf("%s.state: invalid value %q", prefix, r.State))
	}
	if r.Difficulty != "" && !domain.ValidDifficulties[r.Difficulty] {
		errs = append(errs, fmt.Errorf("%s.difficulty: invalid value %q", prefix, r.Difficulty))
	}

	if r.ParentRef != nil && *r.ParentRef != "" {
		switch {
		case *r.ParentRef == r.Ref:
			errs = append(errs, fmt.Errorf("%s.parent_ref: requirement %q cannot be its own parent", prefix, r.Ref))
		case !refs[*r.ParentRef]:
			errs = append(errs, fmt.Errorf("%s.parent_ref: ref %q not found in requirements", prefix, *r.ParentRef))
		}
	}

	if r.Estimate != nil {
		errs = append(errs, validateEstimate(prefix+".estimate", r.Estimate)...)
	}
	return errs
}

func validateEstimate(prefix string, e *EstimateImport) []error {
	var errs []error
	if len(e.Activities) == 0 {
		errs = append(errs, fmt.Errorf("%s.activities: at least one activity is required", prefix))
	}
	for dim := range e.Drivers {
		if !domain.IsDriverDimension(domain.DriverDimension(dim)) {
			errs = append(errs, fmt.Errorf("%s.drivers: unknown dimension %q", prefix, dim))
		}
	}
	return errs
}

// detectCycles reports parent_ref loops longer than one link; self-parents
// are reported per requirement.
func detectCycles(reqs []RequirementImport) []error {
	cycles := hierarchy.FindCycles(reqs,
		func(r RequirementImport) string { return r.Ref },
		parentRef,
	)
	var errs []error
	for _, group := range cycles {
		if len(group) < 2 {
			continue
		}
		errs = append(errs, fmt.Errorf("circular parent_ref chain between %s", strings.Join(group, ", ")))
	}
	return errs
}

func parentRef(r RequirementImport) string {
	if r.ParentRef == nil {
		return ""
	}
	return *r.ParentRef
}
