package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ehphp/RequestEstimator-sub000/internal/domain"
)

var importNow = time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)

func TestConvert_OrdersParentsFirstAndLinksIDs(t *testing.T) {
	schema := &ImportSchema{
		Requirements: []RequirementImport{
			{Ref: "leaf", ParentRef: ptrStr("mid"), Title: "Leaf"},
			{Ref: "mid", ParentRef: ptrStr("root"), Title: "Mid"},
			{Ref: "root", Title: "Root"},
		},
	}
	require.Empty(t, ValidateImportSchema(schema))

	gen, err := Convert(schema, importNow)
	require.NoError(t, err)
	require.Len(t, gen.Requirements, 3)

	root, mid, leaf := gen.Requirements[0], gen.Requirements[1], gen.Requirements[2]
	assert.Equal(t, "Root", root.Title)
	assert.Nil(t, root.ParentID)
	require.NotNil(t, mid.ParentID)
	assert.Equal(t, root.ID, *mid.ParentID)
	require.NotNil(t, leaf.ParentID)
	assert.Equal(t, mid.ID, *leaf.ParentID)
	assert.NotEqual(t, root.ID, mid.ID)
}

func TestConvert_AppliesDefaultsCascade(t *testing.T) {
	schema := &ImportSchema{
		Defaults: &DefaultsImport{Priority: "high", State: "selected", Scenario: "pessimistic", Preset: "enterprise"},
		Requirements: []RequirementImport{
			{Ref: "a", Title: "Inherits", Tags: []string{" api ", "API", "ux"},
				Estimate: &EstimateImport{Activities: []string{"DEV_BE"}}},
			{Ref: "b", Title: "Overrides", Priority: "Low", State: "done", Difficulty: "low",
				Estimate: &EstimateImport{
					Scenario:   "base",
					Activities: []string{"DEV_FE"},
					Drivers:    map[string]string{"complexity": "Low", "reuse": "High"},
					Preset:     "small-change",
				}},
			{Ref: "c", Title: "Bare"},
		},
	}
	require.Empty(t, ValidateImportSchema(schema))

	gen, err := Convert(schema, importNow)
	require.NoError(t, err)
	require.Len(t, gen.Requirements, 3)

	a, b := gen.Requirements[0], gen.Requirements[1]
	assert.Equal(t, domain.PriorityHigh, a.Priority)
	assert.Equal(t, domain.StateSelected, a.State)
	assert.Equal(t, []string{"api", "ux"}, a.Tags)
	assert.Equal(t, importNow, a.CreatedAt)

	assert.Equal(t, domain.PriorityLow, b.Priority)
	assert.Equal(t, domain.StateDone, b.State)
	assert.Equal(t, domain.DifficultyLow, b.Difficulty)
	assert.Nil(t, gen.Requirements[2].Tags)

	require.Len(t, gen.Estimates, 2)
	assert.Equal(t, a.ID, gen.Estimates[0].RequirementID)
	assert.Equal(t, "pessimistic", gen.Estimates[0].Scenario)
	assert.Equal(t, "enterprise", gen.Estimates[0].Preset)

	assert.Equal(t, "base", gen.Estimates[1].Scenario)
	assert.Equal(t, "small-change", gen.Estimates[1].Preset)
	assert.Equal(t, domain.DriverSelection{Complexity: "Low", Reuse: "High"}, gen.Estimates[1].Drivers)
}

func TestConvert_NoDefaults(t *testing.T) {
	gen, err := Convert(validMinimalSchema(), importNow)
	require.NoError(t, err)
	require.Len(t, gen.Requirements, 1)
	assert.Equal(t, domain.PriorityMed, gen.Requirements[0].Priority)
	assert.Equal(t, domain.StateProposed, gen.Requirements[0].State)
	assert.Empty(t, gen.Estimates)
}

func TestConvert_RejectsParentLoop(t *testing.T) {
	schema := &ImportSchema{
		Requirements: []RequirementImport{
			{Ref: "a", ParentRef: ptrStr("b"), Title: "A"},
			{Ref: "b", ParentRef: ptrStr("a"), Title: "B"},
		},
	}
	_, err := Convert(schema, importNow)
	assert.ErrorContains(t, err, "circular parent_ref chain")
}
