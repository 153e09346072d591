package service

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ehphp/RequestEstimator-sub000/internal/domain"
	"github.com/Ehphp/RequestEstimator-sub000/internal/importer"
	"github.com/Ehphp/RequestEstimator-sub000/internal/testutil"
)

func writeImportJSON(t *testing.T, schema *importer.ImportSchema) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "import.json")
	data, err := json.MarshalIndent(schema, "", "  ")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func ptrStr(s string) *string { return &s }

func portfolioSchema() *importer.ImportSchema {
	return &importer.ImportSchema{
		Defaults: &importer.DefaultsImport{Priority: "Med"},
		Requirements: []importer.RequirementImport{
			{Ref: "form", ParentRef: ptrStr("checkout"), Title: "Payment form", Priority: "Low", Tags: []string{"ux"},
				Estimate: &importer.EstimateImport{Activities: []string{"DEV_FE"}}},
			{Ref: "checkout", Title: "Checkout",
				Estimate: &importer.EstimateImport{
					Activities: []string{"ANL_FUNC", "DEV_BE"},
					Drivers:    map[string]string{"complexity": "High"},
					Risks:      []string{"R_INTEGRATION", "R_UNKNOWN"},
				}},
			{Ref: "login", Title: "Login", Priority: "High"},
		},
	}
}

func TestImportService_ImportFile(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	res, err := env.imports.ImportFile(ctx, writeImportJSON(t, portfolioSchema()))
	require.NoError(t, err)
	require.Len(t, res.Requirements, 3)
	assert.Equal(t, 2, res.Estimates)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "R_UNKNOWN")

	list, err := env.reqs.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	// Parents are stored first, so they get the lower numbers.
	assert.Equal(t, "Checkout", list[0].Title)
	assert.Equal(t, 1, list[0].Seq)
	assert.Equal(t, "Payment form", list[1].Title)
	assert.Equal(t, list[0].ID, list[1].ParentIDOrEmpty())
	assert.Equal(t, domain.PriorityMed, list[0].Priority)
	assert.Equal(t, domain.PriorityHigh, list[2].Priority)

	checkoutEst, err := env.estimates.Latest(ctx, list[0].ID)
	require.NoError(t, err)
	// (2 + 3) * 1.5 = 7.5; risk 5 -> 10% -> 0.75
	assert.Equal(t, 7.5, checkoutEst.SubtotalDays)
	assert.Equal(t, 8.25, checkoutEst.TotalDays)
	assert.Equal(t, domain.SystemDefault(), checkoutEst.DriverSources[domain.DimensionReuse])
	_, explicit := checkoutEst.DriverSources[domain.DimensionComplexity]
	assert.False(t, explicit)
}

func TestImportService_ContinuesSequenceAfterExistingRequirements(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	env.addRequirement(t, "Existing")

	res, err := env.imports.ImportSchema(ctx, portfolioSchema())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Requirements[0].Seq)
	assert.Equal(t, 4, res.Requirements[2].Seq)
}

func TestImportService_ValidationErrorsListEveryProblem(t *testing.T) {
	env := setupEnv(t)
	schema := &importer.ImportSchema{
		Requirements: []importer.RequirementImport{
			{Ref: "a", Title: ""},
			{Ref: "b", ParentRef: ptrStr("ghost"), Title: "B"},
		},
	}
	_, err := env.imports.ImportSchema(context.Background(), schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import validation failed (2 errors)")
	assert.Contains(t, err.Error(), "title is required")
	assert.Contains(t, err.Error(), `ref "ghost" not found`)
}

func TestImportService_UnknownPresetAborts(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	schema := portfolioSchema()
	schema.Requirements[1].Estimate.Preset = "nope"

	_, err := env.imports.ImportSchema(ctx, schema)
	requireEstimateCode(t, err, "UNKNOWN_PRESET")

	list, err := env.reqs.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestImportService_RollsBackOnEstimateWriteFailure(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	failing := &testutil.FailingUoW{DB: env.db, Match: "INSERT INTO estimates", FailOn: 2, Err: errors.New("disk full")}
	svc := NewImportService(env.catalog, failing)

	_, err := svc.ImportSchema(ctx, portfolioSchema())
	assert.ErrorContains(t, err, "disk full")

	list, err := env.reqs.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	latest, err := env.estRepo.LatestAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, latest)
}

func TestImportService_MissingFile(t *testing.T) {
	env := setupEnv(t)
	_, err := env.imports.ImportFile(context.Background(), filepath.Join(t.TempDir(), "absent.json"))
	assert.ErrorContains(t, err, "loading import file")
}
