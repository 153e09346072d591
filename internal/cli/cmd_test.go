package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ehphp/RequestEstimator-sub000/internal/catalog"
	"github.com/Ehphp/RequestEstimator-sub000/internal/config"
	"github.com/Ehphp/RequestEstimator-sub000/internal/repository"
	"github.com/Ehphp/RequestEstimator-sub000/internal/service"
	"github.com/Ehphp/RequestEstimator-sub000/internal/testutil"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// monday is the fixed "today" of every CLI test.
var monday = time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	cat := catalog.Default()

	reqRepo := repository.NewSQLiteRequirementRepo(database)
	estRepo := repository.NewSQLiteEstimateRepo(database)

	return &App{
		Requirements: service.NewRequirementService(reqRepo, uow),
		Estimates:    service.NewEstimateService(cat, reqRepo, estRepo),
		Dashboard:    service.NewDashboardService(reqRepo, estRepo),
		Imports:      service.NewImportService(cat, uow),
		Catalog:      cat,
		Now:          func() time.Time { return monday },
	}
}

// executeCmd runs a cobra command and captures its output with ANSI codes
// stripped.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return ansiPattern.ReplaceAllString(buf.String(), ""), err
}

func mustExec(t *testing.T, app *App, args ...string) string {
	t.Helper()
	out, err := executeCmd(t, app, args...)
	require.NoError(t, err, out)
	return out
}

// --- requirement ---

func TestRequirementAdd_AssignsSequence(t *testing.T) {
	app := testApp(t)

	out := mustExec(t, app, "requirement", "add", "--title", "Checkout", "--priority", "high", "--tag", "web,payments")
	assert.Contains(t, out, "Created requirement #1 Checkout")

	out = mustExec(t, app, "req", "add", "--title", "Cart", "--parent", "#1")
	assert.Contains(t, out, "Created requirement #2 Cart")

	out = mustExec(t, app, "requirement", "show", "2")
	assert.Contains(t, out, "#1 Checkout")
	assert.Contains(t, out, "not estimated")
}

func TestRequirementAdd_RejectsBadPriority(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "requirement", "add", "--title", "X", "--priority", "urgent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid priority")
}

func TestRequirementAdd_UnknownParent(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "requirement", "add", "--title", "Orphan", "--parent", "#9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parent #9")
}

func TestRequirementListAndTree(t *testing.T) {
	app := testApp(t)
	mustExec(t, app, "requirement", "add", "--title", "Checkout")
	mustExec(t, app, "requirement", "add", "--title", "Cart", "--parent", "1", "--priority", "low")
	mustExec(t, app, "requirement", "add", "--title", "Login", "--priority", "high")

	list := mustExec(t, app, "requirement", "list")
	assert.Contains(t, list, "REQUIREMENTS")
	assert.Contains(t, list, "Checkout")
	assert.Contains(t, list, "  Cart")

	tree := mustExec(t, app, "requirement", "tree")
	assert.Contains(t, tree, "└─ #2 Cart")

	filtered := mustExec(t, app, "requirement", "list", "--priority", "low")
	assert.Contains(t, filtered, "Cart")
	assert.Contains(t, filtered, "Checkout", "ancestor is kept as context")
	assert.NotContains(t, filtered, "Login")
}

func TestRequirementUpdate_OnlyChangedFields(t *testing.T) {
	app := testApp(t)
	mustExec(t, app, "requirement", "add", "--title", "Checkout", "--priority", "high")

	mustExec(t, app, "requirement", "update", "1", "--state", "selected")

	out := mustExec(t, app, "requirement", "show", "1")
	assert.Contains(t, out, "● High")
	assert.Contains(t, out, "◆ Selected")
}

func TestRequirementMove_RejectsCycle(t *testing.T) {
	app := testApp(t)
	mustExec(t, app, "requirement", "add", "--title", "Checkout")
	mustExec(t, app, "requirement", "add", "--title", "Cart", "--parent", "1")

	_, err := executeCmd(t, app, "requirement", "move", "1", "--parent", "2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CYCLE")

	out := mustExec(t, app, "requirement", "move", "2", "--root")
	assert.Contains(t, out, "Moved #2 under the top level")
}

func TestRequirementMove_NeedsExactlyOneTarget(t *testing.T) {
	app := testApp(t)
	mustExec(t, app, "requirement", "add", "--title", "Checkout")

	_, err := executeCmd(t, app, "requirement", "move", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one")
}

func TestRequirementRemove_CascadeGate(t *testing.T) {
	app := testApp(t)
	mustExec(t, app, "requirement", "add", "--title", "Checkout")
	mustExec(t, app, "requirement", "add", "--title", "Cart", "--parent", "1")

	_, err := executeCmd(t, app, "requirement", "remove", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HAS_CHILDREN")

	out := mustExec(t, app, "requirement", "remove", "1", "--cascade")
	assert.Contains(t, out, "Removed requirement #1 Checkout")

	_, err = executeCmd(t, app, "requirement", "show", "2")
	require.Error(t, err)
}

// --- estimate ---

func TestEstimateCreate_FromFlags(t *testing.T) {
	app := testApp(t)
	mustExec(t, app, "requirement", "add", "--title", "Checkout")

	out := mustExec(t, app, "estimate", "create", "1",
		"--activity", "DEV_BE", "--complexity", "High", "--risk", "R_INTEGRATION")
	// 3.0 * 1.5 = 4.5, risk 5 -> 10% contingency
	assert.Contains(t, out, "4.95d")
	assert.Contains(t, out, "0.45d (10%)")
	assert.Contains(t, out, "catalog baseline")
	assert.Contains(t, out, "Saved estimate")

	out = mustExec(t, app, "estimate", "show", "#1")
	assert.Contains(t, out, "4.95d")
}

func TestEstimateCreate_DryRunIsNotStored(t *testing.T) {
	app := testApp(t)
	mustExec(t, app, "requirement", "add", "--title", "Checkout")

	out := mustExec(t, app, "estimate", "create", "1", "--activity", "DEV_FE", "--dry-run")
	assert.Contains(t, out, "Dry run")

	out = mustExec(t, app, "estimate", "show", "1")
	assert.Contains(t, out, "has no estimate yet")
}

func TestEstimateCreate_Errors(t *testing.T) {
	app := testApp(t)
	mustExec(t, app, "requirement", "add", "--title", "Checkout")

	_, err := executeCmd(t, app, "estimate", "create", "1", "--activity", "DEV_BE", "--preset", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNKNOWN_PRESET")

	_, err = executeCmd(t, app, "estimate", "create", "1", "--activity", "DEV_BE", "--complexity", "Extreme")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CONFIG")

	_, err = executeCmd(t, app, "estimate", "create", "1", "--interactive")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "terminal")
}

func TestEstimateHistory(t *testing.T) {
	app := testApp(t)
	mustExec(t, app, "requirement", "add", "--title", "Checkout")
	mustExec(t, app, "estimate", "create", "1", "--activity", "DEV_BE")
	mustExec(t, app, "estimate", "create", "1", "--activity", "DEV_BE,TST_UNIT", "--scenario", "full")

	out := mustExec(t, app, "estimate", "history", "1")
	assert.Contains(t, out, "ESTIMATES OF #1 CHECKOUT")
	assert.Contains(t, out, "base")
	assert.Contains(t, out, "full")
	assert.Contains(t, out, "4d")
}

// --- dashboard ---

func TestDashboard_RendersPanelsAndAlerts(t *testing.T) {
	app := testApp(t)
	mustExec(t, app, "requirement", "add", "--title", "Checkout", "--tag", "web")
	mustExec(t, app, "estimate", "create", "1", "--activity", "DEV_BE")

	out := mustExec(t, app, "dashboard", "--target", "2025-03-01")
	assert.Contains(t, out, "PORTFOLIO")
	assert.Contains(t, out, "PROJECTION")
	assert.Contains(t, out, "CONFIDENCE")
	assert.Contains(t, out, "Behind schedule")
	assert.Contains(t, out, "3d")
}

func TestDashboard_InvalidDate(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "dashboard", "--start", "03/03/2025")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid start date")
}

// --- catalog ---

func TestCatalogShowAndExport(t *testing.T) {
	app := testApp(t)

	out := mustExec(t, app, "catalog", "show")
	assert.Contains(t, out, "ANL_FUNC")
	assert.Contains(t, out, "small-change")

	exported := mustExec(t, app, "catalog", "export")
	parsed, err := catalog.Parse([]byte(exported))
	require.NoError(t, err)
	assert.Equal(t, app.Catalog.Activities, parsed.Activities)
}

// --- import ---

func TestImport_File(t *testing.T) {
	app := testApp(t)
	path := filepath.Join(t.TempDir(), "backlog.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "requirements": [
    {"ref": "checkout", "title": "Checkout", "priority": "High",
     "estimate": {"activities": ["DEV_BE"]}},
    {"ref": "cart", "parent_ref": "checkout", "title": "Cart"}
  ]
}`), 0644))

	out := mustExec(t, app, "import", path)
	assert.Contains(t, out, "Imported 2 requirements, 1 estimates")

	tree := mustExec(t, app, "requirement", "tree")
	assert.Contains(t, tree, "└─ #2 Cart")
}

func TestImport_InvalidFileStoresNothing(t *testing.T) {
	app := testApp(t)
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"requirements": [{"ref": "a", "parent_ref": "missing", "title": "A"}]}`), 0644))

	_, err := executeCmd(t, app, "import", path)
	require.Error(t, err)

	out := mustExec(t, app, "requirement", "list")
	assert.Contains(t, out, "No requirements match.")
}

// --- root configuration ---

func TestRoot_FlagsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".estimator.yaml"), []byte("developers: 2\npolicy: priority_first\n"), 0644))

	app := testApp(t)
	app.Viper = config.New()
	wired := false
	app.Wire = func(a *App) error {
		wired = true
		return nil
	}

	mustExec(t, app, "--developers", "3", "catalog", "show")

	assert.True(t, wired)
	require.NotNil(t, app.Config)
	assert.Equal(t, 3, app.Config.Developers)
	assert.Equal(t, "priority_first", app.Config.Policy)
}

func TestRoot_InvalidConfigFailsBeforeWiring(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)

	app := testApp(t)
	app.Viper = config.New()
	app.Wire = func(a *App) error {
		t.Fatal("wire must not run")
		return nil
	}

	_, err := executeCmd(t, app, "--developers", "0", "catalog", "show")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "developers must be at least 1")
}
