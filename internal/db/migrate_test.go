package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"requirements", "sequences", "estimates"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexesAndTrigger(t *testing.T) {
	db := openTestDB(t)

	for _, idx := range []string{"idx_requirements_parent", "idx_requirements_seq", "idx_estimates_requirement"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}

	var trigger string
	err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='trigger' AND name='trg_estimates_immutable'`).Scan(&trigger)
	require.NoError(t, err)
}

func TestMigrate_SetsSchemaVersion(t *testing.T) {
	db := openTestDB(t)

	var v int
	require.NoError(t, db.QueryRow(`PRAGMA user_version`).Scan(&v))
	assert.Equal(t, SchemaVersion, v)
}

func TestMigrate_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk, "foreign keys should be enabled")
}

func insertRequirement(t *testing.T, db *sql.DB, id string, parent any) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO requirements (id, parent_id, title, created_at, updated_at)
		VALUES (?, ?, 'r', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`, id, parent)
	require.NoError(t, err)
}

func insertEstimate(t *testing.T, db *sql.DB, id, reqID string) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO estimates (
		id, requirement_id, complexity, environments, reuse, stakeholders,
		activities_base_days, driver_multiplier, subtotal_days, risk_score,
		contingency_pct, contingency_days, total_days,
		catalog_version, drivers_version, riskmap_version, created_on)
		VALUES (?, ?, 'Medium', '2 env', 'Medium', '2-3 team', 5, 1, 5, 0, 0, 0, 5, 'v1', 'v1', 'v1', '2025-01-01T00:00:00Z')`,
		id, reqID)
	require.NoError(t, err)
}

func TestSchema_EstimatesAreImmutable(t *testing.T) {
	db := openTestDB(t)
	insertRequirement(t, db, "r1", nil)
	insertEstimate(t, db, "e1", "r1")

	_, err := db.Exec(`UPDATE estimates SET total_days = 99 WHERE id = 'e1'`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "estimates are immutable")
}

func TestSchema_DeletingRequirementCascades(t *testing.T) {
	db := openTestDB(t)
	insertRequirement(t, db, "parent", nil)
	insertRequirement(t, db, "child", "parent")
	insertEstimate(t, db, "e1", "child")

	_, err := db.Exec(`DELETE FROM requirements WHERE id = 'parent'`)
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM requirements`).Scan(&n))
	assert.Equal(t, 0, n)
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM estimates`).Scan(&n))
	assert.Equal(t, 0, n)
}

func TestSchema_RejectsSelfParentAndBadPriority(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO requirements (id, parent_id, title, created_at, updated_at)
		VALUES ('a', 'a', 't', 'x', 'x')`)
	assert.Error(t, err)

	_, err = db.Exec(`INSERT INTO requirements (id, title, priority, created_at, updated_at)
		VALUES ('b', 't', 'Urgent', 'x', 'x')`)
	assert.Error(t, err)
}
