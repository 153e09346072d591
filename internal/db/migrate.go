package db

import (
	"database/sql"
	"fmt"
)

// SchemaVersion is stored in PRAGMA user_version once migrations succeed.
const SchemaVersion = 1

// Migrate runs all schema migrations. Every statement is idempotent.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", SchemaVersion)); err != nil {
		return fmt.Errorf("setting schema version: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS requirements (
		id          TEXT PRIMARY KEY,
		seq         INTEGER NOT NULL DEFAULT 0,
		parent_id   TEXT REFERENCES requirements(id) ON DELETE CASCADE,
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		priority    TEXT NOT NULL DEFAULT 'Med'
		            CHECK(priority IN ('High','Med','Low')),
		state       TEXT NOT NULL DEFAULT 'proposed'
		            CHECK(state IN ('proposed','selected','scheduled','done')),
		difficulty  TEXT NOT NULL DEFAULT ''
		            CHECK(difficulty IN ('','low','medium','high')),
		tags        TEXT NOT NULL DEFAULT '[]',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL,
		CHECK(parent_id IS NULL OR parent_id != id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_requirements_parent ON requirements(parent_id)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_requirements_seq ON requirements(seq) WHERE seq > 0`,

	`CREATE TABLE IF NOT EXISTS sequences (
		name     TEXT PRIMARY KEY,
		next_seq INTEGER NOT NULL CHECK(next_seq > 0)
	)`,

	`CREATE TABLE IF NOT EXISTS estimates (
		id                   TEXT PRIMARY KEY,
		requirement_id       TEXT NOT NULL REFERENCES requirements(id) ON DELETE CASCADE,
		scenario             TEXT NOT NULL DEFAULT '',
		activity_codes       TEXT NOT NULL DEFAULT '[]',
		complexity           TEXT NOT NULL,
		environments         TEXT NOT NULL,
		reuse                TEXT NOT NULL,
		stakeholders         TEXT NOT NULL,
		driver_sources       TEXT NOT NULL DEFAULT '{}',
		risk_ids             TEXT NOT NULL DEFAULT '[]',
		activities_base_days REAL NOT NULL,
		driver_multiplier    REAL NOT NULL,
		subtotal_days        REAL NOT NULL,
		risk_score           REAL NOT NULL,
		contingency_pct      REAL NOT NULL,
		contingency_days     REAL NOT NULL,
		total_days           REAL NOT NULL,
		catalog_version      TEXT NOT NULL,
		drivers_version      TEXT NOT NULL,
		riskmap_version      TEXT NOT NULL,
		created_on           TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_estimates_requirement ON estimates(requirement_id, created_on)`,

	// Estimates are an audit trail: new scenarios insert new rows.
	`CREATE TRIGGER IF NOT EXISTS trg_estimates_immutable
		BEFORE UPDATE ON estimates
		BEGIN
			SELECT RAISE(ABORT, 'estimates are immutable');
		END`,
}
