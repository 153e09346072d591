package testutil

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Ehphp/RequestEstimator-sub000/internal/db"
)

// NewTestDB returns a migrated in-memory database closed at test cleanup.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err, "opening in-memory database")
	t.Cleanup(func() { _ = database.Close() })
	return database
}

// NewTestUoW returns the production unit of work over database.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
