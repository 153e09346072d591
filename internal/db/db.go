// Package db opens the estimator's SQLite store and provides the
// transaction plumbing repositories share.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// connPragmas run once per open. Foreign keys carry the parent and
// estimate cascades; the busy timeout covers a second CLI process holding
// the write lock.
var connPragmas = []struct {
	name, stmt string
	fileOnly   bool
}{
	{name: "journal mode", stmt: "PRAGMA journal_mode = WAL", fileOnly: true},
	{name: "foreign keys", stmt: "PRAGMA foreign_keys = ON"},
	{name: "busy timeout", stmt: "PRAGMA busy_timeout = 5000"},
}

// OpenDB opens (creating if needed) the database at path, applies the
// connection pragmas and runs pending migrations.
func OpenDB(path string) (*sql.DB, error) {
	inMemory := path == MemoryPath
	if !inMemory {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if inMemory {
		// Every connection to :memory: is a separate database.
		conn.SetMaxOpenConns(1)
	}

	for _, p := range connPragmas {
		if p.fileOnly && inMemory {
			continue
		}
		if _, err := conn.Exec(p.stmt); err != nil {
			conn.Close()
			return nil, fmt.Errorf("setting %s: %w", p.name, err)
		}
	}

	if err := Migrate(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return conn, nil
}
