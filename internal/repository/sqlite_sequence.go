package repository

import (
	"context"
	"fmt"

	"github.com/Ehphp/RequestEstimator-sub000/internal/db"
)

// RequirementSequence names the allocator behind requirement short numbers.
const RequirementSequence = "requirements"

// SQLiteSequenceRepo allocates named sequence values atomically using the
// sequences table.
type SQLiteSequenceRepo struct {
	db db.DBTX
}

// NewSQLiteSequenceRepo creates a new SQLiteSequenceRepo.
func NewSQLiteSequenceRepo(conn db.DBTX) *SQLiteSequenceRepo {
	return &SQLiteSequenceRepo{db: conn}
}

// Next returns the next value of the named sequence. The first allocation
// of RequirementSequence starts after the largest stored requirement seq.
func (r *SQLiteSequenceRepo) Next(ctx context.Context, name string) (int, error) {
	seedQuery := `INSERT OR IGNORE INTO sequences (name, next_seq)
		SELECT ?, CASE WHEN ? = ? THEN COALESCE((SELECT MAX(seq) FROM requirements), 0) + 1 ELSE 1 END`
	if _, err := r.db.ExecContext(ctx, seedQuery, name, name, RequirementSequence); err != nil {
		return 0, fmt.Errorf("seeding sequence %s: %w", name, err)
	}

	var next int
	allocQuery := `UPDATE sequences
		SET next_seq = next_seq + 1
		WHERE name = ?
		RETURNING next_seq - 1`
	if err := r.db.QueryRowContext(ctx, allocQuery, name).Scan(&next); err != nil {
		return 0, fmt.Errorf("allocating next value of sequence %s: %w", name, err)
	}
	return next, nil
}
