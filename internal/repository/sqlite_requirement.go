package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Ehphp/RequestEstimator-sub000/internal/db"
	"github.com/Ehphp/RequestEstimator-sub000/internal/domain"
)

// requirementColumns is the canonical SELECT column list for requirements.
const requirementColumns = `id, seq, parent_id, title, description, priority, state,
		difficulty, tags, created_at, updated_at`

// SQLiteRequirementRepo implements RequirementRepo using a SQLite database.
type SQLiteRequirementRepo struct {
	db db.DBTX
}

// NewSQLiteRequirementRepo creates a new SQLiteRequirementRepo.
func NewSQLiteRequirementRepo(conn db.DBTX) *SQLiteRequirementRepo {
	return &SQLiteRequirementRepo{db: conn}
}

func (r *SQLiteRequirementRepo) Create(ctx context.Context, req *domain.Requirement) error {
	tags, err := encodeJSON("tags", nonNilStrings(req.Tags))
	if err != nil {
		return err
	}
	query := `INSERT INTO requirements (` + requirementColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		req.ID,
		req.Seq,
		nullableString(req.ParentID),
		req.Title,
		req.Description,
		string(req.Priority),
		string(req.State),
		string(req.Difficulty),
		tags,
		formatTime(req.CreatedAt),
		formatTime(req.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting requirement: %w", err)
	}
	return nil
}

func (r *SQLiteRequirementRepo) GetByID(ctx context.Context, id string) (*domain.Requirement, error) {
	query := `SELECT ` + requirementColumns + ` FROM requirements WHERE id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteRequirementRepo) GetBySeq(ctx context.Context, seq int) (*domain.Requirement, error) {
	query := `SELECT ` + requirementColumns + ` FROM requirements WHERE seq = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, seq))
}

func (r *SQLiteRequirementRepo) List(ctx context.Context) ([]*domain.Requirement, error) {
	query := `SELECT ` + requirementColumns + ` FROM requirements ORDER BY seq, created_at, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing requirements: %w", err)
	}
	defer rows.Close()

	var out []*domain.Requirement
	for rows.Next() {
		req, err := scanRequirement(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning requirement row: %w", err)
		}
		out = append(out, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating requirements: %w", err)
	}
	return out, nil
}

func (r *SQLiteRequirementRepo) Update(ctx context.Context, req *domain.Requirement) error {
	tags, err := encodeJSON("tags", nonNilStrings(req.Tags))
	if err != nil {
		return err
	}
	query := `UPDATE requirements SET parent_id = ?, title = ?, description = ?, priority = ?,
		state = ?, difficulty = ?, tags = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		nullableString(req.ParentID),
		req.Title,
		req.Description,
		string(req.Priority),
		string(req.State),
		string(req.Difficulty),
		tags,
		formatTime(req.UpdatedAt),
		req.ID,
	)
	if err != nil {
		return fmt.Errorf("updating requirement: %w", err)
	}
	return requireAffected(res, "requirement")
}

// SetParent changes only the parent link. A nil or empty parentID detaches
// the requirement to a root.
func (r *SQLiteRequirementRepo) SetParent(ctx context.Context, id string, parentID *string) error {
	query := `UPDATE requirements SET parent_id = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, nullableString(parentID), nowUTC(), id)
	if err != nil {
		return fmt.Errorf("setting requirement parent: %w", err)
	}
	return requireAffected(res, "requirement")
}

// Delete removes a requirement; descendants and estimates go with it.
func (r *SQLiteRequirementRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM requirements WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting requirement: %w", err)
	}
	return requireAffected(res, "requirement")
}

func (r *SQLiteRequirementRepo) scanOne(row *sql.Row) (*domain.Requirement, error) {
	req, err := scanRequirement(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("requirement: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning requirement: %w", err)
	}
	return req, nil
}

func scanRequirement(row rowScanner) (*domain.Requirement, error) {
	var req domain.Requirement
	var parentID sql.NullString
	var priority, state, difficulty, tags, createdAt, updatedAt string

	if err := row.Scan(
		&req.ID, &req.Seq, &parentID, &req.Title, &req.Description,
		&priority, &state, &difficulty, &tags, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}

	req.ParentID = stringPtr(parentID)
	req.Priority = domain.Priority(priority)
	req.State = domain.RequirementState(state)
	req.Difficulty = domain.Difficulty(difficulty)
	if err := decodeJSON("tags", tags, &req.Tags); err != nil {
		return nil, err
	}
	if len(req.Tags) == 0 {
		req.Tags = nil
	}

	var err error
	if req.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	if req.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &req, nil
}

func requireAffected(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", entity, ErrNotFound)
	}
	return nil
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
