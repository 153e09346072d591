package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Ehphp/RequestEstimator-sub000/internal/db"
	"github.com/Ehphp/RequestEstimator-sub000/internal/domain"
)

// estimateColumns is the canonical SELECT column list for estimates.
const estimateColumns = `id, requirement_id, scenario, activity_codes,
		complexity, environments, reuse, stakeholders, driver_sources, risk_ids,
		activities_base_days, driver_multiplier, subtotal_days, risk_score,
		contingency_pct, contingency_days, total_days,
		catalog_version, drivers_version, riskmap_version, created_on`

// SQLiteEstimateRepo implements EstimateRepo using a SQLite database.
type SQLiteEstimateRepo struct {
	db db.DBTX
}

// NewSQLiteEstimateRepo creates a new SQLiteEstimateRepo.
func NewSQLiteEstimateRepo(conn db.DBTX) *SQLiteEstimateRepo {
	return &SQLiteEstimateRepo{db: conn}
}

func (r *SQLiteEstimateRepo) Create(ctx context.Context, e *domain.Estimate) error {
	codes, err := encodeJSON("activity_codes", nonNilStrings(e.ActivityCodes))
	if err != nil {
		return err
	}
	risks, err := encodeJSON("risk_ids", nonNilStrings(e.RiskIDs))
	if err != nil {
		return err
	}
	sources, err := encodeJSON("driver_sources", encodeSources(e.DriverSources))
	if err != nil {
		return err
	}

	query := `INSERT INTO estimates (` + estimateColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		e.ID,
		e.RequirementID,
		e.Scenario,
		codes,
		e.Drivers.Complexity,
		e.Drivers.Environments,
		e.Drivers.Reuse,
		e.Drivers.Stakeholders,
		sources,
		risks,
		e.ActivitiesBaseDays,
		e.DriverMultiplier,
		e.SubtotalDays,
		e.RiskScore,
		e.ContingencyPct,
		e.ContingencyDays,
		e.TotalDays,
		e.CatalogVersion,
		e.DriversVersion,
		e.RiskmapVersion,
		formatTime(e.CreatedOn),
	)
	if err != nil {
		return fmt.Errorf("inserting estimate: %w", err)
	}
	return nil
}

func (r *SQLiteEstimateRepo) GetByID(ctx context.Context, id string) (*domain.Estimate, error) {
	query := `SELECT ` + estimateColumns + ` FROM estimates WHERE id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// LatestByRequirement returns the most recently created estimate of a
// requirement; insertion order breaks timestamp ties.
func (r *SQLiteEstimateRepo) LatestByRequirement(ctx context.Context, requirementID string) (*domain.Estimate, error) {
	query := `SELECT ` + estimateColumns + ` FROM estimates
		WHERE requirement_id = ?
		ORDER BY created_on DESC, rowid DESC
		LIMIT 1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, requirementID))
}

// ListByRequirement returns every estimate of a requirement, oldest first.
func (r *SQLiteEstimateRepo) ListByRequirement(ctx context.Context, requirementID string) ([]*domain.Estimate, error) {
	query := `SELECT ` + estimateColumns + ` FROM estimates
		WHERE requirement_id = ?
		ORDER BY created_on, rowid`
	return r.query(ctx, query, requirementID)
}

// LatestAll returns the latest estimate of every estimated requirement,
// keyed by requirement id.
func (r *SQLiteEstimateRepo) LatestAll(ctx context.Context) (map[string]*domain.Estimate, error) {
	query := `SELECT ` + estimateColumns + ` FROM estimates e
		WHERE e.rowid = (
			SELECT e2.rowid FROM estimates e2
			WHERE e2.requirement_id = e.requirement_id
			ORDER BY e2.created_on DESC, e2.rowid DESC
			LIMIT 1
		)`
	list, err := r.query(ctx, query)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*domain.Estimate, len(list))
	for _, e := range list {
		out[e.RequirementID] = e
	}
	return out, nil
}

func (r *SQLiteEstimateRepo) query(ctx context.Context, query string, args ...any) ([]*domain.Estimate, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing estimates: %w", err)
	}
	defer rows.Close()

	var out []*domain.Estimate
	for rows.Next() {
		e, err := scanEstimate(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning estimate row: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating estimates: %w", err)
	}
	return out, nil
}

func (r *SQLiteEstimateRepo) scanOne(row *sql.Row) (*domain.Estimate, error) {
	e, err := scanEstimate(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("estimate: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning estimate: %w", err)
	}
	return e, nil
}

func scanEstimate(row rowScanner) (*domain.Estimate, error) {
	var e domain.Estimate
	var codes, sources, risks, createdOn string

	if err := row.Scan(
		&e.ID, &e.RequirementID, &e.Scenario, &codes,
		&e.Drivers.Complexity, &e.Drivers.Environments, &e.Drivers.Reuse, &e.Drivers.Stakeholders,
		&sources, &risks,
		&e.ActivitiesBaseDays, &e.DriverMultiplier, &e.SubtotalDays, &e.RiskScore,
		&e.ContingencyPct, &e.ContingencyDays, &e.TotalDays,
		&e.CatalogVersion, &e.DriversVersion, &e.RiskmapVersion, &createdOn,
	); err != nil {
		return nil, err
	}

	if err := decodeJSON("activity_codes", codes, &e.ActivityCodes); err != nil {
		return nil, err
	}
	if err := decodeJSON("risk_ids", risks, &e.RiskIDs); err != nil {
		return nil, err
	}
	if len(e.RiskIDs) == 0 {
		e.RiskIDs = nil
	}

	var raw map[string]string
	if err := decodeJSON("driver_sources", sources, &raw); err != nil {
		return nil, err
	}
	var err error
	if e.DriverSources, err = decodeSources(raw); err != nil {
		return nil, err
	}
	if e.CreatedOn, err = parseTime("created_on", createdOn); err != nil {
		return nil, err
	}
	return &e, nil
}

// Driver provenance is stored in its canonical string form, e.g.
// {"complexity": "preset:backend-api"}.
func encodeSources(src map[domain.DriverDimension]domain.DefaultSource) map[string]string {
	out := make(map[string]string, len(src))
	for dim, s := range src {
		if !s.IsZero() {
			out[string(dim)] = s.String()
		}
	}
	return out
}

func decodeSources(raw map[string]string) (map[domain.DriverDimension]domain.DefaultSource, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make(map[domain.DriverDimension]domain.DefaultSource, len(raw))
	for dim, label := range raw {
		s, err := domain.ParseDefaultSource(label)
		if err != nil {
			return nil, fmt.Errorf("decoding driver_sources[%s]: %w", dim, err)
		}
		out[domain.DriverDimension(dim)] = s
	}
	return out, nil
}
