package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is wrapped by every lookup that matches no row.
var ErrNotFound = errors.New("not found")

// timestampLayout is fixed-width so stored timestamps sort lexically.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTime(column, s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s: %w", column, err)
	}
	return t, nil
}

// nullableString converts a *string to a value suitable for SQLite storage.
// Returns nil (SQL NULL) if the pointer is nil or empty.
func nullableString(s *string) any {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}

func stringPtr(s sql.NullString) *string {
	if !s.Valid || s.String == "" {
		return nil
	}
	v := s.String
	return &v
}

// encodeJSON stores list and map columns as JSON text.
func encodeJSON(column string, v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encoding %s: %w", column, err)
	}
	return string(data), nil
}

func decodeJSON(column, s string, v any) error {
	if s == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(s), v); err != nil {
		return fmt.Errorf("decoding %s: %w", column, err)
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// nowUTC returns the current UTC time in the stored timestamp format.
func nowUTC() string {
	return formatTime(time.Now())
}
