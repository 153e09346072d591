package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/Ehphp/RequestEstimator-sub000/internal/db"
)

// FailingUoW runs the callback in a real transaction but makes the Nth
// matching ExecContext call fail with Err. A statement matches when it
// contains Match; an empty Match counts every statement. Reads are never
// intercepted.
type FailingUoW struct {
	DB     *sql.DB
	Match  string
	FailOn int32
	Err    error
}

func (u *FailingUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	wrapped := &failingExec{DBTX: tx, match: u.Match, failOn: u.FailOn, err: u.Err}
	if fnErr := fn(ctx, wrapped); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type failingExec struct {
	db.DBTX
	match  string
	count  atomic.Int32
	failOn int32
	err    error
}

func (f *failingExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if strings.Contains(query, f.match) && f.count.Add(1) == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
