package testutil

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/bfmp/internal/db"
)

// FailOnNthExecUoW runs real transactions but makes the FailOn-th write
// (counting from 1) return Err. Reads are never counted. After WithinTx
// returns, RolledBack and Execs describe what happened.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int
	Err    error

	Execs      int
	RolledBack bool
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning test transaction: %w", err)
	}

	if err := fn(ctx, &countingTx{DBTX: tx, uow: u}); err != nil {
		_ = tx.Rollback()
		u.RolledBack = true
		return err
	}
	return tx.Commit()
}

type countingTx struct {
	db.DBTX
	uow *FailOnNthExecUoW
}

func (c *countingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	c.uow.Execs++
	if c.uow.Execs == c.uow.FailOn {
		return nil, c.uow.Err
	}
	return c.DBTX.ExecContext(ctx, query, args...)
}
