package testutil

import (
	"context"
	"database/sql"
	"slices"

	"github.com/alexanderramin/planpin/internal/db"
)

// NewTestUoW creates a UnitOfWork backed by the given test database.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}

// FailingUoW is a UnitOfWork whose write of setting Key returns Err. The
// writes before it succeed inside the transaction, so tests can check
// that a half-written session rolls back.
type FailingUoW struct {
	DB  *sql.DB
	Key string
	Err error
}

func (u *FailingUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return db.NewSQLiteUnitOfWork(u.DB).WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &failOnKey{DBTX: tx, key: u.Key, err: u.Err})
	})
}

type failOnKey struct {
	db.DBTX
	key string
	err error
}

func (f *failOnKey) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if slices.Contains(args, any(f.key)) {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
