package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

// Runner is the interface shared by *sql.DB and *sql.Tx. Repositories
// run every statement through the runner bound to the calling context,
// so a repository call inside a transaction automatically joins it.
type Runner interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type txKey struct{}

// CtxWithTx binds tx to the context for downstream repository calls.
func CtxWithTx(ctx context.Context, tx *sql.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// TxFromCtx returns the transaction bound to ctx, or nil.
func TxFromCtx(ctx context.Context) *sql.Tx {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return nil
}

// GetRunner returns the context's transaction when one is bound,
// otherwise the plain connection pool.
func GetRunner(ctx context.Context, db *sql.DB) Runner {
	if tx := TxFromCtx(ctx); tx != nil {
		return tx
	}
	return db
}

// IsUniqueViolation reports a Postgres duplicate-key error.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
