package postgres

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	pkgerrors "cupcake-backend/pkg/errors"
)

// TxManager runs a function inside a single database transaction. The
// transaction is carried in the context, so every repository call made
// by fn shares it; any error or panic rolls the whole unit back.
type TxManager struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewTxManager creates a new transaction manager
func NewTxManager(db *sql.DB, logger *zap.Logger) *TxManager {
	return &TxManager{db: db, logger: logger}
}

// WithinTx begins a transaction, binds it to the context and invokes fn.
// Commit happens only when fn returns nil; otherwise everything is
// rolled back and the error is returned unchanged.
func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return pkgerrors.NewPersistenceError("begin transaction", err)
	}

	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				m.logger.Error("rollback after panic failed", zap.Error(rbErr))
			}
			panic(p)
		}
	}()

	if err := fn(CtxWithTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			m.logger.Error("rollback failed", zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return pkgerrors.NewPersistenceError("commit transaction", err)
	}
	return nil
}
