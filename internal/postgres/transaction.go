package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/skyup-digital/skyup-api/internal/types"
)

// Tx is an open transaction. Nested WithTx calls on the same context
// reuse it through savepoints.
type Tx struct {
	*sqlx.Tx
	ID    string
	depth int
}

// GetTx returns the transaction bound to ctx, if any.
func GetTx(ctx context.Context) (*Tx, bool) {
	tx, ok := ctx.Value(types.CtxDBTransaction).(*Tx)
	return tx, ok
}

func (tx *Tx) savepoint() string {
	return fmt.Sprintf("sp_%d", tx.depth)
}

// BeginTx opens a transaction, or a savepoint when ctx already carries one.
func (db *DB) BeginTx(ctx context.Context) (context.Context, *Tx, error) {
	if tx, ok := GetTx(ctx); ok {
		tx.depth++
		if _, err := tx.ExecContext(ctx, "SAVEPOINT "+tx.savepoint()); err != nil {
			tx.depth--
			return ctx, nil, fmt.Errorf("failed to create savepoint: %w", err)
		}
		db.logger.Debugw("savepoint created", "tx_id", tx.ID, "depth", tx.depth)
		return ctx, tx, nil
	}

	sqlxTx, err := db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return ctx, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	tx := &Tx{Tx: sqlxTx, ID: types.GenerateUUID()}
	db.logger.Debugw("transaction started", "tx_id", tx.ID)

	return context.WithValue(ctx, types.CtxDBTransaction, tx), tx, nil
}

// CommitTx commits the innermost level of the transaction in ctx.
func (db *DB) CommitTx(ctx context.Context) error {
	return db.endTx(ctx, true)
}

// RollbackTx rolls back the innermost level of the transaction in ctx.
func (db *DB) RollbackTx(ctx context.Context) error {
	return db.endTx(ctx, false)
}

func (db *DB) endTx(ctx context.Context, commit bool) error {
	tx, ok := GetTx(ctx)
	if !ok {
		return fmt.Errorf("no transaction in context")
	}

	if tx.depth > 0 {
		stmt := "ROLLBACK TO SAVEPOINT "
		if commit {
			stmt = "RELEASE SAVEPOINT "
		}
		if _, err := tx.ExecContext(ctx, stmt+tx.savepoint()); err != nil {
			return fmt.Errorf("failed to end savepoint %s: %w", tx.savepoint(), err)
		}
		tx.depth--
		return nil
	}

	if commit {
		db.logger.Debugw("committing transaction", "tx_id", tx.ID)
		return tx.Commit()
	}
	db.logger.Debugw("rolling back transaction", "tx_id", tx.ID)
	return tx.Rollback()
}

// WithTx runs fn inside a transaction. An error or panic from fn rolls the
// level back; a panic is re-raised after the rollback.
func (db *DB) WithTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	ctx, tx, err := db.BeginTx(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			db.logger.Errorw("panic in transaction", "tx_id", tx.ID, "panic", r)
			_ = db.RollbackTx(ctx)
			panic(r)
		}
	}()

	if err = fn(ctx); err != nil {
		if rbErr := db.RollbackTx(ctx); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err = db.CommitTx(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
