package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/skyup-digital/skyup-api/internal/config"
	"github.com/skyup-digital/skyup-api/internal/logger"
)

// DB wraps sqlx.DB to provide transaction management
type DB struct {
	*sqlx.DB
	logger *logger.Logger
}

// Querier interface defines all database operations
// Both *sqlx.DB and *sqlx.Tx implement these methods
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
}

// NewDB opens the connection pool and waits for the database to answer,
// retrying with exponential backoff up to postgres.connect_timeout.
func NewDB(cfg *config.Configuration, logger *logger.Logger) (*DB, error) {
	db, err := sqlx.Open("postgres", cfg.Postgres.GetDSN())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Postgres.ConnMaxLifetimeMinutes) * time.Minute)

	if err := Ping(context.Background(), db, cfg.Postgres.ConnectTimeout, logger); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Infow("connected to postgres",
		"host", cfg.Postgres.Host,
		"port", cfg.Postgres.Port,
		"dbname", cfg.Postgres.DBName,
	)

	return NewFromSqlx(db, logger), nil
}

// NewFromSqlx wraps an already opened handle. Used by tools and tests.
func NewFromSqlx(db *sqlx.DB, logger *logger.Logger) *DB {
	return &DB{DB: db, logger: logger}
}

// Ping pings the database until it answers or maxElapsed passes.
func Ping(ctx context.Context, db *sqlx.DB, maxElapsed time.Duration, logger *logger.Logger) error {
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = maxElapsed

	attempt := 0
	return backoff.Retry(func() error {
		attempt++
		err := db.PingContext(ctx)
		if err != nil {
			logger.Warnw("database not reachable yet",
				"attempt", attempt,
				"error", err,
			)
		}
		return err
	}, backoff.WithContext(b, ctx))
}

// Close closes the database connection
func (db *DB) Close() {
	if err := db.DB.Close(); err != nil {
		db.logger.Errorw("error closing database", "error", err)
	}
}

// GetQuerier returns the transaction bound to ctx, falling back to the pool.
func (db *DB) GetQuerier(ctx context.Context) Querier {
	if tx, ok := GetTx(ctx); ok {
		return newTracedQuerier(tx.Tx, db.logger, tx.ID)
	}
	return newTracedQuerier(db.DB, db.logger, "")
}
