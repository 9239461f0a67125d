package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/skyup-digital/skyup-api/internal/logger"
)

// tracedQuerier logs every statement with its duration. Bound values are
// never logged since applicant and contact rows carry personal data.
type tracedQuerier struct {
	q      Querier
	logger *logger.Logger
	txID   string
}

func newTracedQuerier(q Querier, logger *logger.Logger, txID string) Querier {
	return &tracedQuerier{q: q, logger: logger, txID: txID}
}

func (t *tracedQuerier) trace(query string, args int, start time.Time, err error) {
	fields := []interface{}{
		"statement", compactSQL(query),
		"args", args,
		"duration_ms", time.Since(start).Milliseconds(),
	}
	if t.txID != "" {
		fields = append(fields, "tx_id", t.txID)
	}
	// lookups that find nothing are expected
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		t.logger.Errorw("database query failed", append(fields, "error", err)...)
		return
	}
	t.logger.Debugw("database query", fields...)
}

func (t *tracedQuerier) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := t.q.ExecContext(ctx, query, args...)
	t.trace(query, len(args), start, err)
	return res, err
}

func (t *tracedQuerier) NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := t.q.NamedExecContext(ctx, query, arg)
	t.trace(query, 1, start, err)
	return res, err
}

func (t *tracedQuerier) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := t.q.QueryContext(ctx, query, args...)
	t.trace(query, len(args), start, err)
	return rows, err
}

// QueryRowxContext reports only errors known before Scan.
func (t *tracedQuerier) QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row {
	start := time.Now()
	row := t.q.QueryRowxContext(ctx, query, args...)
	t.trace(query, len(args), start, row.Err())
	return row
}

func (t *tracedQuerier) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	start := time.Now()
	err := t.q.GetContext(ctx, dest, query, args...)
	t.trace(query, len(args), start, err)
	return err
}

func (t *tracedQuerier) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	start := time.Now()
	err := t.q.SelectContext(ctx, dest, query, args...)
	t.trace(query, len(args), start, err)
	return err
}

// compactSQL collapses the whitespace of multi-line statements for log lines.
func compactSQL(query string) string {
	return strings.Join(strings.Fields(query), " ")
}
