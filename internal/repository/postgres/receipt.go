package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/skyup-digital/skyup-api/internal/domain/receipt"
	ierr "github.com/skyup-digital/skyup-api/internal/errors"
	"github.com/skyup-digital/skyup-api/internal/logger"
	"github.com/skyup-digital/skyup-api/internal/postgres"
	"github.com/skyup-digital/skyup-api/internal/types"
)

const (
	receiptColumns = `id, invoice_number, serial, financial_year, client_name, client_email,
		client_phone, client_address, client_gstin, description, payment_method, currency,
		amount, cgst_rate, sgst_rate, igst_rate, tax_amount, total_amount, created_at, created_by`

	receiptInvoiceNumberIndex = "idx_receipts_invoice_number"
)

type receiptRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewReceiptRepository(db *postgres.DB, logger *logger.Logger) receipt.Repository {
	return &receiptRepository{db: db, logger: logger}
}

func (r *receiptRepository) Create(ctx context.Context, rcpt *receipt.Receipt) error {
	span := StartRepositorySpan(ctx, "receipt", "create", map[string]interface{}{
		"invoice_number": rcpt.InvoiceNumber,
	})
	defer FinishSpan(span)

	query := `
	INSERT INTO receipts (` + receiptColumns + `)
	VALUES (:id, :invoice_number, :serial, :financial_year, :client_name, :client_email,
		:client_phone, :client_address, :client_gstin, :description, :payment_method, :currency,
		:amount, :cgst_rate, :sgst_rate, :igst_rate, :tax_amount, :total_amount, :created_at, :created_by)
	`

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, rcpt); err != nil {
		SetSpanError(span, err)
		if uniqueViolation(err, receiptInvoiceNumberIndex) {
			return ierr.WithError(err).
				WithHint("A receipt with this invoice number already exists").
				WithReportableDetails(map[string]any{
					"invoice_number": rcpt.InvoiceNumber,
				}).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create receipt").
			Mark(ierr.ErrDatabase)
	}

	r.logger.Infow("created receipt",
		"receipt_id", rcpt.ID,
		"invoice_number", rcpt.InvoiceNumber,
	)
	return nil
}

func (r *receiptRepository) GetLatest(ctx context.Context) (*receipt.Receipt, error) {
	span := StartRepositorySpan(ctx, "receipt", "get_latest", nil)
	defer FinishSpan(span)

	query := `SELECT ` + receiptColumns + ` FROM receipts ORDER BY created_at DESC, serial DESC LIMIT 1`

	var rcpt receipt.Receipt
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &rcpt, query); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		SetSpanError(span, err)
		return nil, ierr.WithError(err).
			WithHint("Failed to read the latest receipt").
			Mark(ierr.ErrDatabase)
	}
	return &rcpt, nil
}

func (r *receiptRepository) List(ctx context.Context, filter *types.QueryFilter) ([]*receipt.Receipt, error) {
	span := StartRepositorySpan(ctx, "receipt", "list", map[string]interface{}{
		"limit":  filter.GetLimit(),
		"offset": filter.GetOffset(),
	})
	defer FinishSpan(span)

	query := fmt.Sprintf(`SELECT %s FROM receipts ORDER BY %s, serial DESC LIMIT $1 OFFSET $2`,
		receiptColumns, orderBy(filter))

	receipts := make([]*receipt.Receipt, 0)
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &receipts, query, filter.GetLimit(), filter.GetOffset()); err != nil {
		SetSpanError(span, err)
		return nil, ierr.WithError(err).
			WithHint("Failed to list receipts").
			Mark(ierr.ErrDatabase)
	}
	return receipts, nil
}

func (r *receiptRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &count, `SELECT COUNT(*) FROM receipts`); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count receipts").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *receiptRepository) GetSequence(ctx context.Context, name string) (*receipt.InvoiceSequence, error) {
	query := `SELECT name, last_value, created_at, updated_at FROM invoice_sequences WHERE name = $1`

	var seq receipt.InvoiceSequence
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &seq, query, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.WithError(err).
				WithHintf("Invoice sequence %s not found", name).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to read invoice sequence").
			Mark(ierr.ErrDatabase)
	}
	return &seq, nil
}

// NextSerial increments the counter in a single statement, so concurrent
// callers never observe the same value.
func (r *receiptRepository) NextSerial(ctx context.Context, name string, floor int64) (int64, error) {
	span := StartRepositorySpan(ctx, "receipt", "next_serial", map[string]interface{}{
		"sequence": name,
	})
	defer FinishSpan(span)

	query := `
		INSERT INTO invoice_sequences (name, last_value, created_at, updated_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT (name) DO UPDATE
		SET last_value = invoice_sequences.last_value + 1,
			updated_at = CURRENT_TIMESTAMP
		RETURNING last_value`

	var lastValue int64
	if err := r.db.GetQuerier(ctx).QueryRowxContext(ctx, query, name, floor+1).Scan(&lastValue); err != nil {
		SetSpanError(span, err)
		return 0, ierr.WithError(err).
			WithHint("invoice number generation failed").
			Mark(ierr.ErrDatabase)
	}

	r.logger.Infow("advanced invoice sequence",
		"sequence", name,
		"value", lastValue,
	)
	return lastValue, nil
}

func (r *receiptRepository) RaiseSequence(ctx context.Context, name string, value int64) (int64, error) {
	span := StartRepositorySpan(ctx, "receipt", "raise_sequence", map[string]interface{}{
		"sequence": name,
	})
	defer FinishSpan(span)

	query := `
		INSERT INTO invoice_sequences (name, last_value, created_at, updated_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT (name) DO UPDATE
		SET last_value = GREATEST(invoice_sequences.last_value, EXCLUDED.last_value),
			updated_at = CURRENT_TIMESTAMP
		RETURNING last_value`

	var lastValue int64
	if err := r.db.GetQuerier(ctx).QueryRowxContext(ctx, query, name, value).Scan(&lastValue); err != nil {
		SetSpanError(span, err)
		return 0, ierr.WithError(err).
			WithHint("Failed to update invoice sequence").
			Mark(ierr.ErrDatabase)
	}
	return lastValue, nil
}
