package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/skyup-digital/skyup-api/internal/domain/receipt"
	ierr "github.com/skyup-digital/skyup-api/internal/errors"
	"github.com/skyup-digital/skyup-api/internal/logger"
	"github.com/skyup-digital/skyup-api/internal/postgres"
	"github.com/skyup-digital/skyup-api/internal/types"
	"github.com/stretchr/testify/suite"
)

type ReceiptRepositorySuite struct {
	suite.Suite
	ctx  context.Context
	mock sqlmock.Sqlmock
	db   *postgres.DB
	repo receipt.Repository
}

func TestReceiptRepository(t *testing.T) {
	suite.Run(t, new(ReceiptRepositorySuite))
}

func (s *ReceiptRepositorySuite) SetupTest() {
	mockDB, mock, err := sqlmock.New()
	s.Require().NoError(err)

	s.ctx = context.Background()
	s.mock = mock
	// postgres driver name keeps sqlx binding $n placeholders
	s.db = postgres.NewFromSqlx(sqlx.NewDb(mockDB, "postgres"), logger.NewNopLogger())
	s.repo = NewReceiptRepository(s.db, logger.NewNopLogger())
}

func (s *ReceiptRepositorySuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
	s.db.Close()
}

func (s *ReceiptRepositorySuite) receiptRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "invoice_number", "serial", "financial_year", "client_name", "client_email",
		"client_phone", "client_address", "client_gstin", "description", "payment_method", "currency",
		"amount", "cgst_rate", "sgst_rate", "igst_rate", "tax_amount", "total_amount", "created_at", "created_by",
	})
}

func (s *ReceiptRepositorySuite) TestNextSerialUpsertsCounter() {
	s.mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO invoice_sequences")).
		WithArgs(receipt.GlobalSequence, int64(8)).
		WillReturnRows(sqlmock.NewRows([]string{"last_value"}).AddRow(int64(8)))

	value, err := s.repo.NextSerial(s.ctx, receipt.GlobalSequence, 7)
	s.Require().NoError(err)
	s.Equal(int64(8), value)
}

func (s *ReceiptRepositorySuite) TestNextSerialDatabaseError() {
	s.mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO invoice_sequences")).
		WillReturnError(&pq.Error{Code: "57014", Message: "canceling statement"})

	_, err := s.repo.NextSerial(s.ctx, receipt.GlobalSequence, 0)
	s.True(ierr.Is(err, ierr.ErrDatabase))
}

func (s *ReceiptRepositorySuite) TestRaiseSequenceNeverLowers() {
	s.mock.ExpectQuery(regexp.QuoteMeta("GREATEST(invoice_sequences.last_value, EXCLUDED.last_value)")).
		WithArgs(receipt.GlobalSequence, int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"last_value"}).AddRow(int64(41)))

	value, err := s.repo.RaiseSequence(s.ctx, receipt.GlobalSequence, 3)
	s.Require().NoError(err)
	s.Equal(int64(41), value)
}

func (s *ReceiptRepositorySuite) TestGetLatestEmptyTable() {
	s.mock.ExpectQuery(regexp.QuoteMeta("FROM receipts ORDER BY created_at DESC, serial DESC LIMIT 1")).
		WillReturnRows(s.receiptRows())

	latest, err := s.repo.GetLatest(s.ctx)
	s.Require().NoError(err)
	s.Nil(latest)
}

func (s *ReceiptRepositorySuite) TestGetLatest() {
	createdAt := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	s.mock.ExpectQuery(regexp.QuoteMeta("FROM receipts ORDER BY created_at DESC")).
		WillReturnRows(s.receiptRows().AddRow(
			"rcpt_1", "SDS/041/2024-25", 41, "2024-25", "Acme", "", "", "", "", "", "", "INR",
			"1000.00", "9", "9", "0", "180.00", "1180.00", createdAt, "admin@skyup.test",
		))

	latest, err := s.repo.GetLatest(s.ctx)
	s.Require().NoError(err)
	s.Require().NotNil(latest)
	s.Equal("SDS/041/2024-25", latest.InvoiceNumber)
	s.Equal(41, latest.Serial)
	s.True(decimal.RequireFromString("1180").Equal(latest.TotalAmount))
	s.Equal(createdAt, latest.CreatedAt)
}

func (s *ReceiptRepositorySuite) TestCreateDuplicateInvoiceNumber() {
	s.mock.ExpectExec(regexp.QuoteMeta("INSERT INTO receipts")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "idx_receipts_invoice_number"})

	r := receipt.NewReceipt(receipt.Receipt{
		InvoiceNumber: "SDS/001/2024-25",
		Serial:        1,
		FinancialYear: "2024-25",
		ClientName:    "Acme",
		Amount:        decimal.NewFromInt(10),
	}, "admin@skyup.test", time.Now())

	err := s.repo.Create(s.ctx, r)
	s.True(ierr.IsAlreadyExists(err))
}

func (s *ReceiptRepositorySuite) TestCreate() {
	s.mock.ExpectExec(regexp.QuoteMeta("INSERT INTO receipts")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	r := receipt.NewReceipt(receipt.Receipt{
		InvoiceNumber: "SDS/002/2024-25",
		Serial:        2,
		FinancialYear: "2024-25",
		ClientName:    "Acme",
		Amount:        decimal.NewFromInt(10),
	}, "admin@skyup.test", time.Now())

	s.NoError(s.repo.Create(s.ctx, r))
}

func (s *ReceiptRepositorySuite) TestGetSequenceNotFound() {
	s.mock.ExpectQuery(regexp.QuoteMeta("FROM invoice_sequences WHERE name = $1")).
		WithArgs("2024-25").
		WillReturnRows(sqlmock.NewRows([]string{"name", "last_value", "created_at", "updated_at"}))

	_, err := s.repo.GetSequence(s.ctx, "2024-25")
	s.True(ierr.IsNotFound(err))
}

func (s *ReceiptRepositorySuite) TestListUsesWhitelistedOrder() {
	s.mock.ExpectQuery(regexp.QuoteMeta("FROM receipts ORDER BY created_at ASC, serial DESC LIMIT $1 OFFSET $2")).
		WithArgs(10, 20).
		WillReturnRows(s.receiptRows())

	filter := &types.QueryFilter{
		Limit:  lo.ToPtr(10),
		Offset: lo.ToPtr(20),
		Order:  lo.ToPtr(types.OrderAsc),
	}
	items, err := s.repo.List(s.ctx, filter)
	s.Require().NoError(err)
	s.Empty(items)
}

func (s *ReceiptRepositorySuite) TestCount() {
	s.mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM receipts")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := s.repo.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(3, count)
}
