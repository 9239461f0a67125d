package receipt

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/skyup-digital/skyup-api/internal/types"
)

// DefaultCurrency is applied when a receipt does not name one.
const DefaultCurrency = "INR"

// Receipt is an issued invoice receipt. Billing fields are opaque to numbering.
type Receipt struct {
	ID            string          `db:"id" json:"id"`
	InvoiceNumber string          `db:"invoice_number" json:"invoice_number"`
	Serial        int             `db:"serial" json:"serial"`
	FinancialYear string          `db:"financial_year" json:"financial_year"`
	ClientName    string          `db:"client_name" json:"client_name"`
	ClientEmail   string          `db:"client_email" json:"client_email,omitempty"`
	ClientPhone   string          `db:"client_phone" json:"client_phone,omitempty"`
	ClientAddress string          `db:"client_address" json:"client_address,omitempty"`
	ClientGSTIN   string          `db:"client_gstin" json:"client_gstin,omitempty"`
	Description   string          `db:"description" json:"description,omitempty"`
	PaymentMethod string          `db:"payment_method" json:"payment_method,omitempty"`
	Currency      string          `db:"currency" json:"currency"`
	Amount        decimal.Decimal `db:"amount" json:"amount"`
	CGSTRate      decimal.Decimal `db:"cgst_rate" json:"cgst_rate"`
	SGSTRate      decimal.Decimal `db:"sgst_rate" json:"sgst_rate"`
	IGSTRate      decimal.Decimal `db:"igst_rate" json:"igst_rate"`
	TaxAmount     decimal.Decimal `db:"tax_amount" json:"tax_amount"`
	TotalAmount   decimal.Decimal `db:"total_amount" json:"total_amount"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	CreatedBy     string          `db:"created_by" json:"created_by"`
}

// NewReceipt builds a receipt with its id, audit fields and derived amounts set.
// Numbering fields are filled in by the caller.
func NewReceipt(r Receipt, actor string, now time.Time) *Receipt {
	r.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_RECEIPT)
	r.CreatedAt = now.UTC()
	r.CreatedBy = actor
	if r.Currency == "" {
		r.Currency = DefaultCurrency
	}
	r.CalculateTotals()
	return &r
}

// CalculateTotals derives tax and total from the amount and the GST rates
// (percentages), rounded to two places.
func (r *Receipt) CalculateTotals() {
	rate := r.CGSTRate.Add(r.SGSTRate).Add(r.IGSTRate)
	r.TaxAmount = r.Amount.Mul(rate).Div(decimal.NewFromInt(100)).Round(2)
	r.TotalAmount = r.Amount.Round(2).Add(r.TaxAmount)
}
