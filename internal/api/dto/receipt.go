package dto

import (
	"github.com/shopspring/decimal"
	"github.com/skyup-digital/skyup-api/internal/domain/receipt"
	ierr "github.com/skyup-digital/skyup-api/internal/errors"
	"github.com/skyup-digital/skyup-api/internal/types"
	"github.com/skyup-digital/skyup-api/internal/validator"
)

var maxTaxRate = decimal.NewFromInt(100)

type CreateReceiptRequest struct {
	ClientName    string          `json:"client_name" validate:"required,max=255"`
	ClientEmail   string          `json:"client_email" validate:"omitempty,email"`
	ClientPhone   string          `json:"client_phone" validate:"omitempty,max=32"`
	ClientAddress string          `json:"client_address" validate:"omitempty,max=1000"`
	ClientGSTIN   string          `json:"client_gstin" validate:"omitempty,len=15,alphanum"`
	Description   string          `json:"description" validate:"omitempty,max=2000"`
	PaymentMethod string          `json:"payment_method" validate:"omitempty,max=50"`
	Currency      string          `json:"currency" validate:"omitempty,len=3,alpha"`
	Amount        decimal.Decimal `json:"amount" swaggertype:"string"`
	CGSTRate      decimal.Decimal `json:"cgst_rate" swaggertype:"string"`
	SGSTRate      decimal.Decimal `json:"sgst_rate" swaggertype:"string"`
	IGSTRate      decimal.Decimal `json:"igst_rate" swaggertype:"string"`
}

func (r *CreateReceiptRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}

	if !r.Amount.IsPositive() {
		return ierr.NewError("amount must be greater than zero").
			WithHint("Amount must be greater than zero").
			WithReportableDetails(map[string]any{
				"amount": r.Amount.String(),
			}).
			Mark(ierr.ErrValidation)
	}

	rates := map[string]decimal.Decimal{
		"cgst_rate": r.CGSTRate,
		"sgst_rate": r.SGSTRate,
		"igst_rate": r.IGSTRate,
	}
	for field, rate := range rates {
		if rate.IsNegative() || rate.GreaterThan(maxTaxRate) {
			return ierr.NewErrorf("%s out of range", field).
				WithHintf("%s must be between 0 and 100", field).
				WithReportableDetails(map[string]any{
					field: rate.String(),
				}).
				Mark(ierr.ErrValidation)
		}
	}

	if r.IGSTRate.IsPositive() && (r.CGSTRate.IsPositive() || r.SGSTRate.IsPositive()) {
		return ierr.NewError("igst combined with cgst/sgst").
			WithHint("IGST cannot be combined with CGST or SGST").
			Mark(ierr.ErrValidation)
	}

	return nil
}

// ToReceipt copies the billing fields; numbering and audit fields are set by
// the receipt service.
func (r *CreateReceiptRequest) ToReceipt() receipt.Receipt {
	return receipt.Receipt{
		ClientName:    r.ClientName,
		ClientEmail:   r.ClientEmail,
		ClientPhone:   r.ClientPhone,
		ClientAddress: r.ClientAddress,
		ClientGSTIN:   r.ClientGSTIN,
		Description:   r.Description,
		PaymentMethod: r.PaymentMethod,
		Currency:      r.Currency,
		Amount:        r.Amount,
		CGSTRate:      r.CGSTRate,
		SGSTRate:      r.SGSTRate,
		IGSTRate:      r.IGSTRate,
	}
}

type ReceiptResponse struct {
	*receipt.Receipt
}

type CreateReceiptResponse struct {
	Message   string           `json:"message"`
	InvoiceNo string           `json:"invoice_no"`
	Receipt   *ReceiptResponse `json:"receipt"`
}

// LastInvoiceResponse previews the next invoice number without reserving it
type LastInvoiceResponse struct {
	LastSerial    int    `json:"lastSerial"`
	NextInvoiceNo string `json:"next_invoice_no"`
}

// SyncInvoiceSequenceResponse reports how the active counter compares with
// the latest stored receipt
type SyncInvoiceSequenceResponse struct {
	Sequence      string `json:"sequence"`
	PreviousValue int64  `json:"previous_value"`
	RequiredValue int64  `json:"required_value"`
	LastValue     int64  `json:"last_value"`
	Changed       bool   `json:"changed"`
	DryRun        bool   `json:"dry_run"`
}

// ListReceiptsResponse represents the response for listing receipts
type ListReceiptsResponse = types.ListResponse[*ReceiptResponse]
