package service

import (
	"context"
	"time"

	"github.com/samber/lo"
	"github.com/skyup-digital/skyup-api/internal/api/dto"
	"github.com/skyup-digital/skyup-api/internal/domain/receipt"
	ierr "github.com/skyup-digital/skyup-api/internal/errors"
	"github.com/skyup-digital/skyup-api/internal/types"
)

type ReceiptService interface {
	CreateReceipt(ctx context.Context, req *dto.CreateReceiptRequest) (*dto.CreateReceiptResponse, error)
	GetReceipts(ctx context.Context, filter *types.QueryFilter) (*dto.ListReceiptsResponse, error)
	GetLastInvoice(ctx context.Context) (*dto.LastInvoiceResponse, error)
	SyncInvoiceSequence(ctx context.Context, dryRun bool) (*dto.SyncInvoiceSequenceResponse, error)
}

type receiptService struct {
	ServiceParams
	sequencer *receipt.Sequencer
	now       func() time.Time
}

func NewReceiptService(params ServiceParams) ReceiptService {
	return &receiptService{
		ServiceParams: params,
		sequencer: receipt.NewSequencer(
			params.Config.Invoice.Prefix,
			params.Config.Invoice.InvoiceLocation(),
			params.Config.Invoice.ResetEachFinancialYear,
		),
		now: time.Now,
	}
}

// CreateReceipt allocates the next invoice number and stores the receipt in
// one transaction. The counter row is seeded from the latest receipt the
// first time a scope is used.
func (s *receiptService) CreateReceipt(ctx context.Context, req *dto.CreateReceiptRequest) (*dto.CreateReceiptResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	var created *receipt.Receipt

	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		name := s.sequencer.SequenceName(now)

		floor, err := s.sequenceFloor(ctx, name, now)
		if err != nil {
			return err
		}

		serial, err := s.ReceiptRepo.NextSerial(ctx, name, floor)
		if err != nil {
			return err
		}

		financialYear := s.sequencer.FinancialYear(now)
		r := receipt.NewReceipt(req.ToReceipt(), types.GetActor(ctx), now)
		r.Serial = int(serial)
		r.FinancialYear = financialYear
		r.InvoiceNumber = s.sequencer.Format(r.Serial, financialYear)

		if err := s.ReceiptRepo.Create(ctx, r); err != nil {
			return err
		}

		created = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("issued receipt",
		"receipt_id", created.ID,
		"invoice_number", created.InvoiceNumber,
		"created_by", created.CreatedBy,
	)
	s.Sentry.AddBreadcrumb("receipt", "issued receipt", map[string]interface{}{
		"invoice_number": created.InvoiceNumber,
	})

	return &dto.CreateReceiptResponse{
		Message:   "Receipt created successfully",
		InvoiceNo: created.InvoiceNumber,
		Receipt:   &dto.ReceiptResponse{Receipt: created},
	}, nil
}

// sequenceFloor returns the value a missing counter should start above, or 0
// when the counter already exists.
func (s *receiptService) sequenceFloor(ctx context.Context, name string, now time.Time) (int64, error) {
	_, err := s.ReceiptRepo.GetSequence(ctx, name)
	if err == nil {
		return 0, nil
	}
	if !ierr.IsNotFound(err) {
		return 0, err
	}

	latest, err := s.ReceiptRepo.GetLatest(ctx)
	if err != nil {
		return 0, err
	}

	next, err := s.sequencer.NextSerial(latest, now)
	if err != nil {
		return 0, err
	}

	if latest != nil {
		s.Logger.Infow("seeding invoice sequence from latest receipt",
			"sequence", name,
			"latest_invoice_number", latest.InvoiceNumber,
			"floor", next-1,
		)
	}
	return int64(next - 1), nil
}

// GetLastInvoice reports the last issued serial and a preview of the next
// invoice number. Nothing is reserved.
func (s *receiptService) GetLastInvoice(ctx context.Context) (*dto.LastInvoiceResponse, error) {
	now := s.now()
	name := s.sequencer.SequenceName(now)
	financialYear := s.sequencer.FinancialYear(now)

	seq, err := s.ReceiptRepo.GetSequence(ctx, name)
	if err == nil {
		last := int(seq.LastValue)
		return &dto.LastInvoiceResponse{
			LastSerial:    last,
			NextInvoiceNo: s.sequencer.Format(last+1, financialYear),
		}, nil
	}
	if !ierr.IsNotFound(err) {
		return nil, err
	}

	latest, err := s.ReceiptRepo.GetLatest(ctx)
	if err != nil {
		return nil, err
	}

	lastSerial, err := s.sequencer.LastSerial(latest, now)
	if err != nil {
		return nil, err
	}

	next, err := s.sequencer.Next(latest, now)
	if err != nil {
		return nil, err
	}

	return &dto.LastInvoiceResponse{
		LastSerial:    lastSerial,
		NextInvoiceNo: next,
	}, nil
}

func (s *receiptService) GetReceipts(ctx context.Context, filter *types.QueryFilter) (*dto.ListReceiptsResponse, error) {
	if filter == nil {
		filter = types.NewDefaultQueryFilter()
	}

	if err := filter.Validate(); err != nil {
		return nil, err
	}

	receipts, err := s.ReceiptRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.ReceiptRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	items := lo.Map(receipts, func(r *receipt.Receipt, _ int) *dto.ReceiptResponse {
		return &dto.ReceiptResponse{Receipt: r}
	})

	response := types.NewListResponse(items, total, filter.GetLimit(), filter.GetOffset())
	return &response, nil
}

// SyncInvoiceSequence raises the active counter to the serial of the latest
// receipt. Receipts imported straight into the table leave the counter
// behind, and the next CreateReceipt would then collide on its number.
func (s *receiptService) SyncInvoiceSequence(ctx context.Context, dryRun bool) (*dto.SyncInvoiceSequenceResponse, error) {
	now := s.now()
	resp := &dto.SyncInvoiceSequenceResponse{
		Sequence: s.sequencer.SequenceName(now),
		DryRun:   dryRun,
	}

	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		latest, err := s.ReceiptRepo.GetLatest(ctx)
		if err != nil {
			return err
		}
		next, err := s.sequencer.NextSerial(latest, now)
		if err != nil {
			return err
		}
		resp.RequiredValue = int64(next - 1)

		seq, err := s.ReceiptRepo.GetSequence(ctx, resp.Sequence)
		switch {
		case err == nil:
			resp.PreviousValue = seq.LastValue
		case !ierr.IsNotFound(err):
			return err
		}
		resp.LastValue = resp.PreviousValue

		if dryRun || (seq != nil && seq.LastValue >= resp.RequiredValue) {
			resp.Changed = seq == nil || seq.LastValue < resp.RequiredValue
			return nil
		}

		resp.LastValue, err = s.ReceiptRepo.RaiseSequence(ctx, resp.Sequence, resp.RequiredValue)
		if err != nil {
			return err
		}
		resp.Changed = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("synced invoice sequence",
		"sequence", resp.Sequence,
		"previous_value", resp.PreviousValue,
		"required_value", resp.RequiredValue,
		"last_value", resp.LastValue,
		"dry_run", dryRun,
	)
	return resp, nil
}
