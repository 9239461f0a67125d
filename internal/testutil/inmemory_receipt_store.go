package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/skyup-digital/skyup-api/internal/domain/receipt"
	ierr "github.com/skyup-digital/skyup-api/internal/errors"
	"github.com/skyup-digital/skyup-api/internal/types"
)

var _ receipt.Repository = (*InMemoryReceiptStore)(nil)

// InMemoryReceiptStore keeps receipts and their counters in memory. The
// counter upsert holds a lock so concurrent callers never share a serial.
type InMemoryReceiptStore struct {
	*InMemoryStore[*receipt.Receipt]

	mu        sync.Mutex
	sequences map[string]*receipt.InvoiceSequence
}

func NewInMemoryReceiptStore() *InMemoryReceiptStore {
	return &InMemoryReceiptStore{
		InMemoryStore: NewInMemoryStore[*receipt.Receipt](),
		sequences:     make(map[string]*receipt.InvoiceSequence),
	}
}

func receiptLess(a, b *receipt.Receipt) bool {
	if a.CreatedAt.Equal(b.CreatedAt) {
		return a.Serial < b.Serial
	}
	return a.CreatedAt.Before(b.CreatedAt)
}

func (s *InMemoryReceiptStore) Create(ctx context.Context, r *receipt.Receipt) error {
	if r == nil {
		return ierr.NewError("receipt cannot be nil").
			Mark(ierr.ErrValidation)
	}

	s.InMemoryStore.mu.Lock()
	defer s.InMemoryStore.mu.Unlock()

	for _, other := range s.items {
		if other.InvoiceNumber == r.InvoiceNumber {
			return ierr.NewErrorf("invoice number %s already issued", r.InvoiceNumber).
				WithHint("Invoice number already exists").
				Mark(ierr.ErrAlreadyExists)
		}
	}

	s.items[r.ID] = r
	return nil
}

func (s *InMemoryReceiptStore) GetLatest(ctx context.Context) (*receipt.Receipt, error) {
	items, err := s.InMemoryStore.List(ctx, &types.QueryFilter{}, receiptLess)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return items[0], nil
}

func (s *InMemoryReceiptStore) List(ctx context.Context, filter *types.QueryFilter) ([]*receipt.Receipt, error) {
	return s.InMemoryStore.List(ctx, filter, receiptLess)
}

func (s *InMemoryReceiptStore) GetSequence(ctx context.Context, name string) (*receipt.InvoiceSequence, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seq, ok := s.sequences[name]
	if !ok {
		return nil, ierr.NewErrorf("invoice sequence %s not found", name).
			WithHint("Invoice sequence not found").
			Mark(ierr.ErrNotFound)
	}
	copied := *seq
	return &copied, nil
}

func (s *InMemoryReceiptStore) NextSerial(ctx context.Context, name string, floor int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	seq, ok := s.sequences[name]
	if !ok {
		seq = &receipt.InvoiceSequence{
			Name:      name,
			LastValue: floor + 1,
			CreatedAt: now,
			UpdatedAt: now,
		}
		s.sequences[name] = seq
		return seq.LastValue, nil
	}

	seq.LastValue++
	seq.UpdatedAt = now
	return seq.LastValue, nil
}

func (s *InMemoryReceiptStore) RaiseSequence(ctx context.Context, name string, value int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	seq, ok := s.sequences[name]
	if !ok {
		seq = &receipt.InvoiceSequence{Name: name, CreatedAt: now}
		s.sequences[name] = seq
	}
	if !ok || value > seq.LastValue {
		seq.LastValue = value
		seq.UpdatedAt = now
	}
	return seq.LastValue, nil
}

// SeedReceipt stores a receipt as if it had been written before counters
// existed.
func (s *InMemoryReceiptStore) SeedReceipt(r *receipt.Receipt) {
	s.InMemoryStore.mu.Lock()
	defer s.InMemoryStore.mu.Unlock()
	s.items[r.ID] = r
}

// Snapshot saves receipts and counters together so a failed transaction
// hands its serial back.
func (s *InMemoryReceiptStore) Snapshot() func() {
	restoreItems := s.InMemoryStore.Snapshot()

	s.mu.Lock()
	saved := make(map[string]*receipt.InvoiceSequence, len(s.sequences))
	for name, seq := range s.sequences {
		copied := *seq
		saved[name] = &copied
	}
	s.mu.Unlock()

	return func() {
		restoreItems()

		s.mu.Lock()
		defer s.mu.Unlock()
		s.sequences = saved
	}
}

func (s *InMemoryReceiptStore) Clear() {
	s.InMemoryStore.Clear()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sequences = make(map[string]*receipt.InvoiceSequence)
}
