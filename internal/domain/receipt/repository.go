package receipt

import (
	"context"

	"github.com/skyup-digital/skyup-api/internal/types"
)

// Repository defines the interface for receipt persistence operations
type Repository interface {
	// Create persists a numbered receipt
	Create(ctx context.Context, receipt *Receipt) error

	// GetLatest returns the most recently created receipt, or nil when there is none
	GetLatest(ctx context.Context) (*Receipt, error)

	// List returns receipts newest first
	List(ctx context.Context, filter *types.QueryFilter) ([]*Receipt, error)

	// Count returns the total number of receipts
	Count(ctx context.Context) (int, error)

	// GetSequence returns the named counter, or a not found error
	GetSequence(ctx context.Context, name string) (*InvoiceSequence, error)

	// NextSerial atomically advances the named counter and returns the new
	// value. A missing counter is created at floor+1.
	NextSerial(ctx context.Context, name string, floor int64) (int64, error)

	// RaiseSequence lifts the named counter to at least value, creating it
	// when missing, and returns the stored value. It never lowers a counter.
	RaiseSequence(ctx context.Context, name string, value int64) (int64, error)
}
