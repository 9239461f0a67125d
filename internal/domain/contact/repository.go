package contact

import (
	"context"

	"github.com/skyup-digital/skyup-api/internal/types"
)

type Repository interface {
	Create(ctx context.Context, contact *Contact) error
	List(ctx context.Context, filter *types.QueryFilter) ([]*Contact, error)
	Count(ctx context.Context) (int, error)
}
