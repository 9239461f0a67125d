package jobapplication

import (
	"context"

	"github.com/skyup-digital/skyup-api/internal/types"
)

type Repository interface {
	Create(ctx context.Context, application *JobApplication) error
	List(ctx context.Context, filter *types.QueryFilter) ([]*JobApplication, error)
	Count(ctx context.Context) (int, error)
}
