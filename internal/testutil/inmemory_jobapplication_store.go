package testutil

import (
	"context"

	"github.com/skyup-digital/skyup-api/internal/domain/jobapplication"
	"github.com/skyup-digital/skyup-api/internal/types"
)

var _ jobapplication.Repository = (*InMemoryJobApplicationStore)(nil)

type InMemoryJobApplicationStore struct {
	*InMemoryStore[*jobapplication.JobApplication]
}

func NewInMemoryJobApplicationStore() *InMemoryJobApplicationStore {
	return &InMemoryJobApplicationStore{
		InMemoryStore: NewInMemoryStore[*jobapplication.JobApplication](),
	}
}

func (s *InMemoryJobApplicationStore) Create(ctx context.Context, a *jobapplication.JobApplication) error {
	return s.InMemoryStore.Create(ctx, a.ID, a)
}

func (s *InMemoryJobApplicationStore) List(ctx context.Context, filter *types.QueryFilter) ([]*jobapplication.JobApplication, error) {
	return s.InMemoryStore.List(ctx, filter, func(a, b *jobapplication.JobApplication) bool {
		return a.CreatedAt.Before(b.CreatedAt)
	})
}
