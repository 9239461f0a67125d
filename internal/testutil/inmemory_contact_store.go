package testutil

import (
	"context"

	"github.com/skyup-digital/skyup-api/internal/domain/contact"
	"github.com/skyup-digital/skyup-api/internal/types"
)

var _ contact.Repository = (*InMemoryContactStore)(nil)

type InMemoryContactStore struct {
	*InMemoryStore[*contact.Contact]
}

func NewInMemoryContactStore() *InMemoryContactStore {
	return &InMemoryContactStore{
		InMemoryStore: NewInMemoryStore[*contact.Contact](),
	}
}

func (s *InMemoryContactStore) Create(ctx context.Context, c *contact.Contact) error {
	return s.InMemoryStore.Create(ctx, c.ID, c)
}

func (s *InMemoryContactStore) List(ctx context.Context, filter *types.QueryFilter) ([]*contact.Contact, error) {
	return s.InMemoryStore.List(ctx, filter, func(a, b *contact.Contact) bool {
		return a.CreatedAt.Before(b.CreatedAt)
	})
}
