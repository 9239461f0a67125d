package testutil

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/skyup-digital/skyup-api/internal/logger"
	"github.com/skyup-digital/skyup-api/internal/postgres"
)

var _ postgres.IClient = (*MockPostgresClient)(nil)

// Snapshotter is a store whose state can be saved and put back.
type Snapshotter interface {
	Snapshot() (restore func())
}

type mockTxKey struct{}

// MockPostgresClient runs transactions one at a time against the tracked
// in-memory stores. A transaction that returns an error restores every
// tracked store to the state it had when the transaction began.
type MockPostgresClient struct {
	logger    *logger.Logger
	mu        sync.Mutex
	stores    []Snapshotter
	commits   atomic.Int64
	rollbacks atomic.Int64
}

func NewMockPostgresClient(logger *logger.Logger) *MockPostgresClient {
	return &MockPostgresClient{logger: logger}
}

// Track adds stores whose writes roll back with a failed transaction.
func (c *MockPostgresClient) Track(stores ...Snapshotter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stores = append(c.stores, stores...)
}

func (c *MockPostgresClient) WithTx(ctx context.Context, fn func(context.Context) error) error {
	// nested calls join the outer transaction
	if ctx.Value(mockTxKey{}) != nil {
		return fn(ctx)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	restores := make([]func(), 0, len(c.stores))
	for _, store := range c.stores {
		restores = append(restores, store.Snapshot())
	}

	if err := fn(context.WithValue(ctx, mockTxKey{}, true)); err != nil {
		for _, restore := range restores {
			restore()
		}
		c.rollbacks.Add(1)
		c.logger.Debugw("mock transaction rolled back", "error", err)
		return err
	}
	c.commits.Add(1)
	return nil
}

// Commits returns how many transactions completed without error.
func (c *MockPostgresClient) Commits() int64 { return c.commits.Load() }

// Rollbacks returns how many transactions returned an error.
func (c *MockPostgresClient) Rollbacks() int64 { return c.rollbacks.Load() }
