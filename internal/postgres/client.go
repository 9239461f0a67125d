package postgres

import (
	"context"

	"github.com/skyup-digital/skyup-api/internal/config"
	"github.com/skyup-digital/skyup-api/internal/logger"
	sentryService "github.com/skyup-digital/skyup-api/internal/sentry"
	"go.uber.org/fx"
)

// IClient is the transaction boundary services depend on.
type IClient interface {
	// WithTx wraps the given function in a transaction. Nested calls use savepoints.
	WithTx(ctx context.Context, fn func(context.Context) error) error
}

// Module provides the database handle, the transaction client and runs the
// embedded migrations when postgres.auto_migrate is set.
func Module() fx.Option {
	return fx.Options(
		fx.Provide(
			NewDB,
			NewClient,
		),
		fx.Invoke(registerHooks),
	)
}

// NewClient exposes the DB as an IClient, with Sentry spans around transactions.
func NewClient(db *DB, sentry *sentryService.Service, logger *logger.Logger) IClient {
	return NewSentryClient(db, sentry, logger)
}

func registerHooks(lc fx.Lifecycle, db *DB, cfg *config.Configuration, logger *logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if !cfg.Postgres.AutoMigrate {
				return nil
			}
			return Migrate(db, logger)
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("closing postgres connection")
			db.Close()
			return nil
		},
	})
}
