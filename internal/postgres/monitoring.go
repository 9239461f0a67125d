package postgres

import (
	"context"

	"github.com/skyup-digital/skyup-api/internal/logger"
	sentryService "github.com/skyup-digital/skyup-api/internal/sentry"
)

// spanClient puts every transaction under a Sentry span and leaves a
// breadcrumb when one is rolled back.
type spanClient struct {
	next   IClient
	sentry *sentryService.Service
	logger *logger.Logger
}

// NewSentryClient decorates client with Sentry spans
func NewSentryClient(client IClient, sentry *sentryService.Service, logger *logger.Logger) IClient {
	return &spanClient{next: client, sentry: sentry, logger: logger}
}

func (c *spanClient) WithTx(ctx context.Context, fn func(context.Context) error) error {
	span, spanCtx := c.sentry.StartDBSpan(ctx, "transaction", nil)

	err := c.next.WithTx(spanCtx, fn)
	if span != nil {
		if err != nil {
			span.SetData("error", err.Error())
		}
		span.Finish()
	}
	if err != nil {
		c.sentry.AddBreadcrumb("postgres", "transaction rolled back", map[string]interface{}{
			"error": err.Error(),
		})
	}
	return err
}
