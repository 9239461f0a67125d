package sentry

import (
	"context"
	"errors"
	"testing"

	"github.com/skyup-digital/skyup-api/internal/config"
	"github.com/skyup-digital/skyup-api/internal/logger"
	"github.com/stretchr/testify/assert"
)

func TestDisabledServiceIsNoop(t *testing.T) {
	var nilSvc *Service
	disabled := NewSentryService(&config.Configuration{}, logger.NewNopLogger())

	for _, svc := range []*Service{nilSvc, disabled} {
		assert.False(t, svc.Enabled())
		assert.NotPanics(t, func() {
			svc.CaptureException(context.Background(), errors.New("boom"))
			svc.AddBreadcrumb("receipt", "issued receipt", nil)
		})

		ctx := context.Background()
		span, spanCtx := svc.StartDBSpan(ctx, "transaction", nil)
		assert.Nil(t, span)
		assert.Equal(t, ctx, spanCtx)
	}
}

func TestStartWhenDisabled(t *testing.T) {
	svc := NewSentryService(&config.Configuration{}, logger.NewNopLogger())
	assert.NoError(t, svc.start())
}
