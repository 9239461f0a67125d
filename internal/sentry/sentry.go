package sentry

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/skyup-digital/skyup-api/internal/config"
	"github.com/skyup-digital/skyup-api/internal/logger"
	"github.com/skyup-digital/skyup-api/internal/types"
	"go.uber.org/fx"
)

const flushTimeout = 2 * time.Second

// Service reports errors and spans to Sentry. A nil or disabled Service
// drops everything, so callers never need to check it.
type Service struct {
	cfg    config.SentryConfig
	logger *logger.Logger
}

// Module provides fx options for Sentry
func Module() fx.Option {
	return fx.Options(
		fx.Provide(NewSentryService),
		fx.Invoke(RegisterHooks),
	)
}

// NewSentryService creates a new Sentry service
func NewSentryService(cfg *config.Configuration, logger *logger.Logger) *Service {
	return &Service{
		cfg:    cfg.Sentry,
		logger: logger,
	}
}

// RegisterHooks initialises the Sentry client on start and flushes it on stop
func RegisterHooks(lc fx.Lifecycle, svc *Service) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return svc.start()
		},
		OnStop: func(ctx context.Context) error {
			if svc.Enabled() {
				sentry.Flush(flushTimeout)
			}
			return nil
		},
	})
}

func (s *Service) start() error {
	if !s.Enabled() {
		s.logger.Info("sentry is disabled")
		return nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              s.cfg.DSN,
		Environment:      s.cfg.Environment,
		EnableTracing:    true,
		TracesSampleRate: s.cfg.SampleRate,
		TracesSampler: sentry.TracesSampler(func(ctx sentry.SamplingContext) float64 {
			// load balancer probes
			if ctx.Span.Name == "GET /health" {
				return 0.0
			}
			return s.cfg.SampleRate
		}),
	})
	if err != nil {
		s.logger.Errorw("failed to initialize sentry", "error", err)
		return err
	}

	s.logger.Infow("sentry initialized",
		"environment", s.cfg.Environment,
		"sample_rate", s.cfg.SampleRate,
	)
	return nil
}

// Enabled reports whether events are sent to Sentry
func (s *Service) Enabled() bool {
	return s != nil && s.cfg.Enabled
}

// CaptureException reports err on the request hub, tagged with the request
// id and the acting admin when ctx carries them.
func (s *Service) CaptureException(ctx context.Context, err error) {
	if !s.Enabled() || err == nil {
		return
	}

	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}

	hub.WithScope(func(scope *sentry.Scope) {
		if requestID := types.GetRequestID(ctx); requestID != "" {
			scope.SetTag("request_id", requestID)
		}
		if userID := types.GetUserID(ctx); userID != "" {
			scope.SetUser(sentry.User{ID: userID})
		}
		hub.CaptureException(err)
	})
}

// AddBreadcrumb records a domain event on the current scope
func (s *Service) AddBreadcrumb(category, message string, data map[string]interface{}) {
	if !s.Enabled() {
		return
	}
	sentry.AddBreadcrumb(&sentry.Breadcrumb{
		Category: category,
		Message:  message,
		Level:    sentry.LevelInfo,
		Data:     data,
	})
}

// StartDBSpan starts a postgres span under the request transaction.
// The returned span is nil when Sentry is disabled.
func (s *Service) StartDBSpan(ctx context.Context, operation string, data map[string]interface{}) (*sentry.Span, context.Context) {
	if !s.Enabled() {
		return nil, ctx
	}

	span := sentry.StartSpan(ctx, "db.postgres", sentry.WithDescription(operation))
	for k, v := range data {
		span.SetData(k, v)
	}
	return span, span.Context()
}
