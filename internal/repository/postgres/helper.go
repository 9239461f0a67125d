package postgres

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/getsentry/sentry-go"
	"github.com/lib/pq"
	"github.com/skyup-digital/skyup-api/internal/types"
)

const pgUniqueViolation = "23505"

// StartRepositorySpan creates a new span for a repository operation
// Returns nil if Sentry is not available in the context
func StartRepositorySpan(ctx context.Context, repository, operation string, params map[string]interface{}) *sentry.Span {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		return nil
	}

	span := sentry.StartSpan(ctx, "repository."+repository+"."+operation)
	span.Description = "repository." + repository + "." + operation
	span.Op = "db.postgres"
	span.SetData("repository", repository)
	span.SetData("operation", operation)

	for k, v := range params {
		span.SetData(k, v)
	}

	return span
}

// FinishSpan safely finishes a span, handling nil spans
func FinishSpan(span *sentry.Span) {
	if span != nil {
		span.Finish()
	}
}

// SetSpanError marks a span as failed and adds error information
func SetSpanError(span *sentry.Span, err error) {
	if span == nil || err == nil {
		return
	}

	span.Status = sentry.SpanStatusInternalError
	span.SetData("error", err.Error())
}

// uniqueViolation reports whether err is a unique constraint violation,
// optionally restricted to the named constraint.
func uniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != pgUniqueViolation {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}

// orderBy renders the created_at ordering for a list filter. The value is
// whitelisted, never taken verbatim from the request.
func orderBy(filter *types.QueryFilter) string {
	if strings.EqualFold(filter.GetOrder(), types.OrderAsc) {
		return "created_at ASC"
	}
	return "created_at DESC"
}
