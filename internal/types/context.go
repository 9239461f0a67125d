package types

import (
	"context"
)

// ContextKey is a type for the keys of values stored in the context
type ContextKey string

const (
	CtxRequestID     ContextKey = "ctx_request_id"
	CtxUserID        ContextKey = "ctx_user_id"
	CtxUserEmail     ContextKey = "ctx_user_email"
	CtxUserRole      ContextKey = "ctx_user_role"
	CtxDBTransaction ContextKey = "ctx_db_transaction"

	// DefaultUserID is recorded as the actor for unauthenticated submissions
	DefaultUserID = "anonymous"
)

func GetUserID(ctx context.Context) string {
	if userID, ok := ctx.Value(CtxUserID).(string); ok {
		return userID
	}
	return ""
}

func GetUserEmail(ctx context.Context) string {
	if email, ok := ctx.Value(CtxUserEmail).(string); ok {
		return email
	}
	return ""
}

func GetUserRole(ctx context.Context) Role {
	if role, ok := ctx.Value(CtxUserRole).(Role); ok {
		return role
	}
	return ""
}

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(CtxRequestID).(string); ok {
		return requestID
	}
	return ""
}

// SetPrincipal stores the authenticated identity in the context
func SetPrincipal(ctx context.Context, userID, email string, role Role) context.Context {
	ctx = context.WithValue(ctx, CtxUserID, userID)
	ctx = context.WithValue(ctx, CtxUserEmail, email)
	return context.WithValue(ctx, CtxUserRole, role)
}

// GetActor returns the identity to record as the author of a write.
// Authenticated requests use the principal email, everything else is anonymous.
func GetActor(ctx context.Context) string {
	if email := GetUserEmail(ctx); email != "" {
		return email
	}
	return DefaultUserID
}
