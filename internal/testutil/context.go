package testutil

import (
	"context"

	"github.com/skyup-digital/skyup-api/internal/types"
)

const (
	TestAdminSubjectID = "admin"
	TestAdminEmail     = "admin@skyup.test"
	TestAdminPassword  = "correct horse battery staple"
	TestAuthSecret     = "test-signing-secret-for-unit-tests"
)

// SetupContext returns a context carrying a request id and the admin principal
func SetupContext() context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, types.CtxRequestID, types.GenerateUUID())
	return types.SetPrincipal(ctx, TestAdminSubjectID, TestAdminEmail, types.RoleAdmin)
}

// SetupAnonymousContext returns a context with a request id and no principal
func SetupAnonymousContext() context.Context {
	return context.WithValue(context.Background(), types.CtxRequestID, types.GenerateUUID())
}
