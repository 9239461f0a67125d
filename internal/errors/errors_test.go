package errors

import (
	"context"
	"net/http"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusFromErr(t *testing.T) {
	testCases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", NewError("bad").Mark(ErrValidation), http.StatusBadRequest},
		{"invalid_credentials", NewError("bad").Mark(ErrInvalidCredentials), http.StatusUnauthorized},
		{"missing_token", NewError("bad").Mark(ErrMissingToken), http.StatusUnauthorized},
		{"invalid_token", NewError("bad").Mark(ErrInvalidToken), http.StatusForbidden},
		{"permission_denied", NewError("bad").Mark(ErrPermissionDenied), http.StatusForbidden},
		{"not_found", NewError("bad").Mark(ErrNotFound), http.StatusNotFound},
		{"already_exists", NewError("bad").Mark(ErrAlreadyExists), http.StatusConflict},
		{"too_many_requests", NewError("bad").Mark(ErrTooManyRequests), http.StatusTooManyRequests},
		{"corrupt_sequence", NewError("bad").Mark(ErrCorruptSequence), http.StatusInternalServerError},
		{"database", WithError(context.Canceled).Mark(ErrDatabase), http.StatusInternalServerError},
		{"unmarked", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped", errors.Wrap(NewError("bad").Mark(ErrNotFound), "outer"), http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.status, HTTPStatusFromErr(tc.err))
		})
	}
}

func TestNewErrorResponse(t *testing.T) {
	err := NewError("amount must be positive").
		WithHint("Amount must be greater than zero").
		WithReportableDetails(map[string]any{"amount": "-1"}).
		Mark(ErrValidation)

	resp := NewErrorResponse(err)
	assert.False(t, resp.Success)
	assert.Equal(t, "Amount must be greater than zero", resp.Message)
	assert.Equal(t, map[string]any{"amount": "-1"}, resp.Details)

	resp = NewErrorResponse(errors.New("no hint"))
	assert.Equal(t, "An unexpected error occurred", resp.Message)
	assert.Nil(t, resp.Details)
}

func TestPredicates(t *testing.T) {
	err := NewError("gone").Mark(ErrNotFound)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsAlreadyExists(err))

	assert.True(t, IsCorruptSequence(NewError("x").Mark(ErrCorruptSequence)))
	assert.True(t, IsInvalidToken(NewError("x").Mark(ErrInvalidToken)))
	assert.True(t, IsInvalidCredentials(NewError("x").Mark(ErrInvalidCredentials)))
	assert.True(t, IsValidation(NewError("x").Mark(ErrValidation)))
}
