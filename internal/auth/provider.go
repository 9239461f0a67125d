package auth

import (
	"context"

	"github.com/skyup-digital/skyup-api/internal/config"
	"github.com/skyup-digital/skyup-api/internal/domain/auth"
)

type LoginRequest struct {
	Email    string
	Password string
}

// Provider issues and verifies administrative access tokens.
type Provider interface {
	// Login checks the credentials and issues a signed token
	Login(ctx context.Context, req LoginRequest) (*auth.AccessToken, error)
	// ValidateToken verifies a token and returns the principal it was issued to
	ValidateToken(ctx context.Context, token string) (*auth.Principal, error)
}

func NewProvider(cfg *config.Configuration) (Provider, error) {
	provider, err := NewAdminAuth(cfg.Auth)
	if err != nil {
		return nil, err
	}
	return provider, nil
}
