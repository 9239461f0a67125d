package service

import (
	"context"

	"github.com/skyup-digital/skyup-api/internal/api/dto"
	authProvider "github.com/skyup-digital/skyup-api/internal/auth"
	domainAuth "github.com/skyup-digital/skyup-api/internal/domain/auth"
	ierr "github.com/skyup-digital/skyup-api/internal/errors"
	"github.com/skyup-digital/skyup-api/internal/types"
)

type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Verify(ctx context.Context) (*dto.VerifyResponse, error)
	Logout(ctx context.Context) (*dto.LogoutResponse, error)
}

type authService struct {
	ServiceParams
}

func NewAuthService(params ServiceParams) AuthService {
	return &authService{ServiceParams: params}
}

// Login exchanges the admin credentials for an access token
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	token, err := s.AuthProvider.Login(ctx, authProvider.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if ierr.IsInvalidCredentials(err) {
			s.Logger.Infow("admin login rejected", "request_id", types.GetRequestID(ctx))
		}
		return nil, err
	}

	s.Logger.Infow("admin logged in",
		"email", token.Principal.Email,
		"expires_at", token.ExpiresAt,
	)

	return dto.NewLoginResponse(token), nil
}

// Verify echoes the principal the auth middleware placed on the context
func (s *authService) Verify(ctx context.Context) (*dto.VerifyResponse, error) {
	principal, err := principalFromContext(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.VerifyResponse{
		Valid:     true,
		SubjectID: principal.SubjectID,
		User:      dto.NewUserResponse(principal),
	}, nil
}

// Logout has nothing to revoke; the client drops the token
func (s *authService) Logout(ctx context.Context) (*dto.LogoutResponse, error) {
	principal, err := principalFromContext(ctx)
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("admin logged out", "email", principal.Email)

	return &dto.LogoutResponse{
		Message: "Logged out successfully",
		User:    dto.NewUserResponse(principal),
	}, nil
}

func principalFromContext(ctx context.Context) (*domainAuth.Principal, error) {
	email := types.GetUserEmail(ctx)
	if email == "" {
		return nil, ierr.NewError("no principal in context").
			WithHint("Authentication token is required").
			Mark(ierr.ErrMissingToken)
	}
	return &domainAuth.Principal{
		SubjectID: types.GetUserID(ctx),
		Email:     email,
		Role:      types.GetUserRole(ctx),
	}, nil
}
