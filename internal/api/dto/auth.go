package dto

import (
	"time"

	domainAuth "github.com/skyup-digital/skyup-api/internal/domain/auth"
	"github.com/skyup-digital/skyup-api/internal/types"
	"github.com/skyup-digital/skyup-api/internal/validator"
)

// LoginRequest does not check the email format; a malformed address is just
// another credential mismatch.
type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type UserResponse struct {
	Email string     `json:"email"`
	Role  types.Role `json:"role"`
}

type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// VerifyResponse echoes the principal behind a valid token
type VerifyResponse struct {
	Valid     bool         `json:"valid"`
	SubjectID string       `json:"subject_id"`
	User      UserResponse `json:"user"`
}

type LogoutResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

func (r *LoginRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func NewLoginResponse(token *domainAuth.AccessToken) *LoginResponse {
	return &LoginResponse{
		Token:     token.Token,
		ExpiresAt: token.ExpiresAt,
		User:      NewUserResponse(&token.Principal),
	}
}

func NewUserResponse(p *domainAuth.Principal) UserResponse {
	return UserResponse{Email: p.Email, Role: p.Role}
}
