package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/skyup-digital/skyup-api/internal/types"
)

// Claims is the payload of an access token.
type Claims struct {
	Email string     `json:"email"`
	Role  types.Role `json:"role"`
	jwt.RegisteredClaims
}

// Principal is the authenticated identity behind a valid token.
type Principal struct {
	SubjectID string     `json:"subject_id"`
	Email     string     `json:"email"`
	Role      types.Role `json:"role"`
}

// AccessToken is a signed bearer token and its expiry.
type AccessToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Principal Principal `json:"user"`
}
