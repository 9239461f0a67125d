package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/skyup-digital/skyup-api/internal/config"
	"github.com/skyup-digital/skyup-api/internal/domain/auth"
	ierr "github.com/skyup-digital/skyup-api/internal/errors"
	"github.com/skyup-digital/skyup-api/internal/types"
	"golang.org/x/crypto/bcrypt"
)

// adminAuth authenticates the single administrator named in configuration.
type adminAuth struct {
	cfg          config.AuthConfig
	email        []byte
	passwordHash []byte
	now          func() time.Time
}

// NewAdminAuth prepares the admin identity. A plaintext admin password is
// hashed once here so every login pays the same bcrypt cost.
func NewAdminAuth(cfg config.AuthConfig) (*adminAuth, error) {
	hash := []byte(cfg.AdminPasswordHash)
	if len(hash) == 0 {
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to hash admin password").
				Mark(ierr.ErrSystem)
		}
	} else if _, err := bcrypt.Cost(hash); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Configured admin password hash is not a bcrypt hash").
			Mark(ierr.ErrValidation)
	}

	return &adminAuth{
		cfg:          cfg,
		email:        []byte(normalizeEmail(cfg.AdminEmail)),
		passwordHash: hash,
		now:          time.Now,
	}, nil
}

func (a *adminAuth) Login(ctx context.Context, req LoginRequest) (*auth.AccessToken, error) {
	emailOK := subtle.ConstantTimeCompare([]byte(normalizeEmail(req.Email)), a.email) == 1
	// always run bcrypt so a wrong email costs the same as a wrong password
	passwordErr := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(req.Password))

	if !emailOK || passwordErr != nil {
		return nil, ierr.NewError("invalid credentials").
			WithHint("Invalid email or password").
			Mark(ierr.ErrInvalidCredentials)
	}

	principal := auth.Principal{
		SubjectID: a.cfg.AdminSubjectID,
		Email:     string(a.email),
		Role:      types.RoleAdmin,
	}

	token, expiresAt, err := a.generateToken(principal)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to generate token").
			Mark(ierr.ErrSystem)
	}

	return &auth.AccessToken{
		Token:     token,
		ExpiresAt: expiresAt,
		Principal: principal,
	}, nil
}

func (a *adminAuth) ValidateToken(ctx context.Context, token string) (*auth.Principal, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ierr.NewError("missing token").
			WithHint("Authentication token is required").
			Mark(ierr.ErrMissingToken)
	}

	claims := &auth.Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(a.cfg.Secret), nil
	})
	if err != nil {
		return nil, invalidToken(err.Error())
	}
	if !parsed.Valid {
		return nil, invalidToken("token is not valid")
	}
	if !claims.VerifyIssuer(a.cfg.Issuer, true) {
		return nil, invalidToken("unexpected issuer")
	}
	if claims.Email == "" || claims.Role == "" || claims.Subject == "" {
		return nil, invalidToken("token missing required claims")
	}

	return &auth.Principal{
		SubjectID: claims.Subject,
		Email:     claims.Email,
		Role:      claims.Role,
	}, nil
}

func (a *adminAuth) generateToken(p auth.Principal) (string, time.Time, error) {
	now := a.now()
	// NumericDate keeps whole seconds
	expiresAt := now.Add(a.cfg.TokenTTL).Truncate(time.Second)

	claims := auth.Claims{
		Email: p.Email,
		Role:  p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.SubjectID,
			Issuer:    a.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(a.cfg.Secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func invalidToken(reason string) error {
	return ierr.NewErrorf("invalid token: %s", reason).
		WithHint("Invalid or expired token").
		Mark(ierr.ErrInvalidToken)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
