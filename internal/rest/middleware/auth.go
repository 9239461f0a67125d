package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/skyup-digital/skyup-api/internal/auth"
	ierr "github.com/skyup-digital/skyup-api/internal/errors"
	"github.com/skyup-digital/skyup-api/internal/logger"
	"github.com/skyup-digital/skyup-api/internal/types"
)

const bearerPrefix = "Bearer "

// AuthenticateMiddleware validates the bearer token in the Authorization
// header and stores the principal in the request context. A missing token is
// a 401, a token that does not verify is a 403.
func AuthenticateMiddleware(provider auth.Provider, logger *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader(types.HeaderAuthorization))
		if authHeader == "" {
			abortWithError(c, ierr.NewError("authorization header missing").
				WithHint("Authentication token is required").
				Mark(ierr.ErrMissingToken))
			return
		}

		if len(authHeader) < len(bearerPrefix) || !strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			abortWithError(c, ierr.NewError("authorization header is not a bearer token").
				WithHint("Invalid authorization header format").
				Mark(ierr.ErrMissingToken))
			return
		}

		tokenString := strings.TrimSpace(authHeader[len(bearerPrefix):])
		principal, err := provider.ValidateToken(c.Request.Context(), tokenString)
		if err != nil {
			logger.Debugw("rejected bearer token",
				"request_id", types.GetRequestID(c.Request.Context()),
				"error", err,
			)
			abortWithError(c, err)
			return
		}

		ctx := types.SetPrincipal(c.Request.Context(), principal.SubjectID, principal.Email, principal.Role)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireRole rejects authenticated requests whose principal lacks role
func RequireRole(role types.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if got := types.GetUserRole(c.Request.Context()); got != role {
			abortWithError(c, ierr.NewErrorf("role %q required, got %q", role, got).
				WithHint("You do not have permission to perform this action").
				Mark(ierr.ErrPermissionDenied))
			return
		}
		c.Next()
	}
}

func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
