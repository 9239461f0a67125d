package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	ierr "github.com/skyup-digital/skyup-api/internal/errors"
	"github.com/skyup-digital/skyup-api/internal/logger"
	"github.com/skyup-digital/skyup-api/internal/sentry"
	"github.com/skyup-digital/skyup-api/internal/types"
)

// ErrorHandler renders the last error pushed with c.Error as
// {success: false, message, details}. Server errors are logged and reported.
func ErrorHandler(sentryService *sentry.Service, logger *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status := ierr.HTTPStatusFromErr(err)

		if status >= http.StatusInternalServerError {
			logger.Errorw("request failed",
				"request_id", types.GetRequestID(c.Request.Context()),
				"method", c.Request.Method,
				"path", c.FullPath(),
				"status", status,
				"error", err,
			)
			sentryService.CaptureException(c.Request.Context(), err)
		}

		if c.Writer.Written() {
			return
		}
		c.JSON(status, ierr.NewErrorResponse(err))
	}
}
