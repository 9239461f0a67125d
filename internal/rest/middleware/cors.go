package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"github.com/skyup-digital/skyup-api/internal/config"
	"github.com/skyup-digital/skyup-api/internal/types"
)

const (
	corsAllowMethods = "GET, POST, OPTIONS"
	corsMaxAge       = "86400"
)

var corsAllowHeaders = strings.Join([]string{
	"Content-Type",
	types.HeaderAuthorization,
	types.HeaderRequestID,
}, ", ")

// CORSMiddleware allows the configured origins. An empty list or "*" allows
// any origin.
func CORSMiddleware(cfg *config.Configuration) gin.HandlerFunc {
	origins := lo.Map(cfg.CORS.AllowedOrigins, func(o string, _ int) string {
		return strings.TrimRight(strings.TrimSpace(o), "/")
	})
	allowAll := len(origins) == 0 || lo.Contains(origins, "*")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		h := c.Writer.Header()

		switch {
		case allowAll:
			h.Set("Access-Control-Allow-Origin", "*")
		case origin != "" && lo.Contains(origins, origin):
			h.Set("Access-Control-Allow-Origin", origin)
			h.Add("Vary", "Origin")
		}

		h.Set("Access-Control-Allow-Methods", corsAllowMethods)
		h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
		h.Set("Access-Control-Expose-Headers", types.HeaderRequestID)
		h.Set("Access-Control-Max-Age", corsMaxAge)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
