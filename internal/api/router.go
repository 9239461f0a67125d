package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	v1 "github.com/skyup-digital/skyup-api/internal/api/v1"
	"github.com/skyup-digital/skyup-api/internal/auth"
	"github.com/skyup-digital/skyup-api/internal/cache"
	"github.com/skyup-digital/skyup-api/internal/config"
	ierr "github.com/skyup-digital/skyup-api/internal/errors"
	"github.com/skyup-digital/skyup-api/internal/logger"
	"github.com/skyup-digital/skyup-api/internal/rest/middleware"
	"github.com/skyup-digital/skyup-api/internal/sentry"
	"github.com/skyup-digital/skyup-api/internal/types"
)

const readHeaderTimeout = 10 * time.Second

type Handlers struct {
	Health         *v1.HealthHandler
	Auth           *v1.AuthHandler
	Receipt        *v1.ReceiptHandler
	JobApplication *v1.JobApplicationHandler
	Contact        *v1.ContactHandler
	Resume         *v1.ResumeHandler
}

// RouterParams holds what the router needs besides the handlers
type RouterParams struct {
	Config       *config.Configuration
	Logger       *logger.Logger
	AuthProvider auth.Provider
	Cache        cache.Cache
	Sentry       *sentry.Service
}

func NewRouter(handlers Handlers, params RouterParams) *gin.Engine {
	router := gin.New()
	router.MaxMultipartMemory = params.Config.Storage.MaxUploadBytes

	// ClientIP keys the login limiter, so forwarded headers only count
	// when they come from a configured proxy
	if err := router.SetTrustedProxies(params.Config.Server.TrustedProxies); err != nil {
		params.Logger.Errorw("invalid trusted proxies, trusting none",
			"trusted_proxies", params.Config.Server.TrustedProxies,
			"error", err,
		)
		_ = router.SetTrustedProxies(nil)
	}

	router.Use(
		gin.Recovery(),
		middleware.SentryMiddleware(params.Config),
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware(params.Config),
		middleware.LoggingMiddleware(params.Logger),
		middleware.ErrorHandler(params.Sentry, params.Logger),
	)

	router.NoRoute(func(c *gin.Context) {
		c.Error(ierr.NewErrorf("no route for %s %s", c.Request.Method, c.Request.URL.Path).
			WithHint("Route not found").
			Mark(ierr.ErrNotFound))
	})

	router.GET("/health", handlers.Health.Health)

	// Public website forms
	router.POST("/resume", handlers.Resume.UploadResume)
	router.POST("/add-users", handlers.JobApplication.CreateJobApplication)
	router.POST("/add-contact", handlers.Contact.CreateContact)

	authGroup := router.Group("/api/auth")
	{
		authGroup.POST("/login",
			middleware.LoginRateLimitMiddleware(params.Config, params.Cache, params.Logger),
			handlers.Auth.Login,
		)
	}

	// Admin routes
	private := router.Group("/")
	private.Use(
		middleware.AuthenticateMiddleware(params.AuthProvider, params.Logger),
		middleware.RequireRole(types.RoleAdmin),
	)
	{
		private.GET("/users", handlers.JobApplication.GetJobApplications)
		private.GET("/contacts", handlers.Contact.GetContacts)
		private.GET("/receipts", handlers.Receipt.GetReceipts)
		private.POST("/receipt", handlers.Receipt.CreateReceipt)

		private.GET("/api/last-invoice", handlers.Receipt.GetLastInvoice)
		private.GET("/api/auth/verify", handlers.Auth.Verify)
		private.POST("/api/auth/logout", handlers.Auth.Logout)
	}

	return router
}

// NewServer wraps the router in an http.Server listening on server.address
func NewServer(cfg *config.Configuration, router *gin.Engine) *http.Server {
	return &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}
