package main

import (
	"context"
	"errors"
	"net/http"
	_ "time/tzdata"

	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
	"github.com/skyup-digital/skyup-api/internal/api"
	v1 "github.com/skyup-digital/skyup-api/internal/api/v1"
	"github.com/skyup-digital/skyup-api/internal/auth"
	"github.com/skyup-digital/skyup-api/internal/cache"
	"github.com/skyup-digital/skyup-api/internal/config"
	"github.com/skyup-digital/skyup-api/internal/logger"
	"github.com/skyup-digital/skyup-api/internal/postgres"
	"github.com/skyup-digital/skyup-api/internal/repository"
	"github.com/skyup-digital/skyup-api/internal/s3"
	"github.com/skyup-digital/skyup-api/internal/sentry"
	"github.com/skyup-digital/skyup-api/internal/service"
	"github.com/skyup-digital/skyup-api/internal/types"
	"github.com/skyup-digital/skyup-api/internal/validator"
	"go.uber.org/fx"
)

// @title Skyup API
// @version 1.0
// @description Skyup website API: careers, contact form, resumes and invoice receipts
// @BasePath /
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter the token in the format *Bearer &lt;token&gt;*

func main() {
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Cache
			cache.NewInMemoryCache,

			// Auth
			auth.NewProvider,

			// Object storage
			s3.NewService,

			// Repositories
			repository.NewReceiptRepository,
			repository.NewJobApplicationRepository,
			repository.NewContactRepository,
		),
		sentry.Module(),
		postgres.Module(),
	)

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,

			service.NewAuthService,
			service.NewReceiptService,
			service.NewJobApplicationService,
			service.NewContactService,
			service.NewResumeService,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(
			startServer,
		),
	)

	app := fx.New(opts...)
	app.Run()
}

func provideHandlers(
	cfg *config.Configuration,
	logger *logger.Logger,
	db *postgres.DB,
	authService service.AuthService,
	receiptService service.ReceiptService,
	jobApplicationService service.JobApplicationService,
	contactService service.ContactService,
	resumeService service.ResumeService,
) api.Handlers {
	return api.Handlers{
		Health:         v1.NewHealthHandler(db, logger),
		Auth:           v1.NewAuthHandler(authService, logger),
		Receipt:        v1.NewReceiptHandler(receiptService, logger),
		JobApplication: v1.NewJobApplicationHandler(jobApplicationService, logger),
		Contact:        v1.NewContactHandler(contactService, logger),
		Resume:         v1.NewResumeHandler(resumeService, cfg.Storage.MaxUploadBytes, logger),
	}
}

func provideRouter(
	handlers api.Handlers,
	cfg *config.Configuration,
	logger *logger.Logger,
	authProvider auth.Provider,
	c cache.Cache,
	sentryService *sentry.Service,
) *gin.Engine {
	if cfg.Deployment.Mode != types.ModeLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	return api.NewRouter(handlers, api.RouterParams{
		Config:       cfg,
		Logger:       logger,
		AuthProvider: authProvider,
		Cache:        c,
		Sentry:       sentryService,
	})
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	log *logger.Logger,
) {
	mode := cfg.Deployment.Mode
	if mode == "" {
		mode = types.ModeLocal
	}

	switch mode {
	case types.ModeLocal, types.ModeAPI:
		startAPIServer(lc, r, cfg, log)
	case types.ModeAWSLambdaAPI:
		startAWSLambdaAPI(lc, r, log)
	default:
		log.Fatalf("Unknown deployment mode: %s", mode)
	}
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	srv := api.NewServer(cfg, r)

	log.Info("Registering API server start hook")
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("Starting API server...", "address", cfg.Server.Address)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return srv.Shutdown(ctx)
		},
	})
}

func startAWSLambdaAPI(lc fx.Lifecycle, r *gin.Engine, log *logger.Logger) {
	ginLambda := ginadapter.New(r)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting AWS Lambda API handler...")
			go lambda.Start(ginLambda.ProxyWithContext)
			return nil
		},
	})
}
