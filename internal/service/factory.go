package service

import (
	"github.com/skyup-digital/skyup-api/internal/auth"
	"github.com/skyup-digital/skyup-api/internal/config"
	"github.com/skyup-digital/skyup-api/internal/domain/contact"
	"github.com/skyup-digital/skyup-api/internal/domain/jobapplication"
	"github.com/skyup-digital/skyup-api/internal/domain/receipt"
	"github.com/skyup-digital/skyup-api/internal/logger"
	"github.com/skyup-digital/skyup-api/internal/postgres"
	"github.com/skyup-digital/skyup-api/internal/s3"
	"github.com/skyup-digital/skyup-api/internal/sentry"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger       *logger.Logger
	Config       *config.Configuration
	DB           postgres.IClient
	S3           s3.Service
	Sentry       *sentry.Service
	AuthProvider auth.Provider

	// Repositories
	ReceiptRepo        receipt.Repository
	JobApplicationRepo jobapplication.Repository
	ContactRepo        contact.Repository
}

// Common service params
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	db postgres.IClient,
	s3Service s3.Service,
	sentryService *sentry.Service,
	authProvider auth.Provider,
	receiptRepo receipt.Repository,
	jobApplicationRepo jobapplication.Repository,
	contactRepo contact.Repository,
) ServiceParams {
	return ServiceParams{
		Logger:             logger,
		Config:             config,
		DB:                 db,
		S3:                 s3Service,
		Sentry:             sentryService,
		AuthProvider:       authProvider,
		ReceiptRepo:        receiptRepo,
		JobApplicationRepo: jobApplicationRepo,
		ContactRepo:        contactRepo,
	}
}
