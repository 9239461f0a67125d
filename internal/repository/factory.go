package repository

import (
	"github.com/skyup-digital/skyup-api/internal/domain/contact"
	"github.com/skyup-digital/skyup-api/internal/domain/jobapplication"
	"github.com/skyup-digital/skyup-api/internal/domain/receipt"
	"github.com/skyup-digital/skyup-api/internal/logger"
	"github.com/skyup-digital/skyup-api/internal/postgres"
	postgresRepo "github.com/skyup-digital/skyup-api/internal/repository/postgres"
)

func NewReceiptRepository(db *postgres.DB, logger *logger.Logger) receipt.Repository {
	return postgresRepo.NewReceiptRepository(db, logger)
}

func NewJobApplicationRepository(db *postgres.DB, logger *logger.Logger) jobapplication.Repository {
	return postgresRepo.NewJobApplicationRepository(db, logger)
}

func NewContactRepository(db *postgres.DB, logger *logger.Logger) contact.Repository {
	return postgresRepo.NewContactRepository(db, logger)
}
